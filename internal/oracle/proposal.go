package oracle

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/schedassist/sched-assist-api/internal/models"
)

// Outcome tags the interpreted shape of an oracle reply.
type Outcome string

const (
	// OutcomeScheduled carries a complete entry ready for persistence.
	OutcomeScheduled Outcome = "scheduled"
	// OutcomeConflict announces a clash awaiting YES/NO confirmation.
	OutcomeConflict Outcome = "conflict"
	// OutcomeInfo is a plain informational reply with no updates.
	OutcomeInfo Outcome = "info"
	// OutcomeIncomplete has an updates payload missing required fields;
	// it is echoed to the caller but never persisted.
	OutcomeIncomplete Outcome = "incomplete"
	// OutcomeUnparseable means no valid JSON object could be extracted.
	OutcomeUnparseable Outcome = "unparseable"
)

// Reply texts fixed by the legacy contract.
const (
	FallbackMessage = "AI is having trouble understanding. Please retype your request."
	DefaultMessage  = "Invalid response format."
	conflictMarker  = "A conflict exists"
)

// jsonSpan grabs the first top-level {...} span, tolerating surrounding prose.
var jsonSpan = regexp.MustCompile(`(?s)\{.*\}`)

// Proposal is the structured decision distilled from a raw oracle reply.
// Message and Updates echo the normalized parsed object; Entry is only
// meaningful when Outcome is OutcomeScheduled.
type Proposal struct {
	Outcome Outcome
	Message string
	Updates map[string]string
	Entry   models.TimetableEntry
}

// Interpret parses a raw reply into a tagged Proposal. All the brittleness of
// free-text model output is confined here so it can be tested offline.
func Interpret(raw string) Proposal {
	span := jsonSpan.FindString(raw)
	if span == "" {
		return Proposal{Outcome: OutcomeUnparseable}
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(span), &fields); err != nil {
		return Proposal{Outcome: OutcomeUnparseable}
	}

	message := DefaultMessage
	if rawMsg, ok := fields["message"]; ok {
		if err := json.Unmarshal(rawMsg, &message); err != nil {
			return Proposal{Outcome: OutcomeUnparseable}
		}
	}

	updates := map[string]string{}
	if rawUpd, ok := fields["updates"]; ok {
		if err := json.Unmarshal(rawUpd, &updates); err != nil {
			return Proposal{Outcome: OutcomeUnparseable}
		}
	}

	if len(updates) == 0 {
		outcome := OutcomeInfo
		if strings.Contains(message, conflictMarker) {
			outcome = OutcomeConflict
		}
		return Proposal{Outcome: outcome, Message: message, Updates: updates}
	}

	entry := models.TimetableEntry{
		Date:     updates["date"],
		Subject:  updates["subject"],
		Time:     updates["time"],
		Duration: updates["duration"],
	}
	if !entry.Complete() {
		return Proposal{Outcome: OutcomeIncomplete, Message: message, Updates: updates}
	}

	return Proposal{Outcome: OutcomeScheduled, Message: message, Updates: updates, Entry: entry}
}
