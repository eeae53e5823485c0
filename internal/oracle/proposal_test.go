package oracle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterpretScheduled(t *testing.T) {
	raw := `{"message": "Event scheduled.", "updates": {"date": "2024-01-01", "subject": "Math", "time": "10:00", "duration": "1 hour"}}`
	p := Interpret(raw)
	require.Equal(t, OutcomeScheduled, p.Outcome)
	assert.Equal(t, "Event scheduled.", p.Message)
	assert.Equal(t, "Math", p.Entry.Subject)
	assert.Equal(t, "10:00", p.Entry.Time)
	assert.Equal(t, "1 hour", p.Entry.Duration)
	assert.Equal(t, "2024-01-01", p.Entry.Date)
}

func TestInterpretToleratesSurroundingProse(t *testing.T) {
	raw := "Sure! Here is the result:\n{\"message\": \"Event scheduled.\", \"updates\": {\"date\": \"2024-01-01\", \"subject\": \"Math\", \"time\": \"10:00\", \"duration\": \"1 hour\"}}\nLet me know if you need anything else."
	p := Interpret(raw)
	require.Equal(t, OutcomeScheduled, p.Outcome)
	assert.Equal(t, "Math", p.Entry.Subject)
}

func TestInterpretConflict(t *testing.T) {
	raw := `{"message": "A conflict exists with Math on 2024-01-01 from 10:00 to 11:00. Do you want to replace it? (YES/NO)", "updates": {}}`
	p := Interpret(raw)
	require.Equal(t, OutcomeConflict, p.Outcome)
	assert.Empty(t, p.Updates)
}

func TestInterpretInfo(t *testing.T) {
	p := Interpret(`{"message": "You have Math at 10:00 tomorrow.", "updates": {}}`)
	require.Equal(t, OutcomeInfo, p.Outcome)
	assert.Equal(t, "You have Math at 10:00 tomorrow.", p.Message)
}

func TestInterpretIncompleteUpdates(t *testing.T) {
	raw := `{"message": "Scheduled.", "updates": {"date": "2024-01-01", "subject": "Math", "time": "10:00", "duration": ""}}`
	p := Interpret(raw)
	require.Equal(t, OutcomeIncomplete, p.Outcome)
	assert.Equal(t, "2024-01-01", p.Updates["date"])
}

func TestInterpretNoJSONSpan(t *testing.T) {
	p := Interpret("I could not understand the request, sorry.")
	require.Equal(t, OutcomeUnparseable, p.Outcome)
}

func TestInterpretMalformedJSON(t *testing.T) {
	p := Interpret(`{"message": broken}`)
	require.Equal(t, OutcomeUnparseable, p.Outcome)

	p = Interpret(`{"message": "broken", "updates": {`)
	require.Equal(t, OutcomeUnparseable, p.Outcome)
}

func TestInterpretDefaultsMissingKeys(t *testing.T) {
	p := Interpret(`{"something_else": true}`)
	require.Equal(t, OutcomeInfo, p.Outcome)
	assert.Equal(t, DefaultMessage, p.Message)
	assert.NotNil(t, p.Updates)
	assert.Empty(t, p.Updates)
}

func TestConfirmationRewrite(t *testing.T) {
	got := ConfirmationRewrite("schedule Math tomorrow at 10")
	assert.Equal(t, "User confirmed replacement. Replace schedule Math tomorrow at 10.", got)
}
