package models

import "time"

// PendingConflict remembers the scheduling request that produced an
// unresolved conflict, awaiting the user's YES confirmation.
type PendingConflict struct {
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
