package models

import "time"

// AuditLog records an applied schedule change for traceability.
type AuditLog struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Action    string    `db:"action" json:"action"`
	Date      string    `db:"date" json:"date"`
	NewValues []byte    `db:"new_values" json:"new_values"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Audit actions recorded by the assistant.
const (
	AuditActionReplaceEntry = "SCHEDULE_REPLACE"
)
