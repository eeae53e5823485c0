package dto

import "time"

// PendingConflictResponse exposes an outstanding confirmation for inspection.
type PendingConflictResponse struct {
	UserID    string    `json:"user_id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
