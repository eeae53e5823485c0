package dto

import "github.com/schedassist/sched-assist-api/internal/models"

// TimetableResponse returns every date bucket stored for a user.
type TimetableResponse struct {
	UserID string               `json:"user_id"`
	Dates  models.UserTimetable `json:"dates"`
}

// DateBucketResponse returns a single date bucket.
type DateBucketResponse struct {
	UserID string                  `json:"user_id"`
	Date   string                  `json:"date"`
	Events []models.TimetableEntry `json:"events"`
}
