package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/schedassist/sched-assist-api/internal/dto"
	"github.com/schedassist/sched-assist-api/internal/models"
	appErrors "github.com/schedassist/sched-assist-api/pkg/errors"
)

type timetableReader interface {
	ListAll(ctx context.Context, userID string) (models.UserTimetable, error)
	GetBucket(ctx context.Context, userID, date string) (models.DateBucket, error)
}

// TimetableService exposes read access to stored timetables.
type TimetableService struct {
	repo   timetableReader
	logger *zap.Logger
}

// NewTimetableService instantiates TimetableService.
func NewTimetableService(repo timetableReader, logger *zap.Logger) *TimetableService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TimetableService{repo: repo, logger: logger}
}

// Get returns every date bucket for the user.
func (s *TimetableService) Get(ctx context.Context, userID string) (*dto.TimetableResponse, error) {
	if userID == "" {
		return nil, appErrors.New(appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "User ID is required")
	}
	timetable, err := s.repo.ListAll(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to load timetable")
	}
	return &dto.TimetableResponse{UserID: userID, Dates: timetable}, nil
}

// GetDate returns the bucket for one calendar date; missing dates yield an
// empty event list rather than 404, matching the store's lazy-creation model.
func (s *TimetableService) GetDate(ctx context.Context, userID, date string) (*dto.DateBucketResponse, error) {
	if userID == "" || date == "" {
		return nil, appErrors.New(appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "user and date are required")
	}
	bucket, err := s.repo.GetBucket(ctx, userID, date)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to load date bucket")
	}
	events := bucket.Updates
	if events == nil {
		events = []models.TimetableEntry{}
	}
	return &dto.DateBucketResponse{UserID: userID, Date: date, Events: events}, nil
}
