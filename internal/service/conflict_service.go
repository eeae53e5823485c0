package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/schedassist/sched-assist-api/internal/dto"
	appErrors "github.com/schedassist/sched-assist-api/pkg/errors"
)

// ConflictService exposes the inspect/cancel paths for pending confirmations,
// the explicit escape hatch for conflicts the user never answers.
type ConflictService struct {
	store  conflictStore
	logger *zap.Logger
	ttl    time.Duration
}

// NewConflictService instantiates ConflictService.
func NewConflictService(store conflictStore, logger *zap.Logger, ttl time.Duration) *ConflictService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConflictService{store: store, logger: logger, ttl: ttl}
}

// Get returns the outstanding confirmation for a user.
func (s *ConflictService) Get(ctx context.Context, userID string) (*dto.PendingConflictResponse, error) {
	if userID == "" {
		return nil, appErrors.New(appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "User ID is required")
	}
	pending, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to read pending conflict")
	}
	if pending == nil {
		return nil, appErrors.ErrNoPending
	}
	return &dto.PendingConflictResponse{
		UserID:    userID,
		Message:   pending.Message,
		CreatedAt: pending.CreatedAt,
		ExpiresAt: pending.CreatedAt.Add(s.ttl),
	}, nil
}

// Cancel drops the outstanding confirmation. Cancelling when nothing is
// pending succeeds silently.
func (s *ConflictService) Cancel(ctx context.Context, userID string) error {
	if userID == "" {
		return appErrors.New(appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "User ID is required")
	}
	if err := s.store.Delete(ctx, userID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to cancel pending conflict")
	}
	s.logger.Info("pending_conflict_cancelled", zap.String("user_id", userID))
	return nil
}
