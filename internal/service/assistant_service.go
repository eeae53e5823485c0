package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/schedassist/sched-assist-api/internal/dto"
	"github.com/schedassist/sched-assist-api/internal/models"
	"github.com/schedassist/sched-assist-api/internal/oracle"
	appErrors "github.com/schedassist/sched-assist-api/pkg/errors"
)

type timetableStore interface {
	ListAll(ctx context.Context, userID string) (models.UserTimetable, error)
	ReplaceEntry(ctx context.Context, userID string, entry models.TimetableEntry) (models.DateBucket, error)
}

type conflictStore interface {
	Get(ctx context.Context, userID string) (*models.PendingConflict, error)
	Put(ctx context.Context, userID string, pc models.PendingConflict, ttl time.Duration) error
	Delete(ctx context.Context, userID string) error
}

type completionOracle interface {
	Complete(ctx context.Context, messages []oracle.Message) (string, error)
}

type auditLogger interface {
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
}

// AssistantService runs the conversational scheduling flow: history load,
// confirmation handling, oracle call, reply interpretation and persistence.
type AssistantService struct {
	timetable  timetableStore
	conflicts  conflictStore
	oracle     completionOracle
	audit      auditLogger
	validator  *validator.Validate
	logger     *zap.Logger
	metrics    *MetricsService
	pendingTTL time.Duration
}

// NewAssistantService instantiates AssistantService. audit and metrics may be nil.
func NewAssistantService(
	timetable timetableStore,
	conflicts conflictStore,
	completer completionOracle,
	audit auditLogger,
	validate *validator.Validate,
	logger *zap.Logger,
	metrics *MetricsService,
	pendingTTL time.Duration,
) *AssistantService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssistantService{
		timetable:  timetable,
		conflicts:  conflicts,
		oracle:     completer,
		audit:      audit,
		validator:  validate,
		logger:     logger,
		metrics:    metrics,
		pendingTTL: pendingTTL,
	}
}

// Chat handles one scheduling request end to end and returns the reply body
// for the legacy /chat contract. Errors are typed: validation failures map to
// 400, downstream failures to 500. Unparseable oracle output is not an error;
// it yields the fixed fallback reply.
func (s *AssistantService) Chat(ctx context.Context, req dto.ChatRequest) (dto.ChatReply, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.ChatReply{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "User ID is required")
	}

	timetable, err := s.timetable.ListAll(ctx, req.UserID)
	if err != nil {
		return dto.ChatReply{}, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to load timetable history")
	}
	history, err := json.Marshal(timetable)
	if err != nil {
		return dto.ChatReply{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to serialize timetable history")
	}

	effective, err := s.resolveConfirmation(ctx, req.UserID, req.Message)
	if err != nil {
		return dto.ChatReply{}, err
	}

	start := time.Now()
	raw, err := s.oracle.Complete(ctx, []oracle.Message{
		{Role: oracle.RoleSystem, Content: oracle.SystemPrompt(string(history))},
		{Role: oracle.RoleUser, Content: effective},
	})
	s.metrics.ObserveOracleRequest(time.Since(start), err)
	if err != nil {
		return dto.ChatReply{}, appErrors.Wrap(err, appErrors.ErrOracle.Code, appErrors.ErrOracle.Status, "completion oracle failed")
	}

	proposal := oracle.Interpret(raw)
	s.metrics.CountProposal(string(proposal.Outcome))
	s.logger.Debug("oracle_reply",
		zap.String("user_id", req.UserID),
		zap.String("outcome", string(proposal.Outcome)),
	)

	switch proposal.Outcome {
	case oracle.OutcomeUnparseable:
		return dto.NewChatReply(oracle.FallbackMessage, nil), nil

	case oracle.OutcomeConflict:
		pc := models.PendingConflict{Message: effective, CreatedAt: time.Now().UTC()}
		if err := s.conflicts.Put(ctx, req.UserID, pc, s.pendingTTL); err != nil {
			return dto.ChatReply{}, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to record pending conflict")
		}
		s.logger.Info("pending_conflict_recorded", zap.String("user_id", req.UserID))
		return dto.NewChatReply(proposal.Message, proposal.Updates), nil

	case oracle.OutcomeScheduled:
		if err := s.persist(ctx, req.UserID, proposal.Entry); err != nil {
			return dto.ChatReply{}, err
		}
		return dto.NewChatReply(proposal.Message, proposal.Updates), nil

	default:
		// Informational replies and incomplete payloads are echoed untouched;
		// nothing is persisted.
		return dto.NewChatReply(proposal.Message, proposal.Updates), nil
	}
}

// resolveConfirmation rewrites an exact YES reply into an explicit replacement
// instruction and clears the pending entry. Any other message leaves the
// pending conflict in place for a later retry or explicit cancel.
func (s *AssistantService) resolveConfirmation(ctx context.Context, userID, message string) (string, error) {
	pending, err := s.conflicts.Get(ctx, userID)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to read pending conflict")
	}
	if pending == nil || strings.ToUpper(strings.TrimSpace(message)) != "YES" {
		return message, nil
	}

	if err := s.conflicts.Delete(ctx, userID); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to clear pending conflict")
	}
	s.logger.Info("conflict_confirmed", zap.String("user_id", userID))
	return oracle.ConfirmationRewrite(pending.Message), nil
}

func (s *AssistantService) persist(ctx context.Context, userID string, entry models.TimetableEntry) error {
	start := time.Now()
	bucket, err := s.timetable.ReplaceEntry(ctx, userID, entry)
	s.metrics.ObserveStoreWrite(time.Since(start))
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to store schedule update")
	}
	s.logger.Info("schedule_updated",
		zap.String("user_id", userID),
		zap.String("date", entry.Date),
		zap.String("time", entry.Time),
		zap.Int("bucket_size", len(bucket.Updates)),
	)

	if s.audit != nil {
		values, _ := json.Marshal(entry)
		if err := s.audit.CreateAuditLog(ctx, &models.AuditLog{
			UserID:    userID,
			Action:    models.AuditActionReplaceEntry,
			Date:      entry.Date,
			NewValues: values,
		}); err != nil {
			s.logger.Warn("audit_log_failed", zap.String("user_id", userID), zap.Error(err))
		}
	}
	return nil
}
