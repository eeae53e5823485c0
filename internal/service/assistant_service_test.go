package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schedassist/sched-assist-api/internal/dto"
	"github.com/schedassist/sched-assist-api/internal/models"
	"github.com/schedassist/sched-assist-api/internal/oracle"
	"github.com/schedassist/sched-assist-api/internal/repository"
	appErrors "github.com/schedassist/sched-assist-api/pkg/errors"
)

type timetableStoreStub struct {
	timetable  models.UserTimetable
	listErr    error
	replaceErr error
	replaced   []models.TimetableEntry
}

func (s *timetableStoreStub) ListAll(ctx context.Context, userID string) (models.UserTimetable, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	if s.timetable == nil {
		return models.UserTimetable{}, nil
	}
	return s.timetable, nil
}

func (s *timetableStoreStub) ReplaceEntry(ctx context.Context, userID string, entry models.TimetableEntry) (models.DateBucket, error) {
	if s.replaceErr != nil {
		return models.DateBucket{}, s.replaceErr
	}
	s.replaced = append(s.replaced, entry)
	if s.timetable == nil {
		s.timetable = models.UserTimetable{}
	}
	bucket := s.timetable[entry.Date]
	kept := []models.TimetableEntry{}
	for _, existing := range bucket.Updates {
		if existing.Time != entry.Time {
			kept = append(kept, existing)
		}
	}
	bucket.Updates = append(kept, entry)
	s.timetable[entry.Date] = bucket
	return bucket, nil
}

type oracleStub struct {
	reply    string
	err      error
	messages []oracle.Message
}

func (s *oracleStub) Complete(ctx context.Context, messages []oracle.Message) (string, error) {
	s.messages = messages
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

type auditStub struct {
	logs []*models.AuditLog
}

func (s *auditStub) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	s.logs = append(s.logs, log)
	return nil
}

func newAssistant(store *timetableStoreStub, conflicts conflictStore, completer completionOracle, audit auditLogger) *AssistantService {
	return NewAssistantService(store, conflicts, completer, audit, validator.New(), nil, nil, 30*time.Minute)
}

func TestAssistantChatRequiresUserID(t *testing.T) {
	svc := newAssistant(&timetableStoreStub{}, repository.NewMemoryConflictStore(), &oracleStub{}, nil)
	_, err := svc.Chat(context.Background(), dto.ChatRequest{Message: "schedule Math"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Equal(t, "User ID is required", appErrors.FromError(err).Message)
}

func TestAssistantChatFallbackOnUnparseableReply(t *testing.T) {
	store := &timetableStoreStub{}
	conflicts := repository.NewMemoryConflictStore()
	svc := newAssistant(store, conflicts, &oracleStub{reply: "I am not sure what you mean."}, nil)

	reply, err := svc.Chat(context.Background(), dto.ChatRequest{UserID: "u1", Message: "do something"})
	require.NoError(t, err)
	assert.Equal(t, oracle.FallbackMessage, reply.Message)
	assert.NotNil(t, reply.Updates)
	assert.Empty(t, reply.Updates)
	assert.Empty(t, store.replaced)

	pending, err := conflicts.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Nil(t, pending)
}

func TestAssistantChatRecordsConflict(t *testing.T) {
	store := &timetableStoreStub{}
	conflicts := repository.NewMemoryConflictStore()
	completer := &oracleStub{reply: `{"message": "A conflict exists with Math on 2024-01-01 from 10:00 to 11:00. Do you want to replace it? (YES/NO)", "updates": {}}`}
	svc := newAssistant(store, conflicts, completer, nil)

	reply, err := svc.Chat(context.Background(), dto.ChatRequest{UserID: "u1", Message: "schedule Physics at 10"})
	require.NoError(t, err)
	assert.Contains(t, reply.Message, "A conflict exists")
	assert.Empty(t, reply.Updates)
	assert.Empty(t, store.replaced)

	pending, err := conflicts.Get(context.Background(), "u1")
	require.NoError(t, err)
	require.NotNil(t, pending)
	assert.Equal(t, "schedule Physics at 10", pending.Message)
}

func TestAssistantChatYesConfirmationRewritesMessage(t *testing.T) {
	store := &timetableStoreStub{}
	conflicts := repository.NewMemoryConflictStore()
	require.NoError(t, conflicts.Put(context.Background(), "u1",
		models.PendingConflict{Message: "schedule Physics at 10", CreatedAt: time.Now()}, time.Minute))

	completer := &oracleStub{reply: `{"message": "Event replaced successfully.", "updates": {"date": "2024-01-01", "subject": "Physics", "time": "10:00", "duration": "1 hour"}}`}
	svc := newAssistant(store, conflicts, completer, nil)

	reply, err := svc.Chat(context.Background(), dto.ChatRequest{UserID: "u1", Message: "  yes "})
	require.NoError(t, err)
	assert.Equal(t, "Event replaced successfully.", reply.Message)

	require.Len(t, completer.messages, 2)
	assert.Equal(t, "User confirmed replacement. Replace schedule Physics at 10.", completer.messages[1].Content)

	pending, err := conflicts.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Nil(t, pending, "pending conflict must be cleared after YES")
	require.Len(t, store.replaced, 1)
}

func TestAssistantChatOtherReplyLeavesPendingInPlace(t *testing.T) {
	conflicts := repository.NewMemoryConflictStore()
	require.NoError(t, conflicts.Put(context.Background(), "u1",
		models.PendingConflict{Message: "schedule Physics at 10", CreatedAt: time.Now()}, time.Minute))

	completer := &oracleStub{reply: `{"message": "Here is your timetable.", "updates": {}}`}
	svc := newAssistant(&timetableStoreStub{}, conflicts, completer, nil)

	_, err := svc.Chat(context.Background(), dto.ChatRequest{UserID: "u1", Message: "what do I have tomorrow?"})
	require.NoError(t, err)
	assert.Equal(t, "what do I have tomorrow?", completer.messages[1].Content)

	pending, err := conflicts.Get(context.Background(), "u1")
	require.NoError(t, err)
	require.NotNil(t, pending, "a non-YES reply must not clear the pending conflict")
}

func TestAssistantChatReplacesEntryByTimeKey(t *testing.T) {
	store := &timetableStoreStub{
		timetable: models.UserTimetable{
			"2024-01-01": {Updates: []models.TimetableEntry{
				{Date: "2024-01-01", Subject: "Math", Time: "10:00", Duration: "1 hour"},
				{Date: "2024-01-01", Subject: "History", Time: "14:00", Duration: "1 hour"},
			}},
		},
	}
	completer := &oracleStub{reply: `{"message": "Event replaced successfully.", "updates": {"date": "2024-01-01", "subject": "Physics", "time": "10:00", "duration": "1.5 hours"}}`}
	svc := newAssistant(store, repository.NewMemoryConflictStore(), completer, nil)

	_, err := svc.Chat(context.Background(), dto.ChatRequest{UserID: "u1", Message: "replace Math with Physics"})
	require.NoError(t, err)

	bucket := store.timetable["2024-01-01"]
	require.Len(t, bucket.Updates, 2)
	var atTen []models.TimetableEntry
	for _, entry := range bucket.Updates {
		if entry.Time == "10:00" {
			atTen = append(atTen, entry)
		}
	}
	require.Len(t, atTen, 1, "exactly one entry may occupy the 10:00 slot")
	assert.Equal(t, "Physics", atTen[0].Subject)
	assert.Equal(t, "1.5 hours", atTen[0].Duration)
}

func TestAssistantChatSkipsIncompleteUpdates(t *testing.T) {
	store := &timetableStoreStub{}
	completer := &oracleStub{reply: `{"message": "Scheduled.", "updates": {"date": "2024-01-01", "subject": "Math", "time": "10:00", "duration": ""}}`}
	svc := newAssistant(store, repository.NewMemoryConflictStore(), completer, nil)

	reply, err := svc.Chat(context.Background(), dto.ChatRequest{UserID: "u1", Message: "schedule Math"})
	require.NoError(t, err)
	assert.Empty(t, store.replaced, "incomplete payloads must not be persisted")
	assert.Equal(t, "Scheduled.", reply.Message)
	assert.Equal(t, "Math", reply.Updates["subject"], "partial payload is echoed unchanged")
}

func TestAssistantChatOracleFailure(t *testing.T) {
	svc := newAssistant(&timetableStoreStub{}, repository.NewMemoryConflictStore(), &oracleStub{err: errors.New("boom")}, nil)
	_, err := svc.Chat(context.Background(), dto.ChatRequest{UserID: "u1", Message: "hi"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrOracle.Code, appErrors.FromError(err).Code)
}

func TestAssistantChatStoreFailure(t *testing.T) {
	svc := newAssistant(&timetableStoreStub{listErr: errors.New("redis down")}, repository.NewMemoryConflictStore(), &oracleStub{}, nil)
	_, err := svc.Chat(context.Background(), dto.ChatRequest{UserID: "u1", Message: "hi"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrStore.Code, appErrors.FromError(err).Code)
}

func TestAssistantChatPromptCarriesHistory(t *testing.T) {
	store := &timetableStoreStub{
		timetable: models.UserTimetable{
			"2024-01-01": {Updates: []models.TimetableEntry{
				{Date: "2024-01-01", Subject: "Math", Time: "10:00", Duration: "1 hour"},
			}},
		},
	}
	completer := &oracleStub{reply: `{"message": "ok", "updates": {}}`}
	svc := newAssistant(store, repository.NewMemoryConflictStore(), completer, nil)

	_, err := svc.Chat(context.Background(), dto.ChatRequest{UserID: "u1", Message: "what's on?"})
	require.NoError(t, err)
	require.Len(t, completer.messages, 2)
	assert.Equal(t, oracle.RoleSystem, completer.messages[0].Role)
	assert.Contains(t, completer.messages[0].Content, `"2024-01-01"`)
	assert.Contains(t, completer.messages[0].Content, `"subject":"Math"`)
}

func TestAssistantChatWritesAuditLog(t *testing.T) {
	store := &timetableStoreStub{}
	audit := &auditStub{}
	completer := &oracleStub{reply: `{"message": "Event scheduled.", "updates": {"date": "2024-01-01", "subject": "Math", "time": "10:00", "duration": "1 hour"}}`}
	svc := newAssistant(store, repository.NewMemoryConflictStore(), completer, audit)

	_, err := svc.Chat(context.Background(), dto.ChatRequest{UserID: "u1", Message: "schedule Math"})
	require.NoError(t, err)
	require.Len(t, audit.logs, 1)
	assert.Equal(t, "u1", audit.logs[0].UserID)
	assert.Equal(t, models.AuditActionReplaceEntry, audit.logs[0].Action)
	assert.Equal(t, "2024-01-01", audit.logs[0].Date)
}
