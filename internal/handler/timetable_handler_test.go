package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schedassist/sched-assist-api/internal/dto"
	"github.com/schedassist/sched-assist-api/internal/models"
	"github.com/schedassist/sched-assist-api/internal/service"
	appErrors "github.com/schedassist/sched-assist-api/pkg/errors"
)

type timetableServiceStub struct {
	timetable *dto.TimetableResponse
	bucket    *dto.DateBucketResponse
	err       error
}

func (s *timetableServiceStub) Get(ctx context.Context, userID string) (*dto.TimetableResponse, error) {
	return s.timetable, s.err
}

func (s *timetableServiceStub) GetDate(ctx context.Context, userID, date string) (*dto.DateBucketResponse, error) {
	return s.bucket, s.err
}

type exportServiceStub struct {
	result *service.ExportResult
	err    error
	format string
}

func (s *exportServiceStub) Export(ctx context.Context, userID, format string) (*service.ExportResult, error) {
	s.format = format
	return s.result, s.err
}

func timetableRouter(timetables timetableService, exports exportService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewTimetableHandler(timetables, exports)
	r.GET("/timetables/:userId", h.Get)
	r.GET("/timetables/:userId/dates/:date", h.GetDate)
	r.GET("/timetables/:userId/export", h.Export)
	return r
}

func TestTimetableHandlerGet(t *testing.T) {
	svc := &timetableServiceStub{timetable: &dto.TimetableResponse{
		UserID: "u1",
		Dates: models.UserTimetable{"2024-01-01": {Updates: []models.TimetableEntry{
			{Date: "2024-01-01", Subject: "Math", Time: "10:00", Duration: "1 hour"},
		}}},
	}}

	w := httptest.NewRecorder()
	timetableRouter(svc, &exportServiceStub{}).ServeHTTP(w,
		httptest.NewRequest(http.MethodGet, "/timetables/u1", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"2024-01-01"`)
	assert.Contains(t, w.Body.String(), `"Math"`)
}

func TestTimetableHandlerGetStoreError(t *testing.T) {
	svc := &timetableServiceStub{err: appErrors.ErrStore}

	w := httptest.NewRecorder()
	timetableRouter(svc, &exportServiceStub{}).ServeHTTP(w,
		httptest.NewRequest(http.MethodGet, "/timetables/u1", nil))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "STORE_ERROR")
}

func TestTimetableHandlerExportDefaultsToCSV(t *testing.T) {
	exports := &exportServiceStub{result: &service.ExportResult{
		Content:     []byte("Date,Time,Subject,Duration\n"),
		ContentType: "text/csv",
		Filename:    "timetable-u1.csv",
	}}

	w := httptest.NewRecorder()
	timetableRouter(&timetableServiceStub{}, exports).ServeHTTP(w,
		httptest.NewRequest(http.MethodGet, "/timetables/u1/export", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, service.ExportFormatCSV, exports.format)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="timetable-u1.csv"`, w.Header().Get("Content-Disposition"))
}
