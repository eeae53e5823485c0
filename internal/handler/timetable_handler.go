package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/schedassist/sched-assist-api/internal/dto"
	"github.com/schedassist/sched-assist-api/internal/service"
	"github.com/schedassist/sched-assist-api/pkg/response"
)

type timetableService interface {
	Get(ctx context.Context, userID string) (*dto.TimetableResponse, error)
	GetDate(ctx context.Context, userID, date string) (*dto.DateBucketResponse, error)
}

type exportService interface {
	Export(ctx context.Context, userID, format string) (*service.ExportResult, error)
}

// TimetableHandler serves stored timetable reads and exports.
type TimetableHandler struct {
	timetables timetableService
	exports    exportService
}

// NewTimetableHandler constructs the handler.
func NewTimetableHandler(timetables timetableService, exports exportService) *TimetableHandler {
	return &TimetableHandler{timetables: timetables, exports: exports}
}

// Get godoc
// @Summary Get a user's full timetable
// @Tags Timetables
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} response.Envelope
// @Router /timetables/{userId} [get]
func (h *TimetableHandler) Get(c *gin.Context) {
	timetable, err := h.timetables.Get(c.Request.Context(), c.Param("userId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, timetable)
}

// GetDate godoc
// @Summary Get one date bucket
// @Tags Timetables
// @Produce json
// @Param userId path string true "User ID"
// @Param date path string true "Date key"
// @Success 200 {object} response.Envelope
// @Router /timetables/{userId}/dates/{date} [get]
func (h *TimetableHandler) GetDate(c *gin.Context) {
	bucket, err := h.timetables.GetDate(c.Request.Context(), c.Param("userId"), c.Param("date"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, bucket)
}

// Export godoc
// @Summary Export a user's timetable
// @Tags Timetables
// @Produce text/csv
// @Produce application/pdf
// @Param userId path string true "User ID"
// @Param format query string false "csv or pdf" default(csv)
// @Success 200
// @Router /timetables/{userId}/export [get]
func (h *TimetableHandler) Export(c *gin.Context) {
	format := c.DefaultQuery("format", service.ExportFormatCSV)
	result, err := h.exports.Export(c.Request.Context(), c.Param("userId"), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Data(http.StatusOK, result.ContentType, result.Content)
}
