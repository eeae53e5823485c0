package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/schedassist/sched-assist-api/internal/dto"
	"github.com/schedassist/sched-assist-api/pkg/response"
)

type conflictService interface {
	Get(ctx context.Context, userID string) (*dto.PendingConflictResponse, error)
	Cancel(ctx context.Context, userID string) error
}

// ConflictHandler exposes the pending-confirmation inspect/cancel paths.
type ConflictHandler struct {
	service conflictService
}

// NewConflictHandler constructs the handler.
func NewConflictHandler(svc conflictService) *ConflictHandler {
	return &ConflictHandler{service: svc}
}

// Get godoc
// @Summary Inspect a user's pending conflict confirmation
// @Tags Conflicts
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} response.Envelope
// @Router /conflicts/{userId} [get]
func (h *ConflictHandler) Get(c *gin.Context) {
	pending, err := h.service.Get(c.Request.Context(), c.Param("userId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, pending)
}

// Cancel godoc
// @Summary Cancel a user's pending conflict confirmation
// @Tags Conflicts
// @Produce json
// @Param userId path string true "User ID"
// @Success 204
// @Router /conflicts/{userId} [delete]
func (h *ConflictHandler) Cancel(c *gin.Context) {
	if err := h.service.Cancel(c.Request.Context(), c.Param("userId")); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
