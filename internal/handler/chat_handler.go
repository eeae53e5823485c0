package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/schedassist/sched-assist-api/internal/dto"
	appErrors "github.com/schedassist/sched-assist-api/pkg/errors"
)

type assistantService interface {
	Chat(ctx context.Context, req dto.ChatRequest) (dto.ChatReply, error)
}

// ChatHandler serves the legacy /chat contract. Unlike the management API it
// responds with raw bodies — {"error": ...} and {"message": ..., "updates": ...} —
// because existing frontends depend on those exact shapes.
type ChatHandler struct {
	service assistantService
}

// NewChatHandler constructs the handler.
func NewChatHandler(svc assistantService) *ChatHandler {
	return &ChatHandler{service: svc}
}

// Chat godoc
// @Summary Converse with the scheduling assistant
// @Tags Assistant
// @Accept json
// @Produce json
// @Param payload body dto.ChatRequest true "Chat payload"
// @Success 200 {object} dto.ChatReply
// @Router /chat [post]
func (h *ChatHandler) Chat(c *gin.Context) {
	var req dto.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.UserID) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User ID is required"})
		return
	}

	reply, err := h.service.Chat(c.Request.Context(), req)
	if err != nil {
		appErr := appErrors.FromError(err)
		if appErr.Status == http.StatusBadRequest {
			c.JSON(http.StatusBadRequest, gin.H{"error": "User ID is required"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": appErr.Error()})
		return
	}

	c.JSON(http.StatusOK, reply)
}
