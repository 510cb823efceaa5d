package handlers

import (
	"github.com/gin-gonic/gin"
	portssvc "github.com/kushtati/TRANSG/internal/core/ports/services"
	"github.com/kushtati/TRANSG/internal/dto"
)

// assistantHandler handles the customs assistant chat endpoint.
type assistantHandler struct {
	assistantSvc portssvc.AssistantSvcFacade
}

// newAssistantHandler creates a new assistantHandler.
func newAssistantHandler(assistantSvc portssvc.AssistantSvcFacade) *assistantHandler {
	return &assistantHandler{assistantSvc: assistantSvc}
}

// RegisterAssistantRoutes registers the chat route behind the tighter
// assistant rate bucket.
func RegisterAssistantRoutes(rg *gin.RouterGroup, assistantSvc portssvc.AssistantSvcFacade, assistantLimiter gin.HandlerFunc) {
	h := newAssistantHandler(assistantSvc)

	rg.POST("/assistant/chat", assistantLimiter, h.chat)
}

// chat godoc
// @Summary Ask the customs assistant
// @Description Sends one message to the language-model assistant, primed with Guinean customs context. Unavailable when no API key is configured.
// @Tags assistant
// @Accept json
// @Produce json
// @Param chat body dto.ChatRequest true "Message"
// @Success 200 {object} dto.Response{data=dto.ChatResponse}
// @Failure 400 {object} map[string]any "Empty message"
// @Failure 503 {object} map[string]any "Assistant not configured"
// @Security BearerAuth
// @Router /assistant/chat [post]
func (h *assistantHandler) chat(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		return
	}

	var req dto.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	reply, err := h.assistantSvc.Chat(c.Request.Context(), identity, req.Message)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, dto.ChatResponse{Reply: reply})
}
