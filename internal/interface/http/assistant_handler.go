package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/raushan165/Taskpilot/pkg/assistant"
	"github.com/raushan165/Taskpilot/pkg/response"
)

type AssistantHandler struct {
	now func() time.Time
}

func NewAssistantHandler() *AssistantHandler {
	return &AssistantHandler{now: time.Now}
}

type analyzeRequest struct {
	Tasks []assistant.Task `json:"tasks"`
	// Today pins the reference day to the caller's calendar; defaults to the server clock.
	Today *assistant.Date `json:"today"`
}

// Analyze POST /api/assistant/analyze {tasks, today?}
func (h *AssistantHandler) Analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	today := h.now()
	if req.Today != nil && !req.Today.IsZero() {
		today = req.Today.Time
	}
	msgs := assistant.Analyze(req.Tasks, today)
	if msgs == nil {
		msgs = []assistant.Message{}
	}
	response.Success(c, http.StatusOK, "", gin.H{"messages": msgs})
}
