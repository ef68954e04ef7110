package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"json-prompt-generator/backend/internal/features/history/application"
)

// HistoryHandler serves the conversion history.
type HistoryHandler struct {
	historyService application.HistoryService
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(historyService application.HistoryService) *HistoryHandler {
	return &HistoryHandler{historyService: historyService}
}

// ListHistoryHandler handles GET /api/history?page=&limit=.
func (h *HistoryHandler) ListHistoryHandler(c *gin.Context) {
	page := parseInt(c.Query("page"), 1)
	limit := parseInt(c.Query("limit"), 10)

	result, err := h.historyService.List(c.Request.Context(), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list history: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

func parseInt(val string, fallback int) int {
	if val == "" {
		return fallback
	}
	num, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return num
}
