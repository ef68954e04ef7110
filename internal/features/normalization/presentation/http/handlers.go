package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"json-prompt-generator/backend/internal/features/normalization/application"
	"json-prompt-generator/backend/internal/features/normalization/domain"
	"json-prompt-generator/backend/internal/middleware"
)

// HistoryRecorder stores completed conversions.
type HistoryRecorder interface {
	Record(ctx context.Context, originalText string, result *domain.Result) error
}

// NormalizationHandler holds the normalization service and an optional history recorder.
type NormalizationHandler struct {
	normalizationService application.NormalizationService
	recorder             HistoryRecorder
	logger               *zap.Logger
}

// NewNormalizationHandler creates a new NormalizationHandler. recorder may be nil.
func NewNormalizationHandler(normalizationService application.NormalizationService, recorder HistoryRecorder, logger *zap.Logger) *NormalizationHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NormalizationHandler{
		normalizationService: normalizationService,
		recorder:             recorder,
		logger:               logger,
	}
}

// GeneratePromptHandler converts free text into a structured JSON prompt.
func (h *NormalizationHandler) GeneratePromptHandler(c *gin.Context) {
	var req domain.PromptRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.normalizationService.Normalize(c.Request.Context(), req.Text, domain.Options{
		RequireAI: req.RequireAI,
		MaxFields: req.NumKeys,
	})
	switch {
	case errors.Is(err, domain.ErrEmptyInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Text cannot be empty"})
		return
	case errors.Is(err, domain.ErrBackendNotConfigured):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "AI backend not configured"})
		return
	case err != nil:
		h.logger.Error("failed to generate prompt",
			zap.String("request_id", middleware.RequestID(c)),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate prompt: " + err.Error()})
		return
	}

	if h.recorder != nil {
		if err := h.recorder.Record(c.Request.Context(), req.Text, result); err != nil {
			h.logger.Warn("failed to record conversion",
				zap.String("request_id", middleware.RequestID(c)),
				zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, domain.PromptResponse{
		OriginalText:      req.Text,
		JSONPrompt:        result.Prompt,
		AIGeneratedOutput: result.Status,
	})
}

// HealthHandler reports liveness and whether an AI backend is configured.
func (h *NormalizationHandler) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":    "JSON Prompt Generator Backend is running!",
		"ai_enabled": h.normalizationService.AIEnabled(),
	})
}
