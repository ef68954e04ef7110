package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"json-prompt-generator/backend/internal/features/config/application"
	"json-prompt-generator/backend/internal/features/config/domain"
)

// AppConfigHandler holds the config service.
type AppConfigHandler struct {
	configService application.ConfigService
	logger        *zap.Logger
}

// NewAppConfigHandler creates a new AppConfigHandler.
func NewAppConfigHandler(configService application.ConfigService, logger *zap.Logger) *AppConfigHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AppConfigHandler{
		configService: configService,
		logger:        logger,
	}
}

// GetAppConfigHandler handles fetching the generator settings.
func (h *AppConfigHandler) GetAppConfigHandler(c *gin.Context) {
	appConfig, err := h.configService.GetConfig()
	if err != nil {
		h.logger.Error("failed to load app config", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load app config: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, appConfig)
}

// SaveAppConfigHandler handles saving the generator settings.
func (h *AppConfigHandler) SaveAppConfigHandler(c *gin.Context) {
	appConfig := domain.DefaultAppConfig()
	if err := c.ShouldBindJSON(appConfig); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.configService.SaveConfig(appConfig); err != nil {
		if errors.Is(err, application.ErrInvalidConfig) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("failed to save app config", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save app config: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "App config saved successfully; restart to apply"})
}
