package application

import (
	"fmt"
	"time"

	"json-prompt-generator/backend/internal/config"
	"json-prompt-generator/backend/internal/features/config/domain"
	normalization "json-prompt-generator/backend/internal/features/normalization/application"
)

// ConfigService defines the interface for generator settings management.
type ConfigService interface {
	GetConfig() (*domain.AppConfig, error)
	SaveConfig(config *domain.AppConfig) error
	GeneratorSettings() (normalization.AdapterSettings, int, error)
}

// configService is the implementation of ConfigService.
type configService struct {
	store config.AppConfigService
}

// NewConfigService creates a new instance of configService.
func NewConfigService(store config.AppConfigService) ConfigService {
	return &configService{store: store}
}

func (s *configService) GetConfig() (*domain.AppConfig, error) {
	return s.store.LoadAppConfig()
}

// SaveConfig validates and persists the settings. They take effect on the next start.
func (s *configService) SaveConfig(appConfig *domain.AppConfig) error {
	if err := appConfig.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return s.store.SaveAppConfig(appConfig)
}

// GeneratorSettings converts the stored settings into adapter settings and the field cap.
func (s *configService) GeneratorSettings() (normalization.AdapterSettings, int, error) {
	appConfig, err := s.store.LoadAppConfig()
	if err != nil {
		return normalization.AdapterSettings{}, 0, err
	}
	return ToAdapterSettings(appConfig), appConfig.MaxFields, nil
}

// ToAdapterSettings maps an AppConfig onto adapter settings.
func ToAdapterSettings(c *domain.AppConfig) normalization.AdapterSettings {
	return normalization.AdapterSettings{
		Model:       c.ModelParams.Model,
		Temperature: float32(c.ModelParams.Temperature),
		MaxTokens:   c.ModelParams.MaxTokens,
		MaxRetries:  c.Retry.MaxRetries,
		RetryDelay:  time.Duration(c.Retry.DelayMS) * time.Millisecond,
		Timeout:     time.Duration(c.ModelParams.TimeoutSeconds) * time.Second,
		JSONMode:    c.ModelParams.JSONMode,
	}
}
