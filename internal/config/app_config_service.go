package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"json-prompt-generator/backend/internal/features/config/domain"
)

// AppConfigService defines the interface for application configuration management.
type AppConfigService interface {
	LoadAppConfig() (*domain.AppConfig, error)
	SaveAppConfig(config *domain.AppConfig) error
}

// appConfigService is the implementation of AppConfigService.
type appConfigService struct {
	configPath string
	logger     *zap.Logger
}

// NewAppConfigService creates a new instance of appConfigService.
func NewAppConfigService(configPath string, logger *zap.Logger) AppConfigService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &appConfigService{configPath: configPath, logger: logger}
}

// LoadAppConfig loads the application configuration from the configured JSON file.
// A missing file yields the defaults; fields absent from the file keep their defaults.
func (s *appConfigService) LoadAppConfig() (*domain.AppConfig, error) {
	absPath, err := filepath.Abs(s.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path for %s: %w", s.configPath, err)
	}

	appConfig := domain.DefaultAppConfig()
	data, err := os.ReadFile(absPath)
	if errors.Is(err, os.ErrNotExist) {
		s.logger.Info("app config not found, using defaults", zap.String("path", absPath))
		return appConfig, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read app config file %s: %w", absPath, err)
	}

	if err := json.Unmarshal(data, appConfig); err != nil {
		return nil, fmt.Errorf("failed to unmarshal app config from %s: %w", absPath, err)
	}
	if err := appConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid app config %s: %w", absPath, err)
	}

	s.logger.Debug("app config loaded", zap.String("path", absPath))
	return appConfig, nil
}

// SaveAppConfig saves the application configuration to the configured JSON file.
func (s *appConfigService) SaveAppConfig(appConfig *domain.AppConfig) error {
	absPath, err := filepath.Abs(s.configPath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for %s: %w", s.configPath, err)
	}

	data, err := json.MarshalIndent(appConfig, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal app config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory for %s: %w", absPath, err)
	}
	if err := os.WriteFile(absPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write app config to file %s: %w", absPath, err)
	}
	return nil
}
