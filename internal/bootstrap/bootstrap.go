// Package bootstrap assembles the normalization pipeline from process configuration.
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"json-prompt-generator/backend/internal/config"
	configapp "json-prompt-generator/backend/internal/features/config/application"
	"json-prompt-generator/backend/internal/features/normalization/application"
	"json-prompt-generator/backend/internal/features/normalization/infrastructure"
)

// Pipeline is the wired normalization stack.
type Pipeline struct {
	Service       application.NormalizationService
	ConfigService configapp.ConfigService
}

// NewPipeline loads the generator settings and selects the generator once:
// AI-backed when credentials exist, heuristic-only otherwise.
func NewPipeline(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Pipeline, error) {
	configService := configapp.NewConfigService(config.NewAppConfigService(cfg.AppConfigPath, logger))
	settings, maxFields, err := configService.GeneratorSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to load generator settings: %w", err)
	}

	generator, err := newGenerator(ctx, cfg.AI, settings, logger)
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		Service:       application.NewNormalizationService(generator, maxFields, logger),
		ConfigService: configService,
	}, nil
}

func newGenerator(ctx context.Context, aiConfig infrastructure.AIConfig, settings application.AdapterSettings, logger *zap.Logger) (application.Generator, error) {
	client, err := infrastructure.NewAIClient(ctx, aiConfig)
	if errors.Is(err, infrastructure.ErrNoCredentials) {
		logger.Info("no AI credentials found, running heuristic-only",
			zap.String("provider", aiConfig.Provider))
		return application.NewHeuristicOnlyGenerator(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create AI client: %w", err)
	}

	logger.Info("AI backend configured", zap.String("backend", client.Name()))
	return application.NewAIGenerator(application.NewAdapter(client, settings, logger)), nil
}
