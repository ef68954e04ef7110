package domain

import (
	"errors"
	"fmt"
)

// AppConfig represents the generator settings stored in config/app_config.json.
type AppConfig struct {
	ModelParams ModelParams `json:"model_params"`
	// MaxFields caps the number of top-level fields in AI-generated prompts.
	MaxFields int         `json:"max_fields"`
	Retry     RetryParams `json:"retry"`
}

// ModelParams defines the parameters for the AI model.
type ModelParams struct {
	Model          string  `json:"model,omitempty"` // empty: provider default
	Temperature    float64 `json:"temperature"`
	MaxTokens      int     `json:"max_tokens"`
	TimeoutSeconds int     `json:"timeout_seconds"`
	JSONMode       bool    `json:"json_mode"`
}

// RetryParams controls the fixed retry policy of backend calls.
type RetryParams struct {
	MaxRetries int `json:"max_retries"`
	DelayMS    int `json:"delay_ms"`
}

// DefaultAppConfig returns the settings used when no config file exists.
func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		ModelParams: ModelParams{
			Temperature:    0,
			MaxTokens:      512,
			TimeoutSeconds: 30,
			JSONMode:       true,
		},
		MaxFields: 8,
		Retry: RetryParams{
			MaxRetries: 2,
			DelayMS:    500,
		},
	}
}

// Validate checks that every value is in range.
func (c *AppConfig) Validate() error {
	var errs []error
	if c.MaxFields < 1 || c.MaxFields > 8 {
		errs = append(errs, fmt.Errorf("max_fields must be between 1 and 8, got %d", c.MaxFields))
	}
	if c.ModelParams.Temperature < 0 || c.ModelParams.Temperature > 2 {
		errs = append(errs, fmt.Errorf("temperature must be between 0 and 2, got %g", c.ModelParams.Temperature))
	}
	if c.ModelParams.MaxTokens < 0 {
		errs = append(errs, fmt.Errorf("max_tokens must not be negative"))
	}
	if c.ModelParams.TimeoutSeconds < 0 {
		errs = append(errs, fmt.Errorf("timeout_seconds must not be negative"))
	}
	if c.Retry.MaxRetries < 0 || c.Retry.MaxRetries > 5 {
		errs = append(errs, fmt.Errorf("max_retries must be between 0 and 5, got %d", c.Retry.MaxRetries))
	}
	if c.Retry.DelayMS < 0 {
		errs = append(errs, fmt.Errorf("delay_ms must not be negative"))
	}
	return errors.Join(errs...)
}
