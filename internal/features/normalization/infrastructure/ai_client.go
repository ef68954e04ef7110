package infrastructure

import (
	"context"
	"fmt"
)

// CompletionRequest is a single system+user exchange sent to a generative backend.
type CompletionRequest struct {
	SystemPrompt string
	UserPrompt   string
	Model        string
	Temperature  float32
	MaxTokens    int
	// JSONMode asks the backend for a JSON object response where the API supports it.
	JSONMode bool
}

// AIClient defines a generic interface for chat-style generative services.
type AIClient interface {
	// Name identifies the provider in logs and status messages.
	Name() string

	// Complete returns the raw text of the model's reply.
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// AIConfig holds configuration for AI clients
type AIConfig struct {
	Provider string            `json:"provider"` // "mistral", "openai", "openrouter", "gemini", "custom"
	APIKey   string            `json:"api_key"`
	Model    string            `json:"model"`
	BaseURL  string            `json:"base_url,omitempty"`
	Options  map[string]string `json:"options,omitempty"`
}

// Configured reports whether credentials are present.
func (c AIConfig) Configured() bool {
	return c.APIKey != ""
}

// NewAIClient creates the client for cfg.Provider. It returns ErrNoCredentials
// when no API key is set, so callers can select the heuristic-only path.
func NewAIClient(ctx context.Context, cfg AIConfig) (AIClient, error) {
	if !cfg.Configured() {
		return nil, ErrNoCredentials
	}
	switch cfg.Provider {
	case ProviderGemini:
		return NewGeminiClient(ctx, cfg.APIKey, cfg.Model)
	case ProviderMistral, ProviderOpenAI, ProviderOpenRouter, "":
		return NewOpenAIClient(cfg.Provider, cfg.APIKey, cfg.Model, cfg.BaseURL)
	case ProviderCustom:
		if cfg.BaseURL == "" {
			return nil, fmt.Errorf("custom provider requires a base URL")
		}
		return NewOpenAIClient(cfg.Provider, cfg.APIKey, cfg.Model, cfg.BaseURL)
	default:
		return nil, fmt.Errorf("unknown AI provider: %s", cfg.Provider)
	}
}
