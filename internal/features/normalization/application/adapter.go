package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"json-prompt-generator/backend/internal/features/normalization/domain"
	"json-prompt-generator/backend/internal/features/normalization/infrastructure"
)

// DefaultMaxFields bounds AI-generated prompts.
const DefaultMaxFields = 8

// AdapterSettings tune calls to the generative backend.
type AdapterSettings struct {
	Model       string
	Temperature float32
	MaxTokens   int
	// MaxRetries is the number of extra attempts after a failed call.
	MaxRetries int
	RetryDelay time.Duration
	// Timeout bounds each attempt; zero means only the caller's context applies.
	Timeout  time.Duration
	JSONMode bool
}

// DefaultAdapterSettings mirrors the values in config/app_config.json.
func DefaultAdapterSettings() AdapterSettings {
	return AdapterSettings{
		Temperature: 0,
		MaxTokens:   512,
		MaxRetries:  2,
		RetryDelay:  500 * time.Millisecond,
		Timeout:     30 * time.Second,
		JSONMode:    true,
	}
}

// Adapter invokes the generative backend with the fixed instruction template.
// It returns raw text and never interprets it.
type Adapter struct {
	client   infrastructure.AIClient
	settings AdapterSettings
	logger   *zap.Logger
}

// NewAdapter creates an Adapter. A nil client makes every call report the
// backend as not configured.
func NewAdapter(client infrastructure.AIClient, settings AdapterSettings, logger *zap.Logger) *Adapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Adapter{client: client, settings: settings, logger: logger}
}

// Configured reports whether a backend client is present.
func (a *Adapter) Configured() bool {
	return a.client != nil
}

// Name identifies the backend in status messages.
func (a *Adapter) Name() string {
	if a.client == nil {
		return "none"
	}
	return a.client.Name()
}

// Generate asks the backend to turn text into a JSON object of at most
// maxFields fields. Every failure is returned as *domain.UnavailableError.
func (a *Adapter) Generate(ctx context.Context, text string, maxFields int) (string, error) {
	if a.client == nil {
		return "", &domain.UnavailableError{Reason: "not configured", Err: domain.ErrBackendNotConfigured}
	}

	req := infrastructure.CompletionRequest{
		SystemPrompt: SystemInstruction(maxFields),
		UserPrompt:   text,
		Model:        a.settings.Model,
		Temperature:  a.settings.Temperature,
		MaxTokens:    a.settings.MaxTokens,
		JSONMode:     a.settings.JSONMode,
	}

	attempts := a.settings.MaxRetries + 1
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			if err := sleepContext(ctx, a.settings.RetryDelay); err != nil {
				lastErr = err
				break
			}
		}

		raw, err := a.complete(ctx, req)
		if err == nil {
			return raw, nil
		}
		lastErr = err
		a.logger.Warn("AI backend call failed",
			zap.String("backend", a.client.Name()),
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", attempts),
			zap.Error(err))

		if ctx.Err() != nil {
			break
		}
	}

	reason := "request failed"
	switch {
	case errors.Is(lastErr, context.Canceled):
		reason = "request cancelled"
	case errors.Is(lastErr, context.DeadlineExceeded):
		reason = "request timed out"
	}
	return "", &domain.UnavailableError{Reason: reason, Err: lastErr}
}

func (a *Adapter) complete(ctx context.Context, req infrastructure.CompletionRequest) (string, error) {
	if a.settings.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.settings.Timeout)
		defer cancel()
	}
	return a.client.Complete(ctx, req)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

const systemInstructionTemplate = `You are a JSON prompt generator. Convert the user's request into a compact JSON object that another AI model can follow.

Field guidance:
- Always include "task": a short verb phrase naming what should be produced.
- Programming requests: language, framework, libraries, functionality, output_format.
- Image requests: subject, style, composition, lighting, quality, size.
- Writing requests: content_type, topic, tone, audience, word_count.
- Data analysis requests: dataset, analysis_type, metrics, visualizations, output_format.
- Travel requests: city, country, dates, activities.

Rules:
- Field names are lowercase words separated by underscores.
- Use at most %d fields.
- Do not include irrelevant or empty fields.
- Respond with the JSON object only. No markdown, no code fences, no explanation.`

// SystemInstruction returns the fixed instruction sent with every request.
func SystemInstruction(maxFields int) string {
	if maxFields <= 0 {
		maxFields = DefaultMaxFields
	}
	return strings.TrimSpace(fmt.Sprintf(systemInstructionTemplate, maxFields))
}
