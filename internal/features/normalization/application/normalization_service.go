package application

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"json-prompt-generator/backend/internal/features/normalization/domain"
)

// NormalizationService defines the interface for turning free text into a structured prompt.
type NormalizationService interface {
	// Normalize always yields a prompt for non-blank text. The only errors are
	// domain.ErrEmptyInput and, with Options.RequireAI, domain.ErrBackendNotConfigured.
	Normalize(ctx context.Context, text string, opts domain.Options) (*domain.Result, error)
	AIEnabled() bool
}

// normalizationService is the implementation of NormalizationService.
type normalizationService struct {
	generator Generator
	maxFields int
	logger    *zap.Logger
}

// NewNormalizationService creates a new instance of normalizationService.
func NewNormalizationService(generator Generator, maxFields int, logger *zap.Logger) NormalizationService {
	if generator == nil {
		generator = NewHeuristicOnlyGenerator()
	}
	if maxFields <= 0 {
		maxFields = DefaultMaxFields
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &normalizationService{generator: generator, maxFields: maxFields, logger: logger}
}

func (s *normalizationService) AIEnabled() bool {
	return s.generator.Enabled()
}

func (s *normalizationService) Normalize(ctx context.Context, text string, opts domain.Options) (*domain.Result, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, domain.ErrEmptyInput
	}

	if !s.generator.Enabled() {
		if opts.RequireAI {
			return nil, domain.ErrBackendNotConfigured
		}
		return &domain.Result{
			Prompt:         HeuristicPrompt(trimmed),
			Path:           domain.PathHeuristic,
			Status:         "heuristic: AI backend not configured",
			FallbackReason: "not configured",
		}, nil
	}

	limit := s.fieldLimit(opts.MaxFields)
	outcome := s.attemptAI(ctx, trimmed, limit)

	switch outcome.Kind {
	case domain.OutcomeSuccess:
		prompt := s.finalize(outcome.Prompt, trimmed, limit)
		s.logger.Debug("AI prompt generated",
			zap.String("backend", s.generator.Name()),
			zap.Int("fields", prompt.Len()))
		return &domain.Result{
			Prompt: prompt,
			Path:   domain.PathAI,
			Status: "generated by " + s.generator.Name(),
		}, nil
	case domain.OutcomeMalformed:
		s.logger.Warn("AI response could not be repaired, using heuristic fallback",
			zap.String("backend", s.generator.Name()),
			zap.Int("raw_length", len(outcome.Raw)))
		return s.fallback(trimmed, domain.ErrMalformedResponse.Error()), nil
	default:
		s.logger.Warn("AI backend unavailable, using heuristic fallback",
			zap.String("backend", s.generator.Name()),
			zap.String("reason", outcome.Reason))
		return s.fallback(trimmed, "AI backend unavailable: "+outcome.Reason), nil
	}
}

// attemptAI runs the generator, converting a panic into an unavailable outcome.
func (s *normalizationService) attemptAI(ctx context.Context, text string, limit int) (outcome domain.GenerationOutcome) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("unexpected error in AI path", zap.Any("panic", r))
			outcome = domain.Unavailable(fmt.Sprintf("internal error: %v", r))
		}
	}()
	return s.generator.Generate(ctx, text, limit)
}

func (s *normalizationService) fallback(text, reason string) *domain.Result {
	return &domain.Result{
		Prompt:         HeuristicPrompt(text),
		Path:           domain.PathHeuristic,
		Status:         "heuristic fallback: " + reason,
		FallbackReason: reason,
	}
}

// finalize normalizes field names, guarantees a task field and applies the field cap.
func (s *normalizationService) finalize(p *domain.StructuredPrompt, text string, limit int) *domain.StructuredPrompt {
	prompt := p.NormalizeKeys()

	if task, ok := prompt.Get("task"); !ok || isBlank(task) {
		prompt.Prepend("task", HeuristicPrompt(text).String("task"))
	} else if keys := prompt.Keys(); indexOf(keys, "task") >= limit {
		prompt.Prepend("task", task)
	}
	prompt.Truncate(limit)
	return prompt
}

func (s *normalizationService) fieldLimit(requested int) int {
	if requested > 0 && requested < s.maxFields {
		return requested
	}
	return s.maxFields
}

func isBlank(v any) bool {
	if v == nil {
		return true
	}
	str, ok := v.(string)
	return ok && strings.TrimSpace(str) == ""
}

func indexOf(keys []string, key string) int {
	for i, k := range keys {
		if k == key {
			return i
		}
	}
	return -1
}
