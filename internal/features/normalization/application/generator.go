package application

import (
	"context"
	"errors"

	"json-prompt-generator/backend/internal/features/normalization/domain"
)

// Generator produces a structured prompt through a generative backend.
// The implementation is chosen once at startup.
type Generator interface {
	Generate(ctx context.Context, text string, maxFields int) domain.GenerationOutcome
	Enabled() bool
	Name() string
}

type aiGenerator struct {
	adapter *Adapter
}

// NewAIGenerator pairs the backend adapter with the repair chain.
func NewAIGenerator(adapter *Adapter) Generator {
	return &aiGenerator{adapter: adapter}
}

func (g *aiGenerator) Generate(ctx context.Context, text string, maxFields int) domain.GenerationOutcome {
	raw, err := g.adapter.Generate(ctx, text, maxFields)
	if err != nil {
		var unavailable *domain.UnavailableError
		if errors.As(err, &unavailable) {
			return domain.Unavailable(unavailable.Reason)
		}
		return domain.Unavailable(err.Error())
	}
	return RepairAndParse(raw)
}

func (g *aiGenerator) Enabled() bool { return g.adapter.Configured() }

func (g *aiGenerator) Name() string { return g.adapter.Name() }

type heuristicOnlyGenerator struct{}

// NewHeuristicOnlyGenerator is used when no backend credentials exist.
func NewHeuristicOnlyGenerator() Generator {
	return heuristicOnlyGenerator{}
}

func (heuristicOnlyGenerator) Generate(context.Context, string, int) domain.GenerationOutcome {
	return domain.Unavailable("not configured")
}

func (heuristicOnlyGenerator) Enabled() bool { return false }

func (heuristicOnlyGenerator) Name() string { return "heuristic" }
