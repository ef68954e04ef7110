package domain

// OutcomeKind tags a GenerationOutcome.
type OutcomeKind int

const (
	OutcomeSuccess OutcomeKind = iota
	OutcomeMalformed
	OutcomeUnavailable
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeMalformed:
		return "malformed"
	case OutcomeUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// GenerationOutcome is the result of the AI path: exactly one of
// Prompt (success), Raw (malformed) or Reason (unavailable) is meaningful.
type GenerationOutcome struct {
	Kind   OutcomeKind
	Prompt *StructuredPrompt
	Raw    string
	Reason string
}

func Succeeded(p *StructuredPrompt) GenerationOutcome {
	return GenerationOutcome{Kind: OutcomeSuccess, Prompt: p}
}

func Malformed(raw string) GenerationOutcome {
	return GenerationOutcome{Kind: OutcomeMalformed, Raw: raw}
}

func Unavailable(reason string) GenerationOutcome {
	return GenerationOutcome{Kind: OutcomeUnavailable, Reason: reason}
}
