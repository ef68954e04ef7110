package domain

// PromptRequest is the body of POST /generate-prompt.
type PromptRequest struct {
	Text string `json:"text"`
	// RequireAI turns silent fallback into a 503 when no backend is configured.
	RequireAI bool `json:"require_ai,omitempty"`
	// NumKeys lowers the AI field cap; ignored when out of range.
	NumKeys int `json:"num_keys,omitempty"`
}

// PromptResponse is returned for a successfully normalized request.
type PromptResponse struct {
	OriginalText      string            `json:"original_text"`
	JSONPrompt        *StructuredPrompt `json:"json_prompt"`
	AIGeneratedOutput string            `json:"ai_generated_output,omitempty"` // status, not content
}

// Path names which branch produced a prompt.
type Path string

const (
	PathAI        Path = "ai"
	PathHeuristic Path = "heuristic"
)

// Options tune a single Normalize call.
type Options struct {
	RequireAI bool
	MaxFields int
}

// Result is what the orchestrator hands back to the transport layer.
type Result struct {
	Prompt         *StructuredPrompt
	Path           Path
	Status         string
	FallbackReason string
}
