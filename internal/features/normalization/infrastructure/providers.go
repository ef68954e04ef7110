package infrastructure

import "errors"

// ErrNoCredentials is returned by NewAIClient when the API key is empty.
var ErrNoCredentials = errors.New("no AI credentials configured")

const (
	ProviderMistral    = "mistral"
	ProviderOpenAI     = "openai"
	ProviderOpenRouter = "openrouter"
	ProviderGemini     = "gemini"
	ProviderCustom     = "custom"
)

// providerDefaults lists the endpoint and model used when none is configured.
var providerDefaults = map[string]struct {
	baseURL string
	model   string
}{
	ProviderMistral:    {baseURL: "https://api.mistral.ai/v1", model: "mistral-large-latest"},
	ProviderOpenAI:     {baseURL: "", model: "gpt-4o-mini"},
	ProviderOpenRouter: {baseURL: "https://openrouter.ai/api/v1", model: "mistralai/mistral-large"},
	ProviderGemini:     {model: "gemini-2.0-flash"},
}

// DefaultModel returns the model used for provider when none is configured.
func DefaultModel(provider string) string {
	return providerDefaults[provider].model
}
