package config

import (
	"os"
	"strings"

	"json-prompt-generator/backend/internal/features/normalization/infrastructure"
)

// DefaultOrigin is the development frontend, always allowed by CORS.
const DefaultOrigin = "http://localhost:3000"

// Config is the process configuration read from the environment once at startup.
type Config struct {
	Port           string
	AllowedOrigins []string
	AppConfigPath  string
	// HistoryDB is the sqlite path of the conversion history; empty disables it.
	HistoryDB string
	LogLevel  string
	AI        infrastructure.AIConfig
}

// apiKeyEnv maps each provider to the variable holding its credential.
var apiKeyEnv = map[string][]string{
	infrastructure.ProviderMistral:    {"MISTRAL_API_KEY"},
	infrastructure.ProviderOpenAI:     {"OPENAI_API_KEY"},
	infrastructure.ProviderOpenRouter: {"OPENROUTER_API_KEY"},
	infrastructure.ProviderGemini:     {"GEMINI_API_KEY", "GOOGLE_API_KEY"},
}

// Load reads the configuration from environment variables. Callers load a
// .env file beforehand with godotenv.
func Load() Config {
	provider := strings.ToLower(getenv("AI_PROVIDER", infrastructure.ProviderMistral))
	return Config{
		Port:           getenv("PORT", "8001"),
		AllowedOrigins: ParseOrigins(os.Getenv("ALLOWED_ORIGINS")),
		AppConfigPath:  getenv("APP_CONFIG_PATH", "config/app_config.json"),
		HistoryDB:      os.Getenv("HISTORY_DB"),
		LogLevel:       getenv("LOG_LEVEL", "info"),
		AI: infrastructure.AIConfig{
			Provider: provider,
			APIKey:   apiKey(provider),
			Model:    os.Getenv("AI_MODEL"),
			BaseURL:  os.Getenv("AI_BASE_URL"),
		},
	}
}

// ParseOrigins returns DefaultOrigin followed by the comma-separated extra origins.
func ParseOrigins(extra string) []string {
	origins := []string{DefaultOrigin}
	for _, o := range strings.Split(extra, ",") {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o != "" && o != DefaultOrigin {
			origins = append(origins, o)
		}
	}
	return origins
}

func apiKey(provider string) string {
	if key := os.Getenv("AI_API_KEY"); key != "" {
		return key
	}
	for _, name := range apiKeyEnv[provider] {
		if key := os.Getenv(name); key != "" {
			return key
		}
	}
	return ""
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
