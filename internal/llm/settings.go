package llm

import (
	"strings"
	"time"

	"github.com/caarlos0/env/v10"

	"seedrowz-backend/internal/shared/telemetry"
)

const (
	defaultGeminiModel   = "gemini-2.5-flash"
	defaultOpenAIModel   = "gpt-4o-mini"
	defaultOpenAITimeout = 120 * time.Second
)

type envSettings struct {
	Provider      string `env:"LLM_PROVIDER" envDefault:"gemini"`
	GeminiAPIKey  string `env:"GEMINI_API_KEY"`
	GeminiModel   string `env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash"`
	OpenAIAPIKey  string `env:"OPENAI_API_KEY"`
	OpenAIModel   string `env:"LLM_MODEL" envDefault:"gpt-4o-mini"`
	OpenAITimeout int    `env:"OPENAI_TIMEOUT_SECONDS" envDefault:"120"`
}

// EnvSettings reads provider settings from the process environment on every call.
func EnvSettings() Settings {
	raw := readEnv()
	return raw.forProvider(raw.Provider)
}

// SettingsFor reads the environment settings of a specific provider,
// regardless of LLM_PROVIDER.
func SettingsFor(provider string) Settings {
	return readEnv().forProvider(provider)
}

// readEnv keeps every field that parsed; a bad value only loses its own field.
func readEnv() envSettings {
	var raw envSettings
	if err := env.Parse(&raw); err != nil {
		telemetry.Warn("llm.settings_invalid", map[string]any{"error": err})
	}
	return raw
}

func (raw envSettings) forProvider(provider string) Settings {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case ProviderOpenAI:
		timeout := time.Duration(raw.OpenAITimeout) * time.Second
		if timeout <= 0 {
			timeout = defaultOpenAITimeout
		}
		return Settings{
			Provider: ProviderOpenAI,
			APIKey:   strings.TrimSpace(raw.OpenAIAPIKey),
			Model:    orDefault(raw.OpenAIModel, defaultOpenAIModel),
			Timeout:  timeout,
		}
	default:
		return Settings{
			Provider: ProviderGemini,
			APIKey:   strings.TrimSpace(raw.GeminiAPIKey),
			Model:    orDefault(raw.GeminiModel, defaultGeminiModel),
		}
	}
}

func orDefault(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}
