package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Client sends a single prompt to a model and returns its raw text answer.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Settings are the provider credentials for one call.
type Settings struct {
	Provider string
	APIKey   string
	Model    string
	Timeout  time.Duration
}

// Configured reports whether an API key is present.
func (s Settings) Configured() bool {
	return strings.TrimSpace(s.APIKey) != ""
}

// SettingsSource resolves Settings at call time so key rotation needs no restart.
type SettingsSource func() Settings

// Factory builds a provider client from Settings.
type Factory func(s Settings) (Client, error)

// ErrNotConfigured is returned when no API key is available for the provider.
var ErrNotConfigured = errors.New("ai provider not configured")

// TransportError wraps any failure talking to the provider.
// Its message is meant for server logs, not for end users.
type TransportError struct {
	Provider string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s transport: %v", e.Provider, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// StripCodeFence removes Markdown ```json / ``` markers around a model answer.
func StripCodeFence(text string) string {
	cleaned := strings.ReplaceAll(text, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	return strings.TrimSpace(cleaned)
}
