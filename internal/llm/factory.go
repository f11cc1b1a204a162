package llm

import (
	"context"
	"fmt"
	"strings"

	"seedrowz-backend/internal/llm/gemini"
	"seedrowz-backend/internal/llm/openai"
)

// NewClient builds the client for s.Provider. Provider errors, including
// construction errors, come back as *TransportError.
func NewClient(s Settings) (Client, error) {
	if !s.Configured() {
		return nil, ErrNotConfigured
	}
	provider := strings.ToLower(strings.TrimSpace(s.Provider))
	var (
		inner Client
		err   error
	)
	switch provider {
	case ProviderOpenAI:
		inner, err = openai.NewClient(s.APIKey, s.Model, s.Timeout)
	case ProviderGemini, "":
		provider = ProviderGemini
		inner, err = gemini.NewClient(context.Background(), s.APIKey, s.Model)
	default:
		return nil, &TransportError{Provider: provider, Err: fmt.Errorf("unknown provider %q", s.Provider)}
	}
	if err != nil {
		return nil, &TransportError{Provider: provider, Err: err}
	}
	return transportClient{provider: provider, inner: inner}, nil
}

type transportClient struct {
	provider string
	inner    Client
}

func (t transportClient) Complete(ctx context.Context, prompt string) (string, error) {
	text, err := t.inner.Complete(ctx, prompt)
	if err != nil {
		return "", &TransportError{Provider: t.provider, Err: err}
	}
	return text, nil
}
