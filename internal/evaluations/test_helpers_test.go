package evaluations

import (
	"context"
	"errors"
	"sync"

	"seedrowz-backend/internal/llm"
)

func validRequest() Request {
	return Request{
		Title:          "Seedrowz",
		Pitch:          "AI scoring for startup ideas",
		Problem:        "Founders lack quick feedback",
		Solution:       "Automated evaluation",
		TargetAudience: "First-time founders",
		BusinessModel:  "Subscription",
	}
}

type fakeClient struct {
	mu      sync.Mutex
	calls   int
	prompts []string
	text    string
	err     error
}

func (f *fakeClient) Complete(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

func (f *fakeClient) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func configuredSettings() llm.Settings {
	return llm.Settings{Provider: llm.ProviderGemini, APIKey: "test-key", Model: "gemini-2.5-flash"}
}

func factoryFor(client llm.Client) llm.Factory {
	return func(llm.Settings) (llm.Client, error) { return client, nil }
}

type countingRepo struct {
	*MemoryRepo
	mu      sync.Mutex
	creates int
	failErr error
}

func newCountingRepo() *countingRepo {
	return &countingRepo{MemoryRepo: NewMemoryRepo()}
}

func (r *countingRepo) Create(ctx context.Context, result Result) (int64, error) {
	r.mu.Lock()
	r.creates++
	failErr := r.failErr
	r.mu.Unlock()
	if failErr != nil {
		return 0, failErr
	}
	return r.MemoryRepo.Create(ctx, result)
}

func (r *countingRepo) createCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.creates
}

var errDBDown = errors.New("db down")
