package evaluations

import (
	"context"
	"errors"
	"time"

	"seedrowz-backend/internal/llm"
	"seedrowz-backend/internal/shared/auth"
	"seedrowz-backend/internal/shared/metrics"
	"seedrowz-backend/internal/shared/telemetry"
)

const (
	maxStoredSummary = 500
	maxLoggedRaw     = 4000
	defaultListLimit = 20
	maxListLimit     = 100
)

// Service runs the submit pipeline and serves stored evaluations.
type Service struct {
	Repo      Repo
	Settings  llm.SettingsSource
	NewClient llm.Factory
}

func NewService(repo Repo, settings llm.SettingsSource, factory llm.Factory) *Service {
	return &Service{Repo: repo, Settings: settings, NewClient: factory}
}

type SubmitResult struct {
	ResultID       int64
	Evaluation     Evaluation
	FallbackReason string
}

// Submit validates, asks the model once, normalizes or falls back, and
// persists exactly one row. AI failures never surface as errors.
func (s *Service) Submit(ctx context.Context, req Request, principal *auth.Principal) (SubmitResult, error) {
	if s == nil || s.Repo == nil || s.Settings == nil || s.NewClient == nil {
		return SubmitResult{}, errors.New("evaluations service not configured")
	}

	settings := s.Settings()
	if !settings.Configured() {
		return SubmitResult{}, ErrAINotConfigured
	}
	if err := ValidateRequest(req); err != nil {
		metrics.IncRejected()
		return SubmitResult{}, err
	}

	var userID int64
	if principal != nil {
		userID = principal.ID
	}

	prompt := BuildPrompt(req)
	evaluation, fallbackReason := s.evaluate(ctx, settings, prompt, userID)

	stored := evaluation
	stored.Summary = truncateRunes(evaluation.Summary, maxStoredSummary)
	id, err := s.Repo.Create(ctx, Result{
		UserID:         userID,
		Request:        req,
		Evaluation:     stored,
		FallbackReason: fallbackReason,
		Provider:       settings.Provider,
		Model:          settings.Model,
	})
	if err != nil {
		telemetry.Error("evaluation.persist_failed", map[string]any{
			"user_id":         userID,
			"fallback_reason": fallbackReason,
			"error":           err,
		})
		return SubmitResult{}, err
	}

	metrics.IncSubmitted()
	if fallbackReason != FallbackNone {
		metrics.IncFallback(fallbackReason)
	}
	telemetry.Info("evaluation.created", map[string]any{
		"result_id":        id,
		"user_id":          userID,
		"verdict_category": string(evaluation.VerdictCategory),
		"fallback_reason":  fallbackReason,
		"provider":         settings.Provider,
	})

	return SubmitResult{ResultID: id, Evaluation: evaluation, FallbackReason: fallbackReason}, nil
}

func (s *Service) evaluate(ctx context.Context, settings llm.Settings, prompt string, userID int64) (Evaluation, string) {
	fields := map[string]any{
		"provider": settings.Provider,
		"model":    settings.Model,
		"user_id":  userID,
	}

	client, err := s.NewClient(settings)
	if err != nil {
		fields["error"] = err
		telemetry.Warn("evaluation.ai_client_failed", fields)
		return FallbackEvaluation(), FallbackTransport
	}

	start := time.Now()
	raw, err := client.Complete(ctx, prompt)
	metrics.ObserveAIDuration(settings.Provider, time.Since(start))
	if err != nil {
		fields["error"] = err
		telemetry.Warn("evaluation.ai_transport_failed", fields)
		return FallbackEvaluation(), FallbackTransport
	}

	evaluation, err := ParseEvaluation(raw)
	if err != nil {
		fields["error"] = err
		fields["raw"] = truncateRunes(raw, maxLoggedRaw)
		telemetry.Warn("evaluation.ai_malformed_response", fields)
		return FallbackEvaluation(), FallbackMalformed
	}
	return evaluation, FallbackNone
}

// FetchByID returns the stored evaluation for id.
func (s *Service) FetchByID(ctx context.Context, id int64) (Evaluation, error) {
	if s == nil || s.Repo == nil {
		return Evaluation{}, errors.New("evaluations service not configured")
	}
	if id <= 0 {
		return Evaluation{}, ErrNotFound
	}
	result, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return Evaluation{}, err
	}
	return result.Evaluation, nil
}

// ListForUser returns the user's history, newest first.
func (s *Service) ListForUser(ctx context.Context, userID int64, limit, offset int) ([]HistoryItem, error) {
	if s == nil || s.Repo == nil {
		return nil, errors.New("evaluations service not configured")
	}
	if userID <= 0 {
		return []HistoryItem{}, nil
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}
