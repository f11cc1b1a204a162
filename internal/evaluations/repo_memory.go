package evaluations

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-process Repo used in dev and tests.
type MemoryRepo struct {
	mu      sync.RWMutex
	nextID  int64
	results map[int64]Result
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{results: make(map[int64]Result)}
}

func (r *MemoryRepo) Create(ctx context.Context, result Result) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	result.ID = r.nextID
	if result.CreatedAt.IsZero() {
		result.CreatedAt = time.Now().UTC()
	}
	result.Evaluation = cloneEvaluation(result.Evaluation)
	r.results[result.ID] = result
	return result.ID, nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id int64) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	result, ok := r.results[id]
	if !ok {
		return Result{}, ErrNotFound
	}
	result.Evaluation = cloneEvaluation(result.Evaluation)
	return result, nil
}

func (r *MemoryRepo) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]HistoryItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	matches := make([]Result, 0)
	for _, result := range r.results {
		if result.UserID == userID {
			matches = append(matches, result)
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].CreatedAt.Equal(matches[j].CreatedAt) {
			return matches[i].ID > matches[j].ID
		}
		return matches[i].CreatedAt.After(matches[j].CreatedAt)
	})

	out := []HistoryItem{}
	if offset >= len(matches) {
		return out, nil
	}
	matches = matches[offset:]
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	for _, result := range matches {
		out = append(out, historyItem(result))
	}
	return out, nil
}

func historyItem(result Result) HistoryItem {
	return HistoryItem{
		ResultID:        result.ID,
		Title:           result.Request.Title,
		Verdict:         result.Evaluation.Verdict,
		VerdictCategory: result.Evaluation.VerdictCategory,
		CreatedAt:       result.CreatedAt,
	}
}

func cloneEvaluation(ev Evaluation) Evaluation {
	ev.NextSteps = append([]string{}, ev.NextSteps...)
	ev.InvestorMatches = append([]InvestorMatch{}, ev.InvestorMatches...)
	return ev
}
