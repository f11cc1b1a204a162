package evaluations

import "context"

// Repo persists evaluation results. Rows are never updated.
type Repo interface {
	Create(ctx context.Context, result Result) (int64, error)
	GetByID(ctx context.Context, id int64) (Result, error)
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]HistoryItem, error)
}
