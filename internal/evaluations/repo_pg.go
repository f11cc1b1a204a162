package evaluations

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new result and returns its id.
func (r *PGRepo) Create(ctx context.Context, result Result) (int64, error) {
	const query = `
INSERT INTO evaluation_results (
	user_id, title, pitch, problem, solution, target_audience, business_model,
	competition, experience, education, skills, founder_role, traction, mvp_ready, vision,
	feasibility, market_potential, competition_score, scalability, execution_difficulty,
	verdict, verdict_category, summary, next_steps, tech_stack, funding_stage, investor_matches,
	fallback_reason, provider, model, created_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20,
	$21, $22, $23, $24, $25, $26, $27, $28, $29, $30, now())
RETURNING id`
	nextSteps, err := marshalJSONB(result.Evaluation.NextSteps, "[]")
	if err != nil {
		return 0, err
	}
	investors, err := marshalJSONB(result.Evaluation.InvestorMatches, "[]")
	if err != nil {
		return 0, err
	}

	req := result.Request
	ev := result.Evaluation
	var id int64
	err = r.DB.QueryRowContext(ctx, query,
		nullableID(result.UserID),
		req.Title,
		req.Pitch,
		req.Problem,
		req.Solution,
		req.TargetAudience,
		req.BusinessModel,
		nullableString(req.Competition),
		nullableString(req.Experience),
		nullableString(req.Education),
		nullableString(req.Skills),
		nullableString(req.FounderRole),
		nullableString(req.Traction),
		nullableString(req.MVPReady),
		nullableString(req.Vision),
		ev.Feasibility,
		ev.MarketPotential,
		ev.Competition,
		ev.Scalability,
		ev.ExecutionDifficulty,
		ev.Verdict,
		string(ev.VerdictCategory),
		ev.Summary,
		nextSteps,
		nullableString(ev.TechStack),
		nullableString(ev.FundingStage),
		investors,
		result.FallbackReason,
		result.Provider,
		result.Model,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// GetByID loads one result. Undecodable list columns are an error, not an empty list.
func (r *PGRepo) GetByID(ctx context.Context, id int64) (Result, error) {
	const query = `
SELECT id, user_id, title, pitch, problem, solution, target_audience, business_model,
	competition, experience, education, skills, founder_role, traction, mvp_ready, vision,
	feasibility, market_potential, competition_score, scalability, execution_difficulty,
	verdict, verdict_category, summary, next_steps, tech_stack, funding_stage, investor_matches,
	fallback_reason, provider, model, created_at
FROM evaluation_results
WHERE id = $1`
	var (
		result       Result
		userID       sql.NullInt64
		optional     [8]sql.NullString
		techStack    sql.NullString
		fundingStage sql.NullString
		category     string
		nextStepsRaw []byte
		investorsRaw []byte
	)
	req := &result.Request
	ev := &result.Evaluation
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&result.ID,
		&userID,
		&req.Title,
		&req.Pitch,
		&req.Problem,
		&req.Solution,
		&req.TargetAudience,
		&req.BusinessModel,
		&optional[0],
		&optional[1],
		&optional[2],
		&optional[3],
		&optional[4],
		&optional[5],
		&optional[6],
		&optional[7],
		&ev.Feasibility,
		&ev.MarketPotential,
		&ev.Competition,
		&ev.Scalability,
		&ev.ExecutionDifficulty,
		&ev.Verdict,
		&category,
		&ev.Summary,
		&nextStepsRaw,
		&techStack,
		&fundingStage,
		&investorsRaw,
		&result.FallbackReason,
		&result.Provider,
		&result.Model,
		&result.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Result{}, ErrNotFound
		}
		return Result{}, err
	}

	result.UserID = userID.Int64
	req.Competition = optional[0].String
	req.Experience = optional[1].String
	req.Education = optional[2].String
	req.Skills = optional[3].String
	req.FounderRole = optional[4].String
	req.Traction = optional[5].String
	req.MVPReady = optional[6].String
	req.Vision = optional[7].String
	ev.TechStack = techStack.String
	ev.FundingStage = fundingStage.String
	ev.VerdictCategory = VerdictCategory(category)
	if ev.VerdictCategory == "" {
		ev.VerdictCategory = CategorizeVerdict(ev.Verdict)
	}

	if err := unmarshalJSONB(nextStepsRaw, &ev.NextSteps); err != nil {
		return Result{}, fmt.Errorf("evaluation %d next_steps: %w", id, err)
	}
	if err := unmarshalJSONB(investorsRaw, &ev.InvestorMatches); err != nil {
		return Result{}, fmt.Errorf("evaluation %d investor_matches: %w", id, err)
	}
	if ev.NextSteps == nil {
		ev.NextSteps = []string{}
	}
	if ev.InvestorMatches == nil {
		ev.InvestorMatches = []InvestorMatch{}
	}
	return result, nil
}

// ListByUser returns a user's results, newest first.
func (r *PGRepo) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]HistoryItem, error) {
	const query = `
SELECT id, title, verdict, verdict_category, created_at
FROM evaluation_results
WHERE user_id = $1
ORDER BY created_at DESC, id DESC
LIMIT $2 OFFSET $3`
	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []HistoryItem{}
	for rows.Next() {
		var item HistoryItem
		var category string
		if err := rows.Scan(&item.ResultID, &item.Title, &item.Verdict, &category, &item.CreatedAt); err != nil {
			return nil, err
		}
		item.VerdictCategory = VerdictCategory(category)
		out = append(out, item)
	}
	return out, rows.Err()
}

func marshalJSONB(value any, empty string) ([]byte, error) {
	payload, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	if string(payload) == "null" {
		return []byte(empty), nil
	}
	return payload, nil
}

func unmarshalJSONB(raw []byte, dst any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dst)
}

func nullableString(value string) any {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return value
}

func nullableID(id int64) any {
	if id <= 0 {
		return nil
	}
	return id
}
