package evaluations

import "time"

// Request is an idea submission. The first six fields are required.
type Request struct {
	Title          string `json:"title" validate:"nonblank"`
	Pitch          string `json:"pitch" validate:"nonblank"`
	Problem        string `json:"problem" validate:"nonblank"`
	Solution       string `json:"solution" validate:"nonblank"`
	TargetAudience string `json:"targetAudience" validate:"nonblank"`
	BusinessModel  string `json:"businessModel" validate:"nonblank"`

	Competition string `json:"competition"`
	Experience  string `json:"experience"`
	Education   string `json:"education"`
	Skills      string `json:"skills"`
	FounderRole string `json:"founderRole"`
	Traction    string `json:"traction"`
	MVPReady    string `json:"mvpReady"`
	Vision      string `json:"vision"`
}

type VerdictCategory string

const (
	VerdictPass      VerdictCategory = "pass"
	VerdictNeedsWork VerdictCategory = "needs_work"
	VerdictRisky     VerdictCategory = "risky"
)

type InvestorMatch struct {
	Name       string `json:"name" validate:"required"`
	Type       string `json:"type"`
	TicketSize string `json:"ticketSize"`
}

// Evaluation is the normalized scoring object returned to clients.
type Evaluation struct {
	Feasibility         int             `json:"feasibility" validate:"min=0,max=100"`
	MarketPotential     int             `json:"marketPotential" validate:"min=0,max=100"`
	Competition         int             `json:"competition" validate:"min=0,max=100"`
	Scalability         int             `json:"scalability" validate:"min=0,max=100"`
	ExecutionDifficulty int             `json:"executionDifficulty" validate:"min=0,max=100"`
	Verdict             string          `json:"verdict" validate:"required"`
	VerdictCategory     VerdictCategory `json:"verdictCategory" validate:"oneof=pass needs_work risky"`
	Summary             string          `json:"summary"`
	NextSteps           []string        `json:"nextSteps" validate:"required"`
	TechStack           string          `json:"techStack"`
	FundingStage        string          `json:"fundingStage"`
	InvestorMatches     []InvestorMatch `json:"investorMatches" validate:"required,dive"`
}

// Fallback reasons recorded with a stored result.
const (
	FallbackNone      = ""
	FallbackTransport = "transport"
	FallbackMalformed = "malformed_response"
)

// Result is one persisted evaluation. UserID is 0 for anonymous submissions.
type Result struct {
	ID             int64
	UserID         int64
	Request        Request
	Evaluation     Evaluation
	FallbackReason string
	Provider       string
	Model          string
	CreatedAt      time.Time
}

// HistoryItem is a row in a user's evaluation history.
type HistoryItem struct {
	ResultID        int64           `json:"resultId"`
	Title           string          `json:"title"`
	Verdict         string          `json:"verdict"`
	VerdictCategory VerdictCategory `json:"verdictCategory"`
	CreatedAt       time.Time       `json:"createdAt"`
}
