package evaluations

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"seedrowz-backend/internal/llm"
)

const defaultVerdict = "Needs Work"

// FallbackEvaluation is served whenever the AI answer is unusable.
func FallbackEvaluation() Evaluation {
	return Evaluation{
		Feasibility:         70,
		MarketPotential:     75,
		Competition:         65,
		Scalability:         70,
		ExecutionDifficulty: 60,
		Verdict:             defaultVerdict,
		VerdictCategory:     VerdictNeedsWork,
		Summary:             "This is an automated Seedrowz evaluation based on your inputs. Use the scores and next steps as a starting point to refine your startup idea.",
		NextSteps:           []string{"Refine your pitch", "Build MVP", "Validate with users"},
		TechStack:           "React, Node.js, Database",
		FundingStage:        "Pre-Seed / Angel",
		InvestorMatches:     []InvestorMatch{},
	}
}

// CategorizeVerdict maps a free-text verdict onto a closed category.
func CategorizeVerdict(verdict string) VerdictCategory {
	v := strings.ToLower(verdict)
	switch {
	case strings.Contains(v, "risk"):
		return VerdictRisky
	case strings.Contains(v, "needs work"):
		return VerdictNeedsWork
	case strings.Contains(v, "pass"):
		return VerdictPass
	default:
		return VerdictNeedsWork
	}
}

// ParseEvaluation turns raw model output into a normalized Evaluation.
// Scores may be numbers or numeric strings; they are rounded and clamped
// to [0,100]. Any failure wraps ErrMalformedResponse.
func ParseEvaluation(raw string) (Evaluation, error) {
	cleaned := llm.StripCodeFence(raw)

	dec := json.NewDecoder(bytes.NewReader([]byte(cleaned)))
	dec.UseNumber()
	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return Evaluation{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if obj == nil {
		return Evaluation{}, fmt.Errorf("%w: not a JSON object", ErrMalformedResponse)
	}
	if dec.More() {
		return Evaluation{}, fmt.Errorf("%w: trailing data after JSON object", ErrMalformedResponse)
	}

	var ev Evaluation
	scores := []struct {
		key string
		dst *int
	}{
		{"feasibility", &ev.Feasibility},
		{"marketPotential", &ev.MarketPotential},
		{"competition", &ev.Competition},
		{"scalability", &ev.Scalability},
		{"executionDifficulty", &ev.ExecutionDifficulty},
	}
	for _, s := range scores {
		v, err := coerceScore(obj[s.key])
		if err != nil {
			return Evaluation{}, fmt.Errorf("%w: %s: %v", ErrMalformedResponse, s.key, err)
		}
		*s.dst = v
	}

	ev.Verdict = strings.TrimSpace(stringValue(obj["verdict"]))
	if ev.Verdict == "" {
		ev.Verdict = defaultVerdict
	}
	ev.VerdictCategory = CategorizeVerdict(ev.Verdict)
	ev.Summary = stringValue(obj["summary"])
	ev.NextSteps = stringList(obj["nextSteps"])
	ev.TechStack = stringValue(obj["techStack"])
	ev.FundingStage = stringValue(obj["fundingStage"])
	ev.InvestorMatches = investorList(obj["investorMatches"])

	if err := validate.Struct(ev); err != nil {
		return Evaluation{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return ev, nil
}

func coerceScore(v any) (int, error) {
	var f float64
	switch t := v.(type) {
	case json.Number:
		parsed, err := t.Float64()
		if err != nil {
			return 0, err
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(t), "%")), 64)
		if err != nil {
			return 0, fmt.Errorf("not numeric: %q", t)
		}
		f = parsed
	case nil:
		return 0, fmt.Errorf("missing")
	default:
		return 0, fmt.Errorf("unexpected type %T", v)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("not finite")
	}
	f = math.Round(f)
	if f < 0 {
		f = 0
	}
	if f > 100 {
		f = 100
	}
	return int(f), nil
}

func stringValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

func stringList(v any) []string {
	out := []string{}
	switch t := v.(type) {
	case []any:
		for _, item := range t {
			if s := strings.TrimSpace(stringValue(item)); s != "" {
				out = append(out, s)
			}
		}
	case string:
		if s := strings.TrimSpace(t); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func investorList(v any) []InvestorMatch {
	out := []InvestorMatch{}
	items, ok := v.([]any)
	if !ok {
		return out
	}
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		match := InvestorMatch{
			Name:       strings.TrimSpace(stringValue(m["name"])),
			Type:       stringValue(m["type"]),
			TicketSize: stringValue(m["ticketSize"]),
		}
		if match.Name == "" {
			continue
		}
		out = append(out, match)
	}
	return out
}

// truncateRunes cuts s to at most n characters.
func truncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
