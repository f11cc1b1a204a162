package evaluations

import (
	"errors"
	"strings"
)

var (
	ErrNotFound          = errors.New("evaluation not found")
	ErrAINotConfigured   = errors.New("AI service not configured")
	ErrMalformedResponse = errors.New("malformed AI response")
)

// ValidationError lists the required fields that were missing or blank.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}
