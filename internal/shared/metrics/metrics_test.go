package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestHandlerRendersEvaluationMetrics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	IncSubmitted()
	IncFallback("transport")
	IncRejected()
	ObserveAIDuration("gemini", 1500*time.Millisecond)

	router := gin.New()
	router.GET("/metrics", Handler())

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	body := resp.Body.String()
	for _, want := range []string{
		"evaluations_submitted_total",
		`evaluations_fallback_total{reason="transport"}`,
		"evaluations_rejected_total",
		`evaluation_ai_duration_seconds_bucket{provider="gemini"`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected metrics output to contain %q", want)
		}
	}
}
