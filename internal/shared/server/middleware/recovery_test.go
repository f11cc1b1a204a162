package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap/zapcore"

	"seedrowz-backend/internal/shared/telemetry"
)

func TestRecoveryReturnsStandardError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	telemetry.SetOutput(zapcore.AddSync(&buf))
	t.Cleanup(func() { telemetry.SetOutput(zapcore.AddSync(&bytes.Buffer{})) })

	router := gin.New()
	router.Use(RequestID(), Recovery())
	router.GET("/boom", func(c *gin.Context) {
		panic("nil evaluation")
	})

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	req.Header.Set("X-Request-Id", "req-9")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), `"code":"internal_error"`) {
		t.Fatalf("unexpected body: %s", resp.Body.String())
	}
	logs := buf.String()
	if !strings.Contains(logs, `"msg":"http.panic"`) || !strings.Contains(logs, `"panic":"nil evaluation"`) || !strings.Contains(logs, `"request_id":"req-9"`) {
		t.Fatalf("missing panic log fields: %s", logs)
	}
}
