package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"seedrowz-backend/internal/shared/telemetry"
)

// Logging emits a structured log per request.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.EqualFold(c.Request.Method, "OPTIONS") {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		var userID any
		if p, ok := PrincipalFromContext(c); ok {
			userID = p.ID
		}
		resultID, _ := c.Get("resultId")
		fallbackReason, _ := c.Get("fallbackReason")

		telemetry.Info("request.complete", map[string]any{
			"request_id":      RequestIDFromContext(c),
			"method":          c.Request.Method,
			"path":            c.Request.URL.Path,
			"status":          c.Writer.Status(),
			"duration_ms":     float64(latency.Microseconds()) / 1000.0,
			"user_id":         userID,
			"result_id":       resultID,
			"fallback_reason": fallbackReason,
			"client_ip":       c.ClientIP(),
			"user_agent":      c.Request.UserAgent(),
		})
	}
}
