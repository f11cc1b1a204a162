package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"seedrowz-backend/internal/shared/auth"
	"seedrowz-backend/internal/shared/server/respond"
	"seedrowz-backend/internal/shared/telemetry"
)

const (
	principalKey = "principal"
	userIDKey    = "userId"
	authErrKey   = "authError"
)

// TokenVerifier validates session tokens.
type TokenVerifier interface {
	Verify(token string) (auth.Claims, error)
}

// Authenticate attaches the principal when a valid bearer token is present.
// Missing or unusable tokens leave the request anonymous; the failure is
// recorded so RequireAuth can report it on gated routes.
func Authenticate(tokens TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader == "" {
			c.Next()
			return
		}

		token, ok := bearerToken(authHeader)
		if !ok {
			c.Set(authErrKey, auth.ErrInvalidToken)
			c.Next()
			return
		}

		claims, err := tokens.Verify(token)
		if err != nil {
			fields := map[string]any{
				"request_id": RequestIDFromContext(c),
				"path":       c.Request.URL.Path,
				"error":      err,
			}
			if errors.Is(err, auth.ErrMissingSecret) {
				telemetry.Error("auth.misconfigured", fields)
			} else {
				telemetry.Warn("auth.verify_failed", fields)
			}
			c.Set(authErrKey, err)
			c.Next()
			return
		}

		p := claims.Principal()
		c.Set(principalKey, p)
		c.Set(userIDKey, p.ID)
		c.Next()
	}
}

// RequireAuth rejects requests that Authenticate did not attach a principal to.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := PrincipalFromContext(c); ok {
			c.Next()
			return
		}
		if _, failed := c.Get(authErrKey); failed {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "Authentication token is invalid or expired", nil)
			return
		}
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "Authentication token is missing", nil)
	}
}

// PrincipalFromContext fetches the principal set by Authenticate.
func PrincipalFromContext(c *gin.Context) (auth.Principal, bool) {
	if c == nil {
		return auth.Principal{}, false
	}
	val, ok := c.Get(principalKey)
	if !ok {
		return auth.Principal{}, false
	}
	p, ok := val.(auth.Principal)
	return p, ok
}

// UserIDFromContext returns the authenticated user id, or 0.
func UserIDFromContext(c *gin.Context) int64 {
	p, ok := PrincipalFromContext(c)
	if !ok {
		return 0
	}
	return p.ID
}

func bearerToken(header string) (string, bool) {
	if len(header) < len("bearer ") || !strings.EqualFold(header[:len("bearer ")], "bearer ") {
		return "", false
	}
	token := strings.TrimSpace(header[len("bearer "):])
	if token == "" {
		return "", false
	}
	return token, true
}
