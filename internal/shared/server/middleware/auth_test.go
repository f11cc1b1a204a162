package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"seedrowz-backend/internal/shared/auth"
)

func newAuthRouter(tokens TokenVerifier, require bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Authenticate(tokens))
	handlers := []gin.HandlerFunc{}
	if require {
		handlers = append(handlers, RequireAuth())
	}
	handlers = append(handlers, func(c *gin.Context) {
		p, _ := PrincipalFromContext(c)
		c.JSON(http.StatusOK, gin.H{"id": p.ID, "email": p.Email})
	})
	router.GET("/private", handlers...)
	router.OPTIONS("/private", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return router
}

func TestAuthAllowsOptionsWithoutIdentity(t *testing.T) {
	router := newAuthRouter(auth.NewTokenService("secret", time.Hour), true)

	req := httptest.NewRequest(http.MethodOptions, "/private", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.Code)
	}
}

func TestRequireAuthRejectsMissingToken(t *testing.T) {
	router := newAuthRouter(auth.NewTokenService("secret", time.Hour), true)

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestAuthenticateLeavesInvalidTokenAnonymous(t *testing.T) {
	router := newAuthRouter(auth.NewTokenService("secret", time.Hour), false)

	for _, header := range []string{"Bearer nope", "Basic abc", "Bearer "} {
		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		req.Header.Set("Authorization", header)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)

		if resp.Code != http.StatusOK {
			t.Fatalf("header %q: expected 200, got %d", header, resp.Code)
		}
		if got := resp.Body.String(); got != `{"email":"","id":0}` {
			t.Fatalf("header %q: expected anonymous principal, got %s", header, got)
		}
	}
}

func TestRequireAuthRejectsInvalidToken(t *testing.T) {
	router := newAuthRouter(auth.NewTokenService("secret", time.Hour), true)

	for _, header := range []string{"Bearer nope", "Basic abc", "Bearer "} {
		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		req.Header.Set("Authorization", header)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)

		if resp.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: expected 401, got %d", header, resp.Code)
		}
		if !strings.Contains(resp.Body.String(), "invalid or expired") {
			t.Fatalf("header %q: unexpected body %s", header, resp.Body.String())
		}
	}
}

func TestRequireAuthRejectsExpiredToken(t *testing.T) {
	tokens := auth.NewTokenService("secret", time.Hour)
	now := time.Now().Unix()
	token, err := tokens.Sign(auth.Claims{UserID: 4, Iat: now - 120, Exp: now - 60})
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	open := newAuthRouter(tokens, false)
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	open.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("open route: expected 200, got %d", resp.Code)
	}

	gated := newAuthRouter(tokens, true)
	req = httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp = httptest.NewRecorder()
	gated.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("gated route: expected 401, got %d", resp.Code)
	}
}

func TestAuthenticateAttachesPrincipal(t *testing.T) {
	tokens := auth.NewTokenService("secret", time.Hour)
	token, err := tokens.Sign(auth.Claims{UserID: 9, Email: "f@seed.io", Role: "founder"})
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	router := newAuthRouter(tokens, true)

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if got := resp.Body.String(); got != `{"email":"f@seed.io","id":9}` {
		t.Fatalf("unexpected body: %s", got)
	}
}

func TestAuthenticatePassesAnonymousThrough(t *testing.T) {
	router := newAuthRouter(auth.NewTokenService("secret", time.Hour), false)

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
}
