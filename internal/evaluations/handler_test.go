package evaluations

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"seedrowz-backend/internal/llm"
	"seedrowz-backend/internal/shared/auth"
	"seedrowz-backend/internal/shared/server/middleware"
)

func setupEvaluationRouter(t *testing.T, client llm.Client) (*gin.Engine, *auth.TokenService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens := auth.NewTokenService("test-secret", time.Hour)
	svc := NewService(NewMemoryRepo(), configuredSettings, factoryFor(client))
	router := gin.New()
	api := router.Group("/api")
	api.Use(middleware.Authenticate(tokens))
	NewHandler(svc).RegisterRoutes(api)
	return router, tokens
}

func postJSON(router *gin.Engine, path string, payload any, token string) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func get(router *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestEvaluateIdeaThenFetch(t *testing.T) {
	router, _ := setupEvaluationRouter(t, &fakeClient{text: "```json\n" + wellFormed + "\n```"})

	resp := postJSON(router, "/api/evaluate-idea", validRequest(), "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var created struct {
		Success    bool       `json:"success"`
		ResultID   int64      `json:"resultId"`
		Evaluation Evaluation `json:"evaluation"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !created.Success || created.ResultID == 0 || created.Evaluation.Feasibility != 82 {
		t.Fatalf("unexpected response: %+v", created)
	}

	resp = get(router, "/api/evaluation/"+jsonInt(created.ResultID), "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var fetched map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&fetched); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if fetched["competition"] != float64(40) {
		t.Fatalf("expected competition alias of 40, got %v", fetched["competition"])
	}
	if fetched["verdictCategory"] != "pass" {
		t.Fatalf("expected verdictCategory pass, got %v", fetched["verdictCategory"])
	}
}

func TestEvaluateIdeaMissingFieldsReturns400(t *testing.T) {
	client := &fakeClient{text: wellFormed}
	router, _ := setupEvaluationRouter(t, client)

	resp := postJSON(router, "/api/evaluate-idea", map[string]string{"title": "x"}, "")
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "businessModel") {
		t.Fatalf("expected field details, got %s", resp.Body.String())
	}
	if client.callCount() != 0 {
		t.Fatalf("expected no AI call")
	}
}

func TestEvaluateIdeaEmptyBodyReturns400(t *testing.T) {
	router, _ := setupEvaluationRouter(t, &fakeClient{text: wellFormed})
	req := httptest.NewRequest(http.MethodPost, "/api/evaluate-idea", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestEvaluateIdeaTransportFaultStill200(t *testing.T) {
	router, _ := setupEvaluationRouter(t, &fakeClient{err: errors.New("connection reset")})

	resp := postJSON(router, "/api/evaluate-idea", validRequest(), "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if strings.Contains(resp.Body.String(), "connection reset") {
		t.Fatalf("transport error leaked to client: %s", resp.Body.String())
	}
	if !strings.Contains(resp.Body.String(), `"verdict":"Needs Work"`) {
		t.Fatalf("expected fallback verdict, got %s", resp.Body.String())
	}
}

func TestEvaluateIdeaWithoutAIKeyReturns500(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := NewService(NewMemoryRepo(), func() llm.Settings { return llm.Settings{} }, factoryFor(&fakeClient{}))
	router := gin.New()
	NewHandler(svc).RegisterRoutes(router.Group("/api"))

	resp := postJSON(router, "/api/evaluate-idea", validRequest(), "")
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "AI service not configured") {
		t.Fatalf("unexpected body: %s", resp.Body.String())
	}
}

func TestGetEvaluationErrors(t *testing.T) {
	router, _ := setupEvaluationRouter(t, &fakeClient{text: wellFormed})

	if resp := get(router, "/api/evaluation/12345", ""); resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
	if resp := get(router, "/api/evaluation/abc", ""); resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestEvaluationHistoryRequiresAuth(t *testing.T) {
	router, tokens := setupEvaluationRouter(t, &fakeClient{text: wellFormed})

	if resp := get(router, "/api/evaluations", ""); resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}

	token, err := tokens.Sign(auth.Claims{UserID: 3, Email: "f@example.com", Role: "founder"})
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if resp := postJSON(router, "/api/evaluate-idea", validRequest(), token); resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	resp := get(router, "/api/evaluations", token)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var items []HistoryItem
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(items) != 1 || items[0].Title != "Seedrowz" {
		t.Fatalf("unexpected history: %+v", items)
	}
}

func TestEvaluateIdeaBadTokenIsAnonymousWhenOpen(t *testing.T) {
	client := &fakeClient{text: wellFormed}
	router, _ := setupEvaluationRouter(t, client)

	resp := postJSON(router, "/api/evaluate-idea", validRequest(), "not-a-token")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if client.callCount() != 1 {
		t.Fatalf("expected one AI call, got %d", client.callCount())
	}
}

func TestEvaluateIdeaRejectsBadTokenWhenGated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	client := &fakeClient{text: wellFormed}
	tokens := auth.NewTokenService("test-secret", time.Hour)
	svc := NewService(NewMemoryRepo(), configuredSettings, factoryFor(client))
	router := gin.New()
	api := router.Group("/api")
	api.Use(middleware.Authenticate(tokens), middleware.RequireAuth())
	NewHandler(svc).RegisterRoutes(api)

	now := time.Now().Unix()
	expired, err := tokens.Sign(auth.Claims{UserID: 3, Iat: now - 120, Exp: now - 60})
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	for _, token := range []string{"not-a-token", expired} {
		resp := postJSON(router, "/api/evaluate-idea", validRequest(), token)
		if resp.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", resp.Code)
		}
		if !strings.Contains(resp.Body.String(), "invalid or expired") {
			t.Fatalf("unexpected body: %s", resp.Body.String())
		}
	}
	if client.callCount() != 0 {
		t.Fatalf("expected no AI call before auth")
	}
}

func jsonInt(v int64) string {
	b, _ := json.Marshal(v)
	return string(b)
}
