package respond

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestCreatedIsUncached(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/things", func(c *gin.Context) {
		Created(c, gin.H{"id": 1})
	})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/things", nil))

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}
	if got := resp.Header().Get("Cache-Control"); got != "no-store" {
		t.Fatalf("expected no-store, got %q", got)
	}
	if resp.Body.String() != `{"id":1}` {
		t.Fatalf("unexpected body: %s", resp.Body.String())
	}
}

func TestErrorBodyShape(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/fail", func(c *gin.Context) {
		Error(c, http.StatusBadRequest, "validation_error", "Missing required fields", gin.H{"fields": []string{"title"}})
	})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/fail", nil))

	want := `{"error":{"code":"validation_error","message":"Missing required fields","details":{"fields":["title"]}}}`
	if resp.Code != http.StatusBadRequest || resp.Body.String() != want {
		t.Fatalf("unexpected response: %d %s", resp.Code, resp.Body.String())
	}
}
