package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNewClientRequiresKeyAndModel(t *testing.T) {
	if _, err := NewClient(context.Background(), "", "gemini-2.5-flash"); err == nil {
		t.Fatalf("expected missing key error")
	}
	if _, err := NewClient(context.Background(), "key", ""); err == nil {
		t.Fatalf("expected missing model error")
	}
}

func TestCompleteReturnsCandidateText(t *testing.T) {
	var path string
	var body map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"{\"verdict\":\"Pass\"}"}]}}]}`))
	}))
	defer server.Close()

	old := baseURL
	baseURL = server.URL + "/"
	t.Cleanup(func() { baseURL = old })

	client, err := NewClient(context.Background(), "test-key", "gemini-2.5-flash")
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	text, err := client.Complete(context.Background(), "evaluate this")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if text != `{"verdict":"Pass"}` {
		t.Fatalf("unexpected text %q", text)
	}
	if !strings.Contains(path, "gemini-2.5-flash:generateContent") {
		t.Fatalf("unexpected request path %q", path)
	}
	if body == nil {
		t.Fatalf("expected request body")
	}
}

func TestCompleteSurfacesHTTPErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"code":404,"message":"model not found","status":"NOT_FOUND"}}`))
	}))
	defer server.Close()

	old := baseURL
	baseURL = server.URL + "/"
	t.Cleanup(func() { baseURL = old })

	client, err := NewClient(context.Background(), "test-key", "gemini-missing")
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if _, err := client.Complete(context.Background(), "evaluate this"); err == nil {
		t.Fatalf("expected error for 404 response")
	}
}
