package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHealthRoute(t *testing.T) {
	router := NewRouter()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if got := rec.Body.String(); got != `{"status":"ok"}` {
		t.Errorf("unexpected body: %s", got)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("expected permissive CORS header")
	}
}

func TestPreflightShortCircuits(t *testing.T) {
	router := NewRouter()
	router.HandleFunc("/thing", func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not run for preflight")
	})

	req := httptest.NewRequest(http.MethodOptions, "/thing", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 for preflight, got %d", rec.Code)
	}
}
