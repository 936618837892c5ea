package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func preflight(t *testing.T, requestHeaders string) *httptest.ResponseRecorder {
	t.Helper()

	handler := NewCORS([]string{"http://localhost:3000"}).Handler(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		}),
	)

	req := httptest.NewRequest(http.MethodOptions, "/api/asset", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", requestHeaders)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestCORSAllowsContentType(t *testing.T) {
	rec := preflight(t, "Content-Type")

	if rec.Header().Get("Access-Control-Allow-Origin") != "http://localhost:3000" {
		t.Errorf("expected origin allowed, got %q", rec.Header().Get("Access-Control-Allow-Origin"))
	}
	if rec.Header().Get("Access-Control-Allow-Headers") == "" {
		t.Error("expected Content-Type in allowed headers")
	}
}

func TestCORSRejectsUnknownHeader(t *testing.T) {
	rec := preflight(t, "X-Api-Key")

	if rec.Header().Get("Access-Control-Allow-Headers") != "" {
		t.Errorf("unexpected allowed headers: %q", rec.Header().Get("Access-Control-Allow-Headers"))
	}
}
