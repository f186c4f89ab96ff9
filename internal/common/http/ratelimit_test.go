package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	commonhttp "github.com/mbickford/accounts-service/internal/common/http"
)

func TestRateLimiter_BlocksAfterBurst(t *testing.T) {
	rl := commonhttp.NewRateLimiter(1, 2)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := rl.Middleware(next)

	var lastCode int
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/token", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		lastCode = rec.Code
	}

	if lastCode != http.StatusTooManyRequests {
		t.Errorf("expected 429 after burst exhausted, got %d", lastCode)
	}
}

func TestRateLimiter_SeparateClients(t *testing.T) {
	rl := commonhttp.NewRateLimiter(1, 1)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := rl.Middleware(next)

	first := httptest.NewRequest(http.MethodGet, "/token", nil)
	first.RemoteAddr = "10.0.0.1:1234"
	rec1 := httptest.NewRecorder()
	handler.ServeHTTP(rec1, first)

	second := httptest.NewRequest(http.MethodGet, "/token", nil)
	second.RemoteAddr = "10.0.0.2:1234"
	rec2 := httptest.NewRecorder()
	handler.ServeHTTP(rec2, second)

	if rec1.Code != http.StatusOK || rec2.Code != http.StatusOK {
		t.Errorf("expected both clients allowed, got %d and %d", rec1.Code, rec2.Code)
	}
}
