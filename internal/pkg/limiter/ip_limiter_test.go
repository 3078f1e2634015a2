package limiter

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/time/rate"
)

func TestGetLimiterSharedPerIP(t *testing.T) {
	l := NewIPRateLimiter(rate.Limit(1), 1)

	a := l.GetLimiter("1.2.3.4")
	b := l.GetLimiter("1.2.3.4")
	if a != b {
		t.Error("same IP produced two distinct limiters")
	}

	other := l.GetLimiter("5.6.7.8")
	if a == other {
		t.Error("different IPs share one limiter")
	}
}

func TestMiddlewareRejectsOverBurst(t *testing.T) {
	l := NewIPRateLimiter(rate.Limit(0.001), 1)

	var passed int
	h := l.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		passed++
	}))

	doRequest := func(remoteAddr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/ws", nil)
		req.RemoteAddr = remoteAddr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	if rec := doRequest("1.2.3.4:5678"); rec.Code != http.StatusOK {
		t.Fatalf("first request status = %d, want 200", rec.Code)
	}

	rec := doRequest("1.2.3.4:5678")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("over-burst request status = %d, want 429", rec.Code)
	}
	if passed != 1 {
		t.Errorf("handler ran %d times, want 1", passed)
	}

	// A different IP has its own bucket.
	if rec := doRequest("5.6.7.8:5678"); rec.Code != http.StatusOK {
		t.Errorf("fresh IP status = %d, want 200", rec.Code)
	}
}
