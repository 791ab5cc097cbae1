package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecurityLoggingMiddleware_RateLimiting(t *testing.T) {
	detector := NewSuspiciousActivityDetector()
	handler := SecurityLoggingMiddleware(nil, detector)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/inventory", nil)
	req.RemoteAddr = "192.0.2.10:1234"

	// The window allows 1000 requests per IP.
	for i := 0; i < 1000; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, "request %d", i)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	detector.mu.Lock()
	count := detector.requestCountByIP["192.0.2.10"]
	detector.mu.Unlock()
	assert.Equal(t, 1001, count)
}

func TestSecurityLoggingMiddleware_PerIPCounters(t *testing.T) {
	detector := NewSuspiciousActivityDetector()
	handler := SecurityLoggingMiddleware(nil, detector)(okHandler())

	for _, addr := range []string{"192.0.2.20:1", "192.0.2.21:1"} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/missions", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	detector.mu.Lock()
	defer detector.mu.Unlock()
	assert.Equal(t, 1, detector.requestCountByIP["192.0.2.20"])
	assert.Equal(t, 1, detector.requestCountByIP["192.0.2.21"])
}
