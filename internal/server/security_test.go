package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware(t *testing.T) {
	apiKey := "vault-test-key"
	detector := NewSuspiciousActivityDetector()
	handler := AuthMiddleware(apiKey, nil, detector)(okHandler())

	tests := []struct {
		name        string
		providedKey string
		path        string
		wantStatus  int
	}{
		{"valid key", apiKey, "/api/v1/inventory/draw", http.StatusOK},
		{"invalid key", "wrong-key", "/api/v1/inventory/draw", http.StatusUnauthorized},
		{"missing key", "", "/api/v1/trades", http.StatusUnauthorized},
		{"healthz is public", "", "/healthz", http.StatusOK},
		{"readyz is public", "", "/readyz", http.StatusOK},
		{"metrics is public", "", "/metrics", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.providedKey != "" {
				req.Header.Set(HeaderAPIKey, tt.providedKey)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestAuthMiddleware_RecordsFailedAttempts(t *testing.T) {
	detector := NewSuspiciousActivityDetector()
	handler := AuthMiddleware("vault-test-key", nil, detector)(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/economy/grant", nil)
	req.RemoteAddr = "203.0.113.9:4711"
	req.Header.Set(HeaderAPIKey, "wrong-key")

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	}

	detector.mu.Lock()
	failed := detector.failedAuthByIP["203.0.113.9"]
	detector.mu.Unlock()
	assert.Equal(t, 3, failed)
}

func TestExtractIP_TrustedProxy(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog", nil)
	req.RemoteAddr = "10.0.0.5:9000"
	req.Header.Set(HeaderForwardedFor, "198.51.100.7, 10.0.0.5")

	// Forwarded-for from an untrusted peer is ignored.
	assert.Equal(t, "10.0.0.5", extractIP(req, nil))

	// A trusted proxy's rightmost hop is honored.
	assert.Equal(t, "10.0.0.5", extractIP(req, []string{"10.0.0.5"}))

	req.Header.Set(HeaderForwardedFor, "198.51.100.7")
	assert.Equal(t, "198.51.100.7", extractIP(req, []string{"10.0.0.5"}))
}

func TestRequestSizeLimitMiddleware(t *testing.T) {
	handler := RequestSizeLimitMiddleware(16)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := io.ReadAll(r.Body); err != nil {
			http.Error(w, err.Error(), http.StatusRequestEntityTooLarge)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))

	small := httptest.NewRequest(http.MethodPost, "/api/v1/trades", strings.NewReader(`{"a":1}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, small)
	assert.Equal(t, http.StatusOK, rec.Code)

	big := httptest.NewRequest(http.MethodPost, "/api/v1/trades", strings.NewReader(strings.Repeat("x", 64)))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, big)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}
