//go:build staging

package staging

import (
	"encoding/json"
	"net/http"
	"testing"
)

func TestLiveness(t *testing.T) {
	resp, body := makeRequest(t, "GET", "/healthz", nil)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.StatusCode, string(body))
	}
}

func TestReadiness(t *testing.T) {
	resp, body := makeRequest(t, "GET", "/readyz", nil)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.StatusCode, string(body))
	}

	var health struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(body, &health); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if health.Status != "ok" {
		t.Fatalf("Expected status ok, got %q", health.Status)
	}
}

func TestVersionReported(t *testing.T) {
	resp, body := makeRequest(t, "GET", "/version", nil)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.StatusCode, string(body))
	}

	var version struct {
		Version   string `json:"version"`
		GoVersion string `json:"go_version"`
	}
	if err := json.Unmarshal(body, &version); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if version.Version == "" {
		t.Fatal("Expected a non-empty version")
	}
}
