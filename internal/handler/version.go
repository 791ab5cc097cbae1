package handler

import (
	"net/http"
	"os"
	"runtime"
)

// Build metadata injected via -ldflags "-X ...".
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unset"
)

// VersionInfo reports what build is deployed.
type VersionInfo struct {
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	BuildTime string `json:"build_time,omitempty"`
	GitCommit string `json:"git_commit,omitempty"`
}

// HandleVersion reports the deployed version and build metadata.
func HandleVersion() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, VersionInfo{
			Version:   resolveVersion(),
			GoVersion: runtime.Version(),
			BuildTime: BuildTime,
			GitCommit: GitCommit,
		})
	}
}

// resolveVersion prefers the build-time version, then APP_VERSION from the
// environment, then "dev".
func resolveVersion() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if v := os.Getenv("APP_VERSION"); v != "" {
		return v
	}
	return "dev"
}
