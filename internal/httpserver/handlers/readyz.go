package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/sourcepage/internal/httpserver/deps"
)

type readyzResponse struct {
	Ready     bool     `json:"ready"`
	Builds    int      `json:"builds"`
	LastBuild string   `json:"last_build,omitempty"`
	Sections  []string `json:"sections,omitempty"`
	Missing   []string `json:"missing,omitempty"`
	Links     int      `json:"links"`
	Error     string   `json:"error,omitempty"`
}

// Readyz reports 200 when the latest build succeeded, 503 otherwise.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := d.Builds.Status()

		resp := readyzResponse{
			Ready:    status.OK(),
			Builds:   status.Builds,
			Sections: status.Report.Rendered,
			Missing:  status.Report.Missing,
			Links:    status.Report.Links,
		}
		if !status.LastBuild.IsZero() {
			resp.LastBuild = status.LastBuild.UTC().Format(time.RFC3339)
		}
		if status.LastError != nil {
			resp.Error = status.LastError.Error()
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")
		if resp.Ready {
			w.WriteHeader(http.StatusOK)
		} else {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}
