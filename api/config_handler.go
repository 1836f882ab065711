package api

import (
	"net/http"

	"github.com/seenimoa/valuekit/internal/config"
)

// ConfigResponse is the JSON envelope returned by GET /api/v1/config.
type ConfigResponse struct {
	Config   *config.Config         `json:"config"`
	Settings []config.SettingStatus `json:"settings"` // effective value and source per key
}

// handleGetConfig returns the running configuration and where each
// setting came from.
func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: ConfigResponse{
			Config:   s.cfg,
			Settings: config.Describe(s.cfg),
		},
	})
}
