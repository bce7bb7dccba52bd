// pkg/api/telemetry.go
package api

import (
	"encoding/json"
	"net/http"
)

// SessionInfo is the /api/session response shape.
type SessionInfo struct {
	ID      string  `json:"id"`
	Frames  uint64  `json:"frames"`
	Elapsed float64 `json:"elapsed"`
	Running bool    `json:"running"`
}

func (s *Server) handleTelemetry(w http.ResponseWriter, r *http.Request) {
	snap := s.session.Snapshot()

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(snap); err != nil {
		s.log.Error(r.Context(), "failed to encode telemetry response", err)
	}
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	info := SessionInfo{
		ID:      s.session.ID,
		Frames:  s.session.Frames(),
		Elapsed: s.session.Elapsed(),
		Running: s.session.Running(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(info); err != nil {
		s.log.Error(r.Context(), "failed to encode session response", err)
	}
}
