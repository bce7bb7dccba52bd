// pkg/api/stream.go
package api

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

// writeWait bounds how long a stream write may block before the client
// is considered gone.
const writeWait = 10 * time.Second

// upgrader accepts any origin: the API serves a local HUD, not a
// public site.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(*http.Request) bool { return true },
}

// handleStream upgrades to a websocket and pushes telemetry snapshots
// at the configured stream rate until the client disconnects or the
// server shuts down.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Error(r.Context(), "websocket upgrade failed", err)
		return
	}
	defer conn.Close()

	s.log.Debug(r.Context(), "telemetry stream opened",
		"remote", conn.RemoteAddr().String(),
		"session_id", s.session.ID,
	)

	// The reader exists only to notice the client closing.
	clientGone := make(chan struct{})
	go func() {
		defer close(clientGone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	interval := time.Second / time.Duration(s.cfg.StreamRate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-clientGone:
			return
		case <-s.done:
			// Shutdown does not wait on hijacked connections, so say
			// goodbye explicitly.
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
			return
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(s.session.Snapshot()); err != nil {
				s.log.Debug(r.Context(), "telemetry stream closed", "error", err.Error())
				return
			}
		}
	}
}
