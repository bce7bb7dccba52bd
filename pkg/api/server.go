// Package api exposes a running flight session over HTTP for external
// HUDs: a JSON telemetry snapshot, a websocket push stream, and the
// health probes. It is local UI glue, not a multiplayer surface.
package api

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/magooney-loon/jp-8-kerosene-sub000/pkg/config"
	"github.com/magooney-loon/jp-8-kerosene-sub000/pkg/engine"
	"github.com/magooney-loon/jp-8-kerosene-sub000/pkg/health"
	"github.com/magooney-loon/jp-8-kerosene-sub000/pkg/logging"
)

// Server serves the telemetry API for one session.
type Server struct {
	cfg     config.APIConfig
	log     *logging.Logger
	session *engine.Session
	checker *health.HealthChecker

	httpSrv  *http.Server
	done     chan struct{}
	stopOnce sync.Once

	mu       sync.Mutex
	listener net.Listener
}

// NewServer wires the API routes for the given session. The health
// checker is served as-is; callers register their domain checks before
// or after Start.
func NewServer(cfg config.APIConfig, session *engine.Session, checker *health.HealthChecker, log *logging.Logger) *Server {
	if log == nil {
		log = logging.NewLogger()
	}

	s := &Server{
		cfg:     cfg,
		log:     log,
		session: session,
		checker: checker,
		done:    make(chan struct{}),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", checker.LivenessHandler)
	mux.HandleFunc("GET /ready", checker.ReadinessHandler)
	mux.HandleFunc("GET /api/telemetry", s.handleTelemetry)
	mux.HandleFunc("GET /api/telemetry/stream", s.handleStream)
	mux.HandleFunc("GET /api/session", s.handleSession)

	s.httpSrv = &http.Server{
		Handler:      mux,
		ReadTimeout:  time.Duration(cfg.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeoutSec) * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Start binds the configured address and begins serving in the
// background. Use Addr to discover the bound address when the
// configuration asked for port 0.
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("failed to bind api listener on %s: %w", s.cfg.Addr, err)
	}

	s.mu.Lock()
	s.listener = listener
	s.mu.Unlock()

	s.log.Info(context.Background(), "api server listening",
		"addr", listener.Addr().String(),
		"session_id", s.session.ID,
	)

	go func() {
		if err := s.httpSrv.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.log.Error(context.Background(), "api server stopped", err)
		}
	}()

	return nil
}

// Addr returns the bound listener address, or the configured address
// if the server has not started.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.cfg.Addr
}

// Shutdown stops the stream loops and drains the HTTP server. Safe to
// call more than once.
func (s *Server) Shutdown(ctx context.Context) error {
	s.stopOnce.Do(func() { close(s.done) })
	if err := s.httpSrv.Shutdown(ctx); err != nil {
		return fmt.Errorf("api server shutdown: %w", err)
	}
	return nil
}
