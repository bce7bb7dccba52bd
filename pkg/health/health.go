// Package health provides health check endpoints for the simulation
// host. It implements HTTP liveness and readiness probes so
// orchestrators can restart a wedged process and load balancers can
// hold traffic while the session warms up.
package health

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/magooney-loon/jp-8-kerosene-sub000/pkg/telemetry"
)

// HealthCheck defines the interface for individual health checks.
// Each component can implement this interface to provide its health status.
type HealthCheck interface {
	// Name returns the unique name of this health check
	Name() string
	// Check performs the health check and returns an error if unhealthy
	Check(ctx context.Context) error
}

// HealthStatus represents the overall health status of the application.
type HealthStatus struct {
	Status string                     `json:"status"`
	Checks map[string]ComponentHealth `json:"checks"`
}

// ComponentHealth represents the health status of an individual component.
type ComponentHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// HealthChecker manages and executes health checks for the application.
type HealthChecker struct {
	checks map[string]HealthCheck
	mu     sync.RWMutex
}

// NewHealthChecker creates a new health checker instance.
func NewHealthChecker() *HealthChecker {
	return &HealthChecker{
		checks: make(map[string]HealthCheck),
	}
}

// AddCheck registers a new health check with the health checker.
// If a check with the same name already exists, it will be replaced.
func (hc *HealthChecker) AddCheck(check HealthCheck) {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	hc.checks[check.Name()] = check
}

// RemoveCheck removes a health check by name.
func (hc *HealthChecker) RemoveCheck(name string) {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	delete(hc.checks, name)
}

// CheckHealth executes all registered health checks and returns the aggregated status.
// The overall status is "healthy" only if all individual checks pass.
func (hc *HealthChecker) CheckHealth(ctx context.Context) HealthStatus {
	hc.mu.RLock()
	defer hc.mu.RUnlock()

	status := HealthStatus{
		Status: "healthy",
		Checks: make(map[string]ComponentHealth),
	}

	for name, check := range hc.checks {
		if err := check.Check(ctx); err != nil {
			status.Status = "unhealthy"
			status.Checks[name] = ComponentHealth{
				Status:  "unhealthy",
				Message: err.Error(),
			}
		} else {
			status.Checks[name] = ComponentHealth{
				Status: "healthy",
			}
		}
	}

	return status
}

// LivenessHandler provides a simple liveness probe endpoint.
// This endpoint returns 200 OK if the application is running and able to handle requests.
// It's used by orchestrators to determine if the application should be restarted.
func (hc *HealthChecker) LivenessHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	response := map[string]string{"status": "alive"}
	json.NewEncoder(w).Encode(response)
}

// ReadinessHandler provides a readiness probe endpoint that executes all health checks.
// This endpoint returns 200 OK if the application is ready to serve traffic,
// or 503 Service Unavailable if any health check fails.
func (hc *HealthChecker) ReadinessHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	health := hc.CheckHealth(ctx)

	w.Header().Set("Content-Type", "application/json")

	if health.Status == "healthy" {
		w.WriteHeader(http.StatusOK)
	} else {
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	json.NewEncoder(w).Encode(health)
}

// SimLoopHealthCheck verifies that the simulation loop keeps advancing
// frames. A frame counter that stops moving while the loop claims to be
// running means the session goroutine is wedged.
type SimLoopHealthCheck struct {
	frames     func() uint64
	running    func() bool
	staleAfter time.Duration
	now        func() time.Time

	mu         sync.Mutex
	lastFrames uint64
	lastMoved  time.Time
}

// NewSimLoopHealthCheck creates a health check for the simulation loop.
// staleAfter is how long the frame counter may hold still before the
// check reports unhealthy.
func NewSimLoopHealthCheck(frames func() uint64, running func() bool, staleAfter time.Duration) *SimLoopHealthCheck {
	return &SimLoopHealthCheck{
		frames:     frames,
		running:    running,
		staleAfter: staleAfter,
		now:        time.Now,
		lastMoved:  time.Now(),
	}
}

// Name returns the name of this health check.
func (s *SimLoopHealthCheck) Name() string {
	return "sim_loop"
}

// Check verifies that frames advanced since the last probe.
func (s *SimLoopHealthCheck) Check(ctx context.Context) error {
	if !s.running() {
		return fmt.Errorf("simulation loop is not running")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.frames()
	if current != s.lastFrames {
		s.lastFrames = current
		s.lastMoved = s.now()
		return nil
	}

	stale := s.now().Sub(s.lastMoved)
	if stale > s.staleAfter {
		return fmt.Errorf("simulation loop stalled: no frames for %v", stale.Round(time.Millisecond))
	}
	return nil
}

// TelemetryHealthCheck verifies that the latest telemetry snapshot is
// numerically sane. The simulator self-heals non-finite state, so a
// poisoned snapshot surviving to a probe means the healing path broke.
type TelemetryHealthCheck struct {
	snapshot func() telemetry.Snapshot
}

// NewTelemetryHealthCheck creates a health check for telemetry output.
func NewTelemetryHealthCheck(snapshot func() telemetry.Snapshot) *TelemetryHealthCheck {
	return &TelemetryHealthCheck{
		snapshot: snapshot,
	}
}

// Name returns the name of this health check.
func (t *TelemetryHealthCheck) Name() string {
	return "telemetry"
}

// Check verifies that the key readouts are finite.
func (t *TelemetryHealthCheck) Check(ctx context.Context) error {
	snap := t.snapshot()
	fields := map[string]float64{
		"speed":    snap.Speed,
		"mach":     snap.MachNumber,
		"altitude": snap.Altitude,
		"heading":  snap.Heading,
		"gForce":   snap.GForce,
		"fuel":     snap.FuelPercent,
	}
	for name, value := range fields {
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return fmt.Errorf("telemetry field %s is not finite", name)
		}
	}
	return nil
}

// MemoryHealthCheck implements HealthCheck for memory usage monitoring.
type MemoryHealthCheck struct {
	maxMemoryMB    int64
	getMemoryUsage func() int64
}

// NewMemoryHealthCheck creates a health check for memory usage.
func NewMemoryHealthCheck(maxMemoryMB int64, getMemoryUsage func() int64) *MemoryHealthCheck {
	return &MemoryHealthCheck{
		maxMemoryMB:    maxMemoryMB,
		getMemoryUsage: getMemoryUsage,
	}
}

// Name returns the name of this health check.
func (m *MemoryHealthCheck) Name() string {
	return "memory"
}

// Check verifies that memory usage is within acceptable limits.
func (m *MemoryHealthCheck) Check(ctx context.Context) error {
	currentMB := m.getMemoryUsage()
	if currentMB > m.maxMemoryMB {
		return fmt.Errorf("memory usage %dMB exceeds limit %dMB", currentMB, m.maxMemoryMB)
	}
	return nil
}
