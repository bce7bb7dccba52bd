package health

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/magooney-loon/jp-8-kerosene-sub000/pkg/config"
	"github.com/magooney-loon/jp-8-kerosene-sub000/pkg/engine"
	"github.com/magooney-loon/jp-8-kerosene-sub000/pkg/logging"
)

// TestHealthCheckIntegration tests the health check system against a
// real simulation session.
func TestHealthCheckIntegration(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Flight.RandSeed = 1
	cfg.Camera.RandSeed = 1

	session, err := engine.NewSession(cfg, logging.NewLogger())
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	healthChecker := NewHealthChecker()
	healthChecker.AddCheck(NewSimLoopHealthCheck(
		session.Frames,
		session.Running,
		time.Second,
	))
	healthChecker.AddCheck(NewTelemetryHealthCheck(session.Snapshot))

	t.Run("health checks before loop start", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
		defer cancel()

		health := healthChecker.CheckHealth(ctx)

		// The loop has not started yet
		if health.Checks["sim_loop"].Status != "unhealthy" {
			t.Error("Sim loop should be unhealthy before the loop starts")
		}

		// Telemetry is valid from the first snapshot
		if health.Checks["telemetry"].Status != "healthy" {
			t.Errorf("Telemetry should be healthy, got: %s",
				health.Checks["telemetry"].Message)
		}

		if health.Status != "unhealthy" {
			t.Error("Overall status should be unhealthy before the loop starts")
		}
	})

	// Start the session loop
	loopCtx, stopLoop := context.WithCancel(context.Background())
	defer stopLoop()
	go session.Run(loopCtx)

	// Wait for the loop to produce frames
	deadline := time.Now().Add(time.Second)
	for session.Frames() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if session.Frames() == 0 {
		t.Fatal("Session loop produced no frames")
	}

	t.Run("health checks after loop start", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
		defer cancel()

		health := healthChecker.CheckHealth(ctx)

		if health.Checks["sim_loop"].Status != "healthy" {
			t.Errorf("Sim loop should be healthy after the loop starts, got: %s",
				health.Checks["sim_loop"].Message)
		}

		if health.Checks["telemetry"].Status != "healthy" {
			t.Errorf("Telemetry should be healthy, got: %s",
				health.Checks["telemetry"].Message)
		}

		if health.Status != "healthy" {
			t.Errorf("Overall status should be healthy after the loop starts, got: %s", health.Status)
		}
	})

	t.Run("liveness endpoint", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/health", nil)
		w := httptest.NewRecorder()

		healthChecker.LivenessHandler(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected status code %d, got %d", http.StatusOK, w.Code)
		}

		var response map[string]string
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}

		if response["status"] != "alive" {
			t.Errorf("Expected status 'alive', got %s", response["status"])
		}
	})

	t.Run("readiness endpoint", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/ready", nil)
		w := httptest.NewRecorder()

		healthChecker.ReadinessHandler(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected status code %d, got %d", http.StatusOK, w.Code)
		}

		var response HealthStatus
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}

		if response.Status != "healthy" {
			t.Errorf("Expected status 'healthy', got %s", response.Status)
		}
	})
}

// TestHealthCheckWithFailures tests health check behavior when components fail
func TestHealthCheckWithFailures(t *testing.T) {
	healthChecker := NewHealthChecker()

	// Add a check that will fail
	failingCheck := &mockHealthCheck{
		name:    "failing_component",
		healthy: false,
		err:     fmt.Errorf("component is down"),
	}

	healthChecker.AddCheck(failingCheck)

	t.Run("readiness endpoint with failures", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/ready", nil)
		w := httptest.NewRecorder()

		healthChecker.ReadinessHandler(w, req)

		if w.Code != http.StatusServiceUnavailable {
			t.Errorf("Expected status code %d, got %d", http.StatusServiceUnavailable, w.Code)
		}

		var response HealthStatus
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}

		if response.Status != "unhealthy" {
			t.Errorf("Expected status 'unhealthy', got %s", response.Status)
		}

		if response.Checks["failing_component"].Status != "unhealthy" {
			t.Error("Failing component should be marked as unhealthy")
		}

		if response.Checks["failing_component"].Message == "" {
			t.Error("Failing component should have an error message")
		}
	})
}

// TestMemoryHealthCheckIntegration tests memory health check with real memory stats
func TestMemoryHealthCheckIntegration(t *testing.T) {
	healthChecker := NewHealthChecker()

	// Add memory check with very high limit (should pass)
	memoryCheck := NewMemoryHealthCheck(10000, getCurrentMemoryMB) // 10GB limit
	healthChecker.AddCheck(memoryCheck)

	t.Run("memory check with high limit", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
		defer cancel()

		health := healthChecker.CheckHealth(ctx)

		if health.Checks["memory"].Status != "healthy" {
			t.Errorf("Memory check should be healthy with high limit, got: %s",
				health.Checks["memory"].Message)
		}
	})

	healthChecker.RemoveCheck("memory")

	// Use a mock function that returns high memory usage
	mockHighMemory := func() int64 { return 100 }              // 100MB usage
	lowMemoryCheck := NewMemoryHealthCheck(50, mockHighMemory) // 50MB limit
	healthChecker.AddCheck(lowMemoryCheck)

	t.Run("memory check with low limit", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
		defer cancel()

		health := healthChecker.CheckHealth(ctx)

		if health.Checks["memory"].Status != "unhealthy" {
			t.Error("Memory check should be unhealthy with low limit")
		}

		if health.Status != "unhealthy" {
			t.Error("Overall status should be unhealthy due to memory limit")
		}
	})
}
