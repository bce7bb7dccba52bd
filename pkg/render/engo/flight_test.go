// pkg/render/engo/flight_test.go
package engo

import (
	"math"
	"testing"
)

func TestClampFrameDelta(t *testing.T) {
	tests := []struct {
		name     string
		dt       float64
		expected float64
	}{
		{"negative clamps to zero", -1, 0},
		{"zero passes through", 0, 0},
		{"normal frame passes through", 1.0 / 60.0, 1.0 / 60.0},
		{"cap boundary passes through", 0.1, 0.1},
		{"dragged window clamps to cap", 0.5, 0.1},
		{"paused process clamps to cap", 30, 0.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := clampFrameDelta(tt.dt); got != tt.expected {
				t.Errorf("clampFrameDelta(%v) = %v, want %v", tt.dt, got, tt.expected)
			}
		})
	}
}

func TestNewFlightSystem(t *testing.T) {
	session := newTestSession(t)

	fs := NewFlightSystem(session)

	if fs == nil {
		t.Fatal("NewFlightSystem() returned nil")
	}

	if fs.session != session {
		t.Error("Expected session to be set correctly")
	}
}

func TestFlightSystem_Update_AdvancesSession(t *testing.T) {
	session := newTestSession(t)
	fs := NewFlightSystem(session)

	for i := 0; i < 3; i++ {
		fs.Update(1.0 / 60.0)
	}

	if frames := session.Frames(); frames != 3 {
		t.Errorf("Expected 3 frames stepped, got %d", frames)
	}

	if elapsed := session.Elapsed(); math.Abs(elapsed-3.0/60.0) > 1e-6 {
		t.Errorf("Expected elapsed near %v, got %v", 3.0/60.0, elapsed)
	}
}

func TestFlightSystem_Update_CapsGiantFrames(t *testing.T) {
	session := newTestSession(t)
	fs := NewFlightSystem(session)

	fs.Update(5.0)

	if elapsed := session.Elapsed(); elapsed > 0.1 {
		t.Errorf("Expected elapsed capped at 0.1, got %v", elapsed)
	}
}
