// pkg/engine/session.go
package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"

	"github.com/magooney-loon/jp-8-kerosene-sub000/pkg/camera"
	"github.com/magooney-loon/jp-8-kerosene-sub000/pkg/config"
	"github.com/magooney-loon/jp-8-kerosene-sub000/pkg/event"
	"github.com/magooney-loon/jp-8-kerosene-sub000/pkg/flight"
	"github.com/magooney-loon/jp-8-kerosene-sub000/pkg/input"
	"github.com/magooney-loon/jp-8-kerosene-sub000/pkg/logging"
	"github.com/magooney-loon/jp-8-kerosene-sub000/pkg/telemetry"
)

// maxTickDelta caps wall-clock frame gaps so a stalled host process
// cannot feed the simulation one giant timestep when it resumes.
const maxTickDelta = 0.1

// Session owns one airframe and everything that advances it: the input
// latch, the flight simulator, the chase camera and the telemetry
// deriver. All mutable state lives behind one mutex; Step and the
// read accessors may be called from different goroutines.
type Session struct {
	ID string

	mu sync.RWMutex

	log *logging.Logger
	bus *event.Bus

	latch   *input.Latch
	fire    *input.FireTracker
	sim     *flight.Simulator
	rig     *camera.Rig
	deriver *telemetry.Deriver

	state    *flight.ShipState
	pose     *camera.Pose
	snapshot telemetry.Snapshot

	updateRate int
	lastUpdate time.Time
	frames     uint64
	running    bool

	// Previous-frame values for edge-triggered events.
	prevStalled     bool
	prevStabilizing bool
	prevRecovery    bool
	prevLit         bool
	prevFuel        float64
}

// NewSession builds a session from a validated configuration.
func NewSession(cfg *config.Config, log *logging.Logger) (*Session, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid session config: %w", err)
	}
	if log == nil {
		log = logging.NewLogger()
	}

	state := flight.NewShipState(cfg.Flight)
	session := &Session{
		ID:         uuid.NewString(),
		log:        log,
		bus:        event.NewEventBus(),
		latch:      input.NewLatch(),
		fire:       input.NewFireTracker(),
		sim:        flight.NewSimulator(cfg.Flight, log),
		rig:        camera.NewRig(cfg.Camera, log),
		deriver:    telemetry.NewDeriver(cfg.Flight),
		state:      state,
		pose:       camera.NewPose(cfg.Camera),
		updateRate: cfg.Session.UpdateRate,
		lastUpdate: time.Now(),
		prevFuel:   state.FuelPercentage,
	}

	// First snapshot reflects the untouched state so readers never see
	// a zero struct.
	session.snapshot = session.deriver.Compute(state, 0, state.Yaw(), input.Controls{})

	return session, nil
}

// Bus returns the session's event bus for subscribing to flight
// events.
func (s *Session) Bus() *event.Bus {
	return s.bus
}

// SetControl records the held state of one action. Safe to call from
// any goroutine, including mid-frame; the change is picked up at the
// top of the next Step.
func (s *Session) SetControl(action input.Action, down bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latch.Set(action, down)
}

// ReleaseControls drops every held action, used when the host window
// loses focus.
func (s *Session) ReleaseControls() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latch.Reset()
}

// Step advances the session by dt seconds of simulation time and
// returns the resulting telemetry snapshot. Render loops that carry
// their own frame clock call this directly.
func (s *Session) Step(dt float64) telemetry.Snapshot {
	s.mu.Lock()
	snap, events := s.advance(dt)
	s.mu.Unlock()

	s.publish(events)
	return snap
}

// StepClock advances the session using wall-clock time, capping the
// gap since the previous call the same way a frame clock would.
func (s *Session) StepClock(now time.Time) telemetry.Snapshot {
	s.mu.Lock()
	dt := now.Sub(s.lastUpdate).Seconds()
	s.lastUpdate = now
	if dt < 0 {
		dt = 0
	}
	if dt > maxTickDelta {
		dt = maxTickDelta
	}
	snap, events := s.advance(dt)
	s.mu.Unlock()

	s.publish(events)
	return snap
}

// Run drives the session from a ticker until the context is canceled.
func (s *Session) Run(ctx context.Context) error {
	interval := time.Second / time.Duration(s.updateRate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.mu.Lock()
	s.lastUpdate = time.Now()
	s.running = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	s.log.Info(ctx, "session loop started",
		"session_id", s.ID,
		"update_rate", s.updateRate,
	)

	for {
		select {
		case <-ctx.Done():
			s.log.Info(ctx, "session loop stopped", "session_id", s.ID)
			return ctx.Err()
		case now := <-ticker.C:
			s.StepClock(now)
		}
	}
}

// Snapshot returns the telemetry computed by the most recent frame.
func (s *Session) Snapshot() telemetry.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// Pose returns the camera pose computed by the most recent frame.
func (s *Session) Pose() camera.Pose {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return *s.pose
}

// WorldOffset returns the accumulated scene recentering offset, used by
// renderers for background parallax.
func (s *Session) WorldOffset() mgl64.Vec3 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.WorldOffset
}

// Frames returns how many frames the session has advanced.
func (s *Session) Frames() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.frames
}

// Elapsed returns the session's simulation time in seconds.
func (s *Session) Elapsed() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Elapsed
}

// Running reports whether the ticker loop is active.
func (s *Session) Running() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// advance runs one full frame under the session lock and returns the
// snapshot plus any events to publish after the lock is released.
func (s *Session) advance(dt float64) (telemetry.Snapshot, []event.Event) {
	in := s.latch.Snapshot()
	prolonged := s.fire.Update(in.Fire, dt)

	yaw := s.sim.Update(s.state, in, dt)
	s.rig.Update(s.pose, s.state, in, prolonged, dt)
	s.snapshot = s.deriver.Compute(s.state, dt, yaw, in)
	s.frames++

	return s.snapshot, s.collectTransitions()
}

// collectTransitions compares the frame's end state against the
// previous frame and emits one event per edge.
func (s *Session) collectTransitions() []event.Event {
	var events []event.Event
	st := s.state

	emit := func(eventType event.Type) {
		events = append(events, event.NewFlightEvent(
			eventType, s, s.ID,
			st.Elapsed, st.Speed, st.FuelPercentage, st.Assist.Progress,
		))
	}

	if st.Assist.Stalled && !s.prevStalled {
		emit(event.StallEntered)
	}
	if st.Assist.Stabilizing && !s.prevStabilizing {
		emit(event.AutoStabilizeEngaged)
	}
	if st.Assist.RecoveryThrust && !s.prevRecovery {
		emit(event.RecoveryThrustEngaged)
	}
	if !st.Assist.Stabilizing && s.prevStabilizing {
		emit(event.AutoStabilizeEnded)
	}

	if st.AfterburnerLit && !s.prevLit {
		emit(event.AfterburnerEngaged)
	}
	if !st.AfterburnerLit && s.prevLit {
		emit(event.AfterburnerEnded)
	}

	lowMark := s.sim.Tuning().LowFuelWarning
	if st.FuelPercentage <= lowMark && s.prevFuel > lowMark {
		emit(event.FuelLow)
	}
	if st.FuelPercentage <= 0 && s.prevFuel > 0 {
		emit(event.FuelExhausted)
	}

	s.prevStalled = st.Assist.Stalled
	s.prevStabilizing = st.Assist.Stabilizing
	s.prevRecovery = st.Assist.RecoveryThrust
	s.prevLit = st.AfterburnerLit
	s.prevFuel = st.FuelPercentage

	return events
}

// publish delivers events outside the session lock so handlers may
// call back into the session.
func (s *Session) publish(events []event.Event) {
	for _, ev := range events {
		s.bus.Publish(ev)
	}
}
