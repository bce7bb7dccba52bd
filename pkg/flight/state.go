// pkg/flight/state.go
package flight

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/magooney-loon/jp-8-kerosene-sub000/pkg/physics"
)

// Axis indices into Orientation and AngularVelocity.
const (
	AxisPitch = 0
	AxisYaw   = 1
	AxisRoll  = 2
)

// ShipState is the complete airframe state advanced by the Simulator.
// It is created once per session and mutated in place every frame; the
// camera rig and telemetry read it between simulator calls on the same
// goroutine. Every cross-frame scratch value is a plain struct field so
// first-frame reads are well defined.
type ShipState struct {
	// Orientation holds pitch, yaw and roll in radians. Positive pitch
	// is nose up, positive yaw turns counterclockwise seen from above,
	// positive roll banks left.
	Orientation mgl64.Vec3
	// AngularVelocity holds the rotation rates on the same axes, in
	// radians per second.
	AngularVelocity mgl64.Vec3

	LinearVelocity mgl64.Vec3
	// Speed caches the magnitude of LinearVelocity as of the last
	// update.
	Speed float64

	EnginePower       float64
	AfterburnerEffect float64
	AfterburnerLit    bool

	FuelPercentage       float64
	AfterburnerAvailable bool

	CurrentGForce  float64
	ShakeMagnitude float64
	AngleOfAttack  float64 // degrees

	// WorldOffset accumulates the position integral. Rendering treats
	// it as a parallax origin; the model never reads it back.
	WorldOffset mgl64.Vec3

	// PersistentMaxSpeed holds the boosted ceiling after afterburner
	// release so deceleration is gradual instead of a hard clamp.
	PersistentMaxSpeed float64

	// Sim-time bookkeeping in seconds since the state was created.
	Elapsed                  float64
	AfterburnerCooldownUntil float64
	LastAfterburnerTime      float64

	Assist AssistState

	// Cross-frame control smoothing.
	rollIntensity float64
	prevRollDelta float64
}

// NewShipState creates a session's airframe in level cruise with full
// tanks.
func NewShipState(tun Tuning) *ShipState {
	return &ShipState{
		LinearVelocity:     physics.Forward(0, 0).Mul(tun.CruiseSpeed),
		Speed:              tun.CruiseSpeed,
		FuelPercentage:     100,
		CurrentGForce:      tun.MinGForce,
		PersistentMaxSpeed: tun.MaxSpeed,
		// Far in the past so the reverse fade-in gate starts open.
		LastAfterburnerTime: -3600,
	}
}

// Pitch returns the nose attitude in radians.
func (s *ShipState) Pitch() float64 { return s.Orientation[AxisPitch] }

// Yaw returns the heading attitude in radians.
func (s *ShipState) Yaw() float64 { return s.Orientation[AxisYaw] }

// Roll returns the bank attitude in radians.
func (s *ShipState) Roll() float64 { return s.Orientation[AxisRoll] }

// Forward returns the unit forward axis for the current attitude.
func (s *ShipState) Forward() mgl64.Vec3 {
	return physics.Forward(s.Pitch(), s.Yaw())
}

// SinceAfterburner returns seconds of sim time since the afterburner
// was last released.
func (s *ShipState) SinceAfterburner() float64 {
	return s.Elapsed - s.LastAfterburnerTime
}

// InAfterburnerCooldown reports whether the relight gate is still
// closed.
func (s *ShipState) InAfterburnerCooldown() bool {
	return !s.AfterburnerLit && s.Elapsed < s.AfterburnerCooldownUntil
}
