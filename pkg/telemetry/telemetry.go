// pkg/telemetry/telemetry.go

// Package telemetry converts raw flight state into the display-ready
// snapshot consumed by the HUD, the API layer and scoring logic. The
// deriver is pure: it reads the state, never writes it, and recomputes
// the whole snapshot every frame.
package telemetry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/magooney-loon/jp-8-kerosene-sub000/pkg/flight"
	"github.com/magooney-loon/jp-8-kerosene-sub000/pkg/input"
	"github.com/magooney-loon/jp-8-kerosene-sub000/pkg/physics"
)

// Stylization constants for the HUD readouts. The Mach curve is not
// physical: it squeezes the subsonic band and stretches the supersonic
// band so the afterburner reads dramatic, with a small correction for
// altitude above the reference plane.
const (
	machCrossoverFraction = 0.75 // fraction of max speed that reads Mach 1
	machCompressExponent  = 1.35
	machExpandFactor      = 1.8
	machAltitudeFactor    = 0.00002 // per unit above the reference altitude

	referenceAltitude = 1200
	pitchAltitudeLead = 0.5 // anticipatory climb shown before it happens
)

// Snapshot is the per-frame telemetry value. Angles that drive compass
// style readouts are in degrees; YawAngle stays in radians for
// consumers that feed it back into world math.
type Snapshot struct {
	Speed             float64 `json:"speed"`
	MachNumber        float64 `json:"machNumber"`
	AfterburnerEffect float64 `json:"afterburnerEffect"`
	Altitude          float64 `json:"altitude"`
	Heading           float64 `json:"heading"`
	Roll              float64 `json:"roll"`
	Pitch             float64 `json:"pitch"`
	GForce            float64 `json:"gForce"`
	FuelPercent       float64 `json:"fuelPercent"`
	YawAngle          float64 `json:"yawAngle"`
	AngleOfAttack     float64 `json:"aoa"`

	IsReverse                 bool    `json:"isReverse"`
	IsAutoStabilizing         bool    `json:"isAutoStabilizing"`
	AutoStabilizationProgress float64 `json:"autoStabilizationProgress"`
	RecoveryThrustActive      bool    `json:"recoveryThrustActive"`
	IsAfterburnerCooldown     bool    `json:"isAfterburnerCooldown"`
}

// Deriver computes snapshots against a fixed tuning envelope.
type Deriver struct {
	tun flight.Tuning
}

// NewDeriver creates a deriver for the given envelope.
func NewDeriver(tun flight.Tuning) *Deriver {
	return &Deriver{tun: tun}
}

// Compute derives the snapshot for the current frame. dt is accepted to
// match the per-frame call contract of the simulator and camera; the
// snapshot carries no smoothing of its own.
func (d *Deriver) Compute(st *flight.ShipState, dt float64, yaw float64, in input.Controls) Snapshot {
	altitude := d.altitude(st)
	a := st.Assist

	return Snapshot{
		Speed:             st.Speed,
		MachNumber:        d.mach(st.Speed, altitude),
		AfterburnerEffect: st.AfterburnerEffect,
		Altitude:          altitude,
		Heading:           headingDegrees(yaw),
		Roll:              mgl64.RadToDeg(st.Roll()),
		Pitch:             mgl64.RadToDeg(st.Pitch()),
		GForce:            st.CurrentGForce,
		FuelPercent:       st.FuelPercentage,
		YawAngle:          yaw,
		AngleOfAttack:     st.AngleOfAttack,

		IsReverse:                 in.Reverse && !in.Thrust,
		IsAutoStabilizing:         a.Stabilizing,
		AutoStabilizationProgress: a.Progress,
		RecoveryThrustActive:      a.RecoveryThrust,
		IsAfterburnerCooldown:     st.InAfterburnerCooldown(),
	}
}

// headingDegrees maps a right-handed yaw (positive counterclockwise
// from above) onto a compass heading in [0, 360), which runs clockwise.
func headingDegrees(yaw float64) float64 {
	return physics.NormalizeDegrees(-mgl64.RadToDeg(yaw))
}

// mach applies the stylized Mach curve: subsonic readings are
// compressed toward zero, supersonic readings stretched, and height
// above the reference plane nudges the number up the way thinner air
// would.
func (d *Deriver) mach(speed, altitude float64) float64 {
	crossover := d.tun.MaxSpeed * machCrossoverFraction
	ratio := speed / crossover

	var m float64
	if ratio < 1 {
		m = math.Pow(ratio, machCompressExponent)
	} else {
		m = 1 + (ratio-1)*machExpandFactor
	}
	return m * (1 + (altitude-referenceAltitude)*machAltitudeFactor)
}

// altitude synthesizes the HUD altitude: the reference plane plus
// accumulated vertical travel plus a small anticipatory term from the
// current climb attitude. Purely cosmetic, floored at ground level.
func (d *Deriver) altitude(st *flight.ShipState) float64 {
	alt := referenceAltitude + st.WorldOffset.Y() + math.Sin(st.Pitch())*st.Speed*pitchAltitudeLead
	return math.Max(0, alt)
}
