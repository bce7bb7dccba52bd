// pkg/flight/assist.go
package flight

import (
	"math"

	"github.com/magooney-loon/jp-8-kerosene-sub000/pkg/physics"
)

// AssistState is the stall detection and auto-recovery machine. The
// Simulator owns every field; the camera, telemetry and HUD only read
// the flags.
//
// The machine runs: normal -> stalled (speed in the stall band) ->
// stabilizing (after a randomized delay) -> recovery thrust (once
// progress passes the threshold) -> normal (progress bleeds back to
// zero after the airframe unstalls).
type AssistState struct {
	Stalled        bool
	Stabilizing    bool
	RecoveryThrust bool

	// StallStart is the sim time the current stall began.
	StallStart float64
	// TriggerDelay is the randomized wait between stalling and the
	// assist engaging, chosen when the stall begins.
	TriggerDelay float64
	// Progress runs 0 to 1 while the assist works and back to 0 as it
	// disengages.
	Progress float64
}

// updateAssist advances the stall machine one frame. Detection needs
// nothing but speed and elapsed time, so the machine lives entirely
// inside the simulator.
func (s *Simulator) updateAssist(st *ShipState) {
	a := &st.Assist
	stallSpeed := s.tun.MinSpeed * s.tun.StallSpeedFactor

	if st.Speed <= stallSpeed {
		if !a.Stalled {
			a.Stalled = true
			a.StallStart = st.Elapsed
			a.TriggerDelay = s.tun.StallDelayMin +
				s.rng.Float64()*(s.tun.StallDelayMax-s.tun.StallDelayMin)
		}
	} else {
		a.Stalled = false
	}

	if a.Stalled && !a.Stabilizing && st.Elapsed-a.StallStart >= a.TriggerDelay {
		a.Stabilizing = true
		a.Progress = 0
	}

	if !a.Stabilizing {
		return
	}
	if a.Stalled {
		a.Progress = math.Min(1, a.Progress+s.tun.AssistProgressRate)
		if a.Progress > s.tun.RecoveryThreshold {
			a.RecoveryThrust = true
		}
	} else {
		a.Progress -= s.tun.AssistProgressDecay
		if a.Progress <= 0 {
			a.Progress = 0
			a.Stabilizing = false
			a.RecoveryThrust = false
		}
	}
}

// applyAssistCorrection steers the airframe back to level while the
// assist is engaged. With a lot of rotational energy in the airframe it
// only damps; otherwise it blends a direct attitude correction with one
// that rides the existing momentum arc, leaning harder on the arc as
// progress grows.
func (s *Simulator) applyAssistCorrection(st *ShipState, dt float64) {
	a := st.Assist
	if !a.Stabilizing {
		return
	}

	av := &st.AngularVelocity
	energy := math.Abs(av[AxisPitch]) + math.Abs(av[AxisYaw]) + math.Abs(av[AxisRoll])
	if energy > s.tun.AssistEnergyGate {
		// Kill the spin before correcting attitude.
		*av = av.Mul(s.tun.AssistSpinDamping)
		return
	}

	strength := s.tun.AssistCorrection * (0.4 + 0.6*a.Progress)
	for _, axis := range [...]int{AxisPitch, AxisRoll} {
		direct := -st.Orientation[axis] * strength
		arc := direct - av[axis]*s.tun.AssistMomentumBias
		av[axis] += physics.LerpScalar(direct, arc, a.Progress) * dt
	}
}
