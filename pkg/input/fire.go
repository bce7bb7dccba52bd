// pkg/input/fire.go
package input

import "math"

const (
	// prolongedFireDelay is how long the trigger must be held before the
	// prolonged-fire factor starts rising.
	prolongedFireDelay = 1.8
	// prolongedFireRamp is how long the factor takes to ramp from 0 to 1
	// once it has started rising.
	prolongedFireRamp = 4.0
	// prolongedFireDecay is the per-second decay applied once the
	// trigger is released.
	prolongedFireDecay = 0.5
)

// FireTracker measures sustained trigger holds and exposes them as a
// prolonged-fire factor in [0, 1]. Short bursts stay at 0; holding fire
// past the delay ramps the factor up, and releasing lets it bleed off
// instead of cutting to zero.
type FireTracker struct {
	holdTime float64
	factor   float64
}

// NewFireTracker creates a tracker with the trigger released.
func NewFireTracker() *FireTracker {
	return &FireTracker{}
}

// Update advances the tracker by dt seconds and returns the current
// prolonged-fire factor.
func (ft *FireTracker) Update(firing bool, dt float64) float64 {
	if dt < 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		dt = 0
	}
	if firing {
		ft.holdTime += dt
		if ft.holdTime > prolongedFireDelay {
			ramped := (ft.holdTime - prolongedFireDelay) / prolongedFireRamp
			if ramped > ft.factor {
				ft.factor = math.Min(1, ramped)
			}
		}
	} else {
		ft.holdTime = 0
		ft.factor = math.Max(0, ft.factor-prolongedFireDecay*dt)
	}
	return ft.factor
}

// Factor returns the current prolonged-fire factor without advancing
// time.
func (ft *FireTracker) Factor() float64 {
	return ft.factor
}
