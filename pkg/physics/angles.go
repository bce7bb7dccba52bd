// pkg/physics/angles.go
package physics

import "math"

const twoPi = 2 * math.Pi

// WrapAngle folds an accumulated rotation back into (-pi, pi]. The fold
// only engages once the magnitude passes a full turn, so values that
// drift a little past pi keep their sign until they genuinely wrap.
// Non-finite input collapses to 0.
func WrapAngle(a float64) float64 {
	if math.IsNaN(a) || math.IsInf(a, 0) {
		return 0
	}
	if math.Abs(a) <= twoPi {
		return a
	}
	a = math.Mod(a, twoPi)
	if a > math.Pi {
		a -= twoPi
	} else if a <= -math.Pi {
		a += twoPi
	}
	return a
}

// NormalizeDegrees maps an angle in degrees onto [0, 360).
func NormalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}
