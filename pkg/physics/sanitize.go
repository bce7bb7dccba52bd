// pkg/physics/sanitize.go
package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Finite reports whether f is neither NaN nor infinite.
func Finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// FiniteVec reports whether every component of v is finite.
func FiniteVec(v mgl64.Vec3) bool {
	return Finite(v[0]) && Finite(v[1]) && Finite(v[2])
}

// Sanitize returns f when it is finite and fallback otherwise.
func Sanitize(f, fallback float64) float64 {
	if Finite(f) {
		return f
	}
	return fallback
}

// SanitizeVec returns v when every component is finite and fallback
// otherwise. The whole vector is replaced so a single corrupt component
// cannot leave a direction pointing somewhere it never was.
func SanitizeVec(v, fallback mgl64.Vec3) mgl64.Vec3 {
	if FiniteVec(v) {
		return v
	}
	return fallback
}
