// pkg/physics/vec3.go
package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// WorldUp is the global up axis shared by the flight model and the camera rig.
var WorldUp = mgl64.Vec3{0, 1, 0}

// Lerp interpolates between a and b by t, clamped to [0, 1].
func Lerp(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	t = mgl64.Clamp(t, 0, 1)
	return a.Add(b.Sub(a).Mul(t))
}

// LerpScalar interpolates between scalars a and b by t, clamped to [0, 1].
func LerpScalar(a, b, t float64) float64 {
	t = mgl64.Clamp(t, 0, 1)
	return a + (b-a)*t
}

// StepToward moves from toward to by at most maxStep units. When the
// remaining distance is within maxStep the target is returned exactly.
func StepToward(from, to mgl64.Vec3, maxStep float64) mgl64.Vec3 {
	delta := to.Sub(from)
	dist := delta.Len()
	if dist <= maxStep {
		return to
	}
	return from.Add(delta.Mul(maxStep / dist))
}

// Forward returns the unit forward axis for the given pitch and yaw.
// Zero pitch and yaw faces down the negative Z axis; positive pitch
// raises the nose and positive yaw rotates counterclockwise seen from
// above. Roll spins the airframe about this axis and does not move it.
func Forward(pitch, yaw float64) mgl64.Vec3 {
	cp := math.Cos(pitch)
	return mgl64.Vec3{-math.Sin(yaw) * cp, math.Sin(pitch), -math.Cos(yaw) * cp}
}

// Right returns the horizontal unit axis off the right wingtip for the
// given yaw. It ignores pitch and roll so lateral camera offsets stay
// level with the horizon.
func Right(yaw float64) mgl64.Vec3 {
	return mgl64.Vec3{math.Cos(yaw), 0, -math.Sin(yaw)}
}
