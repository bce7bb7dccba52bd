// pkg/camera/pose.go

// Package camera derives the chase camera pose from flight state. The
// rig mutates an externally owned pose in place every frame, smoothing
// and clamping so the view never teleports or inherits bad numerics,
// whatever the airframe just did.
package camera

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/magooney-loon/jp-8-kerosene-sub000/pkg/physics"
)

// Pose is the renderer-facing camera value: where the camera sits, what
// it looks at, which way is up, and the field of view in degrees. The
// renderer owns it; the rig only mutates it.
type Pose struct {
	Position   mgl64.Vec3 `json:"position"`
	LookTarget mgl64.Vec3 `json:"lookTarget"`
	Up         mgl64.Vec3 `json:"up"`
	FOV        float64    `json:"fov"`
}

// NewPose returns a pose parked behind the world origin with the
// baseline field of view.
func NewPose(tun Tuning) *Pose {
	return &Pose{
		Position:   mgl64.Vec3{0, tun.Height, tun.Distance},
		LookTarget: mgl64.Vec3{},
		Up:         physics.WorldUp,
		FOV:        tun.BaseFOV,
	}
}

// sanitize resets any non-finite pose field to a safe default anchored
// at the ship. Returns how many fields needed healing.
func (p *Pose) sanitize(anchor mgl64.Vec3, tun Tuning) int {
	healed := 0
	if !physics.FiniteVec(p.Position) {
		p.Position = anchor.Add(mgl64.Vec3{0, tun.Height, tun.Distance})
		healed++
	}
	if !physics.FiniteVec(p.LookTarget) {
		p.LookTarget = anchor
		healed++
	}
	if !physics.FiniteVec(p.Up) || p.Up.Len() < 1e-9 {
		p.Up = physics.WorldUp
		healed++
	}
	if !physics.Finite(p.FOV) {
		p.FOV = tun.BaseFOV
		healed++
	}
	return healed
}
