// pkg/render/engo/jet.go
package engo

import (
	"math"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/magooney-loon/jp-8-kerosene-sub000/pkg/engine"
	"github.com/magooney-loon/jp-8-kerosene-sub000/pkg/telemetry"
)

const (
	// flameVisibleThreshold is the afterburner effect level below which
	// the exhaust flame is hidden entirely.
	flameVisibleThreshold = 0.05

	// flameGap is the distance in pixels from the jet center to the
	// flame center, along the jet's tail.
	flameGap = 34.0
)

// jetRotation converts the telemetry roll angle in degrees to a sprite
// rotation. Screen rotation is clockwise positive, so a left bank dips
// the sprite's left wing.
func jetRotation(roll float64) float32 {
	return float32(-roll)
}

// flameVisible reports whether the exhaust flame should be drawn.
func flameVisible(snap telemetry.Snapshot) bool {
	return snap.AfterburnerEffect > flameVisibleThreshold
}

// flameScale grows the flame with afterburner intensity.
func flameScale(snap telemetry.Snapshot) float32 {
	return float32(0.5 + snap.AfterburnerEffect)
}

// rotatePoint rotates p by deg degrees around the origin, matching
// engo's clockwise screen rotation.
func rotatePoint(p engo.Point, deg float32) engo.Point {
	rad := float64(deg) * math.Pi / 180
	cos := float32(math.Cos(rad))
	sin := float32(math.Sin(rad))
	return engo.Point{
		X: p.X*cos - p.Y*sin,
		Y: p.X*sin + p.Y*cos,
	}
}

// cornerForCenter returns the top-left position that keeps a width by
// height sprite centered at c. Engo rotates around the top-left corner,
// so the corner has to move as the sprite turns.
func cornerForCenter(c engo.Point, width, height, deg float32) engo.Point {
	offset := rotatePoint(engo.Point{X: width / 2, Y: height / 2}, deg)
	return engo.Point{X: c.X - offset.X, Y: c.Y - offset.Y}
}

// JetSystem drives the jet silhouette drawn near screen center: bank
// rotation from the latest snapshot and the afterburner flame trailing
// it.
type JetSystem struct {
	session *engine.Session

	jetCenter engo.Point

	jetSpace    *common.SpaceComponent
	flameSpace  *common.SpaceComponent
	flameRender *common.RenderComponent
}

// NewJetSystem creates a jet sprite system bound to the given entity
// components. Any component may be nil when sprite creation failed; the
// system then skips the missing parts.
func NewJetSystem(session *engine.Session, jetCenter engo.Point, jetSpace, flameSpace *common.SpaceComponent, flameRender *common.RenderComponent) *JetSystem {
	return &JetSystem{
		session:     session,
		jetCenter:   jetCenter,
		jetSpace:    jetSpace,
		flameSpace:  flameSpace,
		flameRender: flameRender,
	}
}

// Add satisfies the ecs.System interface
func (js *JetSystem) Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent) {
	// Not used for jet system
}

// Remove satisfies the ecs.System interface
func (js *JetSystem) Remove(basic ecs.BasicEntity) {
	// Not used for jet system
}

// Update applies the latest snapshot to the jet and flame sprites
func (js *JetSystem) Update(dt float32) {
	snap := js.session.Snapshot()
	rot := jetRotation(snap.Roll)

	if js.jetSpace != nil {
		js.jetSpace.Rotation = rot
		js.jetSpace.Position = cornerForCenter(js.jetCenter, js.jetSpace.Width, js.jetSpace.Height, rot)
	}

	if js.flameRender != nil {
		js.flameRender.Hidden = !flameVisible(snap)
		scale := flameScale(snap)
		js.flameRender.Scale = engo.Point{X: scale, Y: scale}
	}

	if js.flameSpace != nil {
		offset := rotatePoint(engo.Point{X: 0, Y: flameGap}, rot)
		center := engo.Point{X: js.jetCenter.X + offset.X, Y: js.jetCenter.Y + offset.Y}
		js.flameSpace.Rotation = rot
		js.flameSpace.Position = cornerForCenter(center, js.flameSpace.Width, js.flameSpace.Height, rot)
	}
}
