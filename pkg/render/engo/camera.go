// pkg/render/engo/camera.go
package engo

import (
	"math"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/magooney-loon/jp-8-kerosene-sub000/pkg/camera"
	"github.com/magooney-loon/jp-8-kerosene-sub000/pkg/engine"
)

// pixelsPerUnit converts flight-space distances to screen pixels.
const pixelsPerUnit = 24.0

// parallaxLayer tracks one band of background stars and how strongly it
// follows the accumulated world offset.
type parallaxLayer struct {
	factor float64
	tiles  []*common.SpaceComponent
	base   []engo.Point
}

// CameraSystem translates the 3-D chase pose into engo's 2-D camera:
// field of view becomes zoom, the rig's lateral drift and shake become a
// screen offset, and the world offset scrolls the star layers for
// parallax.
type CameraSystem struct {
	session *engine.Session

	baseFOV    float64
	baseHeight float64

	zoom    float32
	minZoom float32
	maxZoom float32

	layers []parallaxLayer
}

// NewCameraSystem creates a camera system around the rig tuning the
// session was built with.
func NewCameraSystem(session *engine.Session, tun camera.Tuning) *CameraSystem {
	return &CameraSystem{
		session:    session,
		baseFOV:    tun.BaseFOV,
		baseHeight: tun.Height,
		zoom:       1.0,
		minZoom:    0.1,
		maxZoom:    3.0,
	}
}

// Add satisfies the ecs.System interface
func (cs *CameraSystem) Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent) {
	// Not used for camera system
}

// Remove satisfies the ecs.System interface
func (cs *CameraSystem) Remove(basic ecs.BasicEntity) {
	// Not used for camera system
}

// Update applies the latest pose to the engo camera and scrolls the
// star layers.
func (cs *CameraSystem) Update(dt float32) {
	pose := cs.session.Pose()

	cs.zoom = cs.clampZoom(zoomFor(cs.baseFOV, pose.FOV))
	engo.Mailbox.Dispatch(common.CameraMessage{
		Axis:        common.ZAxis,
		Value:       cs.zoom,
		Incremental: false,
	})

	offset := screenOffset(pose, cs.baseHeight)
	engo.Mailbox.Dispatch(common.CameraMessage{
		Axis:        common.XAxis,
		Value:       engo.GameWidth()/2 + offset.X,
		Incremental: false,
	})
	engo.Mailbox.Dispatch(common.CameraMessage{
		Axis:        common.YAxis,
		Value:       engo.GameHeight()/2 + offset.Y,
		Incremental: false,
	})

	cs.scrollLayers(cs.session.WorldOffset(), engo.GameWidth(), engo.GameHeight())
}

// zoomFor maps field of view to camera zoom: a wide boost FOV zooms
// out, the narrow reverse FOV zooms in.
func zoomFor(baseFOV, fov float64) float32 {
	if fov <= 0 {
		return 1.0
	}
	return float32(baseFOV / fov)
}

// clampZoom ensures zoom is within valid bounds
func (cs *CameraSystem) clampZoom(zoom float32) float32 {
	if zoom < cs.minZoom {
		return cs.minZoom
	}
	if zoom > cs.maxZoom {
		return cs.maxZoom
	}
	return zoom
}

// GetZoom returns the current zoom level
func (cs *CameraSystem) GetZoom() float32 {
	return cs.zoom
}

// SetZoomLimits sets the minimum and maximum zoom levels
func (cs *CameraSystem) SetZoomLimits(min, max float32) {
	cs.minZoom = min
	cs.maxZoom = max
	cs.zoom = cs.clampZoom(cs.zoom)
}

// screenOffset converts the rig's deviation from its parked position
// into a screen-space camera nudge. Shake and lateral drift are already
// baked into the pose position by the rig.
func screenOffset(pose camera.Pose, baseHeight float64) engo.Point {
	rel := pose.Position.Sub(pose.LookTarget)
	return engo.Point{
		X: float32(rel.X() * pixelsPerUnit),
		Y: float32(-(rel.Y() - baseHeight) * pixelsPerUnit),
	}
}

// AddStarLayer registers background tiles that scroll with the world
// offset. Smaller factors read as farther away.
func (cs *CameraSystem) AddStarLayer(factor float64, tiles []*common.SpaceComponent) {
	base := make([]engo.Point, len(tiles))
	for i, tile := range tiles {
		base[i] = tile.Position
	}
	cs.layers = append(cs.layers, parallaxLayer{
		factor: factor,
		tiles:  tiles,
		base:   base,
	})
}

// scrollLayers repositions every star tile for the current world offset
func (cs *CameraSystem) scrollLayers(offset mgl64.Vec3, width, height float32) {
	for _, layer := range cs.layers {
		for i, tile := range layer.tiles {
			tile.Position = parallaxShift(layer.base[i], offset, layer.factor, width, height)
		}
	}
}

// parallaxShift moves a tile against the accumulated world offset and
// wraps it back onto the screen. Lateral displacement maps to screen X,
// forward displacement to screen Y.
func parallaxShift(base engo.Point, offset mgl64.Vec3, factor float64, width, height float32) engo.Point {
	return engo.Point{
		X: wrapCoord(base.X-float32(offset.X()*factor*pixelsPerUnit), width),
		Y: wrapCoord(base.Y-float32(offset.Z()*factor*pixelsPerUnit), height),
	}
}

// wrapCoord wraps a coordinate into [0, limit)
func wrapCoord(v, limit float32) float32 {
	if limit <= 0 {
		return v
	}
	wrapped := float32(math.Mod(float64(v), float64(limit)))
	if wrapped < 0 {
		wrapped += limit
	}
	return wrapped
}
