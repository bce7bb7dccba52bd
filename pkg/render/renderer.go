// pkg/render/renderer.go
package render

import (
	"context"

	"github.com/magooney-loon/jp-8-kerosene-sub000/pkg/camera"
	"github.com/magooney-loon/jp-8-kerosene-sub000/pkg/logging"
	"github.com/magooney-loon/jp-8-kerosene-sub000/pkg/telemetry"
)

// HUDRenderer consumes the per-frame session outputs. Clear resets the
// drawing surface, RenderFrame draws one frame from the camera pose and
// telemetry snapshot, Present flushes the frame to the display.
type HUDRenderer interface {
	Clear()
	RenderFrame(pose camera.Pose, snap telemetry.Snapshot)
	Present()
}

// NullRenderer is a HUDRenderer that only logs, for headless runs where
// the API stream is the real display.
type NullRenderer struct {
	logger *logging.Logger
}

// NewNullRenderer creates a new NullRenderer with structured logging.
func NewNullRenderer() *NullRenderer {
	return &NullRenderer{
		logger: logging.NewLogger(),
	}
}

// Clear implements HUDRenderer.
func (d *NullRenderer) Clear() {
	d.logger.Debug(context.Background(), "hud clear")
}

// RenderFrame implements HUDRenderer.
func (d *NullRenderer) RenderFrame(pose camera.Pose, snap telemetry.Snapshot) {
	d.logger.Debug(context.Background(), "frame rendered",
		"speed", snap.Speed,
		"mach", snap.MachNumber,
		"altitude", snap.Altitude,
		"fov", pose.FOV,
	)
}

// Present implements HUDRenderer.
func (d *NullRenderer) Present() {
	d.logger.Debug(context.Background(), "hud present")
}

// NullRendererInstance is a global instance of NullRenderer for convenience.
var NullRendererInstance HUDRenderer = NewNullRenderer()
