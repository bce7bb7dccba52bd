// pkg/render/terminal.go
package render

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/magooney-loon/jp-8-kerosene-sub000/pkg/camera"
	"github.com/magooney-loon/jp-8-kerosene-sub000/pkg/telemetry"
)

// TerminalHUD renders a fixed-width text instrument panel with an
// artificial horizon. The vertical axis spans 180 degrees of pitch, so
// the horizon line leaves the panel when the nose points straight up
// or down.
type TerminalHUD struct {
	width   int
	height  int
	buffer  [][]rune
	out     io.Writer
	snap    telemetry.Snapshot
	fov     float64
	hasSnap bool
}

// NewTerminalHUD creates a terminal HUD with the given panel size in
// character cells. Output goes to stdout until SetOutput replaces it.
func NewTerminalHUD(width, height int) *TerminalHUD {
	buffer := make([][]rune, height)
	for i := range buffer {
		buffer[i] = make([]rune, width)
	}

	h := &TerminalHUD{
		width:  width,
		height: height,
		buffer: buffer,
		out:    os.Stdout,
	}
	h.Clear()
	return h
}

// SetOutput redirects Present to w.
func (h *TerminalHUD) SetOutput(w io.Writer) {
	h.out = w
}

// Clear implements HUDRenderer.
func (h *TerminalHUD) Clear() {
	for y := range h.buffer {
		for x := range h.buffer[y] {
			h.buffer[y][x] = ' '
		}
	}
}

// RenderFrame implements HUDRenderer. It plots the horizon line from
// the pitch and roll angles and keeps the snapshot for the instrument
// rows printed by Present.
func (h *TerminalHUD) RenderFrame(pose camera.Pose, snap telemetry.Snapshot) {
	h.snap = snap
	h.fov = pose.FOV
	h.hasSnap = true

	centerRow := h.height / 2
	centerCol := h.width / 2

	// Nose up moves the horizon down the panel.
	rowsPerDegree := float64(h.height) / 180.0
	pitchOffset := snap.Pitch * rowsPerDegree

	// Banking left raises the left half of the horizon.
	slope := math.Tan(snap.Roll * math.Pi / 180.0)

	for x := 0; x < h.width; x++ {
		rel := float64(x - centerCol)
		row := centerRow + int(math.Round(pitchOffset+rel*slope))
		if row >= 0 && row < h.height {
			h.buffer[row][x] = '='
		}
	}

	h.drawMarker(centerRow, centerCol)
}

// drawMarker overlays the fixed aircraft symbol at the panel center.
func (h *TerminalHUD) drawMarker(row, col int) {
	if row < 0 || row >= h.height {
		return
	}
	for _, off := range []int{-2, -1, 1, 2} {
		x := col + off
		if x >= 0 && x < h.width {
			h.buffer[row][x] = '-'
		}
	}
	if col >= 0 && col < h.width {
		h.buffer[row][col] = '+'
	}
}

// Present implements HUDRenderer. It clears the terminal and prints the
// bordered horizon panel followed by the instrument rows.
func (h *TerminalHUD) Present() {
	fmt.Fprint(h.out, "\033[H\033[2J")

	border := "+" + strings.Repeat("-", h.width) + "+"
	fmt.Fprintln(h.out, border)
	for y := 0; y < h.height; y++ {
		fmt.Fprintln(h.out, "|"+string(h.buffer[y])+"|")
	}
	fmt.Fprintln(h.out, border)

	if !h.hasSnap {
		return
	}

	fmt.Fprintf(h.out, "SPD %6.1f  MACH %4.2f  ALT %6.0f  HDG %05.1f  G %4.1f\n",
		h.snap.Speed, h.snap.MachNumber, h.snap.Altitude, h.snap.Heading, h.snap.GForce)
	fmt.Fprintf(h.out, "FUEL %5.1f%%  AOA %5.1f  FOV %5.1f  %s\n",
		h.snap.FuelPercent, h.snap.AngleOfAttack, h.fov, statusFlags(h.snap))
}

// statusFlags summarizes the snapshot state bits for the HUD footer.
func statusFlags(snap telemetry.Snapshot) string {
	flags := make([]string, 0, 5)
	if snap.AfterburnerEffect > 0.5 {
		flags = append(flags, "AB")
	}
	if snap.IsAfterburnerCooldown {
		flags = append(flags, "CD")
	}
	if snap.IsReverse {
		flags = append(flags, "REV")
	}
	if snap.IsAutoStabilizing {
		flags = append(flags, fmt.Sprintf("ASSIST %d%%", int(snap.AutoStabilizationProgress*100)))
	}
	if snap.RecoveryThrustActive {
		flags = append(flags, "RCVR")
	}
	if len(flags) == 0 {
		return "OK"
	}
	return strings.Join(flags, " ")
}
