// pkg/render/engo/hud.go
package engo

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/magooney-loon/jp-8-kerosene-sub000/pkg/engine"
	"github.com/magooney-loon/jp-8-kerosene-sub000/pkg/telemetry"
)

// StatusSeverity grades a status feed entry for coloring
type StatusSeverity int

const (
	StatusInfo StatusSeverity = iota
	StatusWarn
	StatusAlert
)

// StatusMessage is one entry in the HUD's scrolling event feed
type StatusMessage struct {
	Label     string
	Detail    string
	Timestamp time.Time
	Severity  StatusSeverity
}

// HUDSystem renders the instrument panel, the state flags and the
// scrolling status feed as HUD-locked text entities.
type HUDSystem struct {
	session *engine.Session
	world   *ecs.World

	// Entities recreated every frame
	hudEntities []*ecs.BasicEntity

	// Status feed
	statusMessages []StatusMessage
	maxStatusLines int

	// Attitude readout box
	attitudeEnabled bool
	attitudeSize    float32

	// Font for text rendering
	font *common.Font

	// Colors
	hudColor   color.Color
	warnColor  color.Color
	alertColor color.Color
	dimColor   color.Color
}

// NewHUDSystem creates a new HUD system reading from the session
func NewHUDSystem(session *engine.Session, world *ecs.World) *HUDSystem {
	return &HUDSystem{
		session:         session,
		world:           world,
		maxStatusLines:  6,
		attitudeEnabled: true,
		attitudeSize:    120.0,
		hudColor:        color.RGBA{64, 255, 128, 255},
		warnColor:       color.RGBA{255, 200, 0, 255},
		alertColor:      color.RGBA{255, 64, 64, 255},
		dimColor:        color.RGBA{140, 140, 140, 255},
	}
}

// Add satisfies the ecs.System interface
func (hud *HUDSystem) Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent) {
	// Not used for HUD system
}

// Remove satisfies the ecs.System interface
func (hud *HUDSystem) Remove(basic ecs.BasicEntity) {
	// Not used for HUD system
}

// Update redraws the HUD from the latest snapshot
func (hud *HUDSystem) Update(dt float32) {
	// Clear previous HUD entities
	hud.clearHUDEntities()

	snap := hud.session.Snapshot()

	hud.renderInstruments(snap)
	hud.renderStateFlags(snap)
	hud.renderStatusFeed()

	if hud.attitudeEnabled {
		hud.renderAttitudeBox(snap)
	}
}

// clearHUDEntities removes the previous frame's HUD entities
func (hud *HUDSystem) clearHUDEntities() {
	for _, e := range hud.hudEntities {
		hud.world.RemoveEntity(*e)
	}
	hud.hudEntities = hud.hudEntities[:0]
}

// formatInstruments builds the instrument panel text block
func formatInstruments(snap telemetry.Snapshot) string {
	return fmt.Sprintf(
		"SPD %6.1f  MACH %4.2f\nALT %6.0f  HDG %05.1f\nG   %6.1f  AOA %5.1f\nFUEL %5.1f%%",
		snap.Speed,
		snap.MachNumber,
		snap.Altitude,
		snap.Heading,
		snap.GForce,
		snap.AngleOfAttack,
		snap.FuelPercent,
	)
}

// renderInstruments renders the instrument panel at the top-left corner
func (hud *HUDSystem) renderInstruments(snap telemetry.Snapshot) {
	hud.renderText(formatInstruments(snap), 10, 10, hud.hudColor)
}

// stateFlags summarizes the snapshot state bits for the flag line
func stateFlags(snap telemetry.Snapshot) string {
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

// flagSeverity picks the flag line color: stabilization and recovery
// are alerts, cooldown and reverse are warnings.
func flagSeverity(snap telemetry.Snapshot) StatusSeverity {
	if snap.IsAutoStabilizing || snap.RecoveryThrustActive {
		return StatusAlert
	}
	if snap.IsAfterburnerCooldown || snap.IsReverse {
		return StatusWarn
	}
	return StatusInfo
}

// renderStateFlags renders the flag line at the top-right corner
func (hud *HUDSystem) renderStateFlags(snap telemetry.Snapshot) {
	hud.renderText(
		stateFlags(snap),
		engo.GameWidth()-180,
		10,
		hud.severityColor(flagSeverity(snap)),
	)
}

// renderStatusFeed renders the most recent status messages above the
// bottom edge
func (hud *HUDSystem) renderStatusFeed() {
	feedStartY := engo.GameHeight() - 160

	// Feed background
	hud.renderRect(10, feedStartY, 380, 140, color.RGBA{0, 0, 0, 128})

	y := feedStartY + 10
	start := len(hud.statusMessages) - hud.maxStatusLines
	if start < 0 {
		start = 0
	}
	for _, msg := range hud.statusMessages[start:] {
		line := fmt.Sprintf("[%s] %s", msg.Label, msg.Detail)
		hud.renderText(line, 15, y, hud.severityColor(msg.Severity))
		y += 18
	}
}

// renderAttitudeBox renders the pitch and roll readout in its outlined
// box at the bottom-right corner
func (hud *HUDSystem) renderAttitudeBox(snap telemetry.Snapshot) {
	boxX := engo.GameWidth() - hud.attitudeSize - 10
	boxY := engo.GameHeight() - hud.attitudeSize - 10

	hud.renderRect(boxX, boxY, hud.attitudeSize, hud.attitudeSize, color.RGBA{0, 0, 0, 128})
	hud.renderRectOutline(boxX, boxY, hud.attitudeSize, hud.attitudeSize, hud.hudColor)

	attitudeText := fmt.Sprintf("PITCH %6.1f\nROLL  %6.1f", snap.Pitch, snap.Roll)
	hud.renderText(attitudeText, boxX+12, boxY+hud.attitudeSize/2-16, hud.hudColor)
}

// renderText renders text at the specified position
func (hud *HUDSystem) renderText(text string, x, y float32, textColor color.Color) {
	if hud.font == nil {
		return
	}

	basic := ecs.NewBasic()

	renderComponent := common.RenderComponent{
		Drawable: common.Text{
			Font: hud.font,
			Text: text,
		},
		Color: textColor,
	}
	renderComponent.SetShader(common.HUDShader)
	renderComponent.SetZIndex(100)

	spaceComponent := common.SpaceComponent{
		Position: engo.Point{X: x, Y: y},
		Width:    float32(len(text) * 8),
		Height:   16,
	}

	hud.addToRenderSystem(&basic, &renderComponent, &spaceComponent)
}

// renderRect renders a filled rectangle
func (hud *HUDSystem) renderRect(x, y, width, height float32, rectColor color.Color) {
	basic := ecs.NewBasic()

	renderComponent := common.RenderComponent{
		Drawable: common.Rectangle{
			BorderWidth: 0,
			BorderColor: color.Transparent,
		},
		Color: rectColor,
	}
	renderComponent.SetShader(common.HUDShader)
	renderComponent.SetZIndex(90)

	spaceComponent := common.SpaceComponent{
		Position: engo.Point{X: x, Y: y},
		Width:    width,
		Height:   height,
	}

	hud.addToRenderSystem(&basic, &renderComponent, &spaceComponent)
}

// renderRectOutline renders a rectangle outline
func (hud *HUDSystem) renderRectOutline(x, y, width, height float32, outlineColor color.Color) {
	basic := ecs.NewBasic()

	renderComponent := common.RenderComponent{
		Drawable: common.Rectangle{
			BorderWidth: 2,
			BorderColor: outlineColor,
		},
		Color: color.Transparent,
	}
	renderComponent.SetShader(common.HUDShader)
	renderComponent.SetZIndex(95)

	spaceComponent := common.SpaceComponent{
		Position: engo.Point{X: x, Y: y},
		Width:    width,
		Height:   height,
	}

	hud.addToRenderSystem(&basic, &renderComponent, &spaceComponent)
}

// addToRenderSystem registers the entity with the world's render system
// and tracks it for removal next frame
func (hud *HUDSystem) addToRenderSystem(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent) {
	for _, system := range hud.world.Systems() {
		if sys, ok := system.(*common.RenderSystem); ok {
			sys.Add(basic, render, space)
		}
	}
	hud.hudEntities = append(hud.hudEntities, basic)
}

// AddStatusMessage appends an entry to the status feed
func (hud *HUDSystem) AddStatusMessage(label, detail string, severity StatusSeverity) {
	hud.statusMessages = append(hud.statusMessages, StatusMessage{
		Label:     label,
		Detail:    detail,
		Timestamp: time.Now(),
		Severity:  severity,
	})

	// Keep only the most recent messages
	if len(hud.statusMessages) > hud.maxStatusLines*2 {
		hud.statusMessages = hud.statusMessages[len(hud.statusMessages)-hud.maxStatusLines:]
	}
}

// severityColor maps a severity grade to the HUD palette
func (hud *HUDSystem) severityColor(severity StatusSeverity) color.Color {
	switch severity {
	case StatusAlert:
		return hud.alertColor
	case StatusWarn:
		return hud.warnColor
	default:
		return hud.hudColor
	}
}

// SetAttitudeEnabled enables or disables the attitude readout box
func (hud *HUDSystem) SetAttitudeEnabled(enabled bool) {
	hud.attitudeEnabled = enabled
}

// IsAttitudeEnabled returns whether the attitude readout is enabled
func (hud *HUDSystem) IsAttitudeEnabled() bool {
	return hud.attitudeEnabled
}

// SetFont sets the font used for HUD text rendering
func (hud *HUDSystem) SetFont(font *common.Font) {
	hud.font = font
}

// GetStatusMessages returns the current status feed entries
func (hud *HUDSystem) GetStatusMessages() []StatusMessage {
	return hud.statusMessages
}

// ClearStatusMessages clears the status feed
func (hud *HUDSystem) ClearStatusMessages() {
	hud.statusMessages = hud.statusMessages[:0]
}
