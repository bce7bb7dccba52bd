// pkg/render/engo/scene.go

// Package engo glues a flight session to the Engo game engine: keyboard
// input latches into the session, the session steps once per frame, the
// chase pose drives the 2-D camera and the telemetry snapshot draws as
// a HUD. The scene owns the session clock; callers must not start the
// session's own Run loop alongside it.
package engo

import (
	"bytes"
	"context"
	"fmt"
	"image/color"
	"strings"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"
	"golang.org/x/image/font/gofont/gosmallcaps"

	"github.com/magooney-loon/jp-8-kerosene-sub000/pkg/camera"
	"github.com/magooney-loon/jp-8-kerosene-sub000/pkg/config"
	"github.com/magooney-loon/jp-8-kerosene-sub000/pkg/engine"
	"github.com/magooney-loon/jp-8-kerosene-sub000/pkg/event"
	"github.com/magooney-loon/jp-8-kerosene-sub000/pkg/logging"
)

const (
	// flightFontURL is the engo asset key the HUD font is stored under
	flightFontURL = "flight.ttf"

	// jetSize is the rendered jet sprite size in pixels
	jetSize = 48.0

	// starsPerLayer is how many stars each parallax band carries
	starsPerLayer = 40
)

// hudEventTypes lists the flight transitions surfaced in the HUD's
// status feed.
var hudEventTypes = []event.Type{
	event.StallEntered,
	event.AutoStabilizeEngaged,
	event.RecoveryThrustEngaged,
	event.AutoStabilizeEnded,
	event.AfterburnerEngaged,
	event.AfterburnerEnded,
	event.FuelLow,
	event.FuelExhausted,
}

// FlightScene is the windowed view of one flight session
type FlightScene struct {
	session *engine.Session
	bus     *event.Bus
	log     *logging.Logger

	scheme    config.ControlScheme
	camTuning camera.Tuning

	world  *ecs.World
	assets *AssetManager

	font    *common.Font
	fontErr error

	camera *CameraSystem
	hud    *HUDSystem

	jetCenter engo.Point
	subs      []*event.Subscription
}

// NewFlightScene creates a scene around an existing session
func NewFlightScene(session *engine.Session, cfg *config.Config, log *logging.Logger) *FlightScene {
	if log == nil {
		log = logging.NewLogger()
	}
	return &FlightScene{
		session:   session,
		bus:       session.Bus(),
		log:       log,
		scheme:    cfg.Session.ControlScheme,
		camTuning: cfg.Camera,
		assets:    NewAssetManager(),
	}
}

// Type returns the scene type (required by Engo)
func (scene *FlightScene) Type() string {
	return "FlightScene"
}

// Preload is called before the scene starts (required by Engo)
func (scene *FlightScene) Preload() {
	// The HUD font ships embedded so there is no asset directory
	scene.fontErr = engo.Files.LoadReaderData(flightFontURL, bytes.NewReader(gosmallcaps.TTF))
	if scene.fontErr != nil {
		scene.log.Error(context.Background(), "failed to preload hud font", scene.fontErr)
	}
}

// Setup is called when the scene starts (required by Engo)
func (scene *FlightScene) Setup(u engo.Updater) {
	world, ok := u.(*ecs.World)
	if !ok {
		scene.log.Error(context.Background(), "unexpected updater type, scene disabled", nil)
		return
	}
	scene.world = world

	renderSystem := &common.RenderSystem{}
	scene.world.AddSystem(renderSystem)

	SetupInputBindings(scene.scheme)
	scene.setupFont()

	if err := scene.assets.LoadAssets(); err != nil {
		scene.log.Error(context.Background(), "failed to build sprites, continuing text only", err)
	}

	scene.jetCenter = engo.Point{
		X: engo.GameWidth() / 2,
		Y: engo.GameHeight() * 0.62,
	}

	scene.camera = NewCameraSystem(scene.session, scene.camTuning)
	scene.hud = NewHUDSystem(scene.session, scene.world)
	scene.hud.SetFont(scene.font)

	jetSpace, flameSpace, flameRender := scene.createJetEntities(renderSystem)
	scene.createStarfield(renderSystem)

	// Update order: latch input, step the session, then read the fresh
	// state for sprites, camera and HUD.
	scene.world.AddSystem(NewInputSystem(scene.session, scene.scheme))
	scene.world.AddSystem(NewFlightSystem(scene.session))
	scene.world.AddSystem(NewJetSystem(scene.session, scene.jetCenter, jetSpace, flameSpace, flameRender))
	scene.world.AddSystem(scene.camera)
	scene.world.AddSystem(scene.hud)

	scene.subscribeToEvents()

	scene.log.Info(context.Background(), "flight scene ready",
		"session_id", scene.session.ID,
		"control_scheme", scene.scheme.String(),
	)
}

// setupFont builds the HUD font from the preloaded bytes
func (scene *FlightScene) setupFont() {
	if scene.fontErr != nil {
		return
	}

	font := &common.Font{
		URL:  flightFontURL,
		FG:   color.White,
		Size: 14,
	}
	if err := font.CreatePreloaded(); err != nil {
		scene.log.Error(context.Background(), "failed to create hud font", err)
		return
	}
	scene.font = font
}

// createJetEntities adds the jet silhouette and its afterburner flame
// to the render system, returning the components the jet system drives.
// Returns nils when the sprites are unavailable.
func (scene *FlightScene) createJetEntities(renderSystem *common.RenderSystem) (*common.SpaceComponent, *common.SpaceComponent, *common.RenderComponent) {
	jetSprite := scene.assets.GetJetSprite()
	if jetSprite == nil {
		return nil, nil, nil
	}

	jetBasic := ecs.NewBasic()
	jetSpace := &common.SpaceComponent{
		Position: cornerForCenter(scene.jetCenter, jetSize, jetSize, 0),
		Width:    jetSize,
		Height:   jetSize,
	}
	jetRender := &common.RenderComponent{
		Drawable: jetSprite,
		Scale:    engo.Point{X: 3, Y: 3},
		Color:    color.RGBA{220, 225, 235, 255},
	}
	jetRender.SetZIndex(50)
	renderSystem.Add(&jetBasic, jetRender, jetSpace)

	flameSprite := scene.assets.GetFlameSprite()
	if flameSprite == nil {
		return jetSpace, nil, nil
	}

	flameBasic := ecs.NewBasic()
	flameSpace := &common.SpaceComponent{
		Width:  18,
		Height: 24,
	}
	flameCenter := engo.Point{X: scene.jetCenter.X, Y: scene.jetCenter.Y + flameGap}
	flameSpace.Position = cornerForCenter(flameCenter, flameSpace.Width, flameSpace.Height, 0)
	flameRender := &common.RenderComponent{
		Drawable: flameSprite,
		Scale:    engo.Point{X: 3, Y: 3},
		Color:    color.RGBA{255, 150, 40, 255},
		Hidden:   true,
	}
	flameRender.SetZIndex(45)
	renderSystem.Add(&flameBasic, flameRender, flameSpace)

	return jetSpace, flameSpace, flameRender
}

// createStarfield scatters three parallax bands of stars across the
// window and registers them with the camera system.
func (scene *FlightScene) createStarfield(renderSystem *common.RenderSystem) {
	width := int(engo.GameWidth())
	height := int(engo.GameHeight())
	if width <= 0 || height <= 0 {
		return
	}

	layerFactors := []float64{0.05, 0.15, 0.3}
	layerColors := []color.RGBA{
		{120, 120, 140, 255},
		{180, 180, 200, 255},
		{255, 255, 255, 255},
	}

	for layer, factor := range layerFactors {
		sprite := scene.assets.GetStarSprite(layer)
		if sprite == nil {
			continue
		}

		tiles := make([]*common.SpaceComponent, 0, starsPerLayer)
		for i := 0; i < starsPerLayer; i++ {
			basic := ecs.NewBasic()
			space := &common.SpaceComponent{
				// Deterministic scatter, no RNG to seed
				Position: engo.Point{
					X: float32((i*97 + layer*131) % width),
					Y: float32((i*53 + layer*89) % height),
				},
				Width:  4,
				Height: 4,
			}
			render := &common.RenderComponent{
				Drawable: sprite,
				Scale:    engo.Point{X: 2, Y: 2},
				Color:    layerColors[layer],
			}
			render.SetZIndex(float32(layer) - 10)
			renderSystem.Add(&basic, render, space)
			tiles = append(tiles, space)
		}

		scene.camera.AddStarLayer(factor, tiles)
	}
}

// severityFor grades a flight transition for the status feed
func severityFor(t event.Type) StatusSeverity {
	switch t {
	case event.StallEntered, event.FuelExhausted:
		return StatusAlert
	case event.FuelLow, event.RecoveryThrustEngaged:
		return StatusWarn
	default:
		return StatusInfo
	}
}

// statusLabel names a flight transition in HUD shorthand
func statusLabel(t event.Type) string {
	switch t {
	case event.StallEntered:
		return "STALL"
	case event.AutoStabilizeEngaged:
		return "ASSIST ON"
	case event.RecoveryThrustEngaged:
		return "RECOVERY"
	case event.AutoStabilizeEnded:
		return "ASSIST OFF"
	case event.AfterburnerEngaged:
		return "BURNER ON"
	case event.AfterburnerEnded:
		return "BURNER OFF"
	case event.FuelLow:
		return "FUEL LOW"
	case event.FuelExhausted:
		return "FUEL OUT"
	default:
		return strings.ToUpper(strings.ReplaceAll(string(t), "_", " "))
	}
}

// statusDetail formats the flight numbers carried by a transition event
func statusDetail(ev event.Event) string {
	fe, ok := ev.(*event.FlightEvent)
	if !ok {
		return ""
	}
	return fmt.Sprintf("t+%.1fs spd %.1f fuel %.0f%%", fe.Elapsed, fe.Speed, fe.Fuel)
}

// subscribeToEvents feeds flight transitions into the HUD status feed.
// Handlers run on the scene's own update goroutine because the flight
// system steps the session there.
func (scene *FlightScene) subscribeToEvents() {
	for _, t := range hudEventTypes {
		sub := scene.bus.Subscribe(t, func(ev event.Event) {
			scene.hud.AddStatusMessage(statusLabel(ev.GetType()), statusDetail(ev), severityFor(ev.GetType()))
		})
		scene.subs = append(scene.subs, sub)
	}
}

// Exit is called when the scene is exiting (required by Engo)
func (scene *FlightScene) Exit() {
	for _, sub := range scene.subs {
		sub.Cancel()
	}
	scene.subs = nil
	scene.session.ReleaseControls()
}
