// pkg/render/engo/input.go
package engo

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/magooney-loon/jp-8-kerosene-sub000/pkg/config"
	"github.com/magooney-loon/jp-8-kerosene-sub000/pkg/engine"
	"github.com/magooney-loon/jp-8-kerosene-sub000/pkg/input"
)

// binding ties one engo button name to a flight action and the keys
// that drive it.
type binding struct {
	button string
	action input.Action
	keys   []engo.Key
}

// bindingsFor returns the key layout for a control scheme. Every scheme
// covers all six flight actions.
func bindingsFor(scheme config.ControlScheme) []binding {
	switch scheme {
	case config.SchemeFPS:
		return []binding{
			{button: "thrust", action: input.ActionThrust, keys: []engo.Key{engo.KeyW}},
			{button: "reverse", action: input.ActionReverse, keys: []engo.Key{engo.KeyS}},
			{button: "rollLeft", action: input.ActionRollLeft, keys: []engo.Key{engo.KeyQ}},
			{button: "rollRight", action: input.ActionRollRight, keys: []engo.Key{engo.KeyE}},
			{button: "boost", action: input.ActionBoost, keys: []engo.Key{engo.KeyLeftShift}},
			{button: "fire", action: input.ActionFire, keys: []engo.Key{engo.KeySpace}},
		}
	case config.SchemeThirdPerson:
		return []binding{
			{button: "thrust", action: input.ActionThrust, keys: []engo.Key{engo.KeyArrowUp}},
			{button: "reverse", action: input.ActionReverse, keys: []engo.Key{engo.KeyArrowDown}},
			{button: "rollLeft", action: input.ActionRollLeft, keys: []engo.Key{engo.KeyArrowLeft}},
			{button: "rollRight", action: input.ActionRollRight, keys: []engo.Key{engo.KeyArrowRight}},
			{button: "boost", action: input.ActionBoost, keys: []engo.Key{engo.KeyRightShift}},
			{button: "fire", action: input.ActionFire, keys: []engo.Key{engo.KeyEnter}},
		}
	default:
		// Spacecraft layout doubles WASD with the arrow keys
		return []binding{
			{button: "thrust", action: input.ActionThrust, keys: []engo.Key{engo.KeyW, engo.KeyArrowUp}},
			{button: "reverse", action: input.ActionReverse, keys: []engo.Key{engo.KeyS, engo.KeyArrowDown}},
			{button: "rollLeft", action: input.ActionRollLeft, keys: []engo.Key{engo.KeyA, engo.KeyArrowLeft}},
			{button: "rollRight", action: input.ActionRollRight, keys: []engo.Key{engo.KeyD, engo.KeyArrowRight}},
			{button: "boost", action: input.ActionBoost, keys: []engo.Key{engo.KeyLeftShift}},
			{button: "fire", action: input.ActionFire, keys: []engo.Key{engo.KeySpace}},
		}
	}
}

// SetupInputBindings registers the scheme's buttons with engo. Call once
// before the scene starts updating.
func SetupInputBindings(scheme config.ControlScheme) {
	for _, b := range bindingsFor(scheme) {
		engo.Input.RegisterButton(b.button, b.keys...)
	}
}

// InputSystem relays engo key state into the session's input latch every
// frame. The latch holds each action until the key is released, so a
// missed frame never drops input.
type InputSystem struct {
	session  *engine.Session
	bindings []binding
}

// NewInputSystem creates a new input system for the given scheme
func NewInputSystem(session *engine.Session, scheme config.ControlScheme) *InputSystem {
	return &InputSystem{
		session:  session,
		bindings: bindingsFor(scheme),
	}
}

// Add satisfies the ecs.System interface
func (is *InputSystem) Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent) {
	// Not used for input system
}

// Remove satisfies the ecs.System interface
func (is *InputSystem) Remove(basic ecs.BasicEntity) {
	// Not used for input system
}

// Update relays the current key state to the session
func (is *InputSystem) Update(dt float32) {
	for _, b := range is.bindings {
		is.session.SetControl(b.action, engo.Input.Button(b.button).Down())
	}
}
