// pkg/render/engo/flight.go
package engo

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo/common"

	"github.com/magooney-loon/jp-8-kerosene-sub000/pkg/engine"
)

// maxFrameDelta caps the timestep handed to the session so a dragged
// window or paused process cannot feed the simulation one giant frame.
const maxFrameDelta = 0.1

// clampFrameDelta bounds an engo frame delta to the simulation's safe
// range.
func clampFrameDelta(dt float64) float64 {
	if dt < 0 {
		return 0
	}
	if dt > maxFrameDelta {
		return maxFrameDelta
	}
	return dt
}

// FlightSystem advances the flight session once per engo frame. The
// scene owns the session clock; do not start the session's own Run loop
// alongside this system.
type FlightSystem struct {
	session *engine.Session
}

// NewFlightSystem creates a new flight stepping system
func NewFlightSystem(session *engine.Session) *FlightSystem {
	return &FlightSystem{session: session}
}

// Add satisfies the ecs.System interface
func (fs *FlightSystem) Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent) {
	// Not used for flight system
}

// Remove satisfies the ecs.System interface
func (fs *FlightSystem) Remove(basic ecs.BasicEntity) {
	// Not used for flight system
}

// Update steps the session by the engo frame delta
func (fs *FlightSystem) Update(dt float32) {
	fs.session.Step(clampFrameDelta(float64(dt)))
}
