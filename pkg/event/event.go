// pkg/event/event.go
package event

import (
	"sync"
)

// Type represents the type of event
type Type string

// Flight transition events published by the engine loop.
const (
	StallEntered          Type = "stall_entered"
	AutoStabilizeEngaged  Type = "auto_stabilize_engaged"
	RecoveryThrustEngaged Type = "recovery_thrust_engaged"
	AutoStabilizeEnded    Type = "auto_stabilize_ended"
	AfterburnerEngaged    Type = "afterburner_engaged"
	AfterburnerEnded      Type = "afterburner_ended"
	FuelLow               Type = "fuel_low"
	FuelExhausted         Type = "fuel_exhausted"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

// Subscription identifies a registered handler and carries the function
// that removes it again.
type Subscription struct {
	ID     uint64
	Cancel func()
}

type busHandler struct {
	id uint64
	fn Handler
}

// Bus manages event subscriptions and dispatching
type Bus struct {
	handlers map[Type][]busHandler
	nextID   uint64
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]busHandler),
	}
}

// Subscribe registers a handler for a specific event type and returns
// the subscription used to cancel it.
func (b *Bus) Subscribe(eventType Type, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[eventType] = append(b.handlers[eventType], busHandler{id: id, fn: handler})

	return &Subscription{
		ID:     id,
		Cancel: func() { b.cancel(eventType, id) },
	}
}

// cancel removes the handler with the given id. It rebuilds the slice
// so a Publish iterating the old one is never disturbed.
func (b *Bus) cancel(eventType Type, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	old, ok := b.handlers[eventType]
	if !ok {
		return
	}
	kept := make([]busHandler, 0, len(old))
	for _, h := range old {
		if h.id != id {
			kept = append(kept, h)
		}
	}
	b.handlers[eventType] = kept
}

// Publish sends an event to all subscribed handlers
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	handlers := b.handlers[event.GetType()]
	b.mu.RUnlock()

	for _, h := range handlers {
		h.fn(event)
	}
}

// FlightEvent carries the airframe numbers at the moment of a flight
// state transition.
type FlightEvent struct {
	BaseEvent
	SessionID string
	Elapsed   float64
	Speed     float64
	Fuel      float64
	Progress  float64
}

// NewFlightEvent creates a new flight transition event
func NewFlightEvent(eventType Type, source interface{}, sessionID string, elapsed, speed, fuel, progress float64) *FlightEvent {
	return &FlightEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		SessionID: sessionID,
		Elapsed:   elapsed,
		Speed:     speed,
		Fuel:      fuel,
		Progress:  progress,
	}
}
