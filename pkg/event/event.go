// pkg/event/event.go
package event

import (
	"sync"
)

// Type represents the type of event
type Type string

// Common event types
const (
	GameStarted       Type = "game_started"
	ProjectileFired   Type = "projectile_fired"
	ProjectileExpired Type = "projectile_expired"
	BodyHit           Type = "body_hit"
	OutOfBounds       Type = "out_of_bounds"
	PlayerEliminated  Type = "player_eliminated"
	TurnAdvanced      Type = "turn_advanced"
	GameEnded         Type = "game_ended"
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

// Bus manages event subscriptions and dispatching
type Bus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]Handler),
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// Publish sends an event to all subscribed handlers
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	handlers, ok := b.handlers[event.GetType()]
	b.mu.RUnlock()

	if !ok {
		return
	}

	for _, handler := range handlers {
		handler(event)
	}
}

// Specific event implementations

// ProjectileEvent carries the firing player and launch parameters.
type ProjectileEvent struct {
	BaseEvent
	PlayerIndex int
	Angle       float64
	Power       float64
}

// NewProjectileEvent creates a projectile lifecycle event
func NewProjectileEvent(eventType Type, source interface{}, playerIndex int, angle, power float64) *ProjectileEvent {
	return &ProjectileEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		PlayerIndex: playerIndex,
		Angle:       angle,
		Power:       power,
	}
}

// ImpactEvent contains information about a projectile striking a body
// or leaving the world bounds.
type ImpactEvent struct {
	BaseEvent
	BodyIndex  int // -1 for out-of-bounds
	ShooterIdx int
	X, Y       float64
}

// NewImpactEvent creates a new impact event
func NewImpactEvent(eventType Type, source interface{}, bodyIndex, shooterIdx int, x, y float64) *ImpactEvent {
	return &ImpactEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		BodyIndex:  bodyIndex,
		ShooterIdx: shooterIdx,
		X:          x,
		Y:          y,
	}
}

// PlayerEvent contains information about player-related events
type PlayerEvent struct {
	BaseEvent
	PlayerIndex int
}

// NewPlayerEvent creates a new player event
func NewPlayerEvent(eventType Type, source interface{}, playerIndex int) *PlayerEvent {
	return &PlayerEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		PlayerIndex: playerIndex,
	}
}
