// pkg/entity/entity.go
package entity

import (
	"github.com/opd-ai/go-gravwars/pkg/physics"
)

// ID is a unique identifier for an entity
type ID uint64

// Entity is the base interface for all game objects
type Entity interface {
	GetID() ID
	GetPosition() physics.Vector2D
	GetCollider() physics.Circle
	Render(r Renderer)
}

// BaseEntity contains common functionality for all entities
type BaseEntity struct {
	ID       ID
	Position physics.Vector2D
	Velocity physics.Vector2D
	Rotation float64
	Collider physics.Circle
	Active   bool
}

// GetID returns the entity's unique identifier
func (e *BaseEntity) GetID() ID {
	return e.ID
}

// GetPosition returns the entity's position
func (e *BaseEntity) GetPosition() physics.Vector2D {
	return e.Position
}

// GetCollider returns the entity's collision shape
func (e *BaseEntity) GetCollider() physics.Circle {
	return physics.Circle{
		Center: e.Position,
		Radius: e.Collider.Radius,
	}
}

func (b *Body) Render(r Renderer) {
	r.RenderBody(b)
}

func (p *Player) Render(r Renderer) {
	r.RenderPlayer(p)
}

func (p *Projectile) Render(r Renderer) {
	r.RenderProjectile(p)
}

// GenerateID generates a unique ID for entities
// In a real implementation, this would use a more robust approach
var nextID ID = 1

func GenerateID() ID {
	id := nextID
	nextID++
	return id
}
