// pkg/entity/body.go
package entity

import (
	"github.com/opd-ai/go-gravwars/pkg/physics"
)

// Body represents a fixed, massive, circular obstacle exerting gravity.
// Bodies are immutable for the duration of a game; the scene's body set
// is fixed at setup.
type Body struct {
	BaseEntity
	Name string
	Mass float64
}

// NewBody creates a new body at the given position
func NewBody(id ID, name string, position physics.Vector2D, radius, mass float64) *Body {
	return &Body{
		BaseEntity: BaseEntity{
			ID:       id,
			Position: position,
			Collider: physics.Circle{
				Center: position,
				Radius: radius,
			},
			Active: true,
		},
		Name: name,
		Mass: mass,
	}
}

// Radius returns the body's physical radius.
func (b *Body) Radius() float64 {
	return b.Collider.Radius
}

// Attractor returns the body's contribution to a gravity field.
func (b *Body) Attractor() physics.Attractor {
	return physics.Attractor{
		Position: b.Position,
		Mass:     b.Mass,
	}
}

// SurfacePoint returns the point on the body's surface at the given
// angle from its center. Player ships stand at surface points.
func (b *Body) SurfacePoint(angle float64) physics.Vector2D {
	return b.Position.Add(physics.FromAngle(angle, b.Collider.Radius))
}
