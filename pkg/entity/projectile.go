// pkg/entity/projectile.go
package entity

import (
	"github.com/opd-ai/go-gravwars/pkg/physics"
)

// Projectile represents the missile fired by a player. At most one
// projectile is in flight at a time; the turn machine enforces that.
type Projectile struct {
	BaseEntity
	Owner       int     // index of the firing player
	Elapsed     float64 // seconds in flight, monotonically non-decreasing
	MaxLifetime float64 // self-destruct bound, seconds
	trail       []physics.Vector2D
}

// NewProjectile creates a projectile at the launch position with the
// given initial velocity.
func NewProjectile(id ID, owner int, position, velocity physics.Vector2D, maxLifetime float64) *Projectile {
	return &Projectile{
		BaseEntity: BaseEntity{
			ID:       id,
			Position: position,
			Velocity: velocity,
			Rotation: velocity.Angle(),
			Collider: physics.Circle{
				Center: position,
				Radius: 0.5,
			},
			Active: true,
		},
		Owner:       owner,
		MaxLifetime: maxLifetime,
		trail:       []physics.Vector2D{position},
	}
}

// Advance performs one semi-implicit Euler step under the gravity field:
// velocity is updated from the acceleration at the current position, then
// position from the new velocity. The ordering is what keeps quasi-orbits
// energy-stable over long flights. Returns true when the projectile has
// exceeded its maximum lifetime and self-destructed.
func (p *Projectile) Advance(field *physics.GravityField, dt float64) (expired bool) {
	if !p.Active {
		return false
	}

	accel := field.AccelerationAt(p.Position)
	newVelocity := p.Velocity.Add(accel.Scale(dt))
	newPosition := p.Position.Add(newVelocity.Scale(dt))

	// A capped field never produces non-finite values from finite state;
	// refuse to commit one rather than propagate it.
	if !newVelocity.IsFinite() || !newPosition.IsFinite() {
		p.Active = false
		return true
	}

	p.Velocity = newVelocity
	p.Position = newPosition
	p.Collider.Center = newPosition
	p.Rotation = newVelocity.Angle()
	p.Elapsed += dt
	p.trail = append(p.trail, newPosition)

	if p.Elapsed >= p.MaxLifetime {
		p.Elapsed = p.MaxLifetime
		p.Active = false
		return true
	}
	return false
}

// PreviousPosition returns the position before the most recent step,
// used for swept collision checks.
func (p *Projectile) PreviousPosition() physics.Vector2D {
	if len(p.trail) < 2 {
		return p.Position
	}
	return p.trail[len(p.trail)-2]
}

// Trail returns the positions recorded so far, oldest first.
func (p *Projectile) Trail() []physics.Vector2D {
	return p.trail
}

// TruncateAt replaces the final trail position with the impact point,
// so a rendered trajectory ends at the collision instead of inside a body.
func (p *Projectile) TruncateAt(point physics.Vector2D) {
	p.Position = point
	p.Collider.Center = point
	if len(p.trail) > 0 {
		p.trail[len(p.trail)-1] = point
	}
}
