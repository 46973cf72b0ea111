// pkg/physics/gravity.go
package physics

// Attractor is a point mass contributing to a gravity field.
type Attractor struct {
	Position Vector2D
	Mass     float64
}

// GravityField computes the net gravitational acceleration exerted by a
// fixed set of attractors. The field is evaluated with an inverse-square
// law; query points closer to an attractor than the softening radius are
// treated as if they were at the softening radius, so the contribution is
// capped rather than blowing up. The cap is a gameplay stability choice.
type GravityField struct {
	constant   float64
	softening  float64
	attractors []Attractor
}

// NewGravityField creates a gravity field with the given gravitational
// constant and softening radius over the attractor set.
func NewGravityField(constant, softening float64, attractors []Attractor) *GravityField {
	return &GravityField{
		constant:   constant,
		softening:  softening,
		attractors: attractors,
	}
}

// AccelerationAt returns the vector sum of every attractor's acceleration
// contribution at the query point. The result is always finite for finite
// input; an attractor exactly at the query point contributes nothing
// because the direction is undefined.
func (f *GravityField) AccelerationAt(point Vector2D) Vector2D {
	var total Vector2D
	for _, a := range f.attractors {
		offset := a.Position.Sub(point)
		dist := offset.Length()
		if dist == 0 {
			continue
		}
		if dist < f.softening {
			dist = f.softening
		}
		strength := f.constant * a.Mass / (dist * dist)
		total = total.Add(offset.Normalize().Scale(strength))
	}
	return total
}

// Constant returns the field's gravitational constant.
func (f *GravityField) Constant() float64 {
	return f.constant
}
