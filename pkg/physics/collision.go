// pkg/physics/collision.go
package physics

import "math"

// Circle represents a circular collision shape
type Circle struct {
	Center Vector2D
	Radius float64
}

// Collides checks if two circles are colliding
func (c Circle) Collides(other Circle) bool {
	return c.Center.Distance(other.Center) < c.Radius+other.Radius
}

// Contains reports whether the point lies inside the circle.
func (c Circle) Contains(point Vector2D) bool {
	return c.Center.Distance(point) < c.Radius
}

// Rect represents a rectangular area
type Rect struct {
	Center Vector2D
	Width  float64
	Height float64
}

func (r Rect) Contains(point Vector2D) bool {
	return point.X >= r.Center.X-r.Width/2 &&
		point.X < r.Center.X+r.Width/2 &&
		point.Y >= r.Center.Y-r.Height/2 &&
		point.Y < r.Center.Y+r.Height/2
}

// SweepResult describes the earliest intersection of a moving point
// against a circle over one step.
type SweepResult struct {
	Hit   bool
	T     float64  // fraction of the step at which contact happens, in [0, 1]
	Point Vector2D // contact position
}

// SweepCircle tests the segment from -> to against a circle and returns
// the earliest crossing. A start point already inside the circle reports
// contact at T=0. The swept test is what keeps fast projectiles from
// tunneling through a body between two samples.
func SweepCircle(from, to Vector2D, circle Circle) SweepResult {
	if circle.Contains(from) {
		return SweepResult{Hit: true, T: 0, Point: from}
	}

	dir := to.Sub(from)
	segLenSq := dir.LengthSquared()
	if segLenSq == 0 {
		return SweepResult{}
	}

	// Solve |from + t*dir - center|² = r² for the smallest t in [0, 1].
	rel := from.Sub(circle.Center)
	a := segLenSq
	b := 2 * rel.Dot(dir)
	c := rel.LengthSquared() - circle.Radius*circle.Radius

	disc := b*b - 4*a*c
	if disc < 0 {
		return SweepResult{}
	}

	sqrtDisc := math.Sqrt(disc)
	t := (-b - sqrtDisc) / (2 * a)
	if t < 0 || t > 1 {
		return SweepResult{}
	}

	return SweepResult{
		Hit:   true,
		T:     t,
		Point: from.Add(dir.Scale(t)),
	}
}
