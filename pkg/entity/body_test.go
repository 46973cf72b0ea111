// pkg/entity/body_test.go
package entity

import (
	"math"
	"testing"

	"github.com/opd-ai/go-gravwars/pkg/physics"
)

func TestNewBody(t *testing.T) {
	body := NewBody(1, "Kerak", physics.Vector2D{X: 10, Y: -20}, 6, 1200)

	if body.Radius() != 6 {
		t.Errorf("Radius() = %v, expected 6", body.Radius())
	}
	if body.Mass != 1200 {
		t.Errorf("Mass = %v, expected 1200", body.Mass)
	}
	if !body.Active {
		t.Error("new body not active")
	}
	if body.GetCollider().Center != body.Position {
		t.Error("collider not centered on body position")
	}
}

func TestBody_Attractor(t *testing.T) {
	body := NewBody(1, "Kerak", physics.Vector2D{X: 3, Y: 4}, 5, 900)
	attractor := body.Attractor()

	if attractor.Position != body.Position {
		t.Errorf("attractor position = %v, expected %v", attractor.Position, body.Position)
	}
	if attractor.Mass != 900 {
		t.Errorf("attractor mass = %v, expected 900", attractor.Mass)
	}
}

func TestBody_SurfacePoint(t *testing.T) {
	body := NewBody(1, "Kerak", physics.Vector2D{X: 0, Y: 0}, 5, 900)

	tests := []struct {
		name     string
		angle    float64
		expected physics.Vector2D
	}{
		{
			name:     "east",
			angle:    0,
			expected: physics.Vector2D{X: 5, Y: 0},
		},
		{
			name:     "north",
			angle:    math.Pi / 2,
			expected: physics.Vector2D{X: 0, Y: 5},
		},
		{
			name:     "west",
			angle:    math.Pi,
			expected: physics.Vector2D{X: -5, Y: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			point := body.SurfacePoint(tt.angle)
			if point.Distance(tt.expected) > 1e-12 {
				t.Errorf("SurfacePoint(%v) = %v, expected %v", tt.angle, point, tt.expected)
			}
		})
	}
}

func TestPlayer_Eliminate(t *testing.T) {
	player := NewPlayer(1, 0, "Player 1", PlayerColors[0], 0, physics.Vector2D{X: 5, Y: 0})

	if !player.Alive {
		t.Fatal("new player not alive")
	}
	player.Eliminate()
	if player.Alive {
		t.Error("eliminated player still alive")
	}
	if player.Active {
		t.Error("eliminated player still active")
	}
}
