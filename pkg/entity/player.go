// pkg/entity/player.go
package entity

import (
	"github.com/opd-ai/go-gravwars/pkg/physics"
)

// Color is an RGB triple used to tint a player's ship and shots.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Default player palette, assigned round-robin at game setup.
var PlayerColors = []Color{
	{R: 255, G: 64, B: 64},
	{R: 64, G: 128, B: 255},
	{R: 64, G: 224, B: 96},
	{R: 255, G: 224, B: 64},
	{R: 224, G: 96, B: 255},
	{R: 64, G: 224, B: 224},
}

// Player represents one participant. Players are created once at game
// start in a fixed order; Alive transitions true to false on elimination
// and never back.
type Player struct {
	BaseEntity
	Index    int
	Name     string
	Color    Color
	Alive    bool
	HomeBody int // index of the body the ship stands on
}

// NewPlayer creates a player standing at the given position on a body.
func NewPlayer(id ID, index int, name string, color Color, homeBody int, position physics.Vector2D) *Player {
	return &Player{
		BaseEntity: BaseEntity{
			ID:       id,
			Position: position,
			Rotation: 0,
			Collider: physics.Circle{
				Center: position,
				Radius: 1,
			},
			Active: true,
		},
		Index:    index,
		Name:     name,
		Color:    color,
		Alive:    true,
		HomeBody: homeBody,
	}
}

// Eliminate marks the player dead. Elimination is permanent.
func (p *Player) Eliminate() {
	p.Alive = false
	p.Active = false
}
