// pkg/config/config.go
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/opd-ai/go-gravwars/pkg/entity"
)

// ErrInvalidScene marks a scene configuration the game cannot start from.
// It is fatal at construction; there is no recovery path.
var ErrInvalidScene = errors.New("invalid scene configuration")

// GameConfig contains configuration for a gravity-wars game
type GameConfig struct {
	World   WorldConfig    `json:"world"`
	Bodies  []BodyConfig   `json:"bodies"`
	Players []PlayerConfig `json:"players"`
	Tuning  Tuning         `json:"tuning"`
}

// WorldConfig describes the axis-aligned world bounds, centered on the origin.
type WorldConfig struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// BodyConfig contains configuration for one gravitating body
type BodyConfig struct {
	Name   string  `json:"name"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius"`
	Mass   float64 `json:"mass"`
}

// PlayerConfig contains configuration for one player. The ship stands on
// the surface of the referenced body at the given angle from its center.
type PlayerConfig struct {
	Name         string       `json:"name"`
	Color        entity.Color `json:"color"`
	BodyIndex    int          `json:"bodyIndex"`
	SurfaceAngle float64      `json:"surfaceAngle"`
}

// Tuning holds the gameplay-tuning parameters. The damage radius and
// power-to-velocity scale are deliberate knobs, not physical constants.
type Tuning struct {
	GravityConstant float64 `json:"gravityConstant"`
	SofteningRadius float64 `json:"softeningRadius"`
	TimeStep        float64 `json:"timeStep"`    // seconds per simulation tick
	MaxLifetime     float64 `json:"maxLifetime"` // projectile self-destruct, seconds
	MaxPower        float64 `json:"maxPower"`
	VelocityScale   float64 `json:"velocityScale"` // launch speed = power * scale
	DamageRadius    float64 `json:"damageRadius"`  // elimination distance from impact
	LaunchOffset    float64 `json:"launchOffset"`  // spawn distance past the ship
}

// LoadConfig loads a configuration from a file
func LoadConfig(path string) (*GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config GameConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// SaveConfig saves a configuration to a file
func SaveConfig(config *GameConfig, path string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks the scene and tuning for conditions the simulation
// cannot run under. All violations wrap ErrInvalidScene.
func (c *GameConfig) Validate() error {
	if c.World.Width <= 0 || c.World.Height <= 0 {
		return fmt.Errorf("%w: world bounds %gx%g must be positive", ErrInvalidScene, c.World.Width, c.World.Height)
	}

	if len(c.Bodies) == 0 {
		return fmt.Errorf("%w: at least one body required", ErrInvalidScene)
	}
	for i, body := range c.Bodies {
		if body.Radius <= 0 {
			return fmt.Errorf("%w: body %d radius %g must be positive", ErrInvalidScene, i, body.Radius)
		}
		if body.Mass <= 0 {
			return fmt.Errorf("%w: body %d mass %g must be positive", ErrInvalidScene, i, body.Mass)
		}
	}
	for i := 0; i < len(c.Bodies); i++ {
		for j := i + 1; j < len(c.Bodies); j++ {
			a, b := c.Bodies[i], c.Bodies[j]
			dx, dy := a.X-b.X, a.Y-b.Y
			minDist := a.Radius + b.Radius
			if dx*dx+dy*dy < minDist*minDist {
				return fmt.Errorf("%w: bodies %d and %d overlap", ErrInvalidScene, i, j)
			}
		}
	}

	if len(c.Players) < 2 {
		return fmt.Errorf("%w: need at least 2 players, got %d", ErrInvalidScene, len(c.Players))
	}
	for i, player := range c.Players {
		if player.BodyIndex < 0 || player.BodyIndex >= len(c.Bodies) {
			return fmt.Errorf("%w: player %d references body %d of %d", ErrInvalidScene, i, player.BodyIndex, len(c.Bodies))
		}
	}

	t := c.Tuning
	if t.TimeStep <= 0 || t.MaxLifetime <= 0 || t.MaxPower <= 0 || t.VelocityScale <= 0 {
		return fmt.Errorf("%w: tuning values must be positive", ErrInvalidScene)
	}
	if t.SofteningRadius <= 0 {
		return fmt.Errorf("%w: softening radius %g must be positive", ErrInvalidScene, t.SofteningRadius)
	}
	if t.DamageRadius <= 0 {
		return fmt.Errorf("%w: damage radius %g must be positive", ErrInvalidScene, t.DamageRadius)
	}
	if t.LaunchOffset < 0 {
		return fmt.Errorf("%w: launch offset %g must be non-negative", ErrInvalidScene, t.LaunchOffset)
	}

	return nil
}

// DefaultTuning returns the stock gameplay tuning.
func DefaultTuning() Tuning {
	return Tuning{
		GravityConstant: 40,
		SofteningRadius: 0.5,
		TimeStep:        1.0 / 30.0,
		MaxLifetime:     30,
		MaxPower:        10,
		VelocityScale:   10,
		DamageRadius:    4,
		LaunchOffset:    2,
	}
}

// DefaultConfig returns a default two-player game configuration
func DefaultConfig() *GameConfig {
	return &GameConfig{
		World: WorldConfig{
			Width:  150,
			Height: 100,
		},
		Bodies: []BodyConfig{
			{
				Name:   "Aster",
				X:      -40,
				Y:      0,
				Radius: 8,
				Mass:   1500,
			},
			{
				Name:   "Boreas",
				X:      45,
				Y:      10,
				Radius: 6,
				Mass:   900,
			},
			{
				Name:   "Drift",
				X:      5,
				Y:      -28,
				Radius: 4,
				Mass:   500,
			},
		},
		Players: []PlayerConfig{
			{
				Name:         "Player 1",
				Color:        entity.PlayerColors[0],
				BodyIndex:    0,
				SurfaceAngle: 1.5707963267948966, // pi/2, standing on top
			},
			{
				Name:         "Player 2",
				Color:        entity.PlayerColors[1],
				BodyIndex:    1,
				SurfaceAngle: 1.5707963267948966,
			},
		},
		Tuning: DefaultTuning(),
	}
}
