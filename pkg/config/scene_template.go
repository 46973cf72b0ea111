// pkg/config/scene_template.go
package config

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/opd-ai/go-gravwars/pkg/entity"
)

// SceneTemplate parameterizes procedural scene generation. The same
// seed always yields the same scene.
type SceneTemplate struct {
	Width      float64
	Height     float64
	NumBodies  int
	NumPlayers int
	Seed       uint64
}

// DefaultSceneTemplate returns the stock template used by the runners.
func DefaultSceneTemplate(seed uint64) SceneTemplate {
	return SceneTemplate{
		Width:      150,
		Height:     100,
		NumBodies:  4,
		NumPlayers: 2,
		Seed:       seed,
	}
}

// GenerateScene produces a random valid game configuration: bodies
// placed inside the bounds without overlap, players standing on the
// surface of distinct bodies. The result always passes Validate.
func GenerateScene(tmpl SceneTemplate) (*GameConfig, error) {
	if tmpl.NumPlayers < 2 {
		return nil, fmt.Errorf("%w: need at least 2 players, got %d", ErrInvalidScene, tmpl.NumPlayers)
	}
	if tmpl.NumBodies < tmpl.NumPlayers {
		return nil, fmt.Errorf("%w: need one body per player, got %d bodies for %d players",
			ErrInvalidScene, tmpl.NumBodies, tmpl.NumPlayers)
	}

	rng := rand.New(rand.NewPCG(tmpl.Seed, tmpl.Seed))

	cfg := &GameConfig{
		World: WorldConfig{
			Width:  tmpl.Width,
			Height: tmpl.Height,
		},
		Tuning: DefaultTuning(),
	}

	const maxAttempts = 200
	for i := 0; i < tmpl.NumBodies; i++ {
		body, ok := placeBody(rng, cfg, i, maxAttempts)
		if !ok {
			return nil, fmt.Errorf("%w: could not place %d non-overlapping bodies in %gx%g",
				ErrInvalidScene, tmpl.NumBodies, tmpl.Width, tmpl.Height)
		}
		cfg.Bodies = append(cfg.Bodies, body)
	}

	// The first NumPlayers bodies each carry one ship. Body order is
	// already random, so this does not bias placement.
	for i := 0; i < tmpl.NumPlayers; i++ {
		cfg.Players = append(cfg.Players, PlayerConfig{
			Name:         fmt.Sprintf("Player %d", i+1),
			Color:        entity.PlayerColors[i%len(entity.PlayerColors)],
			BodyIndex:    i,
			SurfaceAngle: rng.Float64() * 2 * math.Pi,
		})
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// placeBody rolls random positions until the candidate clears every
// existing body by a margin, or attempts run out.
func placeBody(rng *rand.Rand, cfg *GameConfig, index, maxAttempts int) (BodyConfig, bool) {
	const clearance = 6 // gap between surfaces so ships have room

	radius := 3 + rng.Float64()*6
	mass := 400 + rng.Float64()*1200

	for attempt := 0; attempt < maxAttempts; attempt++ {
		x := (rng.Float64() - 0.5) * (cfg.World.Width - 2*radius - 4)
		y := (rng.Float64() - 0.5) * (cfg.World.Height - 2*radius - 4)

		fits := true
		for _, other := range cfg.Bodies {
			dx, dy := x-other.X, y-other.Y
			minDist := radius + other.Radius + clearance
			if dx*dx+dy*dy < minDist*minDist {
				fits = false
				break
			}
		}
		if fits {
			return BodyConfig{
				Name:   fmt.Sprintf("Body %d", index+1),
				X:      x,
				Y:      y,
				Radius: radius,
				Mass:   mass,
			}, true
		}
	}
	return BodyConfig{}, false
}
