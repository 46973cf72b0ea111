// cmd/gravwars/main.go
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/opd-ai/go-gravwars/pkg/asset"
	"github.com/opd-ai/go-gravwars/pkg/config"
	"github.com/opd-ai/go-gravwars/pkg/engine"
	"github.com/opd-ai/go-gravwars/pkg/render"
	engorender "github.com/opd-ai/go-gravwars/pkg/render/engo"
)

func main() {
	configPath := flag.String("config", "config.json", "Path to configuration file")
	seed := flag.Uint64("seed", 0, "Generate a random scene with this seed instead of loading config")
	renderer := flag.String("renderer", "terminal", "Renderer type: 'terminal' or 'engo'")
	width := flag.Int("width", 1024, "Window width (Engo only)")
	height := flag.Int("height", 768, "Window height (Engo only)")
	flag.Parse()

	gameConfig := loadGameConfig(*configPath, *seed)

	game, err := engine.NewGame(gameConfig)
	if err != nil {
		log.Fatalf("Failed to create game: %v", err)
	}

	// Remote assets are optional; when a base URL is configured, a
	// failure to fetch is fatal at startup.
	if envConfig, err := config.LoadConfigFromEnv(); err == nil && envConfig.AssetBaseURL != "" {
		fetcher := asset.NewFetcher(envConfig)
		if _, err := fetcher.Fetch(context.Background(), "manifest.json"); err != nil {
			log.Fatalf("Failed to fetch assets: %v", err)
		}
	}

	switch *renderer {
	case "engo":
		engorender.Run(game, "Gravity Wars", *width, *height)
	case "terminal":
		fallthrough
	default:
		runTerminal(game)
	}
}

// loadGameConfig resolves the scene: generated from a seed, loaded from
// a file, or the stock default.
func loadGameConfig(path string, seed uint64) *config.GameConfig {
	if seed != 0 {
		cfg, err := config.GenerateScene(config.DefaultSceneTemplate(seed))
		if err != nil {
			log.Fatalf("Failed to generate scene: %v", err)
		}
		return cfg
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		log.Printf("Configuration file not found, using default configuration")
		return config.DefaultConfig()
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	return cfg
}

// runTerminal drives the game with line-based input and the ASCII view.
func runTerminal(game *engine.Game) {
	snap := game.Snapshot()
	term := render.NewTerminalRenderer(100, 30, snap.World.Width/100)
	game.SetCamera(term)

	reader := bufio.NewReader(os.Stdin)

	for {
		snap := game.Snapshot()
		draw(term, game, snap)

		if snap.Phase == engine.PhaseGameOver {
			return
		}

		fmt.Print("> angle(deg) power: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}

		angle, power, ok := parseShot(line)
		if !ok {
			fmt.Println("usage: <angle in degrees> <power>, e.g. 45 7.5")
			continue
		}

		if err := game.Fire(angle, power); err != nil {
			fmt.Printf("rejected: %v\n", err)
			time.Sleep(time.Second)
			continue
		}

		simulate(game, term)
	}
}

// simulate runs the flight at the configured tick rate, redrawing as it
// goes, then takes the one resolution tick.
func simulate(game *engine.Game, term *render.TerminalRenderer) {
	dt := game.Config.Tuning.TimeStep
	ticker := time.NewTicker(time.Duration(dt * float64(time.Second)))
	defer ticker.Stop()

	for range ticker.C {
		game.Tick(dt)
		snap := game.Snapshot()
		draw(term, game, snap)
		if snap.Phase != engine.PhaseSimulating {
			break
		}
	}

	// Leave Resolved so the next prompt is for the next player.
	time.Sleep(time.Second)
	game.Tick(dt)
}

// draw renders one snapshot through the entity dispatch.
func draw(term *render.TerminalRenderer, game *engine.Game, snap engine.GameSnapshot) {
	term.Clear()
	for _, body := range game.Bodies {
		body.Render(term)
	}
	for _, player := range game.Players {
		player.Render(term)
	}
	if game.Projectile != nil {
		game.Projectile.Render(term)
	}
	term.SetOverlay(snap.Overlay)
	term.Present()
}

// parseShot parses "angle power" with the angle in degrees.
func parseShot(line string) (angle, power float64, ok bool) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return 0, 0, false
	}

	degrees, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, 0, false
	}
	power, err = strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return 0, 0, false
	}

	return degrees * math.Pi / 180, power, true
}
