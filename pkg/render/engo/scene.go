// pkg/render/engo/scene.go
package engo

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-gravwars/pkg/engine"
)

// worldScale is the pixels-per-world-unit baseline before zoom.
const worldScale = 6

// hudFontPath is the HUD font asset, resolved against engo's asset root.
const hudFontPath = "fonts/hud.ttf"

// GameScene is the engo scene hosting one game. Each frame it pulls a
// snapshot from the engine and hands it to the renderer and HUD, so the
// presentation never holds live entity references.
type GameScene struct {
	world *ecs.World

	game *engine.Game

	renderer *EngoRenderer
	camera   *CameraSystem
	input    *InputSystem
	hud      *HUDSystem
}

// NewGameScene creates a scene for the given game.
func NewGameScene(game *engine.Game) *GameScene {
	return &GameScene{
		game:  game,
		world: &ecs.World{},
	}
}

// Type returns the scene type (required by Engo)
func (scene *GameScene) Type() string {
	return "GameScene"
}

// Preload is called before the scene starts (required by Engo)
func (scene *GameScene) Preload() {
	// The HUD degrades to shapes-only when the font asset is missing.
	if err := engo.Files.Load(hudFontPath); err != nil {
		return
	}
}

// Setup is called when the scene starts (required by Engo)
func (scene *GameScene) Setup(u engo.Updater) {
	scene.world = &ecs.World{}

	renderSystem := &common.RenderSystem{}
	scene.world.AddSystem(renderSystem)
	scene.world.AddSystem(&common.MouseSystem{})

	SetupInputBindings()
	SetupCameraControls()

	scene.camera = NewCameraSystem(worldScale)
	scene.world.AddSystem(scene.camera)

	scene.renderer = NewEngoRenderer(scene.world, scene.camera)
	scene.renderer.Initialize(renderSystem)

	scene.hud = NewHUDSystem(loadHUDFont())
	scene.hud.Initialize(renderSystem)
	scene.world.AddSystem(scene.hud)

	scene.input = NewInputSystem(scene.game, scene.hud)
	scene.world.AddSystem(scene.input)

	// The engine forwards Pan/Zoom here.
	scene.game.SetCamera(scene.camera)

	scene.world.AddSystem(&syncSystem{scene: scene})
}

// loadHUDFont creates the HUD font from the preloaded asset, or returns
// nil when it is unavailable.
func loadHUDFont() *common.Font {
	font := &common.Font{
		URL:  hudFontPath,
		Size: 16,
	}
	if err := font.CreatePreloaded(); err != nil {
		return nil
	}
	return font
}

// Exit is called when the scene is exiting (required by Engo)
func (scene *GameScene) Exit() {
}

// syncSystem pulls one snapshot per frame and pushes it into the
// presentation systems.
type syncSystem struct {
	scene *GameScene
}

func (s *syncSystem) Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent) {
}

func (s *syncSystem) Remove(basic ecs.BasicEntity) {}

func (s *syncSystem) Update(dt float32) {
	snap := s.scene.game.Snapshot()
	s.scene.renderer.Sync(snap)
	s.scene.hud.UpdateSnapshot(snap)
}

// Run starts the engo window around the given game.
func Run(game *engine.Game, title string, width, height int) {
	opts := engo.RunOptions{
		Title:  title,
		Width:  width,
		Height: height,
	}
	engo.Run(opts, NewGameScene(game))
}
