// pkg/render/engo/input.go
package engo

import (
	"math"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-gravwars/pkg/engine"
)

// InputSystem translates keyboard input into engine commands: aim
// adjustment, fire, and camera pan. It also drives the simulation clock,
// accumulating frame time into fixed engine ticks.
type InputSystem struct {
	game *engine.Game
	hud  *HUDSystem

	// Aim state, adjusted by the arrow keys
	angle float64
	power float64

	// Fixed-step accumulator
	accumulator float64
	timeStep    float64

	panSpeed  float64 // world units per second
	angleRate float64 // radians per second
	powerRate float64 // power units per second
	maxPower  float64
}

// NewInputSystem creates an input system driving the given game.
func NewInputSystem(game *engine.Game, hud *HUDSystem) *InputSystem {
	tuning := game.Config.Tuning
	return &InputSystem{
		game:      game,
		hud:       hud,
		angle:     math.Pi / 2,
		power:     tuning.MaxPower / 2,
		timeStep:  tuning.TimeStep,
		panSpeed:  40,
		angleRate: math.Pi / 2,
		powerRate: 4,
		maxPower:  tuning.MaxPower,
	}
}

// Add satisfies the ecs.System interface
func (is *InputSystem) Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent) {
	// Not used for input system
}

// Remove satisfies the ecs.System interface
func (is *InputSystem) Remove(basic ecs.BasicEntity) {
	// Not used for input system
}

// Update processes one frame of input and advances the simulation.
func (is *InputSystem) Update(dt float32) {
	is.handleAimInput(float64(dt))
	is.handlePanInput(float64(dt))
	is.handleZoomInput()

	if engo.Input.Button("fire").JustPressed() {
		// A rejection here is a no-op by contract; the overlay already
		// tells the player why firing is unavailable.
		_ = is.game.Fire(is.angle, is.power)
	}

	is.hud.SetAim(is.angle, is.power)
	is.tick(float64(dt))
}

// tick advances the engine in fixed steps regardless of frame rate.
func (is *InputSystem) tick(dt float64) {
	is.accumulator += dt
	for is.accumulator >= is.timeStep {
		is.game.Tick(is.timeStep)
		is.accumulator -= is.timeStep
	}
}

// handleAimInput adjusts angle and power from the arrow keys.
func (is *InputSystem) handleAimInput(dt float64) {
	if engo.Input.Button("aimLeft").Down() {
		is.angle += is.angleRate * dt
	}
	if engo.Input.Button("aimRight").Down() {
		is.angle -= is.angleRate * dt
	}
	if engo.Input.Button("powerUp").Down() {
		is.power = math.Min(is.power+is.powerRate*dt, is.maxPower)
	}
	if engo.Input.Button("powerDown").Down() {
		is.power = math.Max(is.power-is.powerRate*dt, 0)
	}
}

// handlePanInput forwards WASD panning through the engine.
func (is *InputSystem) handlePanInput(dt float64) {
	dx, dy := 0.0, 0.0
	if engo.Input.Button("panLeft").Down() {
		dx -= is.panSpeed * dt
	}
	if engo.Input.Button("panRight").Down() {
		dx += is.panSpeed * dt
	}
	if engo.Input.Button("panUp").Down() {
		dy += is.panSpeed * dt
	}
	if engo.Input.Button("panDown").Down() {
		dy -= is.panSpeed * dt
	}
	if dx != 0 || dy != 0 {
		is.game.Pan(dx, dy)
	}
}

// handleZoomInput forwards keyboard zoom through the engine. Mouse wheel
// zoom is handled by the camera itself.
func (is *InputSystem) handleZoomInput() {
	if engo.Input.Button("zoomIn").Down() {
		is.game.Zoom(0.2)
	}
	if engo.Input.Button("zoomOut").Down() {
		is.game.Zoom(-0.2)
	}
}

// Aim returns the current aim state.
func (is *InputSystem) Aim() (angle, power float64) {
	return is.angle, is.power
}

// SetupInputBindings sets up the key bindings for the game.
func SetupInputBindings() {
	engo.Input.RegisterButton("aimLeft", engo.KeyArrowLeft)
	engo.Input.RegisterButton("aimRight", engo.KeyArrowRight)
	engo.Input.RegisterButton("powerUp", engo.KeyArrowUp)
	engo.Input.RegisterButton("powerDown", engo.KeyArrowDown)
	engo.Input.RegisterButton("fire", engo.KeySpace)

	engo.Input.RegisterButton("panLeft", engo.KeyA)
	engo.Input.RegisterButton("panRight", engo.KeyD)
	engo.Input.RegisterButton("panUp", engo.KeyW)
	engo.Input.RegisterButton("panDown", engo.KeyS)

	engo.Input.RegisterButton("zoomIn", engo.KeyE)
	engo.Input.RegisterButton("zoomOut", engo.KeyQ)
}
