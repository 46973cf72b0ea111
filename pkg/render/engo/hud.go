// pkg/render/engo/hud.go
package engo

import (
	"fmt"
	"image/color"
	"math"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-gravwars/pkg/engine"
)

// HUDSystem draws the overlay: status text, the current player's color
// swatch, and the aim readout while firing is enabled.
type HUDSystem struct {
	renderSystem *common.RenderSystem
	font         *common.Font

	statusLine *renderEntity
	aimLine    *renderEntity
	swatch     *renderEntity

	// Latest snapshot and local aim state, set before Update runs.
	snapshot engine.GameSnapshot
	angle    float64
	power    float64

	hudColor color.Color
}

// NewHUDSystem creates a new HUD system.
func NewHUDSystem(font *common.Font) *HUDSystem {
	return &HUDSystem{
		font:     font,
		hudColor: color.RGBA{255, 255, 255, 255},
	}
}

// Initialize hooks the HUD into the render system and creates its
// entities once. Without a font only the color swatch is shown.
func (hud *HUDSystem) Initialize(renderSystem *common.RenderSystem) {
	hud.renderSystem = renderSystem

	if hud.font != nil {
		hud.statusLine = hud.addText("", 40, 10)
		hud.aimLine = hud.addText("", 40, 30)
	}

	hud.swatch = &renderEntity{
		basic: ecs.NewBasic(),
		render: common.RenderComponent{
			Drawable: common.Rectangle{},
			Color:    hud.hudColor,
		},
		space: common.SpaceComponent{
			Position: engo.Point{X: 10, Y: 8},
			Width:    20,
			Height:   20,
		},
	}
	renderSystem.Add(&hud.swatch.basic, &hud.swatch.render, &hud.swatch.space)
}

// Add satisfies the ecs.System interface
func (hud *HUDSystem) Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent) {
	// Not used for HUD system
}

// Remove satisfies the ecs.System interface
func (hud *HUDSystem) Remove(basic ecs.BasicEntity) {
	// Not used for HUD system
}

// Update refreshes the HUD text from the latest snapshot.
func (hud *HUDSystem) Update(dt float32) {
	snap := hud.snapshot

	hud.setText(hud.statusLine, snap.Overlay)
	hud.swatch.render.Color = color.RGBA{snap.CurrentColor.R, snap.CurrentColor.G, snap.CurrentColor.B, 255}

	if snap.AimingEnabled {
		hud.setText(hud.aimLine, fmt.Sprintf("angle %.0f deg  power %.1f  [space] fire", hud.angle*180/math.Pi, hud.power))
	} else {
		hud.setText(hud.aimLine, "")
	}
}

// UpdateSnapshot hands the HUD the latest game state.
func (hud *HUDSystem) UpdateSnapshot(snap engine.GameSnapshot) {
	hud.snapshot = snap
}

// SetAim shows the aim readout the input system is accumulating.
func (hud *HUDSystem) SetAim(angle, power float64) {
	hud.angle = angle
	hud.power = power
}

// addText creates a text entity at the given screen position.
func (hud *HUDSystem) addText(text string, x, y float32) *renderEntity {
	e := &renderEntity{
		basic: ecs.NewBasic(),
		render: common.RenderComponent{
			Drawable: common.Text{
				Font: hud.font,
				Text: text,
			},
			Color: hud.hudColor,
		},
		space: common.SpaceComponent{
			Position: engo.Point{X: x, Y: y},
		},
	}
	hud.renderSystem.Add(&e.basic, &e.render, &e.space)
	return e
}

// setText swaps the string on an existing text entity.
func (hud *HUDSystem) setText(e *renderEntity, text string) {
	if e == nil {
		return
	}
	e.render.Drawable = common.Text{
		Font: hud.font,
		Text: text,
	}
}
