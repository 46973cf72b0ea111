package render

import (
	"fmt"
	"strings"

	"github.com/opd-ai/go-gravwars/pkg/entity"
	"github.com/opd-ai/go-gravwars/pkg/physics"
)

// TerminalRenderer provides a simple ASCII-based rendering for terminals.
// It doubles as the engine's camera controller: Pan shifts the view
// center and Zoom adjusts the world-units-per-cell scale.
type TerminalRenderer struct {
	width     int
	height    int
	buffer    [][]rune
	scale     float64
	minScale  float64
	maxScale  float64
	centerPos physics.Vector2D
	overlay   string
}

// NewTerminalRenderer creates a new terminal renderer with the specified
// dimensions. Scale is world units per character cell.
func NewTerminalRenderer(width, height int, scale float64) *TerminalRenderer {
	buffer := make([][]rune, height)
	for i := range buffer {
		buffer[i] = make([]rune, width)
	}

	return &TerminalRenderer{
		width:    width,
		height:   height,
		buffer:   buffer,
		scale:    scale,
		minScale: scale / 8,
		maxScale: scale * 8,
	}
}

// SetCenter sets the center position of the view.
func (r *TerminalRenderer) SetCenter(pos physics.Vector2D) {
	r.centerPos = pos
}

// Pan shifts the view center by the given world-space offset.
func (r *TerminalRenderer) Pan(dx, dy float64) {
	r.centerPos.X += dx
	r.centerPos.Y += dy
}

// Zoom adjusts the scale; positive delta zooms in. The scale is clamped
// so the view can neither collapse nor vanish.
func (r *TerminalRenderer) Zoom(delta float64) {
	scale := r.scale * (1 - delta*0.1)
	if scale < r.minScale {
		scale = r.minScale
	}
	if scale > r.maxScale {
		scale = r.maxScale
	}
	r.scale = scale
}

// SetOverlay sets the status line printed under the view.
func (r *TerminalRenderer) SetOverlay(text string) {
	r.overlay = text
}

// worldToScreen converts world coordinates to buffer coordinates. World
// Y points up, screen Y points down.
func (r *TerminalRenderer) worldToScreen(pos physics.Vector2D) (int, int) {
	screenX := int((pos.X-r.centerPos.X)/r.scale + float64(r.width)/2)
	screenY := int((r.centerPos.Y-pos.Y)/r.scale + float64(r.height)/2)
	return screenX, screenY
}

// plot writes a rune if the cell is inside the buffer.
func (r *TerminalRenderer) plot(x, y int, symbol rune) {
	if x >= 0 && x < r.width && y >= 0 && y < r.height {
		r.buffer[y][x] = symbol
	}
}

// Clear implements entity.Renderer.
func (r *TerminalRenderer) Clear() {
	for y := range r.buffer {
		for x := range r.buffer[y] {
			r.buffer[y][x] = ' '
		}
	}
}

// Present implements entity.Renderer.
func (r *TerminalRenderer) Present() {
	// Clear terminal
	fmt.Print("\033[H\033[2J")

	fmt.Println("+" + strings.Repeat("-", r.width) + "+")
	for y := range r.buffer {
		fmt.Print("|")
		for x := range r.buffer[y] {
			fmt.Print(string(r.buffer[y][x]))
		}
		fmt.Println("|")
	}
	fmt.Println("+" + strings.Repeat("-", r.width) + "+")

	if r.overlay != "" {
		fmt.Println(r.overlay)
	}
}

// RenderBody implements entity.Renderer. Bodies draw as a filled disc of
// O runes sized by their radius.
func (r *TerminalRenderer) RenderBody(body *entity.Body) {
	cells := int(body.Radius() / r.scale)
	cx, cy := r.worldToScreen(body.Position)

	if cells < 1 {
		r.plot(cx, cy, 'O')
		return
	}
	for dy := -cells; dy <= cells; dy++ {
		for dx := -cells; dx <= cells; dx++ {
			if dx*dx+dy*dy <= cells*cells {
				r.plot(cx+dx, cy+dy, 'O')
			}
		}
	}
}

// RenderPlayer implements entity.Renderer. Living ships draw as their
// 1-based index, dead ones as x.
func (r *TerminalRenderer) RenderPlayer(player *entity.Player) {
	x, y := r.worldToScreen(player.Position)

	symbol := 'x'
	if player.Alive {
		symbol = rune('1' + player.Index%9)
	}
	r.plot(x, y, symbol)
}

// RenderProjectile implements entity.Renderer. The trail draws as dots
// with the projectile head as *.
func (r *TerminalRenderer) RenderProjectile(projectile *entity.Projectile) {
	for _, pos := range projectile.Trail() {
		x, y := r.worldToScreen(pos)
		r.plot(x, y, '.')
	}

	x, y := r.worldToScreen(projectile.Position)
	r.plot(x, y, '*')
}
