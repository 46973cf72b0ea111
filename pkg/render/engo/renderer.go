// pkg/render/engo/renderer.go
package engo

import (
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-gravwars/pkg/engine"
	"github.com/opd-ai/go-gravwars/pkg/physics"
)

// renderEntity pairs an ecs entity with its components so they can be
// updated in place each frame.
type renderEntity struct {
	basic  ecs.BasicEntity
	render common.RenderComponent
	space  common.SpaceComponent
}

// EngoRenderer draws the game snapshot with procedural shapes: discs for
// bodies, triangles for ships, a dotted line for the projectile trail.
type EngoRenderer struct {
	world        *ecs.World
	renderSystem *common.RenderSystem
	camera       *CameraSystem

	bodyEntities []*renderEntity
	shipEntities []*renderEntity
	trailDots    []*renderEntity
	head         *renderEntity
}

// NewEngoRenderer creates a renderer drawing through the given camera.
func NewEngoRenderer(world *ecs.World, camera *CameraSystem) *EngoRenderer {
	return &EngoRenderer{
		world:  world,
		camera: camera,
	}
}

// Initialize hooks the renderer into the world's render system.
func (r *EngoRenderer) Initialize(renderSystem *common.RenderSystem) {
	r.renderSystem = renderSystem
}

// Sync redraws the scene from a snapshot. Bodies and ships are created
// once and repositioned; trail dots grow with the trail and are removed
// when the projectile goes away.
func (r *EngoRenderer) Sync(snap engine.GameSnapshot) {
	r.syncBodies(snap.Bodies)
	r.syncShips(snap.Players)
	r.syncProjectile(snap.Projectile)
}

func (r *EngoRenderer) syncBodies(bodies []engine.BodySnapshot) {
	for len(r.bodyEntities) < len(bodies) {
		r.bodyEntities = append(r.bodyEntities, r.addShape(common.Circle{}, color.RGBA{150, 140, 120, 255}))
	}
	for i, body := range bodies {
		e := r.bodyEntities[i]
		size := r.camera.WorldScale(body.Radius * 2)
		r.place(e, physics.Vector2D{X: body.X, Y: body.Y}, size, size)
	}
}

func (r *EngoRenderer) syncShips(players []engine.PlayerSnapshot) {
	for len(r.shipEntities) < len(players) {
		r.shipEntities = append(r.shipEntities, r.addShape(
			common.ComplexTriangles{Points: shipOutline()},
			color.RGBA{255, 255, 255, 255},
		))
	}
	for i, player := range players {
		e := r.shipEntities[i]
		e.render.Color = shipColor(player)
		size := r.camera.WorldScale(2)
		r.place(e, physics.Vector2D{X: player.X, Y: player.Y}, size, size)
	}
}

func (r *EngoRenderer) syncProjectile(p *engine.ProjectileSnapshot) {
	if p == nil {
		r.clearProjectile()
		return
	}

	for len(r.trailDots) < len(p.Trail) {
		r.trailDots = append(r.trailDots, r.addShape(common.Circle{}, color.RGBA{200, 200, 200, 200}))
	}
	dot := r.camera.WorldScale(0.3)
	for i, pos := range p.Trail {
		r.place(r.trailDots[i], pos, dot, dot)
	}

	if r.head == nil {
		r.head = r.addShape(common.Circle{}, color.RGBA{255, 240, 120, 255})
	}
	size := r.camera.WorldScale(1)
	r.place(r.head, physics.Vector2D{X: p.X, Y: p.Y}, size, size)
}

// clearProjectile removes the trail and head between turns.
func (r *EngoRenderer) clearProjectile() {
	for _, dot := range r.trailDots {
		r.renderSystem.Remove(dot.basic)
	}
	r.trailDots = r.trailDots[:0]

	if r.head != nil {
		r.renderSystem.Remove(r.head.basic)
		r.head = nil
	}
}

// addShape creates an entity with the given drawable and registers it
// with the render system.
func (r *EngoRenderer) addShape(drawable common.Drawable, c color.Color) *renderEntity {
	e := &renderEntity{
		basic: ecs.NewBasic(),
		render: common.RenderComponent{
			Drawable: drawable,
			Color:    c,
		},
		space: common.SpaceComponent{},
	}
	r.renderSystem.Add(&e.basic, &e.render, &e.space)
	return e
}

// place positions an entity so the drawable is centered on the world
// position at the given pixel size.
func (r *EngoRenderer) place(e *renderEntity, worldPos physics.Vector2D, width, height float32) {
	screen := r.camera.WorldToScreen(worldPos)
	e.space.Position = engo.Point{X: screen.X - width/2, Y: screen.Y - height/2}
	e.space.Width = width
	e.space.Height = height
}

// shipColor tints a ship by its player color, dimmed when dead.
func shipColor(player engine.PlayerSnapshot) color.Color {
	if !player.Alive {
		return color.RGBA{80, 80, 80, 255}
	}
	return color.RGBA{player.Color.R, player.Color.G, player.Color.B, 255}
}

// shipOutline returns a unit triangle pointing up.
func shipOutline() []engo.Point {
	return []engo.Point{
		{X: 0.5, Y: 0},
		{X: 0, Y: 1},
		{X: 1, Y: 1},
	}
}
