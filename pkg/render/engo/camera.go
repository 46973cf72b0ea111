// pkg/render/engo/camera.go
package engo

import (
	"sync"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-gravwars/pkg/physics"
)

// CameraSystem owns the view transform for the engo surface. It is the
// target of the engine's forwarded Pan and Zoom calls, which may arrive
// from outside the render loop, so its state is mutex-guarded.
type CameraSystem struct {
	mu sync.Mutex

	// View state, world units
	center physics.Vector2D

	zoom    float32
	minZoom float32
	maxZoom float32

	// Pixels per world unit at zoom 1
	baseScale float32
}

// NewCameraSystem creates a camera centered on the world origin.
func NewCameraSystem(baseScale float32) *CameraSystem {
	return &CameraSystem{
		zoom:      1.0,
		minZoom:   0.1,
		maxZoom:   8.0,
		baseScale: baseScale,
	}
}

// Add satisfies the ecs.System interface
func (cs *CameraSystem) Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent) {
	// Not used for camera system
}

// Remove satisfies the ecs.System interface
func (cs *CameraSystem) Remove(basic ecs.BasicEntity) {
	// Not used for camera system
}

// Update handles direct camera input: mouse wheel zoom and the reset key.
func (cs *CameraSystem) Update(dt float32) {
	if scrollY := engo.Input.Mouse.ScrollY; scrollY != 0 {
		cs.Zoom(float64(scrollY))
	}
	if engo.Input.Button("resetView").JustPressed() {
		cs.Reset()
	}
}

// Pan shifts the view center by a world-space offset. Implements
// engine.CameraController.
func (cs *CameraSystem) Pan(dx, dy float64) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.center.X += dx
	cs.center.Y += dy
}

// Zoom scales the view; positive delta zooms in. Implements
// engine.CameraController.
func (cs *CameraSystem) Zoom(delta float64) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.zoom = cs.clampZoom(cs.zoom * float32(1.0+delta*0.1))
}

// Reset recenters the view and restores the default zoom.
func (cs *CameraSystem) Reset() {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.center = physics.Vector2D{}
	cs.zoom = 1.0
}

// Center returns the current view center in world units.
func (cs *CameraSystem) Center() physics.Vector2D {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.center
}

// GetZoom returns the current zoom level.
func (cs *CameraSystem) GetZoom() float32 {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.zoom
}

// SetZoomLimits sets the minimum and maximum zoom levels.
func (cs *CameraSystem) SetZoomLimits(min, max float32) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.minZoom = min
	cs.maxZoom = max
	cs.zoom = cs.clampZoom(cs.zoom)
}

// clampZoom ensures zoom is within valid bounds. Callers hold cs.mu.
func (cs *CameraSystem) clampZoom(zoom float32) float32 {
	if zoom < cs.minZoom {
		return cs.minZoom
	}
	if zoom > cs.maxZoom {
		return cs.maxZoom
	}
	return zoom
}

// scale returns pixels per world unit at the current zoom. Callers hold cs.mu.
func (cs *CameraSystem) scale() float32 {
	return cs.baseScale * cs.zoom
}

// WorldToScreen converts world coordinates to screen coordinates. World
// Y points up; screen Y points down.
func (cs *CameraSystem) WorldToScreen(worldPos physics.Vector2D) engo.Point {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	s := float64(cs.scale())
	screenX := (worldPos.X-cs.center.X)*s + float64(engo.GameWidth()/2)
	screenY := (cs.center.Y-worldPos.Y)*s + float64(engo.GameHeight()/2)

	return engo.Point{X: float32(screenX), Y: float32(screenY)}
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (cs *CameraSystem) ScreenToWorld(screenPos engo.Point) physics.Vector2D {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	s := float64(cs.scale())
	worldX := (float64(screenPos.X)-float64(engo.GameWidth()/2))/s + cs.center.X
	worldY := cs.center.Y - (float64(screenPos.Y)-float64(engo.GameHeight()/2))/s

	return physics.Vector2D{X: worldX, Y: worldY}
}

// WorldScale converts a world-space length to pixels.
func (cs *CameraSystem) WorldScale(length float64) float32 {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return float32(length) * cs.scale()
}

// SetupCameraControls sets up camera control key bindings.
func SetupCameraControls() {
	engo.Input.RegisterButton("resetView", engo.KeyR)
}
