// pkg/render/renderer.go
package render

import (
	"context"

	"github.com/opd-ai/go-gravwars/pkg/entity"
	"github.com/opd-ai/go-gravwars/pkg/logging"
)

// NullRenderer is a simple implementation of entity.Renderer.
type NullRenderer struct {
	logger *logging.Logger
}

// NewNullRenderer creates a new NullRenderer with structured logging.
func NewNullRenderer() *NullRenderer {
	return &NullRenderer{
		logger: logging.NewLogger(),
	}
}

// Clear implements entity.Renderer.
func (d *NullRenderer) Clear() {
	ctx := context.Background()
	d.logger.Debug(ctx, "Clear called")
}

// Present implements entity.Renderer.
func (d *NullRenderer) Present() {
	ctx := context.Background()
	d.logger.Debug(ctx, "Present called")
}

// RenderBody implements entity.Renderer.
func (d *NullRenderer) RenderBody(body *entity.Body) {
	ctx := context.Background()
	if body == nil {
		d.logger.Debug(ctx, "RenderBody called with nil body")
		return
	}
	d.logger.Debug(ctx, "RenderBody called",
		"body_id", body.ID,
		"body_name", body.Name,
	)
}

// RenderPlayer implements entity.Renderer.
func (d *NullRenderer) RenderPlayer(player *entity.Player) {
	ctx := context.Background()
	if player == nil {
		d.logger.Debug(ctx, "RenderPlayer called with nil player")
		return
	}
	d.logger.Debug(ctx, "RenderPlayer called",
		"player_id", player.ID,
		"player_index", player.Index,
		"alive", player.Alive,
	)
}

// RenderProjectile implements entity.Renderer.
func (d *NullRenderer) RenderProjectile(projectile *entity.Projectile) {
	ctx := context.Background()
	if projectile == nil {
		d.logger.Debug(ctx, "RenderProjectile called with nil projectile")
		return
	}
	d.logger.Debug(ctx, "RenderProjectile called",
		"projectile_id", projectile.ID,
		"owner", projectile.Owner,
	)
}

// NullRendererInstance is a global instance of NullRenderer for convenience.
var NullRendererInstance entity.Renderer = NewNullRenderer()
