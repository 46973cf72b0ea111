// pkg/entity/renderer.go
package entity

type Renderer interface {
	Clear()
	Present()
	RenderBody(body *Body)
	RenderPlayer(player *Player)
	RenderProjectile(projectile *Projectile)
}
