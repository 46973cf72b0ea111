// pkg/engine/game.go
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/opd-ai/go-gravwars/pkg/config"
	"github.com/opd-ai/go-gravwars/pkg/entity"
	"github.com/opd-ai/go-gravwars/pkg/event"
	"github.com/opd-ai/go-gravwars/pkg/logging"
	"github.com/opd-ai/go-gravwars/pkg/physics"
	"github.com/opd-ai/go-gravwars/pkg/validation"
)

// ErrFireRejected marks a Fire call the engine refused: wrong phase,
// out-of-range power, or non-finite parameters. The game state is
// unchanged after a rejection.
var ErrFireRejected = errors.New("fire rejected")

// CameraController receives pan and zoom commands forwarded by the game.
// Implementations live in the presentation layer; the engine never reads
// camera state back.
type CameraController interface {
	Pan(dx, dy float64)
	Zoom(delta float64)
}

// Game represents the core game state and turn logic. All mutation goes
// through Fire and Tick under EntityLock; Snapshot takes a read lock, so
// a render loop may observe the game concurrently with a tick loop.
type Game struct {
	Config     *config.GameConfig
	Players    []*entity.Player
	Bodies     []*entity.Body
	Projectile *entity.Projectile
	Field      *physics.GravityField
	Bounds     physics.Rect
	EventBus   *event.Bus
	EntityLock sync.RWMutex

	phase         Phase
	currentPlayer int
	winner        int // player index, -1 until GameOver
	overlay       string
	camera        CameraController
	logger        *logging.Logger
	ctx           context.Context
}

// NewGame creates a new game from the configuration. The configuration is
// validated first; an invalid scene is fatal and no game is returned.
func NewGame(cfg *config.GameConfig) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	game := &Game{
		Config:   cfg,
		EventBus: event.NewEventBus(),
		Bounds: physics.Rect{
			Center: physics.Vector2D{X: 0, Y: 0},
			Width:  cfg.World.Width,
			Height: cfg.World.Height,
		},
		phase:  PhaseAiming,
		winner: -1,
		logger: logging.NewLogger(),
		ctx:    logging.WithCorrelationID(context.Background(), ""),
	}

	game.initBodies()
	if err := game.initPlayers(); err != nil {
		return nil, err
	}

	attractors := make([]physics.Attractor, len(game.Bodies))
	for i, body := range game.Bodies {
		attractors[i] = body.Attractor()
	}
	game.Field = physics.NewGravityField(cfg.Tuning.GravityConstant, cfg.Tuning.SofteningRadius, attractors)

	game.overlay = game.turnPrompt()
	game.EventBus.Publish(&event.BaseEvent{EventType: event.GameStarted, Source: game})
	game.logger.Info(game.ctx, "game created",
		"bodies", len(game.Bodies),
		"players", len(game.Players),
	)

	return game, nil
}

// initBodies builds the body entities from the scene configuration.
func (g *Game) initBodies() {
	for _, bc := range g.Config.Bodies {
		body := entity.NewBody(
			entity.GenerateID(),
			bc.Name,
			physics.Vector2D{X: bc.X, Y: bc.Y},
			bc.Radius,
			bc.Mass,
		)
		g.Bodies = append(g.Bodies, body)
	}
}

// initPlayers builds the player entities, each standing on the surface of
// its configured home body.
func (g *Game) initPlayers() error {
	for i, pc := range g.Config.Players {
		name, err := validation.ValidatePlayerName(pc.Name)
		if err != nil {
			return fmt.Errorf("%w: player %d: %v", config.ErrInvalidScene, i, err)
		}

		home := g.Bodies[pc.BodyIndex]
		player := entity.NewPlayer(
			entity.GenerateID(),
			i,
			name,
			pc.Color,
			pc.BodyIndex,
			home.SurfacePoint(pc.SurfaceAngle),
		)
		g.Players = append(g.Players, player)
	}
	return nil
}

// SetCamera installs the presentation camera that Pan and Zoom forward to.
func (g *Game) SetCamera(camera CameraController) {
	g.EntityLock.Lock()
	defer g.EntityLock.Unlock()
	g.camera = camera
}

// Fire launches the current player's projectile. Only legal in the Aiming
// phase; power must lie in [0, MaxPower] and both parameters must be
// finite. Rejected calls return ErrFireRejected and change nothing.
func (g *Game) Fire(angle, power float64) error {
	g.EntityLock.Lock()
	defer g.EntityLock.Unlock()

	if g.phase != PhaseAiming {
		return fmt.Errorf("%w: phase is %s", ErrFireRejected, g.phase)
	}
	if err := validation.ValidateFireParams(angle, power, g.Config.Tuning.MaxPower); err != nil {
		return fmt.Errorf("%w: %v", ErrFireRejected, err)
	}

	shooter := g.Players[g.currentPlayer]
	tuning := g.Config.Tuning

	// Spawn past the ship along the firing direction so the shot clears
	// the owner's own body.
	launch := shooter.Position.Add(physics.FromAngle(angle, tuning.LaunchOffset))
	velocity := physics.FromAngle(angle, power*tuning.VelocityScale)

	g.Projectile = entity.NewProjectile(entity.GenerateID(), g.currentPlayer, launch, velocity, tuning.MaxLifetime)
	g.phase = PhaseSimulating
	g.overlay = fmt.Sprintf("%s fires!", shooter.Name)

	g.EventBus.Publish(event.NewProjectileEvent(event.ProjectileFired, g, g.currentPlayer, angle, power))
	g.logger.Info(g.ctx, "projectile fired",
		"player", g.currentPlayer,
		"angle", angle,
		"power", power,
	)
	return nil
}

// Tick advances the simulation by dt seconds. Outside the Simulating and
// Resolved phases it is a no-op. In Simulating it runs one integration and
// collision step; in Resolved it hands the turn to the next player or ends
// the game.
func (g *Game) Tick(dt float64) {
	g.EntityLock.Lock()
	defer g.EntityLock.Unlock()

	switch g.phase {
	case PhaseSimulating:
		g.stepProjectile(dt)
	case PhaseResolved:
		g.advanceTurn()
	}
}

// stepProjectile moves the projectile one step and resolves any collision,
// bounds exit, or lifetime expiry that lands on this tick.
func (g *Game) stepProjectile(dt float64) {
	p := g.Projectile
	expired := p.Advance(g.Field, dt)

	// Sweep the full segment even on the expiry tick: a hit inside the
	// step happens before the self-destruct at its end.
	from := p.PreviousPosition()
	to := p.Position
	if hitIndex, sweep := g.sweepBodies(from, to); hitIndex >= 0 {
		g.resolveBodyHit(hitIndex, sweep.Point)
		return
	}

	if !g.Bounds.Contains(to) {
		g.resolveOutOfBounds(to)
		return
	}

	if expired {
		g.resolveExpiry()
	}
}

// sweepBodies tests the segment against every body and returns the index
// of the earliest hit, or -1. Equal crossing times break toward the body
// nearest the segment start.
func (g *Game) sweepBodies(from, to physics.Vector2D) (int, physics.SweepResult) {
	best := -1
	var bestSweep physics.SweepResult

	for i, body := range g.Bodies {
		sweep := physics.SweepCircle(from, to, body.Collider)
		if !sweep.Hit {
			continue
		}
		if best == -1 || sweep.T < bestSweep.T {
			best, bestSweep = i, sweep
			continue
		}
		if sweep.T == bestSweep.T {
			if from.Distance(body.Position) < from.Distance(g.Bodies[best].Position) {
				best, bestSweep = i, sweep
			}
		}
	}
	return best, bestSweep
}

// resolveBodyHit applies an impact: the trail is truncated at the contact
// point and every player standing within the damage radius is eliminated.
func (g *Game) resolveBodyHit(bodyIndex int, point physics.Vector2D) {
	p := g.Projectile
	p.TruncateAt(point)
	p.Active = false

	shooter := g.Players[p.Owner]
	body := g.Bodies[bodyIndex]
	g.overlay = fmt.Sprintf("%s's shot hits %s.", shooter.Name, body.Name)

	eliminated := 0
	for _, player := range g.Players {
		if !player.Alive {
			continue
		}
		if player.Position.Distance(point) <= g.Config.Tuning.DamageRadius {
			player.Eliminate()
			eliminated++
			g.overlay = fmt.Sprintf("%s's shot hits %s. %s is eliminated!", shooter.Name, body.Name, player.Name)
			g.EventBus.Publish(event.NewPlayerEvent(event.PlayerEliminated, g, player.Index))
			g.logger.Info(g.ctx, "player eliminated",
				"player", player.Index,
				"shooter", p.Owner,
			)
		}
	}

	g.EventBus.Publish(event.NewImpactEvent(event.BodyHit, g, bodyIndex, p.Owner, point.X, point.Y))
	g.logger.Debug(g.ctx, "projectile impact",
		"body", bodyIndex,
		"eliminated", eliminated,
	)
	g.phase = PhaseResolved

	// A point-blank shot can take its own shooter. Hand the turn off in
	// the same tick so the current player is never dead outside GameOver.
	if !g.Players[g.currentPlayer].Alive {
		if aliveCount(g.Players) == 0 {
			g.endGame()
			return
		}
		g.currentPlayer = nextAlive(g.Players, g.currentPlayer)
	}
}

// resolveOutOfBounds removes a projectile that left the world rectangle.
func (g *Game) resolveOutOfBounds(point physics.Vector2D) {
	p := g.Projectile
	p.Active = false

	g.overlay = fmt.Sprintf("%s's shot drifts out of bounds.", g.Players[p.Owner].Name)
	g.EventBus.Publish(event.NewImpactEvent(event.OutOfBounds, g, -1, p.Owner, point.X, point.Y))
	g.phase = PhaseResolved
}

// resolveExpiry removes a projectile that ran out its maximum lifetime.
func (g *Game) resolveExpiry() {
	p := g.Projectile

	g.overlay = fmt.Sprintf("%s's shot self-destructs.", g.Players[p.Owner].Name)
	g.EventBus.Publish(event.NewProjectileEvent(event.ProjectileExpired, g, p.Owner, 0, 0))
	g.phase = PhaseResolved
}

// advanceTurn leaves the Resolved phase: the game ends when at most one
// player remains, otherwise the next alive player starts aiming.
func (g *Game) advanceTurn() {
	// Advance from the shooter, not currentPlayer: a self-hit already
	// handed the turn off, and advancing again would skip a player.
	from := g.currentPlayer
	if g.Projectile != nil {
		from = g.Projectile.Owner
	}
	g.Projectile = nil

	if aliveCount(g.Players) <= 1 {
		g.endGame()
		return
	}

	g.currentPlayer = nextAlive(g.Players, from)
	g.phase = PhaseAiming
	g.overlay = g.turnPrompt()
	g.EventBus.Publish(event.NewPlayerEvent(event.TurnAdvanced, g, g.currentPlayer))
}

// endGame closes out the match: the sole survivor wins, or nobody does.
func (g *Game) endGame() {
	g.phase = PhaseGameOver
	g.winner = soleSurvivor(g.Players)
	if g.winner >= 0 {
		g.overlay = fmt.Sprintf("%s wins!", g.Players[g.winner].Name)
	} else {
		g.overlay = "Nobody survives."
	}
	g.EventBus.Publish(event.NewPlayerEvent(event.GameEnded, g, g.winner))
	g.logger.Info(g.ctx, "game ended", "winner", g.winner)
}

// turnPrompt builds the overlay text shown while aiming.
func (g *Game) turnPrompt() string {
	return fmt.Sprintf("%s's turn. Aim and fire.", g.Players[g.currentPlayer].Name)
}

// Pan forwards a camera pan to the presentation adapter. It never touches
// simulation state and is legal in any phase.
func (g *Game) Pan(dx, dy float64) {
	g.EntityLock.RLock()
	camera := g.camera
	g.EntityLock.RUnlock()

	if camera != nil {
		camera.Pan(dx, dy)
	}
}

// Zoom forwards a camera zoom to the presentation adapter.
func (g *Game) Zoom(delta float64) {
	g.EntityLock.RLock()
	camera := g.camera
	g.EntityLock.RUnlock()

	if camera != nil {
		camera.Zoom(delta)
	}
}

// Phase returns the current turn phase.
func (g *Game) Phase() Phase {
	g.EntityLock.RLock()
	defer g.EntityLock.RUnlock()
	return g.phase
}

// CurrentPlayer returns the index of the player whose turn it is.
func (g *Game) CurrentPlayer() int {
	g.EntityLock.RLock()
	defer g.EntityLock.RUnlock()
	return g.currentPlayer
}

// Snapshot returns a read-only copy of the observable game state.
func (g *Game) Snapshot() GameSnapshot {
	g.EntityLock.RLock()
	defer g.EntityLock.RUnlock()

	snapshot := GameSnapshot{
		Phase:         g.phase,
		CurrentPlayer: g.currentPlayer,
		CurrentColor:  g.Players[g.currentPlayer].Color,
		AimingEnabled: g.phase == PhaseAiming,
		Overlay:       g.overlay,
		Winner:        g.winner,
		World: WorldSnapshot{
			Width:  g.Config.World.Width,
			Height: g.Config.World.Height,
		},
	}

	for _, player := range g.Players {
		snapshot.Players = append(snapshot.Players, PlayerSnapshot{
			Index: player.Index,
			Name:  player.Name,
			Color: player.Color,
			Alive: player.Alive,
			X:     player.Position.X,
			Y:     player.Position.Y,
		})
	}

	for _, body := range g.Bodies {
		snapshot.Bodies = append(snapshot.Bodies, BodySnapshot{
			Name:   body.Name,
			X:      body.Position.X,
			Y:      body.Position.Y,
			Radius: body.Radius(),
			Mass:   body.Mass,
		})
	}

	if p := g.Projectile; p != nil {
		trail := make([]physics.Vector2D, len(p.Trail()))
		copy(trail, p.Trail())
		snapshot.Projectile = &ProjectileSnapshot{
			Owner:  p.Owner,
			X:      p.Position.X,
			Y:      p.Position.Y,
			VX:     p.Velocity.X,
			VY:     p.Velocity.Y,
			Active: p.Active,
			Trail:  trail,
		}
	}

	return snapshot
}

// GameSnapshot is the read-only view handed to renderers and UIs.
type GameSnapshot struct {
	Phase         Phase
	CurrentPlayer int
	CurrentColor  entity.Color
	AimingEnabled bool
	Overlay       string
	Winner        int
	World         WorldSnapshot
	Players       []PlayerSnapshot
	Bodies        []BodySnapshot
	Projectile    *ProjectileSnapshot
}

// WorldSnapshot carries the world bounds.
type WorldSnapshot struct {
	Width  float64
	Height float64
}

// PlayerSnapshot is the observable state of one player.
type PlayerSnapshot struct {
	Index int
	Name  string
	Color entity.Color
	Alive bool
	X, Y  float64
}

// BodySnapshot is the observable state of one body.
type BodySnapshot struct {
	Name   string
	X, Y   float64
	Radius float64
	Mass   float64
}

// ProjectileSnapshot is the observable state of the projectile in flight,
// including its recorded trail, oldest position first.
type ProjectileSnapshot struct {
	Owner  int
	X, Y   float64
	VX, VY float64
	Active bool
	Trail  []physics.Vector2D
}
