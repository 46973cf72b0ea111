// pkg/engine/game_test.go
package engine

import (
	"errors"
	"math"
	"testing"

	"github.com/opd-ai/go-gravwars/pkg/config"
	"github.com/opd-ai/go-gravwars/pkg/entity"
	"github.com/opd-ai/go-gravwars/pkg/event"
)

// twoBodyConfig builds a symmetric duel scene: the players face each
// other across the x axis, so a full-power shot along the axis stays on
// it and strikes the opposing body at the defender's feet.
func twoBodyConfig() *config.GameConfig {
	tuning := config.DefaultTuning()
	return &config.GameConfig{
		World: config.WorldConfig{Width: 200, Height: 120},
		Bodies: []config.BodyConfig{
			{Name: "Aster", X: -50, Y: 0, Radius: 5, Mass: 10},
			{Name: "Boreas", X: 50, Y: 0, Radius: 5, Mass: 10},
		},
		Players: []config.PlayerConfig{
			{Name: "Player 1", Color: entity.PlayerColors[0], BodyIndex: 0, SurfaceAngle: 0},
			{Name: "Player 2", Color: entity.PlayerColors[1], BodyIndex: 1, SurfaceAngle: math.Pi},
		},
		Tuning: tuning,
	}
}

// threeBodyConfig places three players on the tops of three bodies in a
// row, with empty sky above each.
func threeBodyConfig() *config.GameConfig {
	return &config.GameConfig{
		World: config.WorldConfig{Width: 200, Height: 120},
		Bodies: []config.BodyConfig{
			{Name: "A", X: -60, Y: 0, Radius: 5, Mass: 10},
			{Name: "B", X: 0, Y: 0, Radius: 5, Mass: 10},
			{Name: "C", X: 60, Y: 0, Radius: 5, Mass: 10},
		},
		Players: []config.PlayerConfig{
			{Name: "Player 1", Color: entity.PlayerColors[0], BodyIndex: 0, SurfaceAngle: math.Pi / 2},
			{Name: "Player 2", Color: entity.PlayerColors[1], BodyIndex: 1, SurfaceAngle: math.Pi / 2},
			{Name: "Player 3", Color: entity.PlayerColors[2], BodyIndex: 2, SurfaceAngle: math.Pi / 2},
		},
		Tuning: config.DefaultTuning(),
	}
}

// runUntilResolved ticks the game at the configured step until it leaves
// Simulating.
func runUntilResolved(t *testing.T, g *Game) {
	t.Helper()
	dt := g.Config.Tuning.TimeStep
	for i := 0; i < 5000; i++ {
		if g.Phase() != PhaseSimulating {
			return
		}
		g.Tick(dt)
	}
	t.Fatal("simulation did not resolve within 5000 ticks")
}

func TestNewGame(t *testing.T) {
	g, err := NewGame(twoBodyConfig())
	if err != nil {
		t.Fatalf("NewGame() error = %v", err)
	}

	if g.Phase() != PhaseAiming {
		t.Errorf("initial phase = %v, expected Aiming", g.Phase())
	}
	if g.CurrentPlayer() != 0 {
		t.Errorf("initial player = %d, expected 0", g.CurrentPlayer())
	}
	if len(g.Bodies) != 2 || len(g.Players) != 2 {
		t.Errorf("got %d bodies, %d players", len(g.Bodies), len(g.Players))
	}

	// Players stand on the configured surface points.
	p1 := g.Players[0]
	if p1.Position.X != -45 || p1.Position.Y != 0 {
		t.Errorf("player 1 at (%g, %g), expected (-45, 0)", p1.Position.X, p1.Position.Y)
	}
}

func TestNewGame_RejectsInvalidScene(t *testing.T) {
	cfg := twoBodyConfig()
	cfg.Bodies[0].Mass = -1

	if _, err := NewGame(cfg); !errors.Is(err, config.ErrInvalidScene) {
		t.Errorf("NewGame() error = %v, expected ErrInvalidScene", err)
	}
}

func TestFire_Rejections(t *testing.T) {
	g, err := NewGame(twoBodyConfig())
	if err != nil {
		t.Fatalf("NewGame() error = %v", err)
	}

	tests := []struct {
		name  string
		angle float64
		power float64
	}{
		{"power above max", 0, g.Config.Tuning.MaxPower + 0.1},
		{"negative power", 0, -1},
		{"nan angle", math.NaN(), 5},
		{"inf power", 0, math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := g.Fire(tt.angle, tt.power); !errors.Is(err, ErrFireRejected) {
				t.Errorf("Fire(%v, %v) error = %v, expected ErrFireRejected", tt.angle, tt.power, err)
			}
			if g.Phase() != PhaseAiming {
				t.Errorf("rejected fire changed phase to %v", g.Phase())
			}
			if g.Projectile != nil {
				t.Error("rejected fire spawned a projectile")
			}
		})
	}
}

func TestFire_OnlyWhileAiming(t *testing.T) {
	g, err := NewGame(twoBodyConfig())
	if err != nil {
		t.Fatalf("NewGame() error = %v", err)
	}

	if err := g.Fire(math.Pi/2, 5); err != nil {
		t.Fatalf("first Fire() error = %v", err)
	}
	if g.Phase() != PhaseSimulating {
		t.Fatalf("phase = %v after fire, expected Simulating", g.Phase())
	}

	if err := g.Fire(math.Pi/2, 5); !errors.Is(err, ErrFireRejected) {
		t.Errorf("Fire() during Simulating error = %v, expected ErrFireRejected", err)
	}
}

func TestFire_SpawnsOffsetProjectile(t *testing.T) {
	g, err := NewGame(twoBodyConfig())
	if err != nil {
		t.Fatalf("NewGame() error = %v", err)
	}

	if err := g.Fire(0, 10); err != nil {
		t.Fatalf("Fire() error = %v", err)
	}

	p := g.Projectile
	if p == nil {
		t.Fatal("no projectile after fire")
	}
	// Launch offset 2 east of the ship at (-45, 0).
	if math.Abs(p.Position.X-(-43)) > 1e-9 || math.Abs(p.Position.Y) > 1e-9 {
		t.Errorf("projectile spawned at (%g, %g), expected (-43, 0)", p.Position.X, p.Position.Y)
	}
	// Speed = power * velocity scale.
	if math.Abs(p.Velocity.Length()-100) > 1e-9 {
		t.Errorf("launch speed = %g, expected 100", p.Velocity.Length())
	}
	if p.Owner != 0 {
		t.Errorf("projectile owner = %d, expected 0", p.Owner)
	}
}

func TestDirectHit_EliminatesDefenderAndEndsGame(t *testing.T) {
	g, err := NewGame(twoBodyConfig())
	if err != nil {
		t.Fatalf("NewGame() error = %v", err)
	}

	hits := 0
	g.EventBus.Subscribe(event.BodyHit, func(e event.Event) {
		hits++
		impact := e.(*event.ImpactEvent)
		if impact.BodyIndex != 1 {
			t.Errorf("impact on body %d, expected 1", impact.BodyIndex)
		}
	})

	// Straight shot down the axis into the opposing body.
	if err := g.Fire(0, 10); err != nil {
		t.Fatalf("Fire() error = %v", err)
	}
	runUntilResolved(t, g)

	if g.Phase() != PhaseResolved {
		t.Fatalf("phase = %v, expected Resolved", g.Phase())
	}
	if hits != 1 {
		t.Errorf("BodyHit published %d times, expected 1", hits)
	}
	if g.Players[1].Alive {
		t.Error("defender standing at the impact point should be eliminated")
	}
	if !g.Players[0].Alive {
		t.Error("shooter should survive a cross-map hit")
	}

	// One more tick leaves Resolved; with one player left the game ends.
	g.Tick(g.Config.Tuning.TimeStep)
	if g.Phase() != PhaseGameOver {
		t.Fatalf("phase = %v, expected GameOver", g.Phase())
	}
	snap := g.Snapshot()
	if snap.Winner != 0 {
		t.Errorf("winner = %d, expected 0", snap.Winner)
	}
}

func TestMiss_OutOfBoundsAdvancesTurn(t *testing.T) {
	g, err := NewGame(twoBodyConfig())
	if err != nil {
		t.Fatalf("NewGame() error = %v", err)
	}

	// Straight up into empty sky; exits the top bound.
	if err := g.Fire(math.Pi/2, 10); err != nil {
		t.Fatalf("Fire() error = %v", err)
	}
	runUntilResolved(t, g)

	if g.Phase() != PhaseResolved {
		t.Fatalf("phase = %v, expected Resolved", g.Phase())
	}
	if !g.Players[0].Alive || !g.Players[1].Alive {
		t.Error("a miss must not eliminate anyone")
	}

	g.Tick(g.Config.Tuning.TimeStep)
	if g.Phase() != PhaseAiming {
		t.Fatalf("phase = %v, expected Aiming", g.Phase())
	}
	if g.CurrentPlayer() != 1 {
		t.Errorf("current player = %d, expected 1", g.CurrentPlayer())
	}
	if g.Snapshot().Projectile != nil {
		t.Error("projectile should be cleared when the next turn starts")
	}
}

func TestExpiry_SelfDestructAdvancesTurn(t *testing.T) {
	cfg := twoBodyConfig()
	cfg.Tuning.MaxLifetime = 0.1

	g, err := NewGame(cfg)
	if err != nil {
		t.Fatalf("NewGame() error = %v", err)
	}

	expired := 0
	g.EventBus.Subscribe(event.ProjectileExpired, func(event.Event) { expired++ })

	// Zero power: the shot hangs near the spawn point until its lifetime
	// runs out.
	if err := g.Fire(math.Pi/2, 0); err != nil {
		t.Fatalf("Fire() error = %v", err)
	}
	runUntilResolved(t, g)

	if expired != 1 {
		t.Errorf("ProjectileExpired published %d times, expected 1", expired)
	}
	if !g.Players[0].Alive || !g.Players[1].Alive {
		t.Error("self-destruct must not eliminate anyone")
	}

	g.Tick(g.Config.Tuning.TimeStep)
	if g.CurrentPlayer() != 1 {
		t.Errorf("current player = %d, expected 1", g.CurrentPlayer())
	}
}

func TestSelfHit_HandsTurnOffInSameTick(t *testing.T) {
	g, err := NewGame(twoBodyConfig())
	if err != nil {
		t.Fatalf("NewGame() error = %v", err)
	}

	// Firing back into the shooter's own body spawns the shot inside it,
	// so the first tick resolves a point-blank self-hit.
	if err := g.Fire(math.Pi, 1); err != nil {
		t.Fatalf("Fire() error = %v", err)
	}
	runUntilResolved(t, g)

	if g.Phase() != PhaseResolved {
		t.Fatalf("phase = %v, expected Resolved", g.Phase())
	}
	if g.Players[0].Alive {
		t.Error("shooter standing at the impact point should be eliminated")
	}

	// The Resolved snapshot must already show the surviving player as
	// current, never the dead shooter.
	snap := g.Snapshot()
	if snap.CurrentPlayer != 1 {
		t.Errorf("current player = %d, expected 1", snap.CurrentPlayer)
	}
	if !snap.Players[snap.CurrentPlayer].Alive {
		t.Error("resolved snapshot reports a dead current player")
	}
	if snap.CurrentColor != g.Players[1].Color {
		t.Errorf("current color = %+v, expected player 2's", snap.CurrentColor)
	}

	g.Tick(g.Config.Tuning.TimeStep)
	if g.Phase() != PhaseGameOver {
		t.Fatalf("phase = %v, expected GameOver", g.Phase())
	}
	if winner := g.Snapshot().Winner; winner != 1 {
		t.Errorf("winner = %d, expected 1", winner)
	}
}

func TestSelfHit_MutualDestructionEndsGame(t *testing.T) {
	// Both players share one body, close enough that a point-blank blast
	// catches them both.
	cfg := &config.GameConfig{
		World: config.WorldConfig{Width: 200, Height: 120},
		Bodies: []config.BodyConfig{
			{Name: "Aster", X: 0, Y: 0, Radius: 5, Mass: 10},
		},
		Players: []config.PlayerConfig{
			{Name: "Player 1", Color: entity.PlayerColors[0], BodyIndex: 0, SurfaceAngle: 0},
			{Name: "Player 2", Color: entity.PlayerColors[1], BodyIndex: 0, SurfaceAngle: 0.4},
		},
		Tuning: config.DefaultTuning(),
	}
	g, err := NewGame(cfg)
	if err != nil {
		t.Fatalf("NewGame() error = %v", err)
	}

	if err := g.Fire(math.Pi, 1); err != nil {
		t.Fatalf("Fire() error = %v", err)
	}
	runUntilResolved(t, g)

	if g.Phase() != PhaseGameOver {
		t.Fatalf("phase = %v, expected GameOver when nobody survives", g.Phase())
	}
	if g.Players[0].Alive || g.Players[1].Alive {
		t.Error("both players stood in the blast and should be eliminated")
	}
	if winner := g.Snapshot().Winner; winner != -1 {
		t.Errorf("winner = %d, expected -1", winner)
	}
}

func TestSelfHit_NextTurnDoesNotSkipAPlayer(t *testing.T) {
	g, err := NewGame(threeBodyConfig())
	if err != nil {
		t.Fatalf("NewGame() error = %v", err)
	}

	// Player 1 fires straight down into their own body. The turn hands
	// off to player 2 during resolution, and leaving Resolved must start
	// player 2's turn, not jump past them to player 3.
	if err := g.Fire(-math.Pi/2, 1); err != nil {
		t.Fatalf("Fire() error = %v", err)
	}
	runUntilResolved(t, g)

	if g.Players[0].Alive {
		t.Fatal("shooter standing at the impact point should be eliminated")
	}
	if got := g.Snapshot().CurrentPlayer; got != 1 {
		t.Errorf("resolved current player = %d, expected 1", got)
	}

	g.Tick(g.Config.Tuning.TimeStep)
	if g.Phase() != PhaseAiming {
		t.Fatalf("phase = %v, expected Aiming", g.Phase())
	}
	if got := g.CurrentPlayer(); got != 1 {
		t.Errorf("current player = %d, expected 1", got)
	}
}

func TestTurnOrder_ThreePlayersWrap(t *testing.T) {
	g, err := NewGame(threeBodyConfig())
	if err != nil {
		t.Fatalf("NewGame() error = %v", err)
	}

	fireMiss := func() {
		t.Helper()
		if err := g.Fire(math.Pi/2, 10); err != nil {
			t.Fatalf("Fire() error = %v", err)
		}
		runUntilResolved(t, g)
		g.Tick(g.Config.Tuning.TimeStep)
	}

	expected := []int{1, 2, 0}
	for _, want := range expected {
		fireMiss()
		if g.Phase() != PhaseAiming {
			t.Fatalf("phase = %v, expected Aiming", g.Phase())
		}
		if got := g.CurrentPlayer(); got != want {
			t.Fatalf("current player = %d, expected %d", got, want)
		}
	}
}

func TestTick_NoopOutsideSimulatingAndResolved(t *testing.T) {
	g, err := NewGame(twoBodyConfig())
	if err != nil {
		t.Fatalf("NewGame() error = %v", err)
	}

	before := g.Snapshot()
	g.Tick(g.Config.Tuning.TimeStep)
	after := g.Snapshot()

	if before.Phase != after.Phase || before.CurrentPlayer != after.CurrentPlayer {
		t.Error("Tick during Aiming must not change game state")
	}
}

type recordingCamera struct {
	panX, panY float64
	zoom       float64
}

func (c *recordingCamera) Pan(dx, dy float64) { c.panX += dx; c.panY += dy }
func (c *recordingCamera) Zoom(delta float64) { c.zoom += delta }

func TestPanZoom_ForwardedWithoutTouchingState(t *testing.T) {
	g, err := NewGame(twoBodyConfig())
	if err != nil {
		t.Fatalf("NewGame() error = %v", err)
	}

	camera := &recordingCamera{}
	g.SetCamera(camera)

	before := g.Snapshot()
	g.Pan(3, -2)
	g.Zoom(0.5)
	after := g.Snapshot()

	if camera.panX != 3 || camera.panY != -2 {
		t.Errorf("pan forwarded as (%g, %g), expected (3, -2)", camera.panX, camera.panY)
	}
	if camera.zoom != 0.5 {
		t.Errorf("zoom forwarded as %g, expected 0.5", camera.zoom)
	}
	if before.Phase != after.Phase || before.CurrentPlayer != after.CurrentPlayer {
		t.Error("pan/zoom must not alter simulation state")
	}
}

func TestPanZoom_SafeWithoutCamera(t *testing.T) {
	g, err := NewGame(twoBodyConfig())
	if err != nil {
		t.Fatalf("NewGame() error = %v", err)
	}

	// Must not panic before a camera is installed.
	g.Pan(1, 1)
	g.Zoom(-0.25)
}

func TestSnapshot_Contents(t *testing.T) {
	g, err := NewGame(twoBodyConfig())
	if err != nil {
		t.Fatalf("NewGame() error = %v", err)
	}

	snap := g.Snapshot()
	if !snap.AimingEnabled {
		t.Error("aiming should be enabled in the Aiming phase")
	}
	if snap.CurrentColor != entity.PlayerColors[0] {
		t.Errorf("current color = %+v, expected first palette entry", snap.CurrentColor)
	}
	if snap.Overlay == "" {
		t.Error("overlay text should prompt the current player")
	}
	if len(snap.Players) != 2 || len(snap.Bodies) != 2 {
		t.Errorf("snapshot has %d players, %d bodies", len(snap.Players), len(snap.Bodies))
	}
	if snap.Projectile != nil {
		t.Error("no projectile should be reported before firing")
	}

	if err := g.Fire(0, 5); err != nil {
		t.Fatalf("Fire() error = %v", err)
	}
	g.Tick(g.Config.Tuning.TimeStep)

	snap = g.Snapshot()
	if snap.AimingEnabled {
		t.Error("aiming should be disabled while simulating")
	}
	if snap.Projectile == nil {
		t.Fatal("projectile missing from snapshot during flight")
	}
	if len(snap.Projectile.Trail) < 2 {
		t.Errorf("trail has %d positions, expected at least 2", len(snap.Projectile.Trail))
	}
}

func TestGameOver_IsTerminal(t *testing.T) {
	g, err := NewGame(twoBodyConfig())
	if err != nil {
		t.Fatalf("NewGame() error = %v", err)
	}

	if err := g.Fire(0, 10); err != nil {
		t.Fatalf("Fire() error = %v", err)
	}
	runUntilResolved(t, g)
	g.Tick(g.Config.Tuning.TimeStep)

	if g.Phase() != PhaseGameOver {
		t.Fatalf("phase = %v, expected GameOver", g.Phase())
	}

	if err := g.Fire(0, 5); !errors.Is(err, ErrFireRejected) {
		t.Errorf("Fire() after game over error = %v, expected ErrFireRejected", err)
	}
	g.Tick(g.Config.Tuning.TimeStep)
	if g.Phase() != PhaseGameOver {
		t.Error("GameOver must be terminal")
	}
}
