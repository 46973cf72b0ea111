// pkg/engine/turn.go
package engine

import (
	"github.com/opd-ai/go-gravwars/pkg/entity"
)

// Phase represents the turn state machine phase.
type Phase int

const (
	PhaseAiming Phase = iota
	PhaseSimulating
	PhaseResolved
	PhaseGameOver
)

// String returns the phase name for logs and overlays.
func (p Phase) String() string {
	switch p {
	case PhaseAiming:
		return "Aiming"
	case PhaseSimulating:
		return "Simulating"
	case PhaseResolved:
		return "Resolved"
	case PhaseGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// aliveCount returns how many players are still alive.
func aliveCount(players []*entity.Player) int {
	count := 0
	for _, p := range players {
		if p.Alive {
			count++
		}
	}
	return count
}

// nextAlive returns the index of the next alive player after current,
// scanning forward with wrap-around and skipping eliminated players.
// When nobody else lives it returns current.
func nextAlive(players []*entity.Player, current int) int {
	n := len(players)
	for offset := 1; offset <= n; offset++ {
		candidate := (current + offset) % n
		if players[candidate].Alive {
			return candidate
		}
	}
	return current
}

// soleSurvivor returns the index of the only alive player, or -1 when
// zero or more than one remain.
func soleSurvivor(players []*entity.Player) int {
	winner := -1
	for _, p := range players {
		if !p.Alive {
			continue
		}
		if winner != -1 {
			return -1
		}
		winner = p.Index
	}
	return winner
}
