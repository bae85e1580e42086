// Package state holds the snapshot the rollback driver saves every
// frame and restores when remote inputs arrive late.
package state

import (
	"github.com/younwookim/fg/internal/domain/character"
	"github.com/younwookim/fg/internal/domain/input"
)

// GameState is everything the deterministic simulation needs restored
// on a rollback: both players' parsed inputs and both characters'
// combat states. Plain value data, so assignment is a deep copy.
type GameState struct {
	P1Inputs input.Inputs
	P2Inputs input.Inputs
	P1       character.State
	P2       character.State
}

// New returns a round-start state for the two characters.
func New(p1, p2 *character.Context) GameState {
	return GameState{
		P1: character.NewState(p1),
		P2: character.NewState(p2),
	}
}

// ResetRound puts both characters back at their round-start state and
// keeps the input buffers running.
func (g *GameState) ResetRound(p1, p2 *character.Context) {
	g.P1.Reset(p1)
	g.P2.Reset(p2)
}
