// Package game provides the main game loop manager that handles Scene transitions.
package game

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/fg/internal/application/scene"
)

// TicksPerSecond is the fixed simulation rate. Rollback and the
// network session both count time in these ticks.
const TicksPerSecond = 60

// Game implements ebiten.Game and manages Scene transitions.
type Game struct {
	current scene.Scene
	screenW int
	screenH int
}

// New creates a new Game with the given initial scene.
// The initial scene's OnEnter is called immediately.
func New(initialScene scene.Scene, screenW, screenH int) *Game {
	g := &Game{
		current: initialScene,
		screenW: screenW,
		screenH: screenH,
	}
	g.current.OnEnter()
	return g
}

// Update advances the current scene one tick and handles scene
// transitions. Implements ebiten.Game interface.
func (g *Game) Update() error {
	next, err := g.current.Update()
	if err != nil {
		return err
	}

	if next != nil {
		g.current.OnExit()
		g.current = next
		g.current.OnEnter()
	}

	return nil
}

// Draw renders the current scene.
// Implements ebiten.Game interface.
func (g *Game) Draw(screen *ebiten.Image) {
	g.current.Draw(screen)
}

// Layout returns the game's logical screen dimensions.
// Implements ebiten.Game interface.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.screenW, g.screenH
}
