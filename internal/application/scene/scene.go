// Package scene defines the Scene interface for game screens.
//
// Each game screen (main menu, local versus, online play) implements
// the Scene interface to handle its own update logic and rendering.
package scene

import "github.com/hajimehoshi/ebiten/v2"

// Scene represents a game screen (main menu, versus, online play)
//
// The game loop calls Update once per simulation tick at a fixed 60
// ticks per second and delegates Draw to the current scene. Scene
// transitions are handled by returning a new Scene from Update.
type Scene interface {
	// Update advances the scene by one tick.
	// Returns the next scene if a transition is needed, nil to stay on current scene.
	// Returns an error to terminate the game.
	Update() (next Scene, err error)

	// Draw renders the scene to the screen.
	Draw(screen *ebiten.Image)

	// OnEnter is called when entering this scene.
	// Use this for initialization that should happen each time the scene is entered.
	OnEnter()

	// OnExit is called when leaving this scene.
	// Use this for cleanup, saving state, or resource release.
	OnExit()
}
