package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/younwookim/fg/internal/domain/input"
)

// DirectionKey maps one keyboard key to the direction it holds.
type DirectionKey struct {
	Key ebiten.Key
	Dir input.DirectionFlag
}

// ButtonKey maps one keyboard key to the attack button it presses.
type ButtonKey struct {
	Key    ebiten.Key
	Button input.ButtonFlag
}

// KeyMap is one player's keyboard layout.
type KeyMap struct {
	Directions [4]DirectionKey
	Buttons    [3]ButtonKey
}

// Player1Keys is the left-hand layout: WASD with G, H and J for the
// light, medium and heavy buttons.
func Player1Keys() KeyMap {
	return KeyMap{
		Directions: [4]DirectionKey{
			{Key: ebiten.KeyW, Dir: input.FlagUp},
			{Key: ebiten.KeyS, Dir: input.FlagDown},
			{Key: ebiten.KeyA, Dir: input.FlagLeft},
			{Key: ebiten.KeyD, Dir: input.FlagRight},
		},
		Buttons: [3]ButtonKey{
			{Key: ebiten.KeyG, Button: input.ButtonL},
			{Key: ebiten.KeyH, Button: input.ButtonM},
			{Key: ebiten.KeyJ, Button: input.ButtonH},
		},
	}
}

// Player2Keys is the right-hand layout: arrows with numpad 1, 2 and 3
// for the light, medium and heavy buttons.
func Player2Keys() KeyMap {
	return KeyMap{
		Directions: [4]DirectionKey{
			{Key: ebiten.KeyArrowUp, Dir: input.FlagUp},
			{Key: ebiten.KeyArrowDown, Dir: input.FlagDown},
			{Key: ebiten.KeyArrowLeft, Dir: input.FlagLeft},
			{Key: ebiten.KeyArrowRight, Dir: input.FlagRight},
		},
		Buttons: [3]ButtonKey{
			{Key: ebiten.KeyNumpad1, Button: input.ButtonL},
			{Key: ebiten.KeyNumpad2, Button: input.ButtonM},
			{Key: ebiten.KeyNumpad3, Button: input.ButtonH},
		},
	}
}

// Keyboard feeds one layout's key edges into an input history. Held
// keys and deferred releases are the history's business; the keyboard
// only reports edges.
type Keyboard struct {
	keys KeyMap
}

// NewKeyboard creates a keyboard for the given layout.
func NewKeyboard(keys KeyMap) Keyboard {
	return Keyboard{keys: keys}
}

// Poll forwards this tick's presses and releases into the history.
// Call once per tick, before the history commits the frame.
func (k Keyboard) Poll(h *input.History) {
	for _, d := range k.keys.Directions {
		if inpututil.IsKeyJustPressed(d.Key) {
			h.PressDirection(d.Dir)
		}
		if inpututil.IsKeyJustReleased(d.Key) {
			h.ReleaseDirection(d.Dir)
		}
	}
	for _, b := range k.keys.Buttons {
		if inpututil.IsKeyJustPressed(b.Key) {
			h.PressButton(b.Button)
		}
		if inpututil.IsKeyJustReleased(b.Key) {
			h.ReleaseButton(b.Button)
		}
	}
}
