// Package mainmenu is the entry scene: pick local or online play.
// Confirming follows the fighting-game convention of pressing and
// releasing the light button, read through the same input pipeline
// the fight itself uses.
package mainmenu

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/sirupsen/logrus"

	"github.com/younwookim/fg/internal/application/scene"
	"github.com/younwookim/fg/internal/application/system"
	"github.com/younwookim/fg/internal/domain/input"
)

var (
	colorBG     = color.RGBA{26, 26, 46, 255}
	colorCursor = color.RGBA{200, 200, 100, 255}
)

var items = []string{"LOCAL PLAY", "ONLINE PLAY"}

const (
	itemLocal = iota
	itemOnline
)

const (
	cursorSize = 8.0
	itemStepY  = 24
)

// StartScene builds the scene a confirmed menu item leads to.
type StartScene func() (scene.Scene, error)

// Menu is the main menu scene.
type Menu struct {
	startLocal  StartScene
	startOnline StartScene

	hist     *input.History
	keys     system.Keyboard
	selected int
	lastDir  input.Direction
	lightOn  bool
}

// New creates the menu. The start callbacks build the local and
// online play scenes when their items are confirmed.
func New(startLocal, startOnline StartScene) *Menu {
	return &Menu{
		startLocal:  startLocal,
		startOnline: startOnline,
		hist:        input.NewHistory(0),
		keys:        system.NewKeyboard(system.Player1Keys()),
	}
}

// Update moves the cursor on direction changes and confirms on the
// light button's release edge. Merely holding the button never
// confirms.
func (m *Menu) Update() (scene.Scene, error) {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return nil, ebiten.Termination
	}

	m.keys.Poll(m.hist)
	m.hist.Update()

	dir := m.hist.Parse().Dir
	if dir != m.lastDir {
		m.navigate(dir)
	}
	m.lastDir = dir

	lightOn := m.hist.HeldButtons().Has(input.ButtonL)
	confirmed := m.lightOn && !lightOn
	m.lightOn = lightOn
	if !confirmed {
		return nil, nil
	}
	return m.confirm()
}

func (m *Menu) navigate(dir input.Direction) {
	switch dir {
	case input.Up:
		m.selected = (m.selected + len(items) - 1) % len(items)
	case input.Down:
		m.selected = (m.selected + 1) % len(items)
	}
}

// confirm starts the selected mode. A failed start (the matchmaking
// socket not binding, usually) keeps the menu up.
func (m *Menu) confirm() (scene.Scene, error) {
	start := m.startLocal
	if m.selected == itemOnline {
		start = m.startOnline
	}

	next, err := start()
	if err != nil {
		logrus.WithError(err).Error("failed to start selected mode")
		return nil, nil
	}
	return next, nil
}

// Draw renders the menu.
func (m *Menu) Draw(screen *ebiten.Image) {
	screen.Fill(colorBG)

	b := screen.Bounds()
	x := b.Dx()/2 - 40
	y := b.Dy() / 3

	ebitenutil.DebugPrintAt(screen, "FIGHTER", x, y)
	for i, item := range items {
		itemY := y + (i+2)*itemStepY
		ebitenutil.DebugPrintAt(screen, item, x, itemY)
		if i == m.selected {
			ebitenutil.DrawRect(screen, float64(x)-16, float64(itemY)+4, cursorSize, cursorSize, colorCursor)
		}
	}

	ebitenutil.DebugPrintAt(screen, "W/S: select  G (hold+release): confirm  ESC: quit", 8, b.Dy()-20)
}

// OnEnter clears the edge trackers so input held over from the
// previous scene is ignored.
func (m *Menu) OnEnter() {
	m.hist.Reset()
	m.lastDir = input.Neutral
	m.lightOn = false
}

// OnExit is part of the Scene interface.
func (m *Menu) OnExit() {}
