package online

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/sirupsen/logrus"

	"github.com/younwookim/fg/internal/application/scene"
	"github.com/younwookim/fg/internal/domain/character"
	"github.com/younwookim/fg/internal/infrastructure/config"
	"github.com/younwookim/fg/internal/netplay"
)

// Connecting runs the start-frame handshake with the matched peer.
// The matchmaking side decides the roles: the host listens and takes
// the left side, the client syncs and takes the right.
type Connecting struct {
	match *config.Match
	menu  scene.Scene

	conn         *netplay.Conn
	handshake    netplay.Handshake
	isHost       bool
	currentFrame int
}

func newConnecting(match *config.Match, menu scene.Scene, conn *netplay.Conn, handshake netplay.Handshake, isHost bool, currentFrame int) *Connecting {
	return &Connecting{
		match:        match,
		menu:         menu,
		conn:         conn,
		handshake:    handshake,
		isHost:       isHost,
		currentFrame: currentFrame,
	}
}

// Update advances the handshake one tick.
func (c *Connecting) Update() (scene.Scene, error) {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		if err := c.handshake.Abort(c.currentFrame); err != nil {
			logrus.WithError(err).Debug("abort send failed")
		}
		c.conn.Close()
		return c.menu, nil
	}

	stream, err := c.handshake.Update(c.currentFrame)
	if err != nil {
		logrus.WithError(err).Error("handshake failed")
		c.conn.Close()
		return c.menu, nil
	}
	if stream != nil {
		side := character.SideRight
		if c.isHost {
			side = character.SideLeft
		}
		return newPlay(c.match, c.menu, c.conn, stream, side, c.currentFrame), nil
	}

	c.currentFrame++
	return nil, nil
}

// Draw renders the handshake status.
func (c *Connecting) Draw(screen *ebiten.Image) {
	screen.Fill(colorBG)

	role := "JOINING"
	if c.isHost {
		role = "HOSTING"
	}
	b := screen.Bounds()
	ebitenutil.DebugPrintAt(screen, role+", SYNCING START FRAME", b.Dx()/2-80, b.Dy()/2-10)
	ebitenutil.DebugPrintAt(screen, "ESC: cancel", 8, b.Dy()-20)
}

// OnEnter is part of the Scene interface.
func (c *Connecting) OnEnter() {}

// OnExit is part of the Scene interface.
func (c *Connecting) OnExit() {}
