// Package online is the online play pipeline. Matching finds a peer
// through the matchmaking server, Connecting runs the start-frame
// handshake with it, and Play is the rollback-driven match itself.
// Every scene falls back to the main menu on Escape, errors or a
// peer abort.
package online

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/sirupsen/logrus"

	"github.com/younwookim/fg/internal/application/scene"
	"github.com/younwookim/fg/internal/infrastructure/config"
	"github.com/younwookim/fg/internal/netplay"
)

var colorBG = color.RGBA{26, 26, 46, 255}

// Matching is the matchmaking scene. It owns the socket the whole
// online session will run on and hands it forward once a peer is
// assigned.
type Matching struct {
	match *config.Match
	menu  scene.Scene

	conn         *netplay.Conn
	matcher      *netplay.Matcher
	currentFrame int
}

// NewMatching binds a socket and starts matchmaking against the
// server named in the game config.
func NewMatching(match *config.Match, menu scene.Scene) (*Matching, error) {
	server, err := netplay.ResolveAddr(match.Game.MatchingServer)
	if err != nil {
		return nil, fmt.Errorf("bad matching_server address: %w", err)
	}

	conn, err := netplay.Bind("0.0.0.0:0", []byte(match.Game.Version))
	if err != nil {
		return nil, err
	}

	return &Matching{
		match:   match,
		menu:    menu,
		conn:    conn,
		matcher: netplay.NewMatcher(conn, server),
	}, nil
}

// Update advances matchmaking one tick.
func (m *Matching) Update() (scene.Scene, error) {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		m.conn.Close()
		return m.menu, nil
	}

	handshake, err := m.matcher.Update(m.currentFrame)
	if err != nil {
		logrus.WithError(err).Error("matchmaking failed")
		m.conn.Close()
		return m.menu, nil
	}
	if handshake != nil {
		return newConnecting(m.match, m.menu, m.conn, handshake, m.matcher.IsHost(), m.currentFrame), nil
	}

	m.currentFrame++
	return nil, nil
}

// Draw renders the matchmaking status.
func (m *Matching) Draw(screen *ebiten.Image) {
	screen.Fill(colorBG)

	b := screen.Bounds()
	dots := strings.Repeat(".", m.currentFrame/30%4)
	ebitenutil.DebugPrintAt(screen, "FINDING OPPONENT"+dots, b.Dx()/2-60, b.Dy()/2-10)
	ebitenutil.DebugPrintAt(screen, "server: "+m.match.Game.MatchingServer, b.Dx()/2-60, b.Dy()/2+10)
	ebitenutil.DebugPrintAt(screen, "ESC: cancel", 8, b.Dy()-20)
}

// OnEnter is part of the Scene interface.
func (m *Matching) OnEnter() {}

// OnExit is part of the Scene interface.
func (m *Matching) OnExit() {}
