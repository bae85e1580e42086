package online

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/sirupsen/logrus"

	"github.com/younwookim/fg/internal/application/scene"
	"github.com/younwookim/fg/internal/application/scene/gameplay"
	"github.com/younwookim/fg/internal/application/state"
	"github.com/younwookim/fg/internal/application/system"
	"github.com/younwookim/fg/internal/domain/character"
	"github.com/younwookim/fg/internal/domain/input"
	"github.com/younwookim/fg/internal/infrastructure/config"
	"github.com/younwookim/fg/internal/netplay"
	"github.com/younwookim/fg/internal/ring"
)

// snapshot is one completed tick's full simulation state. Both halves
// are plain values, so assignment deep-copies and restoring one can
// never alias the live state.
type snapshot struct {
	session gameplay.Session
	state   state.GameState
}

// Play runs the online match. Each tick it feeds the local keyboard
// into one input history and the peer's stream into the other; when
// peer inputs land in the past it rewinds to the snapshot before
// them, replays the invalidated ticks with the corrected logs, and
// catches up to a peer running ahead. The input delay absorbs small
// rollbacks entirely.
type Play struct {
	menu scene.Scene

	conn   *netplay.Conn
	stream *netplay.Stream
	side   character.Side

	keys    system.Keyboard
	p1Hist  *input.History
	p2Hist  *input.History
	session gameplay.Session
	game    state.GameState
	snaps   *ring.Buf[snapshot]

	currentFrame int
	delay        int
}

// newPlay starts the match. currentFrame carries on from the
// handshake so the frame numbers on the wire stay meaningful, and
// the local player keeps the player one key layout whichever side
// matchmaking put them on.
func newPlay(match *config.Match, menu scene.Scene, conn *netplay.Conn, stream *netplay.Stream, side character.Side, currentFrame int) *Play {
	p := &Play{
		menu:         menu,
		conn:         conn,
		stream:       stream,
		side:         side,
		keys:         system.NewKeyboard(system.Player1Keys()),
		p1Hist:       input.NewHistory(match.Game.InputDelay),
		p2Hist:       input.NewHistory(match.Game.InputDelay),
		session:      gameplay.NewSession(match.P1, match.P2, match.Stage),
		game:         state.New(match.P1, match.P2),
		snaps:        ring.New[snapshot](input.MaxRollbackFrames),
		currentFrame: currentFrame,
		delay:        match.Game.InputDelay,
	}

	// Seed every slot so a rollback in the opening frames lands on
	// the round-start state instead of a zero value.
	initial := snapshot{session: p.session, state: p.game}
	for i := 0; i < p.snaps.Cap(); i++ {
		p.snaps.Append(initial)
	}

	logrus.WithFields(logrus.Fields{
		"side":  side,
		"frame": currentFrame,
		"delay": p.delay,
	}).Info("online match started")
	return p
}

// localRemote splits the histories into the locally driven one and
// the peer's replica.
func (p *Play) localRemote() (local, remote *input.History) {
	if p.side == character.SideLeft {
		return p.p1Hist, p.p2Hist
	}
	return p.p2Hist, p.p1Hist
}

// Update advances the match one tick, rolling back and fast-forwarding
// as the peer's inputs require.
func (p *Play) Update() (scene.Scene, error) {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return p.menu, nil
	}
	if p.stream.Aborted() {
		logrus.Info("peer left the match")
		return p.menu, nil
	}

	local, remote := p.localRemote()
	p.keys.Poll(local)
	local.Update()
	remote.Skip()

	rollback, fastforward, err := p.stream.Update(p.currentFrame, local, remote)
	if err != nil {
		logrus.WithError(err).Error("input stream failed")
		return p.menu, nil
	}
	if p.stream.Aborted() {
		logrus.Info("peer left the match")
		return p.menu, nil
	}

	// The stream extends the remote log when the peer is ahead; the
	// local log must match before any re-simulation parses them.
	local.SkipFor(fastforward)

	if rollback > p.delay {
		p.resimulate(rollback-p.delay, fastforward)
	}

	for k := fastforward; k >= 1; k-- {
		p.step(k)
	}
	p.currentFrame += fastforward

	p.step(0)
	p.currentFrame++

	if p.session.Phase() == gameplay.PhaseExit {
		if winner, ok := p.session.Winner(); ok {
			logrus.WithField("winner", winner).Info("match over")
		}
		return p.menu, nil
	}
	return nil, nil
}

// resimulate rewinds to the snapshot taken before the invalidated
// ticks and replays them against the corrected input logs. Offsets
// are fastforward past the replayed frame because the logs have
// already been extended to the peer's newest frame.
func (p *Play) resimulate(frames, fastforward int) {
	logrus.WithFields(logrus.Fields{
		"frames": frames,
		"frame":  p.currentFrame,
	}).Debug("rolling back")

	snap := p.snaps.Rewind(frames)
	p.session = snap.session
	p.game = snap.state

	for k := frames; k >= 1; k-- {
		p.step(k + fastforward)
	}
}

// step re-parses both histories at the given offset into the past,
// advances the match one tick and snapshots the result.
func (p *Play) step(offset int) {
	p.game.P1Inputs.Update(p.p1Hist.ParseAt(offset))
	p.game.P2Inputs.Update(p.p2Hist.ParseAt(offset))
	p.session.Tick(&p.game)
	p.snaps.Append(snapshot{session: p.session, state: p.game})
}

// Draw renders the fight.
func (p *Play) Draw(screen *ebiten.Image) {
	p.session.Draw(screen, &p.game)

	label := "ONLINE (P2)"
	if p.side == character.SideLeft {
		label = "ONLINE (P1)"
	}
	ebitenutil.DebugPrintAt(screen, label+"  ESC: leave", 8, 32)
}

// OnEnter is called when entering this scene.
func (p *Play) OnEnter() {
	// Already initialized in newPlay.
}

// OnExit tells the peer we are leaving and releases the socket.
func (p *Play) OnExit() {
	if !p.stream.Aborted() {
		if err := p.stream.Abort(p.currentFrame); err != nil {
			logrus.WithError(err).Debug("abort send failed")
		}
	}
	p.conn.Close()
}
