package netplay

import (
	"net/netip"

	"github.com/sirupsen/logrus"
)

type listenerPhase int

const (
	phaseListening listenerPhase = iota
	phaseSyncing
	phaseConnecting
)

// Listener is the hosting side of the start-frame handshake. It
// answers a Syn with SynAck and a Connect with the peer's start frame,
// then waits out its own start frame and produces the input stream.
// Both sides schedule their start the same margin ahead, so simulation
// begins approximately in step.
type Listener struct {
	conn        *Conn
	phase       listenerPhase
	expectPeer  netip.AddrPort
	peer        netip.AddrPort
	localOffset int
	peerOffset  int
	startFrame  int
}

// Host listens for any peer on conn.
func Host(conn *Conn) *Listener {
	return &Listener{conn: conn}
}

// HostFor listens for one specific peer, as assigned by matchmaking.
func HostFor(conn *Conn, peer netip.AddrPort) *Listener {
	return &Listener{conn: conn, expectPeer: peer}
}

// Abort tells the peer we are leaving, when we know one.
func (l *Listener) Abort(currentFrame int) error {
	if l.phase == phaseListening {
		return nil
	}
	return l.conn.send(l.peer, currentFrame, message{kind: msgAbort})
}

// Update advances the handshake, following transitions as far as this
// tick's traffic allows. It returns a Stream once the start frame is
// reached and nil while the handshake is still in progress.
func (l *Listener) Update(currentFrame int) (*Stream, error) {
	for {
		phase := l.phase
		var (
			stream *Stream
			err    error
		)
		switch phase {
		case phaseListening:
			err = l.listen(currentFrame)
		case phaseSyncing:
			err = l.waitForConnect(currentFrame)
		case phaseConnecting:
			stream, err = l.waitForStart(currentFrame)
		}
		if stream != nil || err != nil {
			return stream, err
		}
		if l.phase == phase {
			return nil, nil
		}
	}
}

func (l *Listener) listen(currentFrame int) error {
	for {
		m, from, ok := l.conn.recvMessage()
		if !ok {
			return nil
		}
		if m.kind != msgSyn {
			continue
		}
		if l.expectPeer.IsValid() && from != l.expectPeer {
			continue
		}
		if err := l.conn.send(from, currentFrame, message{kind: msgSynAck}); err != nil {
			return err
		}
		l.phase = phaseSyncing
		l.peer = from
		l.localOffset = currentFrame
		l.peerOffset = m.frame
		logrus.WithField("peer", from).Debug("netplay syn received")
		return nil
	}
}

func (l *Listener) waitForConnect(currentFrame int) error {
	for {
		m, from, ok := l.conn.recvMessage()
		if !ok {
			break
		}
		if from != l.peer {
			continue
		}
		switch m.kind {
		case msgConnect:
			// The peer starts the same margin past the frame it
			// reported at Syn as we start past now.
			peerStart := (currentFrame - l.localOffset) + l.peerOffset + GameStartDelay
			l.startFrame = currentFrame + GameStartDelay
			if err := l.conn.send(l.peer, currentFrame, message{kind: msgStartAt, startAt: peerStart}); err != nil {
				return err
			}
			l.phase = phaseConnecting
			logrus.WithFields(logrus.Fields{"peer": l.peer, "start": l.startFrame}).Debug("netplay start scheduled")
			return nil
		case msgAbort:
			l.phase = phaseListening
			return nil
		}
	}

	if currentFrame > l.localOffset+PeerTimeOut {
		l.phase = phaseListening
	}
	return nil
}

func (l *Listener) waitForStart(currentFrame int) (*Stream, error) {
	for {
		m, from, ok := l.conn.recvMessage()
		if !ok {
			break
		}
		if from == l.peer && m.kind == msgAbort {
			l.phase = phaseListening
			return nil, nil
		}
	}

	if currentFrame >= l.startFrame {
		logrus.WithField("peer", l.peer).Info("netplay connected")
		return newStream(l.conn, l.peer), nil
	}
	return nil, nil
}
