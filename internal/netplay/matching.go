package netplay

import (
	"net/netip"

	"github.com/sirupsen/logrus"
)

// Handshake is either side of the start-frame handshake.
type Handshake interface {
	Update(currentFrame int) (*Stream, error)
	Abort(currentFrame int) error
}

type matchingPhase int

const (
	phaseRequestPeer matchingPhase = iota
	phaseWaitForPeer
	phaseHolePunching
)

// Matcher asks the matchmaking server for a peer and hole-punches a
// path to it by trading heartbeats. Update yields the handshake to run
// next: a Listener when the server flagged this side as host, a Client
// otherwise. Timeouts fall back to asking the server again.
type Matcher struct {
	conn      *Conn
	server    netip.AddrPort
	phase     matchingPhase
	timeoutAt int
	isHost    bool
	peer      netip.AddrPort
}

// NewMatcher matches through the server at the given endpoint.
func NewMatcher(conn *Conn, server netip.AddrPort) *Matcher {
	return &Matcher{conn: conn, server: server}
}

// IsHost reports which side matchmaking assigned, once matched.
func (m *Matcher) IsHost() bool {
	return m.isHost
}

// Update advances matchmaking. It returns the peer handshake once the
// hole punch succeeds and nil while still matching.
func (m *Matcher) Update(currentFrame int) (Handshake, error) {
	for {
		phase := m.phase
		var (
			hs  Handshake
			err error
		)
		switch phase {
		case phaseRequestPeer:
			err = m.requestPeer(currentFrame)
		case phaseWaitForPeer:
			err = m.waitForPeer(currentFrame)
		case phaseHolePunching:
			hs, err = m.holePunch(currentFrame)
		}
		if hs != nil || err != nil {
			return hs, err
		}
		if m.phase == phase {
			return nil, nil
		}
	}
}

// requestPeer identifies this side to the server with the raw version
// bytes; the server pairs clients reporting the same version.
func (m *Matcher) requestPeer(currentFrame int) error {
	if err := m.conn.sendRaw(m.server, m.conn.version); err != nil {
		return err
	}
	m.phase = phaseWaitForPeer
	m.timeoutAt = currentFrame + PeerTimeOut
	return nil
}

func (m *Matcher) waitForPeer(currentFrame int) error {
	for {
		p, ok := m.conn.recvPacket()
		if !ok {
			break
		}
		if p.from != m.server {
			continue
		}
		isHost, _, peer, ok := decodeMatchReply(p.buf)
		if !ok {
			continue
		}
		addr, err := ResolveAddr(peer)
		if err != nil {
			return err
		}
		m.phase = phaseHolePunching
		m.timeoutAt = currentFrame + PeerTimeOut
		m.isHost = isHost
		m.peer = addr
		logrus.WithFields(logrus.Fields{"peer": addr, "host": isHost}).Info("peer matched")
		return nil
	}

	if currentFrame > m.timeoutAt {
		m.phase = phaseRequestPeer
	}
	return nil
}

func (m *Matcher) holePunch(currentFrame int) (Handshake, error) {
	if err := m.conn.send(m.peer, currentFrame, message{kind: msgHeartBeat}); err != nil {
		return nil, err
	}

	for {
		msg, from, ok := m.conn.recvMessage()
		if !ok {
			break
		}
		if from != m.peer || msg.kind != msgHeartBeat {
			continue
		}
		logrus.WithField("peer", m.peer).Debug("hole punched")
		if m.isHost {
			return HostFor(m.conn, m.peer), nil
		}
		return Join(m.conn, m.peer), nil
	}

	if currentFrame > m.timeoutAt {
		m.phase = phaseRequestPeer
	}
	return nil, nil
}
