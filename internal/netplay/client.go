package netplay

import (
	"net/netip"

	"github.com/sirupsen/logrus"
)

type clientPhase int

const (
	phaseClientSyncing clientPhase = iota
	phaseClientConnecting
	phaseWaitingToStart
)

// Client is the joining side of the start-frame handshake: Syn until
// answered, Connect, then wait for the host's start frame. A timeout
// or a peer Abort drops it back to Syncing.
type Client struct {
	conn      *Conn
	peer      netip.AddrPort
	phase     clientPhase
	timeoutAt int
	startAt   int
}

// Join connects to a hosting peer on conn.
func Join(conn *Conn, peer netip.AddrPort) *Client {
	return &Client{conn: conn, peer: peer}
}

// Abort tells the peer we are leaving.
func (c *Client) Abort(currentFrame int) error {
	return c.conn.send(c.peer, currentFrame, message{kind: msgAbort})
}

// Update advances the handshake, following transitions as far as this
// tick's traffic allows. It returns a Stream once the start frame is
// reached and nil while the handshake is still in progress.
func (c *Client) Update(currentFrame int) (*Stream, error) {
	for {
		phase := c.phase
		var (
			stream *Stream
			err    error
		)
		switch phase {
		case phaseClientSyncing:
			err = c.sync(currentFrame)
		case phaseClientConnecting:
			err = c.waitForStartFrame(currentFrame)
		case phaseWaitingToStart:
			stream, err = c.waitToStart(currentFrame)
		}
		if stream != nil || err != nil {
			return stream, err
		}
		if c.phase == phase {
			return nil, nil
		}
	}
}

func (c *Client) sync(currentFrame int) error {
	if err := c.conn.send(c.peer, currentFrame, message{kind: msgSyn}); err != nil {
		return err
	}

	for {
		m, from, ok := c.conn.recvMessage()
		if !ok {
			return nil
		}
		if from != c.peer || m.kind != msgSynAck {
			continue
		}
		if err := c.conn.send(c.peer, currentFrame, message{kind: msgConnect}); err != nil {
			return err
		}
		c.phase = phaseClientConnecting
		c.timeoutAt = currentFrame + PeerTimeOut
		logrus.WithField("peer", c.peer).Debug("netplay syn acknowledged")
		return nil
	}
}

func (c *Client) waitForStartFrame(currentFrame int) error {
	for {
		m, from, ok := c.conn.recvMessage()
		if !ok {
			break
		}
		if from != c.peer {
			continue
		}
		switch m.kind {
		case msgStartAt:
			c.phase = phaseWaitingToStart
			c.startAt = m.startAt
			logrus.WithFields(logrus.Fields{"peer": c.peer, "start": c.startAt}).Debug("netplay start scheduled")
			return nil
		case msgAbort:
			c.phase = phaseClientSyncing
			return nil
		}
	}

	if currentFrame > c.timeoutAt {
		c.phase = phaseClientSyncing
	}
	return nil
}

func (c *Client) waitToStart(currentFrame int) (*Stream, error) {
	for {
		m, from, ok := c.conn.recvMessage()
		if !ok {
			break
		}
		if from == c.peer && m.kind == msgAbort {
			c.phase = phaseClientSyncing
			return nil, nil
		}
	}

	if currentFrame >= c.startAt {
		logrus.WithField("peer", c.peer).Info("netplay connected")
		return newStream(c.conn, c.peer), nil
	}
	return nil, nil
}
