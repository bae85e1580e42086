package netplay

import (
	"net/netip"

	"github.com/sirupsen/logrus"

	"github.com/younwookim/fg/internal/domain/input"
)

// queuedInput is one not-yet-acknowledged local input change.
type queuedInput struct {
	frame   uint32
	dir     input.Direction
	buttons input.ButtonFlag
}

// Stream exchanges input changes with the peer once the handshake is
// done. Local changes queue until acknowledged and are resent every
// tick; peer changes are written into the remote input history, and
// Update reports how far back or forward they landed so the caller can
// roll back or fast-forward the simulation.
type Stream struct {
	conn     *Conn
	peer     netip.AddrPort
	outbound []queuedInput
	seq      uint32
	peerSeq  uint32
	aborted  bool
	chunkBuf []byte
}

func newStream(conn *Conn, peer netip.AddrPort) *Stream {
	return &Stream{
		conn:     conn,
		peer:     peer,
		chunkBuf: make([]byte, 0, maxDatagramChunks*inputsChunkSize),
	}
}

// Aborted reports whether either side has torn the session down.
func (s *Stream) Aborted() bool {
	return s.aborted
}

// Abort tells the peer we are leaving. The local state changes even if
// the farewell is lost.
func (s *Stream) Abort(currentFrame int) error {
	s.aborted = true
	return s.conn.send(s.peer, currentFrame, message{kind: msgAbort})
}

// Update drains the socket, applies peer inputs to remote, then queues
// and resends local input changes. It returns how many frames of
// simulation the new inputs invalidated (rollback) and how many frames
// ahead of us the peer already is (fastforward).
func (s *Stream) Update(currentFrame int, local, remote *input.History) (rollback, fastforward int, err error) {
	for {
		m, from, ok := s.conn.recvMessage()
		if !ok {
			break
		}
		if from != s.peer {
			continue
		}

		switch m.kind {
		case msgAbort:
			s.aborted = true
		case msgInputsAck:
			s.ackInputs(m.seq)
		case msgInputs:
			newSeq, rb, ff := receiveInputs(s.peerSeq, currentFrame, remote, m.seq, m.inputs)
			s.peerSeq = newSeq
			if err := s.conn.send(s.peer, currentFrame, message{kind: msgInputsAck, seq: s.peerSeq}); err != nil {
				return 0, 0, err
			}
			rollback = max(rollback, rb)
			fastforward = max(fastforward, ff)
		}
	}

	if err := s.sendInputs(currentFrame, local); err != nil {
		return 0, 0, err
	}
	return rollback, fastforward, nil
}

// ackInputs drops everything the peer has confirmed, oldest first.
// seq only ever grows.
func (s *Stream) ackInputs(ack uint32) {
	if ack <= s.seq {
		return
	}
	drop := int(ack - s.seq)
	if drop > len(s.outbound) {
		drop = len(s.outbound)
	}
	s.outbound = append(s.outbound[:0], s.outbound[drop:]...)
	s.seq = ack
	logrus.WithFields(logrus.Fields{"seq": s.seq, "pending": len(s.outbound)}).Trace("inputs acknowledged")
}

// sendInputs queues a fresh local change when the history produced one
// this tick, then resends every unacknowledged change oldest first in
// a single datagram.
func (s *Stream) sendInputs(currentFrame int, local *input.History) error {
	if dir, buttons, fresh := local.FreshInput(); fresh {
		s.outbound = append(s.outbound, queuedInput{
			frame:   uint32(currentFrame),
			dir:     dir,
			buttons: buttons,
		})
	}
	if len(s.outbound) == 0 {
		return nil
	}

	send := s.outbound
	if len(send) > maxDatagramChunks {
		send = send[:maxDatagramChunks]
	}
	s.chunkBuf = s.chunkBuf[:0]
	for _, q := range send {
		s.chunkBuf = appendInputChunk(s.chunkBuf, q.frame, q.dir, q.buttons)
	}
	return s.conn.send(s.peer, currentFrame, message{kind: msgInputs, seq: s.seq, inputs: s.chunkBuf})
}

// receiveInputs writes one Inputs datagram into the remote history.
// Chunks the peer already delivered (sequence below peerSeq) are
// skipped; the rest land framesBack from the present, extending the
// history when the peer is ahead of us. Returns the advanced sequence,
// how many frames back the oldest new chunk landed and how far the
// history was extended.
func receiveInputs(peerSeq uint32, currentFrame int, remote *input.History, seqStart uint32, raw []byte) (uint32, int, int) {
	count := len(raw) / inputsChunkSize

	skip := 0
	if peerSeq > seqStart {
		skip = int(peerSeq - seqStart)
	}
	if skip >= count {
		return peerSeq, 0, 0
	}

	frameAtStart := currentFrame
	oldest, _, _ := inputChunk(raw[skip*inputsChunkSize:])

	for i := skip; i < count; i++ {
		frame, dir, buttons := inputChunk(raw[i*inputsChunkSize:])
		framesBack := currentFrame - int(frame)
		remote.AppendInput(framesBack, dir, buttons)
		if framesBack < 0 {
			currentFrame += -framesBack
		}
	}

	newSeq := peerSeq
	if end := seqStart + uint32(count); end > newSeq {
		newSeq = end
	}

	rollback := frameAtStart - int(oldest)
	if rollback < 0 {
		rollback = 0
	}
	return newSeq, rollback, currentFrame - frameAtStart
}
