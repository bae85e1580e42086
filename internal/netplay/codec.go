package netplay

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/younwookim/fg/internal/domain/input"
)

type msgKind byte

const (
	msgSyn msgKind = iota
	msgSynAck
	msgConnect
	msgStartAt
	msgHeartBeat
	msgInputs
	msgInputsAck
	msgAbort
)

// message is the datagram envelope. Inputs carry their chunk bytes
// unparsed; seq doubles as the Inputs start sequence and the InputsAck
// cumulative sequence.
type message struct {
	frame   int
	kind    msgKind
	startAt int
	seq     uint32
	inputs  []byte
}

const maxVersionLen = 64

// appendMessage serializes m: length-prefixed version bytes, the
// sender's frame, a kind byte, then the kind's payload. Integers are
// varints except the fixed-width chunk records.
func appendMessage(dst, version []byte, m message) []byte {
	dst = binary.AppendUvarint(dst, uint64(len(version)))
	dst = append(dst, version...)
	dst = binary.AppendUvarint(dst, uint64(uint32(m.frame)))
	dst = append(dst, byte(m.kind))

	switch m.kind {
	case msgStartAt:
		dst = binary.AppendUvarint(dst, uint64(uint32(m.startAt)))
	case msgInputsAck:
		dst = binary.AppendUvarint(dst, uint64(m.seq))
	case msgInputs:
		dst = binary.AppendUvarint(dst, uint64(m.seq))
		dst = binary.AppendUvarint(dst, uint64(len(m.inputs)))
		dst = append(dst, m.inputs...)
	}
	return dst
}

// decodeMessage parses one datagram. Anything malformed, truncated or
// carrying a different version reports false and is discarded by the
// caller. The inputs slice aliases buf.
func decodeMessage(version, buf []byte) (message, bool) {
	var m message

	vlen, n := binary.Uvarint(buf)
	if n <= 0 || vlen > maxVersionLen || int(vlen) > len(buf)-n {
		return m, false
	}
	buf = buf[n:]
	if !bytes.Equal(buf[:vlen], version) {
		return m, false
	}
	buf = buf[vlen:]

	frame, n := binary.Uvarint(buf)
	if n <= 0 || frame > math.MaxUint32 {
		return m, false
	}
	buf = buf[n:]
	m.frame = int(frame)

	if len(buf) == 0 {
		return m, false
	}
	m.kind = msgKind(buf[0])
	buf = buf[1:]

	switch m.kind {
	case msgSyn, msgSynAck, msgConnect, msgHeartBeat, msgAbort:
		return m, len(buf) == 0

	case msgStartAt:
		v, n := binary.Uvarint(buf)
		if n <= 0 || v > math.MaxUint32 || n != len(buf) {
			return m, false
		}
		m.startAt = int(v)
		return m, true

	case msgInputsAck:
		v, n := binary.Uvarint(buf)
		if n <= 0 || v > math.MaxUint32 || n != len(buf) {
			return m, false
		}
		m.seq = uint32(v)
		return m, true

	case msgInputs:
		v, n := binary.Uvarint(buf)
		if n <= 0 || v > math.MaxUint32 {
			return m, false
		}
		buf = buf[n:]
		m.seq = uint32(v)

		blen, n := binary.Uvarint(buf)
		if n <= 0 || int(blen) != len(buf)-n || blen%inputsChunkSize != 0 {
			return m, false
		}
		m.inputs = buf[n:]
		return m, true

	default:
		return m, false
	}
}

// appendInputChunk serializes one input change as a fixed 6-byte
// record: frame as little-endian u32, direction byte, button byte.
func appendInputChunk(dst []byte, frame uint32, dir input.Direction, buttons input.ButtonFlag) []byte {
	var c [inputsChunkSize]byte
	binary.LittleEndian.PutUint32(c[:4], frame)
	c[4] = dir.Wire()
	c[5] = byte(buttons)
	return append(dst, c[:]...)
}

func inputChunk(b []byte) (uint32, input.Direction, input.ButtonFlag) {
	frame := binary.LittleEndian.Uint32(b[:4])
	return frame, input.DirectionFromWire(b[4]), input.ButtonFlag(b[5])
}

// decodeMatchReply parses the matchmaking server's answer: a host
// flag and the two public endpoints as host:port strings.
func decodeMatchReply(buf []byte) (isHost bool, local, peer string, ok bool) {
	if len(buf) == 0 || buf[0] > 1 {
		return false, "", "", false
	}
	isHost = buf[0] == 1
	buf = buf[1:]

	local, buf, ok = readString(buf)
	if !ok {
		return false, "", "", false
	}
	peer, buf, ok = readString(buf)
	if !ok || len(buf) != 0 {
		return false, "", "", false
	}
	return isHost, local, peer, true
}

func readString(buf []byte) (string, []byte, bool) {
	slen, n := binary.Uvarint(buf)
	if n <= 0 || int(slen) > len(buf)-n {
		return "", nil, false
	}
	buf = buf[n:]
	return string(buf[:slen]), buf[slen:], true
}
