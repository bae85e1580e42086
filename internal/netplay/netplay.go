// Package netplay connects two copies of the game over UDP and keeps
// their input histories in sync. A Matcher finds the peer through the
// matchmaking server, a Listener or Client runs the start-frame
// handshake, and the resulting Stream exchanges per-frame inputs with
// acknowledgement-based retransmission.
package netplay

const (
	// BufferLen is the largest datagram either side sends.
	BufferLen = 1024

	// PeerTimeOut is how many frames a handshake phase may stay silent
	// before falling back one phase.
	PeerTimeOut = 120

	// GameStartDelay is the margin, in frames, between agreeing on a
	// start frame and simulation actually starting on both sides.
	GameStartDelay = 60

	// inputsChunkSize is one serialized input change: a frame number,
	// a direction byte and a button byte.
	inputsChunkSize = 6

	// maxDatagramChunks keeps an Inputs datagram inside BufferLen with
	// headroom for the envelope.
	maxDatagramChunks = (BufferLen - 64) / inputsChunkSize

	recvQueueLen = 64
)
