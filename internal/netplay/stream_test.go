package netplay

import (
	"net/netip"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/fg/internal/domain/input"
)

func createTestConns(t *testing.T) (*Conn, *Conn, netip.AddrPort, netip.AddrPort) {
	t.Helper()
	a, err := Bind("127.0.0.1:0", testVersion)
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })

	b, err := Bind("127.0.0.1:0", testVersion)
	require.NoError(t, err)
	t.Cleanup(func() { b.Close() })

	addrA, err := ResolveAddr(a.LocalAddr().String())
	require.NoError(t, err)
	addrB, err := ResolveAddr(b.LocalAddr().String())
	require.NoError(t, err)
	return a, b, addrA, addrB
}

// settle gives the read pumps time to move loopback datagrams into the
// receive queues.
func settle() {
	time.Sleep(5 * time.Millisecond)
}

// advanceHistory runs a history to the given frame with nothing
// pressed, the way the game loop would each tick.
func advanceHistory(h *input.History, frames int) {
	for i := 0; i < frames; i++ {
		h.Update()
	}
}

func advanceReplica(h *input.History, frames int) {
	for i := 0; i < frames; i++ {
		h.Skip()
	}
}

func TestReceiveInputs(t *testing.T) {
	chunk := func(frame uint32, dir input.Direction, buttons input.ButtonFlag) []byte {
		return appendInputChunk(nil, frame, dir, buttons)
	}

	t.Run("reports rollback four for an input four frames late", func(t *testing.T) {
		remote := input.NewHistory(3)
		advanceReplica(remote, 100)

		seq, rollback, fastforward := receiveInputs(0, 100, remote, 0, chunk(96, input.Down, input.ButtonL))

		assert.Equal(t, uint32(1), seq)
		assert.Equal(t, 4, rollback)
		assert.Equal(t, 0, fastforward)

		parsed := remote.ParseAt(1)
		assert.Equal(t, input.Down, parsed.Dir)
		assert.Equal(t, input.ButtonL, parsed.Pressed)
	})

	t.Run("skips chunks already delivered", func(t *testing.T) {
		remote := input.NewHistory(3)
		advanceReplica(remote, 100)
		raw := chunk(96, input.Down, input.ButtonL)

		seq, _, _ := receiveInputs(0, 100, remote, 0, raw)
		require.Equal(t, uint32(1), seq)
		before := remote.ParseAt(1)

		seq, rollback, fastforward := receiveInputs(seq, 100, remote, 0, raw)
		assert.Equal(t, uint32(1), seq)
		assert.Equal(t, 0, rollback)
		assert.Equal(t, 0, fastforward)
		assert.Equal(t, before, remote.ParseAt(1))
	})

	t.Run("ignores stale datagrams from before the ack", func(t *testing.T) {
		remote := input.NewHistory(3)
		advanceReplica(remote, 100)
		raw := append(chunk(90, input.Right, input.ButtonNone), chunk(92, input.Neutral, input.ButtonNone)...)

		seq, rollback, fastforward := receiveInputs(10, 100, remote, 2, raw)

		assert.Equal(t, uint32(10), seq)
		assert.Equal(t, 0, rollback)
		assert.Equal(t, 0, fastforward)
	})

	t.Run("extends the history when the peer is ahead", func(t *testing.T) {
		remote := input.NewHistory(3)
		advanceReplica(remote, 100)
		raw := append(chunk(103, input.Right, input.ButtonNone), chunk(104, input.Right, input.ButtonH)...)

		seq, rollback, fastforward := receiveInputs(0, 100, remote, 0, raw)

		assert.Equal(t, uint32(2), seq)
		assert.Equal(t, 0, rollback)
		assert.Equal(t, 4, fastforward)

		dir, buttons, fresh := remote.FreshInput()
		require.True(t, fresh)
		assert.Equal(t, input.Right, dir)
		assert.Equal(t, input.ButtonH, buttons)
	})

	t.Run("redundant datagram before the ack lands reports the same rollback", func(t *testing.T) {
		remote := input.NewHistory(3)
		advanceReplica(remote, 100)
		raw := chunk(96, input.Down, input.ButtonL)

		_, first, _ := receiveInputs(0, 100, remote, 0, raw)
		_, second, _ := receiveInputs(0, 100, remote, 0, raw)

		assert.Equal(t, 4, first)
		assert.Equal(t, 4, second, "re-simulating already-applied inputs is harmless")

		parsed := remote.ParseAt(1)
		assert.Equal(t, input.Down, parsed.Dir)
	})
}

func TestStream_DeliversAndAcks(t *testing.T) {
	connA, connB, addrA, addrB := createTestConns(t)
	streamA := newStream(connA, addrB)
	streamB := newStream(connB, addrA)

	localA := input.NewHistory(3)
	remoteA := input.NewHistory(3)
	localB := input.NewHistory(3)
	remoteB := input.NewHistory(3)
	advanceHistory(localA, 100)
	advanceHistory(localB, 100)
	advanceReplica(remoteA, 100)
	advanceReplica(remoteB, 100)

	localA.PressDirection(input.FlagDown)
	localA.PressButton(input.ButtonL)
	localA.Update()

	_, _, err := streamA.Update(100, localA, remoteA)
	require.NoError(t, err)
	require.Len(t, streamA.outbound, 1)

	settle()
	rollback, fastforward, err := streamB.Update(100, localB, remoteB)
	require.NoError(t, err)
	assert.Equal(t, 0, rollback, "input for the current frame needs no rollback")
	assert.Equal(t, 0, fastforward)
	assert.Equal(t, uint32(1), streamB.peerSeq)

	dir, buttons, fresh := remoteB.FreshInput()
	require.True(t, fresh)
	assert.Equal(t, input.Down, dir)
	assert.Equal(t, input.ButtonL, buttons)

	settle()
	localA.Update()
	remoteA.Skip()
	_, _, err = streamA.Update(101, localA, remoteA)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), streamA.seq)
	assert.Empty(t, streamA.outbound, "acknowledged inputs leave the queue")
}

func TestStream_ResendsUntilAcked(t *testing.T) {
	connA, connB, addrA, addrB := createTestConns(t)
	streamA := newStream(connA, addrB)
	streamB := newStream(connB, addrA)

	localA := input.NewHistory(3)
	remoteA := input.NewHistory(3)
	localB := input.NewHistory(3)
	remoteB := input.NewHistory(3)
	advanceHistory(localA, 100)
	advanceHistory(localB, 100)
	advanceReplica(remoteA, 100)
	advanceReplica(remoteB, 100)

	localA.PressDirection(input.FlagDown)
	localA.PressButton(input.ButtonL)
	localA.Update()

	for frame := 100; frame <= 102; frame++ {
		if frame > 100 {
			localA.Update()
			remoteA.Skip()
		}
		_, _, err := streamA.Update(frame, localA, remoteA)
		require.NoError(t, err)
	}
	require.Len(t, streamA.outbound, 1, "unacknowledged input stays queued")

	advanceHistory(localB, 2)
	advanceReplica(remoteB, 2)
	settle()

	rollback, _, err := streamB.Update(102, localB, remoteB)
	require.NoError(t, err)
	assert.Equal(t, 2, rollback, "the input landed two frames in the past")
	assert.Equal(t, uint32(1), streamB.peerSeq, "duplicate deliveries count once")

	remoteB.Skip()
	parsed := remoteB.ParseAt(0)
	assert.Equal(t, input.Down, parsed.Dir, "the delayed input surfaces once the delay elapses")
	assert.Equal(t, input.ButtonL, parsed.Pressed)

	settle()
	localA.Update()
	remoteA.Skip()
	_, _, err = streamA.Update(103, localA, remoteA)
	require.NoError(t, err)
	assert.Empty(t, streamA.outbound)
	assert.Equal(t, uint32(1), streamA.seq)
}

func TestStream_AbortPropagates(t *testing.T) {
	connA, connB, addrA, addrB := createTestConns(t)
	streamA := newStream(connA, addrB)
	streamB := newStream(connB, addrA)

	require.NoError(t, streamA.Abort(42))
	assert.True(t, streamA.Aborted())

	settle()
	_, _, err := streamB.Update(42, input.NewHistory(3), input.NewHistory(3))
	require.NoError(t, err)
	assert.True(t, streamB.Aborted())
}

func TestStream_IgnoresStrangers(t *testing.T) {
	_, connB, addrA, addrB := createTestConns(t)
	streamB := newStream(connB, addrA)

	stranger, err := Bind("127.0.0.1:0", testVersion)
	require.NoError(t, err)
	t.Cleanup(func() { stranger.Close() })

	localB := input.NewHistory(3)
	remoteB := input.NewHistory(3)
	advanceHistory(localB, 10)
	advanceReplica(remoteB, 10)

	forged := appendInputChunk(nil, 10, input.Right, input.ButtonH)
	require.NoError(t, stranger.send(addrB, 10, message{kind: msgInputs, inputs: forged}))

	settle()
	rollback, fastforward, err := streamB.Update(10, localB, remoteB)
	require.NoError(t, err)
	assert.Equal(t, 0, rollback)
	assert.Equal(t, 0, fastforward)
	assert.Equal(t, uint32(0), streamB.peerSeq)

	_, _, fresh := remoteB.FreshInput()
	assert.False(t, fresh, "forged input never reaches the history")
}
