// Package replay records a local match's raw input streams to JSON and
// plays them back, rebuilding the recorded input logs change for
// change so a replayed match simulates identically.
package replay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/younwookim/fg/internal/domain/input"
)

// Replayer plays a recording back into the players' input histories.
type Replayer struct {
	data  Data
	frame int
	p1    int
	p2    int
}

// NewReplayer creates a replayer over loaded data.
func NewReplayer(data Data) *Replayer {
	return &Replayer{data: data}
}

// LoadData loads a recording from a file.
func LoadData(filename string) (Data, error) {
	file, err := os.Open(filename)
	if err != nil {
		return Data{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var data Data
	if err := json.NewDecoder(file).Decode(&data); err != nil {
		return Data{}, fmt.Errorf("failed to decode replay: %w", err)
	}
	return data, nil
}

// Advance writes the next frame of recorded input into both histories.
// It reports false once the recording is exhausted.
func (r *Replayer) Advance(p1, p2 *input.History) bool {
	if r.frame >= r.data.Frames {
		return false
	}
	r.p1 = playFrame(p1, r.data.P1, r.p1, r.frame)
	r.p2 = playFrame(p2, r.data.P2, r.p2, r.frame)
	r.frame++
	return true
}

// playFrame extends the history by one frame, overwriting the new head
// frame when the stream recorded a change there.
func playFrame(h *input.History, stream []FrameInput, cursor, frame int) int {
	h.Skip()
	if cursor < len(stream) && stream[cursor].F == frame {
		h.AppendInput(0, input.DirectionFromWire(stream[cursor].D), input.ButtonFlag(stream[cursor].B))
		cursor++
	}
	return cursor
}

// Version returns the game version the recording was made with.
func (r *Replayer) Version() string {
	return r.data.Version
}

// CurrentFrame returns the next frame to play.
func (r *Replayer) CurrentFrame() int {
	return r.frame
}

// TotalFrames returns the length of the recording.
func (r *Replayer) TotalFrames() int {
	return r.data.Frames
}

// Reset rewinds the replayer to the beginning.
func (r *Replayer) Reset() {
	r.frame = 0
	r.p1 = 0
	r.p2 = 0
}
