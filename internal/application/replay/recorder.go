package replay

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/younwookim/fg/internal/domain/input"
)

// Recorder captures both players' raw input changes as a match runs.
type Recorder struct {
	data Data
}

// NewRecorder starts a recording for the given game version.
func NewRecorder(version string) *Recorder {
	return &Recorder{
		data: Data{
			Version:   version,
			StartTime: time.Now().Format(time.RFC3339),
			P1:        make([]FrameInput, 0, 256),
			P2:        make([]FrameInput, 0, 256),
		},
	}
}

// Capture appends the input changes the histories produced this frame.
// Call once per tick, after the histories commit the frame.
func (r *Recorder) Capture(p1, p2 *input.History) {
	if dir, buttons, fresh := p1.FreshInput(); fresh {
		r.data.P1 = append(r.data.P1, FrameInput{F: r.data.Frames, D: dir.Wire(), B: uint8(buttons)})
	}
	if dir, buttons, fresh := p2.FreshInput(); fresh {
		r.data.P2 = append(r.data.P2, FrameInput{F: r.data.Frames, D: dir.Wire(), B: uint8(buttons)})
	}
	r.data.Frames++
}

// FrameCount returns the number of captured frames.
func (r *Recorder) FrameCount() int {
	return r.data.Frames
}

// Save writes the recording to a file.
func (r *Recorder) Save(filename string) error {
	if r.data.Frames == 0 {
		return fmt.Errorf("no frames to save")
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() { _ = file.Close() }()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(r.data); err != nil {
		return fmt.Errorf("failed to encode replay: %w", err)
	}
	return nil
}
