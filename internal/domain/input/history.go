package input

import "github.com/sirupsen/logrus"

const (
	// MaxRollbackFrames bounds how far the simulation can be rewound.
	MaxRollbackFrames = 64

	// HistoryFrameLen is the run capacity of the input log.
	HistoryFrameLen = MaxRollbackFrames + 64

	// HistoryParseFrames is how many past frames the motion parser
	// examines.
	HistoryParseFrames = 32

	// DashHistoryLen is the narrower window double-tap dashes must
	// fit inside.
	DashHistoryLen = HistoryParseFrames / 2

	// MotionBufSize is the depth of the buffered move list.
	MotionBufSize = 4
)

// run is one run-length encoded stretch of identical input.
type run struct {
	dir     Direction
	buttons ButtonFlag
	frames  int
}

// History is the run-length encoded log of a player's per-frame
// inputs. The head run grows while the raw input is unchanged and a
// change starts a new run, so adjacent runs always differ. Remote
// inputs rewrite the recent past through AppendInput. A delay shifts
// the parse cursor into the past, giving rollbacks up to the delay a
// free ride.
type History struct {
	state  State
	buf    [HistoryFrameLen]run
	cursor int
	delay  int
}

// NewHistory creates an all-neutral log parsing delay frames in the
// past.
func NewHistory(delay int) *History {
	h := &History{}
	h.Reset()
	h.SetDelay(delay)
	return h
}

// Reset clears the log back to all-neutral runs. Held keys are kept;
// they re-enter the log on the next Update.
func (h *History) Reset() {
	for i := range h.buf {
		h.buf[i] = run{dir: Neutral, buttons: ButtonNone, frames: 1}
	}
	h.cursor = 0
}

// SetDelay sets how many frames in the past the default parse cursor
// sits.
func (h *History) SetDelay(delay int) {
	if delay < 0 || delay > HistoryParseFrames {
		logrus.Panicf("input: delay %d outside 0..%d", delay, HistoryParseFrames)
	}
	h.delay = delay
}

// Delay returns the configured input delay.
func (h *History) Delay() int {
	return h.delay
}

// PressDirection forwards a direction key press to the key state.
func (h *History) PressDirection(d DirectionFlag) { h.state.PressDirection(d) }

// ReleaseDirection forwards a direction key release to the key state.
func (h *History) ReleaseDirection(d DirectionFlag) { h.state.ReleaseDirection(d) }

// PressButton forwards a button press to the key state.
func (h *History) PressButton(b ButtonFlag) { h.state.PressButton(b) }

// ReleaseButton forwards a button release to the key state.
func (h *History) ReleaseButton(b ButtonFlag) { h.state.ReleaseButton(b) }

// HeldButtons returns the buttons physically held right now. Menu
// navigation reads this; the simulation itself only consumes parsed
// frames.
func (h *History) HeldButtons() ButtonFlag {
	return h.state.HeldButtons()
}

// Update polls the key state and logs this frame's input.
func (h *History) Update() {
	dir, buttons := h.state.update()

	head := &h.buf[h.cursor]
	if head.dir == dir && head.buttons == buttons {
		head.frames++
		return
	}
	h.cursor = (h.cursor + 1) % HistoryFrameLen
	h.buf[h.cursor] = run{dir: dir, buttons: buttons, frames: 1}
}

// Skip advances one frame assuming the input did not change. Remote
// replicas advance this way until the peer's next input arrives.
func (h *History) Skip() {
	h.buf[h.cursor].frames++
}

// SkipFor advances n frames assuming the input did not change.
func (h *History) SkipFor(n int) {
	h.buf[h.cursor].frames += n
}

// FreshInput returns the head run's value when the run started on the
// most recent frame, reporting false otherwise.
func (h *History) FreshInput() (Direction, ButtonFlag, bool) {
	head := h.buf[h.cursor]
	if head.frames == 1 {
		return head.dir, head.buttons, true
	}
	return Neutral, ButtonNone, false
}

// AppendInput installs an input framesBack frames in the past. A past
// frame shrinks the head run and writes a new head covering the
// target frame through now; a negative framesBack pads the head into
// the future first. Inputs must arrive in frame order and the target
// must lie inside the head run. Reports whether the log changed.
func (h *History) AppendInput(framesBack int, dir Direction, buttons ButtonFlag) bool {
	head := &h.buf[h.cursor]

	if framesBack < 0 {
		if head.dir == dir && head.buttons == buttons {
			head.frames += -framesBack
			return false
		}
		head.frames += -framesBack - 1
		h.cursor = (h.cursor + 1) % HistoryFrameLen
		h.buf[h.cursor] = run{dir: dir, buttons: buttons, frames: 1}
		return true
	}

	newRunLength := framesBack + 1

	if head.dir == dir && head.buttons == buttons {
		return false
	}

	if head.frames < newRunLength {
		logrus.Panicf("input: append %d frames back exceeds head run of %d frames", framesBack, head.frames)
	}
	if head.frames != newRunLength {
		head.frames -= newRunLength
		h.cursor = (h.cursor + 1) % HistoryFrameLen
	}
	h.buf[h.cursor] = run{dir: dir, buttons: buttons, frames: newRunLength}
	return true
}
