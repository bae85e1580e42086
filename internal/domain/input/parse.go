package input

// Motion direction sequences, newest to oldest. Dragon punches are
// checked over the full parse window, dashes only over the shorter
// dash window.
var (
	dpRightSeq    = []Direction{DownRight, Down, Neutral, Right}
	dpLeftSeq     = []Direction{DownLeft, Down, Neutral, Left}
	qcRightSeq    = []Direction{Right, DownRight, Down}
	qcLeftSeq     = []Direction{Left, DownLeft, Down}
	rightRightSeq = []Direction{Right, Neutral, Right}
	leftLeftSeq   = []Direction{Left, Neutral, Left}
	downDownSeq   = []Direction{Down, Neutral, Down}
)

// Parsed is the parser's output for a single frame of the log.
type Parsed struct {
	Dir     Direction
	Motion  Motion
	Pressed ButtonFlag
	Held    ButtonFlag
}

// Parse parses the frame at the configured delay.
func (h *History) Parse() Parsed {
	return h.ParseAt(0)
}

// ParseAt parses the frame delay+rollback frames in the past,
// recognizing motions over the window of frames trailing it.
func (h *History) ParseAt(rollback int) Parsed {
	targetFrame := h.delay + rollback
	overlapIndex, overlap := h.indexAndOverlap(targetFrame)

	pressed := h.buttonsPressed(overlapIndex, overlap)

	var ordered [HistoryFrameLen]Direction
	motionEnd, dashEnd := h.orderFrames(&ordered, overlapIndex, overlap)
	motionSlice := ordered[:motionEnd]
	dashSlice := ordered[:dashEnd]

	var motion Motion
	motion |= findDirSequence(motionSlice, dpRightSeq, MotionDpRight)
	motion |= findDirSequence(motionSlice, dpLeftSeq, MotionDpLeft)
	motion |= findDirSequence(motionSlice, qcRightSeq, MotionQcRight)
	motion |= findDirSequence(motionSlice, qcLeftSeq, MotionQcLeft)
	motion |= findDirSequence(dashSlice, rightRightSeq, MotionRightRight)
	motion |= findDirSequence(dashSlice, leftLeftSeq, MotionLeftLeft)
	motion |= findDirSequence(motionSlice, downDownSeq, MotionDownDown)

	return Parsed{
		Dir:     ordered[0],
		Motion:  motion,
		Pressed: pressed,
		Held:    h.buf[overlapIndex].buttons,
	}
}

// indexAndOverlap locates the run containing the frame that many
// frames back and how deep the frame sits in it, counted from the
// run's newest frame. An overlap equal to the run's length means the
// frame is the one the run started on.
func (h *History) indexAndOverlap(frame int) (int, int) {
	index := h.cursor
	frame++
	for {
		if frame <= h.buf[index].frames {
			return index, frame
		}
		frame -= h.buf[index].frames
		index = (HistoryFrameLen + index - 1) % HistoryFrameLen
	}
}

// orderFrames walks backward from the target run collapsing
// consecutive equal directions into ordered, newest first, until the
// parse window is covered. Returns the filled length and the length
// of the dash window prefix.
func (h *History) orderFrames(ordered *[HistoryFrameLen]Direction, overlapIndex, overlap int) (motionEnd, dashEnd int) {
	dashEnd = -1
	frameCount := h.buf[overlapIndex].frames - overlap
	ordered[0] = h.buf[overlapIndex].dir
	writeI := 1
	readI := 1

	for frameCount < HistoryParseFrames {
		if dashEnd < 0 && frameCount >= DashHistoryLen {
			dashEnd = writeI
		}
		index := (HistoryFrameLen + overlapIndex - readI) % HistoryFrameLen
		r := h.buf[index]
		if ordered[writeI-1] != r.dir {
			ordered[writeI] = r.dir
			writeI++
		}
		readI++
		frameCount += r.frames
	}

	if dashEnd < 0 {
		dashEnd = writeI
	}
	return writeI, dashEnd
}

// buttonsPressed returns the buttons newly pressed at the target
// frame. Presses register only on the exact frame a run starts.
func (h *History) buttonsPressed(overlapIndex, overlap int) ButtonFlag {
	if h.buf[overlapIndex].frames != overlap {
		return ButtonNone
	}
	before := (HistoryFrameLen + overlapIndex - 1) % HistoryFrameLen
	prev := h.buf[before].buttons
	cur := h.buf[overlapIndex].buttons
	return (prev ^ cur) &^ prev
}

// findDirSequence reports motion when seq occurs as a contiguous
// subsequence of haystack.
func findDirSequence(haystack, seq []Direction, motion Motion) Motion {
	for i := 0; i+len(seq) <= len(haystack); i++ {
		match := true
		for j := range seq {
			if haystack[i+j] != seq[j] {
				match = false
				break
			}
		}
		if match {
			return motion
		}
	}
	return MotionNone
}
