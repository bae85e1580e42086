package input

// BufferedMove pairs a frame's recognized motions with the buttons
// pressed on that same frame.
type BufferedMove struct {
	Motion  Motion
	Buttons ButtonFlag
}

// Inputs is the parsed input a character consumes each frame: the
// current direction, the held buttons and a short buffer of recent
// moves. The buffer lets a motion land a few frames apart from its
// button press. Plain value data, snapshotted with the game state.
type Inputs struct {
	dir     Direction
	buttons ButtonFlag
	buf     [MotionBufSize]BufferedMove
}

// Reset clears back to neutral.
func (in *Inputs) Reset() {
	*in = Inputs{}
}

// Dir returns the direction at the parsed frame.
func (in *Inputs) Dir() Direction {
	return in.dir
}

// ActiveButtons returns the buttons held at the parsed frame.
func (in *Inputs) ActiveButtons() ButtonFlag {
	return in.buttons
}

// MoveBuf returns the buffered moves, newest first.
func (in *Inputs) MoveBuf() [MotionBufSize]BufferedMove {
	return in.buf
}

// Update pushes a parsed frame into the move buffer, dropping the
// oldest entry.
func (in *Inputs) Update(p Parsed) {
	copy(in.buf[1:], in.buf[:MotionBufSize-1])
	in.buf[0] = BufferedMove{Motion: p.Motion, Buttons: p.Pressed}
	in.dir = p.Dir
	in.buttons = p.Held
}
