// Package input turns raw key events into the run-length encoded
// per-frame input log the simulation consumes, and parses buffered
// motions (quarter circles, dragon punches, dashes) out of it.
package input

// Direction is an absolute stick direction. The constant order is the
// wire encoding.
type Direction uint8

const (
	Neutral Direction = iota
	Up
	Down
	Left
	Right
	UpLeft
	DownLeft
	UpRight
	DownRight
)

// DirectionFromWire decodes a wire byte, mapping unknown values to
// Neutral.
func DirectionFromWire(b byte) Direction {
	if b > byte(DownRight) {
		return Neutral
	}
	return Direction(b)
}

// Wire returns the byte encoding of the direction.
func (d Direction) Wire() byte {
	return byte(d)
}

// OnLeftSide translates the direction for a character on the left
// side, where Right is Forward.
func (d Direction) OnLeftSide() RelativeDirection {
	switch d {
	case Up:
		return RelUp
	case Down:
		return RelDown
	case Left:
		return RelBack
	case Right:
		return RelForward
	case UpLeft:
		return RelUpBack
	case DownLeft:
		return RelDownBack
	case UpRight:
		return RelUpForward
	case DownRight:
		return RelDownForward
	default:
		return RelNeutral
	}
}

// OnRightSide translates the direction for a character on the right
// side, where Left is Forward.
func (d Direction) OnRightSide() RelativeDirection {
	switch d {
	case Up:
		return RelUp
	case Down:
		return RelDown
	case Left:
		return RelForward
	case Right:
		return RelBack
	case UpLeft:
		return RelUpForward
	case DownLeft:
		return RelDownForward
	case UpRight:
		return RelUpBack
	case DownRight:
		return RelDownBack
	default:
		return RelNeutral
	}
}

func (d Direction) String() string {
	switch d {
	case Neutral:
		return "Neutral"
	case Up:
		return "Up"
	case Down:
		return "Down"
	case Left:
		return "Left"
	case Right:
		return "Right"
	case UpLeft:
		return "UpLeft"
	case DownLeft:
		return "DownLeft"
	case UpRight:
		return "UpRight"
	case DownRight:
		return "DownRight"
	}
	return "Unknown"
}

// DirectionFlag is the set of direction keys held down, one bit per
// key.
type DirectionFlag uint8

const (
	FlagNeutral DirectionFlag = 0

	FlagUp    DirectionFlag = 1 << 0
	FlagDown  DirectionFlag = 1 << 1
	FlagLeft  DirectionFlag = 1 << 2
	FlagRight DirectionFlag = 1 << 3
)

// Direction collapses the held key set to a single direction.
// Opposing axes cancel to Neutral, three held keys collapse to the
// unopposed cardinal, and all four resolve to Neutral.
func (f DirectionFlag) Direction() Direction {
	switch f {
	case FlagRight, FlagRight | FlagUp | FlagDown:
		return Right
	case FlagLeft, FlagLeft | FlagUp | FlagDown:
		return Left
	case FlagUp, FlagUp | FlagRight | FlagLeft:
		return Up
	case FlagDown, FlagDown | FlagRight | FlagLeft:
		return Down
	case FlagUp | FlagLeft:
		return UpLeft
	case FlagUp | FlagRight:
		return UpRight
	case FlagDown | FlagRight:
		return DownRight
	case FlagDown | FlagLeft:
		return DownLeft
	default:
		return Neutral
	}
}

// ButtonFlag is a set of attack buttons. The bit layout is the wire
// encoding.
type ButtonFlag uint8

const (
	ButtonNone ButtonFlag = 0

	ButtonL ButtonFlag = 1 << 0
	ButtonM ButtonFlag = 1 << 1
	ButtonH ButtonFlag = 1 << 2
)

// Has reports whether all buttons in required are set.
func (b ButtonFlag) Has(required ButtonFlag) bool {
	return b&required == required
}
