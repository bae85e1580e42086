package input

// Motion is a set of recognized motion inputs in absolute directions.
type Motion uint8

const (
	MotionNone Motion = 0

	MotionDownDown   Motion = 1 << 0
	MotionRightRight Motion = 1 << 1
	MotionLeftLeft   Motion = 1 << 2
	MotionQcRight    Motion = 1 << 3
	MotionQcLeft     Motion = 1 << 4
	MotionDpRight    Motion = 1 << 5
	MotionDpLeft     Motion = 1 << 6
)

// Masks for the side mirror. Left motions sit one bit above their
// right counterparts; DownDown is side-neutral.
const (
	motionLefts    = MotionLeftLeft | MotionQcLeft | MotionDpLeft
	motionRights   = MotionRightRight | MotionQcRight | MotionDpRight
	motionNeutrals = MotionDownDown
)

// OnLeftSide translates the motions for a character on the left side,
// where rightward motions are Forward.
func (m Motion) OnLeftSide() RelativeMotion {
	return RelativeMotion(m)
}

// OnRightSide translates the motions for a character on the right
// side by swapping the left and right motion bits.
func (m Motion) OnRightSide() RelativeMotion {
	mirrored := (m&motionLefts)>>1 | (m&motionRights)<<1 | m&motionNeutrals
	return RelativeMotion(mirrored)
}

// RelativeMotion is a set of motion inputs expressed relative to the
// character's facing. The bit layout matches Motion with Forward in
// the right slots.
type RelativeMotion uint8

const (
	RelMotionNone RelativeMotion = 0

	RelDownDown       RelativeMotion = 1 << 0
	RelForwardForward RelativeMotion = 1 << 1
	RelBackBack       RelativeMotion = 1 << 2
	RelQcForward      RelativeMotion = 1 << 3
	RelQcBack         RelativeMotion = 1 << 4
	RelDpForward      RelativeMotion = 1 << 5
	RelDpBack         RelativeMotion = 1 << 6
)

// Has reports whether all motions in required are set.
func (m RelativeMotion) Has(required RelativeMotion) bool {
	return m&required == required
}

// RelativeDirection is a stick direction relative to the character's
// facing. RelNone is the wildcard used by moves with no direction
// requirement.
type RelativeDirection uint8

const (
	RelNone RelativeDirection = iota
	RelNeutral
	RelUp
	RelDown
	RelBack
	RelForward
	RelUpBack
	RelDownBack
	RelUpForward
	RelDownForward
)

// MatchesOrIsNone reports whether d equals other or is the wildcard.
func (d RelativeDirection) MatchesOrIsNone(other RelativeDirection) bool {
	return d == other || d == RelNone
}
