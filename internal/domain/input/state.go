package input

// State tracks the keys held between frames. Releases are deferred by
// one frame so a press and release landing inside the same frame is
// still observed by the log.
type State struct {
	activeDir      DirectionFlag
	releaseNextDir DirectionFlag

	activeButtons      ButtonFlag
	releaseNextButtons ButtonFlag
}

// PressDirection marks a direction key as held.
func (s *State) PressDirection(d DirectionFlag) {
	s.activeDir |= d
	s.releaseNextDir &^= d
}

// ReleaseDirection schedules a direction key release for the end of
// the current frame.
func (s *State) ReleaseDirection(d DirectionFlag) {
	s.releaseNextDir |= d
}

// PressButton marks a button as held.
func (s *State) PressButton(b ButtonFlag) {
	s.activeButtons |= b
	s.releaseNextButtons &^= b
}

// ReleaseButton schedules a button release for the end of the current
// frame.
func (s *State) ReleaseButton(b ButtonFlag) {
	s.releaseNextButtons |= b
}

// HeldButtons returns the buttons currently held.
func (s *State) HeldButtons() ButtonFlag {
	return s.activeButtons
}

// update derives this frame's direction and buttons, then applies the
// deferred releases.
func (s *State) update() (Direction, ButtonFlag) {
	dir := s.activeDir.Direction()
	buttons := s.activeButtons

	s.activeButtons ^= s.releaseNextButtons
	s.releaseNextButtons = ButtonNone
	s.activeDir ^= s.releaseNextDir
	s.releaseNextDir = FlagNeutral

	return dir, buttons
}
