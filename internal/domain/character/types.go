// Package character implements the per-player combat state machine: a
// table of states with run-length encoded box timelines, cancel rules
// and behaviors, plus the mutable per-tick state that walks it.
package character

import "github.com/younwookim/fg/internal/domain/input"

// StateIndex identifies a state in a character's state table.
type StateIndex = int

// Forever marks a frame count that never elapses: endless timeline
// runs, open cancel windows, and hit stun that always launches.
const Forever = int(^uint(0) >> 1)

// Vec2 is a 2D position or velocity. Y grows upward; the floor is 0.
type Vec2 struct {
	X, Y float64
}

// Side is the half of the stage a character fights from. A character
// on the left side faces right.
type Side uint8

const (
	SideLeft Side = iota
	SideRight
)

// Opposite returns the other side.
func (s Side) Opposite() Side {
	if s == SideLeft {
		return SideRight
	}
	return SideLeft
}

func (s Side) String() string {
	if s == SideLeft {
		return "Left"
	}
	return "Right"
}

// StateFlags are per-state properties.
type StateFlags uint8

const (
	FlagAirborne      StateFlags = 1 << 0
	FlagCancelOnWhiff StateFlags = 1 << 1
	FlagLockSide      StateFlags = 1 << 2
	FlagLowBlock      StateFlags = 1 << 3
	FlagHighBlock     StateFlags = 1 << 4
)

// Has reports whether any flag in mask is set.
func (f StateFlags) Has(mask StateFlags) bool {
	return f&mask != 0
}

// BlockType classifies how a hit must be blocked.
type BlockType uint8

const (
	BlockLow BlockType = iota
	BlockMid
	BlockHigh
)

// MoveInput is a state's trigger: a required relative direction or a
// required motion, plus a required button. RelNone and RelMotionNone
// act as wildcards.
type MoveInput struct {
	Button input.ButtonFlag
	Motion input.RelativeMotion
	Dir    input.RelativeDirection
}

// StartBehaviorKind selects what entering a state does to velocity.
type StartBehaviorKind uint8

const (
	StartNone StartBehaviorKind = iota
	StartSetVel
	StartAddFrictionVel
)

// StartBehavior is applied once when a state is entered. SetVel
// overwrites the velocity; AddFrictionVel zeroes it and adds to the
// decaying friction velocity instead.
type StartBehavior struct {
	Kind StartBehaviorKind
	Vel  Vec2
}

// EndBehaviorKind selects how a state exits on its own.
type EndBehaviorKind uint8

const (
	EndEndless EndBehaviorKind = iota
	EndOnFrame
	EndOnGrounded
	EndOnStunEnd
)

// EndBehavior is a state's automatic exit rule. Target names the
// destination state and is resolved when the context is built.
type EndBehavior struct {
	Kind   EndBehaviorKind
	Frame  int
	Target string
}

// endBehavior is the resolved form with a state index target.
type endBehavior struct {
	kind   EndBehaviorKind
	frame  int
	target StateIndex
}

// CancelWindow is the half-open frame range [Start, End) during which
// a state may cancel into its options. The zero value never opens;
// an End of Forever stays open once reached.
type CancelWindow struct {
	Start int
	End   int
}

// contains reports whether frame lies inside the window.
func (w CancelWindow) contains(frame int) bool {
	return frame >= w.Start && frame < w.End
}
