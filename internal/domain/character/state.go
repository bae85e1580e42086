package character

import (
	"math"

	"github.com/younwookim/fg/internal/domain/input"
)

const (
	hitGravityMult    = 1.2
	hitPushBack       = -6.0
	chipDmgPercentage = 0.1
	comboScalePerHit  = 0.1
	minComboScaling   = 0.1
)

// State is a character's mutable per-tick combat state. Plain value
// data, copied wholesale into rollback snapshots.
type State struct {
	currentState StateIndex
	currentFrame int
	hp           float64
	side         Side
	pos          Vec2
	vel          Vec2
	frictionVel  Vec2
	gravityMult  float64
	hitConnected bool
	stun         int
	comboScaling float64
}

// NewState returns a round-start state for the context.
func NewState(ctx *Context) State {
	return State{
		hp:           ctx.maxHP,
		side:         ctx.startSide,
		pos:          ctx.startPos,
		gravityMult:  1.0,
		comboScaling: 1.0,
	}
}

// Reset puts the character back at its round-start state.
func (s *State) Reset(ctx *Context) {
	*s = NewState(ctx)
}

// Pos returns the character's world position.
func (s *State) Pos() Vec2 {
	return s.pos
}

// SetPos moves the character, after collision separation or wall
// clamping.
func (s *State) SetPos(pos Vec2) {
	s.pos = pos
}

// Side returns the side the character fights from.
func (s *State) Side() Side {
	return s.side
}

// SetSide turns the character around unless its current state locks
// the side, as throws and some knockdowns do.
func (s *State) SetSide(ctx *Context, side Side) {
	if ctx.states.flags[s.currentState].Has(FlagLockSide) {
		return
	}
	s.side = side
}

// HPPercent returns remaining health as a 0..1 fraction.
func (s *State) HPPercent(ctx *Context) float64 {
	return s.hp / ctx.maxHP
}

// relativeMove is a buffered move translated to the character's side.
type relativeMove struct {
	motion  input.RelativeMotion
	buttons input.ButtonFlag
}

// StateUpdate translates the inputs to the character's side and runs
// state-end and cancel transitions.
func (s *State) StateUpdate(in *input.Inputs, ctx *Context) {
	var dir input.RelativeDirection
	var moves [input.MotionBufSize]relativeMove
	buf := in.MoveBuf()
	switch s.side {
	case SideLeft:
		dir = in.Dir().OnLeftSide()
		for i, m := range buf {
			moves[i] = relativeMove{motion: m.Motion.OnLeftSide(), buttons: m.Buttons}
		}
	case SideRight:
		dir = in.Dir().OnRightSide()
		for i, m := range buf {
			moves[i] = relativeMove{motion: m.Motion.OnRightSide(), buttons: m.Buttons}
		}
	}
	s.checkStateEnd(ctx)
	s.checkCancels(ctx, dir, moves[:])
}

// checkStateEnd applies the current state's automatic exit rule.
// Leaving a state by its frame limit ends any combo against this
// character, so scaling resets there and nowhere else.
func (s *State) checkStateEnd(ctx *Context) {
	eb := ctx.states.endBehaviors[s.currentState]
	switch eb.kind {
	case EndOnStunEnd:
		if s.currentFrame >= s.stun {
			s.enterState(ctx, eb.target)
		}
	case EndOnFrame:
		if s.currentFrame >= eb.frame {
			s.enterState(ctx, eb.target)
			s.comboScaling = 1.0
		}
	}
}

// checkCancels enters the first cancel option whose input trigger
// matches the current direction and a buffered move. Option order is
// the priority order.
func (s *State) checkCancels(ctx *Context, dir input.RelativeDirection, moves []relativeMove) {
	if !s.inCancelWindow(ctx) {
		return
	}
	opts := ctx.states.cancelOptions[s.currentState]
	for _, target := range ctx.states.cancelOptionData[opts.start:opts.end] {
		trigger := ctx.states.inputs[target]
		if !trigger.Dir.MatchesOrIsNone(dir) {
			continue
		}
		for _, m := range moves {
			if m.motion.Has(trigger.Motion) && m.buttons.Has(trigger.Button) {
				s.enterState(ctx, target)
				return
			}
		}
	}
}

// inCancelWindow requires the window frames and either a connected
// hit or a state that cancels on whiff.
func (s *State) inCancelWindow(ctx *Context) bool {
	if !ctx.states.cancelWindows[s.currentState].contains(s.currentFrame) {
		return false
	}
	return s.hitConnected || ctx.states.flags[s.currentState].Has(FlagCancelOnWhiff)
}

// enterState switches states at frame 0 and applies the new state's
// start behavior.
func (s *State) enterState(ctx *Context, next StateIndex) {
	s.currentState = next
	s.currentFrame = 0
	s.hitConnected = false
	sb := ctx.states.startBehaviors[next]
	switch sb.Kind {
	case StartSetVel:
		s.vel = sb.Vel
	case StartAddFrictionVel:
		s.vel = Vec2{}
		s.frictionVel.X += sb.Vel.X
		s.frictionVel.Y += sb.Vel.Y
	}
}

// velOnSide mirrors the x components for a right-side character, so
// positive x always means forward.
func (s *State) velOnSide() Vec2 {
	v := Vec2{
		X: s.vel.X + s.frictionVel.X,
		Y: s.vel.Y + s.frictionVel.Y,
	}
	if s.side == SideRight {
		v.X = -v.X
	}
	return v
}

// MovementUpdate integrates velocity, decays friction, and applies
// gravity and landing for airborne states.
func (s *State) MovementUpdate(ctx *Context) {
	v := s.velOnSide()
	s.pos.X += v.X
	s.pos.Y += v.Y

	s.frictionVel.X *= frictionCoefficient
	s.frictionVel.Y *= frictionCoefficient

	if !ctx.states.flags[s.currentState].Has(FlagAirborne) {
		return
	}
	if s.pos.Y <= 0 {
		s.pos.Y = 0
		s.vel.Y = 0
		s.frictionVel.Y = 0
		s.ground(ctx)
	} else {
		s.vel.Y -= gravityConstant * s.gravityMult
	}
}

// ground fires the on-ground exit if the state has one. Landing ends
// any launch, so the stacked hit gravity resets with it.
func (s *State) ground(ctx *Context) {
	eb := ctx.states.endBehaviors[s.currentState]
	if eb.kind == EndOnGrounded {
		s.enterState(ctx, eb.target)
		s.gravityMult = 1.0
	}
}

// AdvanceFrame moves the state one frame forward.
func (s *State) AdvanceFrame() {
	s.currentFrame++
}

// GetHitBoxes returns the attacking boxes active this frame, or none
// once the move has already connected.
func (s *State) GetHitBoxes(ctx *Context) []HitBox {
	if s.hitConnected {
		return nil
	}
	return ctx.activeHitBoxes(s.currentState, s.currentFrame)
}

// GetHurtBoxes returns the vulnerable boxes active this frame.
func (s *State) GetHurtBoxes(ctx *Context) []Rect {
	return ctx.activeHurtBoxes(s.currentState, s.currentFrame)
}

// GetCollisionBox returns the state's body box.
func (s *State) GetCollisionBox(ctx *Context) Rect {
	return ctx.states.collisionBoxes[s.currentState]
}

// ReceiveHit applies a connecting hit and reports whether it was
// blocked. Blocked hits deal chip damage and block stun; clean hits
// scale down the running combo before dealing damage and send the
// character into ground hit stun or a launch.
func (s *State) ReceiveHit(ctx *Context, hit HitBox) bool {
	var required StateFlags
	switch hit.BlockType {
	case BlockLow:
		required = FlagLowBlock
	case BlockMid:
		required = FlagLowBlock | FlagHighBlock
	case BlockHigh:
		required = FlagHighBlock
	}
	blocking := ctx.states.flags[s.currentState].Has(required)

	var dmg float64
	if blocking {
		s.stun = hit.BlockStun
		s.enterState(ctx, ctx.blockStunState)
		dmg = hit.Dmg * chipDmgPercentage
	} else {
		s.comboScaling = math.Max(s.comboScaling-comboScalePerHit, minComboScaling)
		s.setHitState(ctx, hit.HitStun)
		dmg = hit.Dmg * s.comboScaling
	}
	s.hp = math.Max(s.hp-dmg, 0)
	return blocking
}

// setHitState launches the character when it is airborne, already
// launched, or the hit stuns forever; otherwise it applies ground hit
// stun. Every launch while juggled stacks more gravity.
func (s *State) setHitState(ctx *Context, hitStun int) {
	if s.pos.Y != 0 || s.currentState == ctx.launchHitState || hitStun == Forever {
		s.enterState(ctx, ctx.launchHitState)
		s.gravityMult *= hitGravityMult
	} else {
		s.stun = hitStun
		s.enterState(ctx, ctx.groundHitState)
	}
}

// SuccessfulHit marks the attacker's move as connected and pushes a
// grounded attacker back, blocked or not.
func (s *State) SuccessfulHit(ctx *Context, hit HitBox, blocked bool) {
	if !ctx.states.flags[s.currentState].Has(FlagAirborne) {
		s.frictionVel.X += hitPushBack
	}
	s.hitConnected = true
}

// Defeated reports whether the character has run out of health.
func (s *State) Defeated() bool {
	return s.hp <= 0
}
