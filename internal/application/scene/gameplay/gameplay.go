// Package gameplay runs one best-of-three match: the round-start
// countdown, the deterministic per-tick fight simulation, hit freeze,
// and scoring. It knows nothing about input devices or the network;
// callers feed parsed inputs through the shared game state.
package gameplay

import (
	"github.com/younwookim/fg/internal/application/state"
	"github.com/younwookim/fg/internal/domain/character"
	"github.com/younwookim/fg/internal/domain/stage"
)

const (
	framesPerSecond = 60

	// PauseDuration is how many frames the round-start countdown
	// holds both characters in place.
	PauseDuration = 180

	roundSeconds = 99
	roundFrames  = roundSeconds * framesPerSecond

	// ScoreToWin rounds takes the match.
	ScoreToWin = 2

	hitFreezeFrames   = 4
	clashFreezeFrames = 8
)

// Phase is the part of the match a session is in.
type Phase uint8

const (
	PhaseRoundStart Phase = iota
	PhaseDuringRound
	PhaseExit
)

// Session is the match flow around the shared game state: phase,
// round timer, hit freeze and scores. Plain value data, so it is
// snapshotted and rolled back together with the game state.
type Session struct {
	p1, p2 *character.Context
	stg    stage.Stage

	phase   Phase
	timer   int
	freeze  int
	p1Score int
	p2Score int
}

// NewSession starts a match at the first round's countdown.
func NewSession(p1, p2 *character.Context, stg stage.Stage) Session {
	return Session{
		p1:    p1,
		p2:    p2,
		stg:   stg,
		phase: PhaseRoundStart,
		timer: PauseDuration,
	}
}

// Phase returns the current match phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// Scores returns the rounds won by each player.
func (s *Session) Scores() (int, int) {
	return s.p1Score, s.p2Score
}

// Winner returns the side that took the match once the session has
// exited.
func (s *Session) Winner() (character.Side, bool) {
	if s.phase != PhaseExit {
		return 0, false
	}
	if s.p1Score >= ScoreToWin {
		return character.SideLeft, true
	}
	return character.SideRight, true
}

// TimeLeftSeconds returns the round clock for the HUD.
func (s *Session) TimeLeftSeconds() int {
	if s.phase != PhaseDuringRound {
		return roundSeconds
	}
	left := (roundFrames - s.timer + framesPerSecond - 1) / framesPerSecond
	if left < 0 {
		return 0
	}
	return left
}

// CountdownFrames returns the remaining round-start frames.
func (s *Session) CountdownFrames() int {
	if s.phase != PhaseRoundStart {
		return 0
	}
	return s.timer
}

// Frozen reports whether the fight is inside a hit freeze.
func (s *Session) Frozen() bool {
	return s.freeze > 0
}

// Tick advances the match by one frame. Both players' inputs must
// already be up to date in g; the same g and tick order on both peers
// is what keeps the simulation deterministic.
func (s *Session) Tick(g *state.GameState) {
	switch s.phase {
	case PhaseRoundStart:
		s.tickRoundStart()
	case PhaseDuringRound:
		s.tickDuringRound(g)
	}
}

// tickRoundStart holds both characters at their start positions while
// the countdown runs. Inputs keep buffering, so a motion finished
// during the countdown comes out on the first fighting frame.
func (s *Session) tickRoundStart() {
	s.timer--
	if s.timer <= 0 {
		s.phase = PhaseDuringRound
		s.timer = 0
	}
}

// tickDuringRound is the fight itself. A hit freeze suspends the
// whole tick, round clock included; only the freeze counter moves.
func (s *Session) tickDuringRound(g *state.GameState) {
	if s.freeze > 0 {
		s.freeze--
	} else {
		g.P1.StateUpdate(&g.P1Inputs, s.p1)
		g.P2.StateUpdate(&g.P2Inputs, s.p2)

		g.P1.MovementUpdate(s.p1)
		g.P2.MovementUpdate(s.p2)

		pos1, pos2 := character.Separate(
			g.P1.Pos(), g.P1.GetCollisionBox(s.p1), g.P1.Side(),
			g.P2.Pos(), g.P2.GetCollisionBox(s.p2), g.P2.Side(),
		)
		g.P1.SetPos(s.stg.Bind(pos1))
		g.P2.SetPos(s.stg.Bind(pos2))

		if side, ok := character.DetectSide(g.P1.Pos(), g.P2.Pos()); ok {
			g.P1.SetSide(s.p1, side)
			g.P2.SetSide(s.p2, side.Opposite())
		}

		s.resolveHits(g)

		g.P1.AdvanceFrame()
		g.P2.AdvanceFrame()
		s.timer++
	}

	s.checkRoundEnd(g)
}

// resolveHits applies this frame's hit exchanges. A one-sided hit
// freezes briefly; a trade freezes longer and damages neither, both
// moves just spend themselves.
func (s *Session) resolveHits(g *state.GameState) {
	hit1, ok1 := character.CheckHitCollisions(
		g.P1.Side(), g.P1.Pos(), g.P1.GetHitBoxes(s.p1),
		g.P2.Side(), g.P2.Pos(), g.P2.GetHurtBoxes(s.p2),
	)
	hit2, ok2 := character.CheckHitCollisions(
		g.P2.Side(), g.P2.Pos(), g.P2.GetHitBoxes(s.p2),
		g.P1.Side(), g.P1.Pos(), g.P1.GetHurtBoxes(s.p1),
	)

	switch {
	case ok1 && ok2:
		g.P1.SuccessfulHit(s.p1, hit1, true)
		g.P2.SuccessfulHit(s.p2, hit2, true)
		s.freeze = clashFreezeFrames
	case ok1:
		blocked := g.P2.ReceiveHit(s.p2, hit1)
		g.P1.SuccessfulHit(s.p1, hit1, blocked)
		s.freeze = hitFreezeFrames
	case ok2:
		blocked := g.P1.ReceiveHit(s.p1, hit2)
		g.P2.SuccessfulHit(s.p2, hit2, blocked)
		s.freeze = hitFreezeFrames
	}
}

// checkRoundEnd awards rounds on knockouts and time over. A double
// knockout or an even clock awards both players.
func (s *Session) checkRoundEnd(g *state.GameState) {
	hp1 := g.P1.HPPercent(s.p1)
	hp2 := g.P2.HPPercent(s.p2)

	switch {
	case hp1 == 0 && hp2 == 0:
		s.endRound(g, true, true)
	case hp2 == 0:
		s.endRound(g, true, false)
	case hp1 == 0:
		s.endRound(g, false, true)
	case s.timer >= roundFrames:
		switch {
		case hp1 > hp2:
			s.endRound(g, true, false)
		case hp1 < hp2:
			s.endRound(g, false, true)
		default:
			s.endRound(g, true, true)
		}
	}
}

// endRound scores the finished round. When both players reach match
// point together the match keeps going, a round apiece is taken back
// and the next round decides it.
func (s *Session) endRound(g *state.GameState, p1Won, p2Won bool) {
	if p1Won {
		s.p1Score++
	}
	if p2Won {
		s.p2Score++
	}

	switch {
	case s.p1Score >= ScoreToWin && s.p2Score >= ScoreToWin:
		s.p1Score--
		s.p2Score--
		s.startRound(g)
	case s.p1Score >= ScoreToWin || s.p2Score >= ScoreToWin:
		s.phase = PhaseExit
	default:
		s.startRound(g)
	}
}

func (s *Session) startRound(g *state.GameState) {
	s.phase = PhaseRoundStart
	s.timer = PauseDuration
	s.freeze = 0
	g.ResetRound(s.p1, s.p2)
}
