package character

import (
	"errors"
	"fmt"
)

// HitBoxFrame is a timeline keyframe: the boxes become active on
// Frame and stay until the next keyframe. A move with startup frames
// leads with an empty keyframe at 0.
type HitBoxFrame struct {
	Frame int
	Boxes []HitBox
}

// HurtBoxFrame is the vulnerable-box counterpart of HitBoxFrame.
type HurtBoxFrame struct {
	Frame int
	Boxes []Rect
}

// Move describes one state of a character as loaded from
// configuration, before names are resolved to indices.
type Move struct {
	Name          string
	Input         MoveInput
	HitBoxes      []HitBoxFrame
	HurtBoxes     []HurtBoxFrame
	CollisionBox  Rect
	StartBehavior StartBehavior
	Flags         StateFlags
	EndBehavior   EndBehavior
	CancelWindow  CancelWindow
	CancelOptions []string
}

// Definition is a full character as loaded from configuration. The
// three named states are where hits send the character.
type Definition struct {
	Name           string
	MaxHP          float64
	Moves          []Move
	BlockStunState string
	GroundHitState string
	LaunchHitState string
}

// boxRun is one run of a box timeline: the boxes in the pool range
// [start, end) stay active for frames frames. The last run of every
// timeline lasts Forever.
type boxRun struct {
	frames     int
	start, end int
}

type indexRange struct {
	start, end int
}

// stateData holds every state's table columns side by side, indexed
// by StateIndex. Timelines and cancel options live in shared pools
// addressed by per-state ranges.
type stateData struct {
	inputs         []MoveInput
	cancelWindows  []CancelWindow
	cancelOptions  []indexRange
	hitBoxesStart  []int
	hurtBoxesStart []int
	startBehaviors []StartBehavior
	flags          []StateFlags
	endBehaviors   []endBehavior
	collisionBoxes []Rect

	hitBoxRuns       []boxRun
	hurtBoxRuns      []boxRun
	cancelOptionData []StateIndex

	hitBoxData  []HitBox
	hurtBoxData []Rect
}

// Context is a character's immutable state table, shared by every
// snapshot of its State.
type Context struct {
	name   string
	states stateData

	blockStunState StateIndex
	groundHitState StateIndex
	launchHitState StateIndex

	maxHP     float64
	startPos  Vec2
	startSide Side
}

// NewContext resolves a Definition's state names and packs its moves
// into a state table. The character starts every round at startPos on
// startSide, in the first move of the definition.
func NewContext(def Definition, startPos Vec2, startSide Side) (*Context, error) {
	if len(def.Moves) == 0 {
		return nil, errors.New("character needs at least one move")
	}

	byName := make(map[string]StateIndex, len(def.Moves))
	for i, mov := range def.Moves {
		if _, dup := byName[mov.Name]; dup {
			return nil, fmt.Errorf("duplicate move %q", mov.Name)
		}
		byName[mov.Name] = i
	}

	ctx := &Context{
		name:  def.Name,
		maxHP: def.MaxHP,

		startPos:  startPos,
		startSide: startSide,
	}

	var err error
	if ctx.blockStunState, err = resolveState(byName, def.BlockStunState); err != nil {
		return nil, fmt.Errorf("invalid block_stun_state: %w", err)
	}
	if ctx.groundHitState, err = resolveState(byName, def.GroundHitState); err != nil {
		return nil, fmt.Errorf("invalid ground_hit_state: %w", err)
	}
	if ctx.launchHitState, err = resolveState(byName, def.LaunchHitState); err != nil {
		return nil, fmt.Errorf("invalid launch_hit_state: %w", err)
	}

	data := &ctx.states
	for _, mov := range def.Moves {
		data.inputs = append(data.inputs, mov.Input)
		data.cancelWindows = append(data.cancelWindows, mov.CancelWindow)
		data.startBehaviors = append(data.startBehaviors, mov.StartBehavior)
		data.flags = append(data.flags, mov.Flags)
		data.collisionBoxes = append(data.collisionBoxes, mov.CollisionBox)

		eb, err := resolveEndBehavior(byName, mov.EndBehavior)
		if err != nil {
			return nil, fmt.Errorf("move %q: %w", mov.Name, err)
		}
		data.endBehaviors = append(data.endBehaviors, eb)

		opts := indexRange{start: len(data.cancelOptionData)}
		for _, name := range mov.CancelOptions {
			target, err := resolveState(byName, name)
			if err != nil {
				return nil, fmt.Errorf("move %q: cancel option: %w", mov.Name, err)
			}
			data.cancelOptionData = append(data.cancelOptionData, target)
		}
		opts.end = len(data.cancelOptionData)
		data.cancelOptions = append(data.cancelOptions, opts)

		data.hitBoxesStart = append(data.hitBoxesStart, len(data.hitBoxRuns))
		if err := appendHitBoxRuns(data, mov); err != nil {
			return nil, err
		}
		data.hurtBoxesStart = append(data.hurtBoxesStart, len(data.hurtBoxRuns))
		if err := appendHurtBoxRuns(data, mov); err != nil {
			return nil, err
		}
	}

	return ctx, nil
}

func resolveState(byName map[string]StateIndex, name string) (StateIndex, error) {
	i, ok := byName[name]
	if !ok {
		return 0, fmt.Errorf("could not find a move named %q", name)
	}
	return i, nil
}

func resolveEndBehavior(byName map[string]StateIndex, eb EndBehavior) (endBehavior, error) {
	out := endBehavior{kind: eb.Kind, frame: eb.Frame}
	if eb.Kind == EndEndless {
		return out, nil
	}
	target, err := resolveState(byName, eb.Target)
	if err != nil {
		return endBehavior{}, fmt.Errorf("end behavior: %w", err)
	}
	out.target = target
	return out, nil
}

// appendHitBoxRuns converts a keyframe timeline into runs of
// durations. Consecutive keyframes yield a run lasting their frame
// difference, and the last keyframe stays active forever.
func appendHitBoxRuns(data *stateData, mov Move) error {
	entries := mov.HitBoxes
	for i := 0; i+1 < len(entries); i++ {
		dur := entries[i+1].Frame - entries[i].Frame
		if dur <= 0 {
			return fmt.Errorf("move %q: hitbox keyframes must have ascending frames [%d - %d]",
				mov.Name, entries[i].Frame, entries[i+1].Frame)
		}
		start := len(data.hitBoxData)
		data.hitBoxData = append(data.hitBoxData, entries[i].Boxes...)
		data.hitBoxRuns = append(data.hitBoxRuns, boxRun{frames: dur, start: start, end: len(data.hitBoxData)})
	}

	start := len(data.hitBoxData)
	if len(entries) > 0 {
		data.hitBoxData = append(data.hitBoxData, entries[len(entries)-1].Boxes...)
	}
	data.hitBoxRuns = append(data.hitBoxRuns, boxRun{frames: Forever, start: start, end: len(data.hitBoxData)})
	return nil
}

func appendHurtBoxRuns(data *stateData, mov Move) error {
	entries := mov.HurtBoxes
	for i := 0; i+1 < len(entries); i++ {
		dur := entries[i+1].Frame - entries[i].Frame
		if dur <= 0 {
			return fmt.Errorf("move %q: hurtbox keyframes must have ascending frames [%d - %d]",
				mov.Name, entries[i].Frame, entries[i+1].Frame)
		}
		start := len(data.hurtBoxData)
		data.hurtBoxData = append(data.hurtBoxData, entries[i].Boxes...)
		data.hurtBoxRuns = append(data.hurtBoxRuns, boxRun{frames: dur, start: start, end: len(data.hurtBoxData)})
	}

	start := len(data.hurtBoxData)
	if len(entries) > 0 {
		data.hurtBoxData = append(data.hurtBoxData, entries[len(entries)-1].Boxes...)
	}
	data.hurtBoxRuns = append(data.hurtBoxRuns, boxRun{frames: Forever, start: start, end: len(data.hurtBoxData)})
	return nil
}

// Name returns the character's display name.
func (c *Context) Name() string {
	return c.name
}

// MaxHP returns the round-start health.
func (c *Context) MaxHP() float64 {
	return c.maxHP
}

// StartPos returns the round-start position.
func (c *Context) StartPos() Vec2 {
	return c.startPos
}

// StartSide returns the round-start side.
func (c *Context) StartSide() Side {
	return c.startSide
}

// activeHitBoxes walks a state's timeline to the run covering frame.
// The Forever run at the end of every timeline bounds the walk.
func (c *Context) activeHitBoxes(state StateIndex, frame int) []HitBox {
	i := c.states.hitBoxesStart[state]
	for {
		r := c.states.hitBoxRuns[i]
		if frame < r.frames {
			return c.states.hitBoxData[r.start:r.end]
		}
		frame -= r.frames
		i++
	}
}

func (c *Context) activeHurtBoxes(state StateIndex, frame int) []Rect {
	i := c.states.hurtBoxesStart[state]
	for {
		r := c.states.hurtBoxRuns[i]
		if frame < r.frames {
			return c.states.hurtBoxData[r.start:r.end]
		}
		frame -= r.frames
		i++
	}
}
