package config

import (
	"fmt"

	"github.com/younwookim/fg/internal/domain/character"
	"github.com/younwookim/fg/internal/domain/input"
)

// CharacterConfig is the root config for a character JSON file.
type CharacterConfig struct {
	Name           string       `json:"name"`
	HP             float64      `json:"hp"`
	Moves          []MoveConfig `json:"moves"`
	BlockStunState string       `json:"block_stun_state"`
	GroundHitState string       `json:"ground_hit_state"`
	LaunchHitState string       `json:"launch_hit_state"`
}

// MoveConfig is one state of the character. Optional sections keep
// the JSON small: no end_behavior means the move runs forever, no
// cancel_window means it never cancels.
type MoveConfig struct {
	Name          string               `json:"name"`
	Input         InputConfig          `json:"input"`
	HitBoxes      []HitBoxFrameConfig  `json:"hit_boxes"`
	HurtBoxes     []HurtBoxFrameConfig `json:"hurt_boxes"`
	CollisionBox  RectConfig           `json:"collision_box"`
	StartBehavior *StartBehaviorConfig `json:"start_behavior"`
	Flags         []string             `json:"flags"`
	EndBehavior   *EndBehaviorConfig   `json:"end_behavior"`
	CancelWindow  *CancelWindowConfig  `json:"cancel_window"`
	CancelOptions []string             `json:"cancel_options"`
}

// InputConfig is a move's trigger. A move is triggered either by a
// held direction or by a buffered motion, always with its button.
// "Any" or an absent dir matches every direction.
type InputConfig struct {
	Dir    string `json:"dir"`
	Motion string `json:"motion"`
	Button string `json:"button"`
}

// StartBehaviorConfig is applied once on entering the move.
type StartBehaviorConfig struct {
	Type string    `json:"type"`
	Vel  VecConfig `json:"vel"`
}

// EndBehaviorConfig is the move's automatic exit.
type EndBehaviorConfig struct {
	Type  string `json:"type"`
	Frame int    `json:"frame"`
	State string `json:"state"`
}

// CancelWindowConfig is a half-open frame range. An absent end keeps
// the window open to the end of the move.
type CancelWindowConfig struct {
	Start *int `json:"start"`
	End   *int `json:"end"`
}

// HitBoxFrameConfig keys the attacking boxes active from a frame on.
type HitBoxFrameConfig struct {
	Frame int            `json:"frame"`
	Boxes []HitBoxConfig `json:"boxes"`
}

// HurtBoxFrameConfig keys the vulnerable boxes active from a frame on.
type HurtBoxFrameConfig struct {
	Frame int          `json:"frame"`
	Boxes []RectConfig `json:"boxes"`
}

// HitBoxConfig is an attacking box. An absent hit_stun marks a
// launcher.
type HitBoxConfig struct {
	Rect      RectConfig `json:"rect"`
	Dmg       float64    `json:"dmg"`
	BlockStun int        `json:"block_stun"`
	HitStun   *int       `json:"hit_stun"`
	BlockType string     `json:"block_type"`
}

// RectConfig is a box given by its center and size.
type RectConfig struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Rect converts to the domain box type.
func (r RectConfig) Rect() character.Rect {
	return character.Rect{X: r.X, Y: r.Y, W: r.W, H: r.H}
}

// Definition converts the parsed JSON into the domain definition,
// translating every behavior, flag and direction name.
func (c *CharacterConfig) Definition() (character.Definition, error) {
	def := character.Definition{
		Name:           c.Name,
		MaxHP:          c.HP,
		BlockStunState: c.BlockStunState,
		GroundHitState: c.GroundHitState,
		LaunchHitState: c.LaunchHitState,
	}
	for _, m := range c.Moves {
		mov, err := m.move()
		if err != nil {
			return character.Definition{}, fmt.Errorf("move %q: %w", m.Name, err)
		}
		def.Moves = append(def.Moves, mov)
	}
	return def, nil
}

func (m MoveConfig) move() (character.Move, error) {
	mov := character.Move{
		Name:          m.Name,
		CollisionBox:  m.CollisionBox.Rect(),
		CancelOptions: m.CancelOptions,
	}

	var err error
	if mov.Input, err = m.Input.moveInput(); err != nil {
		return character.Move{}, err
	}
	if mov.Flags, err = parseFlags(m.Flags); err != nil {
		return character.Move{}, err
	}
	if mov.StartBehavior, err = m.StartBehavior.behavior(); err != nil {
		return character.Move{}, err
	}
	if mov.EndBehavior, err = m.EndBehavior.behavior(); err != nil {
		return character.Move{}, err
	}
	mov.CancelWindow = m.CancelWindow.window()

	for _, kf := range m.HitBoxes {
		frame := character.HitBoxFrame{Frame: kf.Frame}
		for _, b := range kf.Boxes {
			box, err := b.hitBox()
			if err != nil {
				return character.Move{}, err
			}
			frame.Boxes = append(frame.Boxes, box)
		}
		mov.HitBoxes = append(mov.HitBoxes, frame)
	}
	for _, kf := range m.HurtBoxes {
		frame := character.HurtBoxFrame{Frame: kf.Frame}
		for _, b := range kf.Boxes {
			frame.Boxes = append(frame.Boxes, b.Rect())
		}
		mov.HurtBoxes = append(mov.HurtBoxes, frame)
	}
	return mov, nil
}

func (in InputConfig) moveInput() (character.MoveInput, error) {
	var out character.MoveInput
	var err error
	if out.Dir, err = parseRelativeDirection(in.Dir); err != nil {
		return character.MoveInput{}, err
	}
	if out.Motion, err = parseRelativeMotion(in.Motion); err != nil {
		return character.MoveInput{}, err
	}
	if out.Button, err = parseButton(in.Button); err != nil {
		return character.MoveInput{}, err
	}
	return out, nil
}

func parseRelativeDirection(name string) (input.RelativeDirection, error) {
	switch name {
	case "", "Any":
		return input.RelNone, nil
	case "Neutral":
		return input.RelNeutral, nil
	case "Up":
		return input.RelUp, nil
	case "Down":
		return input.RelDown, nil
	case "Back":
		return input.RelBack, nil
	case "Forward":
		return input.RelForward, nil
	case "UpBack":
		return input.RelUpBack, nil
	case "DownBack":
		return input.RelDownBack, nil
	case "UpForward":
		return input.RelUpForward, nil
	case "DownForward":
		return input.RelDownForward, nil
	default:
		return 0, fmt.Errorf("unknown direction %q", name)
	}
}

func parseRelativeMotion(name string) (input.RelativeMotion, error) {
	switch name {
	case "":
		return input.RelMotionNone, nil
	case "DownDown":
		return input.RelDownDown, nil
	case "ForwardForward":
		return input.RelForwardForward, nil
	case "BackBack":
		return input.RelBackBack, nil
	case "QcForward":
		return input.RelQcForward, nil
	case "QcBack":
		return input.RelQcBack, nil
	case "DpForward":
		return input.RelDpForward, nil
	case "DpBack":
		return input.RelDpBack, nil
	default:
		return 0, fmt.Errorf("unknown motion %q", name)
	}
}

func parseButton(name string) (input.ButtonFlag, error) {
	switch name {
	case "", "None":
		return input.ButtonNone, nil
	case "L":
		return input.ButtonL, nil
	case "M":
		return input.ButtonM, nil
	case "H":
		return input.ButtonH, nil
	default:
		return 0, fmt.Errorf("unknown button %q", name)
	}
}

func parseFlags(names []string) (character.StateFlags, error) {
	var flags character.StateFlags
	for _, name := range names {
		switch name {
		case "Airborne":
			flags |= character.FlagAirborne
		case "CancelOnWhiff":
			flags |= character.FlagCancelOnWhiff
		case "LockSide":
			flags |= character.FlagLockSide
		case "LowBlock":
			flags |= character.FlagLowBlock
		case "HighBlock":
			flags |= character.FlagHighBlock
		default:
			return 0, fmt.Errorf("unknown flag %q", name)
		}
	}
	return flags, nil
}

func (b *StartBehaviorConfig) behavior() (character.StartBehavior, error) {
	if b == nil {
		return character.StartBehavior{}, nil
	}
	switch b.Type {
	case "SetVel":
		return character.StartBehavior{Kind: character.StartSetVel, Vel: b.Vel.Vec2()}, nil
	case "AddFrictionVel":
		return character.StartBehavior{Kind: character.StartAddFrictionVel, Vel: b.Vel.Vec2()}, nil
	default:
		return character.StartBehavior{}, fmt.Errorf("unknown start behavior %q", b.Type)
	}
}

func (b *EndBehaviorConfig) behavior() (character.EndBehavior, error) {
	if b == nil {
		return character.EndBehavior{Kind: character.EndEndless}, nil
	}
	switch b.Type {
	case "Endless":
		return character.EndBehavior{Kind: character.EndEndless}, nil
	case "OnFrameXToStateY":
		return character.EndBehavior{Kind: character.EndOnFrame, Frame: b.Frame, Target: b.State}, nil
	case "OnGroundedToStateY":
		return character.EndBehavior{Kind: character.EndOnGrounded, Target: b.State}, nil
	case "OnStunEndToStateY":
		return character.EndBehavior{Kind: character.EndOnStunEnd, Target: b.State}, nil
	default:
		return character.EndBehavior{}, fmt.Errorf("unknown end behavior %q", b.Type)
	}
}

func (w *CancelWindowConfig) window() character.CancelWindow {
	if w == nil {
		return character.CancelWindow{}
	}
	out := character.CancelWindow{Start: character.Forever, End: character.Forever}
	if w.Start != nil {
		out.Start = *w.Start
	}
	if w.End != nil {
		out.End = *w.End
	}
	return out
}

func (b HitBoxConfig) hitBox() (character.HitBox, error) {
	out := character.HitBox{
		Rect:      b.Rect.Rect(),
		Dmg:       b.Dmg,
		BlockStun: b.BlockStun,
		HitStun:   character.Forever,
	}
	if b.HitStun != nil {
		out.HitStun = *b.HitStun
	}
	switch b.BlockType {
	case "Low":
		out.BlockType = character.BlockLow
	case "Mid":
		out.BlockType = character.BlockMid
	case "High":
		out.BlockType = character.BlockHigh
	default:
		return character.HitBox{}, fmt.Errorf("unknown block type %q", b.BlockType)
	}
	return out, nil
}
