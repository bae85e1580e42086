package config

import (
	"fmt"

	"github.com/younwookim/fg/internal/domain/character"
)

// GameConfig is the root config for game.json
type GameConfig struct {
	Version        string         `json:"version"`
	MatchingServer string         `json:"matching_server"`
	StageWidth     float64        `json:"stage_width"`
	InputDelay     int            `json:"input_delay"`
	Players        []PlayerConfig `json:"players"`
}

// PlayerConfig names a player's character file and round-start
// placement.
type PlayerConfig struct {
	Character string    `json:"character"`
	StartSide string    `json:"start_side"`
	StartPos  VecConfig `json:"start_pos"`
}

// VecConfig is a 2D point in config files.
type VecConfig struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Vec2 converts to the domain vector type.
func (v VecConfig) Vec2() character.Vec2 {
	return character.Vec2{X: v.X, Y: v.Y}
}

// Side parses a player's configured starting side.
func (p PlayerConfig) Side() (character.Side, error) {
	switch p.StartSide {
	case "Left":
		return character.SideLeft, nil
	case "Right":
		return character.SideRight, nil
	default:
		return 0, fmt.Errorf("unknown start_side %q", p.StartSide)
	}
}
