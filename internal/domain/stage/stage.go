// Package stage bounds the playfield the characters fight on.
package stage

import "github.com/younwookim/fg/internal/domain/character"

// DefaultWidth is the wall-to-wall width of the standard stage.
const DefaultWidth = 840.0

// Stage is a flat floor between two walls centered on x = 0.
type Stage struct {
	width float64
}

// New returns a stage with the given wall-to-wall width.
func New(width float64) Stage {
	return Stage{width: width}
}

// Width returns the wall-to-wall width.
func (s Stage) Width() float64 {
	return s.width
}

// Bind clamps a position between the stage walls.
func (s Stage) Bind(pos character.Vec2) character.Vec2 {
	half := s.width / 2
	if pos.X < -half {
		pos.X = -half
	} else if pos.X > half {
		pos.X = half
	}
	return pos
}
