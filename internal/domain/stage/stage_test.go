package stage

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/younwookim/fg/internal/domain/character"
)

func TestStage_Bind(t *testing.T) {
	s := New(DefaultWidth)

	tests := []struct {
		name string
		pos  character.Vec2
		want character.Vec2
	}{
		{"inside stays", character.Vec2{X: 100, Y: 5}, character.Vec2{X: 100, Y: 5}},
		{"left wall clamps", character.Vec2{X: -500}, character.Vec2{X: -420}},
		{"right wall clamps", character.Vec2{X: 500}, character.Vec2{X: 420}},
		{"wall itself stays", character.Vec2{X: 420}, character.Vec2{X: 420}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Bind(tt.pos))
		})
	}
}
