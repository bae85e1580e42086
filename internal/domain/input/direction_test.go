package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDirectionFlag_Direction(t *testing.T) {
	tests := []struct {
		name     string
		held     DirectionFlag
		expected Direction
	}{
		{"none", FlagNeutral, Neutral},
		{"up", FlagUp, Up},
		{"down", FlagDown, Down},
		{"left", FlagLeft, Left},
		{"right", FlagRight, Right},
		{"up left", FlagUp | FlagLeft, UpLeft},
		{"up right", FlagUp | FlagRight, UpRight},
		{"down left", FlagDown | FlagLeft, DownLeft},
		{"down right", FlagDown | FlagRight, DownRight},
		{"up down cancels", FlagUp | FlagDown, Neutral},
		{"left right cancels", FlagLeft | FlagRight, Neutral},
		{"three keys collapse to up", FlagUp | FlagLeft | FlagRight, Up},
		{"three keys collapse to down", FlagDown | FlagLeft | FlagRight, Down},
		{"three keys collapse to left", FlagLeft | FlagUp | FlagDown, Left},
		{"three keys collapse to right", FlagRight | FlagUp | FlagDown, Right},
		{"all four is neutral", FlagUp | FlagDown | FlagLeft | FlagRight, Neutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.held.Direction())
		})
	}
}

func TestDirection_Wire(t *testing.T) {
	t.Run("round trips every direction", func(t *testing.T) {
		all := []Direction{Neutral, Up, Down, Left, Right, UpLeft, DownLeft, UpRight, DownRight}
		for _, d := range all {
			assert.Equal(t, d, DirectionFromWire(d.Wire()), d.String())
		}
	})

	t.Run("uses the fixed encoding", func(t *testing.T) {
		assert.Equal(t, byte(0), Neutral.Wire())
		assert.Equal(t, byte(1), Up.Wire())
		assert.Equal(t, byte(2), Down.Wire())
		assert.Equal(t, byte(3), Left.Wire())
		assert.Equal(t, byte(4), Right.Wire())
		assert.Equal(t, byte(5), UpLeft.Wire())
		assert.Equal(t, byte(6), DownLeft.Wire())
		assert.Equal(t, byte(7), UpRight.Wire())
		assert.Equal(t, byte(8), DownRight.Wire())
	})

	t.Run("maps unknown bytes to neutral", func(t *testing.T) {
		assert.Equal(t, Neutral, DirectionFromWire(9))
		assert.Equal(t, Neutral, DirectionFromWire(255))
	})
}

func TestDirection_SideTranslation(t *testing.T) {
	t.Run("left side faces right", func(t *testing.T) {
		assert.Equal(t, RelForward, Right.OnLeftSide())
		assert.Equal(t, RelBack, Left.OnLeftSide())
		assert.Equal(t, RelDownForward, DownRight.OnLeftSide())
		assert.Equal(t, RelUpBack, UpLeft.OnLeftSide())
	})

	t.Run("right side faces left", func(t *testing.T) {
		assert.Equal(t, RelForward, Left.OnRightSide())
		assert.Equal(t, RelBack, Right.OnRightSide())
		assert.Equal(t, RelDownForward, DownLeft.OnRightSide())
		assert.Equal(t, RelUpBack, UpRight.OnRightSide())
	})

	t.Run("vertical axis is side independent", func(t *testing.T) {
		assert.Equal(t, RelUp, Up.OnLeftSide())
		assert.Equal(t, RelUp, Up.OnRightSide())
		assert.Equal(t, RelDown, Down.OnLeftSide())
		assert.Equal(t, RelDown, Down.OnRightSide())
		assert.Equal(t, RelNeutral, Neutral.OnLeftSide())
		assert.Equal(t, RelNeutral, Neutral.OnRightSide())
	})
}

func TestRelativeDirection_MatchesOrIsNone(t *testing.T) {
	assert.True(t, RelNone.MatchesOrIsNone(RelForward))
	assert.True(t, RelNone.MatchesOrIsNone(RelNeutral))
	assert.True(t, RelForward.MatchesOrIsNone(RelForward))
	assert.False(t, RelForward.MatchesOrIsNone(RelBack))
	assert.False(t, RelDown.MatchesOrIsNone(RelNone))
}

func TestButtonFlag_Has(t *testing.T) {
	held := ButtonL | ButtonH

	assert.True(t, held.Has(ButtonL))
	assert.True(t, held.Has(ButtonL|ButtonH))
	assert.True(t, held.Has(ButtonNone))
	assert.False(t, held.Has(ButtonM))
	assert.False(t, held.Has(ButtonL|ButtonM))
}
