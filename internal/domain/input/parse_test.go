package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHistory_Parse_QuarterCircleWithButton(t *testing.T) {
	h := NewHistory(0)
	feed(h, Down, ButtonNone, 3)
	feed(h, DownRight, ButtonNone, 3)
	feed(h, Right, ButtonNone, 3)
	feed(h, Right, ButtonL, 1)

	p := h.Parse()

	assert.Equal(t, Right, p.Dir)
	assert.Equal(t, MotionQcRight, p.Motion, "no neutral gap, so no dash")
	assert.Equal(t, ButtonL, p.Pressed)
	assert.Equal(t, ButtonL, p.Held)
}

func TestHistory_Parse_DragonPunch(t *testing.T) {
	h := NewHistory(0)
	feed(h, Right, ButtonNone, 2)
	feed(h, Neutral, ButtonNone, 2)
	feed(h, Down, ButtonNone, 2)
	feed(h, DownRight, ButtonNone, 2)

	p := h.Parse()

	assert.Equal(t, DownRight, p.Dir)
	assert.Equal(t, MotionDpRight, p.Motion)
}

func TestHistory_Parse_Dash(t *testing.T) {
	t.Run("recognizes a quick double tap", func(t *testing.T) {
		h := NewHistory(0)
		feed(h, Right, ButtonNone, 1)
		feed(h, Neutral, ButtonNone, 1)
		feed(h, Right, ButtonNone, 1)

		p := h.Parse()

		assert.Equal(t, MotionRightRight, p.Motion)
	})

	t.Run("rejects a tap outside the dash window", func(t *testing.T) {
		h := NewHistory(0)
		feed(h, Right, ButtonNone, 1)
		feed(h, Neutral, ButtonNone, DashHistoryLen+4)
		feed(h, Right, ButtonNone, 1)

		p := h.Parse()

		assert.Equal(t, MotionNone, p.Motion)
	})

	t.Run("left dash mirrors", func(t *testing.T) {
		h := NewHistory(0)
		feed(h, Left, ButtonNone, 1)
		feed(h, Neutral, ButtonNone, 1)
		feed(h, Left, ButtonNone, 1)

		p := h.Parse()

		assert.Equal(t, MotionLeftLeft, p.Motion)
	})
}

func TestHistory_Parse_DownDown(t *testing.T) {
	h := NewHistory(0)
	feed(h, Down, ButtonNone, 2)
	feed(h, Neutral, ButtonNone, 2)
	feed(h, Down, ButtonNone, 2)

	p := h.Parse()

	assert.Equal(t, MotionDownDown, p.Motion)
}

func TestHistory_Parse_NeutralLogIsQuiet(t *testing.T) {
	h := NewHistory(0)
	h.SkipFor(40)

	p := h.Parse()

	assert.Equal(t, Neutral, p.Dir)
	assert.Equal(t, MotionNone, p.Motion)
	assert.Equal(t, ButtonNone, p.Pressed)
	assert.Equal(t, ButtonNone, p.Held)
}

func TestHistory_Parse_PressedOnlyOnRunStart(t *testing.T) {
	h := NewHistory(0)
	feed(h, Neutral, ButtonL, 1)
	h.Skip()

	t.Run("held but not pressed one frame later", func(t *testing.T) {
		p := h.Parse()

		assert.Equal(t, ButtonNone, p.Pressed)
		assert.Equal(t, ButtonL, p.Held)
	})

	t.Run("pressed exactly on the run start frame", func(t *testing.T) {
		p := h.ParseAt(1)

		assert.Equal(t, ButtonL, p.Pressed)
	})
}

func TestHistory_Parse_DelayShiftsCursor(t *testing.T) {
	delayed := NewHistory(3)
	plain := NewHistory(0)
	for _, h := range []*History{delayed, plain} {
		feed(h, Down, ButtonNone, 2)
		feed(h, DownRight, ButtonNone, 2)
		feed(h, Right, ButtonM, 2)
	}

	t.Run("delay reads the past", func(t *testing.T) {
		p := delayed.Parse()

		assert.Equal(t, DownRight, p.Dir)
	})

	t.Run("delay equals an explicit rollback", func(t *testing.T) {
		assert.Equal(t, plain.ParseAt(3), delayed.Parse())
	})
}

func TestHistory_Parse_RollbackRereadsRewrittenLog(t *testing.T) {
	h := NewHistory(0)
	h.SkipFor(9)

	before := h.ParseAt(3)
	h.AppendInput(3, Down, ButtonNone)
	after := h.ParseAt(3)

	assert.Equal(t, Neutral, before.Dir)
	assert.Equal(t, Down, after.Dir)
}

func TestMotion_SideTranslation(t *testing.T) {
	t.Run("left side keeps the bit layout", func(t *testing.T) {
		m := MotionQcRight | MotionDownDown

		assert.Equal(t, RelQcForward|RelDownDown, m.OnLeftSide())
	})

	t.Run("right side swaps forward and back", func(t *testing.T) {
		m := MotionQcLeft | MotionDpRight | MotionDownDown

		assert.Equal(t, RelQcForward|RelDpBack|RelDownDown, m.OnRightSide())
	})

	t.Run("full left set becomes full forward set", func(t *testing.T) {
		m := MotionLeftLeft | MotionQcLeft | MotionDpLeft

		assert.Equal(t, RelForwardForward|RelQcForward|RelDpForward, m.OnRightSide())
	})
}

func TestInputs_Update(t *testing.T) {
	var in Inputs

	in.Update(Parsed{Dir: Down, Motion: MotionQcRight, Pressed: ButtonL, Held: ButtonL | ButtonM})

	t.Run("reflects the newest frame", func(t *testing.T) {
		assert.Equal(t, Down, in.Dir())
		assert.Equal(t, ButtonL|ButtonM, in.ActiveButtons())
		assert.Equal(t, BufferedMove{MotionQcRight, ButtonL}, in.MoveBuf()[0])
	})

	t.Run("older moves shift back", func(t *testing.T) {
		in.Update(Parsed{Dir: Neutral})

		assert.Equal(t, BufferedMove{MotionNone, ButtonNone}, in.MoveBuf()[0])
		assert.Equal(t, BufferedMove{MotionQcRight, ButtonL}, in.MoveBuf()[1])
	})

	t.Run("buffer holds four frames", func(t *testing.T) {
		var full Inputs
		full.Update(Parsed{Motion: MotionDpRight, Pressed: ButtonH})
		for i := 0; i < MotionBufSize-1; i++ {
			full.Update(Parsed{})
		}
		assert.Equal(t, BufferedMove{MotionDpRight, ButtonH}, full.MoveBuf()[MotionBufSize-1])

		full.Update(Parsed{})
		assert.Equal(t, BufferedMove{MotionNone, ButtonNone}, full.MoveBuf()[MotionBufSize-1])
	})

	t.Run("reset clears everything", func(t *testing.T) {
		in.Reset()

		assert.Equal(t, Neutral, in.Dir())
		assert.Equal(t, ButtonNone, in.ActiveButtons())
	})
}

func BenchmarkHistory_ParseAt(b *testing.B) {
	h := NewHistory(3)
	feed(h, Down, ButtonNone, 3)
	feed(h, DownRight, ButtonNone, 3)
	feed(h, Right, ButtonNone, 3)
	feed(h, Right, ButtonL, 1)
	h.SkipFor(8)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = h.ParseAt(i % 8)
	}
}
