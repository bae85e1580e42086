package character

import "math"

// Rect is an axis-aligned box given by its center and size. Offsets
// are relative to the character origin at the feet, with X extending
// toward the faced direction until mirrored by OnSide.
type Rect struct {
	X, Y float64
	W, H float64
}

// OnSide mirrors the box's x offset for a right-side character.
func (r Rect) OnSide(s Side) Rect {
	if s == SideRight {
		r.X = -r.X
	}
	return r
}

// At translates the box to a world position.
func (r Rect) At(pos Vec2) Rect {
	r.X += pos.X
	r.Y += pos.Y
	return r
}

// Overlaps reports whether the two boxes intersect. Boxes that only
// touch at an edge do not overlap.
func (r Rect) Overlaps(o Rect) bool {
	return math.Abs(r.X-o.X)*2 < r.W+o.W && math.Abs(r.Y-o.Y)*2 < r.H+o.H
}

// HitBox is an attacking box with its on-hit numbers. A HitStun of
// Forever launches regardless of the defender's position.
type HitBox struct {
	Rect      Rect
	Dmg       float64
	BlockStun int
	HitStun   int
	BlockType BlockType
}
