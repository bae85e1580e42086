package character

import "math"

const (
	gravityConstant     = 0.4
	frictionCoefficient = 0.6
)

// DetectSide reports which side the first of two positions is on.
// The second return is false when the positions share an x, in which
// case sides stay as they were.
func DetectSide(p1, p2 Vec2) (Side, bool) {
	switch {
	case p1.X < p2.X:
		return SideLeft, true
	case p1.X > p2.X:
		return SideRight, true
	default:
		return SideLeft, false
	}
}

// Separate pushes two overlapping bodies apart, half the x overlap
// each, and returns the corrected positions.
func Separate(pos1 Vec2, box1 Rect, side1 Side, pos2 Vec2, box2 Rect, side2 Side) (Vec2, Vec2) {
	b1 := box1.OnSide(side1).At(pos1)
	b2 := box2.OnSide(side2).At(pos2)
	if !b1.Overlaps(b2) {
		return pos1, pos2
	}
	half := ((b1.W+b2.W)/2 - math.Abs(b1.X-b2.X)) / 2
	if b1.X <= b2.X {
		pos1.X -= half
		pos2.X += half
	} else {
		pos1.X += half
		pos2.X -= half
	}
	return pos1, pos2
}

// CheckHitCollisions returns the first of the attacker's hitboxes
// that overlaps any of the defender's hurtboxes.
func CheckHitCollisions(atkSide Side, atkPos Vec2, hitBoxes []HitBox, defSide Side, defPos Vec2, hurtBoxes []Rect) (HitBox, bool) {
	for _, hb := range hitBoxes {
		box := hb.Rect.OnSide(atkSide).At(atkPos)
		for _, hurt := range hurtBoxes {
			if box.Overlaps(hurt.OnSide(defSide).At(defPos)) {
				return hb, true
			}
		}
	}
	return HitBox{}, false
}
