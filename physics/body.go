package physics

import "github.com/jakecoffman/cp"

// contactEpsilon absorbs float drift so boxes resolved flush against each
// other never count as overlapping.
const contactEpsilon = 1e-6

// GroundProbe is the downward offset used to test for ground contact. It is
// one world unit regardless of tile size.
const GroundProbe = 1.0

// ActorID identifies an actor owned by a World. IDs are never reused.
type ActorID int

// SolidID identifies a solid owned by a World. IDs are never reused.
type SolidID int

// body is an axis-aligned box with its min corner at pos. +Y points down,
// so L/B hold the min corner and R/T the max corner of its cp.BB.
type body struct {
	pos           cp.Vector
	width, height float64
}

func (b body) bb() cp.BB {
	return cp.BB{L: b.pos.X, B: b.pos.Y, R: b.pos.X + b.width, T: b.pos.Y + b.height}
}

type solidBody struct {
	body
	collidable bool
}

func degenerate(bb cp.BB) bool {
	return !(bb.R-bb.L > 0) || !(bb.T-bb.B > 0)
}

// overlaps reports strict overlap. Touching edges do not overlap.
func overlaps(a, b cp.BB) bool {
	if degenerate(a) || degenerate(b) {
		return false
	}
	return a.L < b.R-contactEpsilon && b.L < a.R-contactEpsilon &&
		a.B < b.T-contactEpsilon && b.B < a.T-contactEpsilon
}

// axis selects the component a sweep moves along.
type axis int

const (
	axisX axis = iota
	axisY
)

// extend grows bb along ax so it covers every position between bb and bb
// displaced by d.
func extend(bb cp.BB, d float64, ax axis) cp.BB {
	switch {
	case ax == axisX && d > 0:
		bb.R += d
	case ax == axisX:
		bb.L += d
	case d > 0:
		bb.T += d
	default:
		bb.B += d
	}
	return bb
}

// gap returns the signed distance from the leading face of from to the
// facing side of obs along ax, in the direction of d.
func gap(from, obs cp.BB, d float64, ax axis) float64 {
	switch {
	case ax == axisX && d > 0:
		return obs.L - from.R
	case ax == axisX:
		return obs.R - from.L
	case d > 0:
		return obs.B - from.T
	default:
		return obs.T - from.B
	}
}
