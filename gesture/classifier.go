package gesture

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/touchplatformer/common"
)

// FrameInputState is carried from one frame to the next. Directions only ever
// describe the frame that produced them.
type FrameInputState struct {
	Start      cp.Vector
	Tracking   bool
	Directions Directions
}

// Feedback describes the gesture for the compass overlay.
type Feedback struct {
	Touching  bool
	Start     cp.Vector
	Current   cp.Vector
	Phase     Phase
	Angle     float64
	Direction Direction
	// Sector is the rotation in degrees of the highlighted compass quarter;
	// only meaningful when HasSector is set.
	Sector    float64
	HasSector bool
}

// Classify consumes the first touch of the frame and returns the next input
// state with freshly computed direction flags. Further touches are ignored.
func Classify(state FrameInputState, touches []Touch) (FrameInputState, Feedback) {
	next := FrameInputState{Start: state.Start, Tracking: state.Tracking}
	if len(touches) == 0 {
		return next, Feedback{}
	}

	t := touches[0]
	switch t.Phase {
	case Started:
		next.Start = t.Position
		next.Tracking = true
	case Moved, Stationary:
		if !next.Tracking {
			// the press happened before we were listening
			next.Start = t.Position
			next.Tracking = true
		}
	case Ended, Cancelled:
		next.Tracking = false
	}

	fb := Feedback{
		Touching: true,
		Start:    next.Start,
		Current:  t.Position,
		Phase:    t.Phase,
		Angle:    Angle(next.Start, t.Position),
	}
	if !t.Phase.Down() || next.Start.Equal(t.Position) {
		return next, fb
	}

	dir, sector := Bucket(fb.Angle)
	next.Directions.Set(dir)
	fb.Direction = dir
	fb.Sector = sector
	fb.HasSector = true
	return next, fb
}

// Angle returns the angle in degrees of the vector from current back to
// start, in [-180, 180]. Screen Y grows downward, so an upward drag is 90.
func Angle(start, current cp.Vector) float64 {
	return common.Degrees(start.Sub(current).ToAngle())
}

// Bucket maps a drag angle to its direction and compass sector rotation. The
// six ranges cover [-180, 180] without gaps; anything else is a bug in the
// caller and panics.
func Bucket(angle float64) (Direction, float64) {
	switch {
	case angle >= 0 && angle < 45:
		return Left, 135
	case angle >= 45 && angle < 135:
		return Up, 225
	case angle >= 135 && angle <= 180:
		return Right, 315
	case angle >= -180 && angle <= -135:
		return Right, 315
	case angle > -135 && angle <= -45:
		return Down, 45
	case angle > -45 && angle < 0:
		return Left, 135
	}
	panic(fmt.Sprintf("gesture: angle %v is outside every bucket", angle))
}
