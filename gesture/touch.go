// Package gesture turns a single-finger drag into directional intents.
package gesture

import (
	"fmt"
	"strings"

	"github.com/jakecoffman/cp"
)

// Phase is the lifecycle stage of a touch as reported by the input source.
type Phase int

const (
	Started Phase = iota
	Moved
	Stationary
	Ended
	Cancelled
)

func (p Phase) String() string {
	switch p {
	case Started:
		return "started"
	case Moved:
		return "moved"
	case Stationary:
		return "stationary"
	case Ended:
		return "ended"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// ParsePhase is the inverse of Phase.String.
func ParsePhase(s string) (Phase, error) {
	for p := Started; p <= Cancelled; p++ {
		if strings.EqualFold(s, p.String()) {
			return p, nil
		}
	}
	return 0, fmt.Errorf("gesture: unknown phase %q", s)
}

// Down reports whether the finger is still on the screen in this phase.
func (p Phase) Down() bool {
	return p == Started || p == Moved || p == Stationary
}

// Touch is one touch event for the current frame.
type Touch struct {
	Position cp.Vector
	Phase    Phase
}

// Direction is a single movement intent.
type Direction int

const (
	None Direction = iota
	Up
	Down
	Left
	Right
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "none"
	}
}

// Directions holds the per-frame intent flags.
type Directions struct {
	Up, Down, Left, Right bool
}

// Set raises the flag for d.
func (f *Directions) Set(d Direction) {
	switch d {
	case Up:
		f.Up = true
	case Down:
		f.Down = true
	case Left:
		f.Left = true
	case Right:
		f.Right = true
	}
}

// Count returns how many flags are raised.
func (f Directions) Count() int {
	n := 0
	for _, v := range [...]bool{f.Up, f.Down, f.Left, f.Right} {
		if v {
			n++
		}
	}
	return n
}
