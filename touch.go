package main

import (
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/jakecoffman/cp"

	"github.com/milk9111/touchplatformer/gesture"
)

// mouseSource identifies the left mouse button; touch IDs are never negative.
const mouseSource = -1

// touchSource reports the first touch each frame. While no finger is down
// the left mouse button stands in for one, so the game works on desktop.
type touchSource struct {
	pointer gesture.Pointer

	id       ebiten.TouchID
	touching bool
	mouse    bool

	ids  []ebiten.TouchID
	just []ebiten.TouchID
}

// Poll returns at most one touch for this frame.
func (s *touchSource) Poll() []gesture.Touch {
	down, pos := s.sample()
	source := mouseSource
	if s.touching {
		source = int(s.id)
	}
	t, ok := s.pointer.NextFrom(source, down, pos, ebiten.IsFocused())
	if !ok {
		return nil
	}
	return []gesture.Touch{t}
}

func (s *touchSource) sample() (bool, cp.Vector) {
	s.ids = ebiten.AppendTouchIDs(s.ids[:0])
	if s.touching && !slices.Contains(s.ids, s.id) {
		s.touching = false
	}
	if !s.touching && !s.mouse {
		s.just = inpututil.AppendJustPressedTouchIDs(s.just[:0])
		if len(s.just) > 0 {
			s.id, s.touching = s.just[0], true
		}
	}
	if s.touching {
		x, y := ebiten.TouchPosition(s.id)
		return true, cp.Vector{X: float64(x), Y: float64(y)}
	}

	s.mouse = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	if s.mouse {
		x, y := ebiten.CursorPosition()
		return true, cp.Vector{X: float64(x), Y: float64(y)}
	}
	return false, cp.Vector{}
}
