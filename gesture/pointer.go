package gesture

import "github.com/jakecoffman/cp"

// Pointer derives touch phases for one pointer from raw per-frame samples,
// for input sources that only report whether the pointer is down and where.
type Pointer struct {
	down   bool
	source int
	last   cp.Vector
}

// Next takes this frame's sample of the pointer currently being followed.
func (p *Pointer) Next(down bool, pos cp.Vector, focused bool) (Touch, bool) {
	return p.NextFrom(p.source, down, pos, focused)
}

// NextFrom takes this frame's sample from the physical pointer source and
// returns the touch to report, if any. Losing focus while down cancels the
// touch. A held touch whose source changes ends first; the new source
// starts on the following sample.
func (p *Pointer) NextFrom(source int, down bool, pos cp.Vector, focused bool) (Touch, bool) {
	was := p.down
	switch {
	case was && !focused:
		p.down = false
		return Touch{Position: p.last, Phase: Cancelled}, true
	case !focused:
		return Touch{}, false
	case was && down && source != p.source:
		p.down = false
		p.source = source
		return Touch{Position: p.last, Phase: Ended}, true
	case down && !was:
		p.down, p.source, p.last = true, source, pos
		return Touch{Position: pos, Phase: Started}, true
	case down:
		phase := Stationary
		if !pos.Equal(p.last) {
			phase = Moved
		}
		p.last = pos
		return Touch{Position: pos, Phase: phase}, true
	case was:
		p.down = false
		return Touch{Position: p.last, Phase: Ended}, true
	}
	return Touch{}, false
}
