package gesture

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/touchplatformer/common"
)

// Triangle is one slice of the highlighted compass sector. Alt marks every
// other slice so the renderer can stripe them.
type Triangle struct {
	A, B, C cp.Vector
	Alt     bool
}

const sectorSlices = 5

// Rotate rotates p around c by deg degrees.
func Rotate(p, c cp.Vector, deg float64) cp.Vector {
	return c.Add(p.Sub(c).Rotate(cp.ForAngle(common.Radians(deg))))
}

// Spokes returns the end points of the four diagonal compass lines that
// separate the direction quarters around start.
func Spokes(start cp.Vector, size float64) [4]cp.Vector {
	var out [4]cp.Vector
	end := cp.Vector{X: start.X, Y: start.Y - size}
	for i := range out {
		out[i] = Rotate(end, start, 90*float64(i)+45)
	}
	return out
}

// SectorFan splits the quarter starting at rotation degrees into slices
// fanned out from center.
func SectorFan(center cp.Vector, radius, rotation float64) []Triangle {
	rot := common.Radians(rotation)
	step := math.Pi * 2 / 20
	tris := make([]Triangle, 0, sectorSlices)
	prev := center.Add(cp.ForAngle(rot).Mult(radius))
	for i := 1; i <= sectorSlices; i++ {
		p := center.Add(cp.ForAngle(float64(i)*step + rot).Mult(radius))
		tris = append(tris, Triangle{A: center, B: prev, C: p, Alt: i%2 != 0})
		prev = p
	}
	return tris
}

// CompassSize is the compass radius for a phase. A finger that just landed
// or lifted draws a larger compass than one being dragged or held.
func CompassSize(p Phase) float64 {
	if p == Moved || p == Stationary {
		return 60
	}
	return 80
}

// Compass is the overlay geometry for one frame of feedback. The marker at
// Current is a disc of radius Size.
type Compass struct {
	Start   cp.Vector
	Current cp.Vector
	Size    float64
	Spokes  [4]cp.Vector
	Fan     []Triangle
}

// NewCompass lays out the overlay for fb, or reports false when nothing is
// touching. The drag line runs from Start to Current.
func NewCompass(fb Feedback) (Compass, bool) {
	if !fb.Touching {
		return Compass{}, false
	}
	size := CompassSize(fb.Phase)
	c := Compass{
		Start:   fb.Start,
		Current: fb.Current,
		Size:    size,
		Spokes:  Spokes(fb.Start, size),
	}
	if fb.HasSector {
		c.Fan = SectorFan(fb.Start, size, fb.Sector)
	}
	return c, true
}
