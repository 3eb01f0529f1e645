package obj

import (
	"math"

	"github.com/milk9111/touchplatformer/physics"
)

// Platform oscillates a solid horizontally between MinX and MaxX. It turns
// around on the frame its position reaches a bound while moving toward it.
type Platform struct {
	Solid physics.SolidID
	Speed float64
	MinX  float64
	MaxX  float64
}

func NewPlatform(solid physics.SolidID, speed, minX, maxX float64) *Platform {
	return &Platform{Solid: solid, Speed: speed, MinX: minX, MaxX: maxX}
}

// Update moves the platform for one frame and reports whether it reversed.
func (p *Platform) Update(w *physics.World, dt float64) bool {
	w.SolidMove(p.Solid, p.Speed*dt, 0)

	x := w.SolidPos(p.Solid).X
	if (p.Speed > 0 && x >= p.MaxX) || (p.Speed < 0 && x <= p.MinX) {
		p.Speed = -p.Speed
		return true
	}
	return false
}

// SetSpeed changes the magnitude of the speed and keeps the direction.
func (p *Platform) SetSpeed(speed float64) {
	if p.Speed < 0 {
		p.Speed = -math.Abs(speed)
		return
	}
	p.Speed = math.Abs(speed)
}
