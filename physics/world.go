package physics

import (
	"math"

	"github.com/jakecoffman/cp"
)

// World owns the static tile layer plus every actor and solid, and resolves
// their axis-separated movement. It holds no velocities; controllers ask it
// for displacements and read back whether a collision happened.
type World struct {
	grid   *TileGrid
	actors []body
	solids []solidBody
}

// NewWorld creates an empty physics world.
func NewWorld() *World {
	return &World{}
}

// AddStaticTiledLayer builds the collision grid. It may only be called once.
func (w *World) AddStaticTiledLayer(occupancy []bool, cellW, cellH float64, cols, rows int) error {
	if w.grid != nil {
		return ErrLayerExists
	}
	g, err := NewTileGrid(occupancy, cellW, cellH, cols, rows)
	if err != nil {
		return err
	}
	w.grid = g
	return nil
}

// Grid returns the static layer, or nil before AddStaticTiledLayer.
func (w *World) Grid() *TileGrid {
	return w.grid
}

// AddActor registers an actor with its top-left corner at pos.
func (w *World) AddActor(pos cp.Vector, width, height float64) ActorID {
	w.actors = append(w.actors, body{pos: pos, width: width, height: height})
	return ActorID(len(w.actors) - 1)
}

// AddSolid registers a solid with its top-left corner at pos.
func (w *World) AddSolid(pos cp.Vector, width, height float64) SolidID {
	w.solids = append(w.solids, solidBody{
		body:       body{pos: pos, width: width, height: height},
		collidable: true,
	})
	return SolidID(len(w.solids) - 1)
}

func (w *World) ActorPos(a ActorID) cp.Vector { return w.actors[a].pos }
func (w *World) ActorBB(a ActorID) cp.BB      { return w.actors[a].bb() }
func (w *World) SolidPos(s SolidID) cp.Vector { return w.solids[s].pos }
func (w *World) SolidBB(s SolidID) cp.BB      { return w.solids[s].bb() }

// MoveH moves the actor horizontally by dx, stopping flush against the first
// tile or solid in the way. It reports whether the move was blocked.
func (w *World) MoveH(a ActorID, dx float64) bool {
	return w.move(a, dx, axisX)
}

// MoveV moves the actor vertically by dy, stopping flush against the first
// tile or solid in the way. It reports whether the move was blocked.
func (w *World) MoveV(a ActorID, dy float64) bool {
	return w.move(a, dy, axisY)
}

func (w *World) move(a ActorID, d float64, ax axis) bool {
	if d == 0 || math.IsNaN(d) {
		return false
	}
	act := &w.actors[a]
	moved, hit := d, false
	if bb := act.bb(); !degenerate(bb) {
		moved, hit = w.sweep(bb, d, ax)
	}
	if ax == axisX {
		act.pos.X += moved
	} else {
		act.pos.Y += moved
	}
	return hit
}

// sweep tests every position between from and from displaced by d along ax,
// so a large step cannot skip over thin geometry. The range reaches
// contactEpsilon past the destination, so an obstacle within that distance
// counts as contact however small d is. Obstacles already overlapping from
// are ignored, which lets an embedded box move out.
func (w *World) sweep(from cp.BB, d float64, ax axis) (float64, bool) {
	swept := extend(from, d+math.Copysign(2*contactEpsilon, d), ax)
	allowed := d
	hit := false

	clip := func(obs cp.BB) bool {
		if overlaps(from, obs) {
			return true
		}
		g := gap(from, obs, d, ax)
		if d > 0 {
			g = math.Max(g, 0)
			if g < allowed {
				allowed = g
			}
		} else {
			g = math.Min(g, 0)
			if g > allowed {
				allowed = g
			}
		}
		hit = true
		return true
	}

	w.grid.eachSolid(swept, clip)
	for i := range w.solids {
		s := &w.solids[i]
		if !s.collidable {
			continue
		}
		if bb := s.bb(); overlaps(swept, bb) {
			clip(bb)
		}
	}
	return allowed, hit
}

// CollideCheck reports whether the actor's box, translated by offset, would
// overlap a solid tile or a collidable solid. It never mutates the world.
func (w *World) CollideCheck(a ActorID, offset cp.Vector) bool {
	return w.collides(w.actors[a].bb().Offset(offset))
}

// OnGround probes GroundProbe units below the actor.
func (w *World) OnGround(a ActorID) bool {
	return w.CollideCheck(a, cp.Vector{Y: GroundProbe})
}

func (w *World) collides(bb cp.BB) bool {
	if degenerate(bb) {
		return false
	}
	if w.grid != nil && w.grid.Overlaps(bb) {
		return true
	}
	for i := range w.solids {
		if w.solids[i].collidable && overlaps(bb, w.solids[i].bb()) {
			return true
		}
	}
	return false
}

// SolidMove moves a solid without checking tiles. Actors it overlaps after
// the move are pushed out to its leading face; actors resting on top of it
// are carried by the same displacement. Both go through MoveH/MoveV so
// tiles still stop them.
func (w *World) SolidMove(s SolidID, dx, dy float64) {
	if dx == 0 && dy == 0 {
		return
	}
	riding := w.riders(s)

	w.solids[s].collidable = false
	if dx != 0 {
		w.solids[s].pos.X += dx
		w.carry(s, riding, dx, axisX)
	}
	if dy != 0 {
		w.solids[s].pos.Y += dy
		w.carry(s, riding, dy, axisY)
	}
	w.solids[s].collidable = true
}

func (w *World) carry(s SolidID, riding []bool, d float64, ax axis) {
	sb := w.solids[s].bb()
	for i := range w.actors {
		a := ActorID(i)
		ab := w.actors[i].bb()
		switch {
		case overlaps(ab, sb):
			// push: the solid's leading face is where the actor must end up
			w.move(a, gap(ab, sb, -d, ax), ax)
		case riding[i]:
			w.move(a, d, ax)
		}
	}
}

// riders flags actors standing on top of solid s.
func (w *World) riders(s SolidID) []bool {
	sb := w.solids[s].bb()
	riding := make([]bool, len(w.actors))
	for i := range w.actors {
		ab := w.actors[i].bb()
		if overlaps(ab, sb) {
			continue
		}
		riding[i] = overlaps(ab.Offset(cp.Vector{Y: GroundProbe}), sb)
	}
	return riding
}
