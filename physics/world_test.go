package physics

import (
	"errors"
	"math"
	"testing"

	"github.com/jakecoffman/cp"
)

// buildWorld turns an ASCII map ('#' solid, anything else empty) into a world
// with cells of the given size.
func buildWorld(t *testing.T, cell float64, rows ...string) *World {
	t.Helper()
	cols := len(rows[0])
	occ := make([]bool, 0, cols*len(rows))
	for _, r := range rows {
		if len(r) != cols {
			t.Fatalf("ragged map row %q", r)
		}
		for _, c := range r {
			occ = append(occ, c == '#')
		}
	}
	w := NewWorld()
	if err := w.AddStaticTiledLayer(occ, cell, cell, cols, len(rows)); err != nil {
		t.Fatalf("AddStaticTiledLayer: %v", err)
	}
	return w
}

var roomMap = []string{
	"#.........",
	"#.........",
	"#.........",
	"#.........",
	"#.....#...",
	"#.........",
	"#.........",
	"#.........",
	"#.........",
	"##########",
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestStaticLayerValidation(t *testing.T) {
	cases := []struct {
		name       string
		occ        []bool
		cols, rows int
		cell       float64
		want       error
	}{
		{"size_mismatch", make([]bool, 5), 2, 3, 8, ErrLayerSize},
		{"zero_cols", nil, 0, 3, 8, ErrLayerDims},
		{"zero_cell", make([]bool, 6), 2, 3, 0, ErrLayerDims},
		{"ok", make([]bool, 6), 2, 3, 8, nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			err := w.AddStaticTiledLayer(c.occ, c.cell, c.cell, c.cols, c.rows)
			if c.want == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if w.Grid().Cols() != c.cols || w.Grid().Rows() != c.rows {
					t.Fatalf("grid is %dx%d, want %dx%d", w.Grid().Cols(), w.Grid().Rows(), c.cols, c.rows)
				}
				return
			}
			if !errors.Is(err, c.want) {
				t.Fatalf("expected %v, got %v", c.want, err)
			}
		})
	}

	t.Run("second_layer", func(t *testing.T) {
		w := buildWorld(t, 8, "..")
		if err := w.AddStaticTiledLayer(make([]bool, 2), 8, 8, 2, 1); !errors.Is(err, ErrLayerExists) {
			t.Fatalf("expected ErrLayerExists, got %v", err)
		}
	})
}

func TestTileGridAt(t *testing.T) {
	w := buildWorld(t, 8, roomMap...)
	g := w.Grid()
	cases := []struct {
		col, row int
		want     Tile
	}{
		{0, 0, TileSolid},
		{1, 0, TileEmpty},
		{6, 4, TileSolid},
		{-1, 0, TileEmpty},
		{0, -1, TileEmpty},
		{10, 9, TileEmpty},
		{3, 10, TileEmpty},
	}
	for _, c := range cases {
		if got := g.At(c.col, c.row); got != c.want {
			t.Errorf("At(%d,%d) = %v, want %v", c.col, c.row, got, c.want)
		}
	}
}

func TestZeroDisplacementIsNoop(t *testing.T) {
	w := buildWorld(t, 8, roomMap...)
	positions := []cp.Vector{{X: 8, Y: 64}, {X: 40, Y: 32}, {X: 24, Y: 10}}
	for _, p := range positions {
		a := w.AddActor(p, 8, 8)
		if w.MoveH(a, 0) {
			t.Fatalf("MoveH(0) at %v reported a collision", p)
		}
		if w.MoveV(a, 0) {
			t.Fatalf("MoveV(0) at %v reported a collision", p)
		}
		if got := w.ActorPos(a); got != p {
			t.Fatalf("position changed from %v to %v", p, got)
		}
	}
}

func TestMoveClampsToObstacleFace(t *testing.T) {
	cases := []struct {
		name     string
		start    cp.Vector
		dx, dy   float64
		want     cp.Vector
		collided bool
	}{
		{"right_into_block", cp.Vector{X: 24, Y: 32}, 40, 0, cp.Vector{X: 40, Y: 32}, true},
		{"left_into_wall", cp.Vector{X: 24, Y: 32}, -100, 0, cp.Vector{X: 8, Y: 32}, true},
		{"down_onto_floor", cp.Vector{X: 16, Y: 10}, 0, 100, cp.Vector{X: 16, Y: 64}, true},
		{"up_into_block", cp.Vector{X: 48, Y: 60}, 0, -50, cp.Vector{X: 48, Y: 40}, true},
		{"free_move", cp.Vector{X: 16, Y: 10}, 5, 3, cp.Vector{X: 21, Y: 13}, false},
		{"arrive_exactly_flush", cp.Vector{X: 24, Y: 32}, 16, 0, cp.Vector{X: 40, Y: 32}, true},
		{"stop_short_of_block", cp.Vector{X: 24, Y: 32}, 15.5, 0, cp.Vector{X: 39.5, Y: 32}, false},
		{"grazing_block_corner", cp.Vector{X: 24, Y: 24}, 60, 0, cp.Vector{X: 84, Y: 24}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := buildWorld(t, 8, roomMap...)
			a := w.AddActor(c.start, 8, 8)
			var hit bool
			if c.dx != 0 {
				hit = w.MoveH(a, c.dx) || hit
			}
			if c.dy != 0 {
				hit = w.MoveV(a, c.dy) || hit
			}
			got := w.ActorPos(a)
			if !near(got.X, c.want.X) || !near(got.Y, c.want.Y) {
				t.Fatalf("position = %v, want %v", got, c.want)
			}
			if hit != c.collided {
				t.Fatalf("collided = %v, want %v", hit, c.collided)
			}
			if w.CollideCheck(a, cp.Vector{}) {
				t.Fatalf("actor overlaps geometry after resolution at %v", got)
			}
		})
	}
}

func TestFlushActorCannotAdvance(t *testing.T) {
	w := buildWorld(t, 8, roomMap...)
	a := w.AddActor(cp.Vector{X: 40, Y: 32}, 8, 8)
	for i := 0; i < 3; i++ {
		if !w.MoveH(a, 0.25) {
			t.Fatalf("expected collision on push %d against flush block", i)
		}
	}
	if got := w.ActorPos(a); got.X != 40 {
		t.Fatalf("flush actor moved to %v", got)
	}
	// moving away is free
	if w.MoveH(a, -4) {
		t.Fatalf("moving away from the block should not collide")
	}
}

// Steps far smaller than the contact tolerance must neither sink into a
// block nor pass as free movement.
func TestTinyStepsNeverPenetrate(t *testing.T) {
	for _, step := range []float64{1e-7, 1e-9, 5e-7} {
		w := buildWorld(t, 8, roomMap...)
		a := w.AddActor(cp.Vector{X: 40, Y: 32}, 8, 8)
		for i := 0; i < 100; i++ {
			if !w.MoveH(a, step) {
				t.Fatalf("step %v, push %d: flush actor reported free movement", step, i)
			}
		}
		if got := w.ActorBB(a); got.R > 48 {
			t.Fatalf("step %v: actor right %v sank into the block at 48", step, got.R)
		}

		b := w.AddActor(cp.Vector{X: 16, Y: 64}, 8, 8)
		for i := 0; i < 100; i++ {
			if !w.MoveV(b, step) {
				t.Fatalf("step %v, push %d: resting actor reported free fall", step, i)
			}
		}
		if got := w.ActorBB(b); got.T > 72 {
			t.Fatalf("step %v: actor bottom %v sank into the floor at 72", step, got.T)
		}
	}
}

func TestGroundProbe(t *testing.T) {
	w := buildWorld(t, 8, roomMap...)
	resting := w.AddActor(cp.Vector{X: 8, Y: 64}, 8, 8)
	hovering := w.AddActor(cp.Vector{X: 24, Y: 63}, 8, 8)
	if !w.OnGround(resting) {
		t.Fatalf("actor resting on the floor should be grounded")
	}
	if w.OnGround(hovering) {
		t.Fatalf("actor one unit above the floor should not be grounded")
	}
	if w.CollideCheck(resting, cp.Vector{}) {
		t.Fatalf("resting actor must not overlap the floor")
	}
	before := w.ActorPos(resting)
	w.CollideCheck(resting, cp.Vector{X: 3, Y: 50})
	if w.ActorPos(resting) != before {
		t.Fatalf("CollideCheck mutated actor position")
	}
}

func TestSweepDoesNotTunnel(t *testing.T) {
	w := buildWorld(t, 8, roomMap...)
	a := w.AddActor(cp.Vector{X: 8, Y: 32}, 8, 8)
	if !w.MoveH(a, 500) {
		t.Fatalf("expected the one-tile block to stop a large step")
	}
	if got := w.ActorPos(a); !near(got.X, 40) {
		t.Fatalf("actor at %v, want flush at x=40", got)
	}

	b := w.AddActor(cp.Vector{X: 16, Y: 0}, 8, 8)
	if !w.MoveV(b, 1e6) {
		t.Fatalf("expected the floor to stop a large fall")
	}
	if got := w.ActorPos(b); !near(got.Y, 64) {
		t.Fatalf("actor at %v, want resting at y=64", got)
	}
}

// Every solid cell stops an actor dropped onto it with zero penetration, even
// when the cell size is not a round number.
func TestEverySolidCellStopsActor(t *testing.T) {
	rows := []string{
		"..........",
		"..........",
		".#..#..#..",
		"..........",
		"..#....#..",
		"..........",
		"....#.....",
		"..........",
	}
	cell := 1366.0 / 40
	w := buildWorld(t, cell, rows...)
	g := w.Grid()
	for row := 0; row < g.Rows(); row++ {
		for col := 0; col < g.Cols(); col++ {
			if !g.Solid(col, row) {
				continue
			}
			tile := g.CellBB(col, row)
			a := w.AddActor(cp.Vector{X: tile.L, Y: tile.B - 2*cell - 0.3}, cell, cell)
			if !w.MoveV(a, 5*cell) {
				t.Fatalf("cell (%d,%d) did not stop the actor", col, row)
			}
			bb := w.ActorBB(a)
			if bb.T > tile.B+contactEpsilon {
				t.Fatalf("cell (%d,%d): actor bottom %v penetrates tile top %v", col, row, bb.T, tile.B)
			}
			if !w.OnGround(a) {
				t.Fatalf("cell (%d,%d): actor should be grounded", col, row)
			}
		}
	}
}

func TestSlideAlongFloorWithoutSnagging(t *testing.T) {
	cell := 1366.0 / 40
	w := buildWorld(t, cell,
		"........",
		"........",
		"########",
	)
	a := w.AddActor(cp.Vector{X: 0, Y: 0}, cell, cell)
	w.MoveV(a, 10*cell)
	for i := 0; i < 40; i++ {
		if w.MoveH(a, cell/7) {
			t.Fatalf("step %d: floor snagged horizontal motion at %v", i, w.ActorPos(a))
		}
	}
	if !w.OnGround(a) {
		t.Fatalf("actor should stay grounded while sliding")
	}
}

func TestDegenerateQueries(t *testing.T) {
	w := buildWorld(t, 8, roomMap...)
	flat := w.AddActor(cp.Vector{X: 4, Y: 4}, 0, 0)
	if w.CollideCheck(flat, cp.Vector{}) {
		t.Fatalf("zero-size box must not collide")
	}
	if w.MoveH(flat, -20) {
		t.Fatalf("zero-size box must move freely")
	}

	edge := w.AddActor(cp.Vector{X: 72, Y: 72}, 8, 8)
	if w.CollideCheck(edge, cp.Vector{X: 100, Y: 100}) {
		t.Fatalf("probe outside the grid must not collide")
	}
	if w.CollideCheck(edge, cp.Vector{X: -1000, Y: -1000}) {
		t.Fatalf("probe outside the grid must not collide")
	}
}

func TestActorBlockedBySolid(t *testing.T) {
	w := buildWorld(t, 8, "........", "........", "........", "........", "........", "........", "........")
	w.AddSolid(cp.Vector{X: 16, Y: 40}, 32, 8)
	a := w.AddActor(cp.Vector{X: 0, Y: 40}, 8, 8)
	if !w.MoveH(a, 30) {
		t.Fatalf("expected solid to block actor")
	}
	if got := w.ActorPos(a); !near(got.X, 8) {
		t.Fatalf("actor at %v, want flush at x=8", got)
	}
}

func TestSolidMoveCarriesRiders(t *testing.T) {
	w := buildWorld(t, 8, "........", "........", "........", "........", "........", "........", "........")
	s := w.AddSolid(cp.Vector{X: 16, Y: 40}, 32, 8)
	rider := w.AddActor(cp.Vector{X: 20, Y: 32}, 8, 8)
	bystander := w.AddActor(cp.Vector{X: 0, Y: 0}, 8, 8)

	if !w.OnGround(rider) {
		t.Fatalf("rider should stand on the solid")
	}

	w.SolidMove(s, 5, 0)
	if got := w.ActorPos(rider); !near(got.X, 25) || !near(got.Y, 32) {
		t.Fatalf("rider at %v, want (25,32)", got)
	}
	w.SolidMove(s, -2.5, 0)
	if got := w.ActorPos(rider); !near(got.X, 22.5) {
		t.Fatalf("rider at %v, want x=22.5", got)
	}
	w.SolidMove(s, 0, 4)
	if got := w.ActorPos(rider); !near(got.Y, 36) {
		t.Fatalf("rider at %v, want y=36 after descending with the solid", got)
	}
	w.SolidMove(s, 0, -3)
	if got := w.ActorPos(rider); !near(got.Y, 33) {
		t.Fatalf("rider at %v, want y=33 after rising with the solid", got)
	}
	if !w.OnGround(rider) {
		t.Fatalf("rider should still be grounded on the solid")
	}
	if got := w.ActorPos(bystander); got != (cp.Vector{}) {
		t.Fatalf("bystander moved to %v", got)
	}
}

func TestSolidMovePushesActors(t *testing.T) {
	w := buildWorld(t, 8,
		"..........",
		"..........",
		"..........",
		"..........",
		"..........",
		".........#",
	)
	s := w.AddSolid(cp.Vector{X: 16, Y: 40}, 32, 8)
	a := w.AddActor(cp.Vector{X: 48, Y: 40}, 8, 8)

	w.SolidMove(s, 4, 0)
	if got := w.ActorPos(a); !near(got.X, 52) {
		t.Fatalf("pushed actor at %v, want x=52", got)
	}
	if w.CollideCheck(a, cp.Vector{}) {
		t.Fatalf("pushed actor must not overlap the solid")
	}

	// the wall at column 9 stops the pushed actor; the solid keeps going
	for i := 0; i < 25; i++ {
		w.SolidMove(s, 4, 0)
	}
	if got := w.ActorPos(a); !near(got.X, 64) {
		t.Fatalf("pushed actor at %v, want pinned at x=64 by the wall", got)
	}
	if got := w.SolidPos(s); !near(got.X, 120) {
		t.Fatalf("solid at %v, want x=120", got)
	}
}

func TestSolidMoveIgnoresTiles(t *testing.T) {
	w := buildWorld(t, 8, roomMap...)
	s := w.AddSolid(cp.Vector{X: 16, Y: 32}, 16, 8)
	for i := 0; i < 10; i++ {
		w.SolidMove(s, 4, 0)
	}
	if got := w.SolidPos(s); !near(got.X, 56) {
		t.Fatalf("solid at %v, want x=56", got)
	}
}
