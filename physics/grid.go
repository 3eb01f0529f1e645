package physics

import (
	"errors"
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
)

var (
	ErrLayerExists = errors.New("physics: static layer already added")
	ErrLayerSize   = errors.New("physics: occupancy length does not match cols*rows")
	ErrLayerDims   = errors.New("physics: invalid layer dimensions")
)

// Tile is the occupancy of a single grid cell.
type Tile uint8

const (
	TileEmpty Tile = iota
	TileSolid
)

// TileGrid is the static collision layer. It is built once from row-major
// occupancy and never changes size afterwards.
type TileGrid struct {
	cols, rows   int
	cellW, cellH float64
	tiles        []Tile
}

// NewTileGrid builds a grid from row-major occupancy of length cols*rows.
func NewTileGrid(occupancy []bool, cellW, cellH float64, cols, rows int) (*TileGrid, error) {
	if cols <= 0 || rows <= 0 || !(cellW > 0) || !(cellH > 0) {
		return nil, fmt.Errorf("%w: %dx%d cells of %gx%g", ErrLayerDims, cols, rows, cellW, cellH)
	}
	if len(occupancy) != cols*rows {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrLayerSize, len(occupancy), cols*rows)
	}

	tiles := make([]Tile, len(occupancy))
	for i, solid := range occupancy {
		if solid {
			tiles[i] = TileSolid
		}
	}
	return &TileGrid{cols: cols, rows: rows, cellW: cellW, cellH: cellH, tiles: tiles}, nil
}

func (g *TileGrid) Cols() int { return g.cols }
func (g *TileGrid) Rows() int { return g.rows }

// Bounds returns the box covered by the grid, anchored at the origin.
func (g *TileGrid) Bounds() cp.BB {
	return cp.BB{L: 0, B: 0, R: float64(g.cols) * g.cellW, T: float64(g.rows) * g.cellH}
}

// At returns the tile at (col, row). Cells outside the grid are empty.
func (g *TileGrid) At(col, row int) Tile {
	if g == nil || col < 0 || row < 0 || col >= g.cols || row >= g.rows {
		return TileEmpty
	}
	return g.tiles[row*g.cols+col]
}

// Solid reports whether (col, row) holds a solid tile.
func (g *TileGrid) Solid(col, row int) bool {
	return g.At(col, row) == TileSolid
}

// CellBB returns the box covered by cell (col, row).
func (g *TileGrid) CellBB(col, row int) cp.BB {
	x := float64(col) * g.cellW
	y := float64(row) * g.cellH
	return cp.BB{L: x, B: y, R: x + g.cellW, T: y + g.cellH}
}

// Overlaps reports whether bb overlaps any solid cell.
func (g *TileGrid) Overlaps(bb cp.BB) bool {
	hit := false
	g.eachSolid(bb, func(cell cp.BB) bool {
		hit = true
		return false
	})
	return hit
}

// eachSolid calls fn with every solid cell overlapping bb until fn returns
// false.
func (g *TileGrid) eachSolid(bb cp.BB, fn func(cell cp.BB) bool) {
	if g == nil || degenerate(bb) {
		return
	}
	c0, c1 := cellSpan(bb.L, bb.R, g.cellW, g.cols)
	r0, r1 := cellSpan(bb.B, bb.T, g.cellH, g.rows)
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			if g.tiles[row*g.cols+col] != TileSolid {
				continue
			}
			cell := g.CellBB(col, row)
			if !overlaps(bb, cell) {
				continue
			}
			if !fn(cell) {
				return
			}
		}
	}
}

// cellSpan returns the inclusive index range of cells that may touch
// [lo, hi], clipped to [0, n). An empty range has first > last.
func cellSpan(lo, hi, size float64, n int) (int, int) {
	first := math.Floor(lo / size)
	last := math.Floor(hi / size)
	first = math.Max(first, 0)
	first = math.Min(first, float64(n))
	last = math.Min(last, float64(n-1))
	last = math.Max(last, -1)
	return int(first), int(last)
}
