package layout

import "github.com/dshills/caveripper/pkg/caveinfo"

// Cell is one grid-cell coordinate in the layout's integer grid space.
type Cell struct {
	X, Y int
}

// Grid tracks which grid cells are occupied by which placed unit. Unlike a
// fixed-size tile buffer sized from a precomputed canvas, placement here
// grows outward from the starting unit with no known bound in advance, so
// occupancy is tracked in a coordinate-keyed map instead of a flat array —
// same stamp/overlap-check shape, generalized to an unbounded canvas.
type Grid struct {
	cells map[Cell]int
}

// NewGrid returns an empty grid.
func NewGrid() *Grid {
	return &Grid{cells: make(map[Cell]int)}
}

// Fits reports whether every cell in footprint is currently unoccupied.
func (g *Grid) Fits(footprint []Cell) bool {
	for _, c := range footprint {
		if _, occupied := g.cells[c]; occupied {
			return false
		}
	}
	return true
}

// Occupy marks every cell in footprint as belonging to unitIndex. Callers
// must have already checked Fits.
func (g *Grid) Occupy(footprint []Cell, unitIndex int) {
	for _, c := range footprint {
		g.cells[c] = unitIndex
	}
}

// Owner returns the index of the unit occupying (x, y), or false if empty.
func (g *Grid) Owner(x, y int) (int, bool) {
	idx, ok := g.cells[Cell{x, y}]
	return idx, ok
}

// RotatedDims returns a unit's footprint width and height after rotation,
// with the hallway-height-forced-to-1 rule already applied.
func RotatedDims(unit *caveinfo.MapUnit, rotation int) (int, int) {
	w, h := unit.Width, unit.Height
	if unit.Shape == caveinfo.ShapeHallway {
		h = 1
	}
	if rotation == 90 || rotation == 270 {
		w, h = h, w
	}
	return w, h
}

// Footprint computes the absolute grid cells a unit occupies when placed
// with its origin at (ox, oy) with the given rotation (0, 90, 180, or 270
// degrees). Per spec, hallways are treated as 1-cell-wide rectangles
// regardless of their declared height; rooms use their declared bounding
// box verbatim.
func Footprint(unit *caveinfo.MapUnit, ox, oy, rotation int) []Cell {
	w, h := RotatedDims(unit, rotation)

	cells := make([]Cell, 0, w*h)
	for dx := 0; dx < w; dx++ {
		for dy := 0; dy < h; dy++ {
			cells = append(cells, Cell{ox + dx, oy + dy})
		}
	}
	return cells
}
