// Package grid implements the flat, fixed-size cell representation.
package grid

import (
	"fmt"
	"iter"

	"lifesim/internal/core"
)

// Grid stores cols×rows cells in row-major order. Reads outside the grid
// return dead; writes outside it are a contract violation and panic.
type Grid struct {
	W, H int
	data []bool
}

// New allocates a grid with the given dimensions.
func New(cols, rows int) *Grid {
	if cols <= 0 {
		cols = 1
	}
	if rows <= 0 {
		rows = 1
	}
	return &Grid{W: cols, H: rows, data: make([]bool, cols*rows)}
}

// Size returns the grid dimensions.
func (g *Grid) Size() core.Size { return core.Size{W: g.W, H: g.H} }

// Index returns the linear slice index for coordinates (x, y).
func (g *Grid) Index(x, y int) int { return y*g.W + x }

// Get reports whether (x, y) is alive.
func (g *Grid) Get(x, y int) bool {
	if x < 0 || x >= g.W || y < 0 || y >= g.H {
		return false
	}
	return g.data[g.Index(x, y)]
}

// Set stores alive at (x, y). Callers validate coordinates first.
func (g *Grid) Set(x, y int, alive bool) {
	if x < 0 || x >= g.W || y < 0 || y >= g.H {
		panic(fmt.Sprintf("grid: set (%d,%d) outside %dx%d", x, y, g.W, g.H))
	}
	g.data[g.Index(x, y)] = alive
}

// All yields every cell in row-major order.
func (g *Grid) All() iter.Seq[bool] {
	return func(yield func(bool) bool) {
		for _, alive := range g.data {
			if !yield(alive) {
				return
			}
		}
	}
}

// RowParallel reports that distinct rows may be written concurrently.
func (g *Grid) RowParallel() bool { return true }

// Population returns the number of live cells.
func (g *Grid) Population() int {
	n := 0
	for _, alive := range g.data {
		if alive {
			n++
		}
	}
	return n
}

// Clear kills every cell.
func (g *Grid) Clear() {
	for i := range g.data {
		g.data[i] = false
	}
}

func init() {
	core.Register("grid", func(size core.Size) core.Store {
		return New(size.W, size.H)
	})
}
