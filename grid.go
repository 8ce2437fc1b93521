package chardiff

import "fmt"

// Grid is a dense row-major matrix whose logical size can shrink and grow
// inside its allocated capacity without touching the backing storage.
type Grid[T any] struct {
	rows, cols     int // logical size
	rowCap, colCap int // allocated size
	cells          []T
}

// NewGrid allocates a rows x cols grid. Capacity equals the logical size.
func NewGrid[T any](rows, cols int) *Grid[T] {
	if rows < 0 || cols < 0 {
		panic(fmt.Sprintf("chardiff: negative grid size %dx%d", rows, cols))
	}
	return &Grid[T]{
		rows:   rows,
		cols:   cols,
		rowCap: rows,
		colCap: cols,
		cells:  make([]T, rows*cols),
	}
}

// Rows returns the logical row count.
func (g *Grid[T]) Rows() int { return g.rows }

// Cols returns the logical column count.
func (g *Grid[T]) Cols() int { return g.cols }

// Cap returns the allocated row and column counts.
func (g *Grid[T]) Cap() (rows, cols int) { return g.rowCap, g.colCap }

// Fits reports whether a rows x cols view fits the current allocation.
func (g *Grid[T]) Fits(rows, cols int) bool {
	return rows <= g.rowCap && cols <= g.colCap
}

// Resize changes the logical size. Storage is kept when the new size fits;
// otherwise the grid is reallocated to exactly rows x cols and its contents
// are lost.
func (g *Grid[T]) Resize(rows, cols int) {
	if !g.Fits(rows, cols) {
		*g = *NewGrid[T](rows, cols)
		return
	}
	if rows < 0 || cols < 0 {
		panic(fmt.Sprintf("chardiff: negative grid size %dx%d", rows, cols))
	}
	g.rows = rows
	g.cols = cols
}

// At returns the cell at (row, col).
func (g *Grid[T]) At(row, col int) T {
	return g.cells[g.index(row, col)]
}

// Set stores v at (row, col).
func (g *Grid[T]) Set(row, col int, v T) {
	g.cells[g.index(row, col)] = v
}

// index maps (row, col) onto the backing slice using the logical column
// count as stride. Anything outside the logical view is a bug in the caller.
func (g *Grid[T]) index(row, col int) int {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		panic(fmt.Sprintf("chardiff: index (%d, %d) out of range for %dx%d grid", row, col, g.rows, g.cols))
	}
	return row*g.cols + col
}
