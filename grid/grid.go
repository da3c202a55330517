// Package grid models the terminal as a rectangular grid of colored cells
// and provides the pure transforms between decoded video frames, the chat
// UI layer and the final painted screen.
package grid

// RGB is a 24-bit color.
type RGB struct {
	R, G, B uint8
}

// Cell is one terminal character position: a glyph plus its foreground
// color. A zero Glyph marks the cell as transparent, meaning nothing has
// been drawn there and the layer below shows through.
type Cell struct {
	Glyph rune
	Color RGB
}

// Empty reports whether the cell is transparent.
func (c Cell) Empty() bool {
	return c.Glyph == 0
}

// Grid is a row-major mapping from (row, col) to Cell, sized to the
// terminal viewport.
type Grid struct {
	Cols  int
	Rows  int
	Cells []Cell
}

// New returns a fully transparent grid of the given dimensions. Negative
// dimensions are treated as zero.
func New(cols, rows int) Grid {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	return Grid{Cols: cols, Rows: rows, Cells: make([]Cell, cols*rows)}
}

// At returns the cell at (row, col), or a transparent cell when out of
// bounds.
func (g Grid) At(row, col int) Cell {
	if row < 0 || row >= g.Rows || col < 0 || col >= g.Cols {
		return Cell{}
	}
	return g.Cells[row*g.Cols+col]
}

// Set writes the cell at (row, col). Writes outside the grid are dropped.
func (g Grid) Set(row, col int, c Cell) {
	if row < 0 || row >= g.Rows || col < 0 || col >= g.Cols {
		return
	}
	g.Cells[row*g.Cols+col] = c
}

// Is reports whether the grid has exactly the given dimensions.
func (g Grid) Is(cols, rows int) bool {
	return g.Cols == cols && g.Rows == rows
}
