package model

// Grid is the rectangular cell matrix recovered from a page: an ordered
// sequence of rows (top to bottom), each an ordered sequence of cell
// strings (left to right). Every row has the same cell count; cells with
// no matching fragment hold the empty string.
type Grid struct {
	cells [][]string
}

// NewGrid creates a rectangular grid with the given dimensions, all cells
// empty. A zero in either dimension yields an empty grid.
func NewGrid(rows, cols int) Grid {
	if rows <= 0 || cols <= 0 {
		return Grid{}
	}
	cells := make([][]string, rows)
	for i := range cells {
		cells[i] = make([]string, cols)
	}
	return Grid{cells: cells}
}

// GridFromCells builds a Grid from pre-assembled cells. Rows shorter than
// the widest row are padded with empty strings so the invariant holds.
func GridFromCells(cells [][]string) Grid {
	cols := 0
	for _, row := range cells {
		if len(row) > cols {
			cols = len(row)
		}
	}
	if len(cells) == 0 || cols == 0 {
		return Grid{}
	}
	padded := make([][]string, len(cells))
	for i, row := range cells {
		padded[i] = make([]string, cols)
		copy(padded[i], row)
	}
	return Grid{cells: padded}
}

// Rows returns the number of rows.
func (g Grid) Rows() int {
	return len(g.cells)
}

// Cols returns the number of columns (0 for an empty grid).
func (g Grid) Cols() int {
	if len(g.cells) == 0 {
		return 0
	}
	return len(g.cells[0])
}

// Cell returns the content of the cell at (row, col), or the empty string
// if the indices are out of range.
func (g Grid) Cell(row, col int) string {
	if row < 0 || row >= len(g.cells) {
		return ""
	}
	if col < 0 || col >= len(g.cells[row]) {
		return ""
	}
	return g.cells[row][col]
}

// SetCell sets the content of the cell at (row, col). Out-of-range indices
// are ignored.
func (g Grid) SetCell(row, col int, text string) {
	if row < 0 || row >= len(g.cells) {
		return
	}
	if col < 0 || col >= len(g.cells[row]) {
		return
	}
	g.cells[row][col] = text
}

// Row returns a copy of the given row, or nil if out of range.
func (g Grid) Row(row int) []string {
	if row < 0 || row >= len(g.cells) {
		return nil
	}
	out := make([]string, len(g.cells[row]))
	copy(out, g.cells[row])
	return out
}

// Cells returns a deep copy of the full cell matrix.
func (g Grid) Cells() [][]string {
	out := make([][]string, len(g.cells))
	for i, row := range g.cells {
		out[i] = make([]string, len(row))
		copy(out[i], row)
	}
	return out
}

// IsEmpty reports whether the grid has no cells at all.
func (g Grid) IsEmpty() bool {
	return len(g.cells) == 0
}

// IsDegenerate reports whether the grid carries no tabular structure:
// either no cells, or a single cell. Callers can use this as a warning
// signal that the page degraded to plain text.
func (g Grid) IsDegenerate() bool {
	return g.Rows()*g.Cols() <= 1
}
