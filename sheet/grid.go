// Package sheet adapts spreadsheet templates to a row/column grid and resolves
// semantic field names to physical columns.
package sheet

// Cell is one non-empty value read from a grid. Rows and columns are 1-based.
// Value is a string for text cells and a float64 for numeric cells.
type Cell struct {
	Row    int
	Column int
	Value  any
}

// Text returns the cell value when it is text
func (c Cell) Text() (string, bool) {
	s, ok := c.Value.(string)
	return s, ok
}

// Grid is the spreadsheet surface the listing code reads from and writes to.
type Grid interface {
	// IterateCells returns the non-empty cells of rows start..end (inclusive) in row-major order.
	IterateCells(start, end int) ([]Cell, error)
	SetCell(row, column int, value any) error
	// MaxRow is the last row holding any value, 0 for an empty grid.
	MaxRow() int
	Save() ([]byte, error)
}
