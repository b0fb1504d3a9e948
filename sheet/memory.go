package sheet

import (
	"encoding/json"
	"fmt"
	"sort"
)

// MemoryGrid is a Grid kept entirely in memory. Save encodes the cells as JSON.
type MemoryGrid struct {
	cells map[[2]int]any
}

// NewMemoryGrid creates an empty MemoryGrid
func NewMemoryGrid() *MemoryGrid {
	return &MemoryGrid{cells: make(map[[2]int]any)}
}

// NewMemoryGridFromRows builds a grid whose first row is rows[0]. Empty strings are skipped.
func NewMemoryGridFromRows(rows [][]string) *MemoryGrid {
	g := NewMemoryGrid()
	for r, row := range rows {
		for c, v := range row {
			if v != "" {
				g.cells[[2]int{r + 1, c + 1}] = v
			}
		}
	}
	return g
}

// Ensure MemoryGrid implements Grid
var _ Grid = (*MemoryGrid)(nil)

func (g *MemoryGrid) IterateCells(start, end int) ([]Cell, error) {
	if start < 1 || end < start {
		return nil, fmt.Errorf("invalid row range %d..%d", start, end)
	}
	var out []Cell
	for k, v := range g.cells {
		if k[0] >= start && k[0] <= end {
			out = append(out, Cell{Row: k[0], Column: k[1], Value: v})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Row != out[j].Row {
			return out[i].Row < out[j].Row
		}
		return out[i].Column < out[j].Column
	})
	return out, nil
}

func (g *MemoryGrid) SetCell(row, column int, value any) error {
	if row < 1 || column < 1 {
		return fmt.Errorf("invalid cell position row=%d column=%d", row, column)
	}
	if s, ok := value.(string); ok && s == "" {
		delete(g.cells, [2]int{row, column})
		return nil
	}
	g.cells[[2]int{row, column}] = value
	return nil
}

// Get returns the value stored at row, column or nil.
func (g *MemoryGrid) Get(row, column int) any {
	return g.cells[[2]int{row, column}]
}

// GetString returns the value at row, column formatted as a string
func (g *MemoryGrid) GetString(row, column int) string {
	v, ok := g.cells[[2]int{row, column}]
	if !ok {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func (g *MemoryGrid) MaxRow() int {
	last := 0
	for k := range g.cells {
		if k[0] > last {
			last = k[0]
		}
	}
	return last
}

func (g *MemoryGrid) Save() ([]byte, error) {
	cells, err := g.IterateCells(1, max(g.MaxRow(), 1))
	if err != nil {
		return nil, err
	}
	return json.Marshal(cells)
}
