package sheet

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// ExcelGrid is a Grid over the active worksheet of an xlsx/xlsm workbook.
// Workbook parts excelize does not model (VBA projects, data validation sheets) are
// written back untouched on Save.
type ExcelGrid struct {
	file  *excelize.File
	sheet string
}

// OpenExcelGrid opens a workbook from raw bytes and selects its active worksheet
func OpenExcelGrid(data []byte) (*ExcelGrid, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty workbook")
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	sheetName := f.GetSheetName(f.GetActiveSheetIndex())
	if sheetName == "" {
		sheetName = f.GetSheetName(0)
	}
	if sheetName == "" {
		f.Close()
		return nil, fmt.Errorf("workbook has no worksheets")
	}
	return &ExcelGrid{file: f, sheet: sheetName}, nil
}

// NewExcelGrid wraps an already opened excelize file
func NewExcelGrid(f *excelize.File, sheetName string) *ExcelGrid {
	return &ExcelGrid{file: f, sheet: sheetName}
}

// Ensure ExcelGrid implements Grid
var _ Grid = (*ExcelGrid)(nil)

// SheetName returns the worksheet the grid reads and writes
func (g *ExcelGrid) SheetName() string {
	return g.sheet
}

func (g *ExcelGrid) IterateCells(start, end int) ([]Cell, error) {
	if start < 1 || end < start {
		return nil, fmt.Errorf("invalid row range %d..%d", start, end)
	}
	rows, err := g.file.GetRows(g.sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows of %s: %w", g.sheet, err)
	}

	var cells []Cell
	for r := start; r <= end && r <= len(rows); r++ {
		for c, raw := range rows[r-1] {
			if raw == "" {
				continue
			}
			cells = append(cells, Cell{Row: r, Column: c + 1, Value: g.typedValue(r, c+1, raw)})
		}
	}
	return cells, nil
}

// typedValue returns numeric cells as float64 so callers can tell them apart from text
func (g *ExcelGrid) typedValue(row, column int, raw string) any {
	axis, err := excelize.CoordinatesToCellName(column, row)
	if err != nil {
		return raw
	}
	cellType, err := g.file.GetCellType(g.sheet, axis)
	if err != nil {
		return raw
	}
	switch cellType {
	case excelize.CellTypeNumber, excelize.CellTypeUnset:
		if n, err := strconv.ParseFloat(raw, 64); err == nil {
			return n
		}
	}
	return raw
}

func (g *ExcelGrid) SetCell(row, column int, value any) error {
	axis, err := excelize.CoordinatesToCellName(column, row)
	if err != nil {
		return fmt.Errorf("invalid cell position row=%d column=%d: %w", row, column, err)
	}
	if err := g.file.SetCellValue(g.sheet, axis, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", axis, err)
	}
	return nil
}

// GetString reads the formatted value of one cell
func (g *ExcelGrid) GetString(row, column int) (string, error) {
	axis, err := excelize.CoordinatesToCellName(column, row)
	if err != nil {
		return "", err
	}
	return g.file.GetCellValue(g.sheet, axis)
}

func (g *ExcelGrid) MaxRow() int {
	rows, err := g.file.GetRows(g.sheet)
	if err != nil {
		return 0
	}
	return len(rows)
}

func (g *ExcelGrid) Save() ([]byte, error) {
	buf, err := g.file.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// Close releases the workbook's temporary resources
func (g *ExcelGrid) Close() error {
	return g.file.Close()
}
