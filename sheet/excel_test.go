package sheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func newWorkbook(t *testing.T, rows [][]any) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	for r, row := range rows {
		for c, v := range row {
			if v == nil {
				continue
			}
			axis, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue("Sheet1", axis, v))
		}
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestExcelGrid_RoundTrip(t *testing.T) {
	t.Parallel()

	data := newWorkbook(t, [][]any{
		{"Template", nil, 2024},
		{"Seller SKU", "Product Name", "Standard Price"},
	})

	grid, err := OpenExcelGrid(data)
	require.NoError(t, err)
	defer grid.Close()

	assert.Equal(t, "Sheet1", grid.SheetName())
	assert.Equal(t, 2, grid.MaxRow())

	cells, err := grid.IterateCells(1, 2)
	require.NoError(t, err)
	require.Len(t, cells, 5)
	assert.Equal(t, Cell{Row: 1, Column: 1, Value: "Template"}, cells[0])
	assert.Equal(t, Cell{Row: 1, Column: 3, Value: 2024.0}, cells[1])
	assert.Equal(t, Cell{Row: 2, Column: 3, Value: "Standard Price"}, cells[4])

	catalog, err := BuildCatalog(grid, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"template", "sellersku", "productname", "standardprice"}, catalog.Keys())

	require.NoError(t, grid.SetCell(4, 1, "ABC-001"))
	require.NoError(t, grid.SetCell(4, 3, "12.99"))
	out, err := grid.Save()
	require.NoError(t, err)

	reopened, err := OpenExcelGrid(out)
	require.NoError(t, err)
	defer reopened.Close()

	v, err := reopened.GetString(4, 1)
	require.NoError(t, err)
	assert.Equal(t, "ABC-001", v)
	v, err = reopened.GetString(4, 3)
	require.NoError(t, err)
	assert.Equal(t, "12.99", v)
	assert.Equal(t, 4, reopened.MaxRow())
}

func TestOpenExcelGrid_Invalid(t *testing.T) {
	t.Parallel()

	_, err := OpenExcelGrid(nil)
	assert.Error(t, err)
	_, err = OpenExcelGrid([]byte("not a workbook"))
	assert.Error(t, err)
}

func TestMemoryGrid(t *testing.T) {
	t.Parallel()

	g := NewMemoryGrid()
	require.NoError(t, g.SetCell(2, 3, "x"))
	require.NoError(t, g.SetCell(1, 1, "y"))
	assert.Error(t, g.SetCell(0, 1, "z"))
	assert.Equal(t, 2, g.MaxRow())
	assert.Equal(t, "x", g.GetString(2, 3))

	cells, err := g.IterateCells(1, 2)
	require.NoError(t, err)
	assert.Equal(t, []Cell{{Row: 1, Column: 1, Value: "y"}, {Row: 2, Column: 3, Value: "x"}}, cells)

	require.NoError(t, g.SetCell(2, 3, ""))
	assert.Nil(t, g.Get(2, 3))

	_, err = g.IterateCells(3, 1)
	assert.Error(t, err)
}
