package listing

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canken881226/amazon-Listing-Tool/models"
	"github.com/canken881226/amazon-Listing-Tool/sheet"
)

func forestView() models.BaseItemAnnotation {
	return models.BaseItemAnnotation{
		Title:        "Forest View",
		Elements:     "pine trees mist",
		PrimaryTheme: "Green",
		Bullets:      []string{"Durable", "Vivid colors"},
	}
}

func twoSizes() []models.VariantSpec {
	return []models.VariantSpec{
		{SizeLabel: "16x24\"", Price: "12.99"},
		{SizeLabel: "24x36\"", Price: "16.99"},
	}
}

func templateGrid() *sheet.MemoryGrid {
	return sheet.NewMemoryGridFromRows([][]string{
		{"TemplateType=fptcustom"},
		{"Seller SKU", "Parent SKU", "Parentage", "Product Name", "Brand Name", "Color", "Color Map",
			"Size", "Size Map", "Standard Price", "Generic Keywords",
			"Key Product Features1", "Key Product Features2", "Key Product Features3",
			"Key Product Features4", "Key Product Features5"},
	})
}

func TestBuildRows_ForestView(t *testing.T) {
	t.Parallel()

	b := NewBuilder(Options{BulletFiller: "filler"})
	rows, err := b.BuildRows("ABC", forestView(), twoSizes(), "Acme", "")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	parent := rows[0]
	assert.Equal(t, models.RoleParent, parent.Role)
	assert.Equal(t, "ABC-001-002", parent.SKU)
	assert.Empty(t, parent.Color)
	assert.Empty(t, parent.Size)
	assert.Empty(t, parent.Price)

	assert.Equal(t, "ABC-001", rows[1].SKU)
	assert.Equal(t, "ABC-002", rows[2].SKU)
	for _, child := range rows[1:] {
		assert.Equal(t, models.RoleChild, child.Role)
		assert.Equal(t, "ABC-001-002", child.ParentSKU)
		assert.Equal(t, "variation", child.RelationshipType)
	}

	assert.Equal(t, "Green pine trees mist", rows[1].Color)
	assert.Equal(t, [5]string{"Durable", "Vivid colors", "filler", "filler", "filler"}, rows[1].Bullets)
	assert.Equal(t, "pine trees mist", rows[1].Keywords)
	assert.Equal(t, "Acme Forest View pine trees mist", parent.Title)
	assert.Equal(t, "Acme Forest View pine trees mist - 16x24\"", rows[1].Title)
	assert.Equal(t, "12.99", rows[1].Price)
	assert.Equal(t, "16.99", rows[2].Price)
}

func TestBuildRows_Mirroring(t *testing.T) {
	t.Parallel()

	rows, err := NewBuilder(Options{}).BuildRows("SQDQ-BH-087", forestView(), twoSizes(), "", "wall art")
	require.NoError(t, err)
	for i, child := range rows[1:] {
		assert.Equal(t, child.Color, child.ColorMap)
		assert.Equal(t, child.Size, child.SizeMap)
		assert.Equal(t, twoSizes()[i].SizeLabel, child.Size)
	}
}

func TestBuildRows_SKUScheme(t *testing.T) {
	t.Parallel()

	variants := make([]models.VariantSpec, 12)
	for i := range variants {
		variants[i] = models.VariantSpec{SizeLabel: "s", Price: "1"}
	}
	rows, err := NewBuilder(Options{}).BuildRows("P", forestView(), variants, "", "")
	require.NoError(t, err)
	require.Len(t, rows, 13)
	assert.Equal(t, "P-001-012", rows[0].SKU)
	assert.Equal(t, "P-010", rows[10].SKU)
	assert.Equal(t, "P-012", rows[12].SKU)
}

func TestBuildRows_ExtraBulletsIgnored(t *testing.T) {
	t.Parallel()

	ann := forestView()
	ann.Bullets = []string{"one", "two", "three", "four", "five", "six", "seven"}
	rows, err := NewBuilder(Options{}).BuildRows("ABC", ann, twoSizes(), "", "")
	require.NoError(t, err)
	assert.Equal(t, [5]string{"one", "two", "three", "four", "five"}, rows[0].Bullets)
}

func TestBuildRows_BulletsCleaned(t *testing.T) {
	t.Parallel()

	ann := forestView()
	ann.Bullets = []string{"['Soft' canvas]", "word1 word2", "\"fake\""}
	rows, err := NewBuilder(Options{BulletFiller: "-"}).BuildRows("ABC", ann, twoSizes(), "", "")
	require.NoError(t, err)
	assert.Equal(t, [5]string{"Soft canvas", "-", "-", "-", "-"}, rows[1].Bullets)
}

func TestBuildRows_TitleTruncated(t *testing.T) {
	t.Parallel()

	ann := forestView()
	ann.Elements = strings.Repeat("forest ", 60)
	rows, err := NewBuilder(Options{}).BuildRows("ABC", ann, twoSizes(), "Acme", "")
	require.NoError(t, err)
	for _, r := range rows {
		assert.LessOrEqual(t, len([]rune(r.Title)), DefaultTitleLimit)
	}
}

func TestBuildRows_MissingInput(t *testing.T) {
	t.Parallel()

	b := NewBuilder(Options{})
	_, err := b.BuildRows("  ", forestView(), twoSizes(), "", "")
	assert.True(t, errors.Is(err, ErrMissingInput))

	_, err = b.BuildRows("ABC", forestView(), nil, "", "")
	assert.True(t, errors.Is(err, ErrMissingInput))
}

func TestBuildRows_Deterministic(t *testing.T) {
	t.Parallel()

	b := NewBuilder(Options{})
	first, err := b.BuildRows("ABC", forestView(), twoSizes(), "Acme", "canvas print pine")
	require.NoError(t, err)
	second, err := b.BuildRows("ABC", forestView(), twoSizes(), "Acme", "canvas print pine")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestBuildRows_Promotion(t *testing.T) {
	t.Parallel()

	b := NewBuilder(Options{
		Promotion: Promotion{Enabled: true, DiscountPercent: 20, StartOffsetDays: 1, DurationDays: 30},
		Now:       func() time.Time { return time.Date(2026, 1, 30, 15, 0, 0, 0, time.UTC) },
	})
	variants := append(twoSizes(), models.VariantSpec{SizeLabel: "XL", Price: "call us"})
	rows, err := b.BuildRows("ABC", forestView(), variants, "", "")
	require.NoError(t, err)

	assert.Empty(t, rows[0].SalePrice)
	assert.Equal(t, "10.39", rows[1].SalePrice)
	assert.Equal(t, "13.59", rows[2].SalePrice)
	assert.Equal(t, "2026-01-31", rows[1].SaleStartDate)
	assert.Equal(t, "2026-03-02", rows[1].SaleEndDate)
	assert.Empty(t, rows[3].SalePrice)
	assert.Empty(t, rows[3].SaleStartDate)
}

func TestWriteRows(t *testing.T) {
	t.Parallel()

	grid := templateGrid()
	catalog, err := sheet.BuildCatalog(grid, 3)
	require.NoError(t, err)

	b := NewBuilder(Options{BulletFiller: "filler"})
	rows, err := b.BuildRows("ABC", forestView(), twoSizes(), "Acme", "")
	require.NoError(t, err)

	n, err := b.WriteRows(grid, catalog, 4, rows)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	assert.Equal(t, "ABC-001-002", grid.GetString(4, 1))
	assert.Equal(t, "", grid.GetString(4, 2))
	assert.Equal(t, "parent", grid.GetString(4, 3))
	assert.Equal(t, "", grid.GetString(4, 6))

	assert.Equal(t, "ABC-001", grid.GetString(5, 1))
	assert.Equal(t, "ABC-001-002", grid.GetString(5, 2))
	assert.Equal(t, "child", grid.GetString(5, 3))
	assert.Equal(t, "Acme", grid.GetString(5, 5))
	assert.Equal(t, "Green pine trees mist", grid.GetString(5, 6))
	assert.Equal(t, "Green pine trees mist", grid.GetString(5, 7))
	assert.Equal(t, "16x24\"", grid.GetString(5, 8))
	assert.Equal(t, "16x24\"", grid.GetString(5, 9))
	assert.Equal(t, "12.99", grid.GetString(5, 10))
	assert.Equal(t, "pine trees mist", grid.GetString(5, 11))
	assert.Equal(t, "Durable", grid.GetString(5, 12))
	assert.Equal(t, "filler", grid.GetString(5, 16))

	assert.Equal(t, "ABC-002", grid.GetString(6, 1))
	assert.Equal(t, "16.99", grid.GetString(6, 10))
	assert.Equal(t, 6, grid.MaxRow())
}

func TestWriteRows_UnresolvedFieldsSkipped(t *testing.T) {
	t.Parallel()

	grid := sheet.NewMemoryGridFromRows([][]string{{"Seller SKU", "Standard Price"}})
	catalog, err := sheet.BuildCatalog(grid, 1)
	require.NoError(t, err)

	b := NewBuilder(Options{})
	rows, err := b.BuildRows("ABC", forestView(), twoSizes(), "Acme", "")
	require.NoError(t, err)
	n, err := b.WriteRows(grid, catalog, 2, rows)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	cells, err := grid.IterateCells(2, 4)
	require.NoError(t, err)
	for _, c := range cells {
		assert.LessOrEqual(t, c.Column, 2)
	}
	assert.Equal(t, "16.99", grid.GetString(4, 2))
	assert.Contains(t, b.Unresolved(catalog), "product name")
}

func TestWriteRows_InvalidStartRow(t *testing.T) {
	t.Parallel()

	_, err := NewBuilder(Options{}).WriteRows(sheet.NewMemoryGrid(), sheet.NewCatalog(), 0, nil)
	assert.Error(t, err)
}

func TestFill_ConsecutiveItems(t *testing.T) {
	t.Parallel()

	grid := templateGrid()
	catalog, err := sheet.BuildCatalog(grid, 3)
	require.NoError(t, err)
	b := NewBuilder(Options{})

	next := 4
	for _, prefix := range []string{"AAA", "BBB"} {
		rows, err := b.Fill(grid, catalog, next, prefix, forestView(), twoSizes(), "", "")
		require.NoError(t, err)
		next += len(rows)
	}
	assert.Equal(t, "AAA-001-002", grid.GetString(4, 1))
	assert.Equal(t, "BBB-001-002", grid.GetString(7, 1))
	assert.Equal(t, "BBB-002", grid.GetString(9, 1))
	assert.Equal(t, 10, next)
}
