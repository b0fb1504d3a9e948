package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canken881226/amazon-Listing-Tool/listing"
	"github.com/canken881226/amazon-Listing-Tool/models"
	"github.com/canken881226/amazon-Listing-Tool/profile"
)

func TestMigrate(t *testing.T) {
	t.Parallel()

	source := workbook(t, [][]any{
		{"TemplateType=fptcustom"},
		{"Seller SKU", "Product Name", "Color", "Generic Keywords", "Key Product Features1", "Standard Price", "Shipping Group"},
		{"item_sku", "item_name", "color_name", "generic_keywords", "bullet_point1", "standard_price", "merchant_shipping_group"},
		{"ABC-001-002", "Acme Forest View", nil, "pine trees", "Durable", nil, nil},
		{"ABC-001", "Acme Forest View - 16x24\"", "Green pine", "pine trees", "Durable", 12.99, "Free"},
	})
	target := workbook(t, [][]any{
		{"TemplateType=fptcustom"},
		{"Item Name", "Seller SKU", "Search Terms", "Colour", "Bullet Point1", "Standard Price"},
		{},
	})

	repo := &memoryJobRepo{}
	s := NewMigrationService(repo, profile.Default())
	res, err := s.Migrate(context.Background(), source, target)
	require.NoError(t, err)

	assert.Equal(t, "itemname", res.ColumnsMapped["productname"])
	assert.Equal(t, "searchterms", res.ColumnsMapped["generickeywords"])
	assert.Equal(t, "colour", res.ColumnsMapped["color"])
	assert.Equal(t, "bulletpoint1", res.ColumnsMapped["keyproductfeatures1"])
	assert.Equal(t, "sellersku", res.ColumnsMapped["sellersku"])
	assert.Contains(t, res.Unmapped, "shippinggroup")
	assert.Equal(t, 2, res.RowsCopied)
	assert.Equal(t, 10, res.CellsCopied)

	wb := res.Workbook
	assert.Equal(t, "Acme Forest View", cellValue(t, wb, 4, 1))
	assert.Equal(t, "ABC-001-002", cellValue(t, wb, 4, 2))
	assert.Equal(t, "", cellValue(t, wb, 4, 4))
	assert.Equal(t, "ABC-001", cellValue(t, wb, 5, 2))
	assert.Equal(t, "pine trees", cellValue(t, wb, 5, 3))
	assert.Equal(t, "Green pine", cellValue(t, wb, 5, 4))
	assert.Equal(t, "Durable", cellValue(t, wb, 5, 5))
	assert.Equal(t, "12.99", cellValue(t, wb, 5, 6))

	require.Len(t, repo.jobs, 1)
	assert.Equal(t, models.JobKindMigrate, repo.jobs[0].Kind)
	assert.Equal(t, 2, repo.jobs[0].RowsWritten)
}

func TestMigrate_NoDataRows(t *testing.T) {
	t.Parallel()

	header := [][]any{{"x"}, {"Seller SKU"}, {"item_sku"}}
	res, err := NewMigrationService(nil, profile.Default()).Migrate(context.Background(), workbook(t, header), workbook(t, header))
	require.NoError(t, err)
	assert.Zero(t, res.CellsCopied)
	assert.NotEmpty(t, res.Workbook)
}

func TestMigrate_Invalid(t *testing.T) {
	t.Parallel()

	s := NewMigrationService(nil, profile.Default())
	good := workbook(t, [][]any{{"Seller SKU"}})

	_, err := s.Migrate(context.Background(), nil, good)
	assert.True(t, errors.Is(err, listing.ErrMissingInput))

	_, err = s.Migrate(context.Background(), []byte("nope"), good)
	assert.True(t, errors.Is(err, listing.ErrInvalidTemplate))

	_, err = s.Migrate(context.Background(), good, workbook(t, [][]any{{nil}, {nil}, {nil}, {"ABC"}}))
	assert.True(t, errors.Is(err, listing.ErrEmptyCatalog))
}
