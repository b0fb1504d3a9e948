package listing

import (
	"strconv"

	"github.com/canken881226/amazon-Listing-Tool/models"
)

// FieldNames are the semantic header names each OutputRow attribute is written under.
// Names are resolved through sheet.Catalog.Resolve, so they only need to be a normalized
// substring of the real header.
type FieldNames struct {
	SellerSKU        string   `yaml:"seller_sku"`
	ParentSKU        string   `yaml:"parent_sku"`
	Title            string   `yaml:"title"`
	Brand            string   `yaml:"brand"`
	Color            string   `yaml:"color"`
	ColorMap         string   `yaml:"color_map"`
	Size             string   `yaml:"size"`
	SizeMap          string   `yaml:"size_map"`
	Price            string   `yaml:"price"`
	Keywords         string   `yaml:"keywords"`
	Bullets          []string `yaml:"bullets"`
	Parentage        string   `yaml:"parentage"`
	RelationshipType string   `yaml:"relationship_type"`
	VariationTheme   string   `yaml:"variation_theme"`
	SalePrice        string   `yaml:"sale_price"`
	SaleStartDate    string   `yaml:"sale_start_date"`
	SaleEndDate      string   `yaml:"sale_end_date"`
}

// DefaultFieldNames matches the US bulk-listing template headers
func DefaultFieldNames() FieldNames {
	bullets := make([]string, models.BulletCount)
	for i := range bullets {
		bullets[i] = "key product features" + strconv.Itoa(i+1)
	}
	return FieldNames{
		SellerSKU:        "seller sku",
		ParentSKU:        "parent sku",
		Title:            "product name",
		Brand:            "brand name",
		Color:            "color",
		ColorMap:         "color map",
		Size:             "size",
		SizeMap:          "size map",
		Price:            "standard price",
		Keywords:         "generic keywords",
		Bullets:          bullets,
		Parentage:        "parentage",
		RelationshipType: "relationship type",
		VariationTheme:   "variation theme",
		SalePrice:        "sale price",
		SaleStartDate:    "sale start date",
		SaleEndDate:      "sale end date",
	}
}

type fieldValue struct {
	field string
	value string
}

// values lists the (field, value) pairs of row in write order. Empty values are dropped so
// template cells are never blanked.
func (f FieldNames) values(row models.OutputRow) []fieldValue {
	all := []fieldValue{
		{f.SellerSKU, row.SKU},
		{f.ParentSKU, row.ParentSKU},
		{f.Parentage, string(row.Role)},
		{f.RelationshipType, row.RelationshipType},
		{f.VariationTheme, row.VariationTheme},
		{f.Brand, row.Brand},
		{f.Title, row.Title},
		{f.Color, row.Color},
		{f.ColorMap, row.ColorMap},
		{f.Size, row.Size},
		{f.SizeMap, row.SizeMap},
		{f.Price, row.Price},
		{f.SalePrice, row.SalePrice},
		{f.SaleStartDate, row.SaleStartDate},
		{f.SaleEndDate, row.SaleEndDate},
		{f.Keywords, row.Keywords},
	}
	for i, name := range f.Bullets {
		if i >= models.BulletCount {
			break
		}
		all = append(all, fieldValue{name, row.Bullets[i]})
	}

	out := all[:0]
	for _, fv := range all {
		if fv.field == "" || fv.value == "" {
			continue
		}
		out = append(out, fv)
	}
	return out
}
