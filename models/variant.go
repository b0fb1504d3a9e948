package models

// VariantSpec is one sellable size of a product.
// Price is kept as entered (e.g. "12.99"); it is never parsed on the write path.
type VariantSpec struct {
	SizeLabel string `json:"size" yaml:"size"`
	Price     string `json:"price" yaml:"price"`
}

// RowRole tells parent rows apart from child rows
type RowRole string

const (
	RoleParent RowRole = "parent"
	RoleChild  RowRole = "child"
)

// BulletCount is the number of key product feature columns in a listing template.
const BulletCount = 5

// OutputRow represents one line written into the listing grid.
type OutputRow struct {
	Role             RowRole             `json:"role"`
	SKU              string              `json:"sku"`
	ParentSKU        string              `json:"parentSku"`
	Title            string              `json:"title"`
	Brand            string              `json:"brand"`
	Color            string              `json:"color,omitempty"`
	ColorMap         string              `json:"colorMap,omitempty"`
	Size             string              `json:"size,omitempty"`
	SizeMap          string              `json:"sizeMap,omitempty"`
	Price            string              `json:"price,omitempty"`
	Keywords         string              `json:"keywords"`
	Bullets          [BulletCount]string `json:"bullets"`
	RelationshipType string              `json:"relationshipType,omitempty"`
	VariationTheme   string              `json:"variationTheme,omitempty"`
	SalePrice        string              `json:"salePrice,omitempty"`
	SaleStartDate    string              `json:"saleStartDate,omitempty"`
	SaleEndDate      string              `json:"saleEndDate,omitempty"`
}
