// Package listing turns a product annotation and its size variants into the parent/child
// rows of a bulk-listing template and writes them into a sheet.Grid.
package listing

import (
	"fmt"
	"strings"
	"time"

	"github.com/canken881226/amazon-Listing-Tool/models"
	"github.com/canken881226/amazon-Listing-Tool/sheet"
	"github.com/canken881226/amazon-Listing-Tool/utils"
)

const (
	DefaultKeywordLimit   = 250
	DefaultTitleLimit     = 199
	DefaultBulletFiller   = "High quality product designed for everyday use."
	DefaultVariationTheme = "SizeName"
	relationshipVariation = "variation"
)

// Promotion describes an optional sale applied to child rows
type Promotion struct {
	Enabled         bool    `yaml:"enabled" json:"enabled"`
	DiscountPercent float64 `yaml:"discount_percent" json:"discountPercent"`
	StartOffsetDays int     `yaml:"start_offset_days" json:"startOffsetDays"`
	DurationDays    int     `yaml:"duration_days" json:"durationDays"`
}

// Options configures a Builder. Zero values fall back to the package defaults.
type Options struct {
	KeywordLimit   int
	TitleLimit     int
	BulletFiller   string
	Blacklist      utils.Blacklist
	VariationTheme string
	Fields         FieldNames
	Promotion      Promotion
	// Now is the clock used for promotion dates
	Now func() time.Time
}

func (o *Options) defaults() {
	if o.KeywordLimit <= 0 {
		o.KeywordLimit = DefaultKeywordLimit
	}
	if o.TitleLimit <= 0 {
		o.TitleLimit = DefaultTitleLimit
	}
	if o.BulletFiller == "" {
		o.BulletFiller = DefaultBulletFiller
	}
	if o.Blacklist == nil {
		o.Blacklist = utils.NewBlacklist(utils.DefaultPlaceholderBlacklist)
	}
	if o.VariationTheme == "" {
		o.VariationTheme = DefaultVariationTheme
	}
	if o.Fields.SellerSKU == "" {
		o.Fields = DefaultFieldNames()
	}
	if o.Now == nil {
		o.Now = time.Now
	}
}

// Builder produces and writes listing rows. It holds no per-item state and is safe to share.
type Builder struct {
	opts Options
}

func NewBuilder(opts Options) *Builder {
	opts.defaults()
	return &Builder{opts: opts}
}

// Fields returns the semantic field names rows are written under
func (b *Builder) Fields() FieldNames {
	return b.opts.Fields
}

// BuildRows returns the parent row followed by one child row per variant, in variant order.
func (b *Builder) BuildRows(basePrefix string, annotation models.BaseItemAnnotation, variants []models.VariantSpec, brand, keywordPool string) ([]models.OutputRow, error) {
	basePrefix = strings.TrimSpace(basePrefix)
	if basePrefix == "" {
		return nil, fmt.Errorf("%w: sku prefix is required", ErrMissingInput)
	}
	if len(variants) == 0 {
		return nil, fmt.Errorf("%w: at least one size variant is required", ErrMissingInput)
	}

	brand = strings.TrimSpace(brand)
	title := utils.Truncate(utils.JoinNonEmpty(brand, annotation.Title, annotation.Elements), b.opts.TitleLimit)
	keywords := utils.NormalizeKeywordList(annotation.Elements+" "+keywordPool, b.opts.KeywordLimit)
	bullets := b.bullets(annotation.Bullets)
	color := utils.JoinNonEmpty(annotation.PrimaryTheme, annotation.Elements)
	parentSKU := utils.ParentSKU(basePrefix, 1, len(variants))

	rows := make([]models.OutputRow, 0, len(variants)+1)
	rows = append(rows, models.OutputRow{
		Role:           models.RoleParent,
		SKU:            parentSKU,
		Title:          title,
		Brand:          brand,
		Keywords:       keywords,
		Bullets:        bullets,
		VariationTheme: b.opts.VariationTheme,
	})

	saleStart, saleEnd := "", ""
	if b.opts.Promotion.Enabled {
		saleStart, saleEnd = utils.PromotionWindow(b.opts.Now(), b.opts.Promotion.StartOffsetDays, b.opts.Promotion.DurationDays)
	}

	for i, v := range variants {
		size := v.SizeLabel
		child := models.OutputRow{
			Role:             models.RoleChild,
			SKU:              utils.ChildSKU(basePrefix, i+1),
			ParentSKU:        parentSKU,
			Title:            utils.Truncate(title+" - "+size, b.opts.TitleLimit),
			Brand:            brand,
			Color:            color,
			ColorMap:         color,
			Size:             size,
			SizeMap:          size,
			Price:            v.Price,
			Keywords:         keywords,
			Bullets:          bullets,
			RelationshipType: relationshipVariation,
			VariationTheme:   b.opts.VariationTheme,
		}
		if b.opts.Promotion.Enabled {
			if cents, err := utils.ParsePriceCents(v.Price); err == nil {
				child.SalePrice = utils.FormatCents(utils.ApplyDiscount(cents, b.opts.Promotion.DiscountPercent))
				child.SaleStartDate = saleStart
				child.SaleEndDate = saleEnd
			}
		}
		rows = append(rows, child)
	}
	return rows, nil
}

func (b *Builder) bullets(raw []string) [models.BulletCount]string {
	var out [models.BulletCount]string
	for i := range out {
		if i < len(raw) {
			out[i] = utils.CleanText(raw[i], b.opts.Blacklist)
		}
		if out[i] == "" {
			out[i] = b.opts.BulletFiller
		}
	}
	return out
}

// WriteRows writes rows into grid starting at startRow, one grid row per OutputRow.
// Fields whose column cannot be resolved in catalog are skipped. It returns the number of
// rows written, so the caller can place the next item at startRow+n.
func (b *Builder) WriteRows(grid sheet.Grid, catalog *sheet.Catalog, startRow int, rows []models.OutputRow) (int, error) {
	if startRow < 1 {
		return 0, fmt.Errorf("invalid start row %d", startRow)
	}
	columns := make(map[string]sheet.Match)
	for i, row := range rows {
		r := startRow + i
		for _, fv := range b.opts.Fields.values(row) {
			m, ok := columns[fv.field]
			if !ok {
				m = catalog.Resolve(fv.field)
				columns[fv.field] = m
			}
			if !m.Found {
				continue
			}
			if err := grid.SetCell(r, m.Column, fv.value); err != nil {
				return i, fmt.Errorf("error writing %s for %s: %w", fv.field, row.SKU, err)
			}
		}
	}
	return len(rows), nil
}

// Fill builds the rows for one base item and writes them at startRow
func (b *Builder) Fill(grid sheet.Grid, catalog *sheet.Catalog, startRow int, basePrefix string, annotation models.BaseItemAnnotation, variants []models.VariantSpec, brand, keywordPool string) ([]models.OutputRow, error) {
	rows, err := b.BuildRows(basePrefix, annotation, variants, brand, keywordPool)
	if err != nil {
		return nil, err
	}
	if _, err := b.WriteRows(grid, catalog, startRow, rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// Unresolved lists the configured field names that catalog cannot place.
func (b *Builder) Unresolved(catalog *sheet.Catalog) []string {
	f := b.opts.Fields
	names := []string{f.SellerSKU, f.ParentSKU, f.Title, f.Brand, f.Color, f.ColorMap, f.Size, f.SizeMap,
		f.Price, f.Keywords, f.Parentage, f.RelationshipType, f.VariationTheme}
	names = append(names, f.Bullets...)
	if b.opts.Promotion.Enabled {
		names = append(names, f.SalePrice, f.SaleStartDate, f.SaleEndDate)
	}
	var missing []string
	for _, n := range names {
		if n != "" && !catalog.Resolve(n).Found {
			missing = append(missing, n)
		}
	}
	return missing
}
