// Package profile loads the listing profile: the per-store defaults used to fill templates.
package profile

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/canken881226/amazon-Listing-Tool/listing"
	"github.com/canken881226/amazon-Listing-Tool/models"
	"github.com/canken881226/amazon-Listing-Tool/sheet"
	"github.com/canken881226/amazon-Listing-Tool/utils"
)

// Profile holds the listing defaults read from YAML
type Profile struct {
	Brand                string               `yaml:"brand"`
	Variants             []models.VariantSpec `yaml:"variants"`
	KeywordPool          string               `yaml:"keyword_pool"`
	KeywordLimit         int                  `yaml:"keyword_limit"`
	TitleLimit           int                  `yaml:"title_limit"`
	BulletFiller         string               `yaml:"bullet_filler"`
	PlaceholderBlacklist []string             `yaml:"placeholder_blacklist"`
	HeaderScanRows       int                  `yaml:"header_scan_rows"`
	DataStartRow         int                  `yaml:"data_start_row"`
	VariationTheme       string               `yaml:"variation_theme"`
	Fields               listing.FieldNames   `yaml:"fields"`
	Promotion            listing.Promotion    `yaml:"promotion"`
	Migration            Migration            `yaml:"migration"`
}

// Migration configures US to UK template copying. Aliases map a normalized source header to
// the normalized header it is called in the target template.
type Migration struct {
	Aliases map[string]string `yaml:"aliases"`
}

// Default returns the built-in profile
func Default() *Profile {
	return &Profile{
		Brand: "AMAZING WALL",
		Variants: []models.VariantSpec{
			{SizeLabel: "16x24\"", Price: "12.99"},
			{SizeLabel: "24x36\"", Price: "16.99"},
			{SizeLabel: "32x48\"", Price: "19.99"},
		},
		KeywordPool:          "canvas wall art print framed living room bedroom office decor",
		KeywordLimit:         listing.DefaultKeywordLimit,
		TitleLimit:           listing.DefaultTitleLimit,
		BulletFiller:         listing.DefaultBulletFiller,
		PlaceholderBlacklist: append([]string(nil), utils.DefaultPlaceholderBlacklist...),
		HeaderScanRows:       3,
		DataStartRow:         4,
		VariationTheme:       listing.DefaultVariationTheme,
		Fields:               listing.DefaultFieldNames(),
		Promotion: listing.Promotion{
			DiscountPercent: 10,
			StartOffsetDays: 1,
			DurationDays:    30,
		},
		Migration: Migration{Aliases: DefaultMigrationAliases()},
	}
}

// DefaultMigrationAliases lists the US headers that were renamed in the UK template
func DefaultMigrationAliases() map[string]string {
	aliases := map[string]string{
		"productname":     "itemname",
		"generickeywords": "searchterms",
		"generickeyword":  "searchterms",
		"color":           "colour",
		"colormap":        "colourmap",
	}
	for i := 1; i <= models.BulletCount; i++ {
		n := strconv.Itoa(i)
		aliases["keyproductfeatures"+n] = "bulletpoint" + n
	}
	return aliases
}

var (
	current   *Profile
	currentMu sync.RWMutex
)

// Load reads the profile at path on top of the defaults, validates it and makes it the
// current profile. An empty path keeps the defaults.
func Load(path string) (*Profile, error) {
	p := Default()
	if path != "" {
		if !filepath.IsAbs(path) {
			wd, err := os.Getwd()
			if err != nil {
				return nil, fmt.Errorf("failed to get working directory: %w", err)
			}
			path = filepath.Join(wd, path)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read listing profile: %w", err)
		}
		if err := yaml.Unmarshal(data, p); err != nil {
			return nil, fmt.Errorf("failed to parse listing profile: %w", err)
		}
	}

	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid listing profile: %w", err)
	}
	p.Migration.Aliases = normalizeAliases(p.Migration.Aliases)

	currentMu.Lock()
	current = p
	currentMu.Unlock()

	if path != "" {
		zap.S().Infof("✅ Profile: loaded listing profile from %s", path)
	} else {
		zap.S().Infof("✅ Profile: using built-in listing profile")
	}
	return p, nil
}

// Get returns the current profile, or the defaults when none was loaded.
func Get() *Profile {
	currentMu.RLock()
	defer currentMu.RUnlock()
	if current == nil {
		return Default()
	}
	return current
}

// Validate checks the profile for values the fill cannot work with
func (p *Profile) Validate() error {
	if p.HeaderScanRows < 1 {
		return fmt.Errorf("header_scan_rows must be at least 1")
	}
	if p.DataStartRow <= p.HeaderScanRows {
		return fmt.Errorf("data_start_row (%d) must be after the header rows (%d)", p.DataStartRow, p.HeaderScanRows)
	}
	if p.KeywordLimit < 0 || p.TitleLimit < 0 {
		return fmt.Errorf("limits must not be negative")
	}
	if strings.TrimSpace(p.Fields.SellerSKU) == "" {
		return fmt.Errorf("fields.seller_sku is required")
	}
	if len(p.Fields.Bullets) > models.BulletCount {
		return fmt.Errorf("at most %d bullet fields are supported", models.BulletCount)
	}
	for i, v := range p.Variants {
		if strings.TrimSpace(v.SizeLabel) == "" {
			return fmt.Errorf("variant %d has no size", i+1)
		}
	}
	promo := p.Promotion
	if promo.Enabled {
		if promo.DiscountPercent <= 0 || promo.DiscountPercent >= 100 {
			return fmt.Errorf("promotion.discount_percent must be between 0 and 100")
		}
		if promo.DurationDays < 1 || promo.StartOffsetDays < 0 {
			return fmt.Errorf("promotion window is invalid")
		}
	}
	return nil
}

// BuilderOptions converts the profile into listing.Builder options
func (p *Profile) BuilderOptions(now func() time.Time) listing.Options {
	return listing.Options{
		KeywordLimit:   p.KeywordLimit,
		TitleLimit:     p.TitleLimit,
		BulletFiller:   p.BulletFiller,
		Blacklist:      utils.NewBlacklist(p.PlaceholderBlacklist),
		VariationTheme: p.VariationTheme,
		Fields:         p.Fields,
		Promotion:      p.Promotion,
		Now:            now,
	}
}

func normalizeAliases(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for from, to := range in {
		out[sheet.NormalizeHeader(from)] = sheet.NormalizeHeader(to)
	}
	return out
}
