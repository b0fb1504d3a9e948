package sheet

import (
	"fmt"
	"strings"
	"unicode"
)

// Catalog maps normalized header names to 1-based column indexes.
// When two header cells normalize to the same key the one scanned last wins; the key keeps
// the scan position of its first appearance so substring fallback is deterministic.
type Catalog struct {
	columns map[string]int
	order   []string
}

// Match is the result of resolving a field name against a Catalog
type Match struct {
	Column int
	Found  bool
}

// NotFound is the zero Match
var NotFound = Match{}

// NormalizeHeader lowercases s and removes whitespace and punctuation,
// so "Seller SKU", "seller_sku" and "Seller-SKU" all become "sellersku".
func NormalizeHeader(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if unicode.IsSpace(r) || unicode.IsPunct(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// NewCatalog returns an empty catalog
func NewCatalog() *Catalog {
	return &Catalog{columns: make(map[string]int)}
}

// BuildCatalog scans rows 1..maxScanRow of grid and records every non-empty text cell.
func BuildCatalog(grid Grid, maxScanRow int) (*Catalog, error) {
	if maxScanRow < 1 {
		return nil, fmt.Errorf("header scan window must be at least 1 row, got %d", maxScanRow)
	}
	cells, err := grid.IterateCells(1, maxScanRow)
	if err != nil {
		return nil, fmt.Errorf("failed to scan headers: %w", err)
	}

	catalog := NewCatalog()
	for _, cell := range cells {
		text, ok := cell.Text()
		if !ok {
			continue
		}
		catalog.Add(text, cell.Column)
	}
	return catalog, nil
}

// Add records header at column. Headers that normalize to "" are ignored.
func (c *Catalog) Add(header string, column int) {
	key := NormalizeHeader(header)
	if key == "" {
		return
	}
	if _, exists := c.columns[key]; !exists {
		c.order = append(c.order, key)
	}
	c.columns[key] = column
}

// Len is the number of distinct keys
func (c *Catalog) Len() int {
	return len(c.order)
}

// Keys returns the normalized keys in scan order
func (c *Catalog) Keys() []string {
	return append([]string(nil), c.order...)
}

// Lookup resolves fieldName by exact normalized match only.
func (c *Catalog) Lookup(fieldName string) Match {
	key := NormalizeHeader(fieldName)
	if key == "" {
		return NotFound
	}
	if col, ok := c.columns[key]; ok {
		return Match{Column: col, Found: true}
	}
	return NotFound
}

// Resolve looks fieldName up by exact normalized match first, then falls back to the first
// key in scan order that contains it. Templates are inconsistent about header spelling
// ("Key Product Features 1" vs "key_product_features1_text"), so partial matches are accepted.
func (c *Catalog) Resolve(fieldName string) Match {
	if m := c.Lookup(fieldName); m.Found {
		return m
	}
	key := NormalizeHeader(fieldName)
	if key == "" {
		return NotFound
	}
	for _, k := range c.order {
		if strings.Contains(k, key) {
			return Match{Column: c.columns[k], Found: true}
		}
	}
	return NotFound
}
