package listing

import (
	"fmt"
	"strings"

	"github.com/canken881226/amazon-Listing-Tool/models"
)

// ParseVariants pairs a comma separated size list with a comma separated price list.
// Both empty returns nil so callers can fall back to their defaults.
func ParseVariants(sizes, prices string) ([]models.VariantSpec, error) {
	sizeList := splitList(sizes)
	priceList := splitList(prices)
	if len(sizeList) == 0 && len(priceList) == 0 {
		return nil, nil
	}
	if len(sizeList) != len(priceList) {
		return nil, fmt.Errorf("%w: %d sizes but %d prices", ErrMissingInput, len(sizeList), len(priceList))
	}
	variants := make([]models.VariantSpec, len(sizeList))
	for i := range sizeList {
		if sizeList[i] == "" {
			return nil, fmt.Errorf("%w: size %d is empty", ErrMissingInput, i+1)
		}
		variants[i] = models.VariantSpec{SizeLabel: sizeList[i], Price: priceList[i]}
	}
	return variants, nil
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
