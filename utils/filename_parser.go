package utils

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	imageExtRegex = regexp.MustCompile(`(?i)\.(png|jpg|jpeg|webp)$`)
	skuPrefixRe   = regexp.MustCompile(`^[A-Za-z0-9]+(-[A-Za-z0-9]+)*$`)
)

// ParseSKUPrefix derives a SKU prefix from a product photo filename.
// Example: SQDQ-BH-087.jpg -> SQDQ-BH-087
func ParseSKUPrefix(filename string) (string, error) {
	name := strings.TrimSpace(imageExtRegex.ReplaceAllString(strings.TrimSpace(filename), ""))
	if name == "" {
		return "", fmt.Errorf("invalid filename %q: empty name", filename)
	}
	if !skuPrefixRe.MatchString(name) {
		return "", fmt.Errorf("invalid filename format %q: expected letters and digits separated by '-'", filename)
	}
	return strings.ToUpper(name), nil
}
