package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ParsePriceCents parses a decimal price string such as "12.99", "$12.9" or "12" into cents.
// Thousands separators are not supported; the listing templates never use them.
func ParsePriceCents(price string) (int64, error) {
	s := strings.TrimSpace(price)
	s = strings.TrimPrefix(s, "$")
	if s == "" {
		return 0, fmt.Errorf("empty price")
	}

	whole, frac, hasFrac := strings.Cut(s, ".")
	if whole == "" {
		whole = "0"
	}
	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || units < 0 {
		return 0, fmt.Errorf("invalid price %q", price)
	}

	var cents int64
	if hasFrac {
		if len(frac) == 0 || len(frac) > 2 {
			return 0, fmt.Errorf("invalid price %q: expected at most 2 decimals", price)
		}
		if len(frac) == 1 {
			frac += "0"
		}
		cents, err = strconv.ParseInt(frac, 10, 64)
		if err != nil || cents < 0 {
			return 0, fmt.Errorf("invalid price %q", price)
		}
	}
	return units*100 + cents, nil
}

// FormatCents formats an amount in cents as a plain decimal string like "12.99".
func FormatCents(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}
	s := fmt.Sprintf("%d.%02d", amount/100, amount%100)
	if neg {
		return "-" + s
	}
	return s
}

// ApplyDiscount returns cents reduced by percent, rounded half up to the nearest cent.
func ApplyDiscount(cents int64, percent float64) int64 {
	if percent <= 0 {
		return cents
	}
	if percent >= 100 {
		return 0
	}
	// work in hundredths of a percent to keep the rounding integral
	bp := int64(percent*100 + 0.5)
	return (cents*(10000-bp) + 5000) / 10000
}
