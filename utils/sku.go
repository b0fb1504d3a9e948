package utils

import "fmt"

// PadIndex renders a 1-based variant position as a 3-digit, zero padded string ("001")
func PadIndex(i int) string {
	return fmt.Sprintf("%03d", i)
}

// ChildSKU builds the SKU of the variant at 1-based position index: PREFIX-00i
func ChildSKU(prefix string, index int) string {
	return prefix + "-" + PadIndex(index)
}

// ParentSKU builds the family SKU spanning positions first..last: PREFIX-001-00N
func ParentSKU(prefix string, first, last int) string {
	return prefix + "-" + PadIndex(first) + "-" + PadIndex(last)
}
