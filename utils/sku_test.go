package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSKU(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "001", PadIndex(1))
	assert.Equal(t, "042", PadIndex(42))
	assert.Equal(t, "1000", PadIndex(1000))
	assert.Equal(t, "ABC-002", ChildSKU("ABC", 2))
	assert.Equal(t, "ABC-001-003", ParentSKU("ABC", 1, 3))
}

func TestParseSKUPrefix(t *testing.T) {
	t.Parallel()

	prefix, err := ParseSKUPrefix("sqdq-bh-087.JPG")
	require.NoError(t, err)
	assert.Equal(t, "SQDQ-BH-087", prefix)

	prefix, err = ParseSKUPrefix("ABC.png")
	require.NoError(t, err)
	assert.Equal(t, "ABC", prefix)

	for _, bad := range []string{"", ".png", "my photo.jpg", "ABC--1.jpg", "-ABC.jpg"} {
		_, err := ParseSKUPrefix(bad)
		assert.Error(t, err, bad)
	}
}

func TestPriceCents(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want int64
	}{
		{"12.99", 1299},
		{"$16.9", 1690},
		{"20", 2000},
		{".5", 50},
	}
	for _, tt := range tests {
		got, err := ParsePriceCents(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	for _, bad := range []string{"", "abc", "1.234", "12.", "-3"} {
		_, err := ParsePriceCents(bad)
		assert.Error(t, err, bad)
	}

	assert.Equal(t, "12.99", FormatCents(1299))
	assert.Equal(t, "0.05", FormatCents(5))
	assert.Equal(t, "-1.50", FormatCents(-150))

	assert.Equal(t, int64(1169), ApplyDiscount(1299, 10))
	assert.Equal(t, int64(1299), ApplyDiscount(1299, 0))
	assert.Equal(t, int64(0), ApplyDiscount(1299, 100))
	assert.Equal(t, int64(1274), ApplyDiscount(1699, 25))
}

func TestPromotionWindow(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.January, 30, 17, 45, 0, 0, time.UTC)
	start, end := PromotionWindow(now, 1, 30)
	assert.Equal(t, "2026-01-31", start)
	assert.Equal(t, "2026-03-02", end)

	start, end = PromotionWindow(now, 0, 0)
	assert.Equal(t, "2026-01-30", start)
	assert.Equal(t, "2026-01-30", end)
}
