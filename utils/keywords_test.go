package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeKeywordList(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		text  string
		limit int
		want  string
	}{
		{"lowercases and dedupes", "Pine TREES pine Mist trees", 100, "pine trees mist"},
		{"punctuation becomes space", "wall-art,canvas;print!", 100, "wall art canvas print"},
		{"drops one letter tokens", "a b pine x 16x24\"", 100, "pine 16x24"},
		{"non ascii letters split tokens", "café décor", 100, "caf cor"},
		{"zero limit", "pine trees", 0, ""},
		{"empty input", "", 50, ""},
		{"exact fit", "pine trees", 10, "pine trees"},
		{"one over the limit drops the whole token", "pine trees", 9, "pine"},
		{"stops at first overflowing token", "pine trees mist", 11, "pine trees"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, NormalizeKeywordList(tt.text, tt.limit))
		})
	}
}

func TestNormalizeKeywordList_Guarantees(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"Forest View pine trees mist green forest nature wall art canvas print decor",
		"ABSTRACT abstract Art art ART modern, modern; living-room bedroom office",
		strings.Repeat("sunset beach ocean waves palm tropical ", 20),
		"x y z",
	}
	for _, in := range inputs {
		for _, limit := range []int{1, 5, 17, 50, 200, 250} {
			out := NormalizeKeywordList(in, limit)
			assert.LessOrEqual(t, len(out), limit)

			source := strings.Fields(strings.Map(func(r rune) rune {
				if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
					return r
				}
				return ' '
			}, strings.ToLower(in)))
			sourceSet := make(map[string]bool, len(source))
			for _, tok := range source {
				sourceSet[tok] = true
			}

			seen := make(map[string]bool)
			pos := 0
			for _, tok := range strings.Fields(out) {
				assert.True(t, sourceSet[tok], "token %q must appear intact in the input", tok)
				assert.False(t, seen[tok], "token %q repeated", tok)
				seen[tok] = true

				// order preserving: each output token appears after the previous one
				idx := indexFrom(source, tok, pos)
				assert.GreaterOrEqual(t, idx, 0, "token %q out of order", tok)
				pos = idx + 1
			}
		}
	}
}

func indexFrom(tokens []string, tok string, from int) int {
	for i := from; i < len(tokens); i++ {
		if tokens[i] == tok {
			return i
		}
	}
	return -1
}

func TestNormalizeKeywordList_OneTokenOverLimit(t *testing.T) {
	t.Parallel()

	elements := "pine trees mist"
	pool := "forest"
	// "pine trees mist" is 15 chars, adding " forest" needs 22
	out := NormalizeKeywordList(elements+" "+pool, 21)
	assert.Equal(t, "pine trees mist", out)
	assert.NotContains(t, out, "fores")
}
