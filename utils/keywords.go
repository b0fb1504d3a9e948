package utils

import "strings"

// minKeywordLen drops one-letter tokens such as "a"
const minKeywordLen = 2

// NormalizeKeywordList turns free text into a single-line, space separated list of unique
// lowercase tokens whose total length never exceeds limit.
// Tokens are never cut: accumulation stops at the first token that would overflow.
func NormalizeKeywordList(text string, limit int) string {
	if limit <= 0 {
		return ""
	}

	lowered := strings.ToLower(text)
	cleaned := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		return ' '
	}, lowered)

	seen := make(map[string]bool)
	var b strings.Builder
	for _, token := range strings.Fields(cleaned) {
		if len(token) < minKeywordLen || seen[token] {
			continue
		}
		seen[token] = true

		sep := 0
		if b.Len() > 0 {
			sep = 1
		}
		if b.Len()+sep+len(token) > limit {
			break
		}
		if sep == 1 {
			b.WriteByte(' ')
		}
		b.WriteString(token)
	}
	return b.String()
}
