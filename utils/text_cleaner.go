package utils

import (
	"strings"
	"unicode/utf8"
)

// DefaultPlaceholderBlacklist holds the filler words vision models leave behind when they
// echo the JSON skeleton of the prompt instead of describing the image.
var DefaultPlaceholderBlacklist = []string{"word1", "word2", "fake", "placeholder"}

// jsonArtifactReplacer removes brackets and quotes that leak from half-parsed JSON
var jsonArtifactReplacer = strings.NewReplacer("[", "", "]", "", "'", "", "\"", "")

// Blacklist is a case-insensitive set of words dropped by CleanText
type Blacklist map[string]struct{}

// NewBlacklist builds a Blacklist from a list of words
func NewBlacklist(words []string) Blacklist {
	bl := make(Blacklist, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			bl[w] = struct{}{}
		}
	}
	return bl
}

// Contains reports whether word is blacklisted
func (b Blacklist) Contains(word string) bool {
	_, ok := b[strings.ToLower(word)]
	return ok
}

// CleanText strips JSON artifacts ([ ] ' ") and blacklisted placeholder words.
// Whitespace is collapsed to single spaces.
func CleanText(text string, blacklist Blacklist) string {
	if text == "" {
		return ""
	}
	text = jsonArtifactReplacer.Replace(text)
	words := strings.Fields(text)
	kept := words[:0]
	for _, w := range words {
		if blacklist.Contains(w) {
			continue
		}
		kept = append(kept, w)
	}
	return strings.Join(kept, " ")
}

// JoinNonEmpty joins the trimmed non-empty parts with a single space
func JoinNonEmpty(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}

// Truncate cuts s to at most limit characters (runes), trimming trailing spaces left by the cut.
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return strings.TrimRight(string(runes[:limit]), " ")
}
