package company

import (
	"sort"
	"strings"
	"unicode"
)

// Tables are sorted once, longest entry first, and never modified afterwards.
var (
	knownSuffixes = longestFirst(
		"corp", "corporation", "inc", "incorporated", "llc", "ltd", "limited",
		"tech", "techs", "solutions", "systems", "services", "group", "industries",
		"engineering", "eng", "international", "global", "enterprises", "ventures",
	)

	knownPrefixes = longestFirst(
		"alpha", "beta", "gamma", "delta", "tech", "digital", "smart", "global",
		"international", "advanced", "premium", "elite", "pro", "max", "ultra",
	)
)

// longestFirst returns a copy of words ordered by descending length.
// Words of equal length keep their relative order.
func longestFirst(words ...string) []string {
	out := make([]string, len(words))
	copy(out, words)
	sort.SliceStable(out, func(i, j int) bool {
		return len(out[i]) > len(out[j])
	})

	return out
}

// Segment splits a concatenated token into lower-case words.
//
// A known company suffix is tried first, then a known prefix, then a split on
// upper-case transitions. If none of them applies the whole token is returned
// as a single word. An empty token yields an empty slice.
func Segment(token string) []string {
	if token == "" {
		return []string{}
	}

	lower := strings.ToLower(token)

	for _, suffix := range knownSuffixes {
		if len(lower) > len(suffix) && strings.HasSuffix(lower, suffix) {
			return []string{lower[:len(lower)-len(suffix)], suffix}
		}
	}

	for _, prefix := range knownPrefixes {
		if len(lower) > len(prefix) && strings.HasPrefix(lower, prefix) {
			return []string{prefix, lower[len(prefix):]}
		}
	}

	if words := splitCamelCase(token); len(words) > 1 {
		return words
	}

	return []string{lower}
}

// splitCamelCase starts a new word at every upper-case rune after the first.
func splitCamelCase(text string) []string {
	var (
		words   []string
		current strings.Builder
	)

	for i, r := range text {
		if i > 0 && unicode.IsUpper(r) && current.Len() > 0 {
			words = append(words, strings.ToLower(current.String()))
			current.Reset()
		}
		current.WriteRune(r)
	}

	if current.Len() > 0 {
		words = append(words, strings.ToLower(current.String()))
	}

	return words
}
