package company

import (
	"strings"
	"unicode"
)

// Compound suffixes must be tried before their shorter tails (".co.uk" before ".co").
var knownTLDs = longestFirst(
	".com", ".net", ".org", ".co", ".io", ".us", ".uk", ".in", ".au", ".co.uk", ".com.au",
)

// FormatDisplayName turns an email domain into a company display name,
// e.g. "eng.acmecorp.com" becomes "Acme Corp".
//
// At most one known TLD is stripped and only the last remaining label is
// kept. The label is split on "-" (or "_" when it has no "-"), each part is
// segmented into words and every word is capitalized. The result is empty
// when nothing is left after stripping.
func FormatDisplayName(domain string) string {
	name := stripTLD(domain)

	if labels := strings.Split(name, "."); len(labels) > 1 {
		name = labels[len(labels)-1]
	}

	var words []string
	if sep := separatorOf(name); sep != "" {
		for _, part := range strings.Split(name, sep) {
			if part == "" {
				continue
			}
			words = append(words, Segment(part)...)
		}
	} else {
		words = Segment(name)
	}

	titled := make([]string, 0, len(words))
	for _, w := range words {
		if w == "" {
			continue
		}
		titled = append(titled, capitalize(w))
	}

	return strings.Join(titled, " ")
}

func stripTLD(domain string) string {
	for _, tld := range knownTLDs {
		n := len(domain) - len(tld)
		if n >= 0 && strings.EqualFold(domain[n:], tld) {
			return domain[:n]
		}
	}

	return domain
}

func separatorOf(label string) string {
	switch {
	case strings.Contains(label, "-"):
		return "-"
	case strings.Contains(label, "_"):
		return "_"
	default:
		return ""
	}
}

// capitalize upper-cases the first rune and lower-cases the rest.
func capitalize(word string) string {
	runes := []rune(strings.ToLower(word))
	runes[0] = unicode.ToUpper(runes[0])

	return string(runes)
}
