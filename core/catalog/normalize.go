package catalog

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Normalize reduces abbreviation text to its lookup key.
//
// Compatibility forms are folded (NFKC), case is folded, and whitespace,
// periods, hyphens and formatting characters are dropped, so "Vln.",
// "VLN" and "v-ln" share the key "vln".
func Normalize(s string) string {
	// cases.Caser carries state; one per call keeps Normalize safe for concurrent use.
	s = cases.Fold().String(norm.NFKC.String(s))

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsSpace(r) || r == '.' || r == '-' || unicode.Is(unicode.Cf, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
