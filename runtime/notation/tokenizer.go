// Package notation splits instrumentation notation such as
// "3Vln, 2Vla, Vcl, Cb, Fl(+Picc)" into tokens.
//
// Grammar:
//
//	line     := segment (',' segment)*
//	segment  := '+'? count? abbrText inline?
//	count    := digit+
//	abbrText := letters, periods, spaces and hyphens, trimmed
//	inline   := '(' line ')'
//
// Commas inside parentheses never split a segment. Nothing here consults the
// instrument catalog.
package notation

import (
	"strings"
	"unicode"
)

// ASCII classification tables.
var (
	isDigit  [128]bool // 0-9
	isAbbrev [128]bool // letters, '.', '-', ' '
)

func init() {
	for i := 0; i < 128; i++ {
		ch := byte(i)
		isDigit[i] = '0' <= ch && ch <= '9'
		isAbbrev[i] = ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z') ||
			ch == '.' || ch == '-' || ch == ' '
	}
}

// Clean removes zero-width and other formatting characters, collapses runs
// of whitespace to one space and trims the result.
func Clean(line string) string {
	var b strings.Builder
	b.Grow(len(line))

	space := false
	for _, r := range line {
		switch {
		case unicode.Is(unicode.Cf, r):
			continue
		case unicode.IsSpace(r):
			space = true
			continue
		}
		if space && b.Len() > 0 {
			b.WriteByte(' ')
		}
		space = false
		b.WriteRune(r)
	}
	return b.String()
}

// Split cleans line and splits it on top-level commas. Segments are trimmed
// and empty segments dropped. Unbalanced parentheses are tolerated: depth
// never drops below zero.
func Split(line string) []string {
	line = Clean(line)
	if line == "" {
		return nil
	}

	var (
		parts []string
		depth int
		start int
	)
	emit := func(end int) {
		if seg := strings.TrimSpace(line[start:end]); seg != "" {
			parts = append(parts, seg)
		}
	}

	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				emit(i)
				start = i + 1
			}
		}
	}
	emit(len(line))

	return parts
}
