package notation

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultMaxCount bounds the leading count of a single segment.
const DefaultMaxCount = 1000

// Token is one parsed segment.
type Token struct {
	Segment string // segment as written, trimmed

	// Plus reports a leading '+' marker. In doubling notation it flags the
	// doubling for separate rendering.
	Plus bool

	// Count is the number of seats the segment asks for; 1 when absent.
	Count int
	// HasCount reports an explicit, usable leading count.
	HasCount bool
	// Malformed reports a leading count that was present but unusable
	// (overflow, zero, or above the maximum) and was read as 1.
	Malformed bool
	// CountLimit is the maximum a rejected count exceeded; 0 otherwise.
	CountLimit int

	// Text is the abbreviation text to resolve.
	Text string
	// Inline is the raw content of the first parenthesized group, if any.
	Inline string
}

// Parse splits line and parses every segment.
func Parse(line string, maxCount int) []Token {
	segments := Split(line)
	if len(segments) == 0 {
		return nil
	}
	tokens := make([]Token, len(segments))
	for i, seg := range segments {
		tokens[i] = ParseSegment(seg, maxCount)
	}
	return tokens
}

// ParseSegment reads an optional '+' marker, an optional count, the
// abbreviation text and an optional parenthesized group. maxCount <= 0
// selects DefaultMaxCount.
func ParseSegment(seg string, maxCount int) Token {
	if maxCount <= 0 {
		maxCount = DefaultMaxCount
	}
	seg = strings.TrimSpace(seg)
	tok := Token{Segment: seg, Count: 1}

	rest := seg
	if strings.HasPrefix(rest, "+") {
		tok.Plus = true
		rest = strings.TrimSpace(rest[1:])
	}

	digits := 0
	for digits < len(rest) && isDigit[rest[digits]] {
		digits++
	}
	if digits > 0 {
		n, err := strconv.Atoi(rest[:digits])
		switch {
		case err != nil || n > maxCount:
			tok.Malformed = true
			tok.CountLimit = maxCount
		case n <= 0:
			tok.Malformed = true
		default:
			tok.Count = n
			tok.HasCount = true
		}
		rest = rest[digits:]
	}

	head := rest
	if open := strings.IndexByte(rest, '('); open >= 0 {
		head = rest[:open]
		tok.Inline = strings.TrimSpace(inner(rest[open+1:]))
	}

	tok.Text = abbrevPrefix(strings.TrimSpace(head))
	if tok.Text == "" {
		// Keep unreadable text so it is reported instead of vanishing.
		tok.Text = strings.TrimSpace(head)
	}
	return tok
}

// inner returns s up to the parenthesis closing an already opened group,
// or all of s when the group is never closed.
func inner(s string) string {
	depth := 1
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return s[:i]
			}
		}
	}
	return s
}

// abbrevPrefix returns the leading run of letters, periods, hyphens and
// spaces, trimmed.
func abbrevPrefix(s string) string {
	end := 0
	for end < len(s) {
		ch := s[end]
		if ch < utf8.RuneSelf {
			if !isAbbrev[ch] {
				break
			}
			end++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[end:])
		if !unicode.IsLetter(r) {
			break
		}
		end += size
	}
	return strings.TrimSpace(s[:end])
}
