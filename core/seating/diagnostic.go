package seating

import "fmt"

// DiagnosticKind classifies a non-fatal notation problem.
type DiagnosticKind int

const (
	// UnresolvedToken: the abbreviation has no catalog match.
	UnresolvedToken DiagnosticKind = iota + 1
	// MalformedCount: the leading count overflowed, was zero or exceeded
	// the configured maximum; the token was read as count 1.
	MalformedCount
)

func (k DiagnosticKind) String() string {
	switch k {
	case UnresolvedToken:
		return "unresolved token"
	case MalformedCount:
		return "malformed count"
	default:
		return fmt.Sprintf("DiagnosticKind(%d)", int(k))
	}
}

// Diagnostic reports a notation problem that did not stop processing.
type Diagnostic struct {
	Kind       DiagnosticKind
	Segment    string // the segment as written
	Text       string // the abbreviation text extracted from it
	Suggestion string // closest catalog abbreviation, if any
	Limit      int    // for MalformedCount, the maximum the count exceeded
}

func (d Diagnostic) Error() string {
	msg := fmt.Sprintf("%s: %q", d.Kind, d.Segment)
	if d.Limit > 0 {
		msg += fmt.Sprintf(" (count exceeds limit %d, read as 1)", d.Limit)
	}
	if d.Suggestion != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", d.Suggestion)
	}
	return msg
}
