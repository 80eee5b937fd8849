// Package catalog is the read-only instrument reference the notation engine
// resolves abbreviations against.
//
// A Catalog is immutable once built. Hosts that edit their instrument list
// swap in a new Catalog through Live, which is what the engine holds when the
// catalog must change underneath it.
package catalog

import (
	"errors"
	"fmt"
)

// Instrument is one catalog entry. Lower weights sort first.
type Instrument struct {
	ID           int64
	Abbreviation string // canonical abbreviation, never empty
	Name         string
	Section      string
	Group        string

	SectionWeight int
	GroupWeight   int
	Weight        int

	Primary bool     // selectable as a seat's main instrument in host UIs
	Aliases []string // additional spellings accepted by Resolve
}

// Label returns the abbreviation, falling back to the display name.
func (i *Instrument) Label() string {
	if i.Abbreviation != "" {
		return i.Abbreviation
	}
	return i.Name
}

// Compare orders instruments by section, group and instrument weight.
// ID breaks remaining ties so the order is total.
func Compare(a, b *Instrument) int {
	switch {
	case a.SectionWeight != b.SectionWeight:
		return cmpInt(a.SectionWeight, b.SectionWeight)
	case a.GroupWeight != b.GroupWeight:
		return cmpInt(a.GroupWeight, b.GroupWeight)
	case a.Weight != b.Weight:
		return cmpInt(a.Weight, b.Weight)
	case a.ID < b.ID:
		return -1
	case a.ID > b.ID:
		return 1
	}
	return 0
}

func cmpInt(a, b int) int {
	if a < b {
		return -1
	}
	return 1
}

// Resolver resolves free-form abbreviation text to an instrument.
//
// With strict=false a miss returns (nil, nil). With strict=true a miss
// returns an error matching ErrNotFound. Any other error is a failure of the
// resolver itself and is propagated unchanged by the engine.
type Resolver interface {
	Resolve(text string, strict bool) (*Instrument, error)
}

// Lookup finds instruments by id. Formatting needs it to turn seat
// instrument ids back into abbreviations and weights.
type Lookup interface {
	Instrument(id int64) (*Instrument, bool)
}

// Suggester proposes the closest known abbreviation for unresolved text.
type Suggester interface {
	Suggest(text string) string
}

// ErrNotFound is matched by every strict-mode resolution miss.
var ErrNotFound = errors.New("instrument not found")

// NotFoundError reports a strict-mode miss with the closest known abbreviation.
type NotFoundError struct {
	Text       string
	Suggestion string
}

func (e *NotFoundError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("instrument abbreviation not found: %q (did you mean %q?)", e.Text, e.Suggestion)
	}
	return fmt.Sprintf("instrument abbreviation not found: %q", e.Text)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
