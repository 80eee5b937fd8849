// Package seating defines the seat model the notation engine produces and
// consumes: one Seat per performer slot, each optionally doubling further
// instruments.
package seating

import (
	"slices"
	"strings"

	"github.com/google/uuid"
)

// ContextID identifies an instrumentation context: a composition, an
// ensemble or a project. The engine treats it as opaque.
type ContextID string

// Seat is one performer slot for a single instrument.
type Seat struct {
	ID           uuid.UUID
	InstrumentID int64

	// Position is 1-based when the context holds several seats of the same
	// instrument, and 0 for a lone seat.
	Position int

	// Principal marks the lowest position of an instrument, or its only seat.
	Principal bool

	// Comment collects doubling text that could not be resolved.
	Comment string

	// Player is the host's reference to the performer assigned to this seat.
	// The engine never interprets it; reconcile carries it across rebuilds.
	Player string

	Doublings []Doubling
}

// Doubling is a secondary instrument covered by a seat's performer.
// Separate doublings render as their own "+{abbr}" groups when the formatter
// is asked to.
type Doubling struct {
	InstrumentID int64
	Separate     bool
}

// HasDoubling reports whether the seat already doubles instrumentID.
func (s *Seat) HasDoubling(instrumentID int64) bool {
	for _, d := range s.Doublings {
		if d.InstrumentID == instrumentID {
			return true
		}
	}
	return false
}

// AddDoubling attaches d unless the seat already doubles that instrument.
// It reports whether d was added.
func (s *Seat) AddDoubling(d Doubling) bool {
	if s.HasDoubling(d.InstrumentID) {
		return false
	}
	s.Doublings = append(s.Doublings, d)
	return true
}

// AppendComment adds text to the seat comment, space separated.
func (s *Seat) AppendComment(text string) {
	s.Comment = strings.TrimSpace(s.Comment + " " + text)
}

// Clone returns a deep copy of the seat.
func (s *Seat) Clone() *Seat {
	c := *s
	c.Doublings = slices.Clone(s.Doublings)
	return &c
}

// CloneAll deep-copies a seat list.
func CloneAll(seats []*Seat) []*Seat {
	if seats == nil {
		return nil
	}
	out := make([]*Seat, len(seats))
	for i, s := range seats {
		out[i] = s.Clone()
	}
	return out
}

// Holder is implemented by anything that owns an instrumentation: formatters
// accept a Holder instead of knowing about compositions, ensembles or projects.
type Holder interface {
	InstrumentationSeats() []*Seat
}

// Seats adapts a plain seat slice to Holder.
type Seats []*Seat

func (s Seats) InstrumentationSeats() []*Seat { return s }
