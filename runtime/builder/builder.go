// Package builder turns primary instrumentation notation into seats.
//
// Each segment "{count}{abbr}" resolves against the catalog and expands into
// count seats. Seats of one instrument are collected across segments in the
// order the instrument was first seen; a group of several seats is numbered
// 1..N with the principal on position 1, a lone seat keeps position 0 and is
// principal.
package builder

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/opal-lang/tutti/core/catalog"
	"github.com/opal-lang/tutti/core/invariant"
	"github.com/opal-lang/tutti/core/seating"
	"github.com/opal-lang/tutti/runtime/notation"
)

// Options configures a build.
type Options struct {
	// MaxCount bounds a segment's count; <= 0 selects notation.DefaultMaxCount.
	MaxCount int

	// Strict resolves every abbreviation strictly: the first miss aborts the
	// build with the resolver's error instead of becoming a diagnostic.
	Strict bool

	// Suggestions attaches fuzzy suggestions to unresolved-token diagnostics
	// when the resolver implements catalog.Suggester.
	Suggestions bool

	// Detach keeps segments written with a leading '+' out of the seat
	// list and returns them in Result.Detached.
	Detach bool

	// NewID generates seat ids; nil selects uuid.New.
	NewID func() uuid.UUID

	Logger *zap.Logger
}

// Group is the set of segments that resolved to one instrument.
type Group struct {
	InstrumentID int64
	Count        int
	// Inline holds the parenthesized text of this instrument's segments.
	Inline []string
}

// Result is the outcome of a build.
type Result struct {
	Seats       []*seating.Seat
	Groups      []Group // first-seen order
	Detached    []notation.Token
	Diagnostics []seating.Diagnostic
}

// Build parses line and creates seats for every resolvable segment.
// Unresolved segments produce diagnostics and no seats. The only error is
// one returned by the resolver itself, which is passed through unchanged.
func Build(resolver catalog.Resolver, line string, opts Options) (*Result, error) {
	invariant.NotNil(resolver, "resolver")
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	res := &Result{}
	index := make(map[int64]int)

	for _, tok := range notation.Parse(line, opts.MaxCount) {
		logger.Debug("parsed segment",
			zap.String("segment", tok.Segment),
			zap.Int("count", tok.Count),
			zap.String("text", tok.Text))

		if opts.Detach && tok.Plus {
			res.Detached = append(res.Detached, tok)
			continue
		}

		if tok.Malformed {
			res.Diagnostics = append(res.Diagnostics, seating.Diagnostic{
				Kind:    seating.MalformedCount,
				Segment: tok.Segment,
				Text:    tok.Text,
				Limit:   tok.CountLimit,
			})
		}

		inst, err := resolver.Resolve(tok.Text, opts.Strict)
		if err != nil {
			return nil, err
		}
		if inst == nil {
			d := unresolved(resolver, tok, opts.Suggestions)
			logger.Warn("instrument not recognized",
				zap.String("segment", tok.Segment),
				zap.String("suggestion", d.Suggestion))
			res.Diagnostics = append(res.Diagnostics, d)
			continue
		}

		logger.Debug("resolved segment",
			zap.String("segment", tok.Segment),
			zap.Int64("instrument", inst.ID))

		i, seen := index[inst.ID]
		if !seen {
			i = len(res.Groups)
			index[inst.ID] = i
			res.Groups = append(res.Groups, Group{InstrumentID: inst.ID})
		}
		res.Groups[i].Count += tok.Count
		if tok.Inline != "" {
			res.Groups[i].Inline = append(res.Groups[i].Inline, tok.Inline)
		}
	}

	newID := opts.NewID
	if newID == nil {
		newID = uuid.New
	}
	for _, g := range res.Groups {
		res.Seats = append(res.Seats, expand(g, newID)...)
	}

	return res, nil
}

// expand creates the seats of one instrument group.
func expand(g Group, newID func() uuid.UUID) []*seating.Seat {
	invariant.Positive(g.Count, "group count")

	seats := make([]*seating.Seat, g.Count)
	for i := range seats {
		s := &seating.Seat{
			ID:           newID(),
			InstrumentID: g.InstrumentID,
			Principal:    i == 0,
		}
		if g.Count > 1 {
			s.Position = i + 1
		}
		seats[i] = s
	}

	invariant.Postcondition(len(seats) == g.Count, "group must expand to its count")
	return seats
}

func unresolved(resolver catalog.Resolver, tok notation.Token, suggest bool) seating.Diagnostic {
	d := seating.Diagnostic{
		Kind:    seating.UnresolvedToken,
		Segment: tok.Segment,
		Text:    tok.Text,
	}
	if s, ok := resolver.(catalog.Suggester); ok && suggest && tok.Text != "" {
		d.Suggestion = s.Suggest(tok.Text)
	}
	return d
}
