// Package doubling distributes doubling notation across existing seats.
//
// Numbered tokens ("2Picc") go to the seats with the highest positions, the
// back of the section. Non-numbered tokens ("Picc") all go to one target
// seat: the last seat holding the highest position, or the last principal
// seat when no seat is numbered. Attaching is idempotent per seat and
// instrument.
package doubling

import (
	"sort"

	"go.uber.org/zap"

	"github.com/opal-lang/tutti/core/catalog"
	"github.com/opal-lang/tutti/core/invariant"
	"github.com/opal-lang/tutti/core/seating"
	"github.com/opal-lang/tutti/runtime/notation"
)

// Options configures an allocation.
type Options struct {
	// Separate is copied onto every doubling attached by this call. A token
	// written with a leading '+' is separate regardless.
	Separate bool

	// Strict aborts on the first unresolved token with the resolver's error.
	Strict bool

	// Suggestions attaches fuzzy suggestions to unresolved-token diagnostics.
	Suggestions bool

	// MaxCount bounds a token's count; <= 0 selects notation.DefaultMaxCount.
	MaxCount int

	Logger *zap.Logger
}

// Result reports what an allocation did.
type Result struct {
	// Attached counts doublings newly added; repeats of an existing
	// seat/instrument pair are not counted.
	Attached    int
	Diagnostics []seating.Diagnostic
}

// Allocate parses line as doubling notation and attaches it to seats in
// place.
func Allocate(resolver catalog.Resolver, seats []*seating.Seat, line string, opts Options) (*Result, error) {
	return AllocateTokens(resolver, seats, notation.Parse(line, opts.MaxCount), opts)
}

// AllocateTokens attaches already parsed tokens to seats in place. All
// numbered tokens are allocated before any non-numbered one.
func AllocateTokens(resolver catalog.Resolver, seats []*seating.Seat, tokens []notation.Token, opts Options) (*Result, error) {
	invariant.NotNil(resolver, "resolver")
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	a := &allocator{resolver: resolver, seats: seats, opts: opts, logger: logger, res: &Result{}}

	var numbered, plain []notation.Token
	for _, tok := range tokens {
		if tok.Malformed {
			a.diagnose(seating.MalformedCount, tok)
		}
		if tok.HasCount {
			numbered = append(numbered, tok)
		} else {
			plain = append(plain, tok)
		}
	}

	for _, tok := range numbered {
		if err := a.numbered(tok); err != nil {
			return nil, err
		}
	}

	target := Target(seats)
	for _, tok := range plain {
		if err := a.plain(tok, target); err != nil {
			return nil, err
		}
	}

	return a.res, nil
}

// Back returns up to count seats with the highest positions. Seats sharing
// a position keep their original order. count must not be negative.
func Back(seats []*seating.Seat, count int) []*seating.Seat {
	invariant.Precondition(count >= 0, "count must not be negative, got %d", count)
	sorted := make([]*seating.Seat, len(seats))
	copy(sorted, seats)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Position > sorted[j].Position })
	return sorted[:min(count, len(sorted))]
}

// Target returns the seat non-numbered doublings attach to, or nil when
// there is none.
func Target(seats []*seating.Seat) *seating.Seat {
	var target *seating.Seat
	for _, s := range seats {
		if s.Position > 0 && (target == nil || s.Position >= target.Position) {
			target = s
		}
	}
	if target != nil {
		return target
	}
	for _, s := range seats {
		if s.Principal {
			target = s
		}
	}
	return target
}

type allocator struct {
	resolver catalog.Resolver
	seats    []*seating.Seat
	opts     Options
	logger   *zap.Logger
	res      *Result
}

func (a *allocator) numbered(tok notation.Token) error {
	inst, err := a.resolver.Resolve(tok.Text, a.opts.Strict)
	if err != nil {
		return err
	}
	if inst == nil {
		// No seat records an unresolved numbered doubling.
		a.unresolved(tok)
		return nil
	}

	for _, s := range Back(a.seats, tok.Count) {
		a.attach(s, inst.ID, tok.Plus)
	}
	return nil
}

func (a *allocator) plain(tok notation.Token, target *seating.Seat) error {
	inst, err := a.resolver.Resolve(tok.Text, a.opts.Strict)
	if err != nil {
		return err
	}
	if inst == nil {
		a.unresolved(tok)
		if target != nil {
			target.AppendComment(tok.Text)
		}
		return nil
	}
	if target == nil {
		a.logger.Debug("no seat to double", zap.String("segment", tok.Segment))
		return nil
	}
	a.attach(target, inst.ID, tok.Plus)
	return nil
}

func (a *allocator) attach(s *seating.Seat, instrumentID int64, plus bool) {
	if s.AddDoubling(seating.Doubling{InstrumentID: instrumentID, Separate: a.opts.Separate || plus}) {
		a.res.Attached++
		a.logger.Debug("doubling attached",
			zap.Stringer("seat", s.ID),
			zap.Int64("instrument", instrumentID))
	}
	invariant.Postcondition(s.HasDoubling(instrumentID), "seat must double the instrument after attach")
}

func (a *allocator) unresolved(tok notation.Token) {
	d := a.diagnose(seating.UnresolvedToken, tok)
	a.logger.Warn("doubling not recognized",
		zap.String("segment", tok.Segment),
		zap.String("suggestion", d.Suggestion))
}

func (a *allocator) diagnose(kind seating.DiagnosticKind, tok notation.Token) seating.Diagnostic {
	d := seating.Diagnostic{Kind: kind, Segment: tok.Segment, Text: tok.Text}
	if kind == seating.MalformedCount {
		d.Limit = tok.CountLimit
	}
	if s, ok := a.resolver.(catalog.Suggester); ok && kind == seating.UnresolvedToken && a.opts.Suggestions && tok.Text != "" {
		d.Suggestion = s.Suggest(tok.Text)
	}
	a.res.Diagnostics = append(a.res.Diagnostics, d)
	return d
}
