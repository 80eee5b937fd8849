// Package engine is the instrumentation notation engine a host application
// calls: it builds a context's seats from notation, distributes doublings
// across them and renders them back as canonical notation.
//
// Each call works on one context. The engine reads the context's seats from
// its Store, transforms a private copy and writes the result back only when
// the call succeeds, so a failed call never leaves a half-built context.
package engine

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/opal-lang/tutti/core/catalog"
	"github.com/opal-lang/tutti/core/instfmt"
	"github.com/opal-lang/tutti/core/invariant"
	"github.com/opal-lang/tutti/core/seating"
	"github.com/opal-lang/tutti/runtime/builder"
	"github.com/opal-lang/tutti/runtime/doubling"
	"github.com/opal-lang/tutti/runtime/notation"
)

// Catalog is what the engine needs from an instrument catalog.
// *catalog.Catalog and *catalog.Live both satisfy it.
type Catalog interface {
	catalog.Resolver
	catalog.Lookup
}

// Result is a context's seat list after a call, with the call's
// diagnostics. Seats are copies owned by the caller.
type Result struct {
	Seats       []*seating.Seat
	Diagnostics []seating.Diagnostic
}

// Engine translates between notation and seat lists.
type Engine struct {
	cat         Catalog
	store       Store
	logger      *zap.Logger
	maxCount    int
	suggestions bool
	separate    bool
	newID       func() uuid.UUID
}

// New creates an Engine resolving against cat.
func New(cat Catalog, opts ...Option) *Engine {
	invariant.NotNil(cat, "catalog")

	e := &Engine{
		cat:      cat,
		maxCount: notation.DefaultMaxCount,
		newID:    uuid.New,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.store == nil {
		e.store = NewMemStore()
	}
	if e.logger == nil {
		e.logger = zap.NewNop()
	}
	return e
}

// Seats returns a copy of the context's current seats.
func (e *Engine) Seats(ctx context.Context, id seating.ContextID) ([]*seating.Seat, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	seats, err := e.store.Seats(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load seats of %s: %w", id, err)
	}
	return seats, nil
}

// BuildSeats parses primary notation into the context's seats.
//
// By default the context's seats are replaced; seats that survive the
// rebuild as the same instrument occurrence keep their id and player. Use
// WithoutClear to append, Lossy to drop identity, Strict to fail on the
// first unresolved token. Parenthesized text is ignored; see Apply.
func (e *Engine) BuildSeats(ctx context.Context, id seating.ContextID, line string, opts ...CallOption) (Result, error) {
	c := newCall(opts)
	built, err := e.build(line, c, false)
	if err != nil {
		return Result{}, err
	}
	return e.commit(ctx, id, built.Seats, built.Diagnostics, c, "build")
}

// AllocateDoublings distributes doubling notation across the context's
// existing seats. Attaching is idempotent per seat and instrument.
func (e *Engine) AllocateDoublings(ctx context.Context, id seating.ContextID, line string, opts ...CallOption) (Result, error) {
	c := newCall(opts)
	seats, err := e.Seats(ctx, id)
	if err != nil {
		return Result{}, err
	}

	res, err := doubling.Allocate(e.cat, seats, line, e.allocOptions(c))
	if err != nil {
		return Result{}, err
	}

	if err := e.store.Replace(ctx, id, seats); err != nil {
		return Result{}, fmt.Errorf("store seats of %s: %w", id, err)
	}
	e.logger.Info("doublings allocated",
		zap.String("context", string(id)),
		zap.Int("attached", res.Attached),
		zap.Int("diagnostics", len(res.Diagnostics)))

	return Result{Seats: seating.CloneAll(seats), Diagnostics: res.Diagnostics}, nil
}

// Apply builds the context from notation carrying inline doublings, such as
// "3Fl(+2Picc, AFl), 2Ob". The parenthesized doublings of an instrument are
// allocated among that instrument's seats only. Top-level segments written
// with a leading '+', such as "+BCl", are separate doublings allocated among
// all seats. Apply accepts everything Format produces, and formatting the
// result reproduces that line.
func (e *Engine) Apply(ctx context.Context, id seating.ContextID, line string, opts ...CallOption) (Result, error) {
	c := newCall(opts)
	built, err := e.build(line, c, true)
	if err != nil {
		return Result{}, err
	}

	diags := built.Diagnostics
	for _, g := range built.Groups {
		if len(g.Inline) == 0 {
			continue
		}
		var group []*seating.Seat
		for _, s := range built.Seats {
			if s.InstrumentID == g.InstrumentID {
				group = append(group, s)
			}
		}
		var tokens []notation.Token
		for _, text := range g.Inline {
			for _, tok := range notation.Parse(text, e.maxCount) {
				// '+' inside a group is the usual doubling marker only.
				tok.Plus = false
				tokens = append(tokens, tok)
			}
		}

		res, err := doubling.AllocateTokens(e.cat, group, tokens, e.allocOptions(c))
		if err != nil {
			return Result{}, err
		}
		diags = append(diags, res.Diagnostics...)
	}

	if len(built.Detached) > 0 {
		res, err := doubling.AllocateTokens(e.cat, built.Seats, built.Detached, e.allocOptions(c))
		if err != nil {
			return Result{}, err
		}
		diags = append(diags, res.Diagnostics...)
	}

	return e.commit(ctx, id, built.Seats, diags, c, "apply")
}

// Format renders the context's seats as canonical notation. An unknown or
// empty context renders as "".
func (e *Engine) Format(ctx context.Context, id seating.ContextID) (string, error) {
	seats, err := e.read(ctx, id)
	if err != nil {
		return "", err
	}
	return instfmt.Format(seats, e.cat, instfmt.Options{SeparateDoublings: e.separate}), nil
}

// Sections returns the context's seats grouped by catalog section.
func (e *Engine) Sections(ctx context.Context, id seating.ContextID) ([]instfmt.Section, error) {
	seats, err := e.read(ctx, id)
	if err != nil {
		return nil, err
	}
	return instfmt.Sections(seats, e.cat), nil
}

// Digest fingerprints the content of the context's seats.
func (e *Engine) Digest(ctx context.Context, id seating.ContextID) (string, error) {
	seats, err := e.read(ctx, id)
	if err != nil {
		return "", err
	}
	return instfmt.Digest(seats, e.cat)
}

func (e *Engine) build(line string, c call, detach bool) (*builder.Result, error) {
	return builder.Build(e.cat, line, builder.Options{
		MaxCount:    e.maxCount,
		Strict:      c.strict,
		Suggestions: e.suggestions,
		Detach:      detach,
		NewID:       e.newID,
		Logger:      e.logger,
	})
}

func (e *Engine) allocOptions(c call) doubling.Options {
	return doubling.Options{
		Separate:    c.separate,
		Strict:      c.strict,
		Suggestions: e.suggestions,
		MaxCount:    e.maxCount,
		Logger:      e.logger,
	}
}

// commit merges freshly built seats with the context's current seats and
// stores the result.
func (e *Engine) commit(ctx context.Context, id seating.ContextID, built []*seating.Seat, diags []seating.Diagnostic, c call, op string) (Result, error) {
	old, err := e.Seats(ctx, id)
	if err != nil {
		return Result{}, err
	}

	seats := built
	switch {
	case c.keep:
		seats = builder.Append(old, built)
	case !c.lossy:
		for _, s := range builder.Reconcile(old, built) {
			if s.Player != "" {
				e.logger.Info("player unseated",
					zap.String("context", string(id)),
					zap.Stringer("seat", s.ID),
					zap.String("player", s.Player))
			}
		}
	}
	e.checkPrincipals(seats)

	if err := e.store.Replace(ctx, id, seats); err != nil {
		return Result{}, fmt.Errorf("store seats of %s: %w", id, err)
	}
	e.logger.Info("instrumentation "+op,
		zap.String("context", string(id)),
		zap.Int("seats", len(seats)),
		zap.Int("diagnostics", len(diags)))

	return Result{Seats: seating.CloneAll(seats), Diagnostics: diags}, nil
}

// checkPrincipals asserts one principal per instrument, on its lowest
// position.
func (e *Engine) checkPrincipals(seats []*seating.Seat) {
	lowest := make(map[int64]*seating.Seat)
	principals := make(map[int64]int)
	for _, s := range seats {
		invariant.Invariant(s.Position >= 0, "seat position %d is negative", s.Position)
		if l, ok := lowest[s.InstrumentID]; !ok || s.Position < l.Position {
			lowest[s.InstrumentID] = s
		}
		if s.Principal {
			principals[s.InstrumentID]++
		}
	}
	for id, l := range lowest {
		invariant.Invariant(principals[id] == 1 && l.Principal,
			"instrument %d must have exactly one principal on its lowest position", id)
	}
}

func (e *Engine) read(ctx context.Context, id seating.ContextID) ([]*seating.Seat, error) {
	seats, err := e.Seats(ctx, id)
	if err != nil {
		return nil, err
	}
	if unknown := instfmt.Unknown(seats, e.cat); len(unknown) > 0 {
		e.logger.Warn("seats reference instruments missing from the catalog",
			zap.String("context", string(id)),
			zap.Int64s("instruments", unknown))
	}
	return seats, nil
}
