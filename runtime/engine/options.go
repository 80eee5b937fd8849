package engine

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/opal-lang/tutti/core/invariant"
)

// Option configures an Engine.
type Option func(*Engine)

// WithStore sets where seat lists live. Defaults to a fresh MemStore.
func WithStore(s Store) Option {
	return func(e *Engine) {
		e.store = s
	}
}

// WithLogger sets the logger. Defaults to zap.NewNop.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// WithMaxCount bounds the count a single segment may ask for.
func WithMaxCount(n int) Option {
	return func(e *Engine) {
		invariant.Positive(n, "max count")
		e.maxCount = n
	}
}

// WithSuggestions attaches closest-match suggestions to unresolved-token
// diagnostics.
func WithSuggestions(on bool) Option {
	return func(e *Engine) {
		e.suggestions = on
	}
}

// WithSeparateDoublings renders doublings flagged separate as their own
// groups when formatting.
func WithSeparateDoublings(on bool) Option {
	return func(e *Engine) {
		e.separate = on
	}
}

// WithIDs sets the seat id generator. Defaults to uuid.New.
func WithIDs(fn func() uuid.UUID) Option {
	return func(e *Engine) {
		e.newID = fn
	}
}

// CallOption adjusts a single BuildSeats, AllocateDoublings or Apply call.
type CallOption func(*call)

type call struct {
	keep     bool // append instead of clear-and-rebuild
	lossy    bool
	strict   bool
	separate bool
}

// WithoutClear appends the new seats to the context's existing seats
// instead of replacing them. Numbering continues per instrument.
func WithoutClear() CallOption {
	return func(c *call) {
		c.keep = true
	}
}

// Lossy rebuilds without carrying seat ids and player references over to
// the new seats.
func Lossy() CallOption {
	return func(c *call) {
		c.lossy = true
	}
}

// Strict resolves every token strictly: the first miss fails the call and
// leaves the context untouched.
func Strict() CallOption {
	return func(c *call) {
		c.strict = true
	}
}

// Separate flags every doubling attached by the call for separate notation.
func Separate() CallOption {
	return func(c *call) {
		c.separate = true
	}
}

func newCall(opts []CallOption) call {
	var c call
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
