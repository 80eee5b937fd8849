package engine

import (
	"context"
	"sync"

	"github.com/opal-lang/tutti/core/seating"
)

// Store holds the seat list of each instrumentation context. The engine
// reads a context's seats, transforms a private copy, and writes the whole
// list back; it never mutates what Seats returned after Replace.
//
// Callers serialize concurrent edits of the same context.
type Store interface {
	Seats(ctx context.Context, id seating.ContextID) ([]*seating.Seat, error)
	Replace(ctx context.Context, id seating.ContextID, seats []*seating.Seat) error
}

// MemStore is an in-memory Store. It copies on read and write so callers
// never share seats with it.
type MemStore struct {
	mu       sync.RWMutex
	contexts map[seating.ContextID][]*seating.Seat
}

// NewMemStore creates an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{contexts: make(map[seating.ContextID][]*seating.Seat)}
}

// Seats returns a copy of the context's seats; an unknown context has none.
func (m *MemStore) Seats(_ context.Context, id seating.ContextID) ([]*seating.Seat, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return seating.CloneAll(m.contexts[id]), nil
}

// Replace stores a copy of seats as the context's seat list. An empty list
// removes the context.
func (m *MemStore) Replace(_ context.Context, id seating.ContextID, seats []*seating.Seat) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(seats) == 0 {
		delete(m.contexts, id)
		return nil
	}
	m.contexts[id] = seating.CloneAll(seats)
	return nil
}

// Contexts returns the number of contexts holding seats.
func (m *MemStore) Contexts() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.contexts)
}
