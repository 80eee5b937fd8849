package builder_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opal-lang/tutti/core/catalog/catalogtest"
	"github.com/opal-lang/tutti/core/seating"
	"github.com/opal-lang/tutti/runtime/builder"
)

func TestAppend(t *testing.T) {
	existing := []*seating.Seat{
		{InstrumentID: catalogtest.Violin, Principal: true},
		{InstrumentID: catalogtest.Viola, Position: 1, Principal: true},
		{InstrumentID: catalogtest.Viola, Position: 2},
	}
	built := []*seating.Seat{
		{InstrumentID: catalogtest.Violin, Position: 1, Principal: true},
		{InstrumentID: catalogtest.Violin, Position: 2},
		{InstrumentID: catalogtest.Cello, Principal: true},
		{InstrumentID: catalogtest.Viola, Principal: true},
	}

	got := builder.Append(existing, built)

	want := []*seating.Seat{
		{InstrumentID: catalogtest.Violin, Position: 1, Principal: true},
		{InstrumentID: catalogtest.Viola, Position: 1, Principal: true},
		{InstrumentID: catalogtest.Viola, Position: 2},
		{InstrumentID: catalogtest.Violin, Position: 2},
		{InstrumentID: catalogtest.Violin, Position: 3},
		{InstrumentID: catalogtest.Cello, Principal: true},
		{InstrumentID: catalogtest.Viola, Position: 3},
	}
	if diff := cmp.Diff(want, got, ignoreID); diff != "" {
		t.Errorf("Append mismatch (-want +got):\n%s", diff)
	}

	// Inputs untouched.
	assert.Equal(t, 0, existing[0].Position)
	assert.Equal(t, 1, built[0].Position)
}

func TestAppendToEmpty(t *testing.T) {
	built := []*seating.Seat{{InstrumentID: catalogtest.Harp, Principal: true}}
	got := builder.Append(nil, built)
	require.Len(t, got, 1)
	assert.True(t, got[0].Principal)
	assert.Equal(t, 0, got[0].Position)
}

func TestReconcile(t *testing.T) {
	vln1, vln2, vla := uuid.New(), uuid.New(), uuid.New()
	old := []*seating.Seat{
		{ID: vln1, InstrumentID: catalogtest.Violin, Position: 1, Principal: true, Player: "p-anna"},
		{ID: vln2, InstrumentID: catalogtest.Violin, Position: 2, Player: "p-ben",
			Doublings: []seating.Doubling{{InstrumentID: catalogtest.Viola}}},
		{ID: vla, InstrumentID: catalogtest.Viola, Principal: true, Player: "p-cleo"},
	}
	fresh := []*seating.Seat{
		{ID: uuid.New(), InstrumentID: catalogtest.Violin, Principal: true},
		{ID: uuid.New(), InstrumentID: catalogtest.Cello, Principal: true},
	}

	dropped := builder.Reconcile(old, fresh)

	assert.Equal(t, vln1, fresh[0].ID)
	assert.Equal(t, "p-anna", fresh[0].Player)
	assert.Empty(t, fresh[0].Doublings)
	assert.Empty(t, fresh[1].Player)
	assert.NotEqual(t, vla, fresh[1].ID)

	require.Len(t, dropped, 2)
	assert.Equal(t, vln2, dropped[0].ID)
	assert.Equal(t, vla, dropped[1].ID)
}

func TestReconcileMatchesByPositionOrder(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	old := []*seating.Seat{
		{ID: b, InstrumentID: catalogtest.Horn, Position: 2, Player: "second"},
		{ID: a, InstrumentID: catalogtest.Horn, Position: 1, Principal: true, Player: "first"},
	}
	fresh := []*seating.Seat{
		{InstrumentID: catalogtest.Horn, Position: 1, Principal: true},
		{InstrumentID: catalogtest.Horn, Position: 2},
		{InstrumentID: catalogtest.Horn, Position: 3},
	}

	dropped := builder.Reconcile(old, fresh)
	assert.Empty(t, dropped)
	assert.Equal(t, a, fresh[0].ID)
	assert.Equal(t, "first", fresh[0].Player)
	assert.Equal(t, b, fresh[1].ID)
	assert.Equal(t, "second", fresh[1].Player)
	assert.Equal(t, uuid.Nil, fresh[2].ID)
}
