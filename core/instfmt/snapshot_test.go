package instfmt_test

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opal-lang/tutti/core/catalog/catalogtest"
	"github.com/opal-lang/tutti/core/instfmt"
	"github.com/opal-lang/tutti/core/seating"
)

func orchestra() []*seating.Seat {
	flutes := seats(catalogtest.Flute, 2)
	double(flutes[1], catalogtest.Piccolo)
	return join(flutes, seats(catalogtest.Horn, 4), seats(catalogtest.Violin, 8), seats(catalogtest.Viola, 1))
}

// TestSnapshotByteStability verifies that input order never changes the
// encoded snapshot.
func TestSnapshotByteStability(t *testing.T) {
	c := catalogtest.Orchestra(t)
	in := orchestra()

	first, err := instfmt.NewSnapshot(in, c).MarshalBinary()
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 50; i++ {
		shuffled := append([]*seating.Seat(nil), in...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		got, err := instfmt.NewSnapshot(shuffled, c).MarshalBinary()
		require.NoError(t, err)
		if string(got) != string(first) {
			t.Fatalf("run %d: snapshot not stable\nwant: %x\ngot:  %x", i, first, got)
		}
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	c := catalogtest.Orchestra(t)
	snap := instfmt.NewSnapshot(orchestra(), c)

	data, err := snap.MarshalBinary()
	require.NoError(t, err)

	var got instfmt.Snapshot
	require.NoError(t, got.UnmarshalBinary(data))
	if diff := cmp.Diff(snap, &got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestSnapshotRejectsUnknownVersion(t *testing.T) {
	snap := &instfmt.Snapshot{Version: instfmt.SnapshotVersion + 1}
	data, err := snap.MarshalBinary()
	require.NoError(t, err)

	var got instfmt.Snapshot
	err = got.UnmarshalBinary(data)
	assert.ErrorContains(t, err, "unsupported snapshot version")
}

func TestDigest(t *testing.T) {
	c := catalogtest.Orchestra(t)

	base, err := instfmt.Digest(orchestra(), c)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(base, "blake2b:"), base)
	assert.Len(t, base, len("blake2b:")+64)

	// Identity does not change the fingerprint.
	relabelled := orchestra()
	for _, s := range relabelled {
		s.ID = uuid.New()
		s.Player = "someone"
	}
	same, err := instfmt.Digest(relabelled, c)
	require.NoError(t, err)
	assert.Equal(t, base, same)

	// Content does.
	changed := orchestra()
	double(changed[0], catalogtest.AltoFlute)
	other, err := instfmt.Digest(changed, c)
	require.NoError(t, err)
	assert.NotEqual(t, base, other)

	commented := orchestra()
	commented[3].AppendComment("mute")
	other, err = instfmt.Digest(commented, c)
	require.NoError(t, err)
	assert.NotEqual(t, base, other)
}
