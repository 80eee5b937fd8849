package instfmt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opal-lang/tutti/core/catalog/catalogtest"
	"github.com/opal-lang/tutti/core/instfmt"
)

func TestSections(t *testing.T) {
	c := catalogtest.Orchestra(t)

	oboes := seats(catalogtest.Oboe, 2)
	double(oboes[1], catalogtest.EnglishHorn)
	in := join(seats(catalogtest.Violin, 2), seats(catalogtest.Horn, 1), oboes, seats(catalogtest.Flute, 1))

	got := instfmt.Sections(in, c)
	require.Len(t, got, 3)

	var names []string
	for _, s := range got {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"Woodwinds", "Brass", "Strings"}, names)

	winds := got[0]
	assert.Equal(t, 3, winds.Count())
	require.Len(t, winds.Groups, 2)
	assert.Equal(t, "Flutes", winds.Groups[0].Name)
	assert.Equal(t, "Oboes", winds.Groups[1].Name)

	ob := winds.Groups[1].Entries
	require.Len(t, ob, 2)
	assert.Equal(t, 1, ob[0].Seat.Position)
	assert.Empty(t, ob[0].Doubling)
	assert.Equal(t, 2, ob[1].Seat.Position)
	assert.Equal(t, "EH", ob[1].Doubling)
	assert.Equal(t, "Ob", ob[1].Instrument.Abbreviation)

	assert.Equal(t, 2, got[2].Count())
}

func TestSectionsEmpty(t *testing.T) {
	assert.Empty(t, instfmt.Sections(nil, catalogtest.Orchestra(t)))
}
