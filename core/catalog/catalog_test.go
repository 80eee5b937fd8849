package catalog_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opal-lang/tutti/core/catalog"
	"github.com/opal-lang/tutti/core/catalog/catalogtest"
)

func TestResolve(t *testing.T) {
	c := catalogtest.Orchestra(t)

	tests := []struct {
		name string
		text string
		want int64
	}{
		{"abbreviation", "Vln", catalogtest.Violin},
		{"case insensitive", "VLA", catalogtest.Viola},
		{"trailing period", "Pf.", catalogtest.Piano},
		{"interior whitespace", "V cl", catalogtest.Cello},
		{"hyphen", "B-Cl", catalogtest.BassClarinet},
		{"alias", "Vn", catalogtest.Violin},
		{"alias case", "bsn", catalogtest.Bassoon},
		{"name", "Double bass", catalogtest.DoubleBass},
		{"name fallback after aliases", "English Horn", catalogtest.EnglishHorn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inst, err := c.Resolve(tt.text, true)
			require.NoError(t, err)
			require.NotNil(t, inst)
			assert.Equal(t, tt.want, inst.ID)
		})
	}
}

func TestResolveMiss(t *testing.T) {
	c := catalogtest.Orchestra(t)

	inst, err := c.Resolve("Zzz", false)
	assert.NoError(t, err)
	assert.Nil(t, inst)

	inst, err = c.Resolve("", false)
	assert.NoError(t, err)
	assert.Nil(t, inst)

	_, err = c.Resolve("Zzz", true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, catalog.ErrNotFound))

	var nf *catalog.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "Zzz", nf.Text)
	assert.Empty(t, nf.Suggestion)
}

func TestStrictMissCarriesSuggestion(t *testing.T) {
	c := catalogtest.Orchestra(t)

	_, err := c.Resolve("Vnl", true)
	var nf *catalog.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "Vln", nf.Suggestion)
	assert.Contains(t, err.Error(), `did you mean "Vln"`)
}

func TestSuggest(t *testing.T) {
	c := catalogtest.Orchestra(t)

	tests := []struct {
		text string
		want string
	}{
		{"Vl", "Vln"},
		{"Vnl", "Vln"},
		{"Vlc", "Vcl"},
		{"Contra", "CFag"},
		{"Zzz", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Suggest(tt.text))
		})
	}
}

func TestInstrumentsInWeightOrder(t *testing.T) {
	c := catalogtest.Orchestra(t)

	all := c.Instruments()
	require.Len(t, all, c.Len())
	assert.Equal(t, "Fl", all[0].Abbreviation)
	assert.Equal(t, "Cb", all[len(all)-1].Abbreviation)
	for i := 1; i < len(all); i++ {
		assert.Negative(t, catalog.Compare(all[i-1], all[i]), "%s before %s", all[i-1].Abbreviation, all[i].Abbreviation)
	}

	inst, ok := c.Instrument(catalogtest.Harp)
	require.True(t, ok)
	assert.Equal(t, "Hp", inst.Label())

	_, ok = c.Instrument(999)
	assert.False(t, ok)
}

func TestNewRejectsInvalidCatalogs(t *testing.T) {
	tests := []struct {
		name        string
		instruments []catalog.Instrument
		wantErr     string
	}{
		{
			name:        "zero id",
			instruments: []catalog.Instrument{{ID: 0, Abbreviation: "Fl"}},
			wantErr:     "id must be positive",
		},
		{
			name:        "duplicate id",
			instruments: []catalog.Instrument{{ID: 1, Abbreviation: "Fl"}, {ID: 1, Abbreviation: "Ob"}},
			wantErr:     "duplicate id 1",
		},
		{
			name:        "empty abbreviation and name",
			instruments: []catalog.Instrument{{ID: 1, Abbreviation: " . "}},
			wantErr:     "abbreviation must not be empty",
		},
		{
			name:        "normalized abbreviation collision",
			instruments: []catalog.Instrument{{ID: 1, Abbreviation: "Vln"}, {ID: 2, Abbreviation: "v.ln"}},
			wantErr:     "share abbreviation",
		},
		{
			name: "alias collides with abbreviation",
			instruments: []catalog.Instrument{
				{ID: 1, Abbreviation: "Vln"},
				{ID: 2, Abbreviation: "Vla", Aliases: []string{"VLN"}},
			},
			wantErr: "collides with abbreviation",
		},
		{
			name: "alias claimed twice",
			instruments: []catalog.Instrument{
				{ID: 1, Abbreviation: "Vln", Aliases: []string{"V"}},
				{ID: 2, Abbreviation: "Vla", Aliases: []string{"v"}},
			},
			wantErr: "claimed by instruments",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := catalog.New(tt.instruments)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewFallsBackToName(t *testing.T) {
	c, err := catalog.New([]catalog.Instrument{{ID: 7, Name: "Celesta"}})
	require.NoError(t, err)

	inst, err := c.Resolve("celesta", true)
	require.NoError(t, err)
	assert.Equal(t, "Celesta", inst.Abbreviation)
}

func TestNewCopiesInput(t *testing.T) {
	in := []catalog.Instrument{{ID: 1, Abbreviation: "Fl", Aliases: []string{"Flt"}}}
	c, err := catalog.New(in)
	require.NoError(t, err)

	in[0].Abbreviation = "Ob"
	in[0].Aliases[0] = "Oboe"

	inst, ok := c.Instrument(1)
	require.True(t, ok)
	assert.Equal(t, "Fl", inst.Abbreviation)
	_, err = c.Resolve("Flt", true)
	assert.NoError(t, err)
}
