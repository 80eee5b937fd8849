// Package catalogtest provides a small orchestral catalog for tests.
package catalogtest

import (
	"testing"

	"github.com/opal-lang/tutti/core/catalog"
)

// Instrument ids in the Orchestra catalog.
const (
	Flute int64 = iota + 1
	Piccolo
	AltoFlute
	Oboe
	EnglishHorn
	Clarinet
	BassClarinet
	Bassoon
	Contrabassoon
	Horn
	Trumpet
	Trombone
	Tuba
	Timpani
	Percussion
	Piano
	Harp
	Violin
	Viola
	Cello
	DoubleBass
)

// Instruments returns the Orchestra catalog entries. Matches testdata/orchestra.yaml.
func Instruments() []catalog.Instrument {
	ww := func(id int64, abbr, name, group string, gw, w int, aliases ...string) catalog.Instrument {
		return catalog.Instrument{ID: id, Abbreviation: abbr, Name: name, Section: "Woodwinds", SectionWeight: 10,
			Group: group, GroupWeight: gw, Weight: w, Primary: true, Aliases: aliases}
	}
	br := func(id int64, abbr, name string, gw int, aliases ...string) catalog.Instrument {
		return catalog.Instrument{ID: id, Abbreviation: abbr, Name: name, Section: "Brass", SectionWeight: 20,
			Group: name, GroupWeight: gw, Weight: 1, Primary: true, Aliases: aliases}
	}
	st := func(id int64, abbr, name string, gw int, aliases ...string) catalog.Instrument {
		return catalog.Instrument{ID: id, Abbreviation: abbr, Name: name, Section: "Strings", SectionWeight: 40,
			Group: name, GroupWeight: gw, Weight: 1, Primary: true, Aliases: aliases}
	}

	return []catalog.Instrument{
		ww(Flute, "Fl", "Flute", "Flutes", 1, 1),
		ww(Piccolo, "Picc", "Piccolo", "Flutes", 1, 2),
		ww(AltoFlute, "AFl", "Alto flute", "Flutes", 1, 3),
		ww(Oboe, "Ob", "Oboe", "Oboes", 2, 1),
		ww(EnglishHorn, "EH", "English horn", "Oboes", 2, 2, "CA"),
		ww(Clarinet, "Cl", "Clarinet", "Clarinets", 3, 1),
		ww(BassClarinet, "BCl", "Bass clarinet", "Clarinets", 3, 2),
		ww(Bassoon, "Fag", "Bassoon", "Bassoons", 4, 1, "Bsn"),
		ww(Contrabassoon, "CFag", "Contrabassoon", "Bassoons", 4, 2),
		br(Horn, "Hn", "Horn", 1, "Cor"),
		br(Trumpet, "Tr", "Trumpet", 2, "Tpt"),
		br(Trombone, "Trb", "Trombone", 3),
		br(Tuba, "Tba", "Tuba", 4),
		{ID: Timpani, Abbreviation: "Timp", Name: "Timpani", Section: "Percussion", SectionWeight: 30, Group: "Timpani", GroupWeight: 1, Weight: 1, Primary: true},
		{ID: Percussion, Abbreviation: "Perc", Name: "Percussion", Section: "Percussion", SectionWeight: 30, Group: "Percussion", GroupWeight: 2, Weight: 1, Primary: true},
		{ID: Piano, Abbreviation: "Pf", Name: "Piano", Section: "Keyboards", SectionWeight: 35, Group: "Keyboards", GroupWeight: 1, Weight: 1, Primary: true, Aliases: []string{"Klav"}},
		{ID: Harp, Abbreviation: "Hp", Name: "Harp", Section: "Keyboards", SectionWeight: 35, Group: "Harps", GroupWeight: 2, Weight: 1, Primary: true},
		st(Violin, "Vln", "Violin", 1, "Vn"),
		st(Viola, "Vla", "Viola", 2),
		st(Cello, "Vcl", "Cello", 3, "Vc"),
		st(DoubleBass, "Cb", "Double bass", 4),
	}
}

// Orchestra builds the test catalog, failing the test on error.
func Orchestra(t testing.TB) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New(Instruments())
	if err != nil {
		t.Fatalf("build orchestra catalog: %v", err)
	}
	return c
}
