package formatter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/opal-lang/tutti/core/catalog/catalogtest"
	"github.com/opal-lang/tutti/core/instfmt"
	"github.com/opal-lang/tutti/core/seating"
)

func TestFormatTree_Empty(t *testing.T) {
	var buf bytes.Buffer
	FormatTree(&buf, "test", nil, false)

	expected := "test:\n(no seats)\n"
	if diff := cmp.Diff(expected, buf.String()); diff != "" {
		t.Errorf("Output mismatch (-want +got):\n%s", diff)
	}
}

func TestFormatTree_Sections(t *testing.T) {
	c := catalogtest.Orchestra(t)
	flute := &seating.Seat{InstrumentID: catalogtest.Flute, Principal: true}
	flute.AddDoubling(seating.Doubling{InstrumentID: catalogtest.Piccolo})
	seats := []*seating.Seat{
		{InstrumentID: catalogtest.Violin, Position: 1, Principal: true},
		{InstrumentID: catalogtest.Violin, Position: 2},
		flute,
	}

	var buf bytes.Buffer
	FormatTree(&buf, "2Vln, Fl(+Picc)", instfmt.Sections(seats, c), false)

	expected := strings.Join([]string{
		"2Vln, Fl(+Picc):",
		"├─ Woodwinds (1)",
		"│  └─ Flutes",
		"│     └─ Fl (principal) +Picc",
		"└─ Strings (2)",
		"   └─ Violin",
		"      ├─ Vln 1 (principal)",
		"      └─ Vln 2",
		"",
	}, "\n")
	if diff := cmp.Diff(expected, buf.String()); diff != "" {
		t.Errorf("Output mismatch (-want +got):\n%s", diff)
	}
}

func TestFormatEntry(t *testing.T) {
	c := catalogtest.Orchestra(t)
	hn, _ := c.Instrument(catalogtest.Horn)

	seat := &seating.Seat{InstrumentID: catalogtest.Horn, Position: 4, Comment: "Wagner tuba"}
	e := instfmt.Entry{Seat: seat, Instrument: hn, Doubling: "Tr"}

	if got, want := FormatEntry(e, false), "Hn 4 +Tr # Wagner tuba"; got != want {
		t.Errorf("FormatEntry() = %q, want %q", got, want)
	}

	colored := FormatEntry(e, true)
	if !strings.Contains(colored, ColorGreen+" +Tr"+ColorReset) {
		t.Errorf("expected colored doubling, got %q", colored)
	}
	if !strings.Contains(colored, ColorGray) {
		t.Errorf("expected gray comment, got %q", colored)
	}
}

func TestColorize(t *testing.T) {
	if got := Colorize("x", ColorRed, false); got != "x" {
		t.Errorf("Colorize without color = %q", got)
	}
	if got := Colorize("x", ColorRed, true); got != ColorRed+"x"+ColorReset {
		t.Errorf("Colorize with color = %q", got)
	}
}
