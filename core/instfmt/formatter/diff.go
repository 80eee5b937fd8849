package formatter

import (
	"fmt"
	"slices"
	"strings"

	"github.com/opal-lang/tutti/core/catalog"
	"github.com/opal-lang/tutti/core/instfmt"
	"github.com/opal-lang/tutti/core/seating"
)

// DiffResult represents the differences between two seat lists.
type DiffResult struct {
	Added    []GroupDiff // instruments only in actual
	Removed  []GroupDiff // instruments only in expected
	Modified []GroupDiff // instruments whose group renders differently
}

// GroupDiff is the difference for one instrument, each side rendered in
// canonical notation.
type GroupDiff struct {
	Instrument string
	Expected   string // empty for added groups
	Actual     string // empty for removed groups
}

// Empty reports whether the seat lists render identically.
func (r *DiffResult) Empty() bool {
	return len(r.Added) == 0 && len(r.Removed) == 0 && len(r.Modified) == 0
}

// Diff compares two seat lists instrument by instrument in catalog order.
// Instruments unknown to lookup are ignored.
func Diff(expected, actual []*seating.Seat, lookup catalog.Lookup) *DiffResult {
	before := byInstrument(expected)
	after := byInstrument(actual)

	var insts []*catalog.Instrument
	seen := make(map[int64]bool)
	for _, m := range []map[int64][]*seating.Seat{before, after} {
		for id := range m {
			if seen[id] {
				continue
			}
			seen[id] = true
			if inst, ok := lookup.Instrument(id); ok {
				insts = append(insts, inst)
			}
		}
	}
	slices.SortFunc(insts, catalog.Compare)

	result := &DiffResult{}
	for _, inst := range insts {
		d := GroupDiff{
			Instrument: inst.Label(),
			Expected:   instfmt.Format(before[inst.ID], lookup, instfmt.Options{}),
			Actual:     instfmt.Format(after[inst.ID], lookup, instfmt.Options{}),
		}
		switch {
		case d.Expected == d.Actual:
		case d.Expected == "":
			result.Added = append(result.Added, d)
		case d.Actual == "":
			result.Removed = append(result.Removed, d)
		default:
			result.Modified = append(result.Modified, d)
		}
	}
	return result
}

func byInstrument(seats []*seating.Seat) map[int64][]*seating.Seat {
	out := make(map[int64][]*seating.Seat)
	for _, s := range seats {
		out[s.InstrumentID] = append(out[s.InstrumentID], s)
	}
	return out
}

// FormatDiff returns a human-readable diff display.
func FormatDiff(result *DiffResult, useColor bool) string {
	var b strings.Builder

	if len(result.Modified) > 0 {
		fmt.Fprintf(&b, "%s\n", Colorize("Modified:", ColorYellow, useColor))
		for _, d := range result.Modified {
			fmt.Fprintf(&b, "  %s:\n", d.Instrument)
			fmt.Fprintf(&b, "    %s\n", Colorize("- "+d.Expected, ColorRed, useColor))
			fmt.Fprintf(&b, "    %s\n", Colorize("+ "+d.Actual, ColorGreen, useColor))
		}
		fmt.Fprintln(&b)
	}

	if len(result.Added) > 0 {
		fmt.Fprintf(&b, "%s\n", Colorize("Added:", ColorGreen, useColor))
		for _, d := range result.Added {
			fmt.Fprintf(&b, "  %s\n", Colorize("+ "+d.Actual, ColorGreen, useColor))
		}
		fmt.Fprintln(&b)
	}

	if len(result.Removed) > 0 {
		fmt.Fprintf(&b, "%s\n", Colorize("Removed:", ColorRed, useColor))
		for _, d := range result.Removed {
			fmt.Fprintf(&b, "  %s\n", Colorize("- "+d.Expected, ColorRed, useColor))
		}
		fmt.Fprintln(&b)
	}

	if result.Empty() {
		fmt.Fprintln(&b, "No differences found.")
	}

	return b.String()
}
