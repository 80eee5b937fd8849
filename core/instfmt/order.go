// Package instfmt renders seat lists: the canonical notation line, the
// section view, and a canonical binary snapshot for fingerprinting.
//
// Every rendering uses one global order: section weight, group weight,
// instrument weight, then seat position.
package instfmt

import (
	"slices"
	"sort"

	"github.com/opal-lang/tutti/core/catalog"
	"github.com/opal-lang/tutti/core/seating"
)

// placed is a seat with its resolved instrument.
type placed struct {
	seat *seating.Seat
	inst *catalog.Instrument
}

// order resolves and sorts seats. Seats whose instrument is missing from
// lookup are left out and their instrument ids returned.
func order(seats []*seating.Seat, lookup catalog.Lookup) ([]placed, []int64) {
	out := make([]placed, 0, len(seats))
	var missing []int64
	for _, s := range seats {
		inst, ok := lookup.Instrument(s.InstrumentID)
		if !ok {
			missing = append(missing, s.InstrumentID)
			continue
		}
		out = append(out, placed{seat: s, inst: inst})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if c := catalog.Compare(out[i].inst, out[j].inst); c != 0 {
			return c < 0
		}
		return out[i].seat.Position < out[j].seat.Position
	})
	return out, missing
}

// doublingOrder returns the distinct doubling instruments of seats in
// catalog order with the number of seats carrying each. When separate is
// non-nil only doublings whose Separate flag equals *separate are counted.
func doublingOrder(seats []*seating.Seat, lookup catalog.Lookup, separate *bool) ([]*catalog.Instrument, map[int64]int) {
	counts := make(map[int64]int)
	var insts []*catalog.Instrument
	for _, s := range seats {
		for _, d := range s.Doublings {
			if separate != nil && d.Separate != *separate {
				continue
			}
			inst, ok := lookup.Instrument(d.InstrumentID)
			if !ok {
				continue
			}
			if counts[d.InstrumentID] == 0 {
				insts = append(insts, inst)
			}
			counts[d.InstrumentID]++
		}
	}
	slices.SortStableFunc(insts, catalog.Compare)
	return insts, counts
}

// Unknown returns the distinct instrument ids referenced by seats or their
// doublings that lookup does not know, in first-seen order. Renderings skip
// them.
func Unknown(seats []*seating.Seat, lookup catalog.Lookup) []int64 {
	seen := make(map[int64]bool)
	var out []int64
	check := func(id int64) {
		if seen[id] {
			return
		}
		seen[id] = true
		if _, ok := lookup.Instrument(id); !ok {
			out = append(out, id)
		}
	}
	for _, s := range seats {
		check(s.InstrumentID)
		for _, d := range s.Doublings {
			check(d.InstrumentID)
		}
	}
	return out
}
