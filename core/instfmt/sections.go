package instfmt

import (
	"github.com/opal-lang/tutti/core/catalog"
	"github.com/opal-lang/tutti/core/seating"
)

// Section is one catalog section of a seat list, in weight order.
type Section struct {
	Name   string
	Groups []Group
}

// Group is one instrument group inside a section.
type Group struct {
	Name    string
	Entries []Entry
}

// Entry is a single seat with its instrument and rendered doublings.
type Entry struct {
	Seat       *seating.Seat
	Instrument *catalog.Instrument
	Doubling   string // "Picc, AFl"; empty when the seat doubles nothing
}

// Sections groups seats by catalog section and group. Sections and groups
// follow catalog weight, entries follow the global seat order.
func Sections(seats []*seating.Seat, lookup catalog.Lookup) []Section {
	sorted, _ := order(seats, lookup)

	var out []Section
	for _, p := range sorted {
		if n := len(out); n == 0 || out[n-1].Name != p.inst.Section {
			out = append(out, Section{Name: p.inst.Section})
		}
		sec := &out[len(out)-1]
		if n := len(sec.Groups); n == 0 || sec.Groups[n-1].Name != p.inst.Group {
			sec.Groups = append(sec.Groups, Group{Name: p.inst.Group})
		}
		grp := &sec.Groups[len(sec.Groups)-1]
		grp.Entries = append(grp.Entries, Entry{
			Seat:       p.seat,
			Instrument: p.inst,
			Doubling:   doublingList([]*seating.Seat{p.seat}, lookup, nil),
		})
	}
	return out
}

// Count returns the number of entries in the section.
func (s Section) Count() int {
	n := 0
	for _, g := range s.Groups {
		n += len(g.Entries)
	}
	return n
}
