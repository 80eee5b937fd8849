package instfmt

import (
	"strconv"
	"strings"

	"github.com/opal-lang/tutti/core/catalog"
	"github.com/opal-lang/tutti/core/seating"
)

// Options controls canonical rendering.
type Options struct {
	// SeparateDoublings renders doublings flagged Separate as their own
	// trailing "+{n}{abbr}" groups instead of inside the owning group's
	// suffix.
	SeparateDoublings bool
}

// Format renders seats as the canonical notation line.
//
// Sorted seats of one instrument form a group rendered "{n}{abbr}", or
// "{abbr}" for a single seat. Doublings of the group follow as
// "(+{n}{abbr}, ...)" where n is the number of the group's seats carrying
// that doubling. Groups are joined with ", ". Format is a fixed point of
// parsing: applying its output and formatting again yields the same line.
func Format(seats []*seating.Seat, lookup catalog.Lookup, opts Options) string {
	sorted, _ := order(seats, lookup)
	if len(sorted) == 0 {
		return ""
	}

	var merged *bool
	if opts.SeparateDoublings {
		f := false
		merged = &f
	}

	var parts []string
	for start := 0; start < len(sorted); {
		end := start + 1
		for end < len(sorted) && sorted[end].inst.ID == sorted[start].inst.ID {
			end++
		}

		group := make([]*seating.Seat, 0, end-start)
		for _, p := range sorted[start:end] {
			group = append(group, p.seat)
		}

		var b strings.Builder
		b.WriteString(counted(len(group), sorted[start].inst.Label()))
		if suffix := doublingList(group, lookup, merged); suffix != "" {
			b.WriteString("(+")
			b.WriteString(suffix)
			b.WriteString(")")
		}
		parts = append(parts, b.String())
		start = end
	}

	if opts.SeparateDoublings {
		all := make([]*seating.Seat, len(sorted))
		for i, p := range sorted {
			all[i] = p.seat
		}
		t := true
		insts, counts := doublingOrder(all, lookup, &t)
		for _, inst := range insts {
			parts = append(parts, "+"+counted(counts[inst.ID], inst.Label()))
		}
	}

	return strings.Join(parts, ", ")
}

// FormatHolder renders the seats of any instrumentation holder.
func FormatHolder(h seating.Holder, lookup catalog.Lookup, opts Options) string {
	return Format(h.InstrumentationSeats(), lookup, opts)
}

// doublingList renders the doublings of seats as "{n}{abbr}, ...".
func doublingList(seats []*seating.Seat, lookup catalog.Lookup, separate *bool) string {
	insts, counts := doublingOrder(seats, lookup, separate)
	parts := make([]string, len(insts))
	for i, inst := range insts {
		parts[i] = counted(counts[inst.ID], inst.Label())
	}
	return strings.Join(parts, ", ")
}

func counted(n int, label string) string {
	if n > 1 {
		return strconv.Itoa(n) + label
	}
	return label
}
