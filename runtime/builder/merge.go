package builder

import (
	"sort"

	"github.com/opal-lang/tutti/core/seating"
)

// Append adds built seats after existing ones without clearing them.
//
// Numbering continues per instrument: new seats take positions after the
// highest existing position, and a lone existing seat becomes position 1
// once it gains siblings. The principal stays on the lowest position.
// Neither input is modified.
func Append(existing, built []*seating.Seat) []*seating.Seat {
	out := seating.CloneAll(existing)
	if out == nil {
		out = make([]*seating.Seat, 0, len(built))
	}

	byInstrument := make(map[int64][]*seating.Seat)
	for _, s := range out {
		byInstrument[s.InstrumentID] = append(byInstrument[s.InstrumentID], s)
	}

	for _, b := range built {
		s := b.Clone()
		have := byInstrument[s.InstrumentID]
		if len(have) > 0 {
			top := 0
			for _, h := range have {
				if h.Position == 0 {
					h.Position = 1
				}
				top = max(top, h.Position)
			}
			s.Position = top + 1
			s.Principal = false
		}
		byInstrument[s.InstrumentID] = append(have, s)
		out = append(out, s)
	}

	return out
}

// Reconcile carries seat identity from old seats to freshly built ones.
//
// Seats are matched by (instrument, occurrence), the occurrence being the
// rank of a seat among its instrument's seats in position order. A matched
// fresh seat takes the old seat's ID and Player; doublings and comments are
// not carried. Old seats with no counterpart are returned as dropped.
func Reconcile(old, fresh []*seating.Seat) (dropped []*seating.Seat) {
	oldBy := byInstrumentInPositionOrder(old)
	freshBy := byInstrumentInPositionOrder(fresh)

	for id, olds := range oldBy {
		news := freshBy[id]
		for k, o := range olds {
			if k >= len(news) {
				dropped = append(dropped, o)
				continue
			}
			news[k].ID = o.ID
			news[k].Player = o.Player
		}
	}

	// Map iteration order is random; report drops in the old list's order.
	rank := make(map[*seating.Seat]int, len(old))
	for i, s := range old {
		rank[s] = i
	}
	sort.Slice(dropped, func(i, j int) bool { return rank[dropped[i]] < rank[dropped[j]] })
	return dropped
}

func byInstrumentInPositionOrder(seats []*seating.Seat) map[int64][]*seating.Seat {
	out := make(map[int64][]*seating.Seat)
	for _, s := range seats {
		out[s.InstrumentID] = append(out[s.InstrumentID], s)
	}
	for _, group := range out {
		sort.SliceStable(group, func(i, j int) bool { return group[i].Position < group[j].Position })
	}
	return out
}
