package seating

import (
	"fmt"
	"sort"
)

// Kind names the sort of entity owning an instrumentation.
type Kind string

const (
	KindComposition Kind = "composition"
	KindEnsemble    Kind = "ensemble"
	KindProject     Kind = "project"
)

// kinds is the static registration table of known owners, with the label
// host UIs show for each.
var kinds = map[Kind]string{
	KindComposition: "Composition",
	KindEnsemble:    "Ensemble",
	KindProject:     "Project",
}

// Kinds returns every registered kind in name order.
func Kinds() []Kind {
	out := make([]Kind, 0, len(kinds))
	for k := range kinds {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Label returns the display label of a registered kind.
func (k Kind) Label() string {
	return kinds[k]
}

// ParseKind validates a kind name.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if _, ok := kinds[k]; !ok {
		return "", fmt.Errorf("unknown instrumentation owner %q", s)
	}
	return k, nil
}

// Context is a minimal owner: an id, its kind and its seats.
type Context struct {
	ID    ContextID
	Kind  Kind
	Seats []*Seat
}

func (c *Context) InstrumentationSeats() []*Seat { return c.Seats }

// NewContextID builds the conventional "kind/id" context identifier.
func NewContextID(kind Kind, id int64) ContextID {
	return ContextID(fmt.Sprintf("%s/%d", kind, id))
}
