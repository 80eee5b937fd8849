package catalog

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Catalog is an immutable, indexed set of instruments.
// It is safe for concurrent use.
type Catalog struct {
	ordered []*Instrument
	byID    map[int64]*Instrument
	byAbbr  map[string]*Instrument
	byAlias map[string]*Instrument
	byName  map[string]*Instrument

	// candidates feed Suggest: every abbreviation, alias and name, mapped
	// back to the owning instrument's abbreviation.
	candidates []string
	owners     map[string]string
}

// New builds a catalog. Instrument ids must be positive and unique, and no
// two instruments may share a normalized abbreviation or alias. Names that
// collide are indexed for the first instrument in weight order only.
func New(instruments []Instrument) (*Catalog, error) {
	c := &Catalog{
		ordered: make([]*Instrument, 0, len(instruments)),
		byID:    make(map[int64]*Instrument, len(instruments)),
		byAbbr:  make(map[string]*Instrument, len(instruments)),
		byAlias: make(map[string]*Instrument),
		byName:  make(map[string]*Instrument, len(instruments)),
		owners:  make(map[string]string),
	}

	for i := range instruments {
		inst := instruments[i]
		inst.Abbreviation = strings.TrimSpace(inst.Abbreviation)
		inst.Name = strings.TrimSpace(inst.Name)
		inst.Aliases = slices.Clone(inst.Aliases)

		if inst.ID <= 0 {
			return nil, fmt.Errorf("instrument %q: id must be positive, got %d", inst.Label(), inst.ID)
		}
		if _, dup := c.byID[inst.ID]; dup {
			return nil, fmt.Errorf("instrument %q: duplicate id %d", inst.Label(), inst.ID)
		}
		if inst.Abbreviation == "" {
			inst.Abbreviation = inst.Name
		}
		if Normalize(inst.Abbreviation) == "" {
			return nil, fmt.Errorf("instrument %d: abbreviation must not be empty", inst.ID)
		}
		c.byID[inst.ID] = &inst
		c.ordered = append(c.ordered, &inst)
	}

	sort.SliceStable(c.ordered, func(i, j int) bool {
		return Compare(c.ordered[i], c.ordered[j]) < 0
	})

	for _, inst := range c.ordered {
		key := Normalize(inst.Abbreviation)
		if other, dup := c.byAbbr[key]; dup {
			return nil, fmt.Errorf("instruments %d and %d share abbreviation %q", other.ID, inst.ID, key)
		}
		c.byAbbr[key] = inst
		c.addCandidate(inst.Abbreviation, inst)
	}

	for _, inst := range c.ordered {
		for _, alias := range inst.Aliases {
			key := Normalize(alias)
			if key == "" {
				continue
			}
			if other, dup := c.byAbbr[key]; dup && other != inst {
				return nil, fmt.Errorf("alias %q of instrument %d collides with abbreviation of instrument %d", alias, inst.ID, other.ID)
			}
			if other, dup := c.byAlias[key]; dup && other != inst {
				return nil, fmt.Errorf("alias %q is claimed by instruments %d and %d", alias, other.ID, inst.ID)
			}
			c.byAlias[key] = inst
			c.addCandidate(alias, inst)
		}
		if key := Normalize(inst.Name); key != "" {
			if _, taken := c.byName[key]; !taken {
				c.byName[key] = inst
				c.addCandidate(inst.Name, inst)
			}
		}
	}

	return c, nil
}

func (c *Catalog) addCandidate(text string, inst *Instrument) {
	if _, seen := c.owners[text]; seen {
		return
	}
	c.owners[text] = inst.Abbreviation
	c.candidates = append(c.candidates, text)
}

// Resolve matches text against abbreviations, then aliases, then names.
func (c *Catalog) Resolve(text string, strict bool) (*Instrument, error) {
	if inst := c.find(text); inst != nil {
		return inst, nil
	}
	if strict {
		return nil, &NotFoundError{Text: text, Suggestion: c.Suggest(text)}
	}
	return nil, nil
}

func (c *Catalog) find(text string) *Instrument {
	key := Normalize(text)
	if key == "" {
		return nil
	}
	if inst, ok := c.byAbbr[key]; ok {
		return inst
	}
	if inst, ok := c.byAlias[key]; ok {
		return inst
	}
	return c.byName[key]
}

// Instrument returns the instrument with the given id.
func (c *Catalog) Instrument(id int64) (*Instrument, bool) {
	inst, ok := c.byID[id]
	return inst, ok
}

// Instruments returns all instruments in weight order.
// The returned instruments must not be modified.
func (c *Catalog) Instruments() []*Instrument {
	return slices.Clone(c.ordered)
}

// Len returns the number of instruments.
func (c *Catalog) Len() int {
	return len(c.ordered)
}

// Suggest returns the abbreviation closest to text, or "" when nothing is
// plausibly close. Suggestions are advisory only; Resolve never uses them.
func (c *Catalog) Suggest(text string) string {
	text = strings.TrimSpace(text)
	if text == "" || len(c.candidates) == 0 {
		return ""
	}

	// Subsequence match first: "Vl" -> "Vln", "Picc" -> "Piccolo".
	ranks := fuzzy.RankFindNormalizedFold(text, c.candidates)
	if len(ranks) > 0 {
		sort.Stable(ranks)
		return c.owners[ranks[0].Target]
	}

	// Fall back to edit distance for transpositions and typos: "Vnl" -> "Vln".
	key := Normalize(text)
	best, bestDist := "", 2*(len(key)/3+1)+1
	for _, candidate := range c.candidates {
		d := typoDistance(key, Normalize(candidate))
		if d < bestDist {
			best, bestDist = candidate, d
		}
	}
	if best == "" {
		return ""
	}
	return c.owners[best]
}

// typoDistance is an optimal string alignment distance in which an edit
// costs 2 and swapping two adjacent runes costs 1, so "vnl" is nearer to
// "vln" than to "vcl".
func typoDistance(a, b string) int {
	s, t := []rune(a), []rune(b)
	prev2 := make([]int, len(t)+1)
	prev := make([]int, len(t)+1)
	cur := make([]int, len(t)+1)
	for j := range prev {
		prev[j] = 2 * j
	}
	for i := 1; i <= len(s); i++ {
		cur[0] = 2 * i
		for j := 1; j <= len(t); j++ {
			sub := 2
			if s[i-1] == t[j-1] {
				sub = 0
			}
			cur[j] = min(prev[j]+2, cur[j-1]+2, prev[j-1]+sub)
			if i > 1 && j > 1 && s[i-1] == t[j-2] && s[i-2] == t[j-1] {
				cur[j] = min(cur[j], prev2[j-2]+1)
			}
		}
		prev2, prev, cur = prev, cur, prev2
	}
	return prev[len(t)]
}
