package terrain

import "sort"

// Type names a ground material.
type Type string

const (
	Sea            Type = "Sea"
	HotSpringWater Type = "HotSpringWater"
	Beach          Type = "Beach"
	Quarry         Type = "Quarry"
	Dirt           Type = "Dirt"
	DirtRoad       Type = "DirtRoad"
	Asphalt        Type = "Asphalt"
	Grass          Type = "Grass"
	Tundra         Type = "Tundra"
	Alpine         Type = "Alpine"
	Forest         Type = "Forest"

	// Tilled renders with the Dirt transitions.
	Tilled Type = "Tilled"
)

// DefaultRank is the rank given to types missing from a table.
// Mid range, so an unknown material lands between water and vegetation.
const DefaultRank = 5

// Aliases maps a game terrain to the terrain whose transition art it uses.
type Aliases map[Type]Type

// Canonical is total, unmapped types map to themselves.
func (a Aliases) Canonical(t Type) Type {
	if c, ok := a[t]; ok {
		return c
	}
	return t
}

// Table is an immutable priority order over terrain types.
// Lower rank renders underneath.
type Table struct {
	ranks       map[Type]int
	aliases     Aliases
	defaultRank int
}

func NewTable(ranks map[Type]int, aliases Aliases, defaultRank int) *Table {
	t := &Table{
		ranks:       make(map[Type]int, len(ranks)),
		aliases:     make(Aliases, len(aliases)),
		defaultRank: defaultRank,
	}
	for k, v := range ranks {
		t.ranks[k] = v
	}
	for k, v := range aliases {
		t.aliases[k] = v
	}
	return t
}

// Default is the world's built-in table.
func Default() *Table {
	return NewTable(map[Type]int{
		Sea:            0,
		HotSpringWater: 1,
		Beach:          2,
		Quarry:         3,
		Dirt:           4,
		DirtRoad:       5,
		Asphalt:        6,
		Grass:          7,
		Tundra:         8,
		Alpine:         9,
		Forest:         10,
	}, Aliases{
		Tilled: Dirt,
	}, DefaultRank)
}

func (t *Table) Canonical(ty Type) Type {
	return t.aliases.Canonical(ty)
}

// Rank of the canonical form of ty.
func (t *Table) Rank(ty Type) int {
	if r, ok := t.ranks[t.Canonical(ty)]; ok {
		return r
	}
	return t.defaultRank
}

func (t *Table) Known(ty Type) bool {
	_, ok := t.ranks[t.Canonical(ty)]
	return ok
}

func (t *Table) DefaultRank() int {
	return t.defaultRank
}

// Less orders by rank, then by name so that equal ranks still sort the
// same way every time.
func (t *Table) Less(a, b Type) bool {
	ra, rb := t.Rank(a), t.Rank(b)
	if ra != rb {
		return ra < rb
	}
	return t.Canonical(a) < t.Canonical(b)
}

func (t *Table) Sort(types []Type) {
	sort.Slice(types, func(i, j int) bool { return t.Less(types[i], types[j]) })
}

// Types returns the ranked types, lowest first.
func (t *Table) Types() []Type {
	out := make([]Type, 0, len(t.ranks))
	for ty := range t.ranks {
		out = append(out, ty)
	}
	t.Sort(out)
	return out
}
