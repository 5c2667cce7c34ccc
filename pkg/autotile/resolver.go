// Package autotile picks dual-grid transition sprites.
//
// A dual-grid cell sits half a tile down and right of logical tile (x, y)
// and straddles four logical tiles: (x, y), (x+1, y), (x, y+1) and
// (x+1, y+1). Every call recomputes the cell from those corners, so the
// resolver holds no state beyond its injected configuration and may be
// called from any number of goroutines.
package autotile

import (
	"image"

	"github.com/rywk/dualgrid/pkg/terrain"
)

// Lookup returns the terrain of a logical tile. Implementations must be
// free of side effects for the duration of a frame.
type Lookup interface {
	TerrainAt(x, y int) terrain.Type
}

type LookupFunc func(x, y int) terrain.Type

func (f LookupFunc) TerrainAt(x, y int) terrain.Type {
	return f(x, y)
}

// Layer is one transition sprite to paint on a cell.
type Layer struct {
	Primary   terrain.Type
	Secondary terrain.Type
	Tileset   Tileset

	// Pattern indexes the sheet. It equals Natural unless the tileset was
	// registered the other way round, in which case it is Natural inverted.
	Pattern  Pattern
	Natural  Pattern
	Reversed bool

	Cell   Cell
	Source image.Rectangle

	// Clip lists the corners the layer may paint. Nil means the whole cell.
	Clip []Corner

	FlipH bool
	FlipV bool
}

func (l Layer) Clipped() bool {
	return len(l.Clip) > 0
}

// Resolver turns the corners of a dual-grid cell into paint layers. The
// table and registry must not change while a resolver uses them; build a
// new resolver to reload configuration.
type Resolver struct {
	table    *terrain.Table
	registry *Registry
}

func New(table *terrain.Table, registry *Registry) *Resolver {
	if table == nil {
		table = terrain.Default()
	}
	if registry == nil {
		registry = NewRegistry()
	}
	return &Resolver{table: table, registry: registry}
}

func (r *Resolver) Table() *terrain.Table {
	return r.table
}

func (r *Resolver) Registry() *Registry {
	return r.registry
}

// ResolveCell returns the layers of the cell at logical (x, y), bottom
// to top. A uniform cell, or one whose transitions have no registered
// art, yields no layers and the caller paints the base texture.
func (r *Resolver) ResolveCell(x, y int, lookup Lookup) []Layer {
	corners := r.corners(x, y, lookup)
	distinct := r.distinct(corners)
	switch len(distinct) {
	case 1:
		return nil
	case 2:
		if l, ok := r.resolvePair(x, y, lookup, corners, distinct); ok {
			return []Layer{l}
		}
		return nil
	}
	return r.resolveStack(x, y, lookup, corners, distinct)
}

// corners samples TL, TR, BL, BR through the alias table.
func (r *Resolver) corners(x, y int, lookup Lookup) [4]terrain.Type {
	var out [4]terrain.Type
	for i, c := range Corners {
		dx, dy := c.offset()
		out[i] = r.sample(lookup, x+dx, y+dy)
	}
	return out
}

func (r *Resolver) sample(lookup Lookup, x, y int) terrain.Type {
	return r.table.Canonical(lookup.TerrainAt(x, y))
}

// distinct returns the corner terrains without repeats, lowest first.
func (r *Resolver) distinct(corners [4]terrain.Type) []terrain.Type {
	out := make([]terrain.Type, 0, 4)
	for _, t := range corners {
		dup := false
		for _, o := range out {
			if o == t {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, t)
		}
	}
	r.table.Sort(out)
	return out
}

// resolvePair handles a cell with exactly two terrains.
func (r *Resolver) resolvePair(x, y int, lookup Lookup, corners [4]terrain.Type, sorted []terrain.Type) (Layer, bool) {
	secondary, primary := sorted[0], sorted[1]
	isSecondary := func(t terrain.Type) bool { return t == secondary }
	natural := mask(corners, isSecondary)
	if natural.Degenerate() {
		return Layer{}, false
	}
	return r.layer(x, y, lookup, primary, secondary, natural, isSecondary, nil)
}

// resolveStack handles three or four terrains by stacking one layer per
// adjacent pair in priority order. A layer with something below its
// lower terrain folds that into its secondary side and only paints the
// corners its higher terrain owns, so it never covers corners belonging
// to the layers beneath.
func (r *Resolver) resolveStack(x, y int, lookup Lookup, corners [4]terrain.Type, sorted []terrain.Type) []Layer {
	var layers []Layer
	for i := 0; i+1 < len(sorted); i++ {
		lower, higher := sorted[i], sorted[i+1]

		below := false
		for _, t := range corners {
			if r.table.Less(t, lower) {
				below = true
				break
			}
		}

		isSecondary := func(t terrain.Type) bool { return t == lower }
		var clip []Corner
		if below {
			isSecondary = func(t terrain.Type) bool { return !r.table.Less(lower, t) }
			for j, t := range corners {
				if t == higher {
					clip = append(clip, Corners[j])
				}
			}
			if len(clip) == 0 {
				continue
			}
		}

		natural := mask(corners, isSecondary)
		if natural.Degenerate() {
			continue
		}
		if l, ok := r.layer(x, y, lookup, higher, lower, natural, isSecondary, clip); ok {
			layers = append(layers, l)
		}
	}
	return layers
}

// layer finds the art for primary over secondary and fills in the sprite.
func (r *Resolver) layer(x, y int, lookup Lookup, primary, secondary terrain.Type, natural Pattern, isSecondary func(terrain.Type) bool, clip []Corner) (Layer, bool) {
	ts, reversed, ok := r.registry.Lookup(primary, secondary)
	if !ok {
		return Layer{}, false
	}
	p := natural
	if reversed {
		p = natural.Invert()
	}
	cell := CellFor(p)
	return Layer{
		Primary:   primary,
		Secondary: secondary,
		Tileset:   ts,
		Pattern:   p,
		Natural:   natural,
		Reversed:  reversed,
		Cell:      cell,
		Source:    SourceFor(p),
		Clip:      clip,
		FlipH:     natural.Diagonal() && r.mirror(x, y, lookup, natural, isSecondary),
	}, true
}

func mask(corners [4]terrain.Type, isSecondary func(terrain.Type) bool) Pattern {
	var p Pattern
	for i, t := range corners {
		if isSecondary(t) {
			p |= Pattern(Corners[i])
		}
	}
	return p
}
