// Package ground stores the terrain of logical tiles for the resolver.
package ground

import (
	"errors"
	"fmt"

	"github.com/rywk/dualgrid/pkg/terrain"
	"github.com/rywk/dualgrid/pkg/typ"
	"github.com/rywk/tile"
)

var ErrOutOfBounds = errors.New("ground: out of bounds")

// Source is anything that can answer what terrain a tile has.
type Source interface {
	TerrainAt(x, y int) terrain.Type
}

// cell is the single thing kept on a grid tile.
type cell struct {
	t terrain.Type
}

// Grid is a fixed-size world. Tiles that were never set, and anything
// outside the world, read as the default terrain. Writes must not race
// with reads; take a Snapshot per frame when the world changes live.
type Grid struct {
	w, h  int
	def   terrain.Type
	tiles *tile.Grid[*cell]
}

// MaxSize is the largest world side. The tile grid is stored in 3x3
// pages addressed with int16, so sides are rounded up to a multiple of 3.
const MaxSize = 32765

// NewGrid panics when a side is negative or larger than MaxSize.
func NewGrid(w, h int, def terrain.Type) *Grid {
	if w < 0 || h < 0 || w > MaxSize || h > MaxSize {
		panic(fmt.Sprintf("ground: grid size %dx%d outside 0..%d", w, h, MaxSize))
	}
	return &Grid{
		w:     w,
		h:     h,
		def:   def,
		tiles: tile.NewGridOf[*cell](int16(pageAligned(w)), int16(pageAligned(h))),
	}
}

func pageAligned(n int) int {
	return (n + 2) / 3 * 3
}

func (g *Grid) Size() (int, int) {
	return g.w, g.h
}

func (g *Grid) Default() terrain.Type {
	return g.def
}

func (g *Grid) in(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.w && y < g.h
}

// at returns the cell kept on a tile, adding one when create is set.
func (g *Grid) at(x, y int, create bool) *cell {
	if !g.in(x, y) {
		return nil
	}
	t, ok := g.tiles.At(int16(x), int16(y))
	if !ok {
		return nil
	}
	var c *cell
	t.Range(func(v *cell) error {
		c = v
		return errStop
	})
	if c == nil && create {
		c = &cell{t: g.def}
		t.Add(c)
	}
	return c
}

var errStop = errors.New("stop")

func (g *Grid) Set(x, y int, t terrain.Type) error {
	c := g.at(x, y, true)
	if c == nil {
		return fmt.Errorf("%w: (%d, %d) in %dx%d", ErrOutOfBounds, x, y, g.w, g.h)
	}
	c.t = t
	return nil
}

func (g *Grid) TerrainAt(x, y int) terrain.Type {
	if c := g.at(x, y, false); c != nil {
		return c.t
	}
	return g.def
}

// Fill sets every tile in r, clipped to the world.
func (g *Grid) Fill(r typ.Rect, t terrain.Type) {
	for y := max(r.Min.Y, 0); y < min(r.Max.Y, g.h); y++ {
		for x := max(r.Min.X, 0); x < min(r.Max.X, g.w); x++ {
			g.Set(x, y, t)
		}
	}
}

// Sparse keeps only the tiles that differ from the default.
type Sparse struct {
	def   terrain.Type
	tiles map[typ.P]terrain.Type
}

func NewSparse(def terrain.Type) *Sparse {
	return &Sparse{def: def, tiles: make(map[typ.P]terrain.Type)}
}

func (s *Sparse) Set(x, y int, t terrain.Type) {
	p := typ.P{X: x, Y: y}
	if t == s.def {
		delete(s.tiles, p)
		return
	}
	s.tiles[p] = t
}

func (s *Sparse) TerrainAt(x, y int) terrain.Type {
	if t, ok := s.tiles[typ.P{X: x, Y: y}]; ok {
		return t
	}
	return s.def
}

func (s *Sparse) Default() terrain.Type {
	return s.def
}

func (s *Sparse) Len() int {
	return len(s.tiles)
}

// Bounds is the smallest rect holding every non-default tile.
func (s *Sparse) Bounds() typ.Rect {
	first := true
	var r typ.Rect
	for p := range s.tiles {
		if first {
			r = typ.R(p.X, p.Y, p.X+1, p.Y+1)
			first = false
			continue
		}
		r.Min.X, r.Min.Y = min(r.Min.X, p.X), min(r.Min.Y, p.Y)
		r.Max.X, r.Max.Y = max(r.Max.X, p.X+1), max(r.Max.Y, p.Y+1)
	}
	return r
}

// FromRows builds a sparse map from rows of legend runes, row 0 at y 0.
// Runes missing from the legend are an error.
func FromRows(rows []string, legend map[rune]terrain.Type, def terrain.Type) (*Sparse, error) {
	s := NewSparse(def)
	for y, row := range rows {
		x := 0
		for _, r := range row {
			t, ok := legend[r]
			if !ok {
				return nil, fmt.Errorf("ground: row %d col %d: unknown tile %q", y, x, r)
			}
			s.Set(x, y, t)
			x++
		}
	}
	return s, nil
}
