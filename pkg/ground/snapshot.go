package ground

import (
	"github.com/rywk/dualgrid/pkg/terrain"
	"github.com/rywk/dualgrid/pkg/typ"
)

// Frozen is an immutable copy of part of a world, safe for any number of
// concurrent readers.
type Frozen struct {
	rect  typ.Rect
	def   terrain.Type
	tiles []terrain.Type
}

// Snapshot copies r from src. Reads outside r return def.
func Snapshot(src Source, r typ.Rect, def terrain.Type) *Frozen {
	f := &Frozen{rect: r, def: def, tiles: make([]terrain.Type, r.W()*r.H())}
	i := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			f.tiles[i] = src.TerrainAt(x, y)
			i++
		}
	}
	return f
}

func (f *Frozen) TerrainAt(x, y int) terrain.Type {
	p := typ.P{X: x, Y: y}
	if !p.In(f.rect) {
		return f.def
	}
	return f.tiles[(y-f.rect.Min.Y)*f.rect.W()+x-f.rect.Min.X]
}

func (f *Frozen) Rect() typ.Rect {
	return f.rect
}
