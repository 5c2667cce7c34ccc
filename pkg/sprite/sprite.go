// Package sprite maps autotile layers to sprite-sheet draw steps.
// It knows nothing about the graphics backend so the geometry can be
// checked without a GPU.
package sprite

import (
	"image"

	"github.com/rywk/dualgrid/pkg/autotile"
	"golang.org/x/image/math/f64"
)

// Step draws Src with its top-left corner at the origin of Geo.
// Geo is the row-major 2x3 affine matrix [a b c; d e f].
type Step struct {
	Src image.Rectangle
	Geo f64.Aff3
}

// Quadrant is the part of a size x size cell owned by a corner.
func Quadrant(c autotile.Corner, size int) image.Rectangle {
	h := size / 2
	switch c {
	case autotile.TopRight:
		return image.Rect(h, 0, size, h)
	case autotile.BottomLeft:
		return image.Rect(0, h, h, size)
	case autotile.BottomRight:
		return image.Rect(h, h, size, size)
	}
	return image.Rect(0, 0, h, h)
}

// Mirror returns the corner a corner lands on after flipping.
func Mirror(c autotile.Corner, flipH, flipV bool) autotile.Corner {
	if flipH {
		switch c {
		case autotile.TopLeft:
			c = autotile.TopRight
		case autotile.TopRight:
			c = autotile.TopLeft
		case autotile.BottomLeft:
			c = autotile.BottomRight
		case autotile.BottomRight:
			c = autotile.BottomLeft
		}
	}
	if flipV {
		switch c {
		case autotile.TopLeft:
			c = autotile.BottomLeft
		case autotile.BottomLeft:
			c = autotile.TopLeft
		case autotile.TopRight:
			c = autotile.BottomRight
		case autotile.BottomRight:
			c = autotile.TopRight
		}
	}
	return c
}

// Steps paints a layer whose cell has its top-left at dst. Clipped layers
// get one step per clip corner. The clip corners name destination
// quadrants, so a mirrored layer reads each one from the opposite source
// quadrant.
func Steps(l autotile.Layer, dst f64.Vec2, size int) []Step {
	if !l.Clipped() {
		src := l.Source
		return []Step{{Src: src, Geo: place(dst, src.Dx(), src.Dy(), l.FlipH, l.FlipV)}}
	}
	steps := make([]Step, 0, len(l.Clip))
	for _, c := range l.Clip {
		q := Quadrant(c, size)
		src := Quadrant(Mirror(c, l.FlipH, l.FlipV), size).Add(l.Source.Min)
		at := f64.Vec2{dst[0] + float64(q.Min.X), dst[1] + float64(q.Min.Y)}
		steps = append(steps, Step{Src: src, Geo: place(at, q.Dx(), q.Dy(), l.FlipH, l.FlipV)})
	}
	return steps
}

// place puts a w x h image at dst, flipped inside its own box.
func place(dst f64.Vec2, w, h int, flipH, flipV bool) f64.Aff3 {
	a, tx := 1.0, dst[0]
	e, ty := 1.0, dst[1]
	if flipH {
		a, tx = -1, tx+float64(w)
	}
	if flipV {
		e, ty = -1, ty+float64(h)
	}
	return f64.Aff3{a, 0, tx, 0, e, ty}
}

// Apply maps a point through an affine matrix.
func Apply(m f64.Aff3, p f64.Vec2) f64.Vec2 {
	return f64.Vec2{
		m[0]*p[0] + m[1]*p[1] + m[2],
		m[3]*p[0] + m[4]*p[1] + m[5],
	}
}

// SheetSize is the pixel size of a transition sheet with size x size cells.
func SheetSize(size int) image.Point {
	return image.Pt(autotile.TilesetCols*size, autotile.TilesetRows*size)
}
