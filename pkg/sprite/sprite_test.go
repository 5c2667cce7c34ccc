package sprite_test

import (
	"image"
	"testing"

	"github.com/rywk/dualgrid/pkg/autotile"
	"github.com/rywk/dualgrid/pkg/sprite"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/math/f64"
)

func TestQuadrant(t *testing.T) {
	require.Equal(t, image.Rect(0, 0, 16, 16), sprite.Quadrant(autotile.TopLeft, 32))
	require.Equal(t, image.Rect(16, 0, 32, 16), sprite.Quadrant(autotile.TopRight, 32))
	require.Equal(t, image.Rect(0, 16, 16, 32), sprite.Quadrant(autotile.BottomLeft, 32))
	require.Equal(t, image.Rect(16, 16, 32, 32), sprite.Quadrant(autotile.BottomRight, 32))
}

func TestMirror(t *testing.T) {
	require.Equal(t, autotile.TopRight, sprite.Mirror(autotile.TopLeft, true, false))
	require.Equal(t, autotile.BottomLeft, sprite.Mirror(autotile.TopLeft, false, true))
	require.Equal(t, autotile.BottomRight, sprite.Mirror(autotile.TopLeft, true, true))
	require.Equal(t, autotile.BottomRight, sprite.Mirror(autotile.BottomRight, false, false))
}

func TestStepsWholeCell(t *testing.T) {
	l := autotile.Layer{Source: image.Rect(32, 64, 64, 96)}
	steps := sprite.Steps(l, f64.Vec2{100, 200}, 32)
	require.Len(t, steps, 1)
	require.Equal(t, l.Source, steps[0].Src)
	require.Equal(t, f64.Vec2{100, 200}, sprite.Apply(steps[0].Geo, f64.Vec2{0, 0}))
	require.Equal(t, f64.Vec2{132, 232}, sprite.Apply(steps[0].Geo, f64.Vec2{32, 32}))
}

func TestStepsFlipped(t *testing.T) {
	l := autotile.Layer{Source: image.Rect(0, 96, 32, 128), FlipH: true}
	steps := sprite.Steps(l, f64.Vec2{10, 20}, 32)
	require.Len(t, steps, 1)
	// The source's left edge lands on the cell's right edge.
	require.Equal(t, f64.Vec2{42, 20}, sprite.Apply(steps[0].Geo, f64.Vec2{0, 0}))
	require.Equal(t, f64.Vec2{10, 52}, sprite.Apply(steps[0].Geo, f64.Vec2{32, 32}))
}

func TestStepsClipped(t *testing.T) {
	l := autotile.Layer{
		Source: image.Rect(64, 0, 96, 32),
		Clip:   []autotile.Corner{autotile.BottomLeft, autotile.BottomRight},
	}
	steps := sprite.Steps(l, f64.Vec2{0, 0}, 32)
	require.Len(t, steps, 2)
	require.Equal(t, image.Rect(64, 16, 80, 32), steps[0].Src)
	require.Equal(t, f64.Vec2{0, 16}, sprite.Apply(steps[0].Geo, f64.Vec2{0, 0}))
	require.Equal(t, image.Rect(80, 16, 96, 32), steps[1].Src)
	require.Equal(t, f64.Vec2{16, 16}, sprite.Apply(steps[1].Geo, f64.Vec2{0, 0}))
}

func TestStepsClippedFlipped(t *testing.T) {
	l := autotile.Layer{
		Source: image.Rect(0, 0, 32, 32),
		Clip:   []autotile.Corner{autotile.TopLeft},
		FlipH:  true,
	}
	steps := sprite.Steps(l, f64.Vec2{0, 0}, 32)
	require.Len(t, steps, 1)
	// Destination TL shows the mirrored source TR.
	require.Equal(t, image.Rect(16, 0, 32, 16), steps[0].Src)
	require.Equal(t, f64.Vec2{16, 0}, sprite.Apply(steps[0].Geo, f64.Vec2{0, 0}))
	require.Equal(t, f64.Vec2{0, 16}, sprite.Apply(steps[0].Geo, f64.Vec2{16, 16}))
}

func TestSheetSize(t *testing.T) {
	require.Equal(t, image.Pt(128, 160), sprite.SheetSize(32))
	require.Equal(t, image.Pt(64, 80), sprite.SheetSize(16))
}
