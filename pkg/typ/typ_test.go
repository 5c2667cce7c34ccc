package typ_test

import (
	"image"
	"testing"

	"github.com/rywk/dualgrid/pkg/typ"
	"github.com/stretchr/testify/require"
)

func TestRect(t *testing.T) {
	r := typ.R(4, 5, 1, 2)
	require.Equal(t, typ.P{X: 1, Y: 2}, r.Min)
	require.Equal(t, 3, r.W())
	require.Equal(t, 3, r.H())
	require.True(t, typ.P{X: 1, Y: 2}.In(r))
	require.False(t, typ.P{X: 4, Y: 2}.In(r))
	require.Equal(t, typ.R(0, 1, 5, 6), r.Grow(1))
	require.Equal(t, image.Rect(1, 2, 4, 5), r.Image())
	require.Equal(t, r, typ.FromImage(r.Image()))
}

func TestAround(t *testing.T) {
	r := typ.Around(typ.P{X: 10, Y: 10}, 5, 3)
	require.Equal(t, typ.R(8, 9, 13, 12), r)
	require.Equal(t, typ.R(9, 10, 14, 13), r.Move(typ.P{X: 1, Y: 1}))
}
