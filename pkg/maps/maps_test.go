package maps

import (
	"testing"

	"github.com/rywk/dualgrid/pkg/terrain"
	"github.com/stretchr/testify/require"
)

func TestIslandDeterministic(t *testing.T) {
	p := Params{Seed: 42, Width: 48, Height: 40}
	a, err := Island(p)
	require.NoError(t, err)
	b, err := Island(p)
	require.NoError(t, err)
	for y := 0; y < p.Height; y++ {
		for x := 0; x < p.Width; x++ {
			require.Equal(t, a.TerrainAt(x, y), b.TerrainAt(x, y))
		}
	}
}

func TestIslandBorderIsSea(t *testing.T) {
	p := Params{Seed: 7, Width: 32, Height: 32}
	g, err := Island(p)
	require.NoError(t, err)
	for i := 0; i < p.Width; i++ {
		require.Equal(t, terrain.Sea, g.TerrainAt(i, 0))
		require.Equal(t, terrain.Sea, g.TerrainAt(i, p.Height-1))
		require.Equal(t, terrain.Sea, g.TerrainAt(0, i))
		require.Equal(t, terrain.Sea, g.TerrainAt(p.Width-1, i))
	}
}

// Every tile, including the last row and column of a size that is not a
// multiple of 3, holds what the generator picked for it.
func TestIslandKeepsEveryTile(t *testing.T) {
	p := Params{Seed: 11, Width: 100, Height: 47, Scale: 12}
	g, err := Island(p)
	require.NoError(t, err)
	for y := 0; y < p.Height; y++ {
		for x := 0; x < p.Width; x++ {
			require.Equal(t, classify(p, x, y), g.TerrainAt(x, y), "(%d, %d)", x, y)
		}
	}
}

func TestIslandTooLarge(t *testing.T) {
	_, err := Island(Params{Width: 40000, Height: 10})
	require.Error(t, err)
}

func TestValueNoiseRange(t *testing.T) {
	for y := -20; y < 20; y++ {
		for x := -20; x < 20; x++ {
			v := valueNoise(3, float64(x)/7, float64(y)/5)
			require.GreaterOrEqual(t, v, 0.0)
			require.Less(t, v, 1.0)
		}
	}
}

func TestValueNoiseHitsLattice(t *testing.T) {
	require.Equal(t, lattice(9, 3, -2), valueNoise(9, 3, -2))
}
