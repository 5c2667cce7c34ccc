package mapfile_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/rywk/dualgrid/pkg/ground"
	"github.com/rywk/dualgrid/pkg/mapfile"
	"github.com/rywk/dualgrid/pkg/terrain"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"
)

func sample(t *testing.T) *mapfile.Map {
	t.Helper()
	s, err := ground.FromRows([]string{
		"~~s..",
		"~s..F",
		"s..FF",
	}, map[rune]terrain.Type{
		'~': terrain.Sea,
		's': terrain.Beach,
		'.': terrain.Grass,
		'F': terrain.Forest,
	}, terrain.Grass)
	require.NoError(t, err)
	return mapfile.FromSource(s, 5, 3, terrain.Grass)
}

func TestEncodeDecode(t *testing.T) {
	m := sample(t)
	require.Len(t, m.Palette, 4)

	var buf bytes.Buffer
	require.NoError(t, mapfile.Encode(&buf, m))
	got, err := mapfile.Decode(&buf)
	require.NoError(t, err)
	require.Equal(t, m, got)
	require.Equal(t, terrain.Forest, got.TerrainAt(4, 1))
	require.Equal(t, terrain.Grass, got.TerrainAt(9, 9))
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "world.map")
	m := sample(t)
	require.NoError(t, mapfile.Save(path, m))
	got, err := mapfile.Load(path)
	require.NoError(t, err)
	require.Equal(t, m, got)

	_, err = mapfile.Load(filepath.Join(t.TempDir(), "missing.map"))
	require.Error(t, err)
}

func TestGrid(t *testing.T) {
	g, err := sample(t).Grid()
	require.NoError(t, err)
	require.Equal(t, terrain.Sea, g.TerrainAt(0, 0))
	require.Equal(t, terrain.Beach, g.TerrainAt(0, 2))
	require.Equal(t, terrain.Grass, g.TerrainAt(2, 2))
}

// Sizes that are not a multiple of 3 keep their last row and column.
func TestGridKeepsEdges(t *testing.T) {
	m := &mapfile.Map{
		Width: 4, Height: 4, Default: terrain.Grass,
		Palette: []terrain.Type{terrain.Grass, terrain.Sea},
		Cells:   make([]uint32, 16),
	}
	m.Cells[15] = 1
	g, err := m.Grid()
	require.NoError(t, err)
	require.Equal(t, terrain.Sea, g.TerrainAt(3, 3))
}

func TestDimensionTooLarge(t *testing.T) {
	var b []byte
	b = protowire.AppendTag(b, 1, protowire.VarintType)
	b = protowire.AppendVarint(b, ground.MaxSize+1)
	_, err := mapfile.Unmarshal(b)
	require.ErrorIs(t, err, mapfile.ErrMalformed)

	big := &mapfile.Map{Width: ground.MaxSize + 1}
	_, err = big.Grid()
	require.ErrorIs(t, err, mapfile.ErrMalformed)
}

func TestUnknownFieldsSkipped(t *testing.T) {
	b, err := sample(t).Marshal()
	require.NoError(t, err)
	b = protowire.AppendTag(b, 99, protowire.BytesType)
	b = protowire.AppendString(b, "from the future")
	m, err := mapfile.Unmarshal(b)
	require.NoError(t, err)
	require.Equal(t, 5, m.Width)
}

func TestMalformed(t *testing.T) {
	b, err := sample(t).Marshal()
	require.NoError(t, err)

	_, err = mapfile.Unmarshal(b[:len(b)-3])
	require.ErrorIs(t, err, mapfile.ErrMalformed)

	bad := &mapfile.Map{Width: 2, Height: 1, Palette: []terrain.Type{terrain.Grass}, Cells: []uint32{0, 1}}
	_, err = bad.Marshal()
	require.ErrorIs(t, err, mapfile.ErrMalformed)

	short := &mapfile.Map{Width: 2, Height: 2, Palette: []terrain.Type{terrain.Grass}, Cells: []uint32{0}}
	_, err = short.Marshal()
	require.ErrorIs(t, err, mapfile.ErrMalformed)
}
