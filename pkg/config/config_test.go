package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rywk/dualgrid/pkg/autotile"
	"github.com/rywk/dualgrid/pkg/terrain"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "client.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func clearLogEnv(t *testing.T) {
	for _, key := range []string{"LOG_LEVEL", "LOG_CONSOLE_FORMAT", "LOG_FILE_ENABLED", "LOG_FILE_PATH"} {
		t.Setenv(key, "")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.Equal(t, 4, cfg.Render.Workers)
	require.Equal(t, "INFO", cfg.Logging.Level)
	require.Empty(t, cfg.Tiles.Validate())

	reg, err := cfg.Tiles.Registry()
	require.NoError(t, err)
	require.Equal(t, len(cfg.Tiles.Transitions), reg.Len())

	tab := cfg.Tiles.Table()
	def := terrain.Default()
	for _, ty := range def.Types() {
		require.Equal(t, def.Rank(ty), tab.Rank(ty), ty)
	}
	require.Equal(t, terrain.Dirt, tab.Canonical(terrain.Tilled))
}

func TestDefaultTilesContainReversedSheets(t *testing.T) {
	reg, err := DefaultConfig().Tiles.Registry()
	require.NoError(t, err)

	_, reversed, ok := reg.Lookup(terrain.Beach, terrain.HotSpringWater)
	require.True(t, ok)
	require.True(t, reversed)

	ts, reversed, ok := reg.Lookup(terrain.Grass, terrain.Beach)
	require.True(t, ok)
	require.False(t, reversed)
	require.Equal(t, "tilesets/Grass_Beach.png", ts.Path)
}

func TestLoadConfigMissingFile(t *testing.T) {
	clearLogEnv(t)
	cfg, err := LoadConfig("/nonexistent/path/client.yaml")
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigValidFile(t *testing.T) {
	clearLogEnv(t)
	path := writeConfig(t, `
logging:
  level: DEBUG
tiles:
  default_rank: 3
  terrains:
    - {name: Sea, rank: 0}
    - {name: Grass, rank: 7}
  aliases:
    Mud: Sea
  transitions:
    - {primary: Grass, secondary: Sea, path: grass_sea.png}
render:
  workers: 0
  scale: 2
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "DEBUG", cfg.Logging.Level)
	require.Equal(t, 1, cfg.Render.Workers)
	require.Equal(t, 2.0, cfg.Render.Scale)
	require.Len(t, cfg.Tiles.Terrains, 2)

	tab := cfg.Tiles.Table()
	require.Equal(t, 3, tab.Rank(terrain.Forest))
	require.Equal(t, terrain.Sea, tab.Canonical("Mud"))
	// Aliases merge into the defaults.
	require.Equal(t, terrain.Dirt, tab.Canonical(terrain.Tilled))

	reg, err := cfg.Tiles.Registry()
	require.NoError(t, err)
	require.Equal(t, 1, reg.Len())
	ts, _, ok := reg.Lookup(terrain.Grass, terrain.Sea)
	require.True(t, ok)
	require.Equal(t, "Grass_Sea", ts.Name)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	clearLogEnv(t)
	t.Setenv("LOG_LEVEL", "ERROR")
	cfg, err := LoadConfig(writeConfig(t, "logging:\n  level: DEBUG\n"))
	require.NoError(t, err)
	require.Equal(t, "ERROR", cfg.Logging.Level)
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "tiles: [unclosed"))
	require.Error(t, err)
}

func TestRegistryDuplicate(t *testing.T) {
	tc := TilesConfig{Transitions: []TransitionConfig{
		{Primary: "Grass", Secondary: "Sea", Path: "a.png"},
		{Primary: "Sea", Secondary: "Grass", Path: "b.png"},
	}}
	_, err := tc.Registry()
	require.ErrorIs(t, err, autotile.ErrDuplicatePair)

	_, err = tc.Resolver()
	require.ErrorIs(t, err, autotile.ErrDuplicatePair)
}

func TestRegistrySelfPair(t *testing.T) {
	tc := TilesConfig{Transitions: []TransitionConfig{{Primary: "Sea", Secondary: "Sea"}}}
	_, err := tc.Registry()
	require.ErrorIs(t, err, autotile.ErrSelfPair)
}

func TestValidate(t *testing.T) {
	tc := TilesConfig{
		DefaultRank: 5,
		Terrains:    []TerrainConfig{{Name: "Grass", Rank: 7}},
		Aliases:     map[string]string{"Mud": "Swamp"},
		Transitions: []TransitionConfig{
			{Primary: "Grass", Secondary: "Lava", Path: "a.png"},
			{Primary: "Lava", Secondary: "Grass"},
		},
	}
	warnings := tc.Validate()
	require.Equal(t, []string{
		`transition 0: terrain "Lava" has no rank, using 5`,
		"transition 1: no tileset path",
		`alias Mud: terrain "Swamp" has no rank, using 5`,
	}, warnings)
}
