package config

import (
	"fmt"
	"os"
	"sort"

	"github.com/rywk/dualgrid/pkg/autotile"
	"github.com/rywk/dualgrid/pkg/constants"
	"github.com/rywk/dualgrid/pkg/logger"
	"github.com/rywk/dualgrid/pkg/terrain"
	"gopkg.in/yaml.v3"
)

// Config is the client configuration file.
type Config struct {
	Logging logger.Config `yaml:"logging"`
	Tiles   TilesConfig   `yaml:"tiles"`
	Render  RenderConfig  `yaml:"render"`
}

// TilesConfig describes terrain priorities and the transition art.
type TilesConfig struct {
	// DefaultRank is used for terrains missing from Terrains.
	DefaultRank int                `yaml:"default_rank"`
	Terrains    []TerrainConfig    `yaml:"terrains"`
	Aliases     map[string]string  `yaml:"aliases"`
	Transitions []TransitionConfig `yaml:"transitions"`
}

type TerrainConfig struct {
	Name string `yaml:"name"`
	Rank int    `yaml:"rank"`
}

// TransitionConfig registers a sheet drawn with Primary over Secondary.
type TransitionConfig struct {
	Primary   string `yaml:"primary"`
	Secondary string `yaml:"secondary"`
	Name      string `yaml:"name"`
	Path      string `yaml:"path"`
}

// RenderConfig holds viewer settings.
type RenderConfig struct {
	// Workers resolving rows of the view in parallel.
	Workers    int     `yaml:"workers"`
	ViewWidth  int     `yaml:"view_width"`
	ViewHeight int     `yaml:"view_height"`
	Scale      float64 `yaml:"scale"`
	// TilesetDir is prepended to relative transition and base paths.
	TilesetDir string `yaml:"tileset_dir"`
	// MapPath is the map file to view. Empty generates an island from Seed.
	MapPath string `yaml:"map_path"`
	Seed    uint64 `yaml:"seed"`
}

func DefaultConfig() *Config {
	return &Config{
		Logging: logger.DefaultConfig(),
		Tiles:   DefaultTiles(),
		Render: RenderConfig{
			Workers:    4,
			ViewWidth:  constants.GridViewportX,
			ViewHeight: constants.GridViewportY,
			Scale:      1,
			TilesetDir: "assets",
			Seed:       1,
		},
	}
}

// DefaultTiles mirrors terrain.Default and lists the authored sheets.
func DefaultTiles() TilesConfig {
	tab := terrain.Default()
	tc := TilesConfig{
		DefaultRank: tab.DefaultRank(),
		Aliases:     map[string]string{string(terrain.Tilled): string(terrain.Dirt)},
	}
	for _, t := range tab.Types() {
		tc.Terrains = append(tc.Terrains, TerrainConfig{Name: string(t), Rank: tab.Rank(t)})
	}
	for _, p := range []autotile.Pair{
		{Primary: terrain.Beach, Secondary: terrain.Sea},
		{Primary: terrain.HotSpringWater, Secondary: terrain.Beach},
		{Primary: terrain.Grass, Secondary: terrain.Beach},
		{Primary: terrain.Grass, Secondary: terrain.Quarry},
		{Primary: terrain.Grass, Secondary: terrain.Dirt},
		{Primary: terrain.Grass, Secondary: terrain.DirtRoad},
		{Primary: terrain.Asphalt, Secondary: terrain.Grass},
		{Primary: terrain.Forest, Secondary: terrain.Grass},
		{Primary: terrain.Tundra, Secondary: terrain.Grass},
		{Primary: terrain.Alpine, Secondary: terrain.Tundra},
	} {
		tc.Transitions = append(tc.Transitions, TransitionConfig{
			Primary:   string(p.Primary),
			Secondary: string(p.Secondary),
			Name:      p.String(),
			Path:      "tilesets/" + p.String() + ".png",
		})
	}
	return tc
}

// LoadConfig reads a YAML config over the defaults. A missing file is not
// an error. Logging settings honor the LOG_* environment overrides.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			config.Logging.ApplyEnv()
			return config, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if config.Render.Workers < 1 {
		config.Render.Workers = 1
	}
	if config.Render.Scale <= 0 {
		config.Render.Scale = 1
	}
	config.Logging.ApplyEnv()
	return config, nil
}

// Table builds the priority table.
func (c *TilesConfig) Table() *terrain.Table {
	ranks := make(map[terrain.Type]int, len(c.Terrains))
	for _, t := range c.Terrains {
		ranks[terrain.Type(t.Name)] = t.Rank
	}
	aliases := make(terrain.Aliases, len(c.Aliases))
	for from, to := range c.Aliases {
		aliases[terrain.Type(from)] = terrain.Type(to)
	}
	return terrain.NewTable(ranks, aliases, c.DefaultRank)
}

// Registry builds the transition registry. Duplicate or self pairs fail.
func (c *TilesConfig) Registry() (*autotile.Registry, error) {
	r := autotile.NewRegistry()
	for i, tr := range c.Transitions {
		name := tr.Name
		if name == "" {
			name = tr.Primary + "_" + tr.Secondary
		}
		err := r.Register(terrain.Type(tr.Primary), terrain.Type(tr.Secondary), autotile.Tileset{Name: name, Path: tr.Path})
		if err != nil {
			return nil, fmt.Errorf("config: transition %d: %w", i, err)
		}
	}
	return r, nil
}

// Resolver builds a resolver from the table and registry.
func (c *TilesConfig) Resolver() (*autotile.Resolver, error) {
	reg, err := c.Registry()
	if err != nil {
		return nil, err
	}
	return autotile.New(c.Table(), reg), nil
}

// Validate reports configuration smells that still load: terrains used by
// transitions or aliases without a rank fall back to the default rank.
func (c *TilesConfig) Validate() []string {
	tab := c.Table()
	var warnings []string
	seen := make(map[string]bool)
	check := func(name, where string) {
		if name == "" {
			warnings = append(warnings, fmt.Sprintf("%s: empty terrain name", where))
			return
		}
		if !tab.Known(terrain.Type(name)) && !seen[name] {
			seen[name] = true
			warnings = append(warnings, fmt.Sprintf("%s: terrain %q has no rank, using %d", where, name, c.DefaultRank))
		}
	}
	for i, tr := range c.Transitions {
		where := fmt.Sprintf("transition %d", i)
		check(tr.Primary, where)
		check(tr.Secondary, where)
		if tr.Path == "" {
			warnings = append(warnings, fmt.Sprintf("%s: no tileset path", where))
		}
	}
	aliases := make([]string, 0, len(c.Aliases))
	for from := range c.Aliases {
		aliases = append(aliases, from)
	}
	sort.Strings(aliases)
	for _, from := range aliases {
		check(c.Aliases[from], "alias "+from)
	}
	return warnings
}
