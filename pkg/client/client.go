package client

import (
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rywk/dualgrid/pkg/client/game"
	"github.com/rywk/dualgrid/pkg/client/game/texture"
	"github.com/rywk/dualgrid/pkg/config"
	"github.com/rywk/dualgrid/pkg/constants"
	"github.com/rywk/dualgrid/pkg/ground"
	"github.com/rywk/dualgrid/pkg/logger"
	"github.com/rywk/dualgrid/pkg/mapfile"
	"github.com/rywk/dualgrid/pkg/maps"
	"github.com/rywk/dualgrid/pkg/typ"
)

// Run opens the viewer window on the configured map and blocks until it
// is closed.
func Run(cfg *config.Config) error {
	for _, w := range cfg.Tiles.Validate() {
		logger.Warning("tiles config", "warning", w)
	}
	resolver, err := cfg.Tiles.Resolver()
	if err != nil {
		return err
	}
	world, err := loadWorld(cfg.Render)
	if err != nil {
		return err
	}
	w, h := world.Size()

	atlases := texture.NewCache(os.DirFS(cfg.Render.TilesetDir))
	if failed := atlases.Preload(resolver.Registry()); failed > 0 {
		logger.Warning("some tilesets failed to load", "failed", failed, "total", resolver.Registry().Len())
	}

	g, err := game.NewGame(game.Config{
		Map: game.MapConfig{
			Resolver:   resolver,
			Source:     world,
			Default:    world.Default(),
			Atlases:    atlases,
			Workers:    cfg.Render.Workers,
			ViewWidth:  cfg.Render.ViewWidth,
			ViewHeight: cfg.Render.ViewHeight,
		},
		Scale: cfg.Render.Scale,
		World: typ.R(0, 0, w, h),
		Start: typ.P{X: w / 2, Y: h / 2},
	})
	if err != nil {
		return err
	}
	ebiten.SetWindowSize(g.ScreenSize())
	ebiten.SetWindowTitle("dualgrid")
	return ebiten.RunGame(g)
}

func loadWorld(cfg config.RenderConfig) (*ground.Grid, error) {
	if cfg.MapPath == "" {
		logger.Info("generating island", "seed", cfg.Seed, "width", constants.WorldX, "height", constants.WorldY)
		return maps.Island(maps.Params{Seed: cfg.Seed, Width: constants.WorldX, Height: constants.WorldY})
	}
	m, err := mapfile.Load(cfg.MapPath)
	if err != nil {
		return nil, err
	}
	world, err := m.Grid()
	if err != nil {
		return nil, fmt.Errorf("client: load map: %w", err)
	}
	logger.Info("map loaded", "path", cfg.MapPath, "width", m.Width, "height", m.Height, "terrains", len(m.Palette))
	return world, nil
}
