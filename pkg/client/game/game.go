package game

import (
	"context"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/rywk/dualgrid/pkg/constants"
	"github.com/rywk/dualgrid/pkg/logger"
	"github.com/rywk/dualgrid/pkg/typ"
)

var background = color.RGBA{0x10, 0x10, 0x14, 0xff}

type Config struct {
	Map   MapConfig
	Keys  *KeyConfig
	Scale float64
	// World bounds the camera, in tiles. Zero means unbounded.
	World typ.Rect
	Start typ.P
}

// Game is a terrain viewer. The camera pans over the world one tile at
// a time and the ground under it is resolved in the background.
type Game struct {
	cfg        Config
	ground     *Ground
	keys       *Keys
	cam        typ.P
	debug      bool
	worldImgOp *ebiten.DrawImageOptions
}

func NewGame(cfg Config) (*Game, error) {
	if cfg.Scale <= 0 {
		cfg.Scale = 1
	}
	g := &Game{
		cfg:        cfg,
		ground:     NewGround(cfg.Map),
		keys:       NewKeys(cfg.Keys),
		cam:        cfg.Start,
		worldImgOp: &ebiten.DrawImageOptions{},
	}
	g.worldImgOp.GeoM.Scale(cfg.Scale, cfg.Scale)
	// The first frame waits for its ground.
	if err := g.ground.Resolve(context.Background(), g.view()); err != nil {
		return nil, err
	}
	logger.Info("viewer ready", "camera", fmt.Sprintf("%d,%d", g.cam.X, g.cam.Y), "cells", len(g.ground.Placements()))
	return g, nil
}

func (g *Game) ScreenSize() (int, int) {
	w := float64(g.cfg.Map.ViewWidth*constants.TileSize) * g.cfg.Scale
	h := float64(g.cfg.Map.ViewHeight*constants.TileSize) * g.cfg.Scale
	return int(w), int(h)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.ScreenSize()
}

func (g *Game) view() typ.Rect {
	return typ.Around(g.cam, g.cfg.Map.ViewWidth, g.cfg.Map.ViewHeight)
}

func (g *Game) clamp(p typ.P) typ.P {
	w := g.cfg.World
	if w.W() <= 0 || w.H() <= 0 {
		return p
	}
	p.X = max(w.Min.X, min(p.X, w.Max.X-1))
	p.Y = max(w.Min.Y, min(p.Y, w.Max.Y-1))
	return p
}

func (g *Game) Update() error {
	if g.keys.ToggleDebug() {
		g.debug = !g.debug
	}
	if d := g.keys.Pan(); d != (typ.P{}) {
		g.cam = g.clamp(g.cam.Add(d.X, d.Y))
		g.ground.Request(g.view())
	}
	g.ground.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	g.ground.Draw()
	screen.DrawImage(g.ground.Image(), g.worldImgOp)
	if !g.debug {
		return
	}
	layers := 0
	for _, p := range g.ground.Placements() {
		layers += len(p.Layers)
	}
	msg := fmt.Sprintf(`TPS: %0.2f
camera: %d,%d
cells: %d
layers: %d`,
		ebiten.ActualTPS(),
		g.cam.X, g.cam.Y,
		len(g.ground.Placements()),
		layers,
	)
	ebitenutil.DebugPrintAt(screen, msg, 8, 8)
}
