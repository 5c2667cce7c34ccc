package game

import (
	"context"
	"hash/fnv"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rywk/dualgrid/pkg/autotile"
	"github.com/rywk/dualgrid/pkg/client/game/texture"
	"github.com/rywk/dualgrid/pkg/conc"
	"github.com/rywk/dualgrid/pkg/constants"
	"github.com/rywk/dualgrid/pkg/ground"
	"github.com/rywk/dualgrid/pkg/logger"
	"github.com/rywk/dualgrid/pkg/sprite"
	"github.com/rywk/dualgrid/pkg/terrain"
	"github.com/rywk/dualgrid/pkg/typ"
	"golang.org/x/image/math/f64"
)

type MapConfig struct {
	Resolver *autotile.Resolver
	Source   ground.Source
	Default  terrain.Type
	Atlases  *texture.Cache
	Workers  int

	ViewWidth, ViewHeight int
}

// resolved is the layer set of one view, produced off the draw loop.
type resolved struct {
	view   typ.Rect
	placed []autotile.Placement
	err    error
}

// Ground draws the terrain of a view of logical tiles: base textures
// first, then the dual-grid transition layers on top.
type Ground struct {
	cfg    MapConfig
	base   map[terrain.Type]texture.T
	world  *ebiten.Image
	drawOp *ebiten.DrawImageOptions

	view    typ.Rect
	placed  []autotile.Placement
	want    typ.Rect
	results conc.Latest[resolved]
	cancel  context.CancelFunc
}

func NewGround(c MapConfig) *Ground {
	if c.Workers < 1 {
		c.Workers = 1
	}
	return &Ground{
		cfg:    c,
		base:   make(map[terrain.Type]texture.T),
		world:  ebiten.NewImage(c.ViewWidth*constants.TileSize, c.ViewHeight*constants.TileSize),
		drawOp: &ebiten.DrawImageOptions{},
	}
}

// cells is the range of dual-grid anchors whose sprites overlap view.
// A cell anchored at (x, y) is drawn centered on the corner shared by
// tiles (x, y) and (x+1, y+1).
func cells(view typ.Rect) typ.Rect {
	return typ.Rect{Min: view.Min.Add(-1, -1), Max: view.Max}
}

// Resolve computes the layers of view synchronously.
func (g *Ground) Resolve(ctx context.Context, view typ.Rect) error {
	r := g.resolve(ctx, view)
	if r.err != nil {
		return r.err
	}
	g.view, g.want, g.placed = r.view, r.view, r.placed
	return nil
}

func (g *Ground) resolve(ctx context.Context, view typ.Rect) resolved {
	area := cells(view)
	snap := ground.Snapshot(g.cfg.Source, area.Grow(constants.ResolveMargin), g.cfg.Default)
	placed, err := g.cfg.Resolver.ResolveRegion(ctx, area.Image(), snap, g.cfg.Workers)
	return resolved{view: view, placed: placed, err: err}
}

// Request starts resolving view in the background unless it is already
// shown or on its way. A newer request cancels the older one.
func (g *Ground) Request(view typ.Rect) {
	if view == g.want {
		return
	}
	if g.cancel != nil {
		g.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	g.want, g.cancel = view, cancel
	send := g.results.Next()
	go func() {
		if r := g.resolve(ctx, view); r.err == nil {
			send(r)
		}
	}()
}

// Update swaps in a finished background resolve.
func (g *Ground) Update() {
	r, ok := g.results.Check()
	if !ok || r.view != g.want {
		return
	}
	g.view, g.placed = r.view, r.placed
}

// Placements returns the layer stacks of the view being shown.
func (g *Ground) Placements() []autotile.Placement {
	return g.placed
}

// Draw renders the current view into the world image.
func (g *Ground) Draw() {
	g.world.Clear()
	for y := g.view.Min.Y; y < g.view.Max.Y; y++ {
		for x := g.view.Min.X; x < g.view.Max.X; x++ {
			g.drawOp.GeoM.Reset()
			g.drawOp.GeoM.Translate(float64((x-g.view.Min.X)*constants.TileSize), float64((y-g.view.Min.Y)*constants.TileSize))
			g.baseTexture(g.cfg.Source.TerrainAt(x, y)).Draw(g.world, g.drawOp)
		}
	}

	half := float64(constants.TileSize / 2)
	for _, p := range g.placed {
		at := f64.Vec2{
			float64((p.X-g.view.Min.X)*constants.TileSize) + half,
			float64((p.Y-g.view.Min.Y)*constants.TileSize) + half,
		}
		for _, l := range p.Layers {
			atlas, err := g.cfg.Atlases.Load(l.Tileset)
			if err != nil {
				continue
			}
			for _, s := range sprite.Steps(l, at, constants.TileSize) {
				setGeoM(&g.drawOp.GeoM, s.Geo)
				g.world.DrawImage(atlas.Sub(s.Src), g.drawOp)
			}
		}
	}
}

func (g *Ground) Image() *ebiten.Image {
	return g.world
}

func setGeoM(m *ebiten.GeoM, a f64.Aff3) {
	m.Reset()
	m.SetElement(0, 0, a[0])
	m.SetElement(0, 1, a[1])
	m.SetElement(0, 2, a[2])
	m.SetElement(1, 0, a[3])
	m.SetElement(1, 1, a[4])
	m.SetElement(1, 2, a[5])
}

// baseTexture is the interior fill of the first sheet that has t on
// either side, or a flat color when no sheet does.
func (g *Ground) baseTexture(t terrain.Type) texture.T {
	t = g.cfg.Resolver.Table().Canonical(t)
	if tex, ok := g.base[t]; ok {
		return tex
	}
	var tex texture.T
	reg := g.cfg.Resolver.Registry()
	for _, p := range reg.Pairs() {
		cell := autotile.PrimaryInterior
		switch t {
		case p.Primary:
		case p.Secondary:
			cell = autotile.SecondaryInterior
		default:
			continue
		}
		ts, _, _ := reg.Lookup(p.Primary, p.Secondary)
		atlas, err := g.cfg.Atlases.Load(ts)
		if err != nil {
			continue
		}
		tex = atlas.Cell(cell)
		break
	}
	if tex == nil {
		logger.Debug("no interior art, using flat color", "terrain", t)
		tex = texture.NewSolid(terrainColor(t), constants.TileSize)
	}
	g.base[t] = tex
	return tex
}

var terrainColors = map[terrain.Type]color.RGBA{
	terrain.Sea:            {0x1e, 0x4d, 0x8c, 0xff},
	terrain.HotSpringWater: {0x5f, 0xb8, 0xc4, 0xff},
	terrain.Beach:          {0xe3, 0xd0, 0x8f, 0xff},
	terrain.Quarry:         {0x8a, 0x84, 0x7a, 0xff},
	terrain.Dirt:           {0x7a, 0x55, 0x33, 0xff},
	terrain.DirtRoad:       {0x96, 0x72, 0x4c, 0xff},
	terrain.Asphalt:        {0x3b, 0x3b, 0x40, 0xff},
	terrain.Grass:          {0x4c, 0x8f, 0x3a, 0xff},
	terrain.Tundra:         {0xa8, 0xb0, 0x9a, 0xff},
	terrain.Alpine:         {0xe8, 0xee, 0xf2, 0xff},
	terrain.Forest:         {0x25, 0x5c, 0x2a, 0xff},
}

func terrainColor(t terrain.Type) color.RGBA {
	if c, ok := terrainColors[t]; ok {
		return c
	}
	h := fnv.New32a()
	h.Write([]byte(t))
	v := h.Sum32()
	return color.RGBA{uint8(v), uint8(v >> 8), uint8(v >> 16), 0xff}
}
