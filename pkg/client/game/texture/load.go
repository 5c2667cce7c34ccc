package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"io/fs"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rywk/dualgrid/pkg/autotile"
	"github.com/rywk/dualgrid/pkg/constants"
	"github.com/rywk/dualgrid/pkg/logger"
	"github.com/rywk/dualgrid/pkg/sprite"
)

var ErrBadAtlas = errors.New("texture: bad atlas")

// Decode reads a transition sheet and checks it holds exactly the
// TilesetCols x TilesetRows grid of size pixel cells.
func Decode(bs []byte, size int) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(bs))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadAtlas, err)
	}
	want, got := sprite.SheetSize(size), img.Bounds().Size()
	if got != want {
		return nil, fmt.Errorf("%w: sheet is %dx%d, want %dx%d", ErrBadAtlas, got.X, got.Y, want.X, want.Y)
	}
	return img, nil
}

// Atlas is a loaded transition sheet.
type Atlas struct {
	Tileset autotile.Tileset
	img     *ebiten.Image
}

// Sub returns the part of the sheet inside r.
func (a *Atlas) Sub(r image.Rectangle) *ebiten.Image {
	return a.img.SubImage(r).(*ebiten.Image)
}

// Cell is a single sheet cell as a drawable texture.
func (a *Atlas) Cell(c autotile.Cell) T {
	return NewTexture(a.img, c.Source(constants.TileSize))
}

// Cache loads each sheet once, keyed by path. Failed loads are
// remembered too so a broken file is read and logged a single time.
type Cache struct {
	fsys   fs.FS
	mu     sync.Mutex
	loaded map[string]*Atlas
	failed map[string]error
}

func NewCache(fsys fs.FS) *Cache {
	return &Cache{
		fsys:   fsys,
		loaded: make(map[string]*Atlas),
		failed: make(map[string]error),
	}
}

func (c *Cache) Load(ts autotile.Tileset) (*Atlas, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if a, ok := c.loaded[ts.Path]; ok {
		return a, nil
	}
	if err, ok := c.failed[ts.Path]; ok {
		return nil, err
	}
	a, err := c.load(ts)
	if err != nil {
		logger.Warning("tileset unavailable", "tileset", ts.Name, "path", ts.Path, "error", err)
		c.failed[ts.Path] = err
		return nil, err
	}
	logger.Debug("tileset loaded", "tileset", ts.Name, "path", ts.Path)
	c.loaded[ts.Path] = a
	return a, nil
}

func (c *Cache) load(ts autotile.Tileset) (*Atlas, error) {
	bs, err := fs.ReadFile(c.fsys, ts.Path)
	if err != nil {
		return nil, fmt.Errorf("texture: %s: %w", ts.Name, err)
	}
	img, err := Decode(bs, constants.TileSize)
	if err != nil {
		return nil, fmt.Errorf("texture: %s: %w", ts.Name, err)
	}
	return &Atlas{Tileset: ts, img: ebiten.NewImageFromImage(img)}, nil
}

// Preload loads every sheet in the registry and returns how many failed.
func (c *Cache) Preload(reg *autotile.Registry) int {
	failed := 0
	for _, ts := range reg.Tilesets() {
		if _, err := c.Load(ts); err != nil {
			failed++
		}
	}
	return failed
}
