package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rywk/dualgrid/pkg/typ"
)

type KeyConfig struct {
	Up    ebiten.Key
	Down  ebiten.Key
	Left  ebiten.Key
	Right ebiten.Key
	Debug ebiten.Key
}

var DefaultKeyConfig = KeyConfig{
	Up:    ebiten.KeyArrowUp,
	Down:  ebiten.KeyArrowDown,
	Left:  ebiten.KeyArrowLeft,
	Right: ebiten.KeyArrowRight,
	Debug: ebiten.KeyF3,
}

// Ticks a pan key is held before it starts repeating, then between repeats.
const (
	panDelay  = 15
	panRepeat = 3
)

type Keys struct {
	cfg *KeyConfig
}

func NewKeys(cfg *KeyConfig) *Keys {
	if cfg == nil {
		cfg = &DefaultKeyConfig
	}
	return &Keys{cfg: cfg}
}

func repeating(k ebiten.Key) bool {
	d := inpututil.KeyPressDuration(k)
	return d == 1 || (d >= panDelay && (d-panDelay)%panRepeat == 0)
}

// Pan returns the camera step for this tick, in tiles.
func (k *Keys) Pan() typ.P {
	var p typ.P
	if repeating(k.cfg.Up) {
		p.Y--
	}
	if repeating(k.cfg.Down) {
		p.Y++
	}
	if repeating(k.cfg.Left) {
		p.X--
	}
	if repeating(k.cfg.Right) {
		p.X++
	}
	return p
}

func (k *Keys) ToggleDebug() bool {
	return inpututil.IsKeyJustPressed(k.cfg.Debug)
}
