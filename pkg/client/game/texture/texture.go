package texture

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

type T interface {
	Draw(*ebiten.Image, *ebiten.DrawImageOptions)
}

// Texture is one rectangle of a loaded image.
type Texture struct {
	i *ebiten.Image
}

func NewTexture(img *ebiten.Image, r image.Rectangle) *Texture {
	return &Texture{i: img.SubImage(r).(*ebiten.Image)}
}

func (t *Texture) Draw(screen *ebiten.Image, options *ebiten.DrawImageOptions) {
	screen.DrawImage(t.i, options)
}

// NewSolid is a size x size tile of one color, used for terrains no
// sheet has an interior for.
func NewSolid(c color.Color, size int) *Texture {
	img := ebiten.NewImage(size, size)
	img.Fill(c)
	return &Texture{i: img}
}
