package autotile

import (
	"fmt"
	"image"

	"github.com/rywk/dualgrid/pkg/constants"
)

// Corner is one of the four logical tiles a dual-grid cell straddles.
// The values are the corner's bit in a Pattern.
type Corner uint8

const (
	BottomRight Corner = 1 << iota
	BottomLeft
	TopRight
	TopLeft
)

// Corners in sampling order.
var Corners = [4]Corner{TopLeft, TopRight, BottomLeft, BottomRight}

func (c Corner) String() string {
	switch c {
	case TopLeft:
		return "TL"
	case TopRight:
		return "TR"
	case BottomLeft:
		return "BL"
	case BottomRight:
		return "BR"
	}
	return fmt.Sprintf("Corner(%d)", uint8(c))
}

// offset of the corner's logical tile from the cell origin.
func (c Corner) offset() (int, int) {
	switch c {
	case TopRight:
		return 1, 0
	case BottomLeft:
		return 0, 1
	case BottomRight:
		return 1, 1
	}
	return 0, 0
}

// Pattern has a bit set for every corner holding the secondary terrain.
type Pattern uint8

const (
	PatternNone Pattern = 0
	PatternFull Pattern = 15

	// The two diagonal-only patterns.
	PatternTRBL Pattern = Pattern(TopRight | BottomLeft)
	PatternTLBR Pattern = Pattern(TopLeft | BottomRight)
)

func (p Pattern) Has(c Corner) bool {
	return uint8(p)&uint8(c) != 0
}

// Invert swaps which terrain the bits stand for.
func (p Pattern) Invert() Pattern {
	return PatternFull - p&PatternFull
}

func (p Pattern) Diagonal() bool {
	return p == PatternTRBL || p == PatternTLBR
}

// Degenerate patterns carry no contrast between the two terrains.
func (p Pattern) Degenerate() bool {
	return p == PatternNone || p == PatternFull
}

func (p Pattern) String() string {
	return fmt.Sprintf("%04b", uint8(p))
}

// Tilesets are a fixed grid of TilesetCols x TilesetRows cells.
const (
	TilesetCols = 4
	TilesetRows = 5
)

// Cell addresses a sprite in a tileset.
type Cell struct {
	Row, Col int
}

// Source is the pixel rectangle of the cell for a given tile size.
func (c Cell) Source(size int) image.Rectangle {
	return image.Rect(c.Col*size, c.Row*size, (c.Col+1)*size, (c.Row+1)*size)
}

// Sheet layout. Rows 0-2 and columns 0-2 are the outer ring around a
// primary island with its interior at the center, column 3 holds the
// single-corner inner cuts, row 3 the two diagonals and the all-secondary
// fill, row 4 the stand-alone interior fills.
var patternCells = [16]Cell{
	0b0000: {1, 1},
	0b0001: {3, 3},
	0b0010: {2, 3},
	0b0011: {2, 1},
	0b0100: {1, 3},
	0b0101: {1, 2},
	0b0110: {3, 0},
	0b0111: {2, 2},
	0b1000: {0, 3},
	0b1001: {3, 1},
	0b1010: {1, 0},
	0b1011: {2, 0},
	0b1100: {0, 1},
	0b1101: {0, 2},
	0b1110: {0, 0},
	0b1111: {3, 2},
}

var (
	PrimaryInterior   = Cell{4, 0}
	SecondaryInterior = Cell{4, 1}
)

// CellFor returns the sprite cell drawn for a pattern.
func CellFor(p Pattern) Cell {
	return patternCells[p&PatternFull]
}

// SourceFor is CellFor in pixels at the sheet's tile size.
func SourceFor(p Pattern) image.Rectangle {
	return CellFor(p).Source(constants.TileSize)
}
