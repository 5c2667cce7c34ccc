// Package mapfile reads and writes terrain maps.
//
// A map is a single protobuf message, written with protowire so no
// generated code is needed:
//
//	message Map {
//	  uint32 width = 1;
//	  uint32 height = 2;
//	  string default = 3;
//	  repeated string palette = 4;
//	  bytes cells = 5; // packed varint palette indices, row major
//	}
package mapfile

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rywk/dualgrid/pkg/ground"
	"github.com/rywk/dualgrid/pkg/terrain"
	"google.golang.org/protobuf/encoding/protowire"
)

var ErrMalformed = errors.New("mapfile: malformed map")

const (
	fieldWidth   protowire.Number = 1
	fieldHeight  protowire.Number = 2
	fieldDefault protowire.Number = 3
	fieldPalette protowire.Number = 4
	fieldCells   protowire.Number = 5
)

// Map is a dense terrain grid. Cells index Palette.
type Map struct {
	Width, Height int
	Default       terrain.Type
	Palette       []terrain.Type
	Cells         []uint32
}

// FromSource copies a w x h area starting at the origin.
func FromSource(src ground.Source, w, h int, def terrain.Type) *Map {
	m := &Map{Width: w, Height: h, Default: def, Cells: make([]uint32, 0, w*h)}
	index := make(map[terrain.Type]uint32)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			t := src.TerrainAt(x, y)
			i, ok := index[t]
			if !ok {
				i = uint32(len(m.Palette))
				index[t] = i
				m.Palette = append(m.Palette, t)
			}
			m.Cells = append(m.Cells, i)
		}
	}
	return m
}

func (m *Map) TerrainAt(x, y int) terrain.Type {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return m.Default
	}
	return m.Palette[m.Cells[y*m.Width+x]]
}

// Grid loads the map into world storage.
func (m *Map) Grid() (*ground.Grid, error) {
	if err := m.validate(); err != nil {
		return nil, err
	}
	g := ground.NewGrid(m.Width, m.Height, m.Default)
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			t := m.TerrainAt(x, y)
			if t == m.Default {
				continue
			}
			if err := g.Set(x, y, t); err != nil {
				return nil, err
			}
		}
	}
	return g, nil
}

func (m *Map) validate() error {
	if m.Width < 0 || m.Height < 0 || m.Width > ground.MaxSize || m.Height > ground.MaxSize {
		return fmt.Errorf("%w: size %dx%d", ErrMalformed, m.Width, m.Height)
	}
	if len(m.Cells) != m.Width*m.Height {
		return fmt.Errorf("%w: %d cells for %dx%d", ErrMalformed, len(m.Cells), m.Width, m.Height)
	}
	for i, c := range m.Cells {
		if int(c) >= len(m.Palette) {
			return fmt.Errorf("%w: cell %d uses palette index %d of %d", ErrMalformed, i, c, len(m.Palette))
		}
	}
	return nil
}

func (m *Map) Marshal() ([]byte, error) {
	if err := m.validate(); err != nil {
		return nil, err
	}
	var b []byte
	b = protowire.AppendTag(b, fieldWidth, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(m.Width))
	b = protowire.AppendTag(b, fieldHeight, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(m.Height))
	b = protowire.AppendTag(b, fieldDefault, protowire.BytesType)
	b = protowire.AppendString(b, string(m.Default))
	for _, t := range m.Palette {
		b = protowire.AppendTag(b, fieldPalette, protowire.BytesType)
		b = protowire.AppendString(b, string(t))
	}
	var cells []byte
	for _, c := range m.Cells {
		cells = protowire.AppendVarint(cells, uint64(c))
	}
	b = protowire.AppendTag(b, fieldCells, protowire.BytesType)
	b = protowire.AppendBytes(b, cells)
	return b, nil
}

func Unmarshal(b []byte) (*Map, error) {
	m := &Map{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, fmt.Errorf("%w: tag: %v", ErrMalformed, protowire.ParseError(n))
		}
		b = b[n:]
		switch {
		case (num == fieldWidth || num == fieldHeight) && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, fmt.Errorf("%w: field %d: %v", ErrMalformed, num, protowire.ParseError(n))
			}
			if v > ground.MaxSize {
				return nil, fmt.Errorf("%w: dimension %d too large", ErrMalformed, v)
			}
			if num == fieldWidth {
				m.Width = int(v)
			} else {
				m.Height = int(v)
			}
			b = b[n:]
		case (num == fieldDefault || num == fieldPalette) && typ == protowire.BytesType:
			s, n := protowire.ConsumeString(b)
			if n < 0 {
				return nil, fmt.Errorf("%w: field %d: %v", ErrMalformed, num, protowire.ParseError(n))
			}
			if num == fieldDefault {
				m.Default = terrain.Type(s)
			} else {
				m.Palette = append(m.Palette, terrain.Type(s))
			}
			b = b[n:]
		case num == fieldCells && typ == protowire.BytesType:
			packed, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, fmt.Errorf("%w: cells: %v", ErrMalformed, protowire.ParseError(n))
			}
			for len(packed) > 0 {
				v, k := protowire.ConsumeVarint(packed)
				if k < 0 {
					return nil, fmt.Errorf("%w: cells: %v", ErrMalformed, protowire.ParseError(k))
				}
				m.Cells = append(m.Cells, uint32(v))
				packed = packed[k:]
			}
			b = b[n:]
		default:
			// Skip fields from newer writers.
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, fmt.Errorf("%w: field %d: %v", ErrMalformed, num, protowire.ParseError(n))
			}
			b = b[n:]
		}
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func Encode(w io.Writer, m *Map) error {
	b, err := m.Marshal()
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

func Decode(r io.Reader) (*Map, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("mapfile: read: %w", err)
	}
	return Unmarshal(b)
}

func Load(path string) (*Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mapfile: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

func Save(path string, m *Map) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("mapfile: %w", err)
	}
	if err := Encode(f, m); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
