package autotile

import (
	"context"
	"image"

	"github.com/rywk/dualgrid/pkg/conc"
)

// Placement is the layer stack of the dual-grid cell anchored at logical
// tile (X, Y).
type Placement struct {
	X, Y   int
	Layers []Layer
}

// ResolveRegion resolves every cell anchored inside rect and returns the
// cells that have layers, ordered by row then column. Rows are resolved on
// up to workers goroutines; lookup must tolerate concurrent reads.
func (r *Resolver) ResolveRegion(ctx context.Context, rect image.Rectangle, lookup Lookup, workers int) ([]Placement, error) {
	rect = rect.Canon()
	rows := make([][]Placement, rect.Dy())
	err := conc.Rows(ctx, rect.Min.Y, rect.Max.Y, workers, func(y int) error {
		var row []Placement
		for x := rect.Min.X; x < rect.Max.X; x++ {
			if layers := r.ResolveCell(x, y, lookup); len(layers) > 0 {
				row = append(row, Placement{X: x, Y: y, Layers: layers})
			}
		}
		rows[y-rect.Min.Y] = row
		return nil
	})
	if err != nil {
		return nil, err
	}
	var out []Placement
	for _, row := range rows {
		out = append(out, row...)
	}
	return out, nil
}
