package conc

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Rows calls fn for every row in [minY, maxY) using at most workers
// goroutines. It stops handing out rows once ctx is done or fn fails and
// returns the first error.
func Rows(ctx context.Context, minY, maxY, workers int, fn func(y int) error) error {
	if workers < 1 {
		workers = 1
	}
	// gctx is canceled by Wait, so only the caller's ctx decides the result.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for y := minY; y < maxY; y++ {
		if gctx.Err() != nil {
			break
		}
		y := y
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return fn(y)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
