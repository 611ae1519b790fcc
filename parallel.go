package bitpast

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// forEachRow calls fn for every row in [0, rows) on a bounded pool. fn must
// only write output that belongs to its row.
func forEachRow(ctx context.Context, rows int, fn func(y int) error) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for y := 0; y < rows; y++ {
		y := y
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return fn(y)
		})
	}

	return g.Wait()
}
