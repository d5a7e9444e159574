package hn

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// MapOrdered applies f to every element of in with at most limit calls in
// flight (unbounded when limit <= 0). out[i] is always f(in[i]), whatever
// order the calls finish in. The first error cancels the context passed to
// the remaining calls and is returned with a nil slice.
func MapOrdered[T, R any](ctx context.Context, in []T, limit int, f func(context.Context, T) (R, error)) ([]R, error) {
	out := make([]R, len(in))
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, v := range in {
		i, v := i, v
		g.Go(func() error {
			r, err := f(ctx, v)
			if err != nil {
				return err
			}
			out[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
