package app

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// PartialResult holds a result or an error for partial success patterns.
type PartialResult[T any] struct {
	Value T
	Err   error
}

// ParallelPartialLimit runs fns with at most limit in flight and collects
// every outcome in input order. One failure does not cancel the others.
// A limit below one runs the functions one at a time.
//
// Example:
//
//	results := ParallelPartialLimit(ctx, 4, lookups...)
//	for _, r := range results {
//	    if r.Err != nil {
//	        // report and continue
//	    }
//	}
func ParallelPartialLimit[T any](
	ctx context.Context,
	limit int,
	fns ...func(context.Context) (T, error),
) []PartialResult[T] {
	if limit < 1 {
		limit = 1
	}

	results := make([]PartialResult[T], len(fns))

	var g errgroup.Group
	g.SetLimit(limit)

	for i, fn := range fns {
		g.Go(func() error {
			value, err := fn(ctx)
			results[i] = PartialResult[T]{Value: value, Err: err}

			return nil
		})
	}

	_ = g.Wait()

	return results
}
