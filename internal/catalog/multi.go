package catalog

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Multi concatenates several providers. Sources are fetched concurrently but
// the result keeps declaration order, so first-in-order tie breaks stay stable.
type Multi []Provider

func (m Multi) ListAllLocations(ctx context.Context) ([]Location, error) {
	parts := make([][]Location, len(m))
	g, gctx := errgroup.WithContext(ctx)
	for i, p := range m {
		i, p := i, p
		g.Go(func() error {
			locs, err := p.ListAllLocations(gctx)
			if err != nil {
				return err
			}
			parts[i] = locs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	n := 0
	for _, p := range parts {
		n += len(p)
	}
	out := make([]Location, 0, n)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out, nil
}
