package service

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/soundhaven/musicstore/internal/transport"
)

const resolveConcurrency = 8

// resolveLines projects (album, quantity) pairs through the catalog with
// bounded concurrency. An album missing from the catalog marks the line
// unresolved instead of failing the whole projection; any other resolver
// failure aborts.
func resolveLines(ctx context.Context, resolver AlbumResolver, lines []transport.LineView) ([]transport.LineView, error) {
	out := make([]transport.LineView, len(lines))
	copy(out, lines)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(resolveConcurrency)

	for i := range out {
		g.Go(func() error {
			info, err := resolver.ResolveAlbum(ctx, out[i].AlbumID)
			if err != nil {
				if errors.Is(err, ErrNotFound) {
					out[i].Unresolved = true
					return nil
				}
				return err
			}
			out[i].Album = info
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
