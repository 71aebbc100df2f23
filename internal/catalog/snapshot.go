package catalog

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
)

// Snapshot is a point-in-time copy of the catalog and ledger.
type Snapshot struct {
	Products []Product
	Lines    []OrderLine
}

// LoadSnapshot reads products and order lines concurrently.
func LoadSnapshot(ctx context.Context, provider Provider) (Snapshot, error) {
	if provider == nil {
		return Snapshot{}, errors.New("catalog: provider not configured")
	}
	var snap Snapshot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		products, err := provider.ListAllProducts(gctx)
		if err != nil {
			return err
		}
		snap.Products = products
		return nil
	})
	g.Go(func() error {
		lines, err := provider.ListAllOrderLines(gctx)
		if err != nil {
			return err
		}
		snap.Lines = lines
		return nil
	})
	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}
