package scenario

import (
	"context"
	"fmt"
)

// Counter is the slice of the oracle a CountGuard needs
type Counter interface {
	CountDocuments(ctx context.Context) (int64, error)
}

// CountGuard remembers a datastore record count so a rejected mutation can
// be shown to have written nothing.
type CountGuard struct {
	counter Counter
	before  int64
}

// NewCountGuard snapshots the current count
func NewCountGuard(ctx context.Context, counter Counter) (*CountGuard, error) {
	n, err := counter.CountDocuments(ctx)
	if err != nil {
		return nil, fmt.Errorf("snapshot document count: %w", err)
	}
	return &CountGuard{counter: counter, before: n}, nil
}

// Before returns the snapshot
func (g *CountGuard) Before() int64 {
	return g.before
}

// Unchanged returns an error when the count moved since the snapshot
func (g *CountGuard) Unchanged(ctx context.Context) error {
	after, err := g.counter.CountDocuments(ctx)
	if err != nil {
		return fmt.Errorf("recount documents: %w", err)
	}
	if after != g.before {
		return fmt.Errorf("document count changed from %d to %d", g.before, after)
	}
	return nil
}
