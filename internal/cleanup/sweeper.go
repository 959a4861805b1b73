// Package cleanup deletes the entities a run recorded in its ledger.
package cleanup

import (
	"context"
	"fmt"

	"github.com/zatekoja/projectapi-e2e/internal/graphql/client"
	"github.com/zatekoja/projectapi-e2e/internal/infrastructure/observability"
	"github.com/zatekoja/projectapi-e2e/internal/ledger"
)

// Failure is an entry that could not be deleted
type Failure struct {
	Entry ledger.Entry
	Err   error
}

// Summary reports one sweep
type Summary struct {
	Deleted []ledger.Entry
	Failed  []Failure
}

// Sweeper deletes recorded entities through the API
type Sweeper struct {
	client *client.Client
	ledger ledger.Ledger
}

// NewSweeper creates a sweeper
func NewSweeper(c *client.Client, l ledger.Ledger) *Sweeper {
	return &Sweeper{client: c, ledger: l}
}

// Sweep deletes runID's entries newest first. Deleted entries are forgotten,
// failed ones stay in the ledger for the next sweep.
func (s *Sweeper) Sweep(ctx context.Context, runID string) (*Summary, error) {
	entries, err := s.ledger.Entries(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("read ledger: %w", err)
	}

	logger := observability.LoggerFromContext(ctx)
	summary := &Summary{}
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		if err := s.delete(ctx, e); err != nil {
			logger.Warn().Err(err).Str("run_id", runID).Str("kind", string(e.Kind)).Str("id", e.ID).Msg("cleanup delete failed")
			summary.Failed = append(summary.Failed, Failure{Entry: e, Err: err})
			continue
		}
		if err := s.ledger.Forget(ctx, runID, e.ID); err != nil {
			summary.Failed = append(summary.Failed, Failure{Entry: e, Err: err})
			continue
		}
		summary.Deleted = append(summary.Deleted, e)
	}

	logger.Info().
		Str("run_id", runID).
		Int("deleted", len(summary.Deleted)).
		Int("failed", len(summary.Failed)).
		Msg("cleanup sweep finished")
	return summary, nil
}

// SweepAll sweeps every run the ledger knows
func (s *Sweeper) SweepAll(ctx context.Context) (map[string]*Summary, error) {
	runs, err := s.ledger.Runs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	out := make(map[string]*Summary, len(runs))
	for _, run := range runs {
		summary, err := s.Sweep(ctx, run)
		if err != nil {
			return out, fmt.Errorf("sweep %s: %w", run, err)
		}
		out[run] = summary
	}
	return out, nil
}

func (s *Sweeper) delete(ctx context.Context, e ledger.Entry) error {
	var err error
	switch e.Kind {
	case ledger.KindProject:
		_, err = s.client.DeleteProject(ctx, e.ID)
	case ledger.KindProjectTemplate:
		_, err = s.client.DeleteProjectTemplate(ctx, e.ID)
	default:
		err = fmt.Errorf("unknown entry kind %q", e.Kind)
	}
	return err
}
