// Package ledger records every entity a test run creates so the run's
// leftovers can be swept later.
package ledger

import (
	"context"
	"sort"
	"time"
)

// Kind names the mutation that deletes an entry
type Kind string

const (
	KindProject         Kind = "project"
	KindProjectTemplate Kind = "projectTemplate"
)

// Entry is one created entity
type Entry struct {
	RunID     string    `json:"-"`
	Kind      Kind      `json:"kind"`
	ID        string    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}

// Ledger stores entries grouped by run
type Ledger interface {
	Record(ctx context.Context, e Entry) error
	// Entries returns a run's entries oldest first
	Entries(ctx context.Context, runID string) ([]Entry, error)
	Runs(ctx context.Context) ([]string, error)
	Forget(ctx context.Context, runID, id string) error
}

func sortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].CreatedAt.Equal(entries[j].CreatedAt) {
			return entries[i].ID < entries[j].ID
		}
		return entries[i].CreatedAt.Before(entries[j].CreatedAt)
	})
}

var (
	_ Ledger = (*Memory)(nil)
	_ Ledger = (*Redis)(nil)
)
