package ledger

import (
	"context"
	"sort"
	"sync"
)

// Memory keeps entries for the life of the process
type Memory struct {
	mu   sync.Mutex
	runs map[string]map[string]Entry
}

// NewMemory creates an empty in-process ledger
func NewMemory() *Memory {
	return &Memory{runs: make(map[string]map[string]Entry)}
}

// Record stores e, replacing an entry with the same id
func (m *Memory) Record(_ context.Context, e Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	run, ok := m.runs[e.RunID]
	if !ok {
		run = make(map[string]Entry)
		m.runs[e.RunID] = run
	}
	run[e.ID] = e
	return nil
}

// Entries returns runID's entries oldest first
func (m *Memory) Entries(_ context.Context, runID string) ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Entry, 0, len(m.runs[runID]))
	for _, e := range m.runs[runID] {
		out = append(out, e)
	}
	sortEntries(out)
	return out, nil
}

// Runs returns the ids of runs with at least one entry
func (m *Memory) Runs(_ context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]string, 0, len(m.runs))
	for id := range m.runs {
		out = append(out, id)
	}
	sort.Strings(out)
	return out, nil
}

// Forget drops one entry and the run once it is empty
func (m *Memory) Forget(_ context.Context, runID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.runs[runID], id)
	if len(m.runs[runID]) == 0 {
		delete(m.runs, runID)
	}
	return nil
}
