package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	redisclient "github.com/zatekoja/projectapi-e2e/internal/infrastructure/clients/redis"
)

// Redis keeps entries across processes: one hash per run keyed by entity id,
// plus a set indexing the runs.
type Redis struct {
	client *redisclient.Client
	prefix string
}

// NewRedis creates a ledger storing keys under prefix
func NewRedis(client *redisclient.Client, prefix string) *Redis {
	return &Redis{
		client: client,
		prefix: prefix,
	}
}

func (r *Redis) runKey(runID string) string {
	return fmt.Sprintf("%s:run:%s", r.prefix, runID)
}

func (r *Redis) indexKey() string {
	return r.prefix + ":runs"
}

// Record stores e and indexes its run
func (r *Redis) Record(ctx context.Context, e Entry) error {
	value, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to encode ledger entry: %w", err)
	}

	pipe := r.client.Client().TxPipeline()
	pipe.HSet(ctx, r.runKey(e.RunID), e.ID, value)
	pipe.SAdd(ctx, r.indexKey(), e.RunID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to record ledger entry: %w", err)
	}
	return nil
}

// Entries returns runID's entries oldest first
func (r *Redis) Entries(ctx context.Context, runID string) ([]Entry, error) {
	fields, err := r.client.Client().HGetAll(ctx, r.runKey(runID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger run %s: %w", runID, err)
	}

	out := make([]Entry, 0, len(fields))
	for id, raw := range fields {
		var e Entry
		if err := json.Unmarshal([]byte(raw), &e); err != nil {
			return nil, fmt.Errorf("failed to decode ledger entry %s: %w", id, err)
		}
		e.RunID = runID
		e.ID = id
		out = append(out, e)
	}
	sortEntries(out)
	return out, nil
}

// Runs returns the indexed run ids
func (r *Redis) Runs(ctx context.Context) ([]string, error) {
	runs, err := r.client.Client().SMembers(ctx, r.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger runs: %w", err)
	}
	sort.Strings(runs)
	return runs, nil
}

// Forget drops one entry and unindexes the run once its hash is gone
func (r *Redis) Forget(ctx context.Context, runID, id string) error {
	c := r.client.Client()
	if err := c.HDel(ctx, r.runKey(runID), id).Err(); err != nil {
		return fmt.Errorf("failed to forget ledger entry %s: %w", id, err)
	}

	n, err := c.Exists(ctx, r.runKey(runID)).Result()
	if err != nil {
		return fmt.Errorf("failed to check ledger run %s: %w", runID, err)
	}
	if n == 0 {
		if err := c.SRem(ctx, r.indexKey(), runID).Err(); err != nil {
			return fmt.Errorf("failed to unindex ledger run %s: %w", runID, err)
		}
	}
	return nil
}
