// Package fixtures creates the entities scenarios act on. Each call creates
// exactly one entity and never retries.
package fixtures

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/zatekoja/projectapi-e2e/internal/domain/entities"
	"github.com/zatekoja/projectapi-e2e/internal/graphql/client"
	"github.com/zatekoja/projectapi-e2e/internal/graphql/operations"
	"github.com/zatekoja/projectapi-e2e/internal/infrastructure/observability"
	"github.com/zatekoja/projectapi-e2e/internal/ledger"
	apperrors "github.com/zatekoja/projectapi-e2e/pkg/errors"
)

// Created is one entity made by a fixture call
type Created[T any] struct {
	ID       string
	Entity   *T
	Response *client.Response
}

// Fixtures creates entities through the API and records them in the ledger
type Fixtures struct {
	client *client.Client
	ledger ledger.Ledger
	runID  string
	seq    atomic.Int64
}

// New creates fixtures for runID. A nil ledger records nothing.
func New(c *client.Client, l ledger.Ledger, runID string) *Fixtures {
	return &Fixtures{
		client: c,
		ledger: l,
		runID:  runID,
	}
}

// RunID returns the run the fixtures record under
func (f *Fixtures) RunID() string {
	return f.runID
}

// UniqueName suffixes base with the run id and a per-process counter
func (f *Fixtures) UniqueName(base string) string {
	return fmt.Sprintf("%s [run %s #%d]", base, f.runID, f.seq.Add(1))
}

// CreateProjectTemplate creates exactly the template described by input
func (f *Fixtures) CreateProjectTemplate(ctx context.Context, input entities.ProjectTemplateInput) (*Created[entities.ProjectTemplate], error) {
	out := &Created[entities.ProjectTemplate]{Entity: &entities.ProjectTemplate{}}
	resp, err := f.create(ctx, operations.CreateProjectTemplate, "createProjectTemplate",
		map[string]any{"projectTemplate": input}, out.Entity)
	if err != nil {
		return nil, err
	}
	out.ID, out.Response = out.Entity.ID, resp
	f.record(ctx, ledger.KindProjectTemplate, out.ID)
	return out, nil
}

// CreateProject creates exactly the project described by input
func (f *Fixtures) CreateProject(ctx context.Context, input entities.ProjectInput) (*Created[entities.Project], error) {
	out := &Created[entities.Project]{Entity: &entities.Project{}}
	resp, err := f.create(ctx, operations.CreateProject, "createProject",
		map[string]any{"project": input}, out.Entity)
	if err != nil {
		return nil, err
	}
	out.ID, out.Response = out.Entity.ID, resp
	f.record(ctx, ledger.KindProject, out.ID)
	return out, nil
}

// NewProjectTemplate creates the default template under a unique name
func (f *Fixtures) NewProjectTemplate(ctx context.Context) (*Created[entities.ProjectTemplate], error) {
	input := DefaultProjectTemplateInput()
	input.ProjectInfo.Name = f.UniqueName(input.ProjectInfo.Name)
	return f.CreateProjectTemplate(ctx, input)
}

// NewProject creates the default project under a unique name
func (f *Fixtures) NewProject(ctx context.Context) (*Created[entities.Project], error) {
	input := DefaultProjectInput()
	input.ProjectInfo.Name = f.UniqueName(input.ProjectInfo.Name)
	return f.CreateProject(ctx, input)
}

// Track records an entity a scenario created outside the fixtures, such as a clone
func (f *Fixtures) Track(ctx context.Context, kind ledger.Kind, id string) {
	f.record(ctx, kind, id)
}

func (f *Fixtures) create(ctx context.Context, query, field string, vars map[string]any, out interface{ GetID() string }) (*client.Response, error) {
	resp, err := f.client.Do(ctx, query, vars)
	if err != nil {
		return nil, fmt.Errorf("fixture %s: %w", field, err)
	}
	if resp.HasErrors() {
		return resp, apperrors.NewUpstreamError("fixture "+field, resp.Err())
	}
	if err := resp.Decode(field, out); err != nil {
		return resp, fmt.Errorf("fixture %s: %w", field, err)
	}
	if !entities.IsObjectID(out.GetID()) {
		return resp, apperrors.NewUpstreamError(fmt.Sprintf("fixture %s returned id %q", field, out.GetID()), nil)
	}
	return resp, nil
}

func (f *Fixtures) record(ctx context.Context, kind ledger.Kind, id string) {
	if f.ledger == nil {
		return
	}
	err := f.ledger.Record(ctx, ledger.Entry{
		RunID:     f.runID,
		Kind:      kind,
		ID:        id,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).
			Str("run_id", f.runID).Str("id", id).Msg("created entity not recorded in ledger")
	}
}
