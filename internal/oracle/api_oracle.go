package oracle

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/zatekoja/projectapi-e2e/internal/domain/entities"
	"github.com/zatekoja/projectapi-e2e/internal/graphql/client"
	"github.com/zatekoja/projectapi-e2e/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/projectapi-e2e/pkg/errors"
)

const sourceAPI = "api"

// APIOracle answers through the GraphQL queries themselves, for
// environments where the datastore is not reachable. It is only as
// independent as the read path of the API.
type APIOracle struct {
	client  *client.Client
	metrics *observability.Metrics
}

// NewAPIOracle creates an oracle backed by c
func NewAPIOracle(c *client.Client, metrics *observability.Metrics) *APIOracle {
	return &APIOracle{client: c, metrics: metrics}
}

// ProjectTemplate fetches a template through projectTemplate(id)
func (o *APIOracle) ProjectTemplate(ctx context.Context, id string) (*entities.ProjectTemplate, error) {
	defer observe(ctx, o.metrics, sourceAPI, "projectTemplate", time.Now())

	t, err := o.client.ProjectTemplate(ctx, id)
	if err != nil {
		return nil, notFound(err, "project template", id)
	}
	return t, nil
}

// Project fetches a project through project(id)
func (o *APIOracle) Project(ctx context.Context, id string) (*entities.Project, error) {
	defer observe(ctx, o.metrics, sourceAPI, "project", time.Now())

	p, err := o.client.Project(ctx, id)
	if err != nil {
		return nil, notFound(err, "project", id)
	}
	return p, nil
}

// ReportForProject fetches the report through report(projectID)
func (o *APIOracle) ReportForProject(ctx context.Context, projectID string) (*entities.Report, error) {
	defer observe(ctx, o.metrics, sourceAPI, "reportForProject", time.Now())

	r, err := o.client.Report(ctx, projectID)
	if err != nil {
		return nil, notFound(err, "report of project", projectID)
	}
	return r, nil
}

// CountDocuments counts projects and templates together, as they share a collection
func (o *APIOracle) CountDocuments(ctx context.Context) (int64, error) {
	defer observe(ctx, o.metrics, sourceAPI, "countDocuments", time.Now())

	all, err := o.all(ctx)
	if err != nil {
		return 0, err
	}
	return int64(len(all)), nil
}

// FirstProjects merges both lists and returns the n lowest ids
func (o *APIOracle) FirstProjects(ctx context.Context, n int) ([]entities.Project, error) {
	defer observe(ctx, o.metrics, sourceAPI, "firstProjects", time.Now())

	all, err := o.all(ctx)
	if err != nil {
		return nil, err
	}
	// fixed-width lowercase hex sorts in creation order
	sort.SliceStable(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	if n < len(all) {
		all = all[:n]
	}
	return all, nil
}

func (o *APIOracle) all(ctx context.Context) ([]entities.Project, error) {
	projects, err := o.client.Projects(ctx)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	templates, err := o.client.ProjectTemplates(ctx)
	if err != nil {
		return nil, fmt.Errorf("list project templates: %w", err)
	}
	for _, t := range templates {
		projects = append(projects, entities.Project{ProjectTemplate: t})
	}
	return projects, nil
}

// notFound reports a GraphQL error on a lookup as a missing document
func notFound(err error, kind, id string) error {
	if apperrors.IsUpstream(err) {
		return apperrors.NewNotFoundError(fmt.Sprintf("%s %s not found: %v", kind, id, err))
	}
	return err
}
