// Package oracle reads the state the system under test persisted, so
// scenarios can check API answers against an independent source.
package oracle

import (
	"context"
	"time"

	"github.com/zatekoja/projectapi-e2e/internal/domain/entities"
	"github.com/zatekoja/projectapi-e2e/internal/infrastructure/observability"
)

// Oracle answers the questions scenarios ask about persisted state.
// Missing documents are reported with errors.IsNotFound.
type Oracle interface {
	ProjectTemplate(ctx context.Context, id string) (*entities.ProjectTemplate, error)
	Project(ctx context.Context, id string) (*entities.Project, error)
	ReportForProject(ctx context.Context, projectID string) (*entities.Report, error)
	// CountDocuments counts every project and template
	CountDocuments(ctx context.Context) (int64, error)
	// FirstProjects returns the n oldest documents of the shared collection, ordered by id
	FirstProjects(ctx context.Context, n int) ([]entities.Project, error)
}

var (
	_ Oracle = (*MongoOracle)(nil)
	_ Oracle = (*APIOracle)(nil)
)

// observe records the duration of one read
func observe(ctx context.Context, m *observability.Metrics, source, operation string, start time.Time) {
	observability.RecordOracleMetric(ctx, m, source, operation, time.Since(start))
}
