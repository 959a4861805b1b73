package scenario

import (
	"context"

	"github.com/zatekoja/projectapi-e2e/internal/domain/entities"
	"github.com/zatekoja/projectapi-e2e/internal/graphql/client"
)

// ReportStatus returns a poll function for Eventually that reads the status
// of projectID's report through the project query. A project without a
// report reads as NoReport.
func ReportStatus(ctx context.Context, c *client.Client, projectID string) func() (entities.ReportStatus, error) {
	return func() (entities.ReportStatus, error) {
		p, err := c.Project(ctx, projectID)
		if err != nil {
			return "", err
		}
		if p.Report == nil {
			return entities.ReportStatusNoReport, nil
		}
		return p.Report.Status, nil
	}
}

// GenerationStarted reports whether status is a valid answer to a fresh
// generateReport call. Fast backends may finish before responding.
func GenerationStarted(status entities.ReportStatus) bool {
	return status == entities.ReportStatusGeneratingReport || status == entities.ReportStatusReportGenerated
}
