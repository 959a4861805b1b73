package client

import (
	"context"
	"fmt"

	"github.com/zatekoja/projectapi-e2e/internal/domain/entities"
	"github.com/zatekoja/projectapi-e2e/internal/graphql/operations"
	apperrors "github.com/zatekoja/projectapi-e2e/pkg/errors"
)

// call sends query and decodes field, turning GraphQL errors into UPSTREAM errors
func (c *Client) call(ctx context.Context, query, field string, vars map[string]any, out any) error {
	resp, err := c.Do(ctx, query, vars)
	if err != nil {
		return err
	}
	if resp.HasErrors() {
		return apperrors.NewUpstreamError(field, resp.Err())
	}
	return resp.Decode(field, out)
}

// CreateProject creates a project and returns its id and projectInfo
func (c *Client) CreateProject(ctx context.Context, input entities.ProjectInput) (*entities.Project, error) {
	out := &entities.Project{}
	if err := c.call(ctx, operations.CreateProject, "createProject", map[string]any{"project": input}, out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateProjectTemplate creates a template and returns it as stored
func (c *Client) CreateProjectTemplate(ctx context.Context, input entities.ProjectTemplateInput) (*entities.ProjectTemplate, error) {
	out := &entities.ProjectTemplate{}
	if err := c.call(ctx, operations.CreateProjectTemplate, "createProjectTemplate", map[string]any{"projectTemplate": input}, out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteProject deletes a project and returns the deleted id
func (c *Client) DeleteProject(ctx context.Context, id string) (string, error) {
	var out string
	if err := c.call(ctx, operations.DeleteProject, "deleteProject", map[string]any{"deleteProjectId": id}, &out); err != nil {
		return "", err
	}
	return out, nil
}

// DeleteProjectTemplate deletes a template and returns the deleted id
func (c *Client) DeleteProjectTemplate(ctx context.Context, id string) (string, error) {
	var out string
	if err := c.call(ctx, operations.DeleteProjectTemplate, "deleteProjectTemplate", map[string]any{"deleteProjectTemplateId": id}, &out); err != nil {
		return "", err
	}
	return out, nil
}

// Project fetches one project with its report status
func (c *Client) Project(ctx context.Context, id string) (*entities.Project, error) {
	out := &entities.Project{}
	if err := c.call(ctx, operations.ProjectDetail, "project", map[string]any{"projectId": id}, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Projects lists every project
func (c *Client) Projects(ctx context.Context) ([]entities.Project, error) {
	var out []entities.Project
	if err := c.call(ctx, operations.ProjectsDetail, "projects", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ProjectTemplate fetches one template
func (c *Client) ProjectTemplate(ctx context.Context, id string) (*entities.ProjectTemplate, error) {
	out := &entities.ProjectTemplate{}
	if err := c.call(ctx, operations.ProjectTemplateByID, "projectTemplate", map[string]any{"projectTemplateId": id}, out); err != nil {
		return nil, err
	}
	return out, nil
}

// ProjectTemplates lists every template
func (c *Client) ProjectTemplates(ctx context.Context) ([]entities.ProjectTemplate, error) {
	var out []entities.ProjectTemplate
	if err := c.call(ctx, operations.ProjectTemplates, "projectTemplates", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Report fetches the report of a project
func (c *Client) Report(ctx context.Context, projectID string) (*entities.Report, error) {
	out := &entities.Report{}
	if err := c.call(ctx, operations.ReportByProjectID, "report", map[string]any{"projectId": projectID}, out); err != nil {
		return nil, err
	}
	return out, nil
}

// GenerateReport triggers report generation and returns the initial status
func (c *Client) GenerateReport(ctx context.Context, projectID string, algorithms ...string) (*entities.Report, error) {
	if len(algorithms) == 0 {
		return nil, apperrors.NewValidationError("at least one algorithm is required")
	}
	out := &entities.Report{}
	vars := map[string]any{"projectId": projectID, "algorithms": algorithms}
	if err := c.call(ctx, operations.GenerateReportStatus, "generateReport", vars, out); err != nil {
		return nil, fmt.Errorf("generate report for %s: %w", projectID, err)
	}
	return out, nil
}

// CancelTestRuns cancels a generating report
func (c *Client) CancelTestRuns(ctx context.Context, projectID string, algorithms ...string) (*entities.Report, error) {
	if len(algorithms) == 0 {
		return nil, apperrors.NewValidationError("at least one algorithm is required")
	}
	out := &entities.Report{}
	vars := map[string]any{"projectId": projectID, "algorithms": algorithms}
	if err := c.call(ctx, operations.CancelTestRuns, "cancelTestRuns", vars, out); err != nil {
		return nil, fmt.Errorf("cancel test runs for %s: %w", projectID, err)
	}
	return out, nil
}
