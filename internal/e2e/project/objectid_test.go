//go:build e2e

package project_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/zatekoja/projectapi-e2e/internal/graphql/operations"
	"github.com/zatekoja/projectapi-e2e/internal/scenario"
)

// idOperation is a project operation taking one ObjectID variable
type idOperation struct {
	name     string
	query    string
	variable string
	extra    vars
}

func idOperations() []idOperation {
	return []idOperation{
		{name: "project", query: operations.ProjectByID, variable: "projectId"},
		{name: "report", query: operations.ReportByProjectID, variable: "projectId"},
		{name: "cloneProject", query: operations.CloneProject, variable: "cloneProjectId"},
		{name: "deleteProject", query: operations.DeleteProject, variable: "deleteProjectId"},
		{
			name: "updateProject", query: operations.UpdateProject, variable: "updateProjectId",
			extra: vars{"project": vars{"projectInfo": vars{"name": "Test 3", "company": "Testing Company 3"}}},
		},
		{name: "generateReport", query: operations.GenerateReportStatus, variable: "projectId", extra: vars{"algorithms": []string{"x"}}},
		{name: "cancelTestRuns", query: operations.CancelTestRuns, variable: "projectId", extra: vars{"algorithms": []string{"x"}}},
	}
}

func objectIDEntries() []TableEntry {
	var entries []TableEntry
	for _, op := range idOperations() {
		for _, sample := range scenario.InvalidObjectIDSamples() {
			entries = append(entries, Entry(op.name+" with "+sample.Label, op, sample))
		}
	}
	return entries
}

var _ = Describe("Project id validation", func() {
	DescribeTable("rejects malformed ids without touching stored data",
		func(op idOperation, sample scenario.ObjectIDSample) {
			guard := countGuard()

			variables := vars{op.variable: sample.Value}
			for k, v := range op.extra {
				variables[k] = v
			}
			resp := do(op.query, variables)

			Expect(resp).To(scenario.HaveErrorCode(scenario.BadUserInput))
			Expect(resp).To(scenario.HaveErrorMessage(0, sample.RejectionMessage(op.variable)))
			Expect(guard.Unchanged(ctx)).To(Succeed())
		},
		objectIDEntries(),
	)
})
