//go:build e2e

package projecttemplate_test

import (
	. "github.com/onsi/ginkgo/v2"

	"github.com/zatekoja/projectapi-e2e/internal/graphql/operations"
	"github.com/zatekoja/projectapi-e2e/internal/scenario"
)

type idOperation struct {
	name     string
	query    string
	variable string
	extra    vars
}

var idOperations = []idOperation{
	{name: "projectTemplate", query: operations.ProjectTemplateByID, variable: "projectTemplateId"},
	{name: "cloneProjectTemplate", query: operations.CloneProjectTemplate, variable: "cloneProjectTemplateId"},
	{name: "deleteProjectTemplate", query: operations.DeleteProjectTemplate, variable: "deleteProjectTemplateId"},
	{
		name: "updateProjectTemplate", query: operations.UpdateProjectTemplate, variable: "updateProjectTemplateId",
		extra: vars{"projectTemplate": vars{"projectInfo": vars{"name": "Template 10"}}},
	},
}

var _ = Describe("Project template id validation", func() {
	var entries []TableEntry
	for _, op := range idOperations {
		for _, sample := range scenario.InvalidObjectIDSamples() {
			entries = append(entries, Entry(op.name+" with "+sample.Label, op, sample))
		}
	}

	DescribeTable("rejects malformed ids without touching stored data",
		func(op idOperation, sample scenario.ObjectIDSample) {
			variables := vars{op.variable: sample.Value}
			for k, v := range op.extra {
				variables[k] = v
			}
			rejected(op.query, variables, sample.RejectionMessage(op.variable))
		},
		entries,
	)
})
