//go:build e2e

package projecttemplate_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/zatekoja/projectapi-e2e/internal/domain/entities"
	"github.com/zatekoja/projectapi-e2e/internal/graphql/operations"
	"github.com/zatekoja/projectapi-e2e/internal/scenario"
)

var _ = Describe("Get Project Template", Ordered, func() {
	var template *entities.ProjectTemplate

	BeforeAll(func() {
		template = newTemplate()
	})

	It("lists the fixture as stored", func() {
		listed := decode[[]entities.ProjectTemplate](do(operations.ProjectTemplates, nil), "projectTemplates")

		var found *entities.ProjectTemplate
		for i := range *listed {
			if (*listed)[i].ID == template.ID {
				found = &(*listed)[i]
			}
		}
		Expect(found).NotTo(BeNil(), "template %s missing from list", template.ID)

		want := stored(template.ID)
		Expect(scenario.SameProjectInfo(want.ProjectInfo, found.ProjectInfo)).To(Succeed())
		Expect(scenario.SamePages(want.Pages, found.Pages)).To(Succeed())
		Expect(entities.SameInstant(want.CreatedAt, found.CreatedAt)).To(BeTrue())
		Expect(entities.SameInstant(want.UpdatedAt, found.UpdatedAt)).To(BeTrue())
	})

	It("returns a template by id as stored", func() {
		got := decode[entities.ProjectTemplate](do(operations.ProjectTemplateByID, vars{"projectTemplateId": template.ID}), "projectTemplate")

		want := stored(template.ID)
		Expect(scenario.SameProjectInfo(want.ProjectInfo, got.ProjectInfo)).To(Succeed())
		Expect(scenario.SameGlobalVars(want.GlobalVars, got.GlobalVars)).To(Succeed())
		Expect(scenario.SamePages(want.Pages, got.Pages)).To(Succeed())
		Expect(entities.SameInstant(want.CreatedAt, got.CreatedAt)).To(BeTrue())
	})

	DescribeTable("rejects malformed ids",
		func(id any, message string) {
			resp := do(operations.ProjectTemplateByID, vars{"projectTemplateId": id})
			Expect(resp).To(scenario.HaveErrorMessage(0, message))
		},
		Entry("null", nil, scenario.NonNullVariable("projectTemplateId", scenario.ObjectIDType)),
		Entry("integer", 0, scenario.InvalidObjectID("projectTemplateId", 0)),
		Entry("23 characters", "63e207c7fb46f9de3ab2508", scenario.InvalidObjectID("projectTemplateId", "63e207c7fb46f9de3ab2508")),
		Entry("empty", "", scenario.InvalidObjectID("projectTemplateId", "")),
	)
})
