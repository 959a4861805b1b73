//go:build e2e

package project_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/zatekoja/projectapi-e2e/internal/domain/entities"
	"github.com/zatekoja/projectapi-e2e/internal/fixtures"
	"github.com/zatekoja/projectapi-e2e/internal/graphql/operations"
	"github.com/zatekoja/projectapi-e2e/internal/scenario"
	apperrors "github.com/zatekoja/projectapi-e2e/pkg/errors"
)

var _ = Describe("Create Project", Ordered, func() {
	var input entities.ProjectInput

	BeforeAll(func() {
		input = fixtures.DefaultProjectInput()
		input.ProjectInfo.Name = h.Fixtures.UniqueName(input.ProjectInfo.Name)
	})

	It("returns the projectInfo it was given", func() {
		created, err := h.Fixtures.CreateProject(ctx, input)
		Expect(err).NotTo(HaveOccurred())
		Expect(created.Entity.ProjectInfo).To(Equal(input.ProjectInfo.Info()))
	})

	It("rejects the same project a second time", func() {
		resp := do(operations.CreateProject, vars{"project": input})
		Expect(resp).To(scenario.HaveErrorCode(scenario.InternalServerError))
	})
})

var _ = Describe("Update Project", Ordered, func() {
	var project *entities.Project

	BeforeAll(func() {
		project = newProject()
	})

	It("persists the new name and company", func() {
		name := h.Fixtures.UniqueName("Test 11")
		resp := do(operations.UpdateProject, vars{
			"updateProjectId": project.ID,
			"project": vars{
				"projectInfo": vars{"name": name, "company": "Testing Company 10"},
			},
		})
		updated := decode[entities.Project](resp, "updateProject")

		stored, err := h.Oracle.Project(ctx, project.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(updated.ProjectInfo.Name).To(Equal(stored.ProjectInfo.Name))
		Expect(updated.ProjectInfo.Company).To(Equal(stored.ProjectInfo.Company))
		Expect(stored.ProjectInfo.Name).To(Equal(name))
	})

	It("rejects a malformed id", func() {
		resp := do(operations.UpdateProject, vars{
			"updateProjectId": "123",
			"project": vars{
				"projectInfo": vars{"name": "Test 3", "company": "Testing Company 3"},
			},
		})
		Expect(resp).To(scenario.HaveErrorCode(scenario.BadUserInput))
	})
})

var _ = Describe("Delete Project", Ordered, func() {
	var project *entities.Project

	BeforeAll(func() {
		project = newProject()
	})

	It("makes the project unreadable", func() {
		resp := do(operations.DeleteProject, vars{"deleteProjectId": project.ID})
		Expect(resp).To(scenario.HaveNoErrors())
		forget(project.ID)

		resp = do(operations.ProjectByID, vars{"projectId": project.ID})
		Expect(resp).To(scenario.HaveErrorCode(scenario.InternalServerError))

		_, err := h.Oracle.Project(ctx, project.ID)
		Expect(apperrors.IsNotFound(err)).To(BeTrue())
	})

	It("fails to delete the same project again", func() {
		resp := do(operations.DeleteProject, vars{"deleteProjectId": project.ID})
		Expect(resp).To(scenario.HaveErrorCode(scenario.InternalServerError))
	})
})

var _ = Describe("Clone Project", Ordered, func() {
	var project *entities.Project

	BeforeAll(func() {
		project = newProject()
	})

	It("prefixes the name and copies the company", func() {
		clone := decode[entities.Project](do(operations.CloneProject, vars{"cloneProjectId": project.ID}), "cloneProject")
		track(clone.ID)

		original, err := h.Oracle.Project(ctx, project.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(clone.ProjectInfo.Name).To(Equal(entities.CloneName(original.ProjectInfo.Name)))
		Expect(clone.ProjectInfo.Company).To(Equal(original.ProjectInfo.Company))
		Expect(clone.ID).NotTo(Equal(project.ID))
	})
})

var _ = Describe("Generate Report", func() {
	It("starts generation and eventually completes", func() {
		project := newProject()
		generate(project.ID)
		waitForReport(project.ID)
	})

	It("refuses a second trigger while the first is generating", func() {
		project := newProject()
		if generate(project.ID) != entities.ReportStatusGeneratingReport {
			Skip("generation completed before a second trigger could overlap it")
		}

		resp := do(operations.GenerateReportSnapshot, vars{"projectId": project.ID, "algorithms": algorithms()})
		Expect(resp).To(scenario.HaveErrorMessage(0, scenario.Unexpected(scenario.PreviousGenerationRunning)))
	})
})

var _ = Describe("Cancel Test Run", func() {
	cancel := func(projectID any) *entities.Report {
		GinkgoHelper()
		return decode[entities.Report](do(operations.CancelTestRuns, vars{"projectId": projectID, "algorithms": algorithms()}), "cancelTestRuns")
	}

	It("completes a generating report", func() {
		project := newProject()
		if generate(project.ID) != entities.ReportStatusGeneratingReport {
			Skip("generation completed before it could be cancelled")
		}
		Expect(cancel(project.ID).Status).To(Equal(entities.ReportStatusReportGenerated))
	})

	It("rejects a 23-character id", func() {
		const id = "63be7e9bd43d9b23db71ff1"
		resp := do(operations.CancelTestRuns, vars{"projectId": id, "algorithms": algorithms()})
		Expect(resp).To(scenario.HaveErrorMessage(0, scenario.InvalidObjectID("projectId", id)))
	})

	It("rejects an empty id", func() {
		resp := do(operations.CancelTestRuns, vars{"projectId": "", "algorithms": algorithms()})
		Expect(resp).To(scenario.HaveErrorMessage(0, scenario.InvalidObjectID("projectId", "")))
	})

	It("reports a missing report", func() {
		project := newProject()
		resp := do(operations.CancelTestRuns, vars{"projectId": project.ID, "algorithms": algorithms()})
		Expect(resp).To(scenario.HaveErrorMessage(0, scenario.Unexpected(scenario.ReportNotFound)))
	})

	It("refuses to cancel a generated report", func() {
		project := newProject()
		generate(project.ID)
		waitForReport(project.ID)

		resp := do(operations.CancelTestRuns, vars{"projectId": project.ID, "algorithms": algorithms()})
		Expect(resp).To(scenario.HaveErrorMessage(0, scenario.Unexpected(scenario.ReportNotGenerating)))
	})

	PIt("cancels a report whose tests are running")
	PIt("cancels a report whose tests are pending")
})

var _ = Describe("Project queries", Ordered, func() {
	var project *entities.Project

	BeforeAll(func() {
		project = newProject()
		newProject()
	})

	It("lists projects in the order they are stored", func() {
		listed := decode[[]entities.Project](do(operations.Projects, nil), "projects")
		Expect(len(*listed)).To(BeNumerically(">=", 2))

		stored, err := h.Oracle.FirstProjects(ctx, 2)
		Expect(err).NotTo(HaveOccurred())
		Expect(stored).To(HaveLen(2))
		for i := range stored {
			Expect(scenario.SameProjectInfo(stored[i].ProjectInfo, (*listed)[i].ProjectInfo)).To(Succeed())
		}
	})

	It("returns a project by id as stored", func() {
		got := decode[entities.Project](do(operations.ProjectByID, vars{"projectId": project.ID}), "project")

		stored, err := h.Oracle.Project(ctx, project.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(scenario.SameProjectInfo(stored.ProjectInfo, got.ProjectInfo)).To(Succeed())
	})

	DescribeTable("rejects malformed project ids",
		func(id string) {
			resp := do(operations.ProjectByID, vars{"projectId": id})
			Expect(resp).To(scenario.HaveErrorCode(scenario.BadUserInput))
		},
		Entry("23 characters", "63b53adfc05b0b2df748f43"),
		Entry("empty", ""),
	)
})

var _ = Describe("Report queries", func() {
	It("returns a report as stored", func() {
		reported := newProject()
		generate(reported.ID)
		waitForReport(reported.ID)

		got := decode[entities.Report](do(operations.ReportByProjectID, vars{"projectId": reported.ID}), "report")
		stored, err := h.Oracle.ReportForProject(ctx, reported.ID)
		Expect(err).NotTo(HaveOccurred())

		Expect(got.ProjectID).To(Equal(reported.ID))
		Expect(got.Status).To(Equal(stored.Status))
		Expect(entities.SameInstant(got.TimeStart, stored.TimeStart)).To(BeTrue())
		Expect(got.TimeTaken).To(Equal(stored.TimeTaken))
		Expect(got.TotalTestTimeTaken).To(Equal(stored.TotalTestTimeTaken))
		Expect(got.InputBlockData).To(Equal(stored.InputBlockData))
	})

	It("fails to report on a project that does not exist", func() {
		gone := newProject()
		Expect(do(operations.DeleteProject, vars{"deleteProjectId": gone.ID})).To(scenario.HaveNoErrors())
		forget(gone.ID)

		resp := do(operations.ReportByProjectID, vars{"projectId": gone.ID})
		Expect(resp).To(scenario.HaveErrorCode(scenario.InternalServerError))

		_, err := h.Oracle.Project(ctx, gone.ID)
		Expect(apperrors.IsNotFound(err)).To(BeTrue())
	})

	It("rejects an empty report id", func() {
		resp := do(operations.ReportByProjectID, vars{"projectId": ""})
		Expect(resp).To(scenario.HaveErrorCode(scenario.BadUserInput))
	})
})

var _ = Describe("Project round trip", func() {
	It("returns what was created", func() {
		input := entities.ProjectInput{
			ProjectInfo: &entities.ProjectInfoInput{
				Name:        h.Fixtures.UniqueName("Round trip"),
				Company:     "Testing Company 7",
				Description: "We do testing",
				ReportTitle: "Testing",
			},
			GlobalVars: fixtures.DefaultProjectTemplateInput().GlobalVars,
			Pages:      fixtures.DefaultPages(),
		}
		created, err := h.Fixtures.CreateProject(ctx, input)
		Expect(err).NotTo(HaveOccurred())

		got := decode[entities.Project](do(operations.ProjectDetail, vars{"projectId": created.ID}), "project")
		Expect(scenario.SameProjectInfo(input.ProjectInfo.Info(), got.ProjectInfo)).To(Succeed())
		Expect(scenario.SameGlobalVars(input.GlobalVars, got.GlobalVars)).To(Succeed())
		Expect(scenario.SamePages(scenario.PagesFromInput(input.Pages), got.Pages)).To(Succeed())
	})
})
