//go:build e2e

package project_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/zatekoja/projectapi-e2e/internal/domain/entities"
	"github.com/zatekoja/projectapi-e2e/internal/graphql/client"
	"github.com/zatekoja/projectapi-e2e/internal/graphql/operations"
	"github.com/zatekoja/projectapi-e2e/internal/ledger"
	"github.com/zatekoja/projectapi-e2e/internal/scenario"
)

type vars = map[string]any

// do sends one operation; only transport failures fail the spec here
func do(query string, variables vars) *client.Response {
	GinkgoHelper()
	resp, err := h.Client.Do(ctx, query, variables)
	Expect(err).NotTo(HaveOccurred())
	return resp
}

// decode reads field out of a response that must carry no errors
func decode[T any](resp *client.Response, field string) *T {
	GinkgoHelper()
	Expect(resp).To(scenario.HaveNoErrors())
	out := new(T)
	Expect(resp.Decode(field, out)).To(Succeed())
	return out
}

func newProject() *entities.Project {
	GinkgoHelper()
	created, err := h.Fixtures.NewProject(ctx)
	Expect(err).NotTo(HaveOccurred())
	return created.Entity
}

func algorithms() []string {
	return []string{h.Config.Suite.Algorithm}
}

// generate triggers report generation and returns the status it reported
func generate(projectID string) entities.ReportStatus {
	GinkgoHelper()
	resp := do(operations.GenerateReportStatus, vars{"projectId": projectID, "algorithms": algorithms()})
	report := decode[entities.Report](resp, "generateReport")
	Expect(scenario.GenerationStarted(report.Status)).To(BeTrue(), "unexpected status %s", report.Status)
	return report.Status
}

func waitForReport(projectID string) {
	GinkgoHelper()
	Eventually(scenario.ReportStatus(ctx, h.Client, projectID)).
		WithTimeout(h.Config.Suite.ReportTimeout).
		WithPolling(h.Config.Suite.ReportPoll).
		Should(Equal(entities.ReportStatusReportGenerated))
}

func track(id string) {
	h.Fixtures.Track(ctx, ledger.KindProject, id)
}

// forget drops an entity the spec deleted itself so cleanup does not retry it
func forget(id string) {
	GinkgoHelper()
	Expect(h.Ledger.Forget(ctx, h.Fixtures.RunID(), id)).To(Succeed())
}

func countGuard() *scenario.CountGuard {
	GinkgoHelper()
	g, err := scenario.NewCountGuard(ctx, h.Oracle)
	Expect(err).NotTo(HaveOccurred())
	return g
}
