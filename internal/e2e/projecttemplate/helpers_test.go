//go:build e2e

package projecttemplate_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/zatekoja/projectapi-e2e/internal/domain/entities"
	"github.com/zatekoja/projectapi-e2e/internal/graphql/client"
	"github.com/zatekoja/projectapi-e2e/internal/ledger"
	"github.com/zatekoja/projectapi-e2e/internal/scenario"
)

type vars = map[string]any

func do(query string, variables vars) *client.Response {
	GinkgoHelper()
	resp, err := h.Client.Do(ctx, query, variables)
	Expect(err).NotTo(HaveOccurred())
	return resp
}

func decode[T any](resp *client.Response, field string) *T {
	GinkgoHelper()
	Expect(resp).To(scenario.HaveNoErrors())
	out := new(T)
	Expect(resp.Decode(field, out)).To(Succeed())
	return out
}

func newTemplate() *entities.ProjectTemplate {
	GinkgoHelper()
	created, err := h.Fixtures.NewProjectTemplate(ctx)
	Expect(err).NotTo(HaveOccurred())
	return created.Entity
}

func stored(id string) *entities.ProjectTemplate {
	GinkgoHelper()
	tpl, err := h.Oracle.ProjectTemplate(ctx, id)
	Expect(err).NotTo(HaveOccurred())
	return tpl
}

func track(id string) {
	h.Fixtures.Track(ctx, ledger.KindProjectTemplate, id)
}

// forget drops an entity the spec deleted itself so cleanup does not retry it
func forget(id string) {
	GinkgoHelper()
	Expect(h.Ledger.Forget(ctx, h.Fixtures.RunID(), id)).To(Succeed())
}

// rejected asserts the leading messages in order and that no document was written
func rejected(query string, variables vars, messages ...string) {
	GinkgoHelper()
	g, err := scenario.NewCountGuard(ctx, h.Oracle)
	Expect(err).NotTo(HaveOccurred())

	resp := do(query, variables)
	Expect(len(resp.Errors)).To(BeNumerically(">=", len(messages)), "messages: %v", resp.Messages())
	for i, msg := range messages {
		Expect(resp).To(scenario.HaveErrorMessage(i, msg))
	}
	Expect(g.Unchanged(ctx)).To(Succeed())
}
