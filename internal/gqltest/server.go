// Package gqltest provides an in-memory stand-in for the project API so the
// harness packages can be unit tested without a live backend.
package gqltest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/99designs/gqlgen/graphql"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"github.com/zatekoja/projectapi-e2e/internal/graphql/operations"
	"github.com/zatekoja/projectapi-e2e/internal/scenario"
)

// Path is the route the fake serves GraphQL on
const Path = "/graphql"

const (
	kindProject  = "project"
	kindTemplate = "projectTemplate"
)

type record struct {
	kind string
	doc  map[string]any
}

// Server is an httptest-backed GraphQL endpoint
type Server struct {
	*httptest.Server

	mu                sync.Mutex
	schema            *ast.Schema
	records           map[string]*record
	order             []string
	reports           map[string]map[string]any
	requests          []graphql.RawParams
	generateCompletes bool
	now               func() time.Time
}

// New starts a fake backend that is closed when the test ends
func New(t testing.TB) *Server {
	t.Helper()
	s, err := NewServer()
	if err != nil {
		t.Fatalf("gqltest: %v", err)
	}
	t.Cleanup(s.Close)
	return s
}

// NewServer starts a fake backend; callers must Close it
func NewServer() (*Server, error) {
	schema, err := operations.Schema()
	if err != nil {
		return nil, err
	}
	s := &Server{
		schema:  schema,
		records: make(map[string]*record),
		reports: make(map[string]map[string]any),
		now:     time.Now,
	}
	mux := http.NewServeMux()
	mux.Handle(Path, s)
	s.Server = httptest.NewServer(mux)
	return s, nil
}

// Endpoint returns the GraphQL URL
func (s *Server) Endpoint() string {
	return s.URL + Path
}

// GenerateCompletes makes generateReport finish synchronously
func (s *Server) GenerateCompletes(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generateCompletes = v
}

// CompleteReports moves every generating report to ReportGenerated
func (s *Server) CompleteReports() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.reports {
		if r["status"] == string(statusGenerating) {
			s.finishReport(r)
		}
	}
}

// Count returns the number of stored projects and templates
func (s *Server) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// Has reports whether a project or template with id is stored
func (s *Server) Has(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.records[id]
	return ok
}

// Doc returns a copy of a stored document
func (s *Server) Doc(id string) (map[string]any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[id]
	if !ok {
		return nil, false
	}
	return deepCopy(rec.doc).(map[string]any), true
}

// Requests returns every request received so far
func (s *Server) Requests() []graphql.RawParams {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]graphql.RawParams, len(s.requests))
	copy(out, s.requests)
	return out
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var params graphql.RawParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		writeResponse(w, http.StatusBadRequest, &graphql.Response{
			Errors: gqlerror.List{withCode(gqlerror.Errorf("body is not valid JSON: %v", err), scenario.BadUserInput)},
		})
		return
	}

	s.mu.Lock()
	s.requests = append(s.requests, params)
	s.mu.Unlock()

	doc, errs := gqlparser.LoadQuery(s.schema, params.Query)
	if len(errs) > 0 {
		for _, e := range errs {
			withCode(e, "GRAPHQL_VALIDATION_FAILED")
		}
		writeResponse(w, http.StatusBadRequest, &graphql.Response{Errors: errs})
		return
	}

	op := doc.Operations.ForName(params.OperationName)
	if op == nil {
		writeResponse(w, http.StatusBadRequest, &graphql.Response{
			Errors: gqlerror.List{withCode(gqlerror.Errorf("Unknown operation named %q.", params.OperationName), scenario.BadUserInput)},
		})
		return
	}

	vars, errs := coerceVariables(s.schema, op, params.Variables)
	if len(errs) > 0 {
		writeResponse(w, http.StatusBadRequest, &graphql.Response{Errors: errs})
		return
	}

	s.mu.Lock()
	resp := s.execute(op, vars)
	s.mu.Unlock()
	writeResponse(w, http.StatusOK, resp)
}

func writeResponse(w http.ResponseWriter, status int, resp *graphql.Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

func withCode(err *gqlerror.Error, code string) *gqlerror.Error {
	if err.Extensions == nil {
		err.Extensions = map[string]interface{}{}
	}
	err.Extensions["code"] = code
	return err
}
