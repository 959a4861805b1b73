package gqltest

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/zatekoja/projectapi-e2e/internal/domain/entities"
	"github.com/zatekoja/projectapi-e2e/internal/graphql/scalars"
	"github.com/zatekoja/projectapi-e2e/internal/scenario"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	statusGenerating = entities.ReportStatusGeneratingReport
	statusGenerated  = entities.ReportStatusReportGenerated
)

var (
	errProjectNotFound  = errors.New("Project not found")
	errTemplateNotFound = errors.New("Project template not found")
)

const reportRef = "_report"

func (s *Server) resolveRoot(op ast.Operation, name string, args map[string]any) (any, error) {
	id, _ := args["id"].(string)
	projectID, _ := args["projectID"].(string)

	if op == ast.Query {
		switch name {
		case "projects":
			return s.list(kindProject), nil
		case "project":
			return s.find(kindProject, id, errProjectNotFound)
		case "projectTemplates":
			return s.list(kindTemplate), nil
		case "projectTemplate":
			return s.find(kindTemplate, id, errTemplateNotFound)
		case "report":
			return s.report(projectID)
		}
		return nil, fmt.Errorf("no resolver for Query.%s", name)
	}

	switch name {
	case "createProject":
		return s.create(kindProject, asMap(args["project"]))
	case "updateProject":
		return s.update(kindProject, id, asMap(args["project"]), errProjectNotFound)
	case "deleteProject":
		return s.remove(kindProject, id, errProjectNotFound)
	case "cloneProject":
		return s.clone(kindProject, id, errProjectNotFound)
	case "generateReport":
		return s.generateReport(projectID)
	case "cancelTestRuns":
		return s.cancelTestRuns(projectID)
	case "createProjectTemplate":
		return s.create(kindTemplate, asMap(args["projectTemplate"]))
	case "updateProjectTemplate":
		return s.update(kindTemplate, id, asMap(args["projectTemplate"]), errTemplateNotFound)
	case "deleteProjectTemplate":
		return s.remove(kindTemplate, id, errTemplateNotFound)
	case "cloneProjectTemplate":
		return s.clone(kindTemplate, id, errTemplateNotFound)
	}
	return nil, fmt.Errorf("no resolver for Mutation.%s", name)
}

func (s *Server) resolveField(typeName string, obj map[string]any, field string) any {
	if obj == nil {
		return nil
	}
	if typeName == "Project" && field == "report" {
		ref, _ := obj[reportRef].(string)
		if r, ok := s.reports[ref]; ok {
			return r
		}
		return nil
	}
	return obj[field]
}

func (s *Server) list(kind string) []any {
	out := make([]any, 0, len(s.order))
	for _, id := range s.order {
		if rec := s.records[id]; rec != nil && rec.kind == kind {
			out = append(out, rec.doc)
		}
	}
	return out
}

func (s *Server) find(kind, id string, notFound error) (map[string]any, error) {
	rec, ok := s.records[id]
	if !ok || rec.kind != kind {
		return nil, notFound
	}
	return rec.doc, nil
}

func (s *Server) timestamp() json.RawMessage {
	var b strings.Builder
	scalars.MarshalDateTime(s.now()).MarshalGQL(&b)
	return json.RawMessage(b.String())
}

func (s *Server) create(kind string, input map[string]any) (any, error) {
	info := asMap(input["projectInfo"])
	doc := map[string]any{
		"id":          primitive.NewObjectID().Hex(),
		"fromPlugin":  false,
		"projectInfo": projectInfo(info),
		"globalVars":  listOrEmpty(input["globalVars"]),
		"pages":       listOrEmpty(input["pages"]),
		"createdAt":   s.timestamp(),
		"updatedAt":   s.timestamp(),
	}
	if kind == kindProject {
		doc["inputBlockData"] = input["inputBlockData"]
		doc["testInformationData"] = input["testInformationData"]
	}

	// an unnamed document is never stored; completion then fails on ProjectInformation.name
	if info["name"] == nil {
		return doc, nil
	}
	if kind == kindProject {
		for _, other := range s.list(kindProject) {
			if asMap(asMap(other)["projectInfo"])["name"] == info["name"] {
				return nil, fmt.Errorf("E11000 duplicate key error collection: aiverify.projecttemplatemodels index: projectInfo.name_1 dup key: { projectInfo.name: %s }", scenario.Inspect(info["name"]))
			}
		}
	}

	s.store(kind, doc)
	return doc, nil
}

func (s *Server) store(kind string, doc map[string]any) {
	id := doc["id"].(string)
	s.records[id] = &record{kind: kind, doc: doc}
	s.order = append(s.order, id)
}

func (s *Server) update(kind, id string, input map[string]any, notFound error) (any, error) {
	doc, err := s.find(kind, id, notFound)
	if err != nil {
		return nil, err
	}

	if info := asMap(input["projectInfo"]); info != nil {
		current := asMap(doc["projectInfo"])
		for k, v := range info {
			if v != nil {
				current[k] = v
			}
		}
	}
	for _, key := range []string{"globalVars", "pages"} {
		if v, ok := input[key]; ok && v != nil {
			doc[key] = v
		}
	}
	if kind == kindProject {
		for _, key := range []string{"inputBlockData", "testInformationData"} {
			if v, ok := input[key]; ok && v != nil {
				doc[key] = v
			}
		}
	}
	doc["updatedAt"] = s.timestamp()
	return doc, nil
}

func (s *Server) remove(kind, id string, notFound error) (any, error) {
	doc, err := s.find(kind, id, notFound)
	if err != nil {
		return nil, err
	}
	if ref, ok := doc[reportRef].(string); ok {
		delete(s.reports, ref)
	}
	delete(s.records, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return id, nil
}

func (s *Server) clone(kind, id string, notFound error) (any, error) {
	doc, err := s.find(kind, id, notFound)
	if err != nil {
		return nil, err
	}
	cp := deepCopy(doc).(map[string]any)
	delete(cp, reportRef)
	cp["id"] = primitive.NewObjectID().Hex()
	info := asMap(cp["projectInfo"])
	if name, ok := info["name"].(string); ok {
		info["name"] = entities.CloneName(name)
	}
	cp["createdAt"] = s.timestamp()
	cp["updatedAt"] = s.timestamp()
	s.store(kind, cp)
	return cp, nil
}

func (s *Server) report(projectID string) (any, error) {
	doc, err := s.find(kindProject, projectID, errProjectNotFound)
	if err != nil {
		return nil, err
	}
	ref, _ := doc[reportRef].(string)
	r, ok := s.reports[ref]
	if !ok {
		return nil, errors.New(scenario.Unexpected(scenario.ReportNotFound))
	}
	return r, nil
}

func (s *Server) generateReport(projectID string) (any, error) {
	doc, err := s.find(kindProject, projectID, errProjectNotFound)
	if err != nil {
		return nil, errors.New(scenario.Unexpected(err.Error()))
	}
	if ref, ok := doc[reportRef].(string); ok {
		if existing := s.reports[ref]; existing != nil && existing["status"] == string(statusGenerating) {
			return nil, errors.New(scenario.Unexpected(scenario.PreviousGenerationRunning))
		}
		delete(s.reports, ref)
	}

	reportID := primitive.NewObjectID().Hex()
	doc[reportRef] = reportID
	r := map[string]any{
		"id":                 reportID,
		"projectID":          projectID,
		"status":             string(statusGenerating),
		"timeStart":          s.timestamp(),
		"timeTaken":          0,
		"totalTestTimeTaken": 0,
		"inputBlockData":     doc["inputBlockData"],
		"projectSnapshot":    deepCopy(doc),
		"_started":           s.now(),
	}
	s.reports[reportID] = r
	if s.generateCompletes {
		s.finishReport(r)
	}
	return r, nil
}

func (s *Server) cancelTestRuns(projectID string) (any, error) {
	doc, ok := s.records[projectID]
	if !ok || doc.kind != kindProject {
		return nil, errors.New(scenario.Unexpected(scenario.ReportNotFound))
	}
	ref, _ := doc.doc[reportRef].(string)
	r, ok := s.reports[ref]
	if !ok {
		return nil, errors.New(scenario.Unexpected(scenario.ReportNotFound))
	}
	if r["status"] != string(statusGenerating) {
		return nil, errors.New(scenario.Unexpected(scenario.ReportNotGenerating))
	}
	s.finishReport(r)
	return r, nil
}

func (s *Server) finishReport(r map[string]any) {
	r["status"] = string(statusGenerated)
	if started, ok := r["_started"].(time.Time); ok {
		r["timeTaken"] = int(s.now().Sub(started).Seconds())
	}
}

func projectInfo(in map[string]any) map[string]any {
	out := map[string]any{"name": nil, "description": nil, "reportTitle": nil, "company": nil}
	for k, v := range in {
		out[k] = v
	}
	return out
}

func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func listOrEmpty(v any) []any {
	if l, ok := v.([]any); ok {
		return l
	}
	return []any{}
}

func deepCopy(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = deepCopy(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = deepCopy(item)
		}
		return out
	default:
		return val
	}
}
