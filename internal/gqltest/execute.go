package gqltest

import (
	"encoding/json"

	"github.com/99designs/gqlgen/graphql"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"github.com/zatekoja/projectapi-e2e/internal/scenario"
)

type execution struct {
	server *Server
	errs   gqlerror.List
}

// execute runs an operation with the lock held
func (s *Server) execute(op *ast.OperationDefinition, vars map[string]any) *graphql.Response {
	e := &execution{server: s}
	data := make(map[string]any)
	nullData := false

	rootType := "Query"
	if op.Operation == ast.Mutation {
		rootType = "Mutation"
	}

	for _, field := range collectFields(op.SelectionSet) {
		key := responseKey(field)
		if field.Name == "__typename" {
			data[key] = rootType
			continue
		}

		args := field.ArgumentMap(vars)
		value, err := s.resolveRoot(op.Operation, field.Name, args)
		if err != nil {
			e.errs = append(e.errs, &gqlerror.Error{
				Message:    err.Error(),
				Path:       ast.Path{ast.PathName(key)},
				Extensions: map[string]interface{}{"code": scenario.InternalServerError},
			})
			data[key] = nil
			if field.Definition.Type.NonNull {
				nullData = true
			}
			continue
		}

		out, ok := e.complete(value, field.Definition.Type, field, rootType, ast.Path{ast.PathName(key)})
		if !ok {
			nullData = true
		}
		data[key] = out
	}

	resp := &graphql.Response{Errors: e.errs}
	if nullData {
		resp.Data = json.RawMessage("null")
	} else {
		b, err := json.Marshal(data)
		if err != nil {
			resp.Errors = append(resp.Errors, gqlerror.Errorf("marshal data: %v", err))
			resp.Data = json.RawMessage("null")
		} else {
			resp.Data = b
		}
	}
	return resp
}

// complete projects value through the field's selection set. A false result
// means a non-null violation that the parent must absorb.
func (e *execution) complete(value any, typ *ast.Type, field *ast.Field, parentType string, path ast.Path) (any, bool) {
	if value == nil {
		if typ.NonNull {
			e.errs = append(e.errs, &gqlerror.Error{
				Message:    scenario.NullForNonNullableField(parentType, field.Name),
				Path:       path,
				Extensions: map[string]interface{}{"code": scenario.InternalServerError},
			})
			return nil, false
		}
		return nil, true
	}

	if typ.Elem != nil {
		items, ok := value.([]any)
		if !ok {
			items = []any{value}
		}
		out := make([]any, len(items))
		for i, item := range items {
			v, ok := e.complete(item, typ.Elem, field, parentType, appendPath(path, ast.PathIndex(i)))
			if !ok {
				return nil, !typ.NonNull
			}
			out[i] = v
		}
		return out, true
	}

	def := e.server.schema.Types[typ.NamedType]
	if def == nil || def.Kind != ast.Object {
		return value, true
	}

	obj, _ := value.(map[string]any)
	out := make(map[string]any)
	for _, child := range collectFields(field.SelectionSet) {
		key := responseKey(child)
		if child.Name == "__typename" {
			out[key] = def.Name
			continue
		}
		v, ok := e.complete(e.server.resolveField(def.Name, obj, child.Name), child.Definition.Type, child, def.Name, appendPath(path, ast.PathName(key)))
		if !ok {
			return nil, !typ.NonNull
		}
		out[key] = v
	}
	return out, true
}

func collectFields(set ast.SelectionSet) []*ast.Field {
	var fields []*ast.Field
	for _, sel := range set {
		switch s := sel.(type) {
		case *ast.Field:
			fields = append(fields, s)
		case *ast.InlineFragment:
			fields = append(fields, collectFields(s.SelectionSet)...)
		case *ast.FragmentSpread:
			if s.Definition != nil {
				fields = append(fields, collectFields(s.Definition.SelectionSet)...)
			}
		}
	}
	return fields
}

func responseKey(f *ast.Field) string {
	if f.Alias != "" {
		return f.Alias
	}
	return f.Name
}

func appendPath(path ast.Path, el ast.PathElement) ast.Path {
	out := make(ast.Path, len(path), len(path)+1)
	copy(out, path)
	return append(out, el)
}
