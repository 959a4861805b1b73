package operations

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

//go:embed schema.graphql
var schemaSDL string

var (
	schemaOnce sync.Once
	schema     *ast.Schema
	schemaErr  error
)

// SDL returns the embedded schema source
func SDL() string {
	return schemaSDL
}

// Schema returns the parsed schema, loading it once
func Schema() (*ast.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = gqlparser.LoadSchema(&ast.Source{Name: "schema.graphql", Input: schemaSDL})
	})
	return schema, schemaErr
}

// Load parses and validates a document against the schema
func Load(query string) (*ast.QueryDocument, error) {
	s, err := Schema()
	if err != nil {
		return nil, fmt.Errorf("load schema: %w", err)
	}
	doc, errs := gqlparser.LoadQuery(s, query)
	if len(errs) > 0 {
		return nil, errs
	}
	return doc, nil
}

// Validate checks a document against the schema
func Validate(query string) error {
	_, err := Load(query)
	return err
}

// ValidateAll validates every known document and reports failures by name
func ValidateAll() map[string]error {
	failures := make(map[string]error)
	for _, d := range All() {
		if err := Validate(d.Query); err != nil {
			failures[d.Name] = err
		}
	}
	return failures
}

// Info describes the first operation of a document
type Info struct {
	Name      string
	Operation ast.Operation
	Variables []string
}

var describeCache sync.Map

// Describe parses a document without the schema. Unnamed operations
// are reported as "anonymous".
func Describe(query string) (Info, error) {
	if cached, ok := describeCache.Load(query); ok {
		return cached.(Info), nil
	}

	doc, err := parser.ParseQuery(&ast.Source{Input: query})
	if err != nil {
		return Info{}, fmt.Errorf("parse document: %w", err)
	}
	if len(doc.Operations) == 0 {
		return Info{}, fmt.Errorf("document has no operation")
	}

	op := doc.Operations[0]
	info := Info{Name: op.Name, Operation: op.Operation}
	if info.Name == "" {
		info.Name = "anonymous"
	}
	for _, v := range op.VariableDefinitions {
		info.Variables = append(info.Variables, v.Variable)
	}

	describeCache.Store(query, info)
	return info, nil
}

// RootField returns the response key of the first selected root field.
func RootField(query string) (string, error) {
	doc, err := parser.ParseQuery(&ast.Source{Input: query})
	if err != nil {
		return "", fmt.Errorf("parse document: %w", err)
	}
	if len(doc.Operations) == 0 {
		return "", fmt.Errorf("document has no operation")
	}
	for _, sel := range doc.Operations[0].SelectionSet {
		if f, ok := sel.(*ast.Field); ok {
			if f.Alias != "" {
				return f.Alias, nil
			}
			return f.Name, nil
		}
	}
	return "", fmt.Errorf("operation %s selects no field", strings.TrimSpace(doc.Operations[0].Name))
}
