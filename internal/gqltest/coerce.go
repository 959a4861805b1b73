package gqltest

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"github.com/zatekoja/projectapi-e2e/internal/graphql/scalars"
	"github.com/zatekoja/projectapi-e2e/internal/scenario"
)

// coerceVariables applies input coercion to the request variables and
// reports every failure with the server's wording.
func coerceVariables(schema *ast.Schema, op *ast.OperationDefinition, raw map[string]any) (map[string]any, gqlerror.List) {
	out := make(map[string]any, len(op.VariableDefinitions))
	var errs gqlerror.List

	for _, def := range op.VariableDefinitions {
		value, present := raw[def.Variable]
		if !present {
			if def.Type.NonNull {
				errs = append(errs, badInput(scenario.VariableNotProvided(def.Variable, def.Type.String())))
			}
			continue
		}
		if value == nil && def.Type.NonNull {
			errs = append(errs, badInput(scenario.NonNullVariable(def.Variable, def.Type.String())))
			continue
		}

		c := &coercer{schema: schema, variable: def.Variable}
		coerced := c.coerce(value, def.Type, nil)
		if len(c.errs) > 0 {
			errs = append(errs, c.errs...)
			continue
		}
		out[def.Variable] = coerced
	}
	return out, errs
}

type coercer struct {
	schema   *ast.Schema
	variable string
	errs     gqlerror.List
}

func (c *coercer) fail(value any, path []any, reason string) {
	at := ""
	if len(path) > 0 {
		at = c.variable + printPath(path)
	}
	c.errs = append(c.errs, badInput(scenario.InvalidValue(c.variable, value, at, reason)))
}

func (c *coercer) coerce(value any, typ *ast.Type, path []any) any {
	if typ.NonNull {
		if value == nil {
			c.fail(nil, path, scenario.NonNullableReason(typ.String()))
			return nil
		}
		nullable := *typ
		nullable.NonNull = false
		return c.coerce(value, &nullable, path)
	}
	if value == nil {
		return nil
	}

	if typ.Elem != nil {
		items, ok := value.([]any)
		if !ok {
			return []any{c.coerce(value, typ.Elem, path)}
		}
		out := make([]any, len(items))
		for i, item := range items {
			out[i] = c.coerce(item, typ.Elem, extend(path, i))
		}
		return out
	}

	def := c.schema.Types[typ.NamedType]
	if def == nil {
		c.fail(value, path, fmt.Sprintf("Unknown type %q.", typ.NamedType))
		return nil
	}

	switch def.Kind {
	case ast.InputObject:
		obj, ok := value.(map[string]any)
		if !ok {
			c.fail(value, path, fmt.Sprintf("Expected type \"%s\" to be an object.", def.Name))
			return nil
		}
		out := make(map[string]any, len(def.Fields))
		for _, field := range def.Fields {
			fv, present := obj[field.Name]
			if !present {
				if field.Type.NonNull && field.DefaultValue == nil {
					c.fail(value, path,
						fmt.Sprintf("Field \"%s\" of required type \"%s\" was not provided.", field.Name, field.Type.String()))
				}
				continue
			}
			out[field.Name] = c.coerce(fv, field.Type, extend(path, field.Name))
		}
		for key := range obj {
			if def.Fields.ForName(key) == nil {
				c.fail(value, path, scenario.NotDefinedReason(key, def.Name))
			}
		}
		return out
	case ast.Enum:
		s, ok := value.(string)
		if !ok || def.EnumValues.ForName(s) == nil {
			c.fail(value, path, fmt.Sprintf("Value %s does not exist in \"%s\" enum.", scenario.Inspect(value), def.Name))
			return nil
		}
		return s
	case ast.Scalar:
		v, err := coerceScalar(def.Name, value)
		if err != nil {
			c.fail(value, path, err.Error())
			return nil
		}
		return v
	default:
		c.fail(value, path, fmt.Sprintf("Type \"%s\" is not an input type.", def.Name))
		return nil
	}
}

func coerceScalar(name string, value any) (any, error) {
	switch name {
	case "String", "ID":
		return scalars.UnmarshalString(value)
	case "Int":
		return scalars.UnmarshalInt(value)
	case "Float":
		f, ok := value.(float64)
		if !ok {
			return nil, fmt.Errorf("Float cannot represent non numeric value: %s", scenario.Inspect(value))
		}
		return f, nil
	case "Boolean":
		return scalars.UnmarshalBoolean(value)
	case "ObjectID":
		return scalars.UnmarshalObjectID(value)
	case "DateTime":
		t, err := scalars.UnmarshalDateTime(value)
		if err != nil {
			return nil, err
		}
		return t, nil
	case "JSON":
		return value, nil
	}
	if constraint, ok := scalars.ParseStringConstraint(name); ok {
		return constraint.Unmarshal(value)
	}
	return value, nil
}

func extend(path []any, elem any) []any {
	out := make([]any, len(path), len(path)+1)
	copy(out, path)
	return append(out, elem)
}

func printPath(path []any) string {
	var b strings.Builder
	for _, p := range path {
		switch v := p.(type) {
		case int:
			b.WriteString("[" + strconv.Itoa(v) + "]")
		default:
			b.WriteString("." + fmt.Sprint(v))
		}
	}
	return b.String()
}

func badInput(msg string) *gqlerror.Error {
	return withCode(&gqlerror.Error{Message: msg}, scenario.BadUserInput)
}
