package scenario

import (
	"fmt"
	"strings"
)

// Error codes carried in extensions.code
const (
	BadUserInput        = "BAD_USER_INPUT"
	InternalServerError = "INTERNAL_SERVER_ERROR"
)

// Domain errors raised by report generation
const (
	PreviousGenerationRunning = "Previous report generation still running"
	ReportNotFound            = "Report not found"
	ReportNotGenerating       = "Report is not generating"
)

// ObjectIDType is the non-null id type used by every id argument
const ObjectIDType = "ObjectID!"

// InvalidValue renders a variable coercion failure. path is omitted when empty.
func InvalidValue(variable string, value any, path, reason string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Variable \"$%s\" got invalid value %s", variable, Inspect(value))
	if path != "" {
		fmt.Fprintf(&b, " at \"%s\"", path)
	}
	b.WriteString("; ")
	b.WriteString(reason)
	return b.String()
}

// InvalidObjectIDReason is the scalar's own parse failure text
func InvalidObjectIDReason(value any) string {
	return "Value is not a valid mongodb object id of form: " + Raw(value)
}

// InvalidObjectID is the message for a malformed id variable
func InvalidObjectID(variable string, value any) string {
	return InvalidValue(variable, value, "", InvalidObjectIDReason(value))
}

// NonNullVariable is the message for an explicit null on a non-null variable
func NonNullVariable(variable, typ string) string {
	return fmt.Sprintf("Variable \"$%s\" of non-null type \"%s\" must not be null.", variable, typ)
}

// VariableNotProvided is the message for an omitted non-null variable
func VariableNotProvided(variable, typ string) string {
	return fmt.Sprintf("Variable \"$%s\" of required type \"%s\" was not provided.", variable, typ)
}

// NonStringReason is the String scalar's parse failure text
func NonStringReason(value any) string {
	return "String cannot represent a non string value: " + Inspect(value)
}

// NonStringValue is the message for a non-string value in a String input field
func NonStringValue(variable string, value any, path string) string {
	return InvalidValue(variable, value, path, NonStringReason(value))
}

// NonNullableReason is the text for a null in a non-null input field
func NonNullableReason(typ string) string {
	return fmt.Sprintf("Expected non-nullable type \"%s\" not to be null.", typ)
}

// NonNullableField is the message for a null in a non-null input field
func NonNullableField(variable, path, typ string) string {
	return InvalidValue(variable, nil, path, NonNullableReason(typ))
}

// MinLengthReason is the constraint scalar's text for a too-short string
func MinLengthReason(typ string, n int) string {
	return fmt.Sprintf("Expected type \"%s\". Must be at least %d characters in length", typ, n)
}

// MaxLengthReason is the constraint scalar's text for a too-long string
func MaxLengthReason(typ string, n int) string {
	return fmt.Sprintf("Expected type \"%s\". Must be no more than %d characters in length", typ, n)
}

// MinLength is the message for a string below a field's minimum length
func MinLength(variable string, value any, path, typ string, n int) string {
	return InvalidValue(variable, value, path, MinLengthReason(typ, n))
}

// NotDefinedReason is the text for an input field absent from the input type
func NotDefinedReason(field, typ string) string {
	return fmt.Sprintf("Field \"%s\" is not defined by type \"%s\".", field, typ)
}

// NullForNonNullableField is the execution error for a null in a non-null output field
func NullForNonNullableField(typ, field string) string {
	return fmt.Sprintf("Cannot return null for non-nullable field %s.%s.", typ, field)
}

// Unexpected wraps a non-Error value thrown by a resolver
func Unexpected(msg string) string {
	return "Unexpected error value: " + Inspect(msg)
}
