package client

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/vektah/gqlparser/v2/gqlerror"
	apperrors "github.com/zatekoja/projectapi-e2e/pkg/errors"
)

// Response is one decoded GraphQL reply
type Response struct {
	StatusCode int
	Data       json.RawMessage
	Errors     gqlerror.List
	Extensions map[string]any
}

// HasErrors reports whether the errors array is non-empty
func (r *Response) HasErrors() bool {
	return len(r.Errors) > 0
}

// Messages returns the error messages in response order
func (r *Response) Messages() []string {
	out := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		out[i] = e.Message
	}
	return out
}

// Codes returns extensions.code of each error; missing codes are empty strings
func (r *Response) Codes() []string {
	out := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		if code, ok := e.Extensions["code"].(string); ok {
			out[i] = code
		}
	}
	return out
}

// Field returns the raw JSON of a top-level data field, or nil when absent or null
func (r *Response) Field(field string) json.RawMessage {
	if len(r.Data) == 0 {
		return nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(r.Data, &fields); err != nil {
		return nil
	}
	raw, ok := fields[field]
	if !ok || string(raw) == "null" {
		return nil
	}
	return raw
}

// Decode unmarshals a top-level data field into out
func (r *Response) Decode(field string, out any) error {
	raw := r.Field(field)
	if raw == nil {
		return apperrors.NewDecodeError(fmt.Sprintf("data.%s is missing or null", field), r.Err())
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return apperrors.NewDecodeError(fmt.Sprintf("decode data.%s", field), err)
	}
	return nil
}

// Err returns the GraphQL errors as a Go error, or nil
func (r *Response) Err() error {
	if !r.HasErrors() {
		return nil
	}
	return &ResponseError{Response: r}
}

// ResponseError carries a response whose errors prevented the caller from
// getting the data it needed
type ResponseError struct {
	Response *Response
}

// Error implements the error interface
func (e *ResponseError) Error() string {
	return fmt.Sprintf("graphql errors (status %d): %s", e.Response.StatusCode, strings.Join(e.Response.Messages(), "; "))
}
