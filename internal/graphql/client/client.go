// Package client sends GraphQL operations to the system under test.
//
// A GraphQL error body is a response, not a Go error, whatever its HTTP
// status: variable coercion failures arrive as 400s and the suites assert on
// them. Go errors are reserved for requests that produced no GraphQL body.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/99designs/gqlgen/graphql"
	"github.com/zatekoja/projectapi-e2e/internal/graphql/operations"
	"github.com/zatekoja/projectapi-e2e/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/projectapi-e2e/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
)

// maxErrorBody bounds how much of a non-GraphQL body is echoed in errors
const maxErrorBody = 512

// Client posts operations to a single GraphQL endpoint
type Client struct {
	endpoint   string
	httpClient *http.Client
	metrics    *observability.Metrics
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the transport
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.httpClient = h
	}
}

// WithMetrics records each round trip on the given instruments
func WithMetrics(m *observability.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// New creates a client for endpoint. timeout is the only timeout applied.
func New(endpoint string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		endpoint: strings.TrimRight(endpoint, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the configured URL
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Do performs exactly one POST of {query, variables, operationName}.
// Keys absent from variables are not sent, which is distinct from a nil value.
func (c *Client) Do(ctx context.Context, query string, variables map[string]any) (*Response, error) {
	info, err := operations.Describe(query)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	ctx, span := observability.StartSpan(ctx, "graphql."+info.Name)
	defer span.End()
	observability.SetSpanAttributes(span,
		attribute.String("graphql.operation.name", info.Name),
		attribute.String("graphql.operation.type", string(info.Operation)),
	)

	start := time.Now()
	resp, err := c.roundTrip(ctx, request{
		Query:         query,
		OperationName: operationName(info.Name),
		Variables:     variables,
	})
	duration := time.Since(start)

	logger := observability.LoggerFromContext(ctx)
	if err != nil {
		observability.RecordError(span, err)
		logger.Debug().Err(err).Str("operation", info.Name).Dur("duration", duration).Msg("graphql request failed")
		return nil, err
	}

	observability.SetSpanAttributes(span,
		attribute.Int("http.status_code", resp.StatusCode),
		attribute.Int("graphql.errors", len(resp.Errors)),
	)
	observability.RecordOperationMetric(ctx, c.metrics, info.Name, resp.StatusCode, len(resp.Errors), duration)
	logger.Debug().
		Str("operation", info.Name).
		Int("status", resp.StatusCode).
		Int("errors", len(resp.Errors)).
		Dur("duration", duration).
		Msg("graphql round trip")

	return resp, nil
}

// request is the POST body; empty fields are left out rather than sent as null
type request struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName,omitempty"`
	Variables     map[string]any `json:"variables,omitempty"`
}

func (c *Client) roundTrip(ctx context.Context, params request) (*Response, error) {
	body, err := json.Marshal(params)
	if err != nil {
		return nil, apperrors.NewValidationError(fmt.Sprintf("variables are not JSON encodable: %v", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, apperrors.NewTransportError("build request", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, apperrors.NewTransportError(fmt.Sprintf("post %s", c.endpoint), err)
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, apperrors.NewTransportError("read response body", err)
	}

	var envelope graphql.Response
	if err := json.Unmarshal(raw, &envelope); err != nil || !isGraphQLBody(&envelope) {
		if err == nil {
			err = fmt.Errorf("body carries neither data nor errors")
		}
		return nil, apperrors.NewDecodeError(
			fmt.Sprintf("status %d from %s is not a GraphQL response: %s", httpResp.StatusCode, c.endpoint, truncate(raw)),
			err,
		)
	}

	return &Response{
		StatusCode: httpResp.StatusCode,
		Data:       envelope.Data,
		Errors:     envelope.Errors,
		Extensions: envelope.Extensions,
	}, nil
}

func isGraphQLBody(r *graphql.Response) bool {
	return len(r.Errors) > 0 || (len(r.Data) > 0 && string(r.Data) != "null")
}

func operationName(name string) string {
	if name == "anonymous" {
		return ""
	}
	return name
}

func truncate(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) > maxErrorBody {
		return s[:maxErrorBody] + "..."
	}
	return s
}
