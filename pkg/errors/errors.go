package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorType represents the class of a harness failure
type ErrorType string

const (
	// ErrorTypeNotFound indicates the oracle found no matching document
	ErrorTypeNotFound ErrorType = "NOT_FOUND"

	// ErrorTypeValidation indicates bad harness input (config, ids, arguments)
	ErrorTypeValidation ErrorType = "VALIDATION"

	// ErrorTypeTransport indicates the request never produced a GraphQL response
	ErrorTypeTransport ErrorType = "TRANSPORT"

	// ErrorTypeDecode indicates a response body or document could not be decoded
	ErrorTypeDecode ErrorType = "DECODE"

	// ErrorTypeUpstream indicates the system under test answered with GraphQL errors
	// where the harness needed data
	ErrorTypeUpstream ErrorType = "UPSTREAM"

	// ErrorTypeInternal indicates a harness bug or unexpected state
	ErrorTypeInternal ErrorType = "INTERNAL"
)

// AppError represents a harness error
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap implements the unwrap interface
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: message,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
	}
}

// NewTransportError creates a new transport error
func NewTransportError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeTransport,
		Message: message,
		Err:     err,
	}
}

// NewDecodeError creates a new decode error
func NewDecodeError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeDecode,
		Message: message,
		Err:     err,
	}
}

// NewUpstreamError creates a new upstream error
func NewUpstreamError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeUpstream,
		Message: message,
		Err:     err,
	}
}

// NewInternalError creates a new internal error
func NewInternalError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeInternal,
		Message: message,
		Err:     err,
	}
}

// TypeOf returns the ErrorType of the first AppError in err's chain, or "".
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Type
	}
	return ""
}

// IsNotFound reports whether err carries ErrorTypeNotFound
func IsNotFound(err error) bool {
	return TypeOf(err) == ErrorTypeNotFound
}

// IsUpstream reports whether err carries ErrorTypeUpstream
func IsUpstream(err error) bool {
	return TypeOf(err) == ErrorTypeUpstream
}
