package lookapp

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates a resource was not found.
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput indicates invalid input was provided.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates the request was unauthorized.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrSessionNotFound indicates the chat session was not found.
	ErrSessionNotFound = errors.New("session not found")

	// ErrGatewayRefusal indicates the search gateway declined to compose a
	// search phrase for the query.
	ErrGatewayRefusal = errors.New("gateway declined the query")
)

// Error codes used across the SDK and mapped onto HTTP statuses.
const (
	ErrCodeValidation = "validation_error"
	ErrCodeNotFound   = "not_found"
	ErrCodeAuth       = "auth_error"
	ErrCodeGateway    = "gateway_error"
	ErrCodeTimeout    = "timeout"
	ErrCodeInternal   = "internal_error"
)

// Error is a coded SDK error carrying optional structured details.
type Error struct {
	Code    string
	Message string
	Details map[string]any
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a coded error wrapping an underlying cause.
func NewError(code, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// NewValidationError creates a validation error.
func NewValidationError(message string) *Error {
	return &Error{Code: ErrCodeValidation, Message: message, Err: ErrInvalidInput}
}

// NewNotFoundError creates a not-found error for a named resource.
func NewNotFoundError(resource, id string) *Error {
	return &Error{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Details: map[string]any{"resource": resource, "id": id},
		Err:     ErrNotFound,
	}
}

// NewGatewayError creates an error for a failed search gateway call.
func NewGatewayError(message string, err error) *Error {
	return &Error{Code: ErrCodeGateway, Message: message, Err: err}
}
