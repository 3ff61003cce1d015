package apperrors

import (
	"fmt"
	"net/http"
)

// Common application errors
var (
	ErrUserExists         = NewConflictError("user", "User already exists")
	ErrUserNotFound       = NewNotFoundError("user", "User not found")
	ErrInvalidCredentials = NewInvalidCredentialsError("Invalid credentials")
)

// ConflictError represents a uniqueness violation, such as registering an
// email that already exists.
type ConflictError struct {
	Resource string
	Message  string
}

// NewConflictError creates a new conflict error
func NewConflictError(resource, message string) *ConflictError {
	return &ConflictError{
		Resource: resource,
		Message:  message,
	}
}

// Error implements the error interface
func (e *ConflictError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s already exists", e.Resource)
}

// HTTPStatus returns the HTTP status for this error. Duplicate registration
// is reported as 400, matching the service's external contract.
func (e *ConflictError) HTTPStatus() int {
	return http.StatusBadRequest
}

// NotFoundError represents a resource not found error
type NotFoundError struct {
	Resource string
	Message  string
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource, message string) *NotFoundError {
	return &NotFoundError{
		Resource: resource,
		Message:  message,
	}
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// HTTPStatus returns the HTTP status for this error
func (e *NotFoundError) HTTPStatus() int {
	return http.StatusNotFound
}

// InvalidCredentialsError represents a failed password comparison on login.
type InvalidCredentialsError struct {
	Message string
}

// NewInvalidCredentialsError creates a new invalid credentials error
func NewInvalidCredentialsError(message string) *InvalidCredentialsError {
	return &InvalidCredentialsError{Message: message}
}

// Error implements the error interface
func (e *InvalidCredentialsError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "invalid credentials"
}

// HTTPStatus returns the HTTP status for this error
func (e *InvalidCredentialsError) HTTPStatus() int {
	return http.StatusBadRequest
}

// ValidationError represents a malformed request with field-level details
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed: %s - %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// HTTPStatus returns the HTTP status for this error
func (e *ValidationError) HTTPStatus() int {
	return http.StatusBadRequest
}

// RenderError represents any failure in the invoice PDF pipeline. The cause
// is kept for logs but never exposed to the client.
type RenderError struct {
	Message string
	Err     error
}

// NewRenderError creates a new render error
func NewRenderError(message string, err error) *RenderError {
	return &RenderError{
		Message: message,
		Err:     err,
	}
}

// Error implements the error interface
func (e *RenderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *RenderError) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the HTTP status for this error
func (e *RenderError) HTTPStatus() int {
	return http.StatusInternalServerError
}

// InternalError represents an internal server error with context
type InternalError struct {
	Message string
	Err     error
}

// NewInternalError creates a new internal error
func NewInternalError(message string, err error) *InternalError {
	return &InternalError{
		Message: message,
		Err:     err,
	}
}

// Error implements the error interface
func (e *InternalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *InternalError) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the HTTP status for this error
func (e *InternalError) HTTPStatus() int {
	return http.StatusInternalServerError
}

// HTTPStatuser interface for errors that carry an HTTP status code
type HTTPStatuser interface {
	HTTPStatus() int
}
