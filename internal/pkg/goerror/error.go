// Package goerror defines the structured error type used across the service.
//
// Use cases return *Error values carrying a user-facing message, a category
// and a stable code; the HTTP layer maps them to status codes without
// inspecting error strings.
package goerror

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound marks a missing resource at the storage boundary.
	ErrNotFound = errors.New("resource not found")

	// ErrConflict marks a uniqueness or state conflict at the storage boundary.
	ErrConflict = errors.New("resource conflict")
)

// Category groups errors into the buckets the boundary cares about.
type Category int

const (
	// CategoryServer is an unexpected server-side failure.
	CategoryServer Category = iota
	// CategoryBusiness is a domain rule violation.
	CategoryBusiness
	// CategoryValidation is a malformed or invalid input.
	CategoryValidation
)

func (c Category) String() string {
	switch c {
	case CategoryValidation:
		return "ERROR_VALIDATION"
	case CategoryBusiness:
		return "ERROR_BUSINESS"
	case CategoryServer:
		return "ERROR_SERVER"
	default:
		return "ERROR_UNKNOWN"
	}
}

// Code is a stable identifier mapped to an HTTP status code.
type Code int

const (
	// CodeInternal is an internal or unclassified failure.
	CodeInternal Code = iota
	// CodeInvalidFormat is an unparseable request body.
	CodeInvalidFormat
	// CodeInvalidInput is a well-formed body failing validation.
	CodeInvalidInput
	// CodeNotFound is a missing resource.
	CodeNotFound
	// CodeConflict is a duplicate or conflicting resource.
	CodeConflict
	// CodeUnauthorized is a failed authentication.
	CodeUnauthorized
	// CodeForbidden is a failed authorization.
	CodeForbidden
)

func (c Code) String() string {
	switch c {
	case CodeInvalidFormat:
		return "CODE_INVALID_FORMAT"
	case CodeInvalidInput:
		return "CODE_INVALID_INPUT"
	case CodeNotFound:
		return "CODE_NOT_FOUND"
	case CodeConflict:
		return "CODE_CONFLICT"
	case CodeUnauthorized:
		return "CODE_UNAUTHORIZED"
	case CodeForbidden:
		return "CODE_FORBIDDEN"
	default:
		return "CODE_INTERNAL"
	}
}

// Error is the structured error carried from use cases to the boundary.
//
// It may wrap a cause (logged, never shown) while exposing a safe message,
// a category, a code and optional per-field validation details.
type Error struct {
	cause    error
	msg      string
	category Category
	code     Code
	fields   map[string]string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return e.cause.Error()
	}
	if e.msg != "" {
		return e.msg
	}
	return e.category.String()
}

// String returns a verbose form for logs.
func (e *Error) String() string {
	return fmt.Sprintf("category=%s code=%s msg=%q cause=%v", e.category, e.code, e.msg, e.cause)
}

// Msg returns the user-facing message.
func (e *Error) Msg() string {
	return e.msg
}

// Category returns the error category.
func (e *Error) Category() Category {
	return e.category
}

// Code returns the stable error code.
func (e *Error) Code() Code {
	return e.code
}

// Fields returns per-field validation messages, if any.
func (e *Error) Fields() map[string]string {
	return e.fields
}

// Unwrap returns the wrapped cause.
func (e *Error) Unwrap() error {
	return e.cause
}

// StatusCode maps the error code to an HTTP status.
func (e *Error) StatusCode() int {
	switch e.code {
	case CodeInvalidFormat:
		return http.StatusBadRequest
	case CodeInvalidInput:
		return http.StatusUnprocessableEntity
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// NewServer wraps an unexpected failure; the cause is logged, the caller
// only ever sees a generic message.
func NewServer(cause error) error {
	return &Error{cause: cause, msg: "Internal server error", category: CategoryServer, code: CodeInternal}
}

// NewBusiness creates a domain error with the given message and code.
func NewBusiness(msg string, code Code) error {
	return &Error{msg: msg, category: CategoryBusiness, code: code}
}

// NewInvalidInput wraps a validation failure. When err carries field
// details (see validator), the boundary surfaces them.
func NewInvalidInput(err error) error {
	return &Error{cause: err, msg: "Validation error", category: CategoryValidation, code: CodeInvalidInput}
}

// NewInvalidInputFields creates a validation error from key/value pairs.
func NewInvalidInputFields(kv ...string) error {
	fields := make(map[string]string, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		fields[kv[i]] = kv[i+1]
	}
	return &Error{msg: "Validation error", category: CategoryValidation, code: CodeInvalidInput, fields: fields}
}

// NewInvalidFormat creates an error for an unparseable request body.
func NewInvalidFormat(msgs ...string) error {
	msg := "Invalid request body"
	if len(msgs) > 0 {
		msg = msgs[0]
	}
	return &Error{msg: msg, category: CategoryValidation, code: CodeInvalidFormat}
}
