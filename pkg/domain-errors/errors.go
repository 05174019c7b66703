// Package domainerrors defines the classified error taxonomy shared by all
// layers of the gateway. Services and stores return these (optionally
// wrapping a cause) so the transport boundary can translate them into a
// uniform response envelope without inspecting internals.
package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code identifies the failure classification.
type Code string

const (
	// CodeValidation marks client input that failed field-level validation.
	CodeValidation Code = "VALIDATION_ERROR"
	// CodeBadRequest marks a syntactically malformed request.
	CodeBadRequest Code = "INVALID_REQUEST"
	// CodeUnauthorized marks an authentication failure, including every
	// verifier-side fault. Descriptions must not leak upstream detail.
	CodeUnauthorized Code = "AUTHENTICATION_FAILED"
	// CodeRateLimited marks a login attempt rejected by the lockout policy.
	CodeRateLimited Code = "RATE_LIMITED"
	// CodeInternal marks everything unclassified. Treated as a bug signal.
	CodeInternal Code = "INTERNAL_ERROR"
)

// FieldError carries the validation outcome for a single request field.
type FieldError struct {
	Message       string `json:"message"`
	RejectedValue any    `json:"rejectedValue"`
}

// Error is the gateway's classified error type.
type Error struct {
	Code    Code
	Message string
	// Fields is populated only for CodeValidation.
	Fields map[string]FieldError
	cause  error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// New creates a classified error.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates a classified error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap classifies an underlying error without losing the cause chain.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, cause: err}
}

// NewValidation creates a CodeValidation error carrying field-level details.
func NewValidation(fields map[string]FieldError) *Error {
	return &Error{Code: CodeValidation, Message: "validation failed", Fields: fields}
}

// Is reports whether err carries the given code anywhere in its chain.
func Is(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// CodeOf extracts the classification of err, defaulting to CodeInternal for
// anything that is not a classified error.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// Recoverable reports whether err is an expected, application-level failure.
// The transaction interceptor logs these at WARNING instead of ERROR.
func Recoverable(err error) bool {
	switch CodeOf(err) {
	case CodeValidation, CodeBadRequest, CodeUnauthorized, CodeRateLimited:
		return true
	}
	return false
}

// ToHTTPStatus maps a classification to its HTTP status.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeValidation, CodeBadRequest:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
