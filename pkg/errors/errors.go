// Package errors provides the coded error type used across woo-release.
//
// Codes group failures the way the CLI reports them:
//   - CONFIG_ERROR: required configuration is missing (e.g. no GitHub token)
//   - INVALID_INPUT: bad arguments such as an unusable version string
//   - NOT_FOUND, NOTHING_FOUND: a lookup found no milestone, category, or items
//   - RATE_LIMITED, NETWORK_ERROR: upstream API failures
//   - IO_ERROR: an artifact could not be written
//
// # Usage
//
//	err := errors.New(errors.ErrCodeConfig, "GITHUB_TOKEN is required for milestone lookup")
//	if errors.Is(err, errors.ErrCodeConfig) {
//	    // abort without writing anything
//	}
//
//	err := errors.Wrap(errors.ErrCodeIO, origErr, "save %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	ErrCodeConfig       Code = "CONFIG_ERROR"
	ErrCodeInvalidInput Code = "INVALID_INPUT"

	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeNothingFound Code = "NOTHING_FOUND"

	ErrCodeNetwork     Code = "NETWORK_ERROR"
	ErrCodeRateLimited Code = "RATE_LIMITED"

	ErrCodeIO Code = "IO_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// NotFoundError reports a failed lookup by name along with the names that
// were available, so callers can print them as a diagnostic.
type NotFoundError struct {
	Kind      string   // "milestone", "category", ...
	Name      string   // the name that was looked up
	Available []string // names returned by the upstream listing
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found (%d available)", e.Kind, e.Name, len(e.Available))
}

// Code returns the error code for this error type.
func (e *NotFoundError) Code() Code {
	return ErrCodeNotFound
}
