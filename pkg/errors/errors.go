// Package errors provides structured error types for gracetower.
//
// Every failure that crosses a package boundary carries a [Code] so the CLI,
// the HTTP API and the batch driver can classify it without string matching:
//   - MALFORMED_INPUT: an edge-list record could not be parsed
//   - DEGENERATE_GRAPH: the graph has no vertices
//   - SOLVER_FAILED: the solver produced no usable assignment
//   - INVALID_*: option or configuration validation failures
//   - INTERNAL_*: unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeMalformedInput, "line %d: expected two integers", n)
//	if errors.Is(err, errors.ErrCodeMalformedInput) {
//	    // reject the file before any modeling work
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeSolverFailed, origErr, "highs run")
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input errors
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeMalformedInput Code = "MALFORMED_INPUT"
	ErrCodeInvalidConfig  Code = "INVALID_CONFIG"
	ErrCodeInvalidBackend Code = "INVALID_BACKEND"
	ErrCodeInvalidPath    Code = "INVALID_PATH"

	// Graph errors
	ErrCodeDegenerateGraph Code = "DEGENERATE_GRAPH"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Solver errors
	ErrCodeSolverFailed Code = "SOLVER_FAILED"
	ErrCodeTimeout      Code = "TIMEOUT"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
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

// IsFatal reports whether err leaves a graph without any usable result.
// Malformed input, empty graphs and solver failures are fatal; cache or
// archive outages are not, the run carries on without them.
func IsFatal(err error) bool {
	switch GetCode(err) {
	case ErrCodeMalformedInput, ErrCodeDegenerateGraph, ErrCodeSolverFailed:
		return true
	}
	return false
}
