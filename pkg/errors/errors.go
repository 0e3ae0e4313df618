// Package errors provides structured error types for modgraph.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and the pipeline
//   - Machine-readable error codes for programmatic handling
//   - Messages that name the failing programme or module
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Codes group by cause:
//   - CONFIG_LOAD: the curriculum document is missing or could not be parsed
//   - UNKNOWN_*: a programme or module name does not resolve
//   - INVALID_*: input validation failures
//   - INTERNAL_ERROR: unexpected internal errors
//
// An empty render (for example a whitelist that implies no modules) is not an
// error and has no code.
//
// # Usage
//
//	err := errors.UnknownProgramme("bsc-cs")
//	if errors.Is(err, errors.ErrCodeUnknownProgramme) {
//	    // Handle the missing programme
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeConfigLoad, origErr, "parse %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Loading errors: the document is missing or unparseable
	ErrCodeConfigLoad Code = "CONFIG_LOAD"

	// Resolution errors
	ErrCodeUnknownProgramme Code = "UNKNOWN_PROGRAMME"
	ErrCodeUnknownModule    Code = "UNKNOWN_MODULE"
	ErrCodeIncludeCycle     Code = "INCLUDE_CYCLE"

	// Input validation errors
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidRankDir  Code = "INVALID_RANKDIR"
	ErrCodeInvalidKind     Code = "INVALID_KIND"
	ErrCodeInvalidModuleID Code = "INVALID_MODULE_ID"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
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

// UnknownProgramme reports a programme name absent from the configuration.
func UnknownProgramme(name string) *Error {
	return New(ErrCodeUnknownProgramme, "unknown programme %q", name)
}

// UnknownModule reports a module that has no year in any year-group it was
// looked up in.
func UnknownModule(id string) *Error {
	return New(ErrCodeUnknownModule, "module %q has no assigned year", id)
}

// UnknownModuleIn is UnknownModule scoped to a programme.
func UnknownModuleIn(programme, id string) *Error {
	return New(ErrCodeUnknownModule, "programme %q: module %q has no assigned year", programme, id)
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
