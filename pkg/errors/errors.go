// Package errors provides structured error types for devsetup.
//
// This package defines error codes and types that enable:
//   - Consistent reporting of configuration, precondition and installer failures
//   - Machine-readable error codes mapped to process exit codes
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Catalog or flag validation failures
//   - UNKNOWN_*: Names that do not match anything in the catalog
//   - NO_* / MISSING_*: Runtime preconditions that are not met
//   - INSTALL_*: Installer actions that failed
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeUnknownItem, "unknown item(s): %s", names)
//	if errors.Is(err, errors.ErrCodeUnknownItem) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInstallFailed, origErr, "installing %s", id)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Configuration errors
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeInvalidCatalog Code = "INVALID_CATALOG"
	ErrCodeInvalidID      Code = "INVALID_ID"
	ErrCodeUnknownItem    Code = "UNKNOWN_ITEM"
	ErrCodeCycle          Code = "DEPENDENCY_CYCLE"

	// Precondition errors
	ErrCodeNoTTY          Code = "NO_TTY"
	ErrCodeMissingRuntime Code = "MISSING_RUNTIME"
	ErrCodeUnauthorized   Code = "UNAUTHORIZED"

	// Installer errors
	ErrCodeInstallFailed Code = "INSTALL_FAILED"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Process exit codes.
const (
	ExitOK      = 0
	ExitFailure = 1
	// ExitMissingRuntime is reserved for "required runtime precondition not met".
	ExitMissingRuntime = 100
	// ExitInterrupted is the shell convention for SIGINT.
	ExitInterrupted = 130
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
// For *Error types, returns the message (and cause, if any) without the
// code prefix. For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return fmt.Sprintf("%s: %v", e.Message, e.Cause)
		}
		return e.Message
	}
	return err.Error()
}

// ExitCode maps an error to the process exit code.
//
//   - nil: ExitOK
//   - MISSING_RUNTIME: ExitMissingRuntime
//   - everything else: ExitFailure
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	if GetCode(err) == ErrCodeMissingRuntime {
		return ExitMissingRuntime
	}
	return ExitFailure
}
