// Package errors provides structured error types for the sigil application.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI, HTTP API and library callers
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// The seal pipeline raises three fatal, structural codes:
//   - INVALID_IDENTIFIER_SHAPE: syllable count is neither 1 nor even
//   - INVALID_SYMBOL_COUNT: the layout engine was asked for an impossible grid
//   - MISSING_PATH_REFERENCE: a path node names a key absent from the shared table
//
// The remaining codes cover input validation and infrastructure failures.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidIdentifierShape, "%d syllables", n)
//	if errors.Is(err, errors.ErrCodeInvalidIdentifierShape) {
//	    // Handle malformed identifier
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidDictionary, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Pipeline errors
	ErrCodeInvalidIdentifierShape Code = "INVALID_IDENTIFIER_SHAPE"
	ErrCodeInvalidSymbolCount     Code = "INVALID_SYMBOL_COUNT"
	ErrCodeMissingPathReference   Code = "MISSING_PATH_REFERENCE"

	// Input validation errors
	ErrCodeInvalidInput      Code = "INVALID_INPUT"
	ErrCodeInvalidFormat     Code = "INVALID_FORMAT"
	ErrCodeInvalidColorway   Code = "INVALID_COLORWAY"
	ErrCodeInvalidDictionary Code = "INVALID_DICTIONARY"

	// Resource not found errors
	ErrCodeNotFound Code = "NOT_FOUND"

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

// IsClientError reports whether err stems from bad caller input rather than
// an infrastructure failure. The HTTP API maps these to 400 responses.
func IsClientError(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidIdentifierShape, ErrCodeInvalidSymbolCount,
		ErrCodeInvalidInput, ErrCodeInvalidFormat, ErrCodeInvalidColorway:
		return true
	}
	return false
}
