// Package errors provides structured error types for the alnglyph engine.
//
// The layout engine never aborts a pass because of bad input. Problems are
// recorded as coded errors next to the partial result so callers can decide
// whether to show a "degraded" marker. I/O surfaces (file loading, the CLI)
// return the same coded errors.
//
// # Error Codes
//
//   - MALFORMED_ALIGNMENT: empty, overlapping or decreasing segment ranges
//   - ARITHMETIC_UNDERFLOW: a length computation went below zero and was clamped
//   - DATA_UNAVAILABLE: a sequence or score fetch failed
//   - RANGE_MISMATCH: a rasterization was requested over an empty range
//   - INVALID_*: input validation failures
//
// # Usage
//
//	err := errors.New(errors.ErrCodeMalformedAlignment, "row %d: segment %v precedes %v", row, cur, prev)
//	if errors.Is(err, errors.ErrCodeMalformedAlignment) {
//	    // mark the row degraded
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Layout errors, recovered locally by the engine
	ErrCodeMalformedAlignment  Code = "MALFORMED_ALIGNMENT"
	ErrCodeArithmeticUnderflow Code = "ARITHMETIC_UNDERFLOW"
	ErrCodeDataUnavailable     Code = "DATA_UNAVAILABLE"
	ErrCodeRangeMismatch       Code = "RANGE_MISMATCH"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidMode   Code = "INVALID_MODE"

	// Resource errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

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

// Issue ties a recovered error to the alignment row it affected.
// Row is -1 when the issue is not specific to one row.
type Issue struct {
	Row int
	Err error
}

func (i Issue) String() string {
	if i.Row < 0 {
		return i.Err.Error()
	}
	return fmt.Sprintf("row %d: %v", i.Row, i.Err)
}

// ClampUnderflow returns a-b, or 0 with an ARITHMETIC_UNDERFLOW error when
// the difference would be negative.
func ClampUnderflow(a, b int) (int, error) {
	if a >= b {
		return a - b, nil
	}
	return 0, New(ErrCodeArithmeticUnderflow, "%d - %d clamped to 0", a, b)
}
