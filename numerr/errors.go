// Package numerr defines the failure taxonomy for ecma-num.
//
// Every error returned by the parsers, the formatters, or the CLI maps
// to exactly one FailureClass, which determines the exit code and lets
// conformance vectors verify failure classification, not just "did it
// fail."
package numerr

import "fmt"

// FailureClass is a stable failure category.
type FailureClass string

const (
	// InvalidNumeral: no numeral (or no digits where required) at the
	// scan position.
	InvalidNumeral FailureClass = "INVALID_NUMERAL"
	// TrailingContent: strict parse matched a numeral but non-whitespace
	// content followed it.
	TrailingContent FailureClass = "TRAILING_CONTENT"
	// RadixDomain: radix argument outside its documented domain.
	RadixDomain FailureClass = "RADIX_DOMAIN"
	// PrecisionDomain: precision/sigDigits argument outside its
	// documented domain.
	PrecisionDomain FailureClass = "PRECISION_DOMAIN"
	// CLIUsage: bad command-line arguments.
	CLIUsage FailureClass = "CLI_USAGE"
	// InternalIO: I/O failure inside the CLI.
	InternalIO FailureClass = "INTERNAL_IO"
)

// ExitCode returns the process exit code for this failure class.
func (fc FailureClass) ExitCode() int {
	switch fc {
	case InternalIO:
		return 10
	default:
		return 2
	}
}

// Error is the structured error type for all ecma-num failures.
// Offset is the byte offset where scanning stopped, or -1 when the
// failure is not positional (domain violations, CLI usage).
type Error struct {
	Class   FailureClass
	Offset  int
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("numerr: %s at byte %d: %s", e.Class, e.Offset, e.Message)
	}
	return fmt.Sprintf("numerr: %s: %s", e.Class, e.Message)
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given class and message.
func New(class FailureClass, offset int, message string) *Error {
	return &Error{Class: class, Offset: offset, Message: message}
}

// Newf creates a new Error with a formatted message.
func Newf(class FailureClass, offset int, format string, args ...any) *Error {
	return &Error{Class: class, Offset: offset, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(class FailureClass, offset int, message string, cause error) *Error {
	return &Error{Class: class, Offset: offset, Message: message, Cause: cause}
}

// ClassOf returns the FailureClass of err if it is a numerr.Error, or
// the empty string otherwise.
func ClassOf(err error) FailureClass {
	if e, ok := err.(*Error); ok {
		return e.Class
	}
	return ""
}
