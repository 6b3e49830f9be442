// Package corpus records, replays, and pins conversion vector corpora.
//
// A corpus is a CSV of bit patterns with their expected renderings plus a
// strict-JSON manifest pinning the file checksum and the replay result
// digest. Replaying a corpus against the current converter detects output
// drift across versions and platforms.
package corpus

import "fmt"

// FailureClass is a stable failure category. Every error returned by the
// package maps to exactly one class, which determines the CLI exit code and
// lets gates verify failure classification, not just "did it fail."
type FailureClass string

const (
	InvalidVector    FailureClass = "INVALID_VECTOR"
	InvalidManifest  FailureClass = "INVALID_MANIFEST"
	ChecksumMismatch FailureClass = "CHECKSUM_MISMATCH"
	ReplayMismatch   FailureClass = "REPLAY_MISMATCH"
	CLIUsage         FailureClass = "CLI_USAGE"
	InternalIO       FailureClass = "INTERNAL_IO"
	InternalError    FailureClass = "INTERNAL_ERROR"
)

// ExitCode returns the process exit code for this failure class.
func (fc FailureClass) ExitCode() int {
	switch fc {
	case InternalIO, InternalError:
		return 10
	default:
		return 2
	}
}

// Error is the structured error type for all corpus failures. Line is the
// 1-based vector file line when the failure is tied to one, and -1 otherwise.
type Error struct {
	Class   FailureClass
	Line    int
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	var msg string
	if e.Line >= 0 {
		msg = fmt.Sprintf("corpus: %s at line %d: %s", e.Class, e.Line, e.Message)
	} else {
		msg = fmt.Sprintf("corpus: %s: %s", e.Class, e.Message)
	}
	if e.Cause != nil {
		return msg + ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given class and message.
func New(class FailureClass, line int, message string) *Error {
	return &Error{Class: class, Line: line, Message: message}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(class FailureClass, line int, message string, cause error) *Error {
	return &Error{Class: class, Line: line, Message: message, Cause: cause}
}
