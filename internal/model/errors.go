// errors.go defines the typed error model shared by the registry and
// the CLI layer.
//
// Registry operations fail with *Error values carrying an ErrorKind.
// Structural kinds (invalid-selection, out-of-range, no-shape-keys,
// invalid-reference) abort the single requested mutation and leave
// registry state untouched. The stale-reference kind never surfaces as
// an error: it only appears in ApplyReport warnings, because apply
// recovers from unresolvable references locally.
//
// The CLI layer wraps failures in CLIError to attach an OS exit code,
// following the same pattern for every command.
package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies registry failures.
type ErrorKind string

const (
	// KindInvalidSelection means a required external selection is
	// missing or unusable: no group named, an unknown group or object,
	// or a group/object that is already bound.
	KindInvalidSelection ErrorKind = "invalid-selection"

	// KindOutOfRange means an index into one of the registry lists is
	// out of bounds.
	KindOutOfRange ErrorKind = "out-of-range"

	// KindNoShapeKeys means the object has no shape keys to manage
	// (none at all, or only the basis key).
	KindNoShapeKeys ErrorKind = "no-shape-keys"

	// KindInvalidReference means a cross-reference supplied to a
	// mutation does not resolve: a bad managed-model index, a shape
	// key name not present on the model, or the basis key.
	KindInvalidReference ErrorKind = "invalid-reference"

	// KindStaleReference means a previously valid reference no longer
	// resolves. Encountered only during apply and recovered locally.
	KindStaleReference ErrorKind = "stale-reference"
)

// String returns the string representation of the kind.
func (k ErrorKind) String() string {
	return string(k)
}

// IsValid checks whether the kind is one of the predefined values.
func (k ErrorKind) IsValid() bool {
	switch k {
	case KindInvalidSelection, KindOutOfRange, KindNoShapeKeys,
		KindInvalidReference, KindStaleReference:
		return true
	default:
		return false
	}
}

// ParseErrorKind converts a string to an ErrorKind.
// Returns an error if the string does not match any valid kind.
func ParseErrorKind(s string) (ErrorKind, error) {
	kind := ErrorKind(strings.ToLower(s))
	if !kind.IsValid() {
		return "", fmt.Errorf("invalid error kind: %q", s)
	}
	return kind, nil
}

// Error is the typed failure returned by registry operations.
type Error struct {
	// Kind classifies the failure.
	Kind ErrorKind

	// Message is the human-readable description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a registry error with a formatted message.
func NewError(kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the ErrorKind from an error chain. Returns the empty
// kind when err carries no *Error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// ExitCode defines standard CLI exit codes. These codes let scripts
// programmatically distinguish failure modes of outfitctl commands.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitSceneNotFound indicates the scene document could not be
	// found or read.
	ExitSceneNotFound ExitCode = 2

	// ExitInvalidSelection maps KindInvalidSelection failures.
	ExitInvalidSelection ExitCode = 3

	// ExitOutOfRange maps KindOutOfRange failures.
	ExitOutOfRange ExitCode = 4

	// ExitNoShapeKeys maps KindNoShapeKeys failures.
	ExitNoShapeKeys ExitCode = 5

	// ExitInvalidReference maps KindInvalidReference failures.
	ExitInvalidReference ExitCode = 6
)

// CLIError is a custom error type that carries an exit code, allowing
// the CLI layer to translate failures into process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}

// ExitCodeFor maps any error to its process exit code. CLIError values
// carry their own code; registry errors map by kind; anything else is
// a general error. A nil error maps to success.
func ExitCodeFor(err error) ExitCode {
	if err == nil {
		return ExitSuccess
	}

	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return cliErr.Code
	}

	switch KindOf(err) {
	case KindInvalidSelection:
		return ExitInvalidSelection
	case KindOutOfRange:
		return ExitOutOfRange
	case KindNoShapeKeys:
		return ExitNoShapeKeys
	case KindInvalidReference:
		return ExitInvalidReference
	default:
		return ExitGeneralError
	}
}
