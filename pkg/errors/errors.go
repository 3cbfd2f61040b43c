// Package errors provides structured error types for qroute.
//
// Every failure surfaced by the routing core carries one of three codes:
//   - CONFIGURATION: malformed input (bad matrix shape, qubit outside the
//     usable set, unknown preset, invalid qubit map or reduce order)
//   - ROUTING: no path or tree exists for a legitimately posed query; the
//     caller may retry with a different policy or subset
//   - INTERNAL_INVARIANT: a broken algorithmic invariant; always a bug
//
// # Usage
//
//	err := errors.New(errors.ErrCodeConfiguration, "terminal %d outside usable set", q)
//	if errors.Is(err, errors.ErrCodeRouting) {
//	    // retry with another policy
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeConfiguration, origErr, "decode device %s", path)
//
// Details attach diagnostic context (offending qubits, subsets) that loggers
// can emit as structured key-values via [Error.KeyVals].
package errors

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

// Code represents a machine-readable error code.
type Code string

// Error codes of the routing taxonomy.
const (
	ErrCodeConfiguration     Code = "CONFIGURATION"
	ErrCodeRouting           Code = "ROUTING"
	ErrCodeInternalInvariant Code = "INTERNAL_INVARIANT"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code           // Machine-readable error code
	Message string         // Human-readable message
	Cause   error          // Underlying error (optional)
	Details map[string]any // Diagnostic context (optional)
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

// With attaches a diagnostic detail and returns the same error for chaining.
func (e *Error) With(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// KeyVals flattens Details into alternating key/value pairs sorted by key,
// suitable for structured loggers.
func (e *Error) KeyVals() []any {
	if len(e.Details) == 0 {
		return nil
	}
	keys := slices.Sorted(maps.Keys(e.Details))
	kv := make([]any, 0, 2*len(keys))
	for _, k := range keys {
		kv = append(kv, k, e.Details[k])
	}
	return kv
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

// Configuration is shorthand for New(ErrCodeConfiguration, ...).
func Configuration(format string, args ...any) *Error {
	return New(ErrCodeConfiguration, format, args...)
}

// Routing is shorthand for New(ErrCodeRouting, ...).
func Routing(format string, args ...any) *Error {
	return New(ErrCodeRouting, format, args...)
}

// Internal is shorthand for New(ErrCodeInternalInvariant, ...).
func Internal(format string, args ...any) *Error {
	return New(ErrCodeInternalInvariant, format, args...)
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

// IsConfiguration reports whether err carries ErrCodeConfiguration.
func IsConfiguration(err error) bool { return Is(err, ErrCodeConfiguration) }

// IsRouting reports whether err carries ErrCodeRouting.
func IsRouting(err error) bool { return Is(err, ErrCodeRouting) }

// IsInternal reports whether err carries ErrCodeInternalInvariant.
func IsInternal(err error) bool { return Is(err, ErrCodeInternalInvariant) }

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
