package oaserrors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for use with errors.Is().
// These allow quick checks without type assertions.
var (
	// ErrDecode indicates a document could not be decoded into a typed tree.
	ErrDecode = errors.New("decode error")

	// ErrReference indicates a reference resolution failure.
	ErrReference = errors.New("reference error")

	// ErrExternalReference indicates a reference that points outside the document.
	ErrExternalReference = errors.New("external reference")

	// ErrValidation indicates the document was decoded but is not conformant.
	ErrValidation = errors.New("validation error")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")
)

// DecodeError represents a fatal failure to decode a document.
// Duplicate keys, unknown fields, discriminant mismatches and bad version
// strings all surface as a DecodeError located at the offending node.
type DecodeError struct {
	// Path is the location path of the offending node (e.g., "paths./pets.get")
	Path string
	// Line is the 1-based line number where the error occurred (0 if unknown)
	Line int
	// Column is the 1-based column number where the error occurred (0 if unknown)
	Column int
	// Message describes the decoding failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *DecodeError) Error() string {
	msg := "decode error"
	if e.Path != "" {
		msg += " at " + e.Path
	}
	if e.Line > 0 {
		msg += fmt.Sprintf(" (line %d", e.Line)
		if e.Column > 0 {
			msg += fmt.Sprintf(", column %d", e.Column)
		}
		msg += ")"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *DecodeError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}

// ReferenceError represents a failure to resolve a $ref.
type ReferenceError struct {
	// Ref is the reference string that failed to resolve
	Ref string
	// External is true when the reference points outside the document
	External bool
}

// Error returns a human-readable error message.
// The wording is reused verbatim inside validation messages.
func (e *ReferenceError) Error() string {
	if e.External {
		return fmt.Sprintf("resolving of an external reference `%s` is not supported", e.Ref)
	}
	return fmt.Sprintf("reference `%s` not found", e.Ref)
}

// Is reports whether target matches this error type.
// Matches ErrReference, and also ErrExternalReference when External is set.
func (e *ReferenceError) Is(target error) bool {
	if target == ErrReference {
		return true
	}
	return target == ErrExternalReference && e.External
}

// ValidationError carries every violation found in one validation pass,
// in traversal order. Each entry is already prefixed by its location path.
type ValidationError struct {
	Errors []string
}

// Error returns the list rendered one violation per line.
func (e *ValidationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d errors found:\n", len(e.Errors))
	for _, msg := range e.Errors {
		b.WriteString("- ")
		b.WriteString(msg)
		b.WriteByte('\n')
	}
	return b.String()
}

// Is reports whether target matches this error type.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ConfigError represents an invalid configuration or input.
// This includes invalid options, missing required inputs, and conflicting settings.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}
