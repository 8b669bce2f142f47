// Package errors defines the error taxonomy of the name-check pipeline.
// Callers distinguish "fix your input" (validation) from "try again
// later" (classifier unavailable); a malformed classifier response is
// reported but never crashes a run.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions
var (
	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrClassifierUnavailable is returned when the tier classifier
	// cannot be reached, times out, or answers with a non-success
	// status
	ErrClassifierUnavailable = errors.New("classifier unavailable")

	// ErrMalformedResponse is returned when the classifier answers
	// with content that cannot be parsed into the expected shape
	ErrMalformedResponse = errors.New("malformed classifier response")
)

// ValidationError represents an input validation error with context
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// ClassifierUnavailableError carries the reason the classifier call
// failed. It is recoverable: the caller may re-run the whole pipeline,
// but the pipeline itself never retries.
type ClassifierUnavailableError struct {
	StatusCode int
	Cause      error
}

func (e *ClassifierUnavailableError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("classifier unavailable: status %d", e.StatusCode)
	}
	if e.Cause != nil {
		return fmt.Sprintf("classifier unavailable: %v", e.Cause)
	}
	return "classifier unavailable"
}

func (e *ClassifierUnavailableError) Is(target error) bool {
	return target == ErrClassifierUnavailable
}

func (e *ClassifierUnavailableError) Unwrap() error {
	return e.Cause
}

// NewClassifierUnavailableError creates a new ClassifierUnavailableError
func NewClassifierUnavailableError(statusCode int, cause error) *ClassifierUnavailableError {
	return &ClassifierUnavailableError{StatusCode: statusCode, Cause: cause}
}

// MalformedResponseError describes an unparseable classifier response.
// Snippet holds a bounded prefix of the raw content for diagnostics.
type MalformedResponseError struct {
	Reason  string
	Snippet string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed classifier response: %s", e.Reason)
}

func (e *MalformedResponseError) Is(target error) bool {
	return target == ErrMalformedResponse
}

// NewMalformedResponseError creates a new MalformedResponseError,
// truncating the snippet to a reasonable diagnostic length.
func NewMalformedResponseError(reason, raw string) *MalformedResponseError {
	const maxSnippet = 200
	if len(raw) > maxSnippet {
		raw = raw[:maxSnippet]
	}
	return &MalformedResponseError{Reason: reason, Snippet: raw}
}
