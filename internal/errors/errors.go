package errors

import (
	"errors"
	"fmt"
)

// FruitfulError is the structured error type for Fruitful.
// It carries a stable code for programmatic handling plus a
// human-readable message for front ends to render.
type FruitfulError struct {
	// Code is the unique error code (e.g., "ERR_201_INDEX_NOT_FOUND").
	Code string

	// Message is the human-readable error message.
	Message string

	// Category is the error category (Config, Store, Validation, Internal).
	Category Category

	// Severity is the error severity level.
	Severity Severity

	// Cause is the underlying error that caused this error.
	Cause error

	// Recoverable indicates the condition is handled internally
	// (query fallback, per-record skip) rather than surfaced raw.
	Recoverable bool

	// Suggestion is an actionable suggestion for the user.
	Suggestion string
}

// Error implements the error interface.
func (e *FruitfulError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for error chain support.
func (e *FruitfulError) Unwrap() error {
	return e.Cause
}

// Is matches by code, enabling errors.Is() with FruitfulError targets.
func (e *FruitfulError) Is(target error) bool {
	if t, ok := target.(*FruitfulError); ok {
		return e.Code == t.Code
	}
	return false
}

// WithSuggestion adds an actionable suggestion for the user.
// Returns the error for method chaining.
func (e *FruitfulError) WithSuggestion(suggestion string) *FruitfulError {
	e.Suggestion = suggestion
	return e
}

// New creates a new FruitfulError with the given code and message.
// Category, severity, and the recoverable flag are derived from the code.
func New(code string, message string, cause error) *FruitfulError {
	return &FruitfulError{
		Code:        code,
		Message:     message,
		Category:    categoryFromCode(code),
		Severity:    severityFromCode(code),
		Cause:       cause,
		Recoverable: isRecoverableCode(code),
	}
}

// Wrap creates a FruitfulError from an existing error.
// The error's message becomes the FruitfulError message.
func Wrap(code string, err error) *FruitfulError {
	if err == nil {
		return nil
	}
	return New(code, err.Error(), err)
}

// IndexNotFound creates an error for a missing index file.
// The user must rebuild before searching.
func IndexNotFound(path string) *FruitfulError {
	return New(ErrCodeIndexNotFound,
		fmt.Sprintf("lexical index not found at %s", path), nil).
		WithSuggestion("run 'fruitful index' to build it")
}

// StoreUnavailable creates an error for an open/connect failure.
func StoreUnavailable(message string, cause error) *FruitfulError {
	return New(ErrCodeStoreUnavailable, message, cause)
}

// CapabilityMissing creates an error for an environment without FTS5.
func CapabilityMissing(cause error) *FruitfulError {
	return New(ErrCodeCapabilityMissing,
		"SQLite FTS5 not available in this environment", cause)
}

// QuerySyntax creates an error for a match expression the engine rejected.
func QuerySyntax(expr string, cause error) *FruitfulError {
	return New(ErrCodeQuerySyntax,
		fmt.Sprintf("match expression rejected: %q", expr), cause)
}

// RecordMalformed creates an error for an unusable catalog record.
func RecordMalformed(message string, cause error) *FruitfulError {
	return New(ErrCodeRecordMalformed, message, cause)
}

// ConfigInvalid creates a configuration-related error.
func ConfigInvalid(message string, cause error) *FruitfulError {
	return New(ErrCodeConfigInvalid, message, cause)
}

// Internal creates an internal error carrying the underlying message.
func Internal(message string, cause error) *FruitfulError {
	return New(ErrCodeInternal, message, cause)
}

// HasCode checks if err (or anything in its chain) carries the given code.
func HasCode(err error, code string) bool {
	var fe *FruitfulError
	if errors.As(err, &fe) {
		return fe.Code == code
	}
	return false
}

// IsIndexNotFound reports whether err is a missing-index error.
func IsIndexNotFound(err error) bool { return HasCode(err, ErrCodeIndexNotFound) }

// IsCapabilityMissing reports whether err is an FTS5-unsupported error.
func IsCapabilityMissing(err error) bool { return HasCode(err, ErrCodeCapabilityMissing) }

// IsQuerySyntax reports whether err is a rejected match expression.
func IsQuerySyntax(err error) bool { return HasCode(err, ErrCodeQuerySyntax) }

// IsRecordMalformed reports whether err is a per-record skip condition.
func IsRecordMalformed(err error) bool { return HasCode(err, ErrCodeRecordMalformed) }

// GetCode extracts the error code from a FruitfulError anywhere in the chain.
// Returns empty string otherwise.
func GetCode(err error) string {
	var fe *FruitfulError
	if errors.As(err, &fe) {
		return fe.Code
	}
	return ""
}

// UserMessage renders err for end users: the message plus the suggestion
// when one exists. Non-FruitfulError values render as-is.
func UserMessage(err error) string {
	var fe *FruitfulError
	if !errors.As(err, &fe) {
		return err.Error()
	}
	if fe.Suggestion != "" {
		return fmt.Sprintf("%s (%s)", fe.Message, fe.Suggestion)
	}
	return fe.Message
}
