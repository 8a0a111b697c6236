// Package errors provides structured error handling for Fruitful.
//
// Error codes follow the pattern ERR_XXX_DESCRIPTION where:
//   - 1XX: Configuration errors
//   - 2XX: Store and index I/O errors
//   - 4XX: Query and record validation errors
//   - 5XX: Internal errors
package errors

// Category defines error categories for classification.
type Category string

const (
	// CategoryConfig indicates configuration-related errors.
	CategoryConfig Category = "CONFIG"
	// CategoryStore indicates index store errors (open, schema, capability).
	CategoryStore Category = "STORE"
	// CategoryValidation indicates query and record validation errors.
	CategoryValidation Category = "VALIDATION"
	// CategoryInternal indicates unexpected internal errors.
	CategoryInternal Category = "INTERNAL"
)

// Severity defines error severity levels.
type Severity string

const (
	// SeverityFatal indicates unrecoverable error, must abort.
	SeverityFatal Severity = "FATAL"
	// SeverityError indicates operation failed but can continue.
	SeverityError Severity = "ERROR"
	// SeverityWarning indicates degraded operation, continuing.
	SeverityWarning Severity = "WARNING"
)

// Error codes organized by category.
const (
	// Config errors (100-199)
	ErrCodeConfigInvalid = "ERR_101_CONFIG_INVALID"

	// Store errors (200-299)
	ErrCodeIndexNotFound     = "ERR_201_INDEX_NOT_FOUND"
	ErrCodeStoreUnavailable  = "ERR_202_STORE_UNAVAILABLE"
	ErrCodeCapabilityMissing = "ERR_203_CAPABILITY_MISSING"

	// Validation errors (400-499)
	ErrCodeQuerySyntax     = "ERR_401_QUERY_SYNTAX"
	ErrCodeRecordMalformed = "ERR_402_RECORD_MALFORMED"

	// Internal errors (500-599)
	ErrCodeInternal = "ERR_501_INTERNAL"
)

// categoryFromCode extracts category from error code.
func categoryFromCode(code string) Category {
	if len(code) < 7 {
		return CategoryInternal
	}

	// Numeric portion, e.g. "201" from "ERR_201_INDEX_NOT_FOUND".
	switch code[4] {
	case '1':
		return CategoryConfig
	case '2':
		return CategoryStore
	case '4':
		return CategoryValidation
	default:
		return CategoryInternal
	}
}

// severityFromCode determines severity based on error code.
func severityFromCode(code string) Severity {
	switch code {
	case ErrCodeCapabilityMissing, ErrCodeStoreUnavailable:
		// Fatal for the store: no alternative engine exists.
		return SeverityFatal
	case ErrCodeQuerySyntax, ErrCodeRecordMalformed:
		// Recovered at the lowest layer that can retry or skip.
		return SeverityWarning
	default:
		return SeverityError
	}
}

// isRecoverableCode reports whether the condition is handled internally
// (rejected query syntax triggers the fallback expression, malformed
// records are skipped during builds).
func isRecoverableCode(code string) bool {
	switch code {
	case ErrCodeQuerySyntax, ErrCodeRecordMalformed:
		return true
	default:
		return false
	}
}
