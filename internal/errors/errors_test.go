package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DerivesCategoryAndSeverity(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		category Category
		severity Severity
	}{
		{"config", ErrCodeConfigInvalid, CategoryConfig, SeverityError},
		{"index not found", ErrCodeIndexNotFound, CategoryStore, SeverityError},
		{"store unavailable", ErrCodeStoreUnavailable, CategoryStore, SeverityFatal},
		{"capability missing", ErrCodeCapabilityMissing, CategoryStore, SeverityFatal},
		{"query syntax", ErrCodeQuerySyntax, CategoryValidation, SeverityWarning},
		{"record malformed", ErrCodeRecordMalformed, CategoryValidation, SeverityWarning},
		{"internal", ErrCodeInternal, CategoryInternal, SeverityError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code, "boom", nil)
			assert.Equal(t, tt.category, err.Category)
			assert.Equal(t, tt.severity, err.Severity)
		})
	}
}

func TestError_FormatIncludesCode(t *testing.T) {
	err := New(ErrCodeIndexNotFound, "lexical index not found", nil)
	assert.Equal(t, "[ERR_201_INDEX_NOT_FOUND] lexical index not found", err.Error())
}

func TestIs_MatchesByCode(t *testing.T) {
	err := IndexNotFound("/tmp/index.sqlite")
	target := New(ErrCodeIndexNotFound, "different message", nil)

	assert.True(t, stderrors.Is(err, target))
	assert.False(t, stderrors.Is(err, New(ErrCodeQuerySyntax, "x", nil)))
}

func TestUnwrap_PreservesCause(t *testing.T) {
	cause := fmt.Errorf("disk on fire")
	err := StoreUnavailable("cannot open store", cause)

	require.ErrorIs(t, err, cause)
}

func TestHasCode_SeesThroughWrapping(t *testing.T) {
	err := fmt.Errorf("search failed: %w", QuerySyntax("AND AND", nil))

	assert.True(t, IsQuerySyntax(err))
	assert.False(t, IsIndexNotFound(err))
	assert.Equal(t, ErrCodeQuerySyntax, GetCode(err))
}

func TestRecoverable_OnlyForQueryAndRecordConditions(t *testing.T) {
	assert.True(t, QuerySyntax("x", nil).Recoverable)
	assert.True(t, RecordMalformed("bad pid", nil).Recoverable)
	assert.False(t, CapabilityMissing(nil).Recoverable)
	assert.False(t, IndexNotFound("p").Recoverable)
}

func TestWrap_NilReturnsNil(t *testing.T) {
	assert.Nil(t, Wrap(ErrCodeInternal, nil))
}

func TestUserMessage_IncludesSuggestion(t *testing.T) {
	err := IndexNotFound("indexes/lexical/index.sqlite")
	msg := UserMessage(err)

	assert.Contains(t, msg, "indexes/lexical/index.sqlite")
	assert.Contains(t, msg, "fruitful index")

	plain := fmt.Errorf("plain failure")
	assert.Equal(t, "plain failure", UserMessage(plain))
}
