package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithDetails_DoesNotMutateSentinel(t *testing.T) {
	e := ErrInvalidForm.WithDetails(map[string]interface{}{"field": "details"})

	assert.Equal(t, "details", e.Field())
	assert.Empty(t, ErrInvalidForm.Field())
	assert.Empty(t, ErrInvalidForm.Details)
}

func TestIs_MatchesByCode(t *testing.T) {
	e := FieldError(ErrDuplicateSlug, "slug", "")
	wrapped := fmt.Errorf("save: %w", e)

	assert.True(t, stderrors.Is(wrapped, ErrDuplicateSlug))
	assert.False(t, stderrors.Is(wrapped, ErrDuplicateName))
	assert.Equal(t, ErrDuplicateSlug.Message, e.Message)
}
