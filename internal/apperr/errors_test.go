package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaxonomyMatchesSentinels(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name   string
		err    error
		target error
	}{
		{"validation", Invalid("status", "unknown value"), ErrValidation},
		{"not found", NotFound("task", id), ErrNotFound},
		{"store", Store("list tasks", errors.New("conn reset")), ErrStore},
		{"storage", &StorageError{Op: "remove", Key: "a/b", Err: errors.New("denied")}, ErrStorage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("outer: %w", tt.err)
			assert.ErrorIs(t, wrapped, tt.target)
		})
	}
}

func TestStoreKeepsTaxonomyErrors(t *testing.T) {
	nf := NotFound("note", uuid.New())
	assert.Same(t, nf, Store("update note", nf))
	assert.NoError(t, Store("noop", nil))
}

func TestStoreErrorUnwraps(t *testing.T) {
	cause := errors.New("boom")
	err := Store("create habit", cause)

	var se *StoreError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "create habit", se.Op)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "create habit: boom", err.Error())
}

func TestValidationErrorMessage(t *testing.T) {
	assert.Equal(t, "priority: unknown value \"x\"", Invalid("priority", `unknown value "x"`).Error())
	assert.Equal(t, "bad", (&ValidationError{Reason: "bad"}).Error())
}
