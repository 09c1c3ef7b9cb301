package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetType(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorType
	}{
		{"validation", Validationf("min %d greater than max %d", 5, 1), ErrorTypeValidation},
		{"not found", NotFoundf("galaxy %s not found", "x"), ErrorTypeNotFound},
		{"conflict", Conflictf("galaxy exists"), ErrorTypeConflict},
		{"external", WrapExternal("redis down", errors.New("dial tcp")), ErrorTypeExternal},
		{"plain error", errors.New("boom"), ErrorTypeInternal},
		{"wrapped app error", fmt.Errorf("outer: %w", Validation("bad")), ErrorTypeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetType(tt.err))
		})
	}
}

func TestAppErrorMessageAndUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := WrapExternal("failed to save sectors", cause)

	assert.Equal(t, "failed to save sectors: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.True(t, IsValidation(WrapValidation("bad range", cause)))
	assert.False(t, IsValidation(nil))
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(WrapExternal("sink down", errors.New("eof"))))
	assert.True(t, IsRetryable(Conflictf("seed %q locked", "x")))
	assert.False(t, IsRetryable(Validation("empty seed")))
	assert.False(t, IsRetryable(errors.New("boom")))
	assert.False(t, IsRetryable(nil))
}
