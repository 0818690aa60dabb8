package errors

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorType_Constants(t *testing.T) {
	tests := []struct {
		name     string
		errType  ErrorType
		expected string
	}{
		{name: "input error type", errType: ErrTypeInput, expected: "INPUT"},
		{name: "parsing error type", errType: ErrTypeParsing, expected: "PARSING"},
		{name: "storage error type", errType: ErrTypeStorage, expected: "STORAGE"},
		{name: "validation error type", errType: ErrTypeValidation, expected: "VALIDATION"},
		{name: "no data error type", errType: ErrTypeNoData, expected: "NO_DATA"},
		{name: "config error type", errType: ErrTypeConfig, expected: "CONFIG"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, string(tt.errType))
		})
	}
}

func TestAppError_Error(t *testing.T) {
	withCause := NewStorageError("failed to save workbook", fmt.Errorf("disk full"))
	assert.Equal(t, "[STORAGE] failed to save workbook: disk full", withCause.Error())

	noCause := NewNoDataError("no rows", nil)
	assert.Equal(t, "[NO_DATA] no rows", noCause.Error())
}

func TestAppError_Unwrap(t *testing.T) {
	err := NewNoDataError("nothing to merge", ErrNoInputFiles)
	assert.True(t, errors.Is(err, ErrNoInputFiles))
	assert.False(t, errors.Is(err, ErrNoDataRows))

	wrapped := fmt.Errorf("merge step: %w", err)
	var appErr *AppError
	require.True(t, errors.As(wrapped, &appErr))
	assert.Equal(t, ErrTypeNoData, appErr.Type)
}

func TestNewInputError(t *testing.T) {
	err := NewInputError("Skola A.xls", os.ErrNotExist)

	assert.Equal(t, ErrTypeInput, err.Type)
	assert.Equal(t, "Skola A.xls", err.Context["file"])
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.True(t, IsRecoverable(err))
	assert.True(t, IsRecoverable(fmt.Errorf("wrapped: %w", err)))
}

func TestIsType(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		errType ErrorType
		want    bool
	}{
		{"matching type", NewConfigError("bad", nil), ErrTypeConfig, true},
		{"other type", NewConfigError("bad", nil), ErrTypeStorage, false},
		{"plain error", errors.New("plain"), ErrTypeConfig, false},
		{"nil error", nil, ErrTypeConfig, false},
		{"validation not recoverable", NewValidationError("year", ErrInvalidSchoolYear), ErrTypeValidation, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsType(tt.err, tt.errType))
		})
	}

	assert.False(t, IsRecoverable(NewNoDataError("x", ErrNoDataRows)))
}

func TestAppError_WithContext(t *testing.T) {
	err := &AppError{Type: ErrTypeParsing, Message: "bad cell"}
	err.WithContext("row", 12).WithContext("column", "n_pct")

	assert.Equal(t, 12, err.Context["row"])
	assert.Equal(t, "n_pct", err.Context["column"])
}
