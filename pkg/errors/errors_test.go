// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test error creation, wrapping, OS error details and utility functions

package errors_test

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "original_not_found",
			code:    errors.ErrOriginalNotFound,
			message: "original missing",
			wantStr: "[ORIGINAL_NOT_FOUND] original missing",
		},
		{
			name:    "invalid_input_error",
			code:    errors.ErrInvalidInput,
			message: "invalid configuration",
			wantStr: "[INVALID_INPUT] invalid configuration",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.NotNil(t, err.Details)
			assert.Equal(t, tt.wantStr, err.Error())
		})
	}
}

func TestNewf(t *testing.T) {
	err := errors.Newf(errors.ErrLinkInconsistent, "link %s points to %s", "/a", "/b")
	assert.Equal(t, "link /a points to /b", err.Message)
}

func TestWrap(t *testing.T) {
	baseErr := stderrors.New("base error")

	t.Run("wrap_non_nil_error", func(t *testing.T) {
		err := errors.Wrap(baseErr, errors.ErrInternal, "internal error")

		assert.Equal(t, errors.ErrInternal, err.Code)
		assert.Equal(t, baseErr, err.Wrapped)
		assert.Equal(t, "[INTERNAL] internal error: base error", err.Error())
	})

	t.Run("wrap_nil_error_returns_nil", func(t *testing.T) {
		assert.Nil(t, errors.Wrap(nil, errors.ErrInternal, "internal error"))
		assert.Nil(t, errors.Wrapf(nil, errors.ErrInternal, "internal %s", "error"))
	})
}

func TestWithDetails(t *testing.T) {
	err := errors.New(errors.ErrBackupFailed, "cannot rename").
		WithDetail("link", "/home/u/.zshenv").
		WithDetails(map[string]interface{}{"backup": "/home/u/.zshenv-2024-01-01T00_00_00"})

	assert.Equal(t, "/home/u/.zshenv", err.Details["link"])
	assert.Equal(t, "/home/u/.zshenv-2024-01-01T00_00_00", err.Details["backup"])
}

func TestWithOSError(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")
	_, statErr := os.Lstat(missing)
	require.Error(t, statErr)

	err := errors.Wrap(statErr, errors.ErrOriginalNotFound, "stat failed").WithOSError(statErr)

	assert.Equal(t, missing, err.Details["path"])
	assert.Equal(t, "lstat", err.Details["op"])
	assert.Equal(t, "ENOENT", err.Details["errno"])
	assert.True(t, stderrors.Is(err, os.ErrNotExist))
}

func TestWithOSError_PlainError(t *testing.T) {
	err := errors.New(errors.ErrInternal, "x").WithOSError(stderrors.New("plain"))
	assert.Empty(t, err.Details)

	err = errors.New(errors.ErrInternal, "x").WithOSError(nil)
	assert.Empty(t, err.Details)
}

func TestIs(t *testing.T) {
	err1 := errors.New(errors.ErrLinkProbeFailed, "error 1")
	err2 := errors.New(errors.ErrLinkProbeFailed, "error 2")
	err3 := errors.New(errors.ErrInternal, "error 3")

	assert.True(t, err1.Is(err2))
	assert.False(t, err1.Is(err3))
	assert.True(t, stderrors.Is(err1, err2))
}

func TestIsErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     errors.ErrorCode
		expected bool
	}{
		{
			name:     "matching_code",
			err:      errors.New(errors.ErrNotFound, "not found"),
			code:     errors.ErrNotFound,
			expected: true,
		},
		{
			name:     "different_code",
			err:      errors.New(errors.ErrNotFound, "not found"),
			code:     errors.ErrInternal,
			expected: false,
		},
		{
			name:     "wrapped_error",
			err:      errors.Wrap(stderrors.New("base"), errors.ErrFileAccess, "denied"),
			code:     errors.ErrFileAccess,
			expected: true,
		},
		{
			name:     "non_dotlink_error",
			err:      stderrors.New("standard error"),
			code:     errors.ErrNotFound,
			expected: false,
		},
		{
			name:     "nil_error",
			err:      nil,
			code:     errors.ErrNotFound,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, errors.IsErrorCode(tt.err, tt.code))
		})
	}
}

func TestGetErrorCodeAndDetails(t *testing.T) {
	err := errors.New(errors.ErrLinkCreationFailed, "symlink failed").WithDetail("link", "/x")

	assert.Equal(t, errors.ErrLinkCreationFailed, errors.GetErrorCode(err))
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(stderrors.New("standard")))
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(nil))

	assert.Equal(t, "/x", errors.GetErrorDetails(err)["link"])
	assert.Nil(t, errors.GetErrorDetails(stderrors.New("standard")))
}

func TestErrorChaining(t *testing.T) {
	rootCause := stderrors.New("root cause")
	fileErr := errors.Wrap(rootCause, errors.ErrFileAccess, "cannot read file")
	configErr := errors.Wrap(fileErr, errors.ErrConfigLoad, "failed to load config")

	assert.True(t, errors.IsErrorCode(configErr, errors.ErrConfigLoad))

	var middle *errors.DotlinkError
	require.True(t, stderrors.As(configErr.Unwrap(), &middle))
	assert.Equal(t, errors.ErrFileAccess, middle.Code)

	assert.True(t, stderrors.Is(configErr, rootCause))
}
