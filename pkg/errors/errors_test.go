// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test error creation, wrapping, and code lookup

package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/lmcintyre/AnimAssist/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_FormatsCodeAndMessage(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "malformed_header",
			code:    errors.ErrMalformedHeader,
			message: "pap header truncated",
			wantStr: "[MALFORMED_HEADER] pap header truncated",
		},
		{
			name:    "bone_not_found",
			code:    errors.ErrBoneNotFound,
			message: "no bone named j_kao",
			wantStr: "[BONE_NOT_FOUND] no bone named j_kao",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.NotNil(t, err.Details, "details should be initialized")
			assert.Equal(t, tt.wantStr, err.Error())
		})
	}
}

func TestNewf(t *testing.T) {
	err := errors.Newf(errors.ErrOutOfRange, "payload [%d:%d) exceeds %d bytes", 66, 90, 80)
	assert.Equal(t, "payload [66:90) exceeds 80 bytes", err.Message)
}

func TestWrap(t *testing.T) {
	baseErr := stderrors.New("exit status 1")

	t.Run("wrap_non_nil_error", func(t *testing.T) {
		err := errors.Wrap(baseErr, errors.ErrExternalTool, "tool failed")

		assert.Equal(t, errors.ErrExternalTool, err.Code)
		assert.Same(t, baseErr, err.Wrapped)
		assert.Equal(t, "[EXTERNAL_TOOL_FAILURE] tool failed: exit status 1", err.Error())
	})

	t.Run("wrap_nil_error_returns_nil", func(t *testing.T) {
		assert.Nil(t, errors.Wrap(nil, errors.ErrInternal, "internal error"))
		assert.Nil(t, errors.Wrapf(nil, errors.ErrInternal, "internal %s", "error"))
	})
}

func TestWithDetails(t *testing.T) {
	err := errors.New(errors.ErrOutOfRange, "slice out of range").
		WithDetail("field", "timeline_offset").
		WithDetails(map[string]interface{}{"offset": 90, "length": 80})

	assert.Equal(t, "timeline_offset", err.Details["field"])
	assert.Equal(t, 90, err.Details["offset"])
	assert.Equal(t, 80, err.Details["length"])
	assert.Equal(t, err.Details, errors.GetErrorDetails(err))
}

func TestIs_ComparesCodes(t *testing.T) {
	err1 := errors.New(errors.ErrInvalidSelection, "index 5")
	err2 := errors.New(errors.ErrInvalidSelection, "index 7")
	err3 := errors.New(errors.ErrOutOfRange, "out of range")

	assert.True(t, stderrors.Is(err1, err2))
	assert.False(t, stderrors.Is(err1, err3))
}

func TestIsErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     errors.ErrorCode
		expected bool
	}{
		{"matching_code", errors.New(errors.ErrTreeFormat, "x"), errors.ErrTreeFormat, true},
		{"different_code", errors.New(errors.ErrTreeFormat, "x"), errors.ErrInternal, false},
		{"fmt_wrapped", fmt.Errorf("pack: %w", errors.New(errors.ErrBoneNotFound, "x")), errors.ErrBoneNotFound, true},
		{"standard_error", stderrors.New("plain"), errors.ErrUnknown, false},
		{"nil_error", nil, errors.ErrUnknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, errors.IsErrorCode(tt.err, tt.code))
		})
	}
}

func TestGetErrorCode(t *testing.T) {
	assert.Equal(t, errors.ErrFileWrite, errors.GetErrorCode(errors.New(errors.ErrFileWrite, "x")))
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(stderrors.New("plain")))
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(nil))
	assert.Nil(t, errors.GetErrorDetails(stderrors.New("plain")))
}

func TestErrorChaining(t *testing.T) {
	rootCause := stderrors.New("permission denied")
	fileErr := errors.Wrap(rootCause, errors.ErrFileAccess, "cannot read skeleton")
	topErr := errors.Wrap(fileErr, errors.ErrConfigLoad, "failed to load config")

	assert.True(t, errors.IsErrorCode(topErr, errors.ErrConfigLoad))

	var middle *errors.AssistError
	require.True(t, stderrors.As(topErr.Unwrap(), &middle))
	assert.Equal(t, errors.ErrFileAccess, middle.Code)
	assert.True(t, stderrors.Is(topErr, rootCause))
}
