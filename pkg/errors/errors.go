package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Container errors
	ErrMalformedHeader  ErrorCode = "MALFORMED_HEADER"
	ErrOutOfRange       ErrorCode = "OUT_OF_RANGE"
	ErrInvalidSelection ErrorCode = "INVALID_SELECTION"

	// Tree-format errors
	ErrBoneNotFound ErrorCode = "BONE_NOT_FOUND"
	ErrTreeFormat   ErrorCode = "TREE_FORMAT"

	// External tool errors
	ErrExternalTool ErrorCode = "EXTERNAL_TOOL_FAILURE"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// FileSystem errors
	ErrFileNotFound ErrorCode = "FILE_NOT_FOUND"
	ErrFileAccess   ErrorCode = "FILE_ACCESS"
	ErrFileWrite    ErrorCode = "FILE_WRITE"
)

// AssistError represents a structured error with code and details
type AssistError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *AssistError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *AssistError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *AssistError) Is(target error) bool {
	var targetErr *AssistError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new AssistError with the given code and message
func New(code ErrorCode, message string) *AssistError {
	return &AssistError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new AssistError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *AssistError {
	return &AssistError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with an AssistError
func Wrap(err error, code ErrorCode, message string) *AssistError {
	if err == nil {
		return nil
	}
	return &AssistError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *AssistError {
	if err == nil {
		return nil
	}
	return &AssistError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *AssistError) WithDetail(key string, value interface{}) *AssistError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *AssistError) WithDetails(details map[string]interface{}) *AssistError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var assistErr *AssistError
	if errors.As(err, &assistErr) {
		return assistErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not an AssistError
func GetErrorCode(err error) ErrorCode {
	var assistErr *AssistError
	if errors.As(err, &assistErr) {
		return assistErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not an AssistError
func GetErrorDetails(err error) map[string]interface{} {
	var assistErr *AssistError
	if errors.As(err, &assistErr) {
		return assistErr.Details
	}
	return nil
}
