package errors

import (
	"errors"
	"fmt"
	"io/fs"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"
	ErrFileAccess   ErrorCode = "FILE_ACCESS"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Reconciliation errors. Every failure of a single link reconciliation
	// carries exactly one of these.
	ErrOriginalNotFound       ErrorCode = "ORIGINAL_NOT_FOUND"
	ErrCanonicalizationFailed ErrorCode = "CANONICALIZATION_FAILED"
	ErrLinkProbeFailed        ErrorCode = "LINK_PROBE_FAILED"
	ErrBackupFailed           ErrorCode = "BACKUP_FAILED"
	ErrInvalidBackupTarget    ErrorCode = "INVALID_BACKUP_TARGET"
	ErrLinkCreationFailed     ErrorCode = "LINK_CREATION_FAILED"
	ErrLinkInconsistent       ErrorCode = "LINK_INCONSISTENT"
)

// DotlinkError represents a structured error with code and details
type DotlinkError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *DotlinkError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *DotlinkError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *DotlinkError) Is(target error) bool {
	var targetErr *DotlinkError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new DotlinkError with the given code and message
func New(code ErrorCode, message string) *DotlinkError {
	return &DotlinkError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new DotlinkError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *DotlinkError {
	return &DotlinkError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a DotlinkError
func Wrap(err error, code ErrorCode, message string) *DotlinkError {
	if err == nil {
		return nil
	}
	return &DotlinkError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *DotlinkError {
	if err == nil {
		return nil
	}
	return &DotlinkError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *DotlinkError) WithDetail(key string, value interface{}) *DotlinkError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *DotlinkError) WithDetails(details map[string]interface{}) *DotlinkError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithOSError records the path and errno carried by an underlying
// *fs.PathError or *os.LinkError. The "errno" detail holds the symbolic
// name (ENOENT, EACCES, ...) when the platform exposes one.
func (e *DotlinkError) WithOSError(err error) *DotlinkError {
	if err == nil {
		return e
	}
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		e.WithDetail("path", pathErr.Path).WithDetail("op", pathErr.Op)
	}
	if name := errnoName(err); name != "" {
		e.WithDetail("errno", name)
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var dotlinkErr *DotlinkError
	if errors.As(err, &dotlinkErr) {
		return dotlinkErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a DotlinkError
func GetErrorCode(err error) ErrorCode {
	var dotlinkErr *DotlinkError
	if errors.As(err, &dotlinkErr) {
		return dotlinkErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a DotlinkError
func GetErrorDetails(err error) map[string]interface{} {
	var dotlinkErr *DotlinkError
	if errors.As(err, &dotlinkErr) {
		return dotlinkErr.Details
	}
	return nil
}
