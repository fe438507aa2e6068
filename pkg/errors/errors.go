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
	ErrUnknown  ErrorCode = "UNKNOWN"
	ErrInternal ErrorCode = "INTERNAL"
	ErrUsage    ErrorCode = "USAGE"
	ErrNotFound ErrorCode = "NOT_FOUND"

	// Manifest errors
	ErrManifestNotFound ErrorCode = "MANIFEST_NOT_FOUND"
	ErrManifestParse    ErrorCode = "MANIFEST_PARSE"
	ErrManifestInvalid  ErrorCode = "MANIFEST_INVALID"
	ErrManifestExists   ErrorCode = "MANIFEST_EXISTS"

	// Registry errors
	ErrUnknownTag     ErrorCode = "UNKNOWN_TAG"
	ErrTagExists      ErrorCode = "TAG_EXISTS"
	ErrHostExists     ErrorCode = "HOST_EXISTS"
	ErrDuplicateEntry ErrorCode = "DUPLICATE_ENTRY"
	ErrMissingEntry   ErrorCode = "MISSING_ENTRY"

	// Reconciliation errors
	ErrTypeConflict        ErrorCode = "TYPE_CONFLICT"
	ErrUnsupportedFileType ErrorCode = "UNSUPPORTED_FILE_TYPE"
	ErrHookExecution       ErrorCode = "HOOK_EXECUTION"

	// Configuration errors
	ErrConfigLoad ErrorCode = "CONFIG_LOAD"

	// FileSystem errors
	ErrFileAccess ErrorCode = "FILE_ACCESS"
)

// Exit codes follow sysexits(3) where one fits.
const (
	ExitFailure   = 1
	ExitUsage     = 64
	ExitDataErr   = 65
	ExitOSErr     = 71
	ExitCantCreat = 73
	ExitIOErr     = 74
)

var defaultExitCodes = map[ErrorCode]int{
	ErrUsage:            ExitUsage,
	ErrManifestNotFound: ExitOSErr,
	ErrManifestParse:    ExitOSErr,
	ErrManifestInvalid:  ExitDataErr,
	ErrManifestExists:   ExitCantCreat,
	ErrMissingEntry:     ExitOSErr,
	ErrFileAccess:       ExitIOErr,
}

// HamstercageError represents a structured error with code and details
type HamstercageError struct {
	Code     ErrorCode
	Message  string
	Details  map[string]interface{}
	Wrapped  error
	ExitCode int
}

// Error implements the error interface
func (e *HamstercageError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *HamstercageError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *HamstercageError) Is(target error) bool {
	var targetErr *HamstercageError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new HamstercageError with the given code and message
func New(code ErrorCode, message string) *HamstercageError {
	return &HamstercageError{
		Code:     code,
		Message:  message,
		Details:  make(map[string]interface{}),
		ExitCode: exitCodeFor(code),
	}
}

// Newf creates a new HamstercageError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *HamstercageError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap wraps an existing error with a HamstercageError
func Wrap(err error, code ErrorCode, message string) *HamstercageError {
	if err == nil {
		return nil
	}
	e := New(code, message)
	e.Wrapped = err
	return e
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *HamstercageError {
	if err == nil {
		return nil
	}
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// WithDetail adds a detail to the error
func (e *HamstercageError) WithDetail(key string, value interface{}) *HamstercageError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithExitCode overrides the exit code derived from the error code
func (e *HamstercageError) WithExitCode(code int) *HamstercageError {
	e.ExitCode = code
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var hcErr *HamstercageError
	if errors.As(err, &hcErr) {
		return hcErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a HamstercageError
func GetErrorCode(err error) ErrorCode {
	var hcErr *HamstercageError
	if errors.As(err, &hcErr) {
		return hcErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a HamstercageError
func GetErrorDetails(err error) map[string]interface{} {
	var hcErr *HamstercageError
	if errors.As(err, &hcErr) {
		return hcErr.Details
	}
	return nil
}

// GetExitCode returns the process exit code an error should surface as.
// nil maps to 0, foreign errors to ExitFailure.
func GetExitCode(err error) int {
	if err == nil {
		return 0
	}
	var hcErr *HamstercageError
	if errors.As(err, &hcErr) && hcErr.ExitCode != 0 {
		return hcErr.ExitCode
	}
	return ExitFailure
}

func exitCodeFor(code ErrorCode) int {
	if c, ok := defaultExitCodes[code]; ok {
		return c
	}
	return ExitFailure
}
