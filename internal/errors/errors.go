package errors

import (
	"errors"
	"fmt"
)

// Standard application errors
var (
	ErrInvalidJSON        = errors.New("invalid JSON format")
	ErrInvalidYAML        = errors.New("invalid YAML format")
	ErrFileNotFound       = errors.New("file not found")
	ErrNoInput            = errors.New("no input provided: please specify a file with -i or pipe JSON data to stdin")
	ErrInvalidFilePath    = errors.New("invalid file path")
	ErrUnknownRequest     = errors.New("unknown request type")
	ErrDuplicateRequestID = errors.New("duplicate request id among outstanding requests")
	ErrPoolClosed         = errors.New("worker pool is closed")
)

// ErrorType categorizes errors
type ErrorType string

const (
	ErrorTypeInput     ErrorType = "input"
	ErrorTypeValidate  ErrorType = "validate"
	ErrorTypeTransform ErrorType = "transform"
	ErrorTypeDiff      ErrorType = "diff"
	ErrorTypeConvert   ErrorType = "convert"
	ErrorTypeWorker    ErrorType = "worker"
	ErrorTypeConfig    ErrorType = "config"
	ErrorTypeOutput    ErrorType = "output"
	ErrorTypeUnknown   ErrorType = "unknown"
)

// AppError is an application-specific error with context
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns wrapped error
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for comparison
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// NewInputError creates a new error related to input processing
func NewInputError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeInput, Message: message, Err: err}
}

// NewValidateError creates a new error related to JSON validation
func NewValidateError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeValidate, Message: message, Err: err}
}

// NewTransformError creates a new error related to format/minify/sort operations
func NewTransformError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeTransform, Message: message, Err: err}
}

// NewDiffError creates a new error related to structural comparison
func NewDiffError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeDiff, Message: message, Err: err}
}

// NewConvertError creates a new error related to YAML conversion
func NewConvertError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeConvert, Message: message, Err: err}
}

// NewWorkerError creates a new error related to the background worker pool
func NewWorkerError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeWorker, Message: message, Err: err}
}

// NewConfigError creates a new error related to configuration loading
func NewConfigError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeConfig, Message: message, Err: err}
}

// NewOutputError creates a new error related to output processing
func NewOutputError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeOutput, Message: message, Err: err}
}

// UserFriendlyError returns a user-friendly error message
func UserFriendlyError(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		switch appErr.Type {
		case ErrorTypeInput:
			return fmt.Sprintf("Input error: %s", appErr.Message)
		case ErrorTypeValidate:
			return fmt.Sprintf("Validation error: %s", appErr.Message)
		case ErrorTypeTransform:
			return fmt.Sprintf("Transform error: %s", appErr.Message)
		case ErrorTypeDiff:
			return fmt.Sprintf("Diff error: %s", appErr.Message)
		case ErrorTypeConvert:
			return fmt.Sprintf("Conversion error: %s", appErr.Message)
		case ErrorTypeWorker:
			return fmt.Sprintf("Worker error: %s", appErr.Message)
		case ErrorTypeConfig:
			return fmt.Sprintf("Config error: %s", appErr.Message)
		case ErrorTypeOutput:
			return fmt.Sprintf("Output error: %s", appErr.Message)
		default:
			return fmt.Sprintf("Error: %s", appErr.Message)
		}
	}

	// Handle standard errors
	if errors.Is(err, ErrInvalidJSON) {
		return "Error: The input contains invalid JSON. Please check your JSON syntax."
	}
	if errors.Is(err, ErrInvalidYAML) {
		return "Error: The input contains invalid YAML. Please check your YAML syntax."
	}
	if errors.Is(err, ErrFileNotFound) {
		return "Error: The specified file could not be found. Please check the file path."
	}
	if errors.Is(err, ErrNoInput) {
		return "Error: No input provided. Please specify a file with -i or pipe JSON data to stdin."
	}
	if errors.Is(err, ErrInvalidFilePath) {
		return "Error: Invalid file path. Please provide a valid file path."
	}
	if errors.Is(err, ErrUnknownRequest) {
		return "Error: Unknown request type. Supported types are VALIDATE, STATS, COMPARE and FORMAT."
	}

	// Generic error message for unknown errors
	return fmt.Sprintf("Error: %v", err)
}
