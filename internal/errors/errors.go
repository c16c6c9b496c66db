package errors

import (
	"errors"
	"fmt"
)

// Standard application errors
var (
	ErrEmptyInput      = errors.New("input is empty or contains only whitespace")
	ErrInvalidJSON     = errors.New("invalid JSON format")
	ErrMultipleJSON    = errors.New("multiple JSON values found at the root, only one is allowed")
	ErrFileNotFound    = errors.New("file not found")
	ErrFileEmpty       = errors.New("file is empty")
	ErrNoInput         = errors.New("no input provided: pass one or more JSON files or glob patterns")
	ErrInvalidFilePath = errors.New("invalid file path")
	ErrUnknownKind     = errors.New("unknown JSON type/format")
	ErrUnknownDialect  = errors.New("unknown dialect")
	ErrUnexpectedShape = errors.New("unexpected shape")
	ErrInvalidBPM      = errors.New("bpm must be a positive number")
)

// ErrorType categorizes errors
type ErrorType string

const (
	ErrorTypeInput          ErrorType = "input"
	ErrorTypeParsing        ErrorType = "parsing"
	ErrorTypeClassification ErrorType = "classification"
	ErrorTypeTransform      ErrorType = "transform"
	ErrorTypeOutput         ErrorType = "output"
	ErrorTypeConfig         ErrorType = "config"
	ErrorTypeUnknown        ErrorType = "unknown"
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

// NewInputError creates a new error related to reading input files
func NewInputError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeInput,
		Message: message,
		Err:     err,
	}
}

// NewParsingError creates a new error related to JSON parsing
func NewParsingError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeParsing,
		Message: message,
		Err:     err,
	}
}

// NewClassificationError creates a new error for documents whose kind or
// dialect could not be determined
func NewClassificationError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeClassification,
		Message: message,
		Err:     err,
	}
}

// NewTransformError creates a new error for shapes a transformer cannot map
func NewTransformError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeTransform,
		Message: message,
		Err:     err,
	}
}

// NewShapeError is a transform error wrapping ErrUnexpectedShape
func NewShapeError(format string, args ...interface{}) *AppError {
	return NewTransformError(fmt.Sprintf(format, args...), ErrUnexpectedShape)
}

// NewOutputError creates a new error related to output processing
func NewOutputError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeOutput,
		Message: message,
		Err:     err,
	}
}

// NewConfigError creates a new error related to configuration
func NewConfigError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeConfig,
		Message: message,
		Err:     err,
	}
}

// OutcomeMessage renders err as the one-line message reported for a file.
func OutcomeMessage(err error) string {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return fmt.Sprintf("Conversion error: %v", err)
	}

	detail := appErr.Message
	if appErr.Err != nil && !isSentinel(appErr.Err) {
		detail = fmt.Sprintf("%s: %v", appErr.Message, appErr.Err)
	}

	switch appErr.Type {
	case ErrorTypeInput, ErrorTypeParsing:
		return fmt.Sprintf("JSON load error: %s", detail)
	case ErrorTypeClassification:
		if errors.Is(appErr.Err, ErrUnknownDialect) {
			return fmt.Sprintf("Unknown %s format", appErr.Message)
		}
		return "Unknown JSON type/format"
	case ErrorTypeTransform:
		return fmt.Sprintf("Conversion error: %s", detail)
	case ErrorTypeOutput:
		return fmt.Sprintf("Write error: %s", detail)
	default:
		return fmt.Sprintf("Error: %s", detail)
	}
}

func isSentinel(err error) bool {
	switch err {
	case ErrEmptyInput, ErrInvalidJSON, ErrMultipleJSON, ErrFileNotFound, ErrFileEmpty,
		ErrInvalidFilePath, ErrUnknownKind, ErrUnknownDialect, ErrUnexpectedShape:
		return true
	}
	return false
}

// UserFriendlyError returns a user-friendly error message
func UserFriendlyError(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		switch appErr.Type {
		case ErrorTypeInput:
			return fmt.Sprintf("Input error: %s", appErr.Message)
		case ErrorTypeParsing:
			return fmt.Sprintf("JSON parsing error: %s", appErr.Message)
		case ErrorTypeClassification:
			return fmt.Sprintf("Classification error: %s", appErr.Message)
		case ErrorTypeTransform:
			return fmt.Sprintf("Conversion error: %s", appErr.Message)
		case ErrorTypeOutput:
			return fmt.Sprintf("Output error: %s", appErr.Message)
		case ErrorTypeConfig:
			if appErr.Err != nil {
				return fmt.Sprintf("Configuration error: %s: %v", appErr.Message, appErr.Err)
			}
			return fmt.Sprintf("Configuration error: %s", appErr.Message)
		default:
			return fmt.Sprintf("Error: %s", appErr.Message)
		}
	}

	// Handle standard errors
	if errors.Is(err, ErrEmptyInput) {
		return "Error: The input is empty. Please provide valid JSON data."
	}
	if errors.Is(err, ErrInvalidJSON) {
		return "Error: The input contains invalid JSON. Please check your JSON syntax."
	}
	if errors.Is(err, ErrFileNotFound) {
		return "Error: The specified file could not be found. Please check the file path."
	}
	if errors.Is(err, ErrNoInput) {
		return "Error: No input provided. Pass one or more JSON files or glob patterns."
	}

	// Generic error message for unknown errors
	return fmt.Sprintf("Error: %v", err)
}
