package types

import (
	"fmt"
)

// ErrorCode represents categorized error codes for exam generation
type ErrorCode string

const (
	// Question input errors (parsing and structural validation)
	ErrCodeInvalidQuestionFormat ErrorCode = "INVALID_QUESTION_FORMAT"

	// Configuration errors (missing/invalid required configuration)
	ErrCodeConfiguration ErrorCode = "CONFIGURATION"

	// Encryption errors (cipher failures, empty password, malformed
	// ciphertext, and answer-code parse failures on decrypted text)
	ErrCodeEncryption ErrorCode = "ENCRYPTION"

	// File generation errors (layout, QR capacity, file writes)
	ErrCodeFileGeneration ErrorCode = "FILE_GENERATION"
)

// ExamError is a structured error type for exam generation operations
type ExamError struct {
	Code    ErrorCode              // Error category code
	Message string                 // Human-readable message
	Cause   error                  // Underlying error (if any)
	Context map[string]interface{} // Additional context (question number, field name, etc.)
}

// Error implements the error interface
func (e *ExamError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *ExamError) Unwrap() error {
	return e.Cause
}

// Is checks if this error matches a target ExamError by code
func (e *ExamError) Is(target error) bool {
	if t, ok := target.(*ExamError); ok {
		return e.Code == t.Code
	}
	return false
}

// WithContext adds context to the error and returns the same error for chaining
func (e *ExamError) WithContext(key string, value interface{}) *ExamError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewError creates a new ExamError with the given code and message
func NewError(code ErrorCode, message string) *ExamError {
	return &ExamError{
		Code:    code,
		Message: message,
	}
}

// NewErrorf creates a new ExamError with a formatted message
func NewErrorf(code ErrorCode, format string, args ...interface{}) *ExamError {
	return &ExamError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// WrapError wraps an existing error with an ExamError
func WrapError(code ErrorCode, message string, cause error) *ExamError {
	return &ExamError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WrapErrorf wraps an existing error with an ExamError and formatted message
func WrapErrorf(code ErrorCode, cause error, format string, args ...interface{}) *ExamError {
	return &ExamError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Sentinel errors for use with errors.Is()
var (
	ErrInvalidQuestionFormat = &ExamError{Code: ErrCodeInvalidQuestionFormat}
	ErrConfiguration         = &ExamError{Code: ErrCodeConfiguration}
	ErrEncryption            = &ExamError{Code: ErrCodeEncryption}
	ErrFileGeneration        = &ExamError{Code: ErrCodeFileGeneration}
)

// IsExamError checks if an error is an ExamError and returns it
func IsExamError(err error) (*ExamError, bool) {
	if examErr, ok := err.(*ExamError); ok {
		return examErr, true
	}
	return nil, false
}

// GetErrorCode extracts the error code from an error if it's an ExamError
func GetErrorCode(err error) (ErrorCode, bool) {
	if examErr, ok := err.(*ExamError); ok {
		return examErr.Code, true
	}
	return "", false
}

// IsQuestionFormatError checks if the error is a question format error
func IsQuestionFormatError(err error) bool {
	if examErr, ok := err.(*ExamError); ok {
		return examErr.Code == ErrCodeInvalidQuestionFormat
	}
	return false
}

// IsConfigurationError checks if the error is a configuration error
func IsConfigurationError(err error) bool {
	if examErr, ok := err.(*ExamError); ok {
		return examErr.Code == ErrCodeConfiguration
	}
	return false
}

// IsEncryptionError checks if the error is related to the answer-code cipher
func IsEncryptionError(err error) bool {
	if examErr, ok := err.(*ExamError); ok {
		return examErr.Code == ErrCodeEncryption
	}
	return false
}

// IsFileGenerationError checks if the error is a file generation error
func IsFileGenerationError(err error) bool {
	if examErr, ok := err.(*ExamError); ok {
		return examErr.Code == ErrCodeFileGeneration
	}
	return false
}
