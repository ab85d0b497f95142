package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrTypeDataUnavailable ErrorType = "DATA_UNAVAILABLE"
	ErrTypeSchemaMismatch  ErrorType = "SCHEMA_MISMATCH"
	ErrTypeWrite           ErrorType = "WRITE_ERROR"
	ErrTypeConfig          ErrorType = "CONFIG"
)

// AppError represents an application-specific error
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// Helper functions for common error types

// NewDataUnavailableError reports that the dataset could not be resolved or fetched
func NewDataUnavailableError(message string, cause error) *AppError {
	return NewAppError(ErrTypeDataUnavailable, message, cause)
}

// NewSchemaMismatchError reports required columns missing from the source table
func NewSchemaMismatchError(missing []string) *AppError {
	return NewAppError(ErrTypeSchemaMismatch,
		fmt.Sprintf("required columns missing: %s", strings.Join(missing, ", ")), nil).
		WithContext("missing_columns", missing)
}

// NewWriteError reports that an output destination is not writable
func NewWriteError(message string, cause error) *AppError {
	return NewAppError(ErrTypeWrite, message, cause)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}

// IsType reports whether err is an AppError of the given type anywhere in its chain
func IsType(err error, errType ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == errType
	}
	return false
}

// IsDataUnavailable reports whether err is a DataUnavailable error
func IsDataUnavailable(err error) bool {
	return IsType(err, ErrTypeDataUnavailable)
}

// IsSchemaMismatch reports whether err is a SchemaMismatch error
func IsSchemaMismatch(err error) bool {
	return IsType(err, ErrTypeSchemaMismatch)
}

// IsWriteError reports whether err is a WriteError
func IsWriteError(err error) bool {
	return IsType(err, ErrTypeWrite)
}
