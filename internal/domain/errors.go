package domain

import (
	"errors"
	"fmt"
)

// Error types for domain-specific errors
type ErrorType string

const (
	ErrorTypeConfig    ErrorType = "config"
	ErrorTypeDownload  ErrorType = "download"
	ErrorTypeRasterize ErrorType = "rasterize"
	ErrorTypeRender    ErrorType = "render"
	ErrorTypeVariables ErrorType = "variables"
	ErrorTypeAPI       ErrorType = "api"
	ErrorTypeIO        ErrorType = "io"
)

// DomainError represents a domain-specific error with context
type DomainError struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewError creates a new domain error
func NewError(errType ErrorType, message string, err error) *DomainError {
	return &DomainError{
		Type:    errType,
		Message: message,
		Err:     err,
	}
}

// Common error constructors
func ConfigError(message string, err error) *DomainError {
	return NewError(ErrorTypeConfig, message, err)
}

func DownloadError(message string, err error) *DomainError {
	return NewError(ErrorTypeDownload, message, err)
}

func RasterizeError(message string, err error) *DomainError {
	return NewError(ErrorTypeRasterize, message, err)
}

func RenderError(message string, err error) *DomainError {
	return NewError(ErrorTypeRender, message, err)
}

func VariableError(message string, err error) *DomainError {
	return NewError(ErrorTypeVariables, message, err)
}

func APIError(message string, err error) *DomainError {
	return NewError(ErrorTypeAPI, message, err)
}

func IOError(message string, err error) *DomainError {
	return NewError(ErrorTypeIO, message, err)
}

// IsType reports whether err (or any error it wraps) is a DomainError of the
// given type.
func IsType(err error, errType ErrorType) bool {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Type == errType
	}
	return false
}
