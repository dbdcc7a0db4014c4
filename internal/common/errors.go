package common

import (
	"errors"
	"fmt"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Common application errors
var (
	ErrConfiguration = errors.New("configuration error")
	ErrDecode        = errors.New("image decode error")
	ErrNetwork       = errors.New("network error")
	ErrParse         = errors.New("response parse error")
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewConfigurationError flags a fatal pre-flight problem: missing
// credentials, a bad setting, or an empty input directory.
func NewConfigurationError(message string) *AppError {
	return NewAppError("CONFIG_ERROR", message, ErrConfiguration)
}

// NewDecodeError flags an unreadable input image.
func NewDecodeError(message string, cause error) *AppError {
	return NewAppError("DECODE_ERROR", message, chain(ErrDecode, cause))
}

// NewNetworkError flags a transport failure or non-2xx endpoint response.
func NewNetworkError(message string, cause error) *AppError {
	return NewAppError("NETWORK_ERROR", message, chain(ErrNetwork, cause))
}

// NewParseError flags a model reply that is not valid JSON after
// fence-stripping. Callers recover from it; the batch still writes stats.
func NewParseError(message string, cause error) *AppError {
	return NewAppError("PARSE_ERROR", message, chain(ErrParse, cause))
}

func chain(sentinel, cause error) error {
	if cause == nil {
		return sentinel
	}
	return fmt.Errorf("%w: %v", sentinel, cause)
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
