package errors

import (
	"errors"
	"fmt"
)

var (
	ErrConnection = NewError("CONNECTION_ERROR", "collaborator unreachable")
	ErrGeneration = NewError("GENERATION_ERROR", "ai generation failed")
	ErrDecode     = NewError("DECODE_ERROR", "malformed request envelope")
	ErrNotFound   = NewError("NOT_FOUND", "resource not found")
	ErrInternal   = NewError("INTERNAL_ERROR", "internal error")
)

type RetryableError interface {
	error
	IsRetryable() bool
}

type FatalError interface {
	error
	IsFatal() bool
}

// Error is the coded error carried across service boundaries. Decode and
// generation failures are terminal for a single request; connection errors
// are retryable at startup.
type Error struct {
	Code    string
	Message string
	Details map[string]interface{}
	Cause   error
}

func NewError(code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func (e *Error) IsRetryable() bool {
	return e.Code == ErrConnection.Code
}

func (e *Error) IsFatal() bool {
	return !e.IsRetryable()
}

// clone copies the error including its Details map, so derived errors never
// write into a shared sentinel.
func (e *Error) clone() *Error {
	err := *e
	err.Details = make(map[string]interface{}, len(e.Details))
	for k, v := range e.Details {
		err.Details[k] = v
	}
	return &err
}

func (e *Error) WithCause(cause error) *Error {
	err := e.clone()
	err.Cause = cause
	return err
}

func (e *Error) WithDetail(key string, value interface{}) *Error {
	err := e.clone()
	err.Details[key] = value
	return err
}

func (e *Error) WithMessage(message string) *Error {
	err := e.clone()
	err.Message = message
	return err
}

func Wrap(err error, appErr *Error) *Error {
	if err == nil {
		return nil
	}
	return appErr.WithCause(err)
}

func IsConnection(err error) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code == ErrConnection.Code
	}
	return false
}

func IsGeneration(err error) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code == ErrGeneration.Code
	}
	return false
}

func IsDecode(err error) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code == ErrDecode.Code
	}
	return false
}
