package errors

import (
	"context"
	"errors"
	"fmt"
)

// Wrap wraps an error with additional context while preserving the error
// chain. If err is nil, Wrap returns nil. If err is already a structured
// Error, the wrapped error keeps its code and task ID.
func Wrap(err error, message string, opts ...Option) *Error {
	if err == nil {
		return nil
	}

	var structured *Error
	if errors.As(err, &structured) {
		wrapped := &Error{
			code:    structured.code,
			message: message,
			cause:   err,
			taskID:  structured.taskID,
		}
		for _, opt := range opts {
			opt(wrapped)
		}
		return wrapped
	}

	if errors.Is(err, context.Canceled) {
		return New(ErrCodeCanceled, message, append(opts, WithCause(err))...)
	}

	return New(ErrCodeInternal, message, append(opts, WithCause(err))...)
}

// Wrapf wraps an error with a formatted message.
func Wrapf(err error, format string, args ...interface{}) *Error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

// Is checks if any error in the chain has the given error code.
func Is(err error, code ErrorCode) bool {
	var structured *Error
	if errors.As(err, &structured) {
		return structured.code == code
	}
	return false
}

// Code extracts the error code from an error, if available.
// Returns empty string if err is not a structured Error.
func Code(err error) ErrorCode {
	var structured *Error
	if errors.As(err, &structured) {
		return structured.code
	}
	return ""
}

// TaskID extracts the task ID from an error, if available.
func TaskID(err error) string {
	var structured *Error
	if errors.As(err, &structured) {
		return structured.taskID
	}
	return ""
}

// RecoverPanic converts a recovered panic value into an Error.
// Returns nil if recovered is nil.
func RecoverPanic(recovered interface{}) *Error {
	if recovered == nil {
		return nil
	}
	var message string
	switch v := recovered.(type) {
	case error:
		message = v.Error()
	case string:
		message = v
	default:
		message = fmt.Sprintf("%v", v)
	}
	return New(ErrCodePanic, message)
}
