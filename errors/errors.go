package errors

import (
	"fmt"
	"time"
)

// Error is a structured error carrying a code, an optional cause, and
// optional task context.
type Error struct {
	code      ErrorCode
	message   string
	cause     error
	taskID    string
	timestamp time.Time
}

// Error returns the error message.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Code returns the error code.
func (e *Error) Code() ErrorCode {
	return e.code
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.cause
}

// TaskID returns the related task ID, if set.
func (e *Error) TaskID() string {
	return e.taskID
}

// Timestamp returns when the error occurred.
func (e *Error) Timestamp() time.Time {
	return e.timestamp
}

// Option is a functional option for configuring an Error.
type Option func(*Error)

// WithCause sets the underlying cause.
func WithCause(cause error) Option {
	return func(e *Error) {
		e.cause = cause
	}
}

// WithTaskID sets the related task ID.
func WithTaskID(id string) Option {
	return func(e *Error) {
		e.taskID = id
	}
}

// WithTimestamp sets a custom timestamp.
func WithTimestamp(t time.Time) Option {
	return func(e *Error) {
		e.timestamp = t
	}
}

// New creates a new Error with the given code and message.
func New(code ErrorCode, message string, opts ...Option) *Error {
	e := &Error{
		code:      code,
		message:   message,
		timestamp: time.Now(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Newf creates a new Error with a formatted message.
func Newf(code ErrorCode, format string, args ...interface{}) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

// FromCode creates an error with the default description for the code.
func FromCode(code ErrorCode, opts ...Option) *Error {
	return New(code, code.Description(), opts...)
}

// InvalidConfig creates a configuration error.
func InvalidConfig(message string, opts ...Option) *Error {
	return New(ErrCodeInvalidConfig, message, opts...)
}

// Canceled creates a cancellation error.
func Canceled(message string, opts ...Option) *Error {
	return New(ErrCodeCanceled, message, opts...)
}

// Closed creates a closed-component error.
func Closed(message string, opts ...Option) *Error {
	return New(ErrCodeClosed, message, opts...)
}

// QueueFull creates a full-queue error.
func QueueFull(message string, opts ...Option) *Error {
	return New(ErrCodeQueueFull, message, opts...)
}

// Internal creates an internal error.
func Internal(message string, opts ...Option) *Error {
	return New(ErrCodeInternal, message, opts...)
}
