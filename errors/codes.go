package errors

// ErrorCode identifies a specific failure type within asynckit.
type ErrorCode string

// Error codes for the failure scenarios the library distinguishes.
const (
	// ErrCodeInvalidConfig indicates a configuration error surfaced
	// synchronously to the caller (negative delay, nil token box, bad
	// dispatcher settings). Fatal to that call only.
	ErrCodeInvalidConfig ErrorCode = "INVALID_CONFIG"

	// ErrCodeCanceled indicates an operation observed cancellation.
	ErrCodeCanceled ErrorCode = "CANCELED"

	// ErrCodePanic indicates an action panicked and the panic was
	// recovered into an error.
	ErrCodePanic ErrorCode = "PANIC"

	// ErrCodeQueueFull indicates a bounded dispatcher queue rejected a
	// submission.
	ErrCodeQueueFull ErrorCode = "QUEUE_FULL"

	// ErrCodeClosed indicates an operation on a closed component
	// (dispatcher, events publisher).
	ErrCodeClosed ErrorCode = "CLOSED"

	// ErrCodeInternal indicates an unexpected internal error.
	ErrCodeInternal ErrorCode = "INTERNAL"
)

// String returns the string representation of the error code.
func (c ErrorCode) String() string {
	return string(c)
}

// codeDescriptions provides human-readable descriptions for error codes.
var codeDescriptions = map[ErrorCode]string{
	ErrCodeInvalidConfig: "invalid configuration",
	ErrCodeCanceled:      "operation canceled",
	ErrCodePanic:         "recovered from panic",
	ErrCodeQueueFull:     "dispatch queue full",
	ErrCodeClosed:        "component closed",
	ErrCodeInternal:      "internal error",
}

// Description returns a human-readable description for the error code.
func (c ErrorCode) Description() string {
	if desc, ok := codeDescriptions[c]; ok {
		return desc
	}
	return "unknown error"
}
