// Package errors provides the structured error taxonomy for asynckit.
//
// The library distinguishes three kinds of failure:
//
//   - Configuration errors (INVALID_CONFIG): surfaced synchronously to the
//     caller of the launch facade or a dispatcher constructor, fatal to that
//     call only.
//   - Action faults: anything raised during action execution, including
//     recovered panics (PANIC). These are routed to the task's OnError
//     callback and never propagated to the executor goroutine.
//   - Operational errors (CLOSED, QUEUE_FULL): returned by components that
//     refuse new work.
//
// A result or error computed for a task that has meanwhile been canceled is
// deliberately discarded. That silent drop is a defined policy, not an error,
// so no code in this package represents it.
//
// # Usage
//
// Create a new error:
//
//	err := errors.InvalidConfig("negative delay is not allowed")
//
// Wrap an existing error with context:
//
//	wrapped := errors.Wrap(err, "launching task")
//
// Check the code:
//
//	if errors.Is(err, errors.ErrCodeInvalidConfig) {
//	    // reject the call
//	}
package errors
