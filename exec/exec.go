package exec

import "context"

// Action is the deferred unit of work. It either yields a value of type T
// or fails with an error. The context is the task's cooperative
// interruption signal: it is canceled when the task is canceled while the
// action runs. Honoring it is the action's responsibility; cancellation
// never forces preemption.
type Action[T any] func(ctx context.Context) (T, error)

// Deliverer executes a zero-argument delivery step in a chosen execution
// context. The engine does not block waiting for delivery to finish and
// places no ordering requirement across different tasks.
type Deliverer interface {
	// Deliver executes step exactly once per call, synchronously or
	// asynchronously.
	Deliver(step func())
}

// DelivererFunc adapts a function to the Deliverer interface.
type DelivererFunc func(step func())

// Deliver calls f(step).
func (f DelivererFunc) Deliver(step func()) {
	f(step)
}

// Inline returns the default deliverer: it runs each step synchronously
// on the calling goroutine, i.e. the executor goroutine that ran the
// action.
func Inline() Deliverer {
	return DelivererFunc(func(step func()) {
		step()
	})
}

// Runner is the single-shot entry point a dispatcher invokes. Run is safe
// to call any number of times from any goroutine but is effectful only on
// the first call that observes the task in its initial state.
type Runner interface {
	Run()
}

// Token is the caller-facing cancellation handle for one launched task.
// Holding a token does not keep the task's action or callbacks alive once
// the task reaches a terminal state.
type Token interface {
	// Cancel requests cancellation. It is level-triggered and idempotent:
	// safe to call repeatedly, from any goroutine, at any point in the
	// task's life, including after natural completion.
	Cancel()

	// Canceled reports whether cancellation has been observed. Callers who
	// need to know whether a result was silently dropped inspect this.
	Canceled() bool
}

// Task combines the dispatcher-facing and caller-facing views of one
// lifecycle engine instance.
type Task interface {
	Runner
	Token

	// ID returns the task's unique identifier.
	ID() string

	// State returns the task's current lifecycle state.
	State() State
}
