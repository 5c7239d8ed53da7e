package exec

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/vinayprograms/asynckit/errors"
)

// Runnable is the per-task lifecycle engine. It owns one bundle and
// coordinates the executor goroutine calling Run, any number of
// goroutines calling Cancel, and the delivery step that hands the outcome
// to the bundle's callbacks.
//
// Guarantees, under true parallelism:
//
//   - the action executes at most once;
//   - exactly one of OnCompleted/OnError fires, at most once, matching
//     whether the action succeeded or faulted;
//   - no callback fires once cancellation is observed, even if the result
//     was already computed when Cancel landed;
//   - a goroutine actively executing the action when Cancel lands has its
//     action context canceled (best-effort cooperative interruption).
//
// A Runnable is created together with its bundle at launch time, lives
// until its terminal state is reached and delivery (if any) has run, and
// is never reused.
type Runnable[T any] struct {
	id        string
	deliverer Deliverer

	mu          sync.Mutex
	state       State
	action      Action[T]
	onCompleted func(T)
	onError     func(error)
	interrupt   context.CancelFunc // set while the action runs
}

var _ Task = (*Runnable[int])(nil)

// NewRunnable creates the lifecycle engine for one bundle.
func NewRunnable[T any](bundle Bundle[T]) *Runnable[T] {
	return &Runnable[T]{
		id:          uuid.NewString(),
		deliverer:   bundle.deliverer,
		state:       StateNew,
		action:      bundle.action,
		onCompleted: bundle.onCompleted,
		onError:     bundle.onError,
	}
}

// ID returns the task's unique identifier.
func (r *Runnable[T]) ID() string {
	return r.id
}

// State returns the current lifecycle state.
func (r *Runnable[T]) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Canceled reports whether cancellation has been observed.
func (r *Runnable[T]) Canceled() bool {
	return r.State() == StateCanceled
}

// Run executes the action once and routes the outcome through the
// deliverer. It is a no-op unless the task is still in its initial state,
// which covers both a cancel that arrived before execution started and a
// spurious second invocation.
//
// The action runs without holding the guard so a long-running action
// never blocks Cancel.
func (r *Runnable[T]) Run() {
	r.mu.Lock()
	if r.state != StateNew {
		r.mu.Unlock()
		return
	}
	action := r.action
	ctx, cancel := context.WithCancel(context.Background())
	r.interrupt = cancel
	r.state = StateRunning
	r.mu.Unlock()

	result, err := invoke(ctx, action)
	if err != nil {
		r.deliverError(err)
	} else {
		r.deliverResult(result)
	}

	// The action has returned: release it and close the interruption
	// window so a late Cancel cannot target a context that has moved on.
	r.mu.Lock()
	r.action = nil
	r.interrupt = nil
	r.mu.Unlock()
	cancel()
}

// invoke runs the action, converting a panic into an error. Faults are
// never rethrown to the executor goroutine.
func invoke[T any](ctx context.Context, action Action[T]) (result T, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = errors.RecoverPanic(p)
		}
	}()
	return action(ctx)
}

// deliverResult hands a successful result to the delivery context. The
// state is re-checked inside the delivery step: if cancellation won the
// race after the action finished but before delivery ran, the result is
// silently dropped.
func (r *Runnable[T]) deliverResult(result T) {
	r.deliverer.Deliver(func() {
		r.mu.Lock()
		if r.state == StateCanceled {
			r.mu.Unlock()
			return
		}
		callback := r.onCompleted
		r.onCompleted = nil
		r.onError = nil
		r.state = StateCompleted
		r.mu.Unlock()

		// Invoked outside the guard: the transition above already
		// decided the race, and a callback may touch its own token.
		if callback != nil {
			callback(result)
		}
	})
}

// deliverError hands an action fault to the delivery context, subject to
// the same cancellation gate as deliverResult.
func (r *Runnable[T]) deliverError(err error) {
	r.deliverer.Deliver(func() {
		r.mu.Lock()
		if r.state == StateCanceled {
			r.mu.Unlock()
			return
		}
		callback := r.onError
		r.onError = nil
		r.onCompleted = nil
		r.state = StateCompleted
		r.mu.Unlock()

		if callback != nil {
			callback(err)
		}
	})
}

// Cancel requests cancellation. Depending on timing it prevents a
// not-yet-started task from ever starting, cancels the action context of
// a running task, or suppresses delivery of an already-computed result.
// Terminal states make it a no-op. References to the action and both
// callbacks are dropped immediately so they can never fire after this
// point, even if a delivery step is already in flight.
func (r *Runnable[T]) Cancel() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != StateNew && r.state != StateRunning {
		return
	}
	if r.interrupt != nil {
		r.interrupt()
	}
	r.action = nil
	r.onCompleted = nil
	r.onError = nil
	r.state = StateCanceled
}
