// Package exec implements the per-task lifecycle engine at the core of
// asynckit: safe, race-free coordination between the goroutine executing
// an action, concurrent callers that may cancel it at any moment, and the
// delivery step that hands the outcome to user callbacks.
//
// # Lifecycle
//
// Each launched task is one Runnable, which moves through:
//
//	New → Running → Completed
//	New → Canceled
//	Running → Canceled
//
// Completed and Canceled are terminal. All transitions happen under one
// mutex; the action itself executes outside it so cancellation is never
// starved by a long-running action.
//
// # Cancellation
//
// Cancel has three distinct externally-observable effects depending on
// timing:
//
//   - before Run: the action never executes and neither callback fires;
//   - during the action: the action's context is canceled (cooperative,
//     best-effort), and neither callback fires regardless of how the
//     action finishes;
//   - after the action finished but before delivery ran: the computed
//     result or error is silently dropped.
//
// The silent drop is deliberate: no error, no log. Callers who need to
// know inspect the token's Canceled method.
//
// # Delivery
//
// Outcomes reach callbacks through a Deliverer. The default runs the
// delivery step inline on the executor goroutine; Loop serializes steps
// onto a dedicated goroutine for main-loop style programs. Either way the
// delivery step re-checks the task state before invoking a callback, so
// callbacks fire at most once and never after cancellation is observed.
//
// # Usage
//
//	bundle, err := exec.NewBundle(
//	    func(ctx context.Context) (int, error) { return compute(ctx) },
//	    func(v int) { fmt.Println("got", v) },
//	    func(err error) { fmt.Println("failed:", err) },
//	    nil, // inline delivery
//	)
//	task := exec.NewRunnable(bundle)
//	go task.Run()
//	// ... later, from any goroutine:
//	task.Cancel()
//
// Timeouts are a caller concern: call Cancel from a timer. Retries are a
// caller concern: relaunch a fresh bundle.
package exec
