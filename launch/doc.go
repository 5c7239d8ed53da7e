// Package launch is the fluent entry point for running actions
// asynchronously.
//
// A Command wraps an action together with its response handlers,
// deliverer, and start delay, and launches that context on a
// dispatcher:
//
//	d := dispatch.NewGoDispatcher()
//	tok, err := launch.NewCommand(fetchUser, d).
//		OnCompleted(showUser).
//		OnError(showError).
//		Delay(200 * time.Millisecond).
//		Launch()
//
// The returned token cancels the task at any point in its life: before
// it starts, while the action runs, or between completion and
// delivery. LaunchInto and LaunchTagged hand the token to a
// tokenbox.Box for bulk cancellation instead.
package launch
