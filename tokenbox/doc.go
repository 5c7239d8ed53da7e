// Package tokenbox aggregates cancellation tokens from launched tasks.
//
// A Box holds the tokens of an arbitrary set of in-flight tasks and
// cancels them in bulk, either all at once or by the tag they were
// appended under. The typical use is scoping: append every task
// launched on behalf of some unit of work (a request, a screen, a
// session) and call CancelAll when that unit goes away.
package tokenbox
