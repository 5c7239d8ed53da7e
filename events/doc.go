// Package events publishes task lifecycle transitions for observers.
//
// # Overview
//
// Dispatchers emit one Event per transition they can observe: launched
// when a submission is accepted, started when the run entry begins, and
// completed or canceled when the run ends. Events carry only the task ID,
// the transition, and a timestamp; results and errors belong to the
// task's own callbacks, never to the event stream. In particular, a
// result suppressed by cancellation produces no event beyond "canceled";
// the silent-drop policy of the core engine is preserved.
//
// # Available Implementations
//
//   - MemoryPublisher: in-process channel fanout for testing and
//     single-process observers
//   - NATSPublisher: cross-process observation over NATS, subjects
//     "asynckit.tasks.<type>"
//
// # Usage
//
//	pub := events.NewMemoryPublisher(events.DefaultConfig())
//	sub, _ := pub.Subscribe()
//	for e := range sub.Events() {
//	    fmt.Println(e.TaskID, e.Type)
//	}
//
// Publication is best-effort: a slow subscriber misses events rather than
// blocking a dispatcher, and a publish failure never fails the task.
package events
