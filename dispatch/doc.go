// Package dispatch queues launched tasks onto goroutines and honors
// launch delays. The lifecycle engine in package exec does not care who
// calls its Run entry point; dispatchers are the collaborators that
// eventually do, exactly once, on a goroutine of their choosing.
//
// # Available Implementations
//
//   - GoDispatcher: one goroutine per task, simplest and unbounded
//   - PoolDispatcher: fixed workers over a bounded queue, for callers
//     that need backpressure
//
// Both return the task's own token from Submit, live before execution
// starts, and both cancel tasks still waiting on their delay when
// closed.
//
// # Observability
//
// Dispatchers accept optional hooks: a logging.Logger, an
// events.Publisher receiving launched/started/completed/canceled
// transitions, and a telemetry.Tracer recording one span per run. All
// are best-effort and never affect task semantics.
//
// # Configuration
//
// PoolDispatcher takes a Config, optionally loaded from TOML:
//
//	workers = 8
//	queue_size = 128
//
//	cfg, err := dispatch.LoadConfig("dispatch.toml")
//	d, err := dispatch.NewPoolDispatcher(cfg)
package dispatch
