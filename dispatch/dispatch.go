package dispatch

import (
	"context"
	"time"

	"github.com/vinayprograms/asynckit/errors"
	"github.com/vinayprograms/asynckit/events"
	"github.com/vinayprograms/asynckit/exec"
	"github.com/vinayprograms/asynckit/logging"
	"github.com/vinayprograms/asynckit/telemetry"
)

// Dispatcher queues launched tasks onto goroutines and honors a launch
// delay. It must eventually invoke the task's Run entry point exactly
// once, after at least the requested delay, on a goroutine of its
// choosing. The returned token is usable for cancellation before
// execution starts.
type Dispatcher interface {
	// Submit accepts a task for execution after at least delay (0 =
	// immediate). A negative delay or nil task is a configuration error.
	Submit(task exec.Task, delay time.Duration) (exec.Token, error)

	// Close stops accepting work and waits for in-flight tasks. Tasks
	// still waiting on their delay are canceled.
	Close() error
}

// Option configures a dispatcher's observability hooks.
type Option func(*hooks)

// hooks are the optional observers shared by all dispatcher
// implementations. All are nil-safe: an unset hook costs nothing.
type hooks struct {
	logger *logging.Logger
	events events.Publisher
	tracer *telemetry.Tracer
}

// WithLogger attaches a logger.
func WithLogger(l *logging.Logger) Option {
	return func(h *hooks) {
		h.logger = l
	}
}

// WithEvents attaches a lifecycle event publisher.
func WithEvents(p events.Publisher) Option {
	return func(h *hooks) {
		h.events = p
	}
}

// WithTracer attaches a telemetry tracer recording one span per task run.
func WithTracer(t *telemetry.Tracer) Option {
	return func(h *hooks) {
		h.tracer = t
	}
}

func newHooks(opts []Option) hooks {
	var h hooks
	for _, opt := range opts {
		if opt != nil {
			opt(&h)
		}
	}
	return h
}

// publish emits a lifecycle event, best-effort. Event failures never
// fail a task.
func (h *hooks) publish(taskID string, t events.Type) {
	if h.events == nil {
		return
	}
	_ = h.events.Publish(events.New(taskID, t))
}

// launched records acceptance of a submission.
func (h *hooks) launched(taskID string, delay time.Duration) {
	if h.logger != nil {
		h.logger.TaskLaunched(taskID, delay)
	}
	h.publish(taskID, events.TypeLaunched)
}

// runTask executes one task with the configured observers around it.
func (h *hooks) runTask(task exec.Task) {
	if h.logger != nil {
		h.logger.TaskStarted(task.ID())
	}
	h.publish(task.ID(), events.TypeStarted)

	start := time.Now()
	if h.tracer != nil {
		_, span := h.tracer.StartTaskSpan(context.Background(), task.ID())
		defer func() {
			h.tracer.EndTaskSpan(span, task.State().String(), nil)
		}()
	}

	task.Run()

	state := task.State()
	if h.logger != nil {
		h.logger.TaskFinished(task.ID(), state.String(), time.Since(start))
	}
	if state == exec.StateCanceled {
		h.publish(task.ID(), events.TypeCanceled)
	} else {
		h.publish(task.ID(), events.TypeCompleted)
	}
}

// validate rejects submissions every dispatcher refuses.
func validate(task exec.Task, delay time.Duration) error {
	if task == nil {
		return errors.InvalidConfig("nil task is not allowed")
	}
	if delay < 0 {
		return errors.InvalidConfig("negative delay is not allowed")
	}
	return nil
}
