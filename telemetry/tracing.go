// Package telemetry provides OpenTelemetry tracing around task
// execution. Dispatchers record one span per task run; the core engine
// itself is trace-free so the silent-drop semantics stay unobservable.
package telemetry

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Tracer wraps OpenTelemetry tracing with task-specific helpers.
type Tracer struct {
	tracer trace.Tracer
}

var (
	globalTracer *Tracer
	tracerMu     sync.RWMutex
)

// SetGlobalTracer sets the global tracer instance.
func SetGlobalTracer(t *Tracer) {
	tracerMu.Lock()
	defer tracerMu.Unlock()
	globalTracer = t
}

// GetTracer returns the global tracer, or a no-op tracer if not set.
func GetTracer() *Tracer {
	tracerMu.RLock()
	defer tracerMu.RUnlock()
	if globalTracer == nil {
		return &Tracer{tracer: noop.NewTracerProvider().Tracer("")}
	}
	return globalTracer
}

// NewTracer creates a new tracer with the given name.
func NewTracer(name string) *Tracer {
	return &Tracer{
		tracer: otel.Tracer(name),
	}
}

// StartTaskSpan starts a span for one task run.
func (t *Tracer) StartTaskSpan(ctx context.Context, taskID string) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, "task.run",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attribute.String("task.id", taskID)),
	)
}

// EndTaskSpan ends a task span with its terminal state. Canceled tasks
// are not errors; the span just records the state.
func (t *Tracer) EndTaskSpan(span trace.Span, state string, err error) {
	span.SetAttributes(attribute.String("task.state", state))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}

	span.End()
}
