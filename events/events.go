package events

import (
	"encoding/json"
	"errors"
	"time"
)

// Common errors.
var (
	ErrClosed       = errors.New("publisher closed")
	ErrInvalidEvent = errors.New("invalid event")
)

// Type identifies a lifecycle event.
type Type string

const (
	// TypeLaunched is emitted when a dispatcher accepts a task.
	TypeLaunched Type = "launched"

	// TypeStarted is emitted when a task's run entry begins executing.
	TypeStarted Type = "started"

	// TypeCompleted is emitted when a task finishes and delivery was not
	// suppressed.
	TypeCompleted Type = "completed"

	// TypeCanceled is emitted when a task run ends with cancellation
	// observed.
	TypeCanceled Type = "canceled"
)

// Valid returns true if the type is a known value.
func (t Type) Valid() bool {
	switch t {
	case TypeLaunched, TypeStarted, TypeCompleted, TypeCanceled:
		return true
	default:
		return false
	}
}

// Event describes one lifecycle transition of one task. Events are
// observability only: publication is best-effort and never blocks or
// fails a task.
type Event struct {
	// TaskID uniquely identifies the task.
	TaskID string `json:"task_id"`

	// Type is the lifecycle transition.
	Type Type `json:"type"`

	// Timestamp is when the transition was observed.
	Timestamp time.Time `json:"timestamp"`
}

// Marshal serializes the event to JSON.
func (e *Event) Marshal() ([]byte, error) {
	if e.TaskID == "" || !e.Type.Valid() {
		return nil, ErrInvalidEvent
	}
	return json.Marshal(e)
}

// Unmarshal deserializes an event from JSON.
func Unmarshal(data []byte) (*Event, error) {
	var e Event
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	if e.TaskID == "" || !e.Type.Valid() {
		return nil, ErrInvalidEvent
	}
	return &e, nil
}

// New creates an event stamped with the current time.
func New(taskID string, t Type) Event {
	return Event{
		TaskID:    taskID,
		Type:      t,
		Timestamp: time.Now().UTC(),
	}
}

// Publisher distributes lifecycle events to subscribers.
type Publisher interface {
	// Publish sends an event to all subscribers. Best-effort: slow
	// subscribers drop rather than block the publisher.
	Publish(e Event) error

	// Subscribe creates a subscription receiving all subsequent events.
	Subscribe() (Subscription, error)

	// Close shuts down the publisher and all subscriptions.
	Close() error
}

// Subscription is an active event stream.
type Subscription interface {
	// Events returns the channel for incoming events.
	// The channel is closed when the subscription ends.
	Events() <-chan Event

	// Unsubscribe cancels the subscription.
	Unsubscribe() error
}

// Config holds common publisher configuration.
type Config struct {
	// BufferSize for subscription channels.
	// Default: 256
	BufferSize int
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		BufferSize: 256,
	}
}
