package launch

import (
	"time"

	"github.com/vinayprograms/asynckit/dispatch"
	"github.com/vinayprograms/asynckit/errors"
	"github.com/vinayprograms/asynckit/exec"
	"github.com/vinayprograms/asynckit/tokenbox"
)

// Command is an asynchronous execution context builder: it collects an
// action, its response handlers, the deliverer for those responses, and
// an optional start delay, then launches the whole context on a
// dispatcher. A Command can be launched any number of times; every
// Launch freezes the current settings into an independent task.
type Command[T any] struct {
	dispatcher  dispatch.Dispatcher
	action      exec.Action[T]
	onCompleted func(T)
	onError     func(error)
	deliverer   exec.Deliverer
	delay       time.Duration
}

// NewCommand builds a Command for action that will launch on
// dispatcher.
func NewCommand[T any](action exec.Action[T], dispatcher dispatch.Dispatcher) *Command[T] {
	return &Command[T]{
		dispatcher: dispatcher,
		action:     action,
	}
}

// OnCompleted sets the callback invoked with a successful result. Nil
// means the result is dropped after the cancellation check.
func (c *Command[T]) OnCompleted(fn func(T)) *Command[T] {
	c.onCompleted = fn
	return c
}

// OnError sets the callback invoked with the action's error. Nil means
// errors are dropped after the cancellation check.
func (c *Command[T]) OnError(fn func(error)) *Command[T] {
	c.onError = fn
	return c
}

// DeliverWith sets the deliverer responses are handed to. The default
// delivers inline on the executor goroutine.
func (c *Command[T]) DeliverWith(d exec.Deliverer) *Command[T] {
	c.deliverer = d
	return c
}

// Delay postpones execution by at least d. Negative values are
// rejected at Launch, not here, so the builder chain never fails
// mid-flight.
func (c *Command[T]) Delay(d time.Duration) *Command[T] {
	c.delay = d
	return c
}

// Launch submits the command's current context for asynchronous
// execution and returns a token that cancels it. A negative delay or a
// nil action is a configuration error and never reaches the
// dispatcher.
func (c *Command[T]) Launch() (exec.Token, error) {
	if c.dispatcher == nil {
		return nil, errors.InvalidConfig("nil dispatcher")
	}
	if c.delay < 0 {
		return nil, errors.InvalidConfig("negative delay is not allowed")
	}
	bundle, err := exec.NewBundle(c.action, c.onCompleted, c.onError, c.deliverer)
	if err != nil {
		return nil, err
	}
	return c.dispatcher.Submit(exec.NewRunnable(bundle), c.delay)
}

// LaunchInto launches the command and appends the resulting token to
// box. A nil box is a configuration error.
func (c *Command[T]) LaunchInto(box *tokenbox.Box) error {
	if box == nil {
		return errors.InvalidConfig("nil token box is not allowed")
	}
	tok, err := c.Launch()
	if err != nil {
		return err
	}
	box.Append(tok)
	return nil
}

// LaunchTagged launches the command and appends the resulting token to
// box under tag. A nil box is a configuration error.
func (c *Command[T]) LaunchTagged(box *tokenbox.Box, tag any) error {
	if box == nil {
		return errors.InvalidConfig("nil token box is not allowed")
	}
	tok, err := c.Launch()
	if err != nil {
		return err
	}
	box.AppendTagged(tok, tag)
	return nil
}
