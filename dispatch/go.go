package dispatch

import (
	"sync"
	"time"

	"github.com/vinayprograms/asynckit/errors"
	"github.com/vinayprograms/asynckit/exec"
)

// GoDispatcher runs each task on its own goroutine. Delays use a timer
// per submission, so a pending delayed task costs one parked goroutine.
type GoDispatcher struct {
	hooks hooks

	mu     sync.Mutex
	closed bool
	quit   chan struct{}
	wg     sync.WaitGroup
}

var _ Dispatcher = (*GoDispatcher)(nil)

// NewGoDispatcher creates a goroutine-per-task dispatcher.
func NewGoDispatcher(opts ...Option) *GoDispatcher {
	return &GoDispatcher{
		hooks: newHooks(opts),
		quit:  make(chan struct{}),
	}
}

// Submit accepts the task and schedules its run. The task's own token is
// returned; it is live immediately, before execution starts.
func (d *GoDispatcher) Submit(task exec.Task, delay time.Duration) (exec.Token, error) {
	if err := validate(task, delay); err != nil {
		return nil, err
	}

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil, errors.Closed("dispatcher closed")
	}
	d.wg.Add(1)
	d.mu.Unlock()

	d.hooks.launched(task.ID(), delay)

	go func() {
		defer d.wg.Done()

		if delay > 0 {
			timer := time.NewTimer(delay)
			defer timer.Stop()
			select {
			case <-timer.C:
			case <-d.quit:
				task.Cancel()
				return
			}
		}

		select {
		case <-d.quit:
			task.Cancel()
			return
		default:
		}

		d.hooks.runTask(task)
	}()

	return task, nil
}

// Wait blocks until all accepted tasks have finished. Submissions made
// while waiting extend the wait.
func (d *GoDispatcher) Wait() {
	d.wg.Wait()
}

// Close stops accepting work, cancels tasks still waiting on their
// delay, and waits for in-flight runs.
func (d *GoDispatcher) Close() error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	close(d.quit)
	d.mu.Unlock()

	d.wg.Wait()

	if d.hooks.logger != nil {
		d.hooks.logger.DispatcherClosed(0)
	}
	return nil
}
