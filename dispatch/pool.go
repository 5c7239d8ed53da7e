package dispatch

import (
	"sync"
	"time"

	"github.com/vinayprograms/asynckit/errors"
	"github.com/vinayprograms/asynckit/exec"
)

// PoolDispatcher runs tasks on a fixed set of worker goroutines with a
// bounded queue. An immediate submission that finds the queue full is
// rejected with QUEUE_FULL rather than blocking the caller; a delayed
// submission enqueues from its timer and blocks there until a worker
// frees a slot.
type PoolDispatcher struct {
	cfg   Config
	hooks hooks

	queue chan exec.Task
	quit  chan struct{}

	mu      sync.Mutex
	closed  bool
	delayed map[*delayedTask]struct{}
	timers  sync.WaitGroup
	workers sync.WaitGroup
}

// delayedTask tracks one submission waiting on its launch delay.
type delayedTask struct {
	task  exec.Task
	timer *time.Timer
}

var _ Dispatcher = (*PoolDispatcher)(nil)

// NewPoolDispatcher starts the worker pool.
func NewPoolDispatcher(cfg Config, opts ...Option) (*PoolDispatcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	d := &PoolDispatcher{
		cfg:     cfg,
		hooks:   newHooks(opts),
		queue:   make(chan exec.Task, cfg.QueueSize),
		quit:    make(chan struct{}),
		delayed: make(map[*delayedTask]struct{}),
	}

	for i := 0; i < cfg.Workers; i++ {
		d.workers.Add(1)
		go d.worker()
	}

	return d, nil
}

// worker executes queued tasks until the dispatcher closes, then drains
// what is already queued.
func (d *PoolDispatcher) worker() {
	defer d.workers.Done()
	for {
		select {
		case task := <-d.queue:
			d.hooks.runTask(task)
		case <-d.quit:
			for {
				select {
				case task := <-d.queue:
					d.hooks.runTask(task)
				default:
					return
				}
			}
		}
	}
}

// Submit accepts the task and queues its run.
func (d *PoolDispatcher) Submit(task exec.Task, delay time.Duration) (exec.Token, error) {
	if err := validate(task, delay); err != nil {
		return nil, err
	}

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil, errors.Closed("dispatcher closed")
	}

	if delay > 0 {
		entry := &delayedTask{task: task}
		d.timers.Add(1)
		entry.timer = time.AfterFunc(delay, func() {
			defer d.timers.Done()
			d.mu.Lock()
			delete(d.delayed, entry)
			closed := d.closed
			d.mu.Unlock()
			if closed {
				task.Cancel()
				return
			}
			// Blocks until a worker frees a slot; quit stays open until
			// every pending timer has resolved, so this always lands.
			d.queue <- task
		})
		d.delayed[entry] = struct{}{}
		d.mu.Unlock()

		d.hooks.launched(task.ID(), delay)
		return task, nil
	}

	// Immediate: non-blocking enqueue.
	select {
	case d.queue <- task:
		d.mu.Unlock()
		d.hooks.launched(task.ID(), 0)
		return task, nil
	default:
		d.mu.Unlock()
		return nil, errors.QueueFull("dispatch queue at capacity", errors.WithTaskID(task.ID()))
	}
}

// Close stops accepting work, cancels delayed tasks whose timers have
// not fired, lets workers drain the queue, and waits for in-flight runs.
func (d *PoolDispatcher) Close() error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	for entry := range d.delayed {
		if entry.timer.Stop() {
			delete(d.delayed, entry)
			entry.task.Cancel()
			d.timers.Done()
		}
		// A timer that already fired resolves itself: its callback
		// observes closed and cancels, or finished enqueueing earlier.
	}
	d.mu.Unlock()

	// Pending timer callbacks must finish enqueueing before workers are
	// told to drain, so nothing lands on the queue after the drain.
	d.timers.Wait()
	close(d.quit)
	d.workers.Wait()

	if d.hooks.logger != nil {
		d.hooks.logger.DispatcherClosed(len(d.queue))
	}
	return nil
}
