package exec

import "sync"

const defaultLoopBuffer = 64

// Loop is a Deliverer that serializes delivery steps onto a single
// goroutine, the way a UI main loop serializes callbacks. Steps from
// multiple tasks run one at a time in submission order.
type Loop struct {
	steps chan func()
	quit  chan struct{}
	done  chan struct{}
	once  sync.Once
}

var _ Deliverer = (*Loop)(nil)

// NewLoop starts the loop goroutine. buffer bounds the number of pending
// steps; values <= 0 select a default.
func NewLoop(buffer int) *Loop {
	if buffer <= 0 {
		buffer = defaultLoopBuffer
	}
	l := &Loop{
		steps: make(chan func(), buffer),
		quit:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	go l.run()
	return l
}

func (l *Loop) run() {
	defer close(l.done)
	for {
		select {
		case step := <-l.steps:
			step()
		case <-l.quit:
			// Drain steps that were queued before Close.
			for {
				select {
				case step := <-l.steps:
					step()
				default:
					return
				}
			}
		}
	}
}

// Deliver enqueues the step. It blocks while the buffer is full and is
// discarded if the loop has been closed.
func (l *Loop) Deliver(step func()) {
	select {
	case l.steps <- step:
	case <-l.quit:
	}
}

// Close stops the loop after draining queued steps. It is idempotent and
// returns once the loop goroutine has exited.
func (l *Loop) Close() {
	l.once.Do(func() {
		close(l.quit)
	})
	<-l.done
}
