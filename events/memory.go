package events

import (
	"sync"
	"sync/atomic"
)

// MemoryPublisher implements Publisher with in-process channel fanout.
// Useful for testing and single-process observers.
type MemoryPublisher struct {
	config Config

	mu     sync.RWMutex
	subs   []*memorySub
	closed atomic.Bool
}

type memorySub struct {
	ch     chan Event
	closed atomic.Bool
	pub    *MemoryPublisher
}

var _ Publisher = (*MemoryPublisher)(nil)

// NewMemoryPublisher creates a new in-memory event publisher.
func NewMemoryPublisher(cfg Config) *MemoryPublisher {
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = DefaultConfig().BufferSize
	}
	return &MemoryPublisher{config: cfg}
}

// Publish sends an event to all subscribers. A subscriber whose buffer is
// full misses the event rather than blocking the publisher.
func (p *MemoryPublisher) Publish(e Event) error {
	if e.TaskID == "" || !e.Type.Valid() {
		return ErrInvalidEvent
	}
	if p.closed.Load() {
		return ErrClosed
	}

	// Held across delivery so a concurrent Unsubscribe cannot close a
	// channel mid-send; sends are non-blocking so the hold is brief.
	p.mu.RLock()
	defer p.mu.RUnlock()

	for _, sub := range p.subs {
		if !sub.closed.Load() {
			select {
			case sub.ch <- e:
			default:
				// Buffer full, drop event
			}
		}
	}

	return nil
}

// Subscribe creates a subscription receiving all subsequent events.
func (p *MemoryPublisher) Subscribe() (Subscription, error) {
	if p.closed.Load() {
		return nil, ErrClosed
	}

	sub := &memorySub{
		ch:  make(chan Event, p.config.BufferSize),
		pub: p,
	}

	p.mu.Lock()
	p.subs = append(p.subs, sub)
	p.mu.Unlock()

	return sub, nil
}

// Close shuts down the publisher and all subscriptions.
func (p *MemoryPublisher) Close() error {
	if p.closed.Swap(true) {
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	for _, sub := range p.subs {
		if !sub.closed.Swap(true) {
			close(sub.ch)
		}
	}
	p.subs = nil
	return nil
}

// Events returns the event channel.
func (s *memorySub) Events() <-chan Event {
	return s.ch
}

// Unsubscribe cancels the subscription.
func (s *memorySub) Unsubscribe() error {
	if s.closed.Swap(true) {
		return nil
	}

	s.pub.mu.Lock()
	defer s.pub.mu.Unlock()

	for i, sub := range s.pub.subs {
		if sub == s {
			s.pub.subs = append(s.pub.subs[:i], s.pub.subs[i+1:]...)
			break
		}
	}
	close(s.ch)
	return nil
}
