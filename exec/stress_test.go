package exec

import (
	"context"
	"math/rand"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// jitterDeliverer inserts an artificial delay at the delivery boundary to
// widen the window between action completion and callback invocation.
type jitterDeliverer struct{}

func (jitterDeliverer) Deliver(step func()) {
	time.Sleep(time.Duration(rand.Intn(50)) * time.Microsecond)
	step()
}

func TestStress_CancelRacesNeverDoubleDeliver(t *testing.T) {
	// Property test: under randomized cancel timing, a callback fires at
	// most once and never for a task whose token reports canceled at
	// delivery time. It must finish quickly or fail.
	const tasks = 400

	var wg sync.WaitGroup
	var violations atomic.Int32

	for i := 0; i < tasks; i++ {
		fires := new(atomic.Int32)

		b, err := NewBundle(
			func(ctx context.Context) (int, error) {
				time.Sleep(time.Duration(rand.Intn(30)) * time.Microsecond)
				return 42, nil
			},
			func(v int) { fires.Add(1) },
			func(error) { fires.Add(1) },
			jitterDeliverer{},
		)
		if err != nil {
			t.Fatalf("NewBundle failed: %v", err)
		}
		r := NewRunnable(b)

		wg.Add(2)
		go func() {
			defer wg.Done()
			r.Run()
		}()
		go func(delay time.Duration) {
			defer wg.Done()
			time.Sleep(delay)
			r.Cancel()
			r.Cancel() // idempotence under contention
		}(time.Duration(rand.Intn(80)) * time.Microsecond)

		wg.Wait()

		n := fires.Load()
		if n > 1 {
			violations.Add(1)
		}
		if r.Canceled() && n != 0 {
			violations.Add(1)
		}
		if !r.Canceled() && r.State() == StateCompleted && n != 1 {
			violations.Add(1)
		}
	}

	if v := violations.Load(); v != 0 {
		t.Fatalf("observed %d delivery invariant violations", v)
	}
}

func TestStress_ManyCancelersOneRunner(t *testing.T) {
	const cancelers = 16

	started := make(chan struct{})
	release := make(chan struct{})
	var fires atomic.Int32

	b, err := NewBundle(
		func(ctx context.Context) (int, error) {
			close(started)
			<-release
			return 1, nil
		},
		func(int) { fires.Add(1) },
		func(error) { fires.Add(1) },
		nil,
	)
	if err != nil {
		t.Fatalf("NewBundle failed: %v", err)
	}
	r := NewRunnable(b)

	done := make(chan struct{})
	go func() {
		r.Run()
		close(done)
	}()
	<-started

	var wg sync.WaitGroup
	for i := 0; i < cancelers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Cancel()
		}()
	}
	wg.Wait()
	close(release)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return (potential deadlock)")
	}

	if fires.Load() != 0 {
		t.Fatalf("expected no callback fires, got %d", fires.Load())
	}
	if r.State() != StateCanceled {
		t.Fatalf("expected canceled, got %s", r.State())
	}
}
