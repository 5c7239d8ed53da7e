package launch

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/vinayprograms/asynckit/dispatch"
	"github.com/vinayprograms/asynckit/errors"
	"github.com/vinayprograms/asynckit/exec"
	"github.com/vinayprograms/asynckit/tokenbox"
)

func TestLaunchDeliversResult(t *testing.T) {
	d := dispatch.NewGoDispatcher()
	defer d.Close()

	got := make(chan int, 1)
	_, err := NewCommand(
		func(ctx context.Context) (int, error) { return 42, nil },
		d,
	).OnCompleted(func(v int) { got <- v }).Launch()
	if err != nil {
		t.Fatalf("Launch failed: %v", err)
	}

	select {
	case v := <-got:
		if v != 42 {
			t.Errorf("Expected 42, got %d", v)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Result never delivered")
	}
}

func TestLaunchDeliversError(t *testing.T) {
	d := dispatch.NewGoDispatcher()
	defer d.Close()

	boom := fmt.Errorf("boom")
	got := make(chan error, 1)
	var completed atomic.Int32
	_, err := NewCommand(
		func(ctx context.Context) (int, error) { return 0, boom },
		d,
	).
		OnCompleted(func(int) { completed.Add(1) }).
		OnError(func(e error) { got <- e }).
		Launch()
	if err != nil {
		t.Fatalf("Launch failed: %v", err)
	}

	select {
	case e := <-got:
		if e != boom {
			t.Errorf("Expected %v, got %v", boom, e)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Error never delivered")
	}
	if completed.Load() != 0 {
		t.Error("OnCompleted must not fire for a failed action")
	}
}

func TestLaunchNegativeDelay(t *testing.T) {
	d := dispatch.NewGoDispatcher()
	defer d.Close()

	var ran atomic.Int32
	_, err := NewCommand(
		func(ctx context.Context) (int, error) { ran.Add(1); return 0, nil },
		d,
	).Delay(-time.Millisecond).Launch()

	if errors.Code(err) != errors.ErrCodeInvalidConfig {
		t.Errorf("Expected INVALID_CONFIG, got %v", err)
	}
	d.Close()
	if ran.Load() != 0 {
		t.Error("Action must never reach the dispatcher on config error")
	}
}

func TestLaunchNilAction(t *testing.T) {
	d := dispatch.NewGoDispatcher()
	defer d.Close()

	if _, err := NewCommand[int](nil, d).Launch(); errors.Code(err) != errors.ErrCodeInvalidConfig {
		t.Errorf("Expected INVALID_CONFIG for nil action, got %v", err)
	}
}

func TestLaunchNilDispatcher(t *testing.T) {
	cmd := NewCommand(func(ctx context.Context) (int, error) { return 0, nil }, nil)
	if _, err := cmd.Launch(); errors.Code(err) != errors.ErrCodeInvalidConfig {
		t.Errorf("Expected INVALID_CONFIG for nil dispatcher, got %v", err)
	}
}

func TestLaunchIntoBox(t *testing.T) {
	d := dispatch.NewGoDispatcher()
	defer d.Close()

	box := tokenbox.New()
	release := make(chan struct{})
	err := NewCommand(
		func(ctx context.Context) (int, error) { <-release; return 0, nil },
		d,
	).LaunchInto(box)
	if err != nil {
		t.Fatalf("LaunchInto failed: %v", err)
	}
	if box.Len() != 1 {
		t.Errorf("Expected 1 token in box, got %d", box.Len())
	}
	close(release)
}

func TestLaunchIntoNilBox(t *testing.T) {
	d := dispatch.NewGoDispatcher()
	defer d.Close()

	cmd := NewCommand(func(ctx context.Context) (int, error) { return 0, nil }, d)
	if err := cmd.LaunchInto(nil); errors.Code(err) != errors.ErrCodeInvalidConfig {
		t.Errorf("Expected INVALID_CONFIG for nil box, got %v", err)
	}
	if err := cmd.LaunchTagged(nil, "a"); errors.Code(err) != errors.ErrCodeInvalidConfig {
		t.Errorf("Expected INVALID_CONFIG for nil box, got %v", err)
	}
}

func TestLaunchTaggedCancel(t *testing.T) {
	d := dispatch.NewGoDispatcher()
	defer d.Close()

	box := tokenbox.New()
	var fired atomic.Int32
	err := NewCommand(
		func(ctx context.Context) (int, error) { return 0, nil },
		d,
	).
		OnCompleted(func(int) { fired.Add(1) }).
		Delay(100 * time.Millisecond).
		LaunchTagged(box, "screen")
	if err != nil {
		t.Fatalf("LaunchTagged failed: %v", err)
	}

	box.Cancel("screen")
	d.Wait()

	if fired.Load() != 0 {
		t.Error("Canceled task must not deliver")
	}
	if box.Len() != 0 {
		t.Errorf("Expected empty box after tag cancel, got %d", box.Len())
	}
}

func TestCommandRelaunches(t *testing.T) {
	d := dispatch.NewGoDispatcher()
	defer d.Close()

	var runs atomic.Int32
	done := make(chan struct{}, 3)
	cmd := NewCommand(
		func(ctx context.Context) (int, error) { return int(runs.Add(1)), nil },
		d,
	).OnCompleted(func(int) { done <- struct{}{} })

	var toks []exec.Token
	for i := 0; i < 3; i++ {
		tok, err := cmd.Launch()
		if err != nil {
			t.Fatalf("Launch %d failed: %v", i, err)
		}
		toks = append(toks, tok)
	}
	for i := 0; i < 3; i++ {
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatalf("Launch %d never delivered", i)
		}
	}
	if runs.Load() != 3 {
		t.Errorf("Expected 3 independent runs, got %d", runs.Load())
	}
	// Each launch owns its own lifecycle: canceling one token after the
	// fact does not touch the others.
	toks[0].Cancel()
	if toks[1].Canceled() || toks[2].Canceled() {
		t.Error("Tokens must be independent across launches")
	}
}

func TestLaunchOnPoolDispatcher(t *testing.T) {
	d, err := dispatch.NewPoolDispatcher(dispatch.DefaultConfig())
	if err != nil {
		t.Fatalf("NewPoolDispatcher failed: %v", err)
	}
	defer d.Close()

	got := make(chan string, 1)
	_, err = NewCommand(
		func(ctx context.Context) (string, error) { return "pooled", nil },
		d,
	).OnCompleted(func(v string) { got <- v }).Launch()
	if err != nil {
		t.Fatalf("Launch failed: %v", err)
	}

	select {
	case v := <-got:
		if v != "pooled" {
			t.Errorf("Expected %q, got %q", "pooled", v)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Result never delivered")
	}
}
