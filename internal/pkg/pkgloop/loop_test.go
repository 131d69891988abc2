package pkgloop

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"
)

func runLoop(t *testing.T, l *Loop) (context.CancelFunc, <-chan error) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- l.Run(ctx) }()
	t.Cleanup(cancel)
	return cancel, errCh
}

func TestLoopRunsInOrder(t *testing.T) {
	l := New()
	var got []int
	for i := 0; i < 5; i++ {
		i := i
		l.Post(func() { got = append(got, i) })
	}
	l.Close()

	if err := l.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !reflect.DeepEqual(got, []int{0, 1, 2, 3, 4}) {
		t.Fatalf("unexpected order: %v", got)
	}
}

func TestLoopRejectsAfterClose(t *testing.T) {
	l := New()
	l.Close()
	if l.Post(func() {}) {
		t.Fatal("expected Post to fail after Close")
	}
}

func TestLoopAfterFuncPostsToLoop(t *testing.T) {
	l := New()
	_, errCh := runLoop(t, l)

	fired := make(chan struct{})
	l.AfterFunc(time.Millisecond, func() { close(fired) })

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("timer never fired")
	}

	l.Close()
	if err := <-errCh; err != nil {
		t.Fatalf("run: %v", err)
	}
}

func TestLoopAfterFuncStop(t *testing.T) {
	l := New()
	_, errCh := runLoop(t, l)

	fired := make(chan struct{}, 1)
	stop := l.AfterFunc(time.Hour, func() { fired <- struct{}{} })
	if !stop() {
		t.Fatal("expected stop to cancel pending timer")
	}

	l.Close()
	<-errCh
	select {
	case <-fired:
		t.Fatal("stopped timer must not fire")
	default:
	}
}

func TestLoopRecoversPanics(t *testing.T) {
	l := New()
	ran := false
	l.Post(func() { panic("boom") })
	l.Post(func() { ran = true })
	l.Close()

	if err := l.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !ran {
		t.Fatal("expected loop to continue after panic")
	}
}

func TestLoopStopsOnCancel(t *testing.T) {
	l := New()
	cancel, errCh := runLoop(t, l)
	cancel()

	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not stop")
	}
	<-l.Done()
}
