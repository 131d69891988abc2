package pkgloop

import (
	"context"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"
)

// Loop runs posted functions one at a time, in FIFO order, on the goroutine
// that called Run.
type Loop struct {
	mu     sync.Mutex
	queue  []func()
	closed bool
	wake   chan struct{}
	done   chan struct{}
}

// New creates an idle Loop. Nothing runs until Run is called.
func New() *Loop {
	return &Loop{
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
}

// Post enqueues fn and returns immediately. It reports false once the loop has
// been closed, in which case fn is dropped.
func (l *Loop) Post(fn func()) bool {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return false
	}
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}

	return true
}

// AfterFunc posts fn to the loop once d has elapsed. Calling the returned stop
// function cancels the timer; it reports whether the timer was stopped before
// it fired.
func (l *Loop) AfterFunc(d time.Duration, fn func()) func() bool {
	t := time.AfterFunc(d, func() { l.Post(fn) })
	return t.Stop
}

// Close stops accepting new work. Run drains what is already queued and then
// returns.
func (l *Loop) Close() {
	l.mu.Lock()
	l.closed = true
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Done is closed when Run returns.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

// Run processes posted functions until ctx is canceled or the loop is closed
// and drained. It must be called at most once.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.done)

	for {
		if err := ctx.Err(); err != nil {
			l.Close()
			return err
		}

		batch, closed := l.take()
		for _, fn := range batch {
			l.exec(ctx, fn)
		}
		if len(batch) > 0 {
			continue
		}
		if closed {
			return nil
		}

		select {
		case <-ctx.Done():
			l.Close()
			return ctx.Err()
		case <-l.wake:
		}
	}
}

func (l *Loop) take() ([]func(), bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	batch := l.queue
	l.queue = nil

	return batch, l.closed
}

func (l *Loop) exec(ctx context.Context, fn func()) {
	defer func() {
		if rvr := recover(); rvr != nil {
			slog.ErrorContext(ctx, "panic occurred in event loop", "because", rvr, "stack", string(debug.Stack()))
		}
	}()

	fn()
}
