package reactive

import (
	"context"
	"log/slog"
	"strings"
	"time"
)

// DefaultQuietPeriod is the debounce delay used when none is configured.
const DefaultQuietPeriod = 250 * time.Millisecond

// DebouncerConfig wires a Debouncer.
type DebouncerConfig[V any] struct {
	Name      string
	Scheduler Scheduler
	Runner    Runner
	Context   context.Context
	Quiet     time.Duration
	// Lookup receives the trimmed text. It runs off the loop.
	Lookup func(ctx context.Context, query string) (V, error)
	// Apply receives the result of the latest lookup, on the loop.
	Apply func(V)
	// Clear runs on the loop when the text becomes blank.
	Clear func()
}

// Debouncer turns rapid text input into at most one lookup per quiet period.
// Only the result of the latest scheduled lookup is applied.
type Debouncer[V any] struct {
	name   string
	sched  Scheduler
	runner Runner
	ctx    context.Context
	quiet  time.Duration
	lookup func(ctx context.Context, query string) (V, error)
	apply  func(V)
	clear  func()

	epoch Epoch
	stop  func() bool
}

func NewDebouncer[V any](cfg DebouncerConfig[V]) *Debouncer[V] {
	ctx := cfg.Context
	if ctx == nil {
		ctx = context.Background()
	}

	quiet := cfg.Quiet
	if quiet <= 0 {
		quiet = DefaultQuietPeriod
	}

	apply := cfg.Apply
	if apply == nil {
		apply = func(V) {}
	}

	clear := cfg.Clear
	if clear == nil {
		clear = func() {}
	}

	return &Debouncer[V]{
		name:   cfg.Name,
		sched:  cfg.Scheduler,
		runner: cfg.Runner,
		ctx:    ctx,
		quiet:  quiet,
		lookup: cfg.Lookup,
		apply:  apply,
		clear:  clear,
	}
}

// Observe reports new text. The pending timer is stopped and any lookup
// already in flight is superseded. Blank text clears immediately.
func (d *Debouncer[V]) Observe(text string) {
	d.stopTimer()
	tag := d.epoch.Next()

	query := strings.TrimSpace(text)
	if query == "" {
		d.clear()
		return
	}

	d.stop = d.sched.AfterFunc(d.quiet, func() { d.fire(tag, query) })
}

// Cancel stops the pending timer and supersedes any lookup in flight without
// clearing what is displayed.
func (d *Debouncer[V]) Cancel() {
	d.stopTimer()
	d.epoch.Next()
}

// Pending reports whether a lookup is scheduled but not yet issued.
func (d *Debouncer[V]) Pending() bool {
	return d.stop != nil
}

func (d *Debouncer[V]) stopTimer() {
	if d.stop != nil {
		d.stop()
		d.stop = nil
	}
}

func (d *Debouncer[V]) fire(tag uint64, query string) {
	// A timer that fired just before being stopped still gets here.
	if !d.epoch.Live(tag) {
		return
	}
	d.stop = nil

	d.runner.Go(d.ctx, func(ctx context.Context) error {
		v, err := d.lookup(ctx, query)
		d.sched.Post(func() { d.settle(tag, query, v, err) })
		return nil
	})
}

func (d *Debouncer[V]) settle(tag uint64, query string, v V, err error) {
	if !d.epoch.Live(tag) {
		return
	}

	if err != nil {
		slog.WarnContext(d.ctx, "lookup failed", "debouncer", d.name, "query", query, "error", err)
		return
	}

	d.apply(v)
}
