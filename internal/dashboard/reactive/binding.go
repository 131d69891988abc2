package reactive

import (
	"context"
	"log/slog"
)

// Fetcher loads the value for key. It runs off the loop.
type Fetcher[K comparable, V any] func(ctx context.Context, key K) (V, error)

// Snapshot is a copy of a binding's visible state.
type Snapshot[K comparable, V any] struct {
	Key     K
	Epoch   uint64
	Value   Value[V]
	Loading bool
	Err     error
}

// BindingConfig wires a Binding.
type BindingConfig[K comparable, V any] struct {
	Name      string
	Scheduler Scheduler
	Runner    Runner
	Context   context.Context
	Fetch     Fetcher[K, V]
	// OnChange runs on the loop after every visible transition.
	OnChange func()
}

// Binding re-runs a fetch whenever its key changes and applies only the
// result that belongs to the live epoch.
type Binding[K comparable, V any] struct {
	name     string
	sched    Scheduler
	runner   Runner
	ctx      context.Context
	fetch    Fetcher[K, V]
	onChange func()

	key     K
	epoch   Epoch
	value   Value[V]
	loading bool
	err     error
}

func NewBinding[K comparable, V any](cfg BindingConfig[K, V]) *Binding[K, V] {
	ctx := cfg.Context
	if ctx == nil {
		ctx = context.Background()
	}

	onChange := cfg.OnChange
	if onChange == nil {
		onChange = func() {}
	}

	return &Binding[K, V]{
		name:     cfg.Name,
		sched:    cfg.Scheduler,
		runner:   cfg.Runner,
		ctx:      ctx,
		fetch:    cfg.Fetch,
		onChange: onChange,
	}
}

// Set moves the binding to key. Setting the current key again is a no-op. The
// zero key resets the value to Unknown synchronously and issues no fetch.
func (b *Binding[K, V]) Set(key K) {
	if key == b.key {
		return
	}

	b.key = key
	tag := b.epoch.Next()
	b.value = Unknown[V]()
	b.err = nil

	var zero K
	if key == zero {
		b.loading = false
		b.onChange()
		return
	}

	b.loading = true
	b.onChange()
	b.issue(key, tag)
}

// Refresh fetches the current key again under a new epoch. The current value
// stays visible until the new one arrives. It reports false when there is no
// key to refresh.
func (b *Binding[K, V]) Refresh() bool {
	var zero K
	if b.key == zero {
		return false
	}

	tag := b.epoch.Next()
	b.loading = true
	b.onChange()
	b.issue(b.key, tag)

	return true
}

// Snapshot returns the visible state.
func (b *Binding[K, V]) Snapshot() Snapshot[K, V] {
	return Snapshot[K, V]{
		Key:     b.key,
		Epoch:   b.epoch.Current(),
		Value:   b.value,
		Loading: b.loading,
		Err:     b.err,
	}
}

func (b *Binding[K, V]) issue(key K, tag uint64) {
	b.runner.Go(b.ctx, func(ctx context.Context) error {
		v, err := b.fetch(ctx, key)
		b.sched.Post(func() { b.settle(key, tag, v, err) })
		return nil
	})
}

func (b *Binding[K, V]) settle(key K, tag uint64, v V, err error) {
	if !b.epoch.Live(tag) {
		slog.Debug("dropped superseded response", "binding", b.name, "key", key, "epoch", tag, "live", b.epoch.Current())
		return
	}

	b.loading = false
	if err != nil {
		slog.WarnContext(b.ctx, "fetch failed", "binding", b.name, "key", key, "error", err)
		b.err = err
	} else {
		b.value = Known(v)
		b.err = nil
	}

	b.onChange()
}
