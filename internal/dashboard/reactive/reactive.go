package reactive

import (
	"context"
	"time"
)

// Scheduler is the event loop the primitives run on.
type Scheduler interface {
	Post(fn func()) bool
	AfterFunc(d time.Duration, fn func()) (stop func() bool)
}

// Runner executes blocking work off the loop.
type Runner interface {
	Go(ctx context.Context, f func(ctx context.Context) error)
}

// Epoch is a monotonically increasing version tag for one fetch key.
type Epoch struct {
	n uint64
}

// Next invalidates every outstanding tag and returns the new live one.
func (e *Epoch) Next() uint64 {
	e.n++
	return e.n
}

// Current returns the live tag.
func (e *Epoch) Current() uint64 {
	return e.n
}

// Live reports whether tag is still the live one.
func (e *Epoch) Live(tag uint64) bool {
	return tag == e.n
}

// Value is either a known V or the explicit "no data" state. The zero Value is
// unknown.
type Value[V any] struct {
	v     V
	known bool
}

// Known wraps v.
func Known[V any](v V) Value[V] {
	return Value[V]{v: v, known: true}
}

// Unknown returns the "no data" sentinel.
func Unknown[V any]() Value[V] {
	return Value[V]{}
}

// Get returns the value and whether it is known.
func (x Value[V]) Get() (V, bool) {
	return x.v, x.known
}

// IsKnown reports whether a value is present.
func (x Value[V]) IsKnown() bool {
	return x.known
}
