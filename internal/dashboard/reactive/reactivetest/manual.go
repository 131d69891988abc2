// Package reactivetest provides deterministic Scheduler and Runner
// implementations for tests.
package reactivetest

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Scheduler queues posted functions until Drain and fires timers only when
// the virtual clock is advanced.
type Scheduler struct {
	mu     sync.Mutex
	now    time.Duration
	queue  []func()
	timers []*timer
	seq    int
}

type timer struct {
	at      time.Duration
	seq     int
	fn      func()
	stopped bool
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

func (s *Scheduler) Post(fn func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.queue = append(s.queue, fn)
	return true
}

func (s *Scheduler) AfterFunc(d time.Duration, fn func()) func() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	t := &timer{at: s.now + d, seq: s.seq, fn: fn}
	s.timers = append(s.timers, t)

	return func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()

		if t.stopped || t.fn == nil {
			return false
		}
		t.stopped = true
		return true
	}
}

// Drain runs queued functions, including ones they post, until the queue is
// empty.
func (s *Scheduler) Drain() {
	for {
		s.mu.Lock()
		if len(s.queue) == 0 {
			s.mu.Unlock()
			return
		}
		fn := s.queue[0]
		s.queue = s.queue[1:]
		s.mu.Unlock()

		fn()
	}
}

// Advance moves the clock forward, posting every timer that becomes due, then
// drains.
func (s *Scheduler) Advance(d time.Duration) {
	s.mu.Lock()
	s.now += d

	due := make([]*timer, 0)
	rest := s.timers[:0]
	for _, t := range s.timers {
		switch {
		case t.stopped:
		case t.at <= s.now:
			due = append(due, t)
		default:
			rest = append(rest, t)
		}
	}
	s.timers = rest

	sort.Slice(due, func(i, j int) bool {
		if due[i].at != due[j].at {
			return due[i].at < due[j].at
		}
		return due[i].seq < due[j].seq
	})
	for _, t := range due {
		fn := t.fn
		t.fn = nil
		s.queue = append(s.queue, fn)
	}
	s.mu.Unlock()

	s.Drain()
}

// PendingTimers counts timers that are neither stopped nor fired.
func (s *Scheduler) PendingTimers() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, t := range s.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}

// Runner captures submitted work so tests choose when, and in which order,
// it completes.
type Runner struct {
	mu   sync.Mutex
	jobs []job
}

type job struct {
	ctx context.Context
	f   func(ctx context.Context) error
}

func NewRunner() *Runner {
	return &Runner{}
}

func (r *Runner) Go(ctx context.Context, f func(ctx context.Context) error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.jobs = append(r.jobs, job{ctx: ctx, f: f})
}

// Len returns the number of captured jobs not yet run.
func (r *Runner) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.jobs)
}

// Run executes the i-th pending job and removes it. It reports false when i
// is out of range.
func (r *Runner) Run(i int) bool {
	r.mu.Lock()
	if i < 0 || i >= len(r.jobs) {
		r.mu.Unlock()
		return false
	}
	j := r.jobs[i]
	r.jobs = append(r.jobs[:i], r.jobs[i+1:]...)
	r.mu.Unlock()

	_ = j.f(j.ctx)
	return true
}

// RunLast executes the most recently submitted job.
func (r *Runner) RunLast() bool {
	return r.Run(r.Len() - 1)
}

// RunAll executes pending jobs in submission order, including jobs submitted
// while running.
func (r *Runner) RunAll() {
	for r.Run(0) {
	}
}
