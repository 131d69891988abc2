package reactive_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shandysiswandi/ledgerdash/internal/dashboard/reactive"
	"github.com/shandysiswandi/ledgerdash/internal/dashboard/reactive/reactivetest"
)

type lookupFake struct {
	queries []string
	err     error
}

func (l *lookupFake) lookup(_ context.Context, q string) ([]string, error) {
	l.queries = append(l.queries, q)
	if l.err != nil {
		return nil, l.err
	}
	return []string{"match:" + q}, nil
}

type debounceHarness struct {
	d       *reactive.Debouncer[[]string]
	sched   *reactivetest.Scheduler
	runner  *reactivetest.Runner
	lookup  *lookupFake
	applied [][]string
	clears  int
}

func newDebounceHarness() *debounceHarness {
	h := &debounceHarness{
		sched:  reactivetest.NewScheduler(),
		runner: reactivetest.NewRunner(),
		lookup: &lookupFake{},
	}

	h.d = reactive.NewDebouncer(reactive.DebouncerConfig[[]string]{
		Name:      "merchants",
		Scheduler: h.sched,
		Runner:    h.runner,
		Quiet:     250 * time.Millisecond,
		Lookup:    h.lookup.lookup,
		Apply:     func(v []string) { h.applied = append(h.applied, v) },
		Clear:     func() { h.clears++ },
	})

	return h
}

func TestDebouncerIssuesOneLookupForBurst(t *testing.T) {
	h := newDebounceHarness()

	for _, text := range []string{"f", "fr", "fre", "fres"} {
		h.d.Observe(text)
		h.sched.Advance(100 * time.Millisecond)
	}
	h.d.Observe("fresh")
	h.sched.Advance(250 * time.Millisecond)
	h.runner.RunAll()
	h.sched.Drain()

	if len(h.lookup.queries) != 1 || h.lookup.queries[0] != "fresh" {
		t.Fatalf("expected single lookup for final text, got %v", h.lookup.queries)
	}
	if len(h.applied) != 1 || h.applied[0][0] != "match:fresh" {
		t.Fatalf("unexpected applied results: %v", h.applied)
	}
}

func TestDebouncerTrimsQuery(t *testing.T) {
	h := newDebounceHarness()

	h.d.Observe("  groc ")
	h.sched.Advance(250 * time.Millisecond)
	h.runner.RunAll()

	if len(h.lookup.queries) != 1 || h.lookup.queries[0] != "groc" {
		t.Fatalf("expected trimmed query, got %v", h.lookup.queries)
	}
}

func TestDebouncerBlankClearsWithoutLookup(t *testing.T) {
	h := newDebounceHarness()

	h.d.Observe("gro")
	h.d.Observe("   ")
	if h.clears != 1 {
		t.Fatalf("expected immediate clear, got %d", h.clears)
	}

	h.sched.Advance(time.Second)
	h.runner.RunAll()
	h.sched.Drain()

	if len(h.lookup.queries) != 0 {
		t.Fatalf("expected no lookup, got %v", h.lookup.queries)
	}
	if h.d.Pending() {
		t.Fatal("expected nothing pending")
	}
}

func TestDebouncerDropsSupersededResult(t *testing.T) {
	h := newDebounceHarness()

	h.d.Observe("fre")
	h.sched.Advance(250 * time.Millisecond)
	h.d.Observe("fresh")
	h.sched.Advance(250 * time.Millisecond)

	if h.runner.Len() != 2 {
		t.Fatalf("expected two lookups in flight, got %d", h.runner.Len())
	}

	h.runner.RunLast()
	h.sched.Drain()
	h.runner.RunAll()
	h.sched.Drain()

	if len(h.applied) != 1 || h.applied[0][0] != "match:fresh" {
		t.Fatalf("expected only the latest result applied, got %v", h.applied)
	}
}

func TestDebouncerCancelSupersedesInFlight(t *testing.T) {
	h := newDebounceHarness()

	h.d.Observe("fresh")
	h.sched.Advance(250 * time.Millisecond)
	h.d.Cancel()
	h.runner.RunAll()
	h.sched.Drain()

	if len(h.applied) != 0 {
		t.Fatalf("expected cancelled lookup ignored, got %v", h.applied)
	}
	if h.clears != 0 {
		t.Fatal("cancel must not clear")
	}
}

func TestDebouncerCancelStopsTimer(t *testing.T) {
	h := newDebounceHarness()

	h.d.Observe("fresh")
	h.d.Cancel()
	h.sched.Advance(time.Second)

	if h.runner.Len() != 0 {
		t.Fatalf("expected no lookup after cancel, got %d", h.runner.Len())
	}
}

func TestDebouncerErrorKeepsPreviousResults(t *testing.T) {
	h := newDebounceHarness()

	h.d.Observe("fresh")
	h.sched.Advance(250 * time.Millisecond)
	h.runner.RunAll()
	h.sched.Drain()

	h.lookup.err = errors.New("down")
	h.d.Observe("freshx")
	h.sched.Advance(250 * time.Millisecond)
	h.runner.RunAll()
	h.sched.Drain()

	if len(h.applied) != 1 {
		t.Fatalf("expected failed lookup not applied, got %v", h.applied)
	}
}

func TestDebouncerDefaultQuietPeriod(t *testing.T) {
	sched := reactivetest.NewScheduler()
	runner := reactivetest.NewRunner()
	calls := 0

	d := reactive.NewDebouncer(reactive.DebouncerConfig[int]{
		Scheduler: sched,
		Runner:    runner,
		Lookup: func(context.Context, string) (int, error) {
			calls++
			return 0, nil
		},
	})

	d.Observe("x")
	sched.Advance(reactive.DefaultQuietPeriod - time.Millisecond)
	if runner.Len() != 0 {
		t.Fatal("fired before quiet period")
	}
	sched.Advance(time.Millisecond)
	runner.RunAll()
	if calls != 1 {
		t.Fatalf("expected one lookup, got %d", calls)
	}
}
