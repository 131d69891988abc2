package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/ledgerdash/internal/dashboard/entity"
	"github.com/shandysiswandi/ledgerdash/internal/dashboard/reactive"
)

// Endpoint performs the mutating request for one draft.
type Endpoint func(ctx context.Context) error

type SubmitterConfig struct {
	Scheduler reactive.Scheduler
	Runner    reactive.Runner
	Context   context.Context
	Registry  *Registry
	// Reconcile refreshes the balance of accountNo. It runs on the loop.
	Reconcile func(accountNo string)
	// Notify receives every outcome on the loop.
	Notify func(Outcome)
}

// Submitter validates drafts, dispatches them and reconciles the observed
// balance after an accepted mutation. It never retries and never deduplicates;
// the ledger owns idempotency by txId.
type Submitter struct {
	sched     reactive.Scheduler
	runner    reactive.Runner
	ctx       context.Context
	registry  *Registry
	reconcile func(string)
	notify    func(Outcome)

	inFlight map[entity.Form]int
}

func NewSubmitter(cfg SubmitterConfig) *Submitter {
	ctx := cfg.Context
	if ctx == nil {
		ctx = context.Background()
	}

	reconcile := cfg.Reconcile
	if reconcile == nil {
		reconcile = func(string) {}
	}

	notify := cfg.Notify
	if notify == nil {
		notify = func(Outcome) {}
	}

	return &Submitter{
		sched:     cfg.Scheduler,
		runner:    cfg.Runner,
		ctx:       ctx,
		registry:  cfg.Registry,
		reconcile: reconcile,
		notify:    notify,
		inFlight:  make(map[entity.Form]int),
	}
}

// Submit checks d's required fields and, when complete, issues exactly one
// request through endpoint. It reports whether a request was issued.
func (s *Submitter) Submit(d entity.Draft, endpoint Endpoint) bool {
	if missing := d.Missing(); len(missing) > 0 {
		o := validationOutcome(d, missing)
		slog.InfoContext(s.ctx, "submission rejected locally", "form", d.Form(), "missing", missing)
		s.notify(o)
		return false
	}

	s.inFlight[d.Form()]++
	s.runner.Go(s.ctx, func(ctx context.Context) error {
		err := endpoint(ctx)
		s.sched.Post(func() { s.complete(d, err) })
		return nil
	})

	return true
}

// Pending reports how many submissions of form await a response.
func (s *Submitter) Pending(form entity.Form) int {
	return s.inFlight[form]
}

func (s *Submitter) complete(d entity.Draft, err error) {
	s.inFlight[d.Form()]--

	o := classify(d, err)
	if o.OK() {
		slog.InfoContext(s.ctx, "submission accepted", "form", o.Form, "tx_id", o.TxID)
		// The observed selection is read now, not at dispatch.
		if observed := s.registry.Observed(); observed != "" && observed == d.Source() {
			s.reconcile(observed)
		}
	} else {
		slog.WarnContext(s.ctx, "submission failed", "form", o.Form, "tx_id", o.TxID, "kind", o.Kind, "reason", o.Reason, "error", o.Err)
	}

	s.notify(o)
}
