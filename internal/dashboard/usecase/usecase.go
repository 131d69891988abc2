package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shandysiswandi/ledgerdash/internal/dashboard/entity"
	"github.com/shandysiswandi/ledgerdash/internal/dashboard/reactive"
	"github.com/shandysiswandi/ledgerdash/internal/pkg/pkguid"
)

type Ledger interface {
	Health(ctx context.Context) error
	Accounts(ctx context.Context) ([]entity.Account, error)
	Balance(ctx context.Context, accountNo string) (decimal.Decimal, error)
	CustomerTransactions(ctx context.Context, customerID string) ([]entity.TransactionRecord, error)
	SearchMerchants(ctx context.Context, query string) ([]entity.MerchantSuggestion, error)
	Transfer(ctx context.Context, d entity.TransferDraft) error
	Pay(ctx context.Context, d entity.PaymentDraft) error
}

// Notifier presents submission outcomes to the user.
type Notifier interface {
	Notify(ctx context.Context, o Outcome)
}

// Renderer receives a snapshot after every state transition.
type Renderer interface {
	Render(s State)
}

type Config struct {
	Debounce   time.Duration
	CustomerID string
	Currency   string
	Channel    string
}

type Dependency struct {
	Ledger    Ledger
	Scheduler reactive.Scheduler
	Runner    reactive.Runner
	Notifier  Notifier
	Renderer  Renderer
	ID        pkguid.StringID
	RootCtx   context.Context
	Config    Config
}

// Controller owns the dashboard state. Its exported methods may be called
// from any goroutine; each one is posted to the scheduler and applied as a
// single transition that renders at most once.
type Controller struct {
	ledger   Ledger
	sched    reactive.Scheduler
	runner   reactive.Runner
	notifier Notifier
	renderer Renderer
	rootCtx  context.Context
	cfg      Config

	registry  *Registry
	forms     *Forms
	submitter *Submitter
	balance   *reactive.Binding[string, decimal.Decimal]
	history   *reactive.Binding[string, []entity.TransactionRecord]
	search    *reactive.Debouncer[[]entity.MerchantSuggestion]

	accounts        []entity.Account
	accountsEpoch   reactive.Epoch
	accountsLoading bool
	accountsErr     error
	customerID      string
	query           string
	suggestions     []entity.MerchantSuggestion
	lastOutcome     *Outcome

	depth   int
	dirty   bool
	version uint64
}

func New(dep Dependency) *Controller {
	root := dep.RootCtx
	if root == nil {
		root = context.Background()
	}

	notifier := dep.Notifier
	if notifier == nil {
		notifier = logNotifier{}
	}

	renderer := dep.Renderer
	if renderer == nil {
		renderer = nopRenderer{}
	}

	c := &Controller{
		ledger:   dep.Ledger,
		sched:    dep.Scheduler,
		runner:   dep.Runner,
		notifier: notifier,
		renderer: renderer,
		rootCtx:  root,
		cfg:      dep.Config,
		registry: NewRegistry(),
		forms:    NewForms(Defaults{Currency: dep.Config.Currency, Channel: dep.Config.Channel}, dep.ID),
	}

	// Components post through the batched scheduler so every completion is
	// one transition.
	sched := batched{c: c}

	c.balance = reactive.NewBinding(reactive.BindingConfig[string, decimal.Decimal]{
		Name:      "balance",
		Scheduler: sched,
		Runner:    dep.Runner,
		Context:   root,
		Fetch:     c.ledger.Balance,
		OnChange:  c.changed,
	})

	c.history = reactive.NewBinding(reactive.BindingConfig[string, []entity.TransactionRecord]{
		Name:      "history",
		Scheduler: sched,
		Runner:    dep.Runner,
		Context:   root,
		Fetch:     c.ledger.CustomerTransactions,
		OnChange:  c.changed,
	})

	c.search = reactive.NewDebouncer(reactive.DebouncerConfig[[]entity.MerchantSuggestion]{
		Name:      "merchants",
		Scheduler: sched,
		Runner:    dep.Runner,
		Context:   root,
		Quiet:     dep.Config.Debounce,
		Lookup:    c.ledger.SearchMerchants,
		Apply:     c.setSuggestions,
		Clear:     func() { c.setSuggestions(nil) },
	})

	c.submitter = NewSubmitter(SubmitterConfig{
		Scheduler: sched,
		Runner:    dep.Runner,
		Context:   root,
		Registry:  c.registry,
		Reconcile: func(string) { c.balance.Refresh() },
		Notify:    c.report,
	})

	c.registry.Subscribe(c.balance.Set)

	return c
}

// Start loads the account list and the configured customer's history and
// checks the ledger.
func (c *Controller) Start() {
	c.do(func() {
		c.loadAccounts()
		c.customerID = c.cfg.CustomerID
		c.history.Set(c.cfg.CustomerID)
		c.changed()
	})

	c.runner.Go(c.rootCtx, func(ctx context.Context) error {
		if err := c.ledger.Health(ctx); err != nil {
			slog.WarnContext(ctx, "ledger health check failed", "error", err)
			return nil
		}
		slog.InfoContext(ctx, "ledger is healthy")
		return nil
	})
}

// ReloadAccounts fetches the account list again.
func (c *Controller) ReloadAccounts() {
	c.do(c.loadAccounts)
}

// SelectAccount changes the observed account; "" clears the selection.
func (c *Controller) SelectAccount(accountNo string) {
	c.do(func() {
		if c.registry.Observe(accountNo) {
			slog.DebugContext(c.rootCtx, "account selected", "account_no", accountNo)
		}
	})
}

// RefreshBalance fetches the observed account's balance again.
func (c *Controller) RefreshBalance() {
	c.do(func() { c.balance.Refresh() })
}

// SetCustomer changes the history filter.
func (c *Controller) SetCustomer(customerID string) {
	c.do(func() {
		c.customerID = customerID
		c.history.Set(customerID)
		c.changed()
	})
}

// RefreshHistory fetches the current customer's history again.
func (c *Controller) RefreshHistory() {
	c.do(func() { c.history.Refresh() })
}

// ObserveMerchantQuery reports the merchant search box text.
func (c *Controller) ObserveMerchantQuery(text string) {
	c.do(func() {
		c.query = text
		c.search.Observe(text)
		c.changed()
	})
}

// PickMerchant applies a suggestion: the payment's merchantId, the search text
// and the emptied suggestion list change together, without a new lookup.
func (c *Controller) PickMerchant(m entity.MerchantSuggestion) {
	c.do(func() {
		c.search.Cancel()
		if err := c.forms.UpdateField(entity.FormPayment, entity.FieldMerchantID, m.MerchantID); err != nil {
			slog.WarnContext(c.rootCtx, "pick merchant failed", "error", err)
			return
		}
		c.query = m.Name
		c.suggestions = nil
		c.changed()
	})
}

func (c *Controller) UpdateField(form entity.Form, field entity.Field, value string) {
	c.do(func() {
		if err := c.forms.UpdateField(form, field, value); err != nil {
			slog.WarnContext(c.rootCtx, "update field failed", "form", form, "field", field, "error", err)
			return
		}
		c.changed()
	})
}

func (c *Controller) GenerateTxID(form entity.Form) {
	c.do(func() {
		if _, err := c.forms.GenerateTxID(form); err != nil {
			slog.WarnContext(c.rootCtx, "generate txId failed", "form", form, "error", err)
			return
		}
		c.changed()
	})
}

func (c *Controller) ResetForm(form entity.Form) {
	c.do(func() {
		if err := c.forms.Reset(form); err != nil {
			slog.WarnContext(c.rootCtx, "reset form failed", "form", form, "error", err)
			return
		}
		c.changed()
	})
}

func (c *Controller) SubmitTransfer() {
	c.do(func() {
		d := c.forms.Transfer()
		if c.submitter.Submit(d, func(ctx context.Context) error { return c.ledger.Transfer(ctx, d) }) {
			c.changed()
		}
	})
}

func (c *Controller) SubmitPayment() {
	c.do(func() {
		d := c.forms.Payment()
		if c.submitter.Submit(d, func(ctx context.Context) error { return c.ledger.Pay(ctx, d) }) {
			c.changed()
		}
	})
}

func (c *Controller) loadAccounts() {
	tag := c.accountsEpoch.Next()
	c.accountsLoading = true
	c.changed()

	sched := batched{c: c}
	c.runner.Go(c.rootCtx, func(ctx context.Context) error {
		accts, err := c.ledger.Accounts(ctx)
		sched.Post(func() {
			if !c.accountsEpoch.Live(tag) {
				slog.DebugContext(c.rootCtx, "dropped stale account list", "epoch", tag)
				return
			}
			c.accountsLoading = false
			if err != nil {
				slog.WarnContext(c.rootCtx, "load accounts failed", "error", err)
				c.accountsErr = err
			} else {
				c.accounts = accts
				c.accountsErr = nil
			}
			c.changed()
		})
		return nil
	})
}

func (c *Controller) setSuggestions(list []entity.MerchantSuggestion) {
	c.suggestions = list
	c.changed()
}

func (c *Controller) report(o Outcome) {
	c.lastOutcome = &o
	c.notifier.Notify(c.rootCtx, o)
	c.changed()
}

func (c *Controller) do(fn func()) {
	c.sched.Post(func() { c.transition(fn) })
}

func (c *Controller) transition(fn func()) {
	c.depth++
	fn()
	c.depth--

	if c.depth == 0 && c.dirty {
		c.dirty = false
		c.version++
		c.renderer.Render(c.snapshot())
	}
}

func (c *Controller) changed() {
	c.dirty = true
}

func (c *Controller) snapshot() State {
	return State{
		Version:         c.version,
		Accounts:        c.accounts,
		AccountsLoading: c.accountsLoading,
		AccountsErr:     c.accountsErr,
		Selected:        c.registry.Observed(),
		Balance:         c.balance.Snapshot(),
		CustomerID:      c.customerID,
		History:         c.history.Snapshot(),
		Transfer:        c.forms.Transfer(),
		Payment:         c.forms.Payment(),
		MerchantQuery:   c.query,
		Suggestions:     c.suggestions,
		TransferPending: c.submitter.Pending(entity.FormTransfer),
		PaymentPending:  c.submitter.Pending(entity.FormPayment),
		LastOutcome:     c.lastOutcome,
	}
}

// batched runs every scheduled callback as a controller transition.
type batched struct {
	c *Controller
}

func (b batched) Post(fn func()) bool {
	return b.c.sched.Post(func() { b.c.transition(fn) })
}

func (b batched) AfterFunc(d time.Duration, fn func()) func() bool {
	return b.c.sched.AfterFunc(d, func() { b.c.transition(fn) })
}

type logNotifier struct{}

func (logNotifier) Notify(ctx context.Context, o Outcome) {
	slog.InfoContext(ctx, o.Message(), "kind", o.Kind)
}

type nopRenderer struct{}

func (nopRenderer) Render(State) {}
