package dashboard

import (
	"context"
	"errors"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/shandysiswandi/ledgerdash/internal/dashboard/outbound"
	"github.com/shandysiswandi/ledgerdash/internal/dashboard/tui"
	"github.com/shandysiswandi/ledgerdash/internal/dashboard/usecase"
	"github.com/shandysiswandi/ledgerdash/internal/pkg/pkgconfig"
	"github.com/shandysiswandi/ledgerdash/internal/pkg/pkgloop"
	"github.com/shandysiswandi/ledgerdash/internal/pkg/pkgroutine"
	"github.com/shandysiswandi/ledgerdash/internal/pkg/pkguid"
)

type Dependency struct {
	Config    pkgconfig.Config
	Goroutine *pkgroutine.Manager
	Loop      *pkgloop.Loop
	Context   context.Context
	TxID      pkguid.StringID
	RequestID pkguid.StringID
	BaseURL   string
}

// Module is the running dashboard: the controller and the terminal program
// drawing it.
type Module struct {
	controller *usecase.Controller
	program    *tea.Program
}

func New(dep Dependency, opts ...tea.ProgramOption) (*Module, error) {
	if dep.Loop == nil || dep.Goroutine == nil {
		return nil, errors.New("dashboard: event loop and goroutine manager are required")
	}
	if dep.BaseURL == "" {
		return nil, errors.New("dashboard: ledger base url is empty")
	}

	bridge := tui.NewBridge()
	ctrl := newController(dep, bridge, bridge)

	program := tea.NewProgram(tui.New(ctrl), opts...)
	bridge.Attach(program)

	return &Module{controller: ctrl, program: program}, nil
}

func newController(dep Dependency, renderer usecase.Renderer, notifier usecase.Notifier) *usecase.Controller {
	cfg := dep.Config
	client := outbound.NewLedgerClient(dep.BaseURL, cfg.GetDuration("ledger.timeout"), dep.RequestID)

	return usecase.New(usecase.Dependency{
		Ledger:    client,
		Scheduler: dep.Loop,
		Runner:    dep.Goroutine,
		Notifier:  notifier,
		Renderer:  renderer,
		ID:        dep.TxID,
		RootCtx:   dep.Context,
		Config: usecase.Config{
			Debounce:   cfg.GetDuration("dashboard.debounce"),
			CustomerID: cfg.GetString("dashboard.customer_id"),
			Currency:   cfg.GetString("dashboard.currency"),
			Channel:    cfg.GetString("dashboard.channel"),
		},
	})
}

// Run starts the controller and blocks until the program exits. A program
// killed through its context is not an error.
func (m *Module) Run() error {
	m.controller.Start()

	if _, err := m.program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		slog.Error("dashboard program failed", "error", err)
		return err
	}

	return nil
}

func (m *Module) Stop(context.Context) error {
	m.program.Quit()
	return nil
}
