package app

import (
	"context"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/shandysiswandi/ledgerdash/internal/dashboard"
	"github.com/shandysiswandi/ledgerdash/internal/ledgerfake"
)

func (a *App) initModules() {
	if a.config.GetBool("ledger.fake.enabled") {
		a.initLedgerFake()
	}

	baseURL := a.config.GetString("ledger.base_url")
	if baseURL == "" && a.httpServer != nil {
		baseURL = "http://" + a.httpServer.Addr
	}

	mod, err := dashboard.New(dashboard.Dependency{
		Config:    a.config,
		Goroutine: a.goroutine,
		Loop:      a.loop,
		Context:   a.ctx,
		TxID:      a.txID,
		RequestID: a.requestID,
		BaseURL:   baseURL,
	}, tea.WithAltScreen(), tea.WithContext(a.ctx))
	if err != nil {
		slog.Error("failed to init module dashboard", "error", err)
		os.Exit(1)
	}

	if a.closerFn == nil {
		a.closerFn = map[string]func(context.Context) error{}
	}
	a.dashboard = mod
	a.closerFn["Dashboard"] = mod.Stop
}

func (a *App) initLedgerFake() {
	store := ledgerfake.NewStore(nil)
	if err := ledgerfake.SeedMinimal(store); err != nil {
		slog.Error("failed to seed ledger", "error", err)
		os.Exit(1)
	}

	if path := a.config.GetString("ledger.fake.seed_file"); path != "" {
		f, err := os.Open(path)
		if err != nil {
			slog.Error("failed to open seed file", "file", path, "error", err)
			os.Exit(1)
		}

		stats, err := ledgerfake.LoadCSV(a.ctx, store, f)
		//nolint:errcheck,gosec // read only
		f.Close()
		if err != nil {
			slog.Error("failed to load seed file", "file", path, "error", err)
			os.Exit(1)
		}

		slog.Info("seed file loaded", "file", path, "total", stats.TotalLines, "applied", stats.Applied, "failed", stats.Failed)
	}

	ledgerfake.RegisterHTTPEndpoint(a.router, store, a.config.GetString("ledger.fake.seed_token"))
}
