package app

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"github.com/shandysiswandi/ledgerdash/internal/pkg/pkgconfig"
	"github.com/shandysiswandi/ledgerdash/internal/pkg/pkglog"
	"github.com/shandysiswandi/ledgerdash/internal/pkg/pkgloop"
	"github.com/shandysiswandi/ledgerdash/internal/pkg/pkgrouter"
	"github.com/shandysiswandi/ledgerdash/internal/pkg/pkgroutine"
	"github.com/shandysiswandi/ledgerdash/internal/pkg/pkguid"
)

var defaultConfig = map[string]any{
	"tz":                      "UTC",
	"log.file":                "ledgerdash.log",
	"goroutine.max":           100,
	"snowflake.node":          pkguid.RandomNode,
	"ledger.base_url":         "",
	"ledger.timeout":          "15s",
	"ledger.fake.enabled":     true,
	"ledger.fake.address":     "127.0.0.1:8000",
	"ledger.fake.seed_file":   "",
	"ledger.fake.seed_token":  "",
	"dashboard.debounce":      "250ms",
	"dashboard.customer_id":   "C001",
	"dashboard.currency":      "USD",
	"dashboard.channel":       "ui",
	"dashboard.txid_strategy": pkguid.StrategyUUID,
}

func (a *App) initConfig() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to load .env file", "error", err)
	}

	path := "/config/config.yaml"
	if os.Getenv("LOCAL") == "true" {
		path = "./config/config.yaml"
	}

	cfg, err := pkgconfig.NewViper(path,
		pkgconfig.WithDefaults(defaultConfig),
		pkgconfig.WithEnvPrefix("LEDGERDASH"),
		pkgconfig.AllowMissingFile(),
	)
	if err != nil {
		slog.Error("failed to init config", "error", err)
		os.Exit(1)
	}

	//nolint:errcheck,gosec // ignore error
	os.Setenv("TZ", cfg.GetString("tz"))

	a.config = cfg
}

// initLogging moves logs off stdout, which belongs to the terminal UI.
func (a *App) initLogging() {
	name := a.config.GetString("log.file")
	if name == "" {
		pkglog.InitLogging(io.Discard)
		return
	}

	f, err := pkglog.OpenLogFile(name)
	if err != nil {
		slog.Error("failed to open log file", "file", name, "error", err)
		os.Exit(1)
	}

	pkglog.InitLogging(f)
	a.logFile = f
}

func (a *App) initLibraries() {
	a.goroutine = pkgroutine.NewManager(int(a.config.GetInt("goroutine.max")))
	a.uuid = pkguid.NewUUID()
	a.loop = pkgloop.New()

	txID, err := pkguid.NewStringID(a.config.GetString("dashboard.txid_strategy"), a.config.GetInt("snowflake.node"))
	if err != nil {
		slog.Error("failed to init txId generator", "error", err)
		os.Exit(1)
	}
	a.txID = txID

	sf, err := pkguid.NewSnowflake(a.config.GetInt("snowflake.node"))
	if err != nil {
		slog.Error("failed to init snowflake", "error", err)
		os.Exit(1)
	}
	a.requestID = pkguid.NewDecimal(sf)
}

func (a *App) initHTTPServer() {
	if !a.config.GetBool("ledger.fake.enabled") {
		return
	}

	a.router = pkgrouter.NewRouter(a.uuid)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	a.httpServer = &http.Server{
		Addr:              a.config.GetString("ledger.fake.address"),
		Handler:           corsHandler.Handler(a.router),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

//nolint:unparam // is always nil
func (a *App) initClosers() {
	if a.closerFn == nil {
		a.closerFn = map[string]func(context.Context) error{}
	}

	if a.httpServer != nil {
		a.closerFn["HTTP Server"] = func(ctx context.Context) error {
			return a.httpServer.Shutdown(ctx)
		}
	}
	a.closerFn["Config"] = func(context.Context) error {
		return a.config.Close()
	}
}
