package app

import (
	"context"
	"net/http"
	"os"

	"github.com/shandysiswandi/ledgerdash/internal/dashboard"
	"github.com/shandysiswandi/ledgerdash/internal/pkg/pkgconfig"
	"github.com/shandysiswandi/ledgerdash/internal/pkg/pkglog"
	"github.com/shandysiswandi/ledgerdash/internal/pkg/pkgloop"
	"github.com/shandysiswandi/ledgerdash/internal/pkg/pkgrouter"
	"github.com/shandysiswandi/ledgerdash/internal/pkg/pkgroutine"
	"github.com/shandysiswandi/ledgerdash/internal/pkg/pkguid"
)

type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config  pkgconfig.Config
	logFile *os.File

	// libraries
	uuid      pkguid.StringID
	txID      pkguid.StringID
	requestID pkguid.StringID
	goroutine *pkgroutine.Manager
	loop      *pkgloop.Loop

	// server, only when the in-process ledger is enabled
	router     *pkgrouter.Router
	httpServer *http.Server

	// modules
	dashboard *dashboard.Module

	//
	closerFn map[string]func(context.Context) error
}

func New() *App {
	pkglog.InitLogging(nil)

	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initLogging()
	app.initLibraries()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
