package app

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// Start runs the event loop, the ledger server when enabled and the
// dashboard. The returned channel is closed when the dashboard exits or a
// termination signal arrives.
func (a *App) Start() <-chan struct{} {
	terminateChan := make(chan struct{})

	var once sync.Once
	terminate := func(because string) {
		once.Do(func() {
			if a.cancel != nil {
				a.cancel()
			}

			close(terminateChan)

			slog.Info("application gracefully shutdown", "because", because)
		})
	}

	go func() {
		if err := a.loop.Run(a.ctx); err != nil && !errors.Is(err, context.Canceled) {
			slog.Error("event loop stopped", "error", err)
		}
	}()

	if a.httpServer != nil {
		// listen before the dashboard issues its first request
		ln, err := net.Listen("tcp", a.httpServer.Addr)
		if err != nil {
			slog.Error("failed to listen http server", "address", a.httpServer.Addr, "error", err)
			os.Exit(1)
		}

		go func() {
			slog.Info("http server listening", "address", ln.Addr().String())

			if err := a.httpServer.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
				slog.Error("failed to serve http server", "error", err)
				os.Exit(1)
			}
		}()
	}

	go func() {
		if err := a.dashboard.Run(); err != nil {
			slog.Error("dashboard stopped with error", "error", err)
		}

		terminate("dashboard closed")
	}()

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

		select {
		case <-sigint:
			terminate("signal")
		case <-terminateChan:
		}
	}()

	return terminateChan
}

func (a *App) Stop(ctx context.Context) {
	if a.cancel != nil {
		a.cancel()
	}

	if a.httpServer != nil {
		if err := a.httpServer.Shutdown(ctx); err != nil {
			slog.ErrorContext(ctx, "failed to close resources", "name", "HTTP Server", "error", err)
		}
	}

	a.loop.Close()
	select {
	case <-a.loop.Done():
	case <-ctx.Done():
		slog.WarnContext(ctx, "event loop did not stop in time")
	}

	slog.InfoContext(ctx, "waiting for all goroutine to finish")
	if err := a.goroutine.Wait(); err != nil {
		slog.ErrorContext(ctx, "error from goroutines executions", "error", err)
	}
	slog.InfoContext(ctx, "all goroutines have finished successfully")

	for name, closer := range a.closerFn {
		if name == "HTTP Server" {
			continue
		}
		if err := closer(ctx); err != nil {
			slog.ErrorContext(ctx, "failed to close resources", "name", name, "error", err)
		}
	}

	if a.logFile != nil {
		//nolint:errcheck,gosec // last write already done
		a.logFile.Close()
	}
}
