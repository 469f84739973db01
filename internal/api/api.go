// Package api assembles the HTTP server: infrastructure runtime, domain
// systems, module router, and coordinated startup/shutdown.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/csattler/tessera/internal/config"
)

// API is the assembled application server.
type API struct {
	runtime *Runtime
	domain  *Domain
	server  *http.Server
}

// New builds the full server from configuration.
func New(cfg *config.Config, logger *slog.Logger) (*API, error) {
	runtime, err := NewRuntime(cfg, logger)
	if err != nil {
		return nil, err
	}

	a := &API{
		runtime: runtime,
		domain:  NewDomain(runtime),
	}

	a.server = &http.Server{
		Addr:    cfg.Server.Addr(),
		Handler: a.router(),
	}

	return a, nil
}

// Run starts the infrastructure systems, waits for them to become ready,
// and serves until ctx is cancelled. Shutdown drains in-flight requests
// within the configured timeout.
func (a *API) Run(ctx context.Context) error {
	if err := a.runtime.Start(); err != nil {
		return fmt.Errorf("start runtime: %w", err)
	}

	a.runtime.Lifecycle.WaitForStartup()

	errs := make(chan error, 1)
	go func() {
		a.runtime.Logger.Info("server listening", "addr", a.server.Addr)
		if err := a.server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	return a.shutdown()
}

func (a *API) shutdown() error {
	timeout := a.runtime.Config.Server.ShutdownTimeoutDuration()
	a.runtime.Logger.Info("shutting down", "timeout", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var errs []error
	if err := a.server.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("server shutdown: %w", err))
	}

	if err := a.runtime.Lifecycle.Shutdown(timeout); err != nil {
		errs = append(errs, fmt.Errorf("lifecycle shutdown: %w", err))
	}

	return errors.Join(errs...)
}
