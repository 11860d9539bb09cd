package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"inventario-ativos/internal/apiclient"
	"inventario-ativos/internal/config"
	"inventario-ativos/internal/database"
	"inventario-ativos/internal/logging"
	"inventario-ativos/internal/server"
	"inventario-ativos/internal/ui"
)

const (
	shutdownTimeout = 5 * time.Second
	sweepInterval   = time.Minute
)

func main() {
	configFile := flag.String("config", "", "path to a TOML config file")
	flag.Parse()

	if err := run(*configFile); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(configFile string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	if err := cfg.ValidateServer(); err != nil {
		return err
	}
	logger := logging.Init(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	api, err := apiclient.New(cfg.APIURL, apiclient.WithLogger(logger))
	if err != nil {
		return err
	}

	var journal *database.Journal
	if cfg.AuditDSN != "" {
		journal, err = database.Open(ctx, cfg.AuditDSN, logger)
		if err != nil {
			return fmt.Errorf("opening audit journal: %w", err)
		}
		defer journal.Close()
	} else {
		logger.Info().Msg("AUDIT_DSN not set, operation journal disabled")
	}

	clock := ui.RealClock{}
	registry := ui.NewRegistry(func(id string) *ui.Workspace {
		return ui.NewWorkspace(id, api, ui.WorkspaceOptions{
			Debounce: cfg.FilterDebounce,
			Clock:    clock,
			Logger:   logger,
			Journal:  journal.Record,
		})
	}, clock, cfg.WorkspaceIdleTimeout, logger)
	go registry.Run(ctx, sweepInterval)

	router, err := server.NewRouter(cfg, server.Deps{
		Registry: registry,
		Journal:  journal,
		Clock:    clock,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("api", cfg.APIURL).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server")
	registry.CloseAll()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	log.Info().Msg("server stopped")
	return nil
}
