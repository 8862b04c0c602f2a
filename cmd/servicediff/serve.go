package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/servicediff/internal/core"
	"github.com/JonMunkholm/servicediff/internal/snapshot"
	"github.com/JonMunkholm/servicediff/internal/web"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve comparisons over HTTP",
		Long: `Serve starts an HTTP server. POST /api/compare takes a multipart form
with "current" and "previous" files and returns the report; the optional
format query parameter selects text, json or html. GET /healthz reports
how many comparison slots are free.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runServe(cmd.Context())
		},
	}
}

func (a *app) runServe(ctx context.Context) error {
	cfg := a.cfg
	logger := a.logger

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	limiter := core.NewLimiter(cfg.Upload.MaxConcurrent, cfg.Upload.MaxWaitTime)
	server := web.NewServer(cfg,
		core.NewService(core.WithLogger(logger)),
		snapshot.NewLoader(snapshot.WithSheet(cfg.Snapshot.Sheet), snapshot.WithLogger(logger)),
		limiter,
	)

	logger.Info("configuration loaded",
		"addr", cfg.Server.Addr(),
		"upload_max_file_size", cfg.Upload.MaxFileSize,
		"upload_max_concurrent", cfg.Upload.MaxConcurrent,
		"require_api_key", cfg.Security.RequireAPIKey,
	)

	errCh := make(chan error, 1)
	go func() { errCh <- server.Start() }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down...", "active_comparisons", limiter.ActiveCount())

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("comparisons did not complete in time", "error", err)
		return err
	}
	logger.Info("server stopped")
	return nil
}
