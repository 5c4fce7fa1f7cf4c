package main

import (
	"context"
	"log/slog"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/spacesedan/textanalytics/internal/analysis"
	"github.com/spacesedan/textanalytics/internal/app"
	"github.com/spacesedan/textanalytics/internal/auth"
	"github.com/spacesedan/textanalytics/internal/monitoring"
	"github.com/spacesedan/textanalytics/internal/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Load the pipelines and serve the HTTP API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	verifier, err := auth.NewVerifier(cfg)
	if err != nil {
		return err
	}

	set, err := app.NewPipelines(cfg)
	if err != nil {
		slog.Error("[Main] Failed to load pipelines", slog.String("error", err.Error()))
		return err
	}
	defer func() {
		if err := set.Close(); err != nil {
			slog.Warn("[Main] Failed to release pipelines", slog.String("error", err.Error()))
		}
	}()

	var healthy atomic.Bool
	healthy.Store(true)

	monitorCtx, cancelMonitor := context.WithCancel(ctx)
	defer cancelMonitor()
	go monitoring.MonitorPipelineHealth(monitorCtx, set, &healthy, cfg.HealthcheckInterval)

	h := server.NewHandler(verifier, analysis.NewServiceFromSet(set), &healthy, cfg.CookieSecure)
	srv := server.New(cfg, h)

	slog.Info("[Main] Starting Text Analytics API",
		slog.String("env", cfg.AppEnv),
		slog.String("addr", cfg.Addr()))

	if err := srv.Run(ctx); err != nil {
		slog.Error("[Main] Server stopped with error", slog.String("error", err.Error()))
		return err
	}
	slog.Info("[Main] Server stopped")
	return nil
}
