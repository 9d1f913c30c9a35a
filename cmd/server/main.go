// hevygate - Hevy API proxy with exercise template resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hevygate

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/hevygate/internal/api"
	"github.com/tomtom215/hevygate/internal/config"
	"github.com/tomtom215/hevygate/internal/hevy"
	"github.com/tomtom215/hevygate/internal/logging"
	"github.com/tomtom215/hevygate/internal/supervisor"
	"github.com/tomtom215/hevygate/internal/supervisor/services"
	"github.com/tomtom215/hevygate/internal/templates"
)

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		// A missing HEVY_API_KEY ends up here: refuse to start.
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("hevy_url", cfg.Hevy.URL).
		Dur("hevy_timeout", cfg.Hevy.Timeout).
		Str("refresh_schedule", cfg.Templates.RefreshSchedule).
		Str("snapshot_path", cfg.Templates.SnapshotPath).
		Msg("Configuration loaded")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Installed before priming so a signal also aborts the initial refresh.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		// A second signal gets the default behavior and kills the process.
		signal.Stop(sigCh)
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	client := hevy.NewCircuitBreakerClient(hevy.NewClient(cfg.Hevy), "hevy-api", hevy.BreakerSettings{})

	cache := templates.New()
	refresher := templates.NewRefresher(cache, client, cfg.Templates)

	count := refresher.Prime(ctx, cfg.Templates.WarmStart)
	if ctx.Err() != nil {
		logging.Info().Msg("Shutdown requested during startup")
		return
	}
	logging.Info().Int("count", count).Msg("Exercise template cache primed")

	refreshSvc, err := services.NewRefreshService(refresher, cfg.Templates.RefreshSchedule, cfg.Server.ShutdownTimeout)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create template refresh service")
	}

	handler := api.NewHandler(client, cache, refresher, cfg.Server.MaxBodyBytes)
	router := api.NewRouter(handler, api.ChiMiddlewareConfigFromSecurity(cfg.Security))

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	tree := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  cfg.Server.ShutdownTimeout,
	})
	tree.AddBackgroundService(refreshSvc)
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	logging.Info().Str("addr", server.Addr).Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	// The tree sends exactly one result and never closes the channel.
	if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree stopped with error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("hevygate stopped")
}
