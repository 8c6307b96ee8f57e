// Reruns - Episode Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reruns

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/reruns/internal/api"
	"github.com/tomtom215/reruns/internal/cache"
	"github.com/tomtom215/reruns/internal/config"
	"github.com/tomtom215/reruns/internal/describe"
	"github.com/tomtom215/reruns/internal/logging"
	"github.com/tomtom215/reruns/internal/metadata"
	"github.com/tomtom215/reruns/internal/recommend"
	"github.com/tomtom215/reruns/internal/store"
	"github.com/tomtom215/reruns/internal/supervisor"
	"github.com/tomtom215/reruns/internal/supervisor/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	if err := run(cfg); err != nil {
		logging.Fatal().Err(err).Msg("Server exited with error")
	}
	logging.Info().Msg("Reruns stopped")
}

func run(cfg *config.Config) error {
	logger := logging.Logger()

	logging.Info().
		Str("store_backend", cfg.Store.Backend).
		Str("store_path", cfg.Store.Path).
		Bool("tvmaze_enabled", cfg.Providers.TVMaze.Enabled).
		Int("recency_window_days", cfg.Recommend.RecencyWindowDays).
		Msg("Configuration loaded")

	st, err := store.Open(&cfg.Store, logger)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logging.Error().Err(cerr).Msg("Failed to close store")
		}
	}()

	cinemeta := metadata.NewCinemeta(&cfg.Providers.Cinemeta, logger)
	resolved := cache.NewLRU[string](cfg.LookupCache.Capacity, cfg.LookupCache.TTL)
	caches := map[string]services.Expirer{"resolved-ids": resolved}
	circuits := map[string]api.CircuitReporter{"cinemeta": cinemeta}

	// Interface values stay nil when TVmaze is off so the resolver and
	// lookup skip it entirely.
	var (
		summaries describe.SummaryProvider
		external  metadata.ExternalResolver
	)
	if cfg.Providers.TVMaze.Enabled {
		tvmaze := metadata.NewTVMaze(&cfg.Providers.TVMaze, cfg.LookupCache, logger)
		summaries = tvmaze
		external = tvmaze
		caches["tvmaze-show-ids"] = tvmaze
		circuits["tvmaze"] = tvmaze
	}
	lookup := metadata.NewLookup(cinemeta, external, resolved, logger)

	engine, err := newEngine(cfg, st, cinemeta)
	if err != nil {
		return fmt.Errorf("create engine: %w", err)
	}

	handler, err := api.NewHandler(api.Dependencies{
		Store:     st,
		Picker:    engine,
		Describer: describe.NewResolver(summaries, logger),
		Series:    cinemeta,
		Lookup:    lookup,
		Circuits:  circuits,
	}, logger)
	if err != nil {
		return fmt.Errorf("create handler: %w", err)
	}

	mw := api.NewChiMiddleware(api.NewChiMiddlewareConfig(&cfg.Security))
	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           api.NewRouter(handler, mw).SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	// The tree must outwait the HTTP drain.
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout + 5*time.Second,
	})
	if err != nil {
		return fmt.Errorf("create supervisor tree: %w", err)
	}

	if cfg.LookupCache.SweepInterval > 0 {
		tree.AddMaintenanceService(services.NewCacheJanitorService(caches, cfg.LookupCache.SweepInterval, logger))
	}
	tree.AddAPIService(services.NewHTTPServerService(server, server.Addr, cfg.Server.ShutdownTimeout, logger))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logging.Info().Str("addr", server.Addr).Msg("Starting Reruns")
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("supervisor tree: %w", err)
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}
	return nil
}

func newEngine(cfg *config.Config, st store.Store, series recommend.MetadataProvider) (*recommend.Engine, error) {
	engineCfg := &recommend.Config{
		RecencyWindowDays:  cfg.Recommend.RecencyWindowDays,
		Seed:               cfg.Recommend.Seed,
		ParallelEvaluation: cfg.Recommend.ParallelEvaluation,
		MaxConcurrency:     cfg.Recommend.MaxConcurrency,
		ShowTimeout:        cfg.Recommend.ShowTimeout,
	}

	return recommend.NewEngine(engineCfg, recommend.Collaborators{
		Registry: st,
		History:  st,
		Metadata: series,
	}, logging.Logger())
}
