package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/kalshiwhale/tracker/internal/api"
	"github.com/kalshiwhale/tracker/internal/config"
	"github.com/kalshiwhale/tracker/internal/feed"
	"github.com/kalshiwhale/tracker/internal/pipeline"
	"github.com/kalshiwhale/tracker/internal/server"
	"github.com/kalshiwhale/tracker/internal/version"
)

func main() {
	configPath := flag.String("config", "configs/tracker.yaml", "path to config file")
	flag.Parse()

	// Set up structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	logger.Info("starting tracker",
		"version", version.Version,
		"commit", version.Commit,
		"config", *configPath,
	)

	// Pull in a local .env before config expansion, if one exists
	if err := godotenv.Load(); err == nil {
		logger.Debug("loaded environment from .env")
	}

	// Load configuration
	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Info("configuration loaded",
		"api_url", cfg.API.RestURL,
		"refresh_interval", cfg.Refresh.Interval,
		"addr", cfg.Server.Addr,
	)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	// Create API client
	apiClient := api.NewClient(
		cfg.API.RestURL,
		cfg.API.APIKey,
		api.WithLogger(logger),
		api.WithTimeout(cfg.API.Timeout),
		api.WithRetries(cfg.API.MaxRetries, time.Second),
		api.WithTickerPrefixes(cfg.API.TickerPrefixes),
	)

	// Wire the refresh pipeline
	pipe := pipeline.New(pipeline.Config{
		PageSize:           cfg.Pipeline.PageSize,
		MaxPages:           cfg.Pipeline.MaxPages,
		ResolveConcurrency: cfg.Pipeline.ResolveConcurrency,
		ResolveTimeout:     cfg.Pipeline.ResolveTimeout,
		WhaleFraction:      cfg.Pipeline.WhaleFraction,
		ScopeKeywords:      cfg.Pipeline.ScopeKeywords,
	}, pipeline.ClientSource{Client: apiClient}, logger)

	store := feed.NewStore()
	alertsCfg := feed.AlertsConfig{
		WhaleFraction:     cfg.Pipeline.WhaleFraction,
		HighVolumeMinimum: cfg.Pipeline.HighVolumeMinimum,
	}

	hub := server.NewHub(store, alertsCfg, cfg.Server.HeartbeatInterval, cfg.Server.AllowedOrigins, logger)
	go hub.Run(ctx)

	// runCycle executes one refresh and routes the outcome: publish and
	// broadcast on success, record the failure otherwise. The store's
	// sequence guard makes concurrent cycles safe.
	runCycle := func(ctx context.Context) error {
		snap, err := pipe.Run(ctx)
		if err != nil {
			store.Fail(err)
			return err
		}
		if store.Publish(snap) {
			hub.BroadcastSnapshot(snap)
		}
		return nil
	}

	srv := server.New(cfg.Server, store, hub, alertsCfg, runCycle, logger)

	go func() {
		if err := srv.ListenAndServe(); err != nil {
			logger.Error("http server error", "error", err)
			cancel()
		}
	}()

	// Background refresh loop: one cycle immediately, then on the interval
	go func() {
		if err := runCycle(ctx); err != nil {
			logger.Error("initial refresh failed", "error", err)
		}

		ticker := time.NewTicker(cfg.Refresh.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := runCycle(ctx); err != nil {
					logger.Error("refresh cycle failed", "error", err)
				}
			}
		}
	}()

	logger.Info("tracker running", "addr", cfg.Server.Addr)

	<-ctx.Done()

	logger.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	logger.Info("tracker stopped")
}
