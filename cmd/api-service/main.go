package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tonglam/letletme-data-sub006/internal/api"
	"github.com/tonglam/letletme-data-sub006/internal/app"
	"github.com/tonglam/letletme-data-sub006/internal/pkg/config"
	"github.com/tonglam/letletme-data-sub006/internal/pkg/health"
	"github.com/tonglam/letletme-data-sub006/internal/pkg/logging"
	"github.com/tonglam/letletme-data-sub006/internal/service"
)

const defaultConfigPath = "configs/production.yaml"

func main() {
	if err := run(); err != nil {
		slog.Error("API service failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	slog.Info("Starting API service...")

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = defaultConfigPath
	}
	flag.StringVar(&configPath, "config", configPath, "Path to config file")
	flag.Parse()

	slog.Info("Loading config", "path", configPath)
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.API.Port <= 0 {
		return fmt.Errorf("api.port must be specified in config")
	}

	if _, err := logging.SetupLogger(&cfg.Logging, "api-service"); err != nil {
		slog.Warn("Failed to setup logging, continuing with default logger", "error", err)
	}

	a, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		slog.Info("Received shutdown signal", "signal", sig.String())
		cancel()
	}()

	if cfg.Health.Port > 0 {
		health.Run(ctx, health.AddrFor(cfg.Health.Port), "api-service", cfg.Health.ReadHeaderTimeout,
			health.Dependency{Name: "postgres", Check: a.DB.PingContext},
			health.Dependency{Name: "redis", Check: a.Redis.Ping},
		)
	}

	server := api.NewServer(&cfg.API, &api.Services{
		Events:   service.NewEventService(a.Registry),
		Phases:   service.NewPhaseService(a.Registry),
		Teams:    service.NewTeamService(a.Registry),
		Players:  service.NewPlayerService(a.Registry),
		Fixtures: service.NewFixtureService(a.Registry),
		Stats:    service.NewPlayerStatService(a.Registry),
		Leagues:  service.NewLeagueService(a.Registry),
	})

	go func() {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("API server shutdown failed", "error", err)
		}
	}()

	slog.Info("API server listening", "addr", server.Addr(), "season", cfg.Sync.Season)
	return server.Start()
}
