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

	"github.com/tonglam/letletme-data-sub006/internal/app"
	"github.com/tonglam/letletme-data-sub006/internal/pkg/config"
	"github.com/tonglam/letletme-data-sub006/internal/pkg/fplapi"
	"github.com/tonglam/letletme-data-sub006/internal/pkg/health"
	"github.com/tonglam/letletme-data-sub006/internal/pkg/logging"
	"github.com/tonglam/letletme-data-sub006/internal/pkg/notify"
	"github.com/tonglam/letletme-data-sub006/internal/syncer"
)

const defaultConfigPath = "configs/production.yaml"

type flags struct {
	configPath string
	runFor     time.Duration
	once       bool
}

func main() {
	if err := run(); err != nil {
		slog.Error("Sync service failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	slog.Info("Starting sync service...")

	f := parseFlags()

	slog.Info("Loading config", "path", f.configPath)
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if _, err := logging.SetupLogger(&cfg.Logging, "sync-service"); err != nil {
		slog.Warn("Failed to setup logging, continuing with default logger", "error", err)
	}

	a, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	notifier, err := notify.NewTelegramNotifier(&cfg.Telegram)
	if err != nil {
		slog.Warn("Failed to setup telegram notifier, alerts disabled", "error", err)
	}
	defer notifier.Close()

	ctx, cancel := createContext(f.runFor)
	defer cancel()
	setupSignalHandler(ctx, cancel)

	if cfg.Health.Port > 0 {
		health.Run(ctx, health.AddrFor(cfg.Health.Port), "sync-service", cfg.Health.ReadHeaderTimeout,
			health.Dependency{Name: "postgres", Check: a.DB.PingContext},
			health.Dependency{Name: "redis", Check: a.Redis.Ping},
		)
	}

	client := fplapi.NewClient(&cfg.FPL)
	s := syncer.New(client, a.Registry,
		a.Events, a.Phases, a.Teams, a.Players, a.Fixtures, a.Stats, a.Leagues)

	if f.once {
		slog.Info("Running one sync cycle", "season", cfg.Sync.Season)
		return s.RunAll(ctx, cfg.Sync.LeagueIDs, cfg.Sync.LiveStats)
	}

	scheduler := syncer.NewScheduler(s, &cfg.Sync, notifier)
	scheduler.Run(ctx)
	return nil
}

func parseFlags() flags {
	var f flags
	defaultConfig := os.Getenv("CONFIG_PATH")
	if defaultConfig == "" {
		defaultConfig = defaultConfigPath
	}
	flag.StringVar(&f.configPath, "config", defaultConfig, "Path to config file")
	flag.DurationVar(&f.runFor, "run-for", 0, "Auto-stop after duration. 0 = run until SIGINT/SIGTERM")
	flag.BoolVar(&f.once, "once", false, "Run a single sync cycle and exit")
	flag.Parse()
	return f
}

func createContext(runFor time.Duration) (context.Context, context.CancelFunc) {
	if runFor > 0 {
		return context.WithTimeout(context.Background(), runFor)
	}
	return context.WithCancel(context.Background())
}

func setupSignalHandler(ctx context.Context, cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigChan:
			slog.Info("Received shutdown signal", "signal", sig.String())
			cancel()
		case <-ctx.Done():
			signal.Stop(sigChan)
			close(sigChan)
		}
	}()
}
