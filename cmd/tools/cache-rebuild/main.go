// cache-rebuild reconstructs every cache bucket of a season from the
// database, without touching the source API. Run it after a Redis flush or
// before pointing readers at a fresh instance.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/tonglam/letletme-data-sub006/internal/app"
	"github.com/tonglam/letletme-data-sub006/internal/pkg/config"
	"github.com/tonglam/letletme-data-sub006/internal/pkg/logging"
	"github.com/tonglam/letletme-data-sub006/internal/pkg/models"
)

const defaultConfigPath = "configs/production.yaml"

func main() {
	if err := run(); err != nil {
		slog.Error("Cache rebuild failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = defaultConfigPath
	}
	flag.StringVar(&configPath, "config", configPath, "Path to config file")
	timeout := flag.Duration("timeout", 5*time.Minute, "Overall rebuild timeout")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if _, err := logging.SetupLogger(&cfg.Logging, "cache-rebuild"); err != nil {
		slog.Warn("Failed to setup logging, continuing with default logger", "error", err)
	}

	a, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	started := time.Now()
	slog.Info("Rebuilding caches", "season", cfg.Sync.Season)

	warmups := []struct {
		name string
		warm func(context.Context) error
	}{
		{"event", a.Registry.Events.Cache().WarmUp},
		{"phase", a.Registry.Phases.Cache().WarmUp},
		{"team", a.Registry.Teams.Cache().WarmUp},
		{"player", a.Registry.Players.Cache().WarmUp},
		{"fixture", a.Registry.Fixtures.Cache().WarmUp},
	}
	for _, w := range warmups {
		if err := w.warm(ctx); err != nil {
			return fmt.Errorf("failed to rebuild %s bucket: %w", w.name, err)
		}
		slog.Info("Bucket rebuilt", "entity", w.name)
	}

	if err := rebuildTeamViews(ctx, a); err != nil {
		return err
	}
	if err := rebuildEventViews(ctx, a); err != nil {
		return err
	}

	eventIDs, err := a.Stats.Events(ctx)
	if err != nil {
		return err
	}
	for _, eventID := range eventIDs {
		if err := a.Registry.StatsForEvent(eventID).Cache().WarmUp(ctx); err != nil {
			return fmt.Errorf("failed to rebuild stats bucket for event %d: %w", eventID, err)
		}
	}
	slog.Info("Stat buckets rebuilt", "events", len(eventIDs))

	leagueIDs, err := a.Leagues.Leagues(ctx)
	if err != nil {
		return err
	}
	for _, leagueID := range leagueIDs {
		if err := a.Registry.StandingsForLeague(leagueID).Cache().WarmUp(ctx); err != nil {
			return fmt.Errorf("failed to rebuild standings bucket for league %d: %w", leagueID, err)
		}
	}
	slog.Info("League buckets rebuilt", "leagues", len(leagueIDs))

	slog.Info("Cache rebuild finished", "duration", time.Since(started))
	return nil
}

func rebuildTeamViews(ctx context.Context, a *app.App) error {
	teams, err := a.Teams.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load teams: %w", err)
	}
	fixtures, err := a.Fixtures.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load fixtures: %w", err)
	}

	byTeam := make(map[int][]models.Fixture, len(teams))
	for _, f := range fixtures {
		byTeam[f.HomeTeamID] = append(byTeam[f.HomeTeamID], f)
		byTeam[f.AwayTeamID] = append(byTeam[f.AwayTeamID], f)
	}

	for _, team := range teams {
		view := a.Registry.TeamFixtures(team.ID)
		if len(byTeam[team.ID]) == 0 {
			if err := view.Invalidate(ctx); err != nil {
				return fmt.Errorf("failed to drop team %d fixture view: %w", team.ID, err)
			}
			continue
		}
		if err := view.SetMany(ctx, byTeam[team.ID]); err != nil {
			return fmt.Errorf("failed to rebuild team %d fixture view: %w", team.ID, err)
		}
	}
	slog.Info("Team fixture views rebuilt", "teams", len(teams))
	return nil
}

func rebuildEventViews(ctx context.Context, a *app.App) error {
	events, err := a.Events.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load events: %w", err)
	}
	fixtures, err := a.Fixtures.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load fixtures: %w", err)
	}

	byEvent := make(map[int][]models.Fixture, len(events))
	for _, f := range fixtures {
		if f.EventID == 0 {
			continue
		}
		byEvent[f.EventID] = append(byEvent[f.EventID], f)
	}

	for _, event := range events {
		view := a.Registry.EventFixtures(event.ID)
		if len(byEvent[event.ID]) == 0 {
			if err := view.Invalidate(ctx); err != nil {
				return fmt.Errorf("failed to drop event %d fixture view: %w", event.ID, err)
			}
			continue
		}
		if err := view.SetMany(ctx, byEvent[event.ID]); err != nil {
			return fmt.Errorf("failed to rebuild event %d fixture view: %w", event.ID, err)
		}
	}
	slog.Info("Event fixture views rebuilt", "events", len(events))
	return nil
}
