// Package app wires the shared infrastructure every binary needs: database,
// cache store, repositories, and the domain registry for the configured
// season.
package app

import (
	"database/sql"
	"fmt"

	"github.com/tonglam/letletme-data-sub006/internal/domain"
	"github.com/tonglam/letletme-data-sub006/internal/pkg/config"
	"github.com/tonglam/letletme-data-sub006/internal/pkg/storage"
)

// App holds the wired infrastructure of one process.
type App struct {
	Config   *config.Config
	DB       *sql.DB
	Redis    *storage.RedisClient
	Registry *domain.Registry

	Events   *storage.EventRepository
	Phases   *storage.PhaseRepository
	Teams    *storage.TeamRepository
	Players  *storage.PlayerRepository
	Fixtures *storage.FixtureRepository
	Stats    *storage.PlayerStatRepository
	Leagues  *storage.LeagueEntryRepository
}

// New connects to the backing stores and builds the season registry.
func New(cfg *config.Config) (*App, error) {
	db, err := storage.OpenDB(&cfg.Postgres)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	redisClient, err := storage.NewRedisClient(&cfg.Redis)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	season := cfg.Sync.Season
	a := &App{Config: cfg, DB: db, Redis: redisClient}

	if a.Events, err = storage.NewEventRepository(db, season); err != nil {
		a.Close()
		return nil, err
	}
	if a.Phases, err = storage.NewPhaseRepository(db, season); err != nil {
		a.Close()
		return nil, err
	}
	if a.Teams, err = storage.NewTeamRepository(db, season); err != nil {
		a.Close()
		return nil, err
	}
	if a.Players, err = storage.NewPlayerRepository(db, season); err != nil {
		a.Close()
		return nil, err
	}
	if a.Fixtures, err = storage.NewFixtureRepository(db, season); err != nil {
		a.Close()
		return nil, err
	}
	if a.Stats, err = storage.NewPlayerStatRepository(db, season); err != nil {
		a.Close()
		return nil, err
	}
	if a.Leagues, err = storage.NewLeagueEntryRepository(db, season); err != nil {
		a.Close()
		return nil, err
	}

	a.Registry = domain.NewRegistry(redisClient, season,
		a.Events, a.Phases, a.Teams, a.Players, a.Fixtures, a.Stats, a.Leagues)
	return a, nil
}

// Close releases the store connections.
func (a *App) Close() {
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
	if a.DB != nil {
		_ = a.DB.Close()
	}
}
