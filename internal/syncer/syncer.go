package syncer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tonglam/letletme-data-sub006/internal/domain"
	"github.com/tonglam/letletme-data-sub006/internal/pkg/fplapi"
	"github.com/tonglam/letletme-data-sub006/internal/pkg/models"
	"github.com/tonglam/letletme-data-sub006/internal/pkg/storage"
)

// Syncer runs the refresh workflows of one season against one source client.
type Syncer struct {
	client   *fplapi.Client
	registry *domain.Registry

	events   *storage.EventRepository
	phases   *storage.PhaseRepository
	teams    *storage.TeamRepository
	players  *storage.PlayerRepository
	fixtures *storage.FixtureRepository
	stats    *storage.PlayerStatRepository
	leagues  *storage.LeagueEntryRepository
}

// New wires a syncer over the season's registry and repositories.
func New(
	client *fplapi.Client,
	registry *domain.Registry,
	events *storage.EventRepository,
	phases *storage.PhaseRepository,
	teams *storage.TeamRepository,
	players *storage.PlayerRepository,
	fixtures *storage.FixtureRepository,
	stats *storage.PlayerStatRepository,
	leagues *storage.LeagueEntryRepository,
) *Syncer {
	return &Syncer{
		client:   client,
		registry: registry,
		events:   events,
		phases:   phases,
		teams:    teams,
		players:  players,
		fixtures: fixtures,
		stats:    stats,
		leagues:  leagues,
	}
}

// SyncEvents refreshes the event collection from the season snapshot.
func (s *Syncer) SyncEvents(ctx context.Context) error {
	cycle := &Cycle[fplapi.RawEvent, models.Event]{
		Entity: "event",
		Scope:  s.registry.Season(),
		Fetch: func(ctx context.Context) ([]fplapi.RawEvent, error) {
			bootstrap, err := s.client.GetBootstrap(ctx)
			if err != nil {
				return nil, err
			}
			return bootstrap.Events, nil
		},
		Map:   mapEvent,
		Repo:  s.events,
		Cache: s.registry.Events.Cache(),
	}
	return cycle.Run(ctx)
}

// SyncPhases refreshes the phase collection from the season snapshot.
func (s *Syncer) SyncPhases(ctx context.Context) error {
	cycle := &Cycle[fplapi.RawPhase, models.Phase]{
		Entity: "phase",
		Scope:  s.registry.Season(),
		Fetch: func(ctx context.Context) ([]fplapi.RawPhase, error) {
			bootstrap, err := s.client.GetBootstrap(ctx)
			if err != nil {
				return nil, err
			}
			return bootstrap.Phases, nil
		},
		Map:   mapPhase,
		Repo:  s.phases,
		Cache: s.registry.Phases.Cache(),
	}
	return cycle.Run(ctx)
}

// SyncTeams refreshes the team collection from the season snapshot.
func (s *Syncer) SyncTeams(ctx context.Context) error {
	cycle := &Cycle[fplapi.RawTeam, models.Team]{
		Entity: "team",
		Scope:  s.registry.Season(),
		Fetch: func(ctx context.Context) ([]fplapi.RawTeam, error) {
			bootstrap, err := s.client.GetBootstrap(ctx)
			if err != nil {
				return nil, err
			}
			return bootstrap.Teams, nil
		},
		Map:   mapTeam,
		Repo:  s.teams,
		Cache: s.registry.Teams.Cache(),
	}
	return cycle.Run(ctx)
}

// SyncPlayers refreshes the player collection from the season snapshot.
func (s *Syncer) SyncPlayers(ctx context.Context) error {
	cycle := &Cycle[fplapi.RawElement, models.Player]{
		Entity: "player",
		Scope:  s.registry.Season(),
		Fetch: func(ctx context.Context) ([]fplapi.RawElement, error) {
			bootstrap, err := s.client.GetBootstrap(ctx)
			if err != nil {
				return nil, err
			}
			return bootstrap.Elements, nil
		},
		Map:   mapPlayer,
		Repo:  s.players,
		Cache: s.registry.Players.Cache(),
	}
	return cycle.Run(ctx)
}

// SyncFixtures refreshes the full season fixture list. Team names are joined
// from the cached team collection, so teams must be synced first. After the
// main bucket is replaced the per-team derived buckets are rebuilt.
func (s *Syncer) SyncFixtures(ctx context.Context) error {
	teams, err := s.registry.Teams.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load teams for fixture mapping: %w", err)
	}
	teamNames := make(map[int]string, len(teams))
	for _, t := range teams {
		teamNames[t.ID] = t.Name
	}

	cycle := &Cycle[fplapi.RawFixture, models.Fixture]{
		Entity: "fixture",
		Scope:  s.registry.Season(),
		Fetch:  s.client.GetAllFixtures,
		Map: func(raw fplapi.RawFixture) (models.Fixture, error) {
			return mapFixture(raw, teamNames)
		},
		Repo:  s.fixtures,
		Cache: s.registry.Fixtures.Cache(),
		After: []func(ctx context.Context) error{s.rebuildTeamFixtureViews, s.rebuildEventFixtureViews},
	}
	return cycle.Run(ctx)
}

// SyncEventFixtures refreshes one event's fixtures, picking up score and
// status changes between full fixture syncs. The season bucket and the
// per-team views are rebuilt afterwards so every read path serves the same
// rows.
func (s *Syncer) SyncEventFixtures(ctx context.Context, eventID int) error {
	teams, err := s.registry.Teams.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load teams for fixture mapping: %w", err)
	}
	teamNames := make(map[int]string, len(teams))
	for _, t := range teams {
		teamNames[t.ID] = t.Name
	}

	cycle := &Cycle[fplapi.RawFixture, models.Fixture]{
		Entity: "fixture",
		Scope:  fmt.Sprintf("%s/event-%d", s.registry.Season(), eventID),
		Fetch: func(ctx context.Context) ([]fplapi.RawFixture, error) {
			return s.client.GetFixtures(ctx, eventID)
		},
		Map: func(raw fplapi.RawFixture) (models.Fixture, error) {
			return mapFixture(raw, teamNames)
		},
		Repo:  s.fixtures.ForEvent(eventID),
		Cache: s.registry.EventFixtures(eventID),
		After: []func(ctx context.Context) error{s.rebuildSeasonFixtureBucket, s.rebuildTeamFixtureViews},
	}
	return cycle.Run(ctx)
}

// SyncLiveStats refreshes one event's live element stats.
func (s *Syncer) SyncLiveStats(ctx context.Context, eventID int) error {
	ops := s.registry.StatsForEvent(eventID)
	cycle := &Cycle[fplapi.RawLiveElement, models.PlayerStat]{
		Entity: "player-stat",
		Scope:  fmt.Sprintf("%s/event-%d", s.registry.Season(), eventID),
		Fetch: func(ctx context.Context) ([]fplapi.RawLiveElement, error) {
			live, err := s.client.GetLive(ctx, eventID)
			if err != nil {
				return nil, err
			}
			return live.Elements, nil
		},
		Map: func(raw fplapi.RawLiveElement) (models.PlayerStat, error) {
			return mapPlayerStat(eventID, raw)
		},
		Repo:  s.stats.ForEvent(eventID),
		Cache: ops.Cache(),
	}
	return cycle.Run(ctx)
}

// RunAll executes a full refresh in dependency order: bootstrap collections
// first, fixtures after teams, then the configured leagues. With liveStats
// the current event's stats are refreshed after the bootstrap steps, so the
// event just synced decides the live target. The first failure stops the run.
func (s *Syncer) RunAll(ctx context.Context, leagueIDs []int, liveStats bool) error {
	steps := []struct {
		name string
		run  func(context.Context) error
	}{
		{"events", s.SyncEvents},
		{"phases", s.SyncPhases},
		{"teams", s.SyncTeams},
		{"players", s.SyncPlayers},
		{"fixtures", s.SyncFixtures},
	}
	for _, step := range steps {
		if err := step.run(ctx); err != nil {
			return fmt.Errorf("sync step %s failed: %w", step.name, err)
		}
	}

	if liveStats {
		if eventID := s.currentEventID(ctx); eventID > 0 {
			if err := s.SyncLiveStats(ctx, eventID); err != nil {
				return fmt.Errorf("sync step live-stats failed: %w", err)
			}
			if err := s.SyncEventFixtures(ctx, eventID); err != nil {
				return fmt.Errorf("sync step live-fixtures failed: %w", err)
			}
		}
	}

	for _, leagueID := range leagueIDs {
		if err := s.SyncLeague(ctx, leagueID); err != nil {
			return fmt.Errorf("sync step league %d failed: %w", leagueID, err)
		}
	}
	return nil
}

// currentEventID resolves the live target from the event collection. No
// current event (pre-season, between seasons) skips the live steps for this
// run.
func (s *Syncer) currentEventID(ctx context.Context) int {
	events, err := s.registry.Events.GetAll(ctx)
	if err != nil {
		slog.Warn("Failed to resolve current event for live stats", "error", err)
		return 0
	}
	for _, e := range events {
		if e.IsCurrent {
			return e.ID
		}
	}
	return 0
}
