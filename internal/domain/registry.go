package domain

import (
	"context"
	"strconv"

	"github.com/tonglam/letletme-data-sub006/internal/pkg/cache"
	"github.com/tonglam/letletme-data-sub006/internal/pkg/enums"
	"github.com/tonglam/letletme-data-sub006/internal/pkg/models"
	"github.com/tonglam/letletme-data-sub006/internal/pkg/storage"
)

// Registry holds the operation sets of every entity kind for one season.
// Everything is constructed once at startup and injected; nothing global.
type Registry struct {
	store  cache.BucketStore
	season string

	Events   *Ops[models.Event]
	Phases   *Ops[models.Phase]
	Teams    *Ops[models.Team]
	Players  *Ops[models.Player]
	Fixtures *Ops[models.Fixture]

	statRepo   *storage.PlayerStatRepository
	leagueRepo *storage.LeagueEntryRepository
	fixRepo    fixtureSource
}

// fixtureSource is the slice of the fixture repository the derived views
// fall back to on miss.
type fixtureSource interface {
	FindByID(ctx context.Context, id string) (models.Fixture, bool, error)
	FindByTeam(ctx context.Context, teamID int) ([]models.Fixture, error)
	FindByEvent(ctx context.Context, eventID int) ([]models.Fixture, error)
}

// NewRegistry wires the season's operation sets over the shared store and
// repositories.
func NewRegistry(
	store cache.BucketStore,
	season string,
	events *storage.EventRepository,
	phases *storage.PhaseRepository,
	teams *storage.TeamRepository,
	players *storage.PlayerRepository,
	fixtures *storage.FixtureRepository,
	stats *storage.PlayerStatRepository,
	leagues *storage.LeagueEntryRepository,
) *Registry {
	return &Registry{
		store:  store,
		season: season,
		Events: NewOps("event", store, cache.NewKey(enums.PrefixEvent, season), events,
			func(e models.Event) string { return e.CacheID() }),
		Phases: NewOps("phase", store, cache.NewKey(enums.PrefixPhase, season), phases,
			func(p models.Phase) string { return p.CacheID() }),
		Teams: NewOps("team", store, cache.NewKey(enums.PrefixTeam, season), teams,
			func(t models.Team) string { return t.CacheID() }),
		Players: NewOps("player", store, cache.NewKey(enums.PrefixPlayer, season), players,
			func(p models.Player) string { return p.CacheID() }),
		Fixtures: NewOps("fixture", store, cache.NewKey(enums.PrefixFixture, season), fixtures,
			func(f models.Fixture) string { return f.CacheID() }),
		statRepo:   stats,
		leagueRepo: leagues,
		fixRepo:    fixtures,
	}
}

// StatsForEvent returns the operation set for one event's live stats. The
// bucket is narrowed by the event id subscope.
func (r *Registry) StatsForEvent(eventID int) *Ops[models.PlayerStat] {
	key := cache.NewKey(enums.PrefixPlayerStat, r.season).WithSubscope(strconv.Itoa(eventID))
	return NewOps("player-stat", r.store, key, r.statRepo.ForEvent(eventID),
		func(s models.PlayerStat) string { return s.CacheID() })
}

// StandingsForLeague returns the operation set for one league's standings.
func (r *Registry) StandingsForLeague(leagueID int) *Ops[models.LeagueEntry] {
	key := cache.NewKey(enums.PrefixLeague, r.season).WithSubscope(strconv.Itoa(leagueID))
	return NewOps("league", r.store, key, r.leagueRepo.ForLeague(leagueID),
		func(l models.LeagueEntry) string { return l.CacheID() })
}

// TeamFixtures returns the derived per-team fixture view. Its bucket is
// recomputed by the fixture sync; on miss it falls back to a team query
// against the fixture repository.
func (r *Registry) TeamFixtures(teamID int) *cache.Cache[models.Fixture] {
	key := cache.NewKey(enums.PrefixFixture, r.season).WithSubscope("team" + cache.KeySeparator + strconv.Itoa(teamID))
	provider := &funcProvider[models.Fixture]{
		getOne: func(ctx context.Context, id string) (models.Fixture, bool, error) {
			f, found, err := r.fixRepo.FindByID(ctx, id)
			if err != nil || !found {
				return models.Fixture{}, false, err
			}
			if f.HomeTeamID != teamID && f.AwayTeamID != teamID {
				return models.Fixture{}, false, nil
			}
			return f, true, nil
		},
		getAll: func(ctx context.Context) ([]models.Fixture, error) {
			return r.fixRepo.FindByTeam(ctx, teamID)
		},
	}
	return cache.New(r.store, key, provider, func(f models.Fixture) string { return f.CacheID() })
}

// EventFixtures returns the derived per-event fixture view. Its bucket is
// recomputed by the fixture sync; on miss it falls back to an event query
// against the fixture repository.
func (r *Registry) EventFixtures(eventID int) *cache.Cache[models.Fixture] {
	key := cache.NewKey(enums.PrefixFixture, r.season).WithSubscope("event" + cache.KeySeparator + strconv.Itoa(eventID))
	provider := &funcProvider[models.Fixture]{
		getOne: func(ctx context.Context, id string) (models.Fixture, bool, error) {
			f, found, err := r.fixRepo.FindByID(ctx, id)
			if err != nil || !found {
				return models.Fixture{}, false, err
			}
			if f.EventID != eventID {
				return models.Fixture{}, false, nil
			}
			return f, true, nil
		},
		getAll: func(ctx context.Context) ([]models.Fixture, error) {
			return r.fixRepo.FindByEvent(ctx, eventID)
		},
	}
	return cache.New(r.store, key, provider, func(f models.Fixture) string { return f.CacheID() })
}

// Season returns the registry's scope.
func (r *Registry) Season() string {
	return r.season
}
