package syncer

import (
	"context"
	"fmt"

	"github.com/tonglam/letletme-data-sub006/internal/pkg/fplapi"
	"github.com/tonglam/letletme-data-sub006/internal/pkg/models"
)

// maxStandingsPages bounds the pagination loop so a source that keeps
// reporting has_next cannot spin the sync forever.
const maxStandingsPages = 200

// fetchAllStandings walks one league's standings pages in order until the
// source reports no next page, returning the entries as delivered together
// with the league name.
func fetchAllStandings(ctx context.Context, client *fplapi.Client, leagueID int) ([]fplapi.RawStandingsEntry, string, error) {
	var rows []fplapi.RawStandingsEntry
	var leagueName string
	for page := 1; ; page++ {
		if page > maxStandingsPages {
			return nil, "", &fplapi.ValidationError{
				Endpoint: fmt.Sprintf("leagues-classic/%d/standings/", leagueID),
				Reason:   fmt.Sprintf("pagination did not terminate after %d pages", maxStandingsPages),
			}
		}
		standings, err := client.GetLeagueStandings(ctx, leagueID, page)
		if err != nil {
			return nil, "", err
		}
		leagueName = standings.League.Name
		rows = append(rows, standings.Standings.Results...)
		if !standings.Standings.HasNext {
			return rows, leagueName, nil
		}
	}
}

// SyncLeague refreshes one classic league's standings. Pages are walked
// until the source reports no next page; a failure on any page discards the
// whole aggregation, partial standings are never persisted.
func (s *Syncer) SyncLeague(ctx context.Context, leagueID int) error {
	var leagueName string

	ops := s.registry.StandingsForLeague(leagueID)
	cycle := &Cycle[fplapi.RawStandingsEntry, models.LeagueEntry]{
		Entity: "league",
		Scope:  fmt.Sprintf("%s/league-%d", s.registry.Season(), leagueID),
		Fetch: func(ctx context.Context) ([]fplapi.RawStandingsEntry, error) {
			rows, name, err := fetchAllStandings(ctx, s.client, leagueID)
			if err != nil {
				return nil, err
			}
			leagueName = name
			return rows, nil
		},
		Map: func(raw fplapi.RawStandingsEntry) (models.LeagueEntry, error) {
			return mapLeagueEntry(leagueID, leagueName, raw)
		},
		Repo:  s.leagues.ForLeague(leagueID),
		Cache: ops.Cache(),
	}
	return cycle.Run(ctx)
}
