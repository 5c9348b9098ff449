package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/tonglam/letletme-data-sub006/internal/domain"
	"github.com/tonglam/letletme-data-sub006/internal/pkg/errs"
	"github.com/tonglam/letletme-data-sub006/internal/pkg/models"
)

// LeagueService serves classic league standing reads.
type LeagueService struct {
	registry *domain.Registry
}

func NewLeagueService(registry *domain.Registry) *LeagueService {
	return &LeagueService{registry: registry}
}

// GetStandings returns one league's full standings ordered by rank. An empty
// result means the league was never synced, which is NOT_FOUND.
func (s *LeagueService) GetStandings(ctx context.Context, leagueID int) ([]models.LeagueEntry, error) {
	if leagueID <= 0 {
		return nil, errs.NewValidationError("league", strconv.Itoa(leagueID),
			fmt.Errorf("league id must be positive"))
	}
	entries, err := s.registry.StandingsForLeague(leagueID).GetAll(ctx)
	if err != nil {
		return nil, errs.WrapService("league.get-standings", err)
	}
	if len(entries) == 0 {
		return nil, errs.NewNotFound("league", strconv.Itoa(leagueID))
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Rank < entries[j].Rank })
	return entries, nil
}

// GetEntry returns one manager's row in a league.
func (s *LeagueService) GetEntry(ctx context.Context, leagueID, entryID int) (models.LeagueEntry, error) {
	if leagueID <= 0 {
		return models.LeagueEntry{}, errs.NewValidationError("league", strconv.Itoa(leagueID),
			fmt.Errorf("league id must be positive"))
	}
	if entryID <= 0 {
		return models.LeagueEntry{}, errs.NewValidationError("league", strconv.Itoa(entryID),
			fmt.Errorf("entry id must be positive"))
	}
	entry, err := s.registry.StandingsForLeague(leagueID).GetByID(ctx, strconv.Itoa(entryID))
	if err != nil {
		return models.LeagueEntry{}, errs.WrapService("league.get-entry", err)
	}
	return entry, nil
}
