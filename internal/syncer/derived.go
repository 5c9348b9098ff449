package syncer

import (
	"context"
	"fmt"

	"github.com/tonglam/letletme-data-sub006/internal/pkg/models"
)

// rebuildTeamFixtureViews replaces every per-team fixture bucket from the
// rows just persisted. A team with no fixtures gets its bucket dropped so a
// later read falls back to the repository instead of serving a stale view.
func (s *Syncer) rebuildTeamFixtureViews(ctx context.Context) error {
	fixtures, err := s.fixtures.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load fixtures for team views: %w", err)
	}
	teams, err := s.registry.Teams.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load teams for team views: %w", err)
	}

	byTeam := make(map[int][]models.Fixture, len(teams))
	for _, f := range fixtures {
		byTeam[f.HomeTeamID] = append(byTeam[f.HomeTeamID], f)
		byTeam[f.AwayTeamID] = append(byTeam[f.AwayTeamID], f)
	}

	for _, team := range teams {
		view := s.registry.TeamFixtures(team.ID)
		teamFixtures := byTeam[team.ID]
		if len(teamFixtures) == 0 {
			if err := view.Invalidate(ctx); err != nil {
				return fmt.Errorf("failed to drop team %d fixture view: %w", team.ID, err)
			}
			continue
		}
		if err := view.SetMany(ctx, teamFixtures); err != nil {
			return fmt.Errorf("failed to rebuild team %d fixture view: %w", team.ID, err)
		}
	}
	return nil
}

// rebuildEventFixtureViews replaces every per-event fixture bucket from the
// rows just persisted. Unscheduled fixtures carry event id zero and belong to
// no view; an event with no fixtures gets its bucket dropped.
func (s *Syncer) rebuildEventFixtureViews(ctx context.Context) error {
	fixtures, err := s.fixtures.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load fixtures for event views: %w", err)
	}
	events, err := s.registry.Events.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load events for event views: %w", err)
	}

	byEvent := make(map[int][]models.Fixture, len(events))
	for _, f := range fixtures {
		if f.EventID == 0 {
			continue
		}
		byEvent[f.EventID] = append(byEvent[f.EventID], f)
	}

	for _, event := range events {
		view := s.registry.EventFixtures(event.ID)
		eventFixtures := byEvent[event.ID]
		if len(eventFixtures) == 0 {
			if err := view.Invalidate(ctx); err != nil {
				return fmt.Errorf("failed to drop event %d fixture view: %w", event.ID, err)
			}
			continue
		}
		if err := view.SetMany(ctx, eventFixtures); err != nil {
			return fmt.Errorf("failed to rebuild event %d fixture view: %w", event.ID, err)
		}
	}
	return nil
}

// rebuildSeasonFixtureBucket replaces the season-wide fixture bucket from the
// persisted rows, used after a partial (per-event) fixture refresh.
func (s *Syncer) rebuildSeasonFixtureBucket(ctx context.Context) error {
	fixtures, err := s.fixtures.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load fixtures for season bucket: %w", err)
	}
	return s.registry.Fixtures.Cache().SetMany(ctx, fixtures)
}
