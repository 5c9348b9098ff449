package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/tonglam/letletme-data-sub006/internal/domain"
	"github.com/tonglam/letletme-data-sub006/internal/pkg/errs"
	"github.com/tonglam/letletme-data-sub006/internal/pkg/models"
)

// FixtureService serves fixture reads, including the derived per-team view.
type FixtureService struct {
	registry *domain.Registry
}

func NewFixtureService(registry *domain.Registry) *FixtureService {
	return &FixtureService{registry: registry}
}

func (s *FixtureService) GetFixture(ctx context.Context, id int) (models.Fixture, error) {
	if id <= 0 {
		return models.Fixture{}, errs.NewValidationError("fixture", strconv.Itoa(id),
			fmt.Errorf("fixture id must be positive"))
	}
	fixture, err := s.registry.Fixtures.GetByID(ctx, strconv.Itoa(id))
	if err != nil {
		return models.Fixture{}, errs.WrapService("fixture.get", err)
	}
	return fixture, nil
}

func (s *FixtureService) GetAllFixtures(ctx context.Context) ([]models.Fixture, error) {
	fixtures, err := s.registry.Fixtures.GetAll(ctx)
	if err != nil {
		return nil, errs.WrapService("fixture.get-all", err)
	}
	return fixtures, nil
}

// GetFixturesByEvent reads the derived per-event bucket; on miss the cache
// falls back to an event query against the repository.
func (s *FixtureService) GetFixturesByEvent(ctx context.Context, eventID int) ([]models.Fixture, error) {
	if err := validateEventID(eventID); err != nil {
		return nil, err
	}
	fixtures, err := s.registry.EventFixtures(eventID).GetAll(ctx)
	if err != nil {
		return nil, errs.WrapService("fixture.get-by-event", err)
	}
	return fixtures, nil
}

// GetFixturesByTeam reads the derived per-team bucket; on miss the cache
// falls back to a team query against the repository.
func (s *FixtureService) GetFixturesByTeam(ctx context.Context, teamID int) ([]models.Fixture, error) {
	if teamID <= 0 {
		return nil, errs.NewValidationError("fixture", strconv.Itoa(teamID),
			fmt.Errorf("team id must be positive"))
	}
	fixtures, err := s.registry.TeamFixtures(teamID).GetAll(ctx)
	if err != nil {
		return nil, errs.WrapService("fixture.get-by-team", err)
	}
	return fixtures, nil
}
