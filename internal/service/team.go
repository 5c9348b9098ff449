package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/tonglam/letletme-data-sub006/internal/domain"
	"github.com/tonglam/letletme-data-sub006/internal/pkg/errs"
	"github.com/tonglam/letletme-data-sub006/internal/pkg/models"
)

// TeamService serves team reads.
type TeamService struct {
	registry *domain.Registry
}

func NewTeamService(registry *domain.Registry) *TeamService {
	return &TeamService{registry: registry}
}

func (s *TeamService) GetTeam(ctx context.Context, id int) (models.Team, error) {
	if id <= 0 {
		return models.Team{}, errs.NewValidationError("team", strconv.Itoa(id),
			fmt.Errorf("team id must be positive"))
	}
	team, err := s.registry.Teams.GetByID(ctx, strconv.Itoa(id))
	if err != nil {
		return models.Team{}, errs.WrapService("team.get", err)
	}
	return team, nil
}

func (s *TeamService) GetAllTeams(ctx context.Context) ([]models.Team, error) {
	teams, err := s.registry.Teams.GetAll(ctx)
	if err != nil {
		return nil, errs.WrapService("team.get-all", err)
	}
	return teams, nil
}
