package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/tonglam/letletme-data-sub006/internal/domain"
	"github.com/tonglam/letletme-data-sub006/internal/pkg/errs"
	"github.com/tonglam/letletme-data-sub006/internal/pkg/models"
)

// PlayerService serves player reads.
type PlayerService struct {
	registry *domain.Registry
}

func NewPlayerService(registry *domain.Registry) *PlayerService {
	return &PlayerService{registry: registry}
}

func (s *PlayerService) GetPlayer(ctx context.Context, id int) (models.Player, error) {
	if id <= 0 {
		return models.Player{}, errs.NewValidationError("player", strconv.Itoa(id),
			fmt.Errorf("player id must be positive"))
	}
	player, err := s.registry.Players.GetByID(ctx, strconv.Itoa(id))
	if err != nil {
		return models.Player{}, errs.WrapService("player.get", err)
	}
	return player, nil
}

func (s *PlayerService) GetAllPlayers(ctx context.Context) ([]models.Player, error) {
	players, err := s.registry.Players.GetAll(ctx)
	if err != nil {
		return nil, errs.WrapService("player.get-all", err)
	}
	return players, nil
}

// GetPlayersByTeam filters the cached collection by team.
func (s *PlayerService) GetPlayersByTeam(ctx context.Context, teamID int) ([]models.Player, error) {
	if teamID <= 0 {
		return nil, errs.NewValidationError("player", strconv.Itoa(teamID),
			fmt.Errorf("team id must be positive"))
	}
	players, err := s.registry.Players.GetAll(ctx)
	if err != nil {
		return nil, errs.WrapService("player.get-by-team", err)
	}
	filtered := make([]models.Player, 0, len(players))
	for _, p := range players {
		if p.TeamID == teamID {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}
