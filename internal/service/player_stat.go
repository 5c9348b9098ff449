package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/tonglam/letletme-data-sub006/internal/domain"
	"github.com/tonglam/letletme-data-sub006/internal/pkg/errs"
	"github.com/tonglam/letletme-data-sub006/internal/pkg/models"
)

// PlayerStatService serves live stat reads, scoped per event.
type PlayerStatService struct {
	registry *domain.Registry
}

func NewPlayerStatService(registry *domain.Registry) *PlayerStatService {
	return &PlayerStatService{registry: registry}
}

// GetStat returns one element's live stats in one event. The cache field is
// the composite elementId_eventId key.
func (s *PlayerStatService) GetStat(ctx context.Context, eventID, elementID int) (models.PlayerStat, error) {
	if err := validateEventID(eventID); err != nil {
		return models.PlayerStat{}, err
	}
	if elementID <= 0 {
		return models.PlayerStat{}, errs.NewValidationError("player-stat", strconv.Itoa(elementID),
			fmt.Errorf("element id must be positive"))
	}
	id := fmt.Sprintf("%d_%d", elementID, eventID)
	stat, err := s.registry.StatsForEvent(eventID).GetByID(ctx, id)
	if err != nil {
		return models.PlayerStat{}, errs.WrapService("player-stat.get", err)
	}
	return stat, nil
}

// GetEventStats returns every element's live stats for one event.
func (s *PlayerStatService) GetEventStats(ctx context.Context, eventID int) ([]models.PlayerStat, error) {
	if err := validateEventID(eventID); err != nil {
		return nil, err
	}
	stats, err := s.registry.StatsForEvent(eventID).GetAll(ctx)
	if err != nil {
		return nil, errs.WrapService("player-stat.get-event", err)
	}
	return stats, nil
}
