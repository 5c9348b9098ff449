package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/tonglam/letletme-data-sub006/internal/domain"
	"github.com/tonglam/letletme-data-sub006/internal/pkg/errs"
	"github.com/tonglam/letletme-data-sub006/internal/pkg/models"
)

// PhaseService serves phase reads.
type PhaseService struct {
	registry *domain.Registry
}

func NewPhaseService(registry *domain.Registry) *PhaseService {
	return &PhaseService{registry: registry}
}

func (s *PhaseService) GetPhase(ctx context.Context, id int) (models.Phase, error) {
	if id <= 0 {
		return models.Phase{}, errs.NewValidationError("phase", strconv.Itoa(id),
			fmt.Errorf("phase id must be positive"))
	}
	phase, err := s.registry.Phases.GetByID(ctx, strconv.Itoa(id))
	if err != nil {
		return models.Phase{}, errs.WrapService("phase.get", err)
	}
	return phase, nil
}

func (s *PhaseService) GetAllPhases(ctx context.Context) ([]models.Phase, error) {
	phases, err := s.registry.Phases.GetAll(ctx)
	if err != nil {
		return nil, errs.WrapService("phase.get-all", err)
	}
	return phases, nil
}
