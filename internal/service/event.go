// Package service holds the use-case entry points the API layer calls. Each
// method validates its input before touching the cache, reads through the
// domain operation sets, and translates failures into the service taxonomy.
package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/tonglam/letletme-data-sub006/internal/domain"
	"github.com/tonglam/letletme-data-sub006/internal/pkg/errs"
	"github.com/tonglam/letletme-data-sub006/internal/pkg/models"
)

// Event ids run 1..38, one per round of the season.
const (
	minEventID = 1
	maxEventID = 38
)

// EventService serves event reads.
type EventService struct {
	registry *domain.Registry
}

func NewEventService(registry *domain.Registry) *EventService {
	return &EventService{registry: registry}
}

// GetEvent returns one event by id.
func (s *EventService) GetEvent(ctx context.Context, id int) (models.Event, error) {
	if err := validateEventID(id); err != nil {
		return models.Event{}, err
	}
	event, err := s.registry.Events.GetByID(ctx, strconv.Itoa(id))
	if err != nil {
		return models.Event{}, errs.WrapService("event.get", err)
	}
	return event, nil
}

// GetAllEvents returns the full event collection.
func (s *EventService) GetAllEvents(ctx context.Context) ([]models.Event, error) {
	events, err := s.registry.Events.GetAll(ctx)
	if err != nil {
		return nil, errs.WrapService("event.get-all", err)
	}
	return events, nil
}

// GetCurrentEvent returns the event flagged current. Pre-season there is
// none, which is NOT_FOUND.
func (s *EventService) GetCurrentEvent(ctx context.Context) (models.Event, error) {
	current, err := s.currentEvent(ctx)
	if err != nil {
		return models.Event{}, errs.WrapService("event.get-current", err)
	}
	return current, nil
}

// GetNextEvent returns the event after the current one, by id arithmetic.
// The last round of the season has no next event.
func (s *EventService) GetNextEvent(ctx context.Context) (models.Event, error) {
	current, err := s.currentEvent(ctx)
	if err != nil {
		return models.Event{}, errs.WrapService("event.get-next", err)
	}
	if current.ID >= maxEventID {
		return models.Event{}, errs.NewNotFound("event", strconv.Itoa(current.ID+1))
	}
	next, err := s.registry.Events.GetByID(ctx, strconv.Itoa(current.ID+1))
	if err != nil {
		return models.Event{}, errs.WrapService("event.get-next", err)
	}
	return next, nil
}

// GetLastEvent returns the event before the current one, by id arithmetic.
// The first round has no last event.
func (s *EventService) GetLastEvent(ctx context.Context) (models.Event, error) {
	current, err := s.currentEvent(ctx)
	if err != nil {
		return models.Event{}, errs.WrapService("event.get-last", err)
	}
	if current.ID <= minEventID {
		return models.Event{}, errs.NewNotFound("event", strconv.Itoa(current.ID-1))
	}
	last, err := s.registry.Events.GetByID(ctx, strconv.Itoa(current.ID-1))
	if err != nil {
		return models.Event{}, errs.WrapService("event.get-last", err)
	}
	return last, nil
}

func (s *EventService) currentEvent(ctx context.Context) (models.Event, error) {
	events, err := s.registry.Events.GetAll(ctx)
	if err != nil {
		return models.Event{}, err
	}
	for _, e := range events {
		if e.IsCurrent {
			return e, nil
		}
	}
	return models.Event{}, errs.NewNotFound("event", "current")
}

func validateEventID(id int) error {
	if id < minEventID || id > maxEventID {
		return errs.NewValidationError("event", strconv.Itoa(id),
			fmt.Errorf("event id must be between %d and %d", minEventID, maxEventID))
	}
	return nil
}
