package service

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"

	"github.com/tonglam/letletme-data-sub006/internal/domain"
	"github.com/tonglam/letletme-data-sub006/internal/pkg/cache"
	"github.com/tonglam/letletme-data-sub006/internal/pkg/enums"
	"github.com/tonglam/letletme-data-sub006/internal/pkg/errs"
	"github.com/tonglam/letletme-data-sub006/internal/pkg/models"
)

// bucketStore is an in-memory stand-in for the Redis wrapper.
type bucketStore struct {
	mu      sync.Mutex
	buckets map[string]map[string]string
	reads   int
}

func newBucketStore() *bucketStore {
	return &bucketStore{buckets: make(map[string]map[string]string)}
}

func (s *bucketStore) GetField(ctx context.Context, key, field string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reads++
	v, ok := s.buckets[key][field]
	return v, ok, nil
}

func (s *bucketStore) GetBucket(ctx context.Context, key string) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reads++
	out := make(map[string]string, len(s.buckets[key]))
	for f, v := range s.buckets[key] {
		out[f] = v
	}
	return out, nil
}

func (s *bucketStore) SetField(ctx context.Context, key, field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.buckets[key] == nil {
		s.buckets[key] = make(map[string]string)
	}
	s.buckets[key][field] = value
	return nil
}

func (s *bucketStore) ReplaceBucket(ctx context.Context, key string, fields map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	bucket := make(map[string]string, len(fields))
	for f, v := range fields {
		bucket[f] = v
	}
	s.buckets[key] = bucket
	return nil
}

func (s *bucketStore) DeleteBucket(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.buckets, key)
	return nil
}

// eventRepo is an in-memory Repository[models.Event].
type eventRepo struct {
	rows map[string]models.Event
}

func newEventRepo(events ...models.Event) *eventRepo {
	r := &eventRepo{rows: make(map[string]models.Event)}
	for _, e := range events {
		r.rows[e.CacheID()] = e
	}
	return r
}

func (r *eventRepo) FindAll(ctx context.Context) ([]models.Event, error) {
	out := make([]models.Event, 0, len(r.rows))
	for _, e := range r.rows {
		out = append(out, e)
	}
	return out, nil
}

func (r *eventRepo) FindByID(ctx context.Context, id string) (models.Event, bool, error) {
	e, ok := r.rows[id]
	return e, ok, nil
}

func (r *eventRepo) FindByIDs(ctx context.Context, ids []string) ([]models.Event, error) {
	var out []models.Event
	for _, id := range ids {
		if e, ok := r.rows[id]; ok {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *eventRepo) SaveBatch(ctx context.Context, rows []models.Event) ([]models.Event, error) {
	for _, e := range rows {
		if _, exists := r.rows[e.CacheID()]; !exists {
			r.rows[e.CacheID()] = e
		}
	}
	return rows, nil
}

func (r *eventRepo) DeleteAll(ctx context.Context) error {
	r.rows = make(map[string]models.Event)
	return nil
}

func (r *eventRepo) DeleteByIDs(ctx context.Context, ids []string) error {
	for _, id := range ids {
		delete(r.rows, id)
	}
	return nil
}

// seasonEvents builds a full 38-event season with the given current event.
func seasonEvents(currentID int) []models.Event {
	events := make([]models.Event, 0, 38)
	for i := 1; i <= 38; i++ {
		events = append(events, models.Event{
			ID:        i,
			Name:      "Gameweek " + strconv.Itoa(i),
			IsCurrent: i == currentID,
			IsNext:    i == currentID+1,
			Finished:  i < currentID,
		})
	}
	return events
}

func newEventService(store *bucketStore, events ...models.Event) *EventService {
	ops := domain.NewOps("event", store, cache.NewKey(enums.PrefixEvent, "2425"),
		newEventRepo(events...), func(e models.Event) string { return e.CacheID() })
	return NewEventService(&domain.Registry{Events: ops})
}

func TestGetEventValidatesRange(t *testing.T) {
	store := newBucketStore()
	s := newEventService(store, seasonEvents(5)...)

	for _, id := range []int{0, -3, 39, 100} {
		_, err := s.GetEvent(context.Background(), id)
		var domainErr *errs.DomainError
		if !errors.As(err, &domainErr) || domainErr.Code != errs.DomainValidationError {
			t.Fatalf("GetEvent(%d) = %v, want VALIDATION_ERROR", id, err)
		}
	}
	if store.reads != 0 {
		t.Fatal("invalid ids must be rejected before any cache access")
	}
}

func TestGetEvent(t *testing.T) {
	s := newEventService(newBucketStore(), seasonEvents(5)...)

	event, err := s.GetEvent(context.Background(), 12)
	if err != nil {
		t.Fatalf("GetEvent: %v", err)
	}
	if event.Name != "Gameweek 12" {
		t.Fatalf("event = %+v", event)
	}
}

func TestGetEventMissingIsNotFound(t *testing.T) {
	// Valid id, but the season only has events 1..10 synced.
	s := newEventService(newBucketStore(), seasonEvents(5)[:10]...)

	_, err := s.GetEvent(context.Background(), 30)
	var domainErr *errs.DomainError
	if !errors.As(err, &domainErr) || domainErr.Code != errs.DomainNotFound {
		t.Fatalf("err = %v, want NOT_FOUND", err)
	}
}

func TestCurrentNextLastEvent(t *testing.T) {
	s := newEventService(newBucketStore(), seasonEvents(5)...)
	ctx := context.Background()

	current, err := s.GetCurrentEvent(ctx)
	if err != nil {
		t.Fatalf("GetCurrentEvent: %v", err)
	}
	if current.ID != 5 {
		t.Fatalf("current = %d, want 5", current.ID)
	}

	next, err := s.GetNextEvent(ctx)
	if err != nil {
		t.Fatalf("GetNextEvent: %v", err)
	}
	if next.ID != 6 {
		t.Fatalf("next = %d, want 6", next.ID)
	}

	last, err := s.GetLastEvent(ctx)
	if err != nil {
		t.Fatalf("GetLastEvent: %v", err)
	}
	if last.ID != 4 {
		t.Fatalf("last = %d, want 4", last.ID)
	}
}

func TestNextEventAtSeasonEnd(t *testing.T) {
	s := newEventService(newBucketStore(), seasonEvents(38)...)

	_, err := s.GetNextEvent(context.Background())
	var domainErr *errs.DomainError
	if !errors.As(err, &domainErr) || domainErr.Code != errs.DomainNotFound {
		t.Fatalf("err = %v, want NOT_FOUND", err)
	}
}

func TestLastEventAtSeasonStart(t *testing.T) {
	s := newEventService(newBucketStore(), seasonEvents(1)...)

	_, err := s.GetLastEvent(context.Background())
	var domainErr *errs.DomainError
	if !errors.As(err, &domainErr) || domainErr.Code != errs.DomainNotFound {
		t.Fatalf("err = %v, want NOT_FOUND", err)
	}
}

func TestCurrentEventPreSeason(t *testing.T) {
	s := newEventService(newBucketStore(), seasonEvents(0)...)

	_, err := s.GetCurrentEvent(context.Background())
	var domainErr *errs.DomainError
	if !errors.As(err, &domainErr) || domainErr.Code != errs.DomainNotFound {
		t.Fatalf("err = %v, want NOT_FOUND", err)
	}
}

func TestGetAllEvents(t *testing.T) {
	s := newEventService(newBucketStore(), seasonEvents(5)...)

	events, err := s.GetAllEvents(context.Background())
	if err != nil {
		t.Fatalf("GetAllEvents: %v", err)
	}
	if len(events) != 38 {
		t.Fatalf("events = %d, want 38", len(events))
	}
}
