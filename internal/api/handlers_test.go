package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/tonglam/letletme-data-sub006/internal/domain"
	"github.com/tonglam/letletme-data-sub006/internal/pkg/cache"
	"github.com/tonglam/letletme-data-sub006/internal/pkg/config"
	"github.com/tonglam/letletme-data-sub006/internal/pkg/enums"
	"github.com/tonglam/letletme-data-sub006/internal/pkg/models"
	"github.com/tonglam/letletme-data-sub006/internal/service"
)

type bucketStore struct {
	buckets map[string]map[string]string
}

func newBucketStore() *bucketStore {
	return &bucketStore{buckets: make(map[string]map[string]string)}
}

func (s *bucketStore) GetField(ctx context.Context, key, field string) (string, bool, error) {
	v, ok := s.buckets[key][field]
	return v, ok, nil
}

func (s *bucketStore) GetBucket(ctx context.Context, key string) (map[string]string, error) {
	out := make(map[string]string, len(s.buckets[key]))
	for f, v := range s.buckets[key] {
		out[f] = v
	}
	return out, nil
}

func (s *bucketStore) SetField(ctx context.Context, key, field, value string) error {
	if s.buckets[key] == nil {
		s.buckets[key] = make(map[string]string)
	}
	s.buckets[key][field] = value
	return nil
}

func (s *bucketStore) ReplaceBucket(ctx context.Context, key string, fields map[string]string) error {
	bucket := make(map[string]string, len(fields))
	for f, v := range fields {
		bucket[f] = v
	}
	s.buckets[key] = bucket
	return nil
}

func (s *bucketStore) DeleteBucket(ctx context.Context, key string) error {
	delete(s.buckets, key)
	return nil
}

type eventRepo struct {
	rows map[string]models.Event
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
	return rows, nil
}

func (r *eventRepo) DeleteAll(ctx context.Context) error { return nil }

func (r *eventRepo) DeleteByIDs(ctx context.Context, ids []string) error { return nil }

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	repo := &eventRepo{rows: make(map[string]models.Event)}
	for i := 1; i <= 38; i++ {
		e := models.Event{ID: i, Name: "Gameweek " + strconv.Itoa(i), IsCurrent: i == 5}
		repo.rows[e.CacheID()] = e
	}

	ops := domain.NewOps("event", newBucketStore(), cache.NewKey(enums.PrefixEvent, "2425"),
		repo, func(e models.Event) string { return e.CacheID() })
	registry := &domain.Registry{Events: ops}

	server := NewServer(&config.APIConfig{Port: 0}, &Services{
		Events: service.NewEventService(registry),
	})
	ts := httptest.NewServer(server.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func getJSON(t *testing.T, url string) (int, envelope) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()

	var body envelope
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode %s: %v", url, err)
	}
	return resp.StatusCode, body
}

func TestGetEventByID(t *testing.T) {
	ts := newTestServer(t)

	status, body := getJSON(t, ts.URL+"/api/events/12")
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	event, ok := body.Data.(map[string]any)
	if !ok || event["name"] != "Gameweek 12" {
		t.Fatalf("data = %+v", body.Data)
	}
}

func TestGetCurrentAndNextEvent(t *testing.T) {
	ts := newTestServer(t)

	status, body := getJSON(t, ts.URL+"/api/events/current")
	if status != http.StatusOK {
		t.Fatalf("current status = %d", status)
	}
	if event := body.Data.(map[string]any); event["id"] != float64(5) {
		t.Fatalf("current = %+v, want id 5", body.Data)
	}

	status, body = getJSON(t, ts.URL+"/api/events/next")
	if status != http.StatusOK {
		t.Fatalf("next status = %d", status)
	}
	if event := body.Data.(map[string]any); event["id"] != float64(6) {
		t.Fatalf("next = %+v, want id 6", body.Data)
	}
}

func TestInvalidIDIs400(t *testing.T) {
	ts := newTestServer(t)

	tests := []string{
		"/api/events/0",
		"/api/events/39",
		"/api/events/abc",
	}
	for _, path := range tests {
		status, body := getJSON(t, ts.URL+path)
		if status != http.StatusBadRequest {
			t.Fatalf("GET %s status = %d, want 400", path, status)
		}
		if body.Error == nil || body.Error.Code != "VALIDATION_ERROR" {
			t.Fatalf("GET %s error = %+v, want VALIDATION_ERROR", path, body.Error)
		}
		if body.Data != nil {
			t.Fatalf("GET %s carries data alongside error", path)
		}
	}
}

func TestErrorEnvelopeShape(t *testing.T) {
	ts := newTestServer(t)

	status, body := getJSON(t, ts.URL+"/api/events/0")
	if status != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", status)
	}
	if body.Error.Message == "" {
		t.Fatal("error envelope missing message")
	}
}
