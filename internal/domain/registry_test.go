package domain

import (
	"context"
	"testing"

	"github.com/tonglam/letletme-data-sub006/internal/pkg/models"
)

type fakeFixtureSource struct {
	fixtures []models.Fixture
	calls    int
}

func (f *fakeFixtureSource) FindByID(ctx context.Context, id string) (models.Fixture, bool, error) {
	f.calls++
	for _, fx := range f.fixtures {
		if fx.CacheID() == id {
			return fx, true, nil
		}
	}
	return models.Fixture{}, false, nil
}

func (f *fakeFixtureSource) FindByTeam(ctx context.Context, teamID int) ([]models.Fixture, error) {
	f.calls++
	var out []models.Fixture
	for _, fx := range f.fixtures {
		if fx.HomeTeamID == teamID || fx.AwayTeamID == teamID {
			out = append(out, fx)
		}
	}
	return out, nil
}

func (f *fakeFixtureSource) FindByEvent(ctx context.Context, eventID int) ([]models.Fixture, error) {
	f.calls++
	var out []models.Fixture
	for _, fx := range f.fixtures {
		if fx.EventID == eventID {
			out = append(out, fx)
		}
	}
	return out, nil
}

func newFixtureRegistry(store *memStore, source *fakeFixtureSource) *Registry {
	return &Registry{store: store, season: "2425", fixRepo: source}
}

func TestEventFixturesFallsBackToEventQuery(t *testing.T) {
	store := newMemStore()
	source := &fakeFixtureSource{fixtures: []models.Fixture{
		{ID: 61, EventID: 7, HomeTeamID: 1, AwayTeamID: 2},
		{ID: 62, EventID: 7, HomeTeamID: 3, AwayTeamID: 4},
		{ID: 70, EventID: 8, HomeTeamID: 1, AwayTeamID: 3},
	}}
	r := newFixtureRegistry(store, source)
	ctx := context.Background()

	view := r.EventFixtures(7)
	got, err := view.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("GetAll = %d fixtures, want 2", len(got))
	}
	for _, f := range got {
		if f.EventID != 7 {
			t.Fatalf("fixture %d belongs to event %d, not 7", f.ID, f.EventID)
		}
	}
	if len(store.buckets[view.Key().String()]) != 2 {
		t.Fatal("miss did not fill the event bucket")
	}

	calls := source.calls
	if _, err := view.GetAll(ctx); err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if source.calls != calls {
		t.Fatal("warm read consulted the repository")
	}
}

func TestEventFixturesGetRejectsOtherEvent(t *testing.T) {
	source := &fakeFixtureSource{fixtures: []models.Fixture{
		{ID: 70, EventID: 8, HomeTeamID: 1, AwayTeamID: 3},
	}}
	r := newFixtureRegistry(newMemStore(), source)

	_, found, err := r.EventFixtures(7).Get(context.Background(), "70")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if found {
		t.Fatal("fixture from another event served by the event view")
	}
}

func TestTeamFixturesFallsBackToTeamQuery(t *testing.T) {
	store := newMemStore()
	source := &fakeFixtureSource{fixtures: []models.Fixture{
		{ID: 61, EventID: 7, HomeTeamID: 1, AwayTeamID: 2},
		{ID: 70, EventID: 8, HomeTeamID: 3, AwayTeamID: 1},
		{ID: 75, EventID: 8, HomeTeamID: 2, AwayTeamID: 4},
	}}
	r := newFixtureRegistry(store, source)

	got, err := r.TeamFixtures(1).GetAll(context.Background())
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("GetAll = %d fixtures, want 2", len(got))
	}
	for _, f := range got {
		if f.HomeTeamID != 1 && f.AwayTeamID != 1 {
			t.Fatalf("fixture %d does not involve team 1", f.ID)
		}
	}
}
