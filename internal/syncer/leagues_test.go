package syncer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/tonglam/letletme-data-sub006/internal/pkg/cache"
	"github.com/tonglam/letletme-data-sub006/internal/pkg/config"
	"github.com/tonglam/letletme-data-sub006/internal/pkg/enums"
	"github.com/tonglam/letletme-data-sub006/internal/pkg/errs"
	"github.com/tonglam/letletme-data-sub006/internal/pkg/fplapi"
	"github.com/tonglam/letletme-data-sub006/internal/pkg/models"
)

func newStandingsClient(serverURL string) *fplapi.Client {
	return fplapi.NewClient(&config.FPLConfig{
		BaseURL: serverURL + "/",
		Timeout: 5 * time.Second,
	})
}

// writeStandingsPage emits one standings page. Entries are numbered
// sequentially from firstEntry so order across pages is checkable.
func writeStandingsPage(w http.ResponseWriter, page, size, firstEntry int, hasNext bool) {
	results := ""
	for i := 0; i < size; i++ {
		if i > 0 {
			results += ","
		}
		entry := firstEntry + i
		results += fmt.Sprintf(`{"id": %d, "entry": %d, "entry_name": "t%d", "player_name": "p", "rank": %d}`,
			entry, entry, entry, entry)
	}
	fmt.Fprintf(w, `{"league": {"id": 314, "name": "Overall"}, "standings": {"has_next": %v, "page": %d, "results": [%s]}}`,
		hasNext, page, results)
}

type leagueMemRepo struct {
	mu      sync.Mutex
	rows    map[string]models.LeagueEntry
	deletes int
}

func newLeagueMemRepo() *leagueMemRepo {
	return &leagueMemRepo{rows: make(map[string]models.LeagueEntry)}
}

func (r *leagueMemRepo) FindAll(ctx context.Context) ([]models.LeagueEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.LeagueEntry, 0, len(r.rows))
	for _, row := range r.rows {
		out = append(out, row)
	}
	return out, nil
}

func (r *leagueMemRepo) FindByID(ctx context.Context, id string) (models.LeagueEntry, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id]
	return row, ok, nil
}

func (r *leagueMemRepo) FindByIDs(ctx context.Context, ids []string) ([]models.LeagueEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.LeagueEntry
	for _, id := range ids {
		if row, ok := r.rows[id]; ok {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *leagueMemRepo) SaveBatch(ctx context.Context, rows []models.LeagueEntry) ([]models.LeagueEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range rows {
		if _, exists := r.rows[row.CacheID()]; !exists {
			r.rows[row.CacheID()] = row
		}
	}
	return rows, nil
}

func (r *leagueMemRepo) DeleteAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deletes++
	r.rows = make(map[string]models.LeagueEntry)
	return nil
}

func (r *leagueMemRepo) DeleteByIDs(ctx context.Context, ids []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range ids {
		delete(r.rows, id)
	}
	return nil
}

type leagueRepoProvider struct {
	repo *leagueMemRepo
}

func (p *leagueRepoProvider) GetOne(ctx context.Context, id string) (models.LeagueEntry, bool, error) {
	return p.repo.FindByID(ctx, id)
}

func (p *leagueRepoProvider) GetAll(ctx context.Context) ([]models.LeagueEntry, error) {
	return p.repo.FindAll(ctx)
}

// newLeagueCycle mirrors the SyncLeague wiring over in-memory fakes.
func newLeagueCycle(client *fplapi.Client, repo *leagueMemRepo, store *memBucketStore) *Cycle[fplapi.RawStandingsEntry, models.LeagueEntry] {
	var leagueName string
	key := cache.NewKey(enums.PrefixLeague, "2425").WithSubscope("314")
	c := cache.New[models.LeagueEntry](store, key, &leagueRepoProvider{repo: repo},
		func(l models.LeagueEntry) string { return l.CacheID() })
	return &Cycle[fplapi.RawStandingsEntry, models.LeagueEntry]{
		Entity: "league",
		Scope:  "2425/league-314",
		Fetch: func(ctx context.Context) ([]fplapi.RawStandingsEntry, error) {
			rows, name, err := fetchAllStandings(ctx, client, 314)
			if err != nil {
				return nil, err
			}
			leagueName = name
			return rows, nil
		},
		Map: func(raw fplapi.RawStandingsEntry) (models.LeagueEntry, error) {
			return mapLeagueEntry(314, leagueName, raw)
		},
		Repo:  repo,
		Cache: c,
	}
}

func TestFetchAllStandingsAggregatesPagesInOrder(t *testing.T) {
	// Three pages of 50, 50 and 17 entries.
	sizes := []int{50, 50, 17}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page, err := strconv.Atoi(r.URL.Query().Get("page_standings"))
		if err != nil || page < 1 || page > len(sizes) {
			t.Errorf("unexpected page %q", r.URL.Query().Get("page_standings"))
			http.NotFound(w, r)
			return
		}
		firstEntry := 1
		for _, size := range sizes[:page-1] {
			firstEntry += size
		}
		writeStandingsPage(w, page, sizes[page-1], firstEntry, page < len(sizes))
	}))
	defer srv.Close()

	rows, name, err := fetchAllStandings(context.Background(), newStandingsClient(srv.URL), 314)
	if err != nil {
		t.Fatalf("fetchAllStandings: %v", err)
	}
	if name != "Overall" {
		t.Fatalf("league name = %q, want Overall", name)
	}
	if len(rows) != 117 {
		t.Fatalf("aggregated %d entries, want 117", len(rows))
	}
	for i, row := range rows {
		if row.Entry != i+1 {
			t.Fatalf("entry at %d = %d, want %d (source order lost)", i, row.Entry, i+1)
		}
	}
}

func TestFetchAllStandingsBoundsPagination(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		writeStandingsPage(w, requests, 1, requests, true)
	}))
	defer srv.Close()

	_, _, err := fetchAllStandings(context.Background(), newStandingsClient(srv.URL), 314)
	var validationErr *fplapi.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("err = %v, want *ValidationError", err)
	}
	if requests != maxStandingsPages {
		t.Fatalf("requests = %d, want %d", requests, maxStandingsPages)
	}
}

func TestLeagueCycleCarriesLeagueName(t *testing.T) {
	sizes := []int{2, 1}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page_standings"))
		firstEntry := 1
		for _, size := range sizes[:page-1] {
			firstEntry += size
		}
		writeStandingsPage(w, page, sizes[page-1], firstEntry, page < len(sizes))
	}))
	defer srv.Close()

	repo := newLeagueMemRepo()
	store := newMemBucketStore()
	cycle := newLeagueCycle(newStandingsClient(srv.URL), repo, store)

	if err := cycle.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	rows, _ := repo.FindAll(context.Background())
	if len(rows) != 3 {
		t.Fatalf("repo = %d rows, want 3", len(rows))
	}
	for _, row := range rows {
		if row.LeagueName != "Overall" {
			t.Fatalf("row %d league name = %q, want Overall", row.EntryID, row.LeagueName)
		}
	}
	bucket, _ := store.GetBucket(context.Background(), cycle.Cache.Key().String())
	if len(bucket) != 3 {
		t.Fatalf("bucket = %d fields, want 3", len(bucket))
	}
}

func TestLeagueCyclePageFailureDiscardsAggregation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page_standings") != "1" {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		writeStandingsPage(w, 1, 2, 1, true)
	}))
	defer srv.Close()

	repo := newLeagueMemRepo()
	repo.rows["9000"] = models.LeagueEntry{LeagueID: 314, EntryID: 9000, EntryName: "keep"}
	store := newMemBucketStore()
	cycle := newLeagueCycle(newStandingsClient(srv.URL), repo, store)

	err := cycle.Run(context.Background())
	var dataErr *errs.DataLayerError
	if !errors.As(err, &dataErr) || dataErr.Code != errs.DataFetchError {
		t.Fatalf("err = %v, want FETCH_ERROR", err)
	}
	if repo.deletes != 0 {
		t.Fatal("failed aggregation must not reach DeleteAll")
	}
	if _, ok := repo.rows["9000"]; !ok {
		t.Fatal("existing standings must survive a failed aggregation")
	}
	if len(store.buckets) != 0 {
		t.Fatal("failed aggregation must not touch the cache")
	}
}
