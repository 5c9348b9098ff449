package domain

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/tonglam/letletme-data-sub006/internal/pkg/cache"
	"github.com/tonglam/letletme-data-sub006/internal/pkg/enums"
	"github.com/tonglam/letletme-data-sub006/internal/pkg/errs"
)

type row struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func rowID(r row) string { return strconv.Itoa(r.ID) }

type rowRepo struct {
	rows map[string]row
}

func newRowRepo(rows ...row) *rowRepo {
	r := &rowRepo{rows: make(map[string]row)}
	for _, v := range rows {
		r.rows[rowID(v)] = v
	}
	return r
}

func (r *rowRepo) FindAll(ctx context.Context) ([]row, error) {
	out := make([]row, 0, len(r.rows))
	for _, v := range r.rows {
		out = append(out, v)
	}
	return out, nil
}

func (r *rowRepo) FindByID(ctx context.Context, id string) (row, bool, error) {
	v, ok := r.rows[id]
	return v, ok, nil
}

func (r *rowRepo) FindByIDs(ctx context.Context, ids []string) ([]row, error) {
	var out []row
	for _, id := range ids {
		if v, ok := r.rows[id]; ok {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *rowRepo) SaveBatch(ctx context.Context, rows []row) ([]row, error) {
	for _, v := range rows {
		if _, exists := r.rows[rowID(v)]; !exists {
			r.rows[rowID(v)] = v
		}
	}
	return rows, nil
}

func (r *rowRepo) DeleteAll(ctx context.Context) error {
	r.rows = make(map[string]row)
	return nil
}

func (r *rowRepo) DeleteByIDs(ctx context.Context, ids []string) error {
	for _, id := range ids {
		delete(r.rows, id)
	}
	return nil
}

type memStore struct {
	buckets map[string]map[string]string
}

func newMemStore() *memStore {
	return &memStore{buckets: make(map[string]map[string]string)}
}

func (s *memStore) GetField(ctx context.Context, key, field string) (string, bool, error) {
	v, ok := s.buckets[key][field]
	return v, ok, nil
}

func (s *memStore) GetBucket(ctx context.Context, key string) (map[string]string, error) {
	out := make(map[string]string, len(s.buckets[key]))
	for f, v := range s.buckets[key] {
		out[f] = v
	}
	return out, nil
}

func (s *memStore) SetField(ctx context.Context, key, field, value string) error {
	if s.buckets[key] == nil {
		s.buckets[key] = make(map[string]string)
	}
	s.buckets[key][field] = value
	return nil
}

func (s *memStore) ReplaceBucket(ctx context.Context, key string, fields map[string]string) error {
	bucket := make(map[string]string, len(fields))
	for f, v := range fields {
		bucket[f] = v
	}
	s.buckets[key] = bucket
	return nil
}

func (s *memStore) DeleteBucket(ctx context.Context, key string) error {
	delete(s.buckets, key)
	return nil
}

func newTestOps(store *memStore, repo *rowRepo) *Ops[row] {
	return NewOps("row", store, cache.NewKey(enums.PrefixTeam, "2425"), repo, rowID)
}

func TestGetByIDAbsentIsNotFound(t *testing.T) {
	ops := newTestOps(newMemStore(), newRowRepo())

	_, err := ops.GetByID(context.Background(), "7")
	var domainErr *errs.DomainError
	if !errors.As(err, &domainErr) || domainErr.Code != errs.DomainNotFound {
		t.Fatalf("err = %v, want NOT_FOUND", err)
	}
}

func TestGetByIDReadsThrough(t *testing.T) {
	store := newMemStore()
	ops := newTestOps(store, newRowRepo(row{ID: 7, Name: "seven"}))

	got, err := ops.GetByID(context.Background(), "7")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Name != "seven" {
		t.Fatalf("got %+v", got)
	}
	// The miss must have written the record back into the bucket.
	if _, ok := store.buckets[ops.Cache().Key().String()]["7"]; !ok {
		t.Fatal("miss was not written back")
	}
}

func TestDeleteAllLeavesCacheUntouched(t *testing.T) {
	store := newMemStore()
	repo := newRowRepo(row{ID: 1, Name: "a"})
	ops := newTestOps(store, repo)
	ctx := context.Background()

	if _, err := ops.GetAll(ctx); err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if err := ops.DeleteAll(ctx); err != nil {
		t.Fatalf("DeleteAll: %v", err)
	}

	// Destructive repo writes deliberately do not invalidate; the caller
	// pairs them with InvalidateCache when both are meant.
	if len(store.buckets[ops.Cache().Key().String()]) != 1 {
		t.Fatal("DeleteAll touched the cache bucket")
	}
	if err := ops.InvalidateCache(ctx); err != nil {
		t.Fatalf("InvalidateCache: %v", err)
	}
	if len(store.buckets[ops.Cache().Key().String()]) != 0 {
		t.Fatal("InvalidateCache left the bucket")
	}
}
