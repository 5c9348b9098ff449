// Package cache implements the read-through/write-through bucket layer.
//
// One bucket holds every record of an entity kind for a scope, each record a
// serialized hash field keyed by its id. On miss the cache falls through to a
// provider (the repository, in production wiring) and writes the result back.
// Concurrent miss callers may each fill independently; last write wins, which
// is safe because the value is derived from the same source.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"
	"strconv"

	"github.com/tonglam/letletme-data-sub006/internal/pkg/errs"
)

// BucketStore is the transport the cache runs on. storage.RedisClient is the
// production implementation.
type BucketStore interface {
	GetField(ctx context.Context, key, field string) (string, bool, error)
	GetBucket(ctx context.Context, key string) (map[string]string, error)
	SetField(ctx context.Context, key, field, value string) error
	ReplaceBucket(ctx context.Context, key string, fields map[string]string) error
	DeleteBucket(ctx context.Context, key string) error
}

// Provider is the authoritative fallback consulted on miss.
type Provider[T any] interface {
	GetOne(ctx context.Context, id string) (T, bool, error)
	GetAll(ctx context.Context) ([]T, error)
}

// Cache is the read-through bucket for one entity kind and scope.
type Cache[T any] struct {
	store    BucketStore
	key      Key
	provider Provider[T]
	idOf     func(T) string
}

// New creates a cache over the given bucket. idOf extracts the hash field key
// from a record; it doubles as the discriminator check on reads.
func New[T any](store BucketStore, key Key, provider Provider[T], idOf func(T) string) *Cache[T] {
	return &Cache[T]{store: store, key: key, provider: provider, idOf: idOf}
}

// Key returns the bucket key.
func (c *Cache[T]) Key() Key {
	return c.key
}

// WarmUp populates the bucket from the provider in one shot. Any failure
// aborts with nothing partially visible.
func (c *Cache[T]) WarmUp(ctx context.Context) error {
	records, err := c.provider.GetAll(ctx)
	if err != nil {
		return errs.NewDatabaseError(c.key.Prefix.String(), c.key.String(), err)
	}
	return c.SetMany(ctx, records)
}

// Get returns the record with the given id. On bucket miss the provider is
// consulted and a hit written back; a record the provider does not have is
// not an error (found is false).
func (c *Cache[T]) Get(ctx context.Context, id string) (T, bool, error) {
	var zero T

	raw, hit, err := c.store.GetField(ctx, c.key.String(), id)
	if err != nil {
		return zero, false, errs.NewCacheError(errs.CacheOperation, c.key.Prefix.String(), c.key.String(), err)
	}
	if hit {
		record, err := c.decode(raw, id)
		if err != nil {
			return zero, false, err
		}
		return record, true, nil
	}

	record, found, err := c.provider.GetOne(ctx, id)
	if err != nil {
		return zero, false, errs.NewDatabaseError(c.key.Prefix.String(), c.key.String(), err)
	}
	if !found {
		return zero, false, nil
	}

	data, err := json.Marshal(record)
	if err != nil {
		return zero, false, errs.NewCacheError(errs.CacheSerialization, c.key.Prefix.String(), c.key.String(), err)
	}
	if err := c.store.SetField(ctx, c.key.String(), id, string(data)); err != nil {
		return zero, false, errs.NewCacheError(errs.CacheOperation, c.key.Prefix.String(), c.key.String(), err)
	}
	return record, true, nil
}

// GetAll returns every record in the bucket. An existing-but-empty bucket is
// indistinguishable from an absent one and treated as a miss, which defends
// against half-written buckets. Corrupt entries are filtered out, not fatal.
func (c *Cache[T]) GetAll(ctx context.Context) ([]T, error) {
	fields, err := c.store.GetBucket(ctx, c.key.String())
	if err != nil {
		return nil, errs.NewCacheError(errs.CacheOperation, c.key.Prefix.String(), c.key.String(), err)
	}

	if len(fields) == 0 {
		records, err := c.provider.GetAll(ctx)
		if err != nil {
			return nil, errs.NewDatabaseError(c.key.Prefix.String(), c.key.String(), err)
		}
		if err := c.SetMany(ctx, records); err != nil {
			return nil, err
		}
		return records, nil
	}

	ids := make([]string, 0, len(fields))
	for id := range fields {
		ids = append(ids, id)
	}
	sortIDs(ids)

	records := make([]T, 0, len(fields))
	for _, id := range ids {
		record, err := c.decode(fields[id], id)
		if err != nil {
			slog.Warn("Dropping corrupt cache entry", "key", c.key.String(), "field", id)
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

// Set writes one record into the bucket.
func (c *Cache[T]) Set(ctx context.Context, record T) error {
	data, err := json.Marshal(record)
	if err != nil {
		return errs.NewCacheError(errs.CacheSerialization, c.key.Prefix.String(), c.key.String(), err)
	}
	if err := c.store.SetField(ctx, c.key.String(), c.idOf(record), string(data)); err != nil {
		return errs.NewCacheError(errs.CacheOperation, c.key.Prefix.String(), c.key.String(), err)
	}
	return nil
}

// SetMany replaces the whole bucket: old contents deleted and new contents
// written before any reader observes a partial set.
func (c *Cache[T]) SetMany(ctx context.Context, records []T) error {
	fields := make(map[string]string, len(records))
	for _, record := range records {
		data, err := json.Marshal(record)
		if err != nil {
			return errs.NewCacheError(errs.CacheSerialization, c.key.Prefix.String(), c.key.String(), err)
		}
		fields[c.idOf(record)] = string(data)
	}

	if err := c.store.ReplaceBucket(ctx, c.key.String(), fields); err != nil {
		return errs.NewCacheError(errs.CacheOperation, c.key.Prefix.String(), c.key.String(), err)
	}
	return nil
}

// Invalidate drops the bucket entirely.
func (c *Cache[T]) Invalidate(ctx context.Context) error {
	if err := c.store.DeleteBucket(ctx, c.key.String()); err != nil {
		return errs.NewCacheError(errs.CacheOperation, c.key.Prefix.String(), c.key.String(), err)
	}
	return nil
}

// decode deserializes one entry. A record whose id does not match its field
// key is corrupt: the discriminator check catches entries written under the
// wrong field or truncated to defaults.
func (c *Cache[T]) decode(raw, id string) (T, error) {
	var record T
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		var zero T
		return zero, errs.NewCacheError(errs.CacheDeserialization, c.key.Prefix.String(), c.key.String(), err)
	}
	if c.idOf(record) != id {
		var zero T
		return zero, errs.NewCacheError(errs.CacheDeserialization, c.key.Prefix.String(), c.key.String(),
			errIDMismatch{field: id, got: c.idOf(record)})
	}
	return record, nil
}

type errIDMismatch struct {
	field string
	got   string
}

func (e errIDMismatch) Error() string {
	return "record id " + e.got + " does not match field " + e.field
}

// sortIDs orders numerically where possible so GetAll is deterministic.
func sortIDs(ids []string) {
	sort.Slice(ids, func(i, j int) bool {
		a, errA := strconv.Atoi(ids[i])
		b, errB := strconv.Atoi(ids[j])
		if errA == nil && errB == nil {
			return a < b
		}
		return ids[i] < ids[j]
	})
}
