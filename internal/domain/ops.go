// Package domain composes the cache and the repositories into the
// get/mutate contract the services consume. Reads go through the cache with
// the repository as provider; destructive writes go straight to the
// repository and deliberately do not invalidate the cache — callers that
// delete must invalidate explicitly.
package domain

import (
	"context"

	"github.com/tonglam/letletme-data-sub006/internal/pkg/cache"
	"github.com/tonglam/letletme-data-sub006/internal/pkg/errs"
	"github.com/tonglam/letletme-data-sub006/internal/pkg/storage"
)

// Ops is the per-entity operation set.
type Ops[T any] struct {
	entity string
	cache  *cache.Cache[T]
	repo   storage.Repository[T]
}

// NewOps wires a cache bucket and a repository into one operation set. The
// bucket's provider is the repository itself.
func NewOps[T any](entity string, store cache.BucketStore, key cache.Key, repo storage.Repository[T], idOf func(T) string) *Ops[T] {
	c := cache.New(store, key, &repoProvider[T]{repo: repo}, idOf)
	return &Ops[T]{entity: entity, cache: c, repo: repo}
}

// Cache exposes the underlying bucket for sync workflows that replace it
// wholesale.
func (o *Ops[T]) Cache() *cache.Cache[T] {
	return o.cache
}

// GetByID returns one record, read through the cache. Absence is NOT_FOUND.
func (o *Ops[T]) GetByID(ctx context.Context, id string) (T, error) {
	record, found, err := o.cache.Get(ctx, id)
	if err != nil {
		return record, err
	}
	if !found {
		var zero T
		return zero, errs.NewNotFound(o.entity, id)
	}
	return record, nil
}

// GetAll returns the full collection, read through the cache.
func (o *Ops[T]) GetAll(ctx context.Context) ([]T, error) {
	return o.cache.GetAll(ctx)
}

// DeleteAll removes every persisted row of the scope. It does not touch the
// cache: the asymmetry is intentional, see the package comment.
func (o *Ops[T]) DeleteAll(ctx context.Context) error {
	if err := o.repo.DeleteAll(ctx); err != nil {
		return errs.NewDatabaseError(o.entity, "", err)
	}
	return nil
}

// InvalidateCache drops the bucket. Offered separately so destructive
// callers can pair it with DeleteAll when they mean both.
func (o *Ops[T]) InvalidateCache(ctx context.Context) error {
	return o.cache.Invalidate(ctx)
}
