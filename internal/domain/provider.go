package domain

import (
	"context"

	"github.com/tonglam/letletme-data-sub006/internal/pkg/cache"
	"github.com/tonglam/letletme-data-sub006/internal/pkg/storage"
)

// repoProvider adapts a repository to the cache's provider contract, making
// the database the authoritative fallback on cache miss.
type repoProvider[T any] struct {
	repo storage.Repository[T]
}

var _ cache.Provider[any] = (*repoProvider[any])(nil)

func (p *repoProvider[T]) GetOne(ctx context.Context, id string) (T, bool, error) {
	return p.repo.FindByID(ctx, id)
}

func (p *repoProvider[T]) GetAll(ctx context.Context) ([]T, error) {
	return p.repo.FindAll(ctx)
}

// funcProvider builds a provider from plain functions, used for derived
// views whose fallback is a query rather than a whole-table read.
type funcProvider[T any] struct {
	getOne func(ctx context.Context, id string) (T, bool, error)
	getAll func(ctx context.Context) ([]T, error)
}

func (p *funcProvider[T]) GetOne(ctx context.Context, id string) (T, bool, error) {
	return p.getOne(ctx, id)
}

func (p *funcProvider[T]) GetAll(ctx context.Context) ([]T, error) {
	return p.getAll(ctx)
}
