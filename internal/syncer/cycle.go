// Package syncer orchestrates refresh cycles: fetch a snapshot from the
// source adapter, map it, replace the persisted rows, then replace the cache
// bucket from what was actually persisted. Cycles are strictly sequential and
// all-or-nothing; nothing here retries, that belongs to the transport.
package syncer

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/tonglam/letletme-data-sub006/internal/pkg/cache"
	"github.com/tonglam/letletme-data-sub006/internal/pkg/errs"
	"github.com/tonglam/letletme-data-sub006/internal/pkg/fplapi"
	"github.com/tonglam/letletme-data-sub006/internal/pkg/storage"
)

// Cycle is one refresh of one entity kind. R is the raw source shape, T the
// domain record.
type Cycle[R any, T any] struct {
	Entity string
	Scope  string

	// Fetch produces the raw snapshot. Typed *fplapi.FetchError and
	// *fplapi.ValidationError values classify the failure.
	Fetch func(ctx context.Context) ([]R, error)

	// Map transforms one raw record. A single failure aborts the whole
	// cycle before anything is deleted or written (fail-closed).
	Map func(R) (T, error)

	Repo  storage.Repository[T]
	Cache *cache.Cache[T]

	// After hooks recompute derived views once the bucket is replaced.
	After []func(ctx context.Context) error
}

// Run executes the cycle. Steps are ordered so the cache always ends up
// reflecting what is durable: the bucket is rebuilt from a re-read of the
// persisted rows, not from what was merely sent.
func (c *Cycle[R, T]) Run(ctx context.Context) error {
	started := time.Now()

	raws, err := c.Fetch(ctx)
	if err != nil {
		return c.classifyFetch(err)
	}

	mapped := make([]T, 0, len(raws))
	for _, raw := range raws {
		record, err := c.Map(raw)
		if err != nil {
			return errs.NewDataLayerError(errs.DataMappingError, c.Entity, c.Scope, err)
		}
		mapped = append(mapped, record)
	}

	if err := c.Repo.DeleteAll(ctx); err != nil {
		return errs.NewDataLayerError(errs.DataQueryError, c.Entity, c.Scope, err)
	}
	if _, err := c.Repo.SaveBatch(ctx, mapped); err != nil {
		return errs.NewDataLayerError(errs.DataQueryError, c.Entity, c.Scope, err)
	}

	persisted, err := c.Repo.FindAll(ctx)
	if err != nil {
		return errs.NewDataLayerError(errs.DataQueryError, c.Entity, c.Scope, err)
	}

	if err := c.Cache.SetMany(ctx, persisted); err != nil {
		return errs.NewDataLayerError(errs.DataOperationError, c.Entity, c.Scope, err)
	}

	for _, after := range c.After {
		if err := after(ctx); err != nil {
			return errs.NewDataLayerError(errs.DataOperationError, c.Entity, c.Scope, err)
		}
	}

	slog.Info("Sync cycle finished", "entity", c.Entity, "scope", c.Scope,
		"records", len(persisted), "duration", time.Since(started))
	return nil
}

func (c *Cycle[R, T]) classifyFetch(err error) error {
	var validationErr *fplapi.ValidationError
	if errors.As(err, &validationErr) {
		return errs.NewDataLayerError(errs.DataValidationError, c.Entity, c.Scope, err)
	}
	return errs.NewDataLayerError(errs.DataFetchError, c.Entity, c.Scope, err)
}
