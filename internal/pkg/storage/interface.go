package storage

import "context"

// Repository is the durable CRUD contract every entity repository satisfies.
// SaveBatch is idempotent: rows whose key already exists are skipped, not an
// error. The returned rows are what actually landed.
type Repository[T any] interface {
	// FindAll retrieves every row in the repository's scope.
	FindAll(ctx context.Context) ([]T, error)

	// FindByID retrieves one row by its natural (or composite) id.
	// Absence is not an error: found is false.
	FindByID(ctx context.Context, id string) (row T, found bool, err error)

	// FindByIDs retrieves the rows matching the given ids, in no particular
	// order. Missing ids are silently absent from the result.
	FindByIDs(ctx context.Context, ids []string) ([]T, error)

	// SaveBatch inserts rows, skipping duplicates.
	SaveBatch(ctx context.Context, rows []T) ([]T, error)

	// DeleteAll removes every row in the repository's scope.
	DeleteAll(ctx context.Context) error

	// DeleteByIDs removes the rows matching the given ids.
	DeleteByIDs(ctx context.Context, ids []string) error
}
