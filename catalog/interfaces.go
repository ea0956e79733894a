package catalog

import (
	"context"

	"github.com/astrodine/menusearch/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// Search finds dishes similar to the given vector, restricted to records
	// the filter accepts. A nil filter means no restriction. Returns up to
	// limit hits ordered by similarity score (highest first).
	Search(ctx context.Context, vector []float32, filter *Filter, limit int) ([]core.SearchHit, error)

	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	// The context passed to fn may contain transaction state.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// DishRepository provides operations for managing dish records.
type DishRepository interface {
	Repository

	// AddDishes adds one or more dishes to storage.
	// IDs are derived from dish content, so re-adding the same dish
	// overwrites the stored record rather than duplicating it.
	// Sets InsertedAt timestamp if not already set.
	// Returns the records with IDs and timestamps populated.
	AddDishes(ctx context.Context, records ...*core.DishRecord) ([]*core.DishRecord, error)

	// UpdateVectors replaces the embedding vectors of existing records.
	// Updates the UpdatedAt timestamp automatically.
	// Returns ErrNotFound if any record doesn't exist.
	UpdateVectors(ctx context.Context, records ...*core.DishRecord) error

	// DeleteDishes removes dish records by their IDs.
	// Returns ErrNotFound if any record doesn't exist.
	DeleteDishes(ctx context.Context, ids ...core.ID) error

	// GetDish retrieves a single dish record by ID.
	// Returns ErrNotFound if the record doesn't exist.
	GetDish(ctx context.Context, id core.ID) (*core.DishRecord, error)

	// GetDishByName finds a dish record by its exact name.
	// Returns ErrNotFound if no dish carries that name.
	GetDishByName(ctx context.Context, name string) (*core.DishRecord, error)

	// ListDishes streams every stored record to fn in key order.
	// Iteration stops at the first error fn returns.
	ListDishes(ctx context.Context, fn func(record *core.DishRecord) error) error

	// CountDishes returns the number of stored dish records.
	CountDishes(ctx context.Context) (int, error)
}
