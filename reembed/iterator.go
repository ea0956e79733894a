package reembed

import (
	"context"

	"github.com/astrodine/menusearch/catalog"
	"github.com/astrodine/menusearch/core"
)

const (
	// DefaultBatchSize is the default number of records to process per batch
	DefaultBatchSize = 100
)

// DishIterator iterates over all stored dish records in batches.
type DishIterator struct {
	repo      catalog.DishRepository
	batchSize int
}

// NewDishIterator creates a new dish iterator.
// batchSize: number of records per batch (must be > 0)
func NewDishIterator(repo catalog.DishRepository, batchSize int) *DishIterator {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	return &DishIterator{
		repo:      repo,
		batchSize: batchSize,
	}
}

// ForEach iterates over all dish records, calling fn for each batch.
// Iteration stops on the first error from fn or when all records are
// processed. Context cancellation is checked between batches.
func (it *DishIterator) ForEach(ctx context.Context, fn func([]*core.DishRecord) error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	batch := make([]*core.DishRecord, 0, it.batchSize)
	err := it.repo.ListDishes(ctx, func(record *core.DishRecord) error {
		batch = append(batch, record)
		if len(batch) < it.batchSize {
			return nil
		}

		if err := fn(batch); err != nil {
			return err
		}
		batch = make([]*core.DishRecord, 0, it.batchSize)

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			return nil
		}
	})
	if err != nil {
		return err
	}

	if len(batch) > 0 {
		return fn(batch)
	}
	return nil
}
