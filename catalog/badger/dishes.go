package badger

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/astrodine/menusearch/catalog"
	"github.com/astrodine/menusearch/core"
)

// DishRepository implements catalog.DishRepository for BadgerDB.
type DishRepository struct {
	backend *Backend
}

var _ catalog.DishRepository = (*DishRepository)(nil)

// NewDishRepository creates a new DishRepository on an open backend.
func NewDishRepository(backend *Backend) (*DishRepository, error) {
	return &DishRepository{backend: backend}, nil
}

// NewRepository opens a BadgerDB database at path and returns a dish
// repository on it. The caller owns the repository and must Close it,
// which also closes the underlying database.
func NewRepository(path string) (catalog.DishRepository, error) {
	backend, err := OpenBackend(path, false)
	if err != nil {
		return nil, err
	}
	return &ownedRepository{DishRepository: DishRepository{backend: backend}}, nil
}

// NewMemoryRepository creates an in-memory dish repository for testing.
func NewMemoryRepository() (catalog.DishRepository, error) {
	backend, err := OpenBackend("", true)
	if err != nil {
		return nil, err
	}
	return &ownedRepository{DishRepository: DishRepository{backend: backend}}, nil
}

// ownedRepository is a repository that owns its backend and closes it.
type ownedRepository struct {
	DishRepository
}

func (r *ownedRepository) Close() error {
	return r.backend.Close()
}

// Close is a no-op for repositories on a shared backend; the backend owner
// closes the database.
func (r *DishRepository) Close() error {
	return nil
}

// Search delegates to the backend.
func (r *DishRepository) Search(ctx context.Context, vector []float32, filter *catalog.Filter, limit int) ([]core.SearchHit, error) {
	return r.backend.Search(ctx, vector, filter, limit)
}

// WithTransaction delegates to the backend.
func (r *DishRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddDishes adds one or more dish records to storage.
// IDs are derived from dish content, so re-adding the same dish overwrites
// the stored record rather than duplicating it.
func (r *DishRepository) AddDishes(ctx context.Context, records ...*core.DishRecord) ([]*core.DishRecord, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, record := range records {
			if record.Id == 0 {
				record.Id = core.IDFromContent(record.Dish.EmbeddingText())
			}
			if record.InsertedAt.IsZero() {
				record.InsertedAt = time.Now().UTC()
			}
			record.UpdatedAt = record.InsertedAt

			key := makeDishRecordKey(record.Id)
			value, err := catalog.MarshalDishRecord(record)
			if err != nil {
				return err
			}
			if err := tx.Set(key, value); err != nil {
				return err
			}

			// Name index for exact-name lookup
			nameKey := makeDishNameKey(record.Dish.Name)
			if err := tx.Set(nameKey, catalog.MarshalID(record.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return records, err
}

// UpdateVectors replaces the embedding vectors of existing records.
func (r *DishRepository) UpdateVectors(ctx context.Context, records ...*core.DishRecord) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, record := range records {
			key := makeDishRecordKey(record.Id)
			stored, err := r.readDishRecord(tx, key)
			if err != nil {
				return err
			}
			if stored == nil {
				return catalog.ErrNotFound
			}

			stored.Vector = record.Vector
			stored.UpdatedAt = time.Now().UTC()

			value, err := catalog.MarshalDishRecord(stored)
			if err != nil {
				return err
			}
			if err := tx.Set(key, value); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// DeleteDishes removes dish records by their IDs.
func (r *DishRepository) DeleteDishes(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeDishRecordKey(id)

			record, err := r.readDishRecord(tx, key)
			if err != nil {
				return err
			}
			if record == nil {
				return catalog.ErrNotFound
			}

			if err := tx.Delete(makeDishNameKey(record.Dish.Name)); err != nil {
				return err
			}
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetDish retrieves a single dish record by ID.
func (r *DishRepository) GetDish(ctx context.Context, id core.ID) (*core.DishRecord, error) {
	var result *core.DishRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = r.readDishRecord(tx, makeDishRecordKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return catalog.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetDishByName finds a dish record by its exact name via the name index.
func (r *DishRepository) GetDishByName(ctx context.Context, name string) (*core.DishRecord, error) {
	var result *core.DishRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeDishNameKey(name))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return catalog.ErrNotFound
			}
			return err
		}

		var id core.ID
		if err := item.Value(func(val []byte) error {
			var err error
			id, err = catalog.UnmarshalID(val)
			return err
		}); err != nil {
			return err
		}

		result, err = r.readDishRecord(tx, makeDishRecordKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return catalog.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// ListDishes streams every stored record to fn in key order.
func (r *DishRepository) ListDishes(ctx context.Context, fn func(record *core.DishRecord) error) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(dishRecordPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			var record *core.DishRecord
			err := iter.Item().Value(func(val []byte) error {
				var err error
				record, err = catalog.UnmarshalDishRecord(val)
				return err
			})
			if err != nil {
				return err
			}
			if record == nil {
				continue
			}
			if err := fn(record); err != nil {
				return err
			}
		}
		return nil
	}, false)
}

// CountDishes returns the number of stored dish records.
func (r *DishRepository) CountDishes(ctx context.Context) (int, error) {
	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(dishRecordPrefix + ":")
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	return count, err
}

// readDishRecord reads a dish record from the transaction.
func (r *DishRepository) readDishRecord(tx *badger.Txn, key []byte) (*core.DishRecord, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var record *core.DishRecord
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		record, unmarshalErr = catalog.UnmarshalDishRecord(val)
		return unmarshalErr
	})
	return record, err
}
