package badger

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/whattoread/ingest/core"
	"github.com/whattoread/ingest/storage"
)

// WorkRepository implements storage.WorkRepository for BadgerDB.
type WorkRepository struct {
	backend *Backend
}

var _ storage.WorkRepository = (*WorkRepository)(nil)

// NewWorkRepository creates a new WorkRepository.
func NewWorkRepository(backend *Backend) (*WorkRepository, error) {
	return &WorkRepository{
		backend: backend,
	}, nil
}

// Close releases resources. WorkRepository has no resources of its own;
// the backend is closed separately by its owner.
func (r *WorkRepository) Close() error {
	return nil
}

// UpsertWorks inserts works in a single write transaction. Keys already
// present are skipped without touching the stored row; any error discards
// the whole transaction, so the batch is all-or-nothing.
func (r *WorkRepository) UpsertWorks(ctx context.Context, works ...*core.Work) (int, error) {
	if len(works) == 0 {
		return 0, nil
	}

	inserted := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, work := range works {
			if err := core.ValidateWork(work); err != nil {
				return err
			}

			key := makeWorkKey(work.Key)
			_, err := tx.Get(key)
			if err == nil {
				// Existing row wins; never update.
				continue
			}
			if !errors.Is(err, badger.ErrKeyNotFound) {
				return err
			}

			value, err := storage.MarshalWork(work)
			if err != nil {
				return err
			}
			if err := tx.Set(key, value); err != nil {
				return err
			}
			inserted++
		}
		return tx.Commit()
	}, true)

	if err != nil {
		return 0, err
	}
	return inserted, nil
}

// GetWork retrieves a single work by its natural key.
func (r *WorkRepository) GetWork(ctx context.Context, key string) (*core.Work, error) {
	var work *core.Work
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeWorkKey(key))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		value, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		work, err = storage.UnmarshalWork(value)
		return err
	}, false)

	if err != nil {
		return nil, err
	}
	return work, nil
}

// CountWorks returns the total number of stored works.
func (r *WorkRepository) CountWorks(ctx context.Context) (int64, error) {
	var count int64
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(workPrefix + ":")
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)

	if err != nil {
		return 0, err
	}
	return count, nil
}
