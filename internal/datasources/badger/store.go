// Package badger stores records as JSON documents in an embedded BadgerDB.
package badger

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/indiesound/artist-insights/internal/datasources"
	"github.com/indiesound/artist-insights/internal/domain"
)

var _ datasources.Store = (*Store)(nil)

// Store keeps each record under the key "<kind>/<id>". It has no change notifications;
// wrap it in a datasources.Poller to subscribe.
type Store struct {
	db *badger.DB
}

func New(db *badger.DB) *Store {
	return &Store{db: db}
}

// Open opens (or creates) a database directory. An empty path opens an in-memory database.
func Open(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	if path == "" {
		opts = opts.WithInMemory(true)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening badger database: %w", err)
	}
	return db, nil
}

func kindPrefix(kind domain.Kind) []byte {
	return []byte(string(kind) + "/")
}

func recordKey(kind domain.Kind, id string) []byte {
	return []byte(string(kind) + "/" + id)
}

func (s *Store) Query(ctx context.Context, spec datasources.QuerySpec) (domain.Snapshot, error) {
	logger := domain.LoggerFromContext(ctx)

	var snap domain.Snapshot
	err := s.db.View(func(txn *badger.Txn) error {
		for _, kind := range domain.Kinds {
			filter, ok := spec[kind]
			if !ok {
				continue
			}

			it := txn.NewIterator(badger.DefaultIteratorOptions)
			prefix := kindPrefix(kind)
			for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
				if err := ctx.Err(); err != nil {
					it.Close()
					return err
				}

				var fields datasources.Fields
				if err := it.Item().Value(func(val []byte) error {
					return json.Unmarshal(val, &fields)
				}); err != nil {
					it.Close()
					return fmt.Errorf("reading %s: %w", it.Item().Key(), err)
				}
				if !datasources.Matches(fields, filter) {
					continue
				}

				rec, err := datasources.DecodeRecord(kind, fields)
				if err != nil {
					logger.WarnContext(ctx, "skipping malformed record",
						"key", string(it.Item().Key()), "error", err)
					continue
				}
				if err := snap.Append(rec); err != nil {
					it.Close()
					return fmt.Errorf("building snapshot: %w", err)
				}
			}
			it.Close()
		}
		return nil
	})
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("querying badger store: %w", err)
	}

	return snap, nil
}

// Transact applies the batch in a single badger transaction, so it commits in full or
// not at all. Reads inside the transaction see its earlier operations.
func (s *Store) Transact(ctx context.Context, batch datasources.Batch) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		for i, op := range batch {
			key := recordKey(op.Kind, op.ID)

			current, err := getFields(txn, key)
			if err != nil {
				return err
			}

			next, err := datasources.ApplyOperation(current, op)
			if err != nil {
				return fmt.Errorf("applying operation %d of batch: %w", i, err)
			}

			if next == nil {
				if current != nil {
					if err := txn.Delete(key); err != nil {
						return fmt.Errorf("deleting %s: %w", key, err)
					}
				}
				continue
			}

			data, err := json.Marshal(next)
			if err != nil {
				return fmt.Errorf("encoding %s: %w", key, err)
			}
			if err := txn.Set(key, data); err != nil {
				return fmt.Errorf("writing %s: %w", key, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("committing badger batch: %w", err)
	}

	return nil
}

func getFields(txn *badger.Txn, key []byte) (datasources.Fields, error) {
	item, err := txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", key, err)
	}

	var fields datasources.Fields
	if err := item.Value(func(val []byte) error {
		return json.Unmarshal(val, &fields)
	}); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", key, err)
	}
	return fields, nil
}
