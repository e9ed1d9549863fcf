// Package bolt stores record tables in an embedded bbolt file.
package bolt

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"

	"github.com/mamadbah2/stockroom/internal/store"
)

// DB is an open bbolt file holding one bucket pair per table.
type DB struct {
	db *bbolt.DB
}

// Open opens or creates the database file at path.
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create parent directory for bolt db: %w", err)
	}

	db, err := bbolt.Open(path, 0o600, &bbolt.Options{
		Timeout:      time.Second,
		FreelistType: bbolt.FreelistMapType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}
	return &DB{db: db}, nil
}

// Close closes the database file.
func (d *DB) Close() error {
	return d.db.Close()
}

type identified interface {
	RecordID() string
}

// Table returns the record source stored under name. Rows are kept in
// insertion order: the data bucket is keyed by a sequence number and a
// second bucket maps record ids to their sequence key.
func Table[T identified](d *DB, name string) store.Source[T] {
	return &tableSource[T]{
		db:   d.db,
		rows: []byte(name),
		ids:  []byte(name + ".ids"),
		name: name,
	}
}

type tableSource[T identified] struct {
	db   *bbolt.DB
	rows []byte
	ids  []byte
	name string
}

func (t *tableSource[T]) Name() string { return "bolt" }

func (t *tableSource[T]) List(ctx context.Context) ([]T, error) {
	records := make([]T, 0)
	err := t.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(t.rows)
		if bucket == nil {
			return nil
		}
		return bucket.ForEach(func(_, data []byte) error {
			var record T
			if err := json.Unmarshal(data, &record); err != nil {
				return fmt.Errorf("failed to unmarshal %s row: %w", t.name, err)
			}
			records = append(records, record)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (t *tableSource[T]) Insert(ctx context.Context, record T) (T, error) {
	if err := ctx.Err(); err != nil {
		var zero T
		return zero, err
	}

	err := t.db.Update(func(tx *bbolt.Tx) error {
		rows, ids, err := t.buckets(tx)
		if err != nil {
			return err
		}

		id := []byte(record.RecordID())
		if ids.Get(id) != nil {
			return fmt.Errorf("insert %s %s: %w", t.name, id, store.ErrDuplicateID)
		}

		seq, err := rows.NextSequence()
		if err != nil {
			return fmt.Errorf("failed to allocate %s key: %w", t.name, err)
		}
		key := make([]byte, 8)
		binary.BigEndian.PutUint64(key, seq)

		data, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("failed to marshal %s row: %w", t.name, err)
		}
		if err := rows.Put(key, data); err != nil {
			return err
		}
		return ids.Put(id, key)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return record, nil
}

func (t *tableSource[T]) Update(ctx context.Context, record T) (T, error) {
	if err := ctx.Err(); err != nil {
		var zero T
		return zero, err
	}

	err := t.db.Update(func(tx *bbolt.Tx) error {
		rows, ids, err := t.buckets(tx)
		if err != nil {
			return err
		}

		key := ids.Get([]byte(record.RecordID()))
		if key == nil {
			return fmt.Errorf("update %s %s: %w", t.name, record.RecordID(), store.ErrNotFound)
		}

		data, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("failed to marshal %s row: %w", t.name, err)
		}
		return rows.Put(key, data)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return record, nil
}

func (t *tableSource[T]) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return t.db.Update(func(tx *bbolt.Tx) error {
		rows, ids, err := t.buckets(tx)
		if err != nil {
			return err
		}

		key := ids.Get([]byte(id))
		if key == nil {
			return fmt.Errorf("delete %s %s: %w", t.name, id, store.ErrNotFound)
		}
		// key points into the transaction's memory; copy before deleting.
		key = append([]byte(nil), key...)

		if err := ids.Delete([]byte(id)); err != nil {
			return err
		}
		return rows.Delete(key)
	})
}

func (t *tableSource[T]) buckets(tx *bbolt.Tx) (*bbolt.Bucket, *bbolt.Bucket, error) {
	rows, err := tx.CreateBucketIfNotExists(t.rows)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create bucket %s: %w", t.rows, err)
	}
	ids, err := tx.CreateBucketIfNotExists(t.ids)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create bucket %s: %w", t.ids, err)
	}
	return rows, ids, nil
}
