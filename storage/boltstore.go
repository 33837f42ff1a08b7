package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"go.etcd.io/bbolt"
)

var bucketState = []byte("state")

// BoltDB is a DB backed by a bbolt file. Each Update is one bbolt
// read-write transaction, so a failed request rolls back on disk too.
type BoltDB struct {
	db *bbolt.DB
}

// Compile-time interface check.
var _ DB = (*BoltDB)(nil)

// OpenBoltDB opens or creates the bbolt database at dbPath.
// The parent directory is created if it does not exist.
func OpenBoltDB(dbPath string) (*BoltDB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("storage: create directory: %w", err)
	}
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("storage: open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketState); err != nil {
			return fmt.Errorf("boltstore: create bucket %q: %w", bucketState, err)
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("storage: create buckets: %w", err)
	}

	return &BoltDB{db: db}, nil
}

// Path returns the database file path.
func (s *BoltDB) Path() string { return s.db.Path() }

// Close closes the underlying database.
func (s *BoltDB) Close() error { return s.db.Close() }

// View runs fn inside a bbolt read-only transaction.
func (s *BoltDB) View(fn func(KVStore) error) error {
	return s.db.View(func(tx *bbolt.Tx) error {
		return fn(&boltKV{b: tx.Bucket(bucketState)})
	})
}

// Update runs fn inside a bbolt read-write transaction.
func (s *BoltDB) Update(fn func(KVStore) error) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return fn(&boltKV{b: tx.Bucket(bucketState), writable: true})
	})
}

type boltKV struct {
	b        *bbolt.Bucket
	writable bool
}

func (kv *boltKV) Get(key []byte) ([]byte, error) {
	if len(key) == 0 {
		return nil, ErrEmptyKey
	}
	v := kv.b.Get(key)
	if v == nil {
		return nil, ErrNotFound
	}
	// bbolt values are only valid for the life of the transaction.
	return clone(v), nil
}

func (kv *boltKV) Set(key, value []byte) error {
	if !kv.writable {
		return ErrReadOnly
	}
	if len(key) == 0 {
		return ErrEmptyKey
	}
	if err := kv.b.Put(key, value); err != nil {
		return fmt.Errorf("boltstore: put: %w", err)
	}
	return nil
}

func (kv *boltKV) Delete(key []byte) error {
	if !kv.writable {
		return ErrReadOnly
	}
	if len(key) == 0 {
		return ErrEmptyKey
	}
	if err := kv.b.Delete(key); err != nil {
		return fmt.Errorf("boltstore: delete: %w", err)
	}
	return nil
}
