// Package storage is the host key/value store: point reads and writes grouped
// into transactions that either commit as a whole or leave no trace.
package storage

import (
	"sync"
)

// KVStore is the view of state inside one transaction.
type KVStore interface {
	// Get returns the value stored at key, or ErrNotFound.
	Get(key []byte) ([]byte, error)

	// Set stores value at key.
	Set(key, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(key []byte) error
}

// DB runs transactions against persistent state.
type DB interface {
	// View runs fn with a read-only store.
	View(fn func(KVStore) error) error

	// Update runs fn with a writable store. If fn returns an error every
	// write made through the store is discarded.
	Update(fn func(KVStore) error) error

	// Close releases the database.
	Close() error
}

// MemDB is an in-memory DB. Writes inside Update are buffered and applied
// only when fn returns nil.
type MemDB struct {
	mu     sync.RWMutex
	data   map[string][]byte
	closed bool
}

// Compile-time interface check.
var _ DB = (*MemDB)(nil)

// NewMemDB creates an empty in-memory database.
func NewMemDB() *MemDB {
	return &MemDB{data: make(map[string][]byte)}
}

// View runs fn with a read-only store.
func (db *MemDB) View(fn func(KVStore) error) error {
	db.mu.RLock()
	defer db.mu.RUnlock()
	if db.closed {
		return ErrClosed
	}
	return fn(&memView{data: db.data})
}

// Update runs fn with a buffered writable store.
func (db *MemDB) Update(fn func(KVStore) error) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.closed {
		return ErrClosed
	}

	c := &cacheStore{parent: db.data, writes: make(map[string][]byte), deleted: make(map[string]bool)}
	if err := fn(c); err != nil {
		return err
	}
	for k := range c.deleted {
		delete(db.data, k)
	}
	for k, v := range c.writes {
		db.data[k] = v
	}
	return nil
}

// Close marks the database closed.
func (db *MemDB) Close() error {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.closed = true
	return nil
}

// Len returns the number of stored keys.
func (db *MemDB) Len() int {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return len(db.data)
}

type memView struct {
	data map[string][]byte
}

func (v *memView) Get(key []byte) ([]byte, error) {
	if len(key) == 0 {
		return nil, ErrEmptyKey
	}
	val, ok := v.data[string(key)]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(val), nil
}

func (v *memView) Set(key, value []byte) error { return ErrReadOnly }

func (v *memView) Delete(key []byte) error { return ErrReadOnly }

// cacheStore layers uncommitted writes over a parent map.
type cacheStore struct {
	parent  map[string][]byte
	writes  map[string][]byte
	deleted map[string]bool
}

func (c *cacheStore) Get(key []byte) ([]byte, error) {
	if len(key) == 0 {
		return nil, ErrEmptyKey
	}
	k := string(key)
	if v, ok := c.writes[k]; ok {
		return clone(v), nil
	}
	if c.deleted[k] {
		return nil, ErrNotFound
	}
	v, ok := c.parent[k]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(v), nil
}

func (c *cacheStore) Set(key, value []byte) error {
	if len(key) == 0 {
		return ErrEmptyKey
	}
	k := string(key)
	delete(c.deleted, k)
	c.writes[k] = clone(value)
	return nil
}

func (c *cacheStore) Delete(key []byte) error {
	if len(key) == 0 {
		return ErrEmptyKey
	}
	k := string(key)
	delete(c.writes, k)
	c.deleted[k] = true
	return nil
}

func clone(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
