package storage

import "errors"

var (
	// ErrNotFound indicates no value exists for the key.
	ErrNotFound = errors.New("storage: key not found")

	// ErrReadOnly indicates a write was attempted inside View.
	ErrReadOnly = errors.New("storage: read-only transaction")

	// ErrEmptyKey indicates an empty key.
	ErrEmptyKey = errors.New("storage: key is empty")

	// ErrKeyPartTooLong indicates a composite key part exceeds 65535 bytes.
	ErrKeyPartTooLong = errors.New("storage: key part too long")

	// ErrClosed indicates the database has been closed.
	ErrClosed = errors.New("storage: database closed")
)
