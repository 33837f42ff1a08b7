package storage

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

// Codec converts values of T to and from stored bytes.
type Codec[T any] interface {
	Encode(v T) ([]byte, error)
	Decode(data []byte) (T, error)
}

// JSONCodec stores values as JSON.
type JSONCodec[T any] struct{}

// Encode implements Codec.
func (JSONCodec[T]) Encode(v T) ([]byte, error) { return json.Marshal(v) }

// Decode implements Codec.
func (JSONCodec[T]) Decode(data []byte) (T, error) {
	var v T
	err := json.Unmarshal(data, &v)
	return v, err
}

// ComposeKey joins namespace and parts into one key. Every element but the
// last carries a 2-byte big-endian length prefix, so ("ab","c") and
// ("a","bc") never collide.
func ComposeKey(namespace string, parts ...string) ([]byte, error) {
	all := append([]string{namespace}, parts...)
	size := 0
	for _, p := range all[:len(all)-1] {
		if len(p) > math.MaxUint16 {
			return nil, fmt.Errorf("%w: %d bytes", ErrKeyPartTooLong, len(p))
		}
		size += 2 + len(p)
	}
	last := all[len(all)-1]
	size += len(last)
	if size == 0 {
		return nil, ErrEmptyKey
	}

	key := make([]byte, 0, size)
	for _, p := range all[:len(all)-1] {
		key = binary.BigEndian.AppendUint16(key, uint16(len(p)))
		key = append(key, p...)
	}
	return append(key, last...), nil
}

// Item is a single typed value under a fixed key.
type Item[T any] struct {
	key   []byte
	codec Codec[T]
}

// NewItem creates a JSON-encoded item stored at namespace.
func NewItem[T any](namespace string) Item[T] {
	return Item[T]{key: []byte(namespace), codec: JSONCodec[T]{}}
}

// Load returns the stored value or an error wrapping ErrNotFound.
func (i Item[T]) Load(kv KVStore) (T, error) {
	return load(kv, i.key, i.codec)
}

// MayLoad returns the stored value and whether it exists.
func (i Item[T]) MayLoad(kv KVStore) (T, bool, error) {
	return mayLoad(kv, i.key, i.codec)
}

// Save stores v.
func (i Item[T]) Save(kv KVStore, v T) error {
	return save(kv, i.key, i.codec, v)
}

// Update loads the value (which must exist), applies fn and saves the result.
func (i Item[T]) Update(kv KVStore, fn func(T) (T, error)) (T, error) {
	return update(kv, i.key, i.codec, fn)
}

// Map is a family of typed values addressed by composite keys.
type Map[T any] struct {
	namespace string
	codec     Codec[T]
}

// NewMap creates a JSON-encoded map under namespace.
func NewMap[T any](namespace string) Map[T] {
	return Map[T]{namespace: namespace, codec: JSONCodec[T]{}}
}

// NewMapWithCodec creates a map under namespace using codec.
func NewMapWithCodec[T any](namespace string, codec Codec[T]) Map[T] {
	return Map[T]{namespace: namespace, codec: codec}
}

// Key returns the raw storage key for parts.
func (m Map[T]) Key(parts ...string) ([]byte, error) {
	return ComposeKey(m.namespace, parts...)
}

// Load returns the value at parts or an error wrapping ErrNotFound.
func (m Map[T]) Load(kv KVStore, parts ...string) (T, error) {
	key, err := m.Key(parts...)
	if err != nil {
		var zero T
		return zero, err
	}
	return load(kv, key, m.codec)
}

// MayLoad returns the value at parts and whether it exists.
func (m Map[T]) MayLoad(kv KVStore, parts ...string) (T, bool, error) {
	key, err := m.Key(parts...)
	if err != nil {
		var zero T
		return zero, false, err
	}
	return mayLoad(kv, key, m.codec)
}

// Has reports whether a value exists at parts.
func (m Map[T]) Has(kv KVStore, parts ...string) (bool, error) {
	_, ok, err := m.MayLoad(kv, parts...)
	return ok, err
}

// Save stores v at parts.
func (m Map[T]) Save(kv KVStore, v T, parts ...string) error {
	key, err := m.Key(parts...)
	if err != nil {
		return err
	}
	return save(kv, key, m.codec, v)
}

// Remove deletes the value at parts.
func (m Map[T]) Remove(kv KVStore, parts ...string) error {
	key, err := m.Key(parts...)
	if err != nil {
		return err
	}
	return kv.Delete(key)
}

// Update loads the value at parts (which must exist), applies fn and saves
// the result.
func (m Map[T]) Update(kv KVStore, fn func(T) (T, error), parts ...string) (T, error) {
	key, err := m.Key(parts...)
	if err != nil {
		var zero T
		return zero, err
	}
	return update(kv, key, m.codec, fn)
}

func load[T any](kv KVStore, key []byte, codec Codec[T]) (T, error) {
	v, ok, err := mayLoad(kv, key, codec)
	if err != nil {
		return v, err
	}
	if !ok {
		return v, fmt.Errorf("%w: %q", ErrNotFound, key)
	}
	return v, nil
}

func mayLoad[T any](kv KVStore, key []byte, codec Codec[T]) (T, bool, error) {
	var zero T
	data, err := kv.Get(key)
	if errors.Is(err, ErrNotFound) {
		return zero, false, nil
	}
	if err != nil {
		return zero, false, err
	}
	v, err := codec.Decode(data)
	if err != nil {
		return zero, false, fmt.Errorf("storage: decode %q: %w", key, err)
	}
	return v, true, nil
}

func save[T any](kv KVStore, key []byte, codec Codec[T], v T) error {
	data, err := codec.Encode(v)
	if err != nil {
		return fmt.Errorf("storage: encode %q: %w", key, err)
	}
	return kv.Set(key, data)
}

func update[T any](kv KVStore, key []byte, codec Codec[T], fn func(T) (T, error)) (T, error) {
	v, err := load(kv, key, codec)
	if err != nil {
		return v, err
	}
	v, err = fn(v)
	if err != nil {
		return v, err
	}
	return v, save(kv, key, codec, v)
}
