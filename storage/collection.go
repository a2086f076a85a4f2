package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Collection reads and writes a JSON-encoded slice stored under one key.
// Save does not coordinate with concurrent writers: the last write wins.
type Collection[T any] struct {
	store Store
	key   string
}

// NewCollection binds a collection to a key in the store
func NewCollection[T any](store Store, key string) *Collection[T] {
	return &Collection[T]{store: store, key: key}
}

// Key returns the store key backing the collection
func (c *Collection[T]) Key() string {
	return c.key
}

// Load returns every item in the collection. A missing key is an empty collection.
func (c *Collection[T]) Load(ctx context.Context) ([]T, error) {
	data, err := c.store.Get(ctx, c.key)
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return []T{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", c.key, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return []T{}, nil
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", c.key, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// Save replaces the whole collection and reads it back to confirm the write landed
func (c *Collection[T]) Save(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}

	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", c.key, err)
	}

	if err := c.store.Set(ctx, c.key, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", c.key, err)
	}

	stored, err := c.store.Get(ctx, c.key)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWriteUnverified, c.key, err)
	}
	if !bytes.Equal(stored, data) {
		return fmt.Errorf("%w: %s", ErrWriteUnverified, c.key)
	}

	return nil
}
