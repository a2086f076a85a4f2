// Package storage is the key-value adapter behind every collection.
// Each collection is stored as one JSON blob under a fixed key and every
// mutation rewrites the whole blob.
package storage

import (
	"context"
	"errors"
)

// Collection keys
const (
	KeyOrders       = "orders"
	KeyProducts     = "products"
	KeyBlockedDates = "blocked-dates"
	KeyGallery      = "gallery"
	KeyUpdates      = "updates"
)

var (
	// ErrKeyNotFound is returned by Get when nothing is stored under the key
	ErrKeyNotFound = errors.New("key not found")
	// ErrWriteUnverified is returned when a write could not be read back intact
	ErrWriteUnverified = errors.New("write could not be verified")
)

// Store reads and writes whole values by key
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Ping(ctx context.Context) error
}
