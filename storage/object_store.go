package storage

import (
	"context"
	"strings"
)

// ObjectClient is the subset of an object storage service the store needs.
// GetObject must return ErrKeyNotFound for missing objects.
type ObjectClient interface {
	GetObject(ctx context.Context, key string) ([]byte, error)
	PutObject(ctx context.Context, key string, body []byte, contentType string) error
	Ping(ctx context.Context) error
}

// ObjectStore keeps each collection as a JSON object in a bucket
type ObjectStore struct {
	client ObjectClient
	prefix string
}

// NewObjectStore returns a store writing objects under prefix
func NewObjectStore(client ObjectClient, prefix string) *ObjectStore {
	prefix = strings.Trim(prefix, "/")
	if prefix != "" {
		prefix += "/"
	}
	return &ObjectStore{client: client, prefix: prefix}
}

func (s *ObjectStore) objectKey(key string) string {
	return s.prefix + key + ".json"
}

// Get returns the object stored for key
func (s *ObjectStore) Get(ctx context.Context, key string) ([]byte, error) {
	return s.client.GetObject(ctx, s.objectKey(key))
}

// Set overwrites the object stored for key
func (s *ObjectStore) Set(ctx context.Context, key string, value []byte) error {
	return s.client.PutObject(ctx, s.objectKey(key), value, "application/json")
}

// Ping verifies the bucket is reachable
func (s *ObjectStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}
