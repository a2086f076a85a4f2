// Package repository gives typed access to the stored collections.
// Every mutation loads the whole collection, changes it in memory and
// writes it back, so concurrent writers race and the last one wins.
package repository

import (
	"context"
	"errors"

	"github.com/kendall-kelly/bakery-api/models"
	"github.com/kendall-kelly/bakery-api/storage"
)

// ErrNotFound indicates the requested record was not found
var ErrNotFound = errors.New("not found")

// Repository stores records of one type keyed by id
type Repository[T any] struct {
	col  *storage.Collection[T]
	idOf func(T) string
}

// New builds a repository over the collection stored under key
func New[T any](store storage.Store, key string, idOf func(T) string) *Repository[T] {
	return &Repository[T]{col: storage.NewCollection[T](store, key), idOf: idOf}
}

// NewOrderRepository returns the repository of orders
func NewOrderRepository(store storage.Store) *Repository[models.Order] {
	return New(store, storage.KeyOrders, func(o models.Order) string { return o.ID })
}

// NewProductRepository returns the repository of catalog products
func NewProductRepository(store storage.Store) *Repository[models.Product] {
	return New(store, storage.KeyProducts, func(p models.Product) string { return p.ID })
}

// NewGalleryRepository returns the repository of gallery images
func NewGalleryRepository(store storage.Store) *Repository[models.GalleryImage] {
	return New(store, storage.KeyGallery, func(g models.GalleryImage) string { return g.ID })
}

// NewUpdateRepository returns the repository of changelog entries
func NewUpdateRepository(store storage.Store) *Repository[models.UpdateEntry] {
	return New(store, storage.KeyUpdates, func(u models.UpdateEntry) string { return u.ID })
}

// List returns every record in stored order
func (r *Repository[T]) List(ctx context.Context) ([]T, error) {
	return r.col.Load(ctx)
}

// Get returns the record with the given id
func (r *Repository[T]) Get(ctx context.Context, id string) (*T, error) {
	items, err := r.col.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if r.idOf(items[i]) == id {
			return &items[i], nil
		}
	}
	return nil, ErrNotFound
}

// Put appends the record, or replaces the stored record with the same id
func (r *Repository[T]) Put(ctx context.Context, item T) error {
	items, err := r.col.Load(ctx)
	if err != nil {
		return err
	}

	id := r.idOf(item)
	for i := range items {
		if r.idOf(items[i]) == id {
			items[i] = item
			return r.col.Save(ctx, items)
		}
	}
	return r.col.Save(ctx, append(items, item))
}

// Patch applies fn to the stored record and saves the collection.
// If fn returns an error nothing is written.
func (r *Repository[T]) Patch(ctx context.Context, id string, fn func(*T) error) (*T, error) {
	items, err := r.col.Load(ctx)
	if err != nil {
		return nil, err
	}

	for i := range items {
		if r.idOf(items[i]) != id {
			continue
		}
		if err := fn(&items[i]); err != nil {
			return nil, err
		}
		if err := r.col.Save(ctx, items); err != nil {
			return nil, err
		}
		updated := items[i]
		return &updated, nil
	}
	return nil, ErrNotFound
}

// Delete removes the record with the given id
func (r *Repository[T]) Delete(ctx context.Context, id string) error {
	items, err := r.col.Load(ctx)
	if err != nil {
		return err
	}

	kept := make([]T, 0, len(items))
	for _, item := range items {
		if r.idOf(item) != id {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(items) {
		return ErrNotFound
	}
	return r.col.Save(ctx, kept)
}

// ReplaceAll overwrites the whole collection
func (r *Repository[T]) ReplaceAll(ctx context.Context, items []T) error {
	return r.col.Save(ctx, items)
}
