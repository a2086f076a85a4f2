package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/kendall-kelly/bakery-api/models"
	"github.com/kendall-kelly/bakery-api/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_PutGetList(t *testing.T) {
	repo := NewProductRepository(storage.NewMemoryStore())
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, models.Product{ID: "rye", Name: "Rye", Price: 9}))
	require.NoError(t, repo.Put(ctx, models.Product{ID: "focaccia", Name: "Focaccia", Price: 8}))

	items, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "rye", items[0].ID, "List should keep insertion order")

	got, err := repo.Get(ctx, "focaccia")
	require.NoError(t, err)
	assert.Equal(t, "Focaccia", got.Name)

	_, err = repo.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepository_PutReplacesSameID(t *testing.T) {
	repo := NewProductRepository(storage.NewMemoryStore())
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, models.Product{ID: "rye", Name: "Rye"}))
	require.NoError(t, repo.Put(ctx, models.Product{ID: "rye", Name: "Dark Rye"}))

	items, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Dark Rye", items[0].Name)
}

func TestRepository_Patch(t *testing.T) {
	repo := NewOrderRepository(storage.NewMemoryStore())
	ctx := context.Background()
	require.NoError(t, repo.Put(ctx, models.Order{ID: "AAA111", CustomerName: "Jo"}))

	updated, err := repo.Patch(ctx, "AAA111", func(o *models.Order) error {
		o.Review = "lovely"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "lovely", updated.Review)

	stored, err := repo.Get(ctx, "AAA111")
	require.NoError(t, err)
	assert.Equal(t, "lovely", stored.Review, "Patch should persist the change")

	_, err = repo.Patch(ctx, "NOPE", func(o *models.Order) error { return nil })
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepository_PatchErrorWritesNothing(t *testing.T) {
	repo := NewOrderRepository(storage.NewMemoryStore())
	ctx := context.Background()
	require.NoError(t, repo.Put(ctx, models.Order{ID: "AAA111"}))

	boom := errors.New("rejected")
	_, err := repo.Patch(ctx, "AAA111", func(o *models.Order) error {
		o.Review = "should not stick"
		return boom
	})
	assert.ErrorIs(t, err, boom)

	stored, err := repo.Get(ctx, "AAA111")
	require.NoError(t, err)
	assert.Empty(t, stored.Review)
}

func TestRepository_Delete(t *testing.T) {
	repo := NewGalleryRepository(storage.NewMemoryStore())
	ctx := context.Background()
	require.NoError(t, repo.Put(ctx, models.GalleryImage{ID: "img-1", URL: "https://example.com/1.jpg"}))

	require.NoError(t, repo.Delete(ctx, "img-1"))
	assert.ErrorIs(t, repo.Delete(ctx, "img-1"), ErrNotFound)

	items, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestRepository_ReplaceAll(t *testing.T) {
	repo := NewUpdateRepository(storage.NewMemoryStore())
	ctx := context.Background()
	require.NoError(t, repo.Put(ctx, models.UpdateEntry{ID: "u1"}))

	require.NoError(t, repo.ReplaceAll(ctx, []models.UpdateEntry{{ID: "u2"}, {ID: "u3"}}))

	items, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestBlockedDates_ToggleAndSet(t *testing.T) {
	repo := NewBlockedDates(storage.NewMemoryStore())
	ctx := context.Background()

	dates, err := repo.Toggle(ctx, "2025-12-25")
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-12-25"}, dates)

	dates, err = repo.Toggle(ctx, "2025-12-24")
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-12-24", "2025-12-25"}, dates, "Dates should come back sorted")

	dates, err = repo.Toggle(ctx, "2025-12-25")
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-12-24"}, dates, "Second toggle should unblock")

	dates, err = repo.Set(ctx, []string{"2026-01-02", "2026-01-01", "2026-01-02"})
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-01-01", "2026-01-02"}, dates)

	stored, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, dates, stored)
}
