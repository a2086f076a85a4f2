package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/kendall-kelly/bakery-api/storage"
	"github.com/kendall-kelly/bakery-api/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestS3ImageService(t *testing.T) {
	mockS3 := NewMockS3Service()
	service := NewS3ImageService(mockS3)
	ctx := context.Background()

	key, err := service.UploadImage(ctx, createTestFileHeader(t, "loaf.jpg", []byte("jpeg")))
	require.NoError(t, err)
	assert.True(t, mockS3.FileExists(key))

	url, err := service.GetImageURL(ctx, key)
	require.NoError(t, err)
	assert.Contains(t, url, key)

	url, err = service.GetImageURL(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, url)

	require.NoError(t, service.DeleteImage(ctx, key))
	assert.False(t, mockS3.FileExists(key))
}

func TestS3ImageService_Errors(t *testing.T) {
	mockS3 := NewMockS3Service()
	service := NewS3ImageService(mockS3)
	ctx := context.Background()

	_, err := service.UploadImage(ctx, createTestFileHeader(t, "loaf.bmp", []byte("bmp")))
	var fileErr *utils.FileUploadError
	assert.True(t, errors.As(err, &fileErr))

	mockS3.FailWith(errors.New("access denied"))
	_, err = service.UploadImage(ctx, createTestFileHeader(t, "loaf.png", []byte("png")))
	assert.ErrorContains(t, err, "failed to upload image")
	assert.ErrorContains(t, service.DeleteImage(ctx, "gallery/x.png"), "access denied")
}

func TestLocalImageService(t *testing.T) {
	dir := t.TempDir()
	service := NewLocalImageService(dir)
	ctx := context.Background()

	key, err := service.UploadImage(ctx, createTestFileHeader(t, "loaf.png", []byte("png")))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, key))
	require.NoError(t, err)

	url, err := service.GetImageURL(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/uploads/"+key, url)

	require.NoError(t, service.DeleteImage(ctx, key))
	_, err = os.Stat(filepath.Join(dir, key))
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, service.DeleteImage(ctx, key), "Deleting twice is fine")
}

func TestMockS3Service_ObjectClient(t *testing.T) {
	mockS3 := NewMockS3Service()
	store := storage.NewObjectStore(mockS3, "bakery")
	ctx := context.Background()

	_, err := store.Get(ctx, storage.KeyOrders)
	assert.ErrorIs(t, err, storage.ErrKeyNotFound)

	require.NoError(t, store.Set(ctx, storage.KeyOrders, []byte(`[]`)))
	assert.True(t, mockS3.FileExists("bakery/orders.json"))

	body, err := store.Get(ctx, storage.KeyOrders)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(body))
	assert.NoError(t, store.Ping(ctx))
	assert.Contains(t, mockS3.GetUploadedFiles(), "bakery/orders.json")

	mockS3.Clear()
	_, err = store.Get(ctx, storage.KeyOrders)
	assert.ErrorIs(t, err, storage.ErrKeyNotFound)
}

func TestImageServiceSingleton(t *testing.T) {
	original := GetImageService()
	t.Cleanup(func() { SetImageService(original) })

	mock := NewMockImageService()
	mock.SetAsMockForTesting()
	assert.Same(t, mock, GetImageService())

	key, err := GetImageService().UploadImage(context.Background(), createTestFileHeader(t, "rolls.png", []byte("png")))
	require.NoError(t, err)
	assert.Len(t, mock.GetUploadedImages(), 1)

	mock.Clear()
	assert.False(t, mock.ImageExists(key))
}
