package services

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kendall-kelly/bakery-api/models"
	"github.com/kendall-kelly/bakery-api/repository"
)

// GalleryInput is the payload for adding an image by URL
type GalleryInput struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
}

// GalleryService manages gallery images. Uploaded images are stored by key
// and their URL is resolved on every read.
type GalleryService struct {
	repo   *repository.Repository[models.GalleryImage]
	images ImageService
	now    func() time.Time
}

var galleryServiceInstance *GalleryService

// NewGalleryService creates a gallery service. images may be nil when
// uploads are not supported.
func NewGalleryService(repo *repository.Repository[models.GalleryImage], images ImageService) *GalleryService {
	return &GalleryService{repo: repo, images: images, now: time.Now}
}

// InitGalleryService creates the gallery service and makes it the global instance
func InitGalleryService(repo *repository.Repository[models.GalleryImage], images ImageService) *GalleryService {
	galleryServiceInstance = NewGalleryService(repo, images)
	return galleryServiceInstance
}

// GetGalleryService returns the initialized gallery service
func GetGalleryService() *GalleryService {
	return galleryServiceInstance
}

// SetGalleryService sets the gallery service instance (primarily for testing)
func SetGalleryService(service *GalleryService) {
	galleryServiceInstance = service
}

// ListImages returns the gallery with URLs resolved for uploaded images.
// An image whose URL cannot be resolved keeps its stored URL.
func (s *GalleryService) ListImages(ctx context.Context) ([]models.GalleryImage, error) {
	images, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load gallery: %w", err)
	}

	for i := range images {
		s.resolveURL(ctx, &images[i])
	}
	return images, nil
}

// AddImage adds an image hosted elsewhere
func (s *GalleryService) AddImage(ctx context.Context, in GalleryInput) (*models.GalleryImage, error) {
	if strings.TrimSpace(in.URL) == "" {
		return nil, invalid("Image URL is required")
	}

	image := s.newImage(in)
	image.URL = strings.TrimSpace(in.URL)
	if err := s.repo.Put(ctx, image); err != nil {
		return nil, fmt.Errorf("failed to save gallery image: %w", err)
	}
	return &image, nil
}

// UploadImage stores the file with the image service and adds it to the gallery
func (s *GalleryService) UploadImage(ctx context.Context, fileHeader *multipart.FileHeader, in GalleryInput) (*models.GalleryImage, error) {
	if s.images == nil {
		return nil, invalid("Image uploads are not configured")
	}

	key, err := s.images.UploadImage(ctx, fileHeader)
	if err != nil {
		return nil, err
	}

	image := s.newImage(in)
	image.ImageKey = key
	if err := s.repo.Put(ctx, image); err != nil {
		if delErr := s.images.DeleteImage(ctx, key); delErr != nil {
			log.Printf("Failed to remove orphaned image %s: %v", key, delErr)
		}
		return nil, fmt.Errorf("failed to save gallery image: %w", err)
	}

	s.resolveURL(ctx, &image)
	return &image, nil
}

// DeleteImage removes an image and its stored file
func (s *GalleryService) DeleteImage(ctx context.Context, id string) error {
	image, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if image.ImageKey != "" && s.images != nil {
		if err := s.images.DeleteImage(ctx, image.ImageKey); err != nil {
			log.Printf("Failed to delete stored image %s: %v", image.ImageKey, err)
		}
	}
	return nil
}

func (s *GalleryService) newImage(in GalleryInput) models.GalleryImage {
	date := in.Date
	if date == "" {
		date = s.now().UTC().Format(time.RFC3339)
	}
	return models.GalleryImage{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		Date:        date,
	}
}

func (s *GalleryService) resolveURL(ctx context.Context, image *models.GalleryImage) {
	if image.ImageKey == "" || s.images == nil {
		return
	}
	url, err := s.images.GetImageURL(ctx, image.ImageKey)
	if err != nil {
		log.Printf("Failed to resolve URL for image %s: %v", image.ID, err)
		return
	}
	image.URL = url
}
