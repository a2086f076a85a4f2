package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/kendall-kelly/bakery-api/models"
	"github.com/kendall-kelly/bakery-api/repository"
)

// UpdateInput is the payload for a changelog entry
type UpdateInput struct {
	Version     string `json:"version"`
	Description string `json:"description"`
	Date        string `json:"date"`
}

// ChangelogService manages the site updates page
type ChangelogService struct {
	repo *repository.Repository[models.UpdateEntry]
}

var changelogServiceInstance *ChangelogService

// NewChangelogService creates a changelog service
func NewChangelogService(repo *repository.Repository[models.UpdateEntry]) *ChangelogService {
	return &ChangelogService{repo: repo}
}

// InitChangelogService creates the changelog service and makes it the global instance
func InitChangelogService(repo *repository.Repository[models.UpdateEntry]) *ChangelogService {
	changelogServiceInstance = NewChangelogService(repo)
	return changelogServiceInstance
}

// GetChangelogService returns the initialized changelog service
func GetChangelogService() *ChangelogService {
	return changelogServiceInstance
}

// SetChangelogService sets the changelog service instance (primarily for testing)
func SetChangelogService(service *ChangelogService) {
	changelogServiceInstance = service
}

// ListUpdates returns entries newest date first
func (s *ChangelogService) ListUpdates(ctx context.Context) ([]models.UpdateEntry, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load updates: %w", err)
	}

	// ISO dates sort correctly as strings
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date > entries[j].Date
	})
	return entries, nil
}

// AddUpdate stores a new entry
func (s *ChangelogService) AddUpdate(ctx context.Context, in UpdateInput) (*models.UpdateEntry, error) {
	entry := models.UpdateEntry{
		ID:          uuid.NewString(),
		Version:     strings.TrimSpace(in.Version),
		Description: strings.TrimSpace(in.Description),
		Date:        strings.TrimSpace(in.Date),
	}
	if entry.Version == "" || entry.Description == "" || entry.Date == "" {
		return nil, invalid("version, description, and date are required")
	}

	if err := s.repo.Put(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to save update: %w", err)
	}
	return &entry, nil
}

// DeleteUpdate removes an entry
func (s *ChangelogService) DeleteUpdate(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
