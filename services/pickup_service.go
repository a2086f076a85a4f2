package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/kendall-kelly/bakery-api/repository"
	"github.com/kendall-kelly/bakery-api/schedule"
)

// PickupService combines the blocked date list with the pickup schedule
type PickupService struct {
	blocked   *repository.BlockedDates
	scheduler *schedule.Scheduler
}

var pickupServiceInstance *PickupService

// NewPickupService creates a pickup service
func NewPickupService(blocked *repository.BlockedDates, scheduler *schedule.Scheduler) *PickupService {
	return &PickupService{blocked: blocked, scheduler: scheduler}
}

// InitPickupService creates the pickup service and makes it the global instance
func InitPickupService(blocked *repository.BlockedDates, scheduler *schedule.Scheduler) *PickupService {
	pickupServiceInstance = NewPickupService(blocked, scheduler)
	return pickupServiceInstance
}

// GetPickupService returns the initialized pickup service
func GetPickupService() *PickupService {
	return pickupServiceInstance
}

// SetPickupService sets the pickup service instance (primarily for testing)
func SetPickupService(service *PickupService) {
	pickupServiceInstance = service
}

// Scheduler exposes the underlying schedule
func (s *PickupService) Scheduler() *schedule.Scheduler {
	return s.scheduler
}

// BlockedDates returns the sorted blocked dates
func (s *PickupService) BlockedDates(ctx context.Context) ([]string, error) {
	dates, err := s.blocked.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load blocked dates: %w", err)
	}
	return dates, nil
}

// ToggleBlockedDate blocks an open date or reopens a blocked one
func (s *PickupService) ToggleBlockedDate(ctx context.Context, date string) ([]string, error) {
	if _, err := s.scheduler.ParseDate(date); err != nil {
		return nil, invalid("%s", err.Error())
	}

	dates, err := s.blocked.Toggle(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to save blocked dates: %w", err)
	}
	return dates, nil
}

// SetBlockedDates replaces the blocked set
func (s *PickupService) SetBlockedDates(ctx context.Context, dates []string) ([]string, error) {
	for _, d := range dates {
		if _, err := s.scheduler.ParseDate(d); err != nil {
			return nil, invalid("%s", err.Error())
		}
	}

	saved, err := s.blocked.Set(ctx, dates)
	if err != nil {
		return nil, fmt.Errorf("failed to save blocked dates: %w", err)
	}
	return saved, nil
}

// AvailableDates lists the selectable pickup dates
func (s *PickupService) AvailableDates(ctx context.Context) ([]string, error) {
	blocked, err := s.BlockedDates(ctx)
	if err != nil {
		return nil, err
	}
	return s.scheduler.AvailableDates(blocked), nil
}

// NextAvailable returns the first open slot, or nil when none is open
func (s *PickupService) NextAvailable(ctx context.Context) (*schedule.Slot, error) {
	blocked, err := s.BlockedDates(ctx)
	if err != nil {
		return nil, err
	}

	slot, ok := s.scheduler.NextAvailable(blocked)
	if !ok {
		return nil, nil
	}
	return &slot, nil
}

// TimeOptions returns the slots offered on date
func (s *PickupService) TimeOptions(date string) ([]string, error) {
	options, err := s.scheduler.TimeOptions(date)
	if err != nil {
		return nil, invalid("%s", err.Error())
	}
	return options, nil
}

// ReconcileTime keeps selected when still offered on date, otherwise ""
func (s *PickupService) ReconcileTime(date, selected string) string {
	return s.scheduler.ReconcileTime(date, selected)
}

// ValidatePickup checks a requested pickup against the schedule and the
// blocked dates
func (s *PickupService) ValidatePickup(ctx context.Context, date, pickupTime string) error {
	blocked, err := s.BlockedDates(ctx)
	if err != nil {
		return err
	}

	err = s.scheduler.Validate(date, pickupTime, blocked)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, schedule.ErrInvalidDate):
		return invalid("%s", err.Error())
	default:
		return &ValidationError{Code: CodePickupUnavailable, Message: err.Error()}
	}
}
