package services

import (
	"context"
	"testing"

	"github.com/kendall-kelly/bakery-api/repository"
	"github.com/kendall-kelly/bakery-api/schedule"
	"github.com/kendall-kelly/bakery-api/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPickupFixture() *PickupService {
	return NewPickupService(repository.NewBlockedDates(storage.NewMemoryStore()), testScheduler())
}

func TestBlockThenUnblock(t *testing.T) {
	service := newPickupFixture()
	ctx := context.Background()

	dates, err := service.ToggleBlockedDate(ctx, "2025-12-25")
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-12-25"}, dates)

	available, err := service.AvailableDates(ctx)
	require.NoError(t, err)
	assert.NotContains(t, available, "2025-12-25")

	dates, err = service.ToggleBlockedDate(ctx, "2025-12-25")
	require.NoError(t, err)
	assert.Empty(t, dates)

	available, err = service.AvailableDates(ctx)
	require.NoError(t, err)
	assert.Contains(t, available, "2025-12-25")
}

func TestSetBlockedDates(t *testing.T) {
	service := newPickupFixture()
	ctx := context.Background()

	saved, err := service.SetBlockedDates(ctx, []string{"2025-12-31", "2025-12-24", "2025-12-31"})
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-12-24", "2025-12-31"}, saved)

	var vErr *ValidationError
	_, err = service.SetBlockedDates(ctx, []string{"2025-12-24", "Christmas"})
	require.ErrorAs(t, err, &vErr)

	listed, err := service.BlockedDates(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-12-24", "2025-12-31"}, listed, "A rejected set changes nothing")

	_, err = service.ToggleBlockedDate(ctx, "tomorrow")
	assert.ErrorAs(t, err, &vErr)
}

func TestNextAvailable(t *testing.T) {
	service := newPickupFixture()
	ctx := context.Background()

	slot, err := service.NextAvailable(ctx)
	require.NoError(t, err)
	require.NotNil(t, slot)
	assert.Equal(t, schedule.Slot{Date: "2025-12-22", Time: "10:00 AM"}, *slot)

	var all []string
	start := service.Scheduler().EarliestDate()
	for i := 0; i < schedule.NextAvailableWindow; i++ {
		all = append(all, service.Scheduler().FormatDate(start.AddDate(0, 0, i)))
	}
	_, err = service.SetBlockedDates(ctx, all)
	require.NoError(t, err)

	slot, err = service.NextAvailable(ctx)
	require.NoError(t, err)
	assert.Nil(t, slot)
}

func TestTimeOptionsAndReconcile(t *testing.T) {
	service := newPickupFixture()

	options, err := service.TimeOptions("2025-12-27")
	require.NoError(t, err)
	assert.Equal(t, schedule.WeekendStart, options[0])

	_, err = service.TimeOptions("bad")
	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)

	assert.Equal(t, "", service.ReconcileTime("2025-12-27", "10:00 AM"))
	assert.Equal(t, "1:00 PM", service.ReconcileTime("2025-12-27", "1:00 PM"))
}

func TestValidatePickup_StoreFailure(t *testing.T) {
	service := NewPickupService(repository.NewBlockedDates(failingStore{}), testScheduler())

	err := service.ValidatePickup(context.Background(), "2025-12-22", "")
	require.Error(t, err)
	_, isValidation := err.(*ValidationError)
	assert.False(t, isValidation, "A store failure is not a validation error")
}
