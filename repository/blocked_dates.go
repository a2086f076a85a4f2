package repository

import (
	"context"
	"sort"

	"github.com/kendall-kelly/bakery-api/storage"
)

// BlockedDates stores the set of YYYY-MM-DD dates closed for pickup
type BlockedDates struct {
	col *storage.Collection[string]
}

// NewBlockedDates returns the blocked date repository
func NewBlockedDates(store storage.Store) *BlockedDates {
	return &BlockedDates{col: storage.NewCollection[string](store, storage.KeyBlockedDates)}
}

// List returns the blocked dates, sorted and without duplicates
func (b *BlockedDates) List(ctx context.Context) ([]string, error) {
	dates, err := b.col.Load(ctx)
	if err != nil {
		return nil, err
	}
	return normalizeDates(dates), nil
}

// Toggle blocks the date if it is open and opens it if it is blocked.
// Returns the resulting set.
func (b *BlockedDates) Toggle(ctx context.Context, date string) ([]string, error) {
	dates, err := b.List(ctx)
	if err != nil {
		return nil, err
	}

	next := make([]string, 0, len(dates)+1)
	found := false
	for _, d := range dates {
		if d == date {
			found = true
			continue
		}
		next = append(next, d)
	}
	if !found {
		next = append(next, date)
	}

	next = normalizeDates(next)
	if err := b.col.Save(ctx, next); err != nil {
		return nil, err
	}
	return next, nil
}

// Set replaces the whole set
func (b *BlockedDates) Set(ctx context.Context, dates []string) ([]string, error) {
	next := normalizeDates(dates)
	if err := b.col.Save(ctx, next); err != nil {
		return nil, err
	}
	return next, nil
}

func normalizeDates(dates []string) []string {
	seen := make(map[string]struct{}, len(dates))
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}
