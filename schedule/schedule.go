// Package schedule computes pickup availability: the date window, blocked
// days and the time slots offered for each day.
package schedule

import (
	"errors"
	"fmt"
	"slices"
	"time"
)

const (
	// DateLayout is the local calendar date format used everywhere dates are stored
	DateLayout = "2006-01-02"

	// LeadDays is the minimum notice before a pickup
	LeadDays = 2
	// HorizonMonths bounds how far ahead a pickup can be booked
	HorizonMonths = 1
	// NextAvailableWindow is how many days NextAvailable scans
	NextAvailableWindow = 30

	// WeekendStart is the first slot offered on Saturday and Sunday
	WeekendStart = "12:00 PM"
)

// TimeSlots are the pickup times offered on a weekday
var TimeSlots = []string{
	"10:00 AM", "10:30 AM", "11:00 AM", "11:30 AM",
	"12:00 PM", "12:30 PM", "1:00 PM", "1:30 PM",
	"2:00 PM", "2:30 PM", "3:00 PM", "3:30 PM",
	"4:00 PM", "4:30 PM", "5:00 PM", "5:30 PM", "6:00 PM",
}

var (
	// ErrInvalidDate is returned for strings that are not YYYY-MM-DD
	ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")
	// ErrDateUnavailable is returned for dates outside the window or blocked
	ErrDateUnavailable = errors.New("pickup date is not available")
	// ErrTimeUnavailable is returned for a time not offered on the chosen date
	ErrTimeUnavailable = errors.New("pickup time is not available for the selected date")
)

// Slot is a pickup date and time
type Slot struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

// Scheduler answers availability questions in the bakery's timezone
type Scheduler struct {
	loc *time.Location
	now func() time.Time
}

// Option configures a Scheduler
type Option func(*Scheduler)

// WithClock replaces time.Now, mostly for tests
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) {
		s.now = now
	}
}

// New creates a scheduler for loc. A nil loc means time.Local.
func New(loc *time.Location, opts ...Option) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	s := &Scheduler{loc: loc, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Location returns the scheduler's timezone
func (s *Scheduler) Location() *time.Location {
	return s.loc
}

func (s *Scheduler) today() time.Time {
	now := s.now().In(s.loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
}

// EarliestDate is local midnight LeadDays from today
func (s *Scheduler) EarliestDate() time.Time {
	return s.today().AddDate(0, 0, LeadDays)
}

// LatestDate is local midnight HorizonMonths from today
func (s *Scheduler) LatestDate() time.Time {
	return s.today().AddDate(0, HorizonMonths, 0)
}

// ParseDate reads a YYYY-MM-DD string as local midnight
func (s *Scheduler) ParseDate(date string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, date, s.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return t, nil
}

// FormatDate renders t as a local YYYY-MM-DD string
func (s *Scheduler) FormatDate(t time.Time) string {
	return t.In(s.loc).Format(DateLayout)
}

// AvailableDates lists every selectable date in the window
func (s *Scheduler) AvailableDates(blocked []string) []string {
	dates := []string{}
	latest := s.LatestDate()
	for d := s.EarliestDate(); !d.After(latest); d = d.AddDate(0, 0, 1) {
		key := d.Format(DateLayout)
		if !slices.Contains(blocked, key) {
			dates = append(dates, key)
		}
	}
	return dates
}

// IsAvailable reports whether date is inside the window and not blocked
func (s *Scheduler) IsAvailable(date string, blocked []string) bool {
	d, err := s.ParseDate(date)
	if err != nil {
		return false
	}
	if d.Before(s.EarliestDate()) || d.After(s.LatestDate()) {
		return false
	}
	return !slices.Contains(blocked, date)
}

// IsWeekend reports whether t falls on Saturday or Sunday
func IsWeekend(t time.Time) bool {
	day := t.Weekday()
	return day == time.Saturday || day == time.Sunday
}

// TimeOptions returns the slots offered on date
func (s *Scheduler) TimeOptions(date string) ([]string, error) {
	d, err := s.ParseDate(date)
	if err != nil {
		return nil, err
	}
	return timesFor(d), nil
}

func timesFor(d time.Time) []string {
	if IsWeekend(d) {
		return slices.Clone(TimeSlots[slices.Index(TimeSlots, WeekendStart):])
	}
	return slices.Clone(TimeSlots)
}

// ReconcileTime keeps selected when it is still offered on date and
// returns "" otherwise
func (s *Scheduler) ReconcileTime(date, selected string) string {
	if selected == "" {
		return ""
	}
	options, err := s.TimeOptions(date)
	if err != nil || !slices.Contains(options, selected) {
		return ""
	}
	return selected
}

// NextAvailable scans NextAvailableWindow days from the earliest date and
// returns the first unblocked one with its earliest slot
func (s *Scheduler) NextAvailable(blocked []string) (Slot, bool) {
	start := s.EarliestDate()
	for i := 0; i < NextAvailableWindow; i++ {
		d := start.AddDate(0, 0, i)
		key := d.Format(DateLayout)
		if slices.Contains(blocked, key) {
			continue
		}
		return Slot{Date: key, Time: timesFor(d)[0]}, true
	}
	return Slot{}, false
}

// Validate checks a submitted pickup. An empty time is allowed.
func (s *Scheduler) Validate(date, pickupTime string, blocked []string) error {
	d, err := s.ParseDate(date)
	if err != nil {
		return err
	}
	if !s.IsAvailable(date, blocked) {
		return fmt.Errorf("%w: %s", ErrDateUnavailable, date)
	}
	if pickupTime != "" && !slices.Contains(timesFor(d), pickupTime) {
		return fmt.Errorf("%w: %s on %s", ErrTimeUnavailable, pickupTime, date)
	}
	return nil
}

// DisplayDate renders a stored date as "Mon, Jan 2", or returns it
// unchanged when it cannot be parsed
func DisplayDate(date string) string {
	d, err := time.Parse(DateLayout, date)
	if err != nil {
		return date
	}
	return d.Format("Mon, Jan 2")
}
