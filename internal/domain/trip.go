package domain

import "time"

// Trip aggregates the activities planned between StartDate and EndDate.
//
// Day numbers are never stored on the trip: they are derived from each
// activity's Date relative to StartDate and must be recomputed whenever the
// start date moves.
type Trip struct {
	ID         string
	Name       string
	StartDate  time.Time
	EndDate    time.Time
	Activities []*Activity
}

// civilDay maps t onto a day counter for its calendar date in loc.
func civilDay(t time.Time, loc *time.Location) int64 {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400
}

// DaysBetween returns the number of calendar days from start to t, measured
// in start's location. Negative when t falls before start.
func DaysBetween(start, t time.Time) int {
	loc := start.Location()
	return int(civilDay(t, loc) - civilDay(start, loc))
}

// DayNumberFor returns the 1-based day of a trip starting at start that date
// falls on. Dates before the start and zero dates are clamped to day 1.
func DayNumberFor(start, date time.Time) int {
	if date.IsZero() || start.IsZero() {
		return 1
	}

	n := DaysBetween(start, date) + 1
	if n < 1 {
		return 1
	}
	return n
}

// DayNumber returns the derived day of the given date within the trip.
func (t *Trip) DayNumber(date time.Time) int {
	return DayNumberFor(t.StartDate, date)
}

// DayCount returns the number of calendar days the trip spans, at least 1.
func (t *Trip) DayCount() int {
	if t.StartDate.IsZero() || t.EndDate.IsZero() {
		return 1
	}

	n := DaysBetween(t.StartDate, t.EndDate) + 1
	if n < 1 {
		return 1
	}
	return n
}

// ContainsDay reports whether day is within [1, DayCount].
func (t *Trip) ContainsDay(day int) bool {
	return day >= 1 && day <= t.DayCount()
}

// DateForDay returns the calendar date of the given 1-based day.
func (t *Trip) DateForDay(day int) time.Time {
	y, m, d := t.StartDate.Date()
	return time.Date(y, m, d+day-1, 0, 0, 0, 0, t.StartDate.Location())
}
