package domain

import (
	"strings"
	"time"
)

// Activity is one scheduled item within a day of a trip.
//
// Time of day, duration and location are all optional. Their absence is a
// normal input state: an activity without a parsable TimeOfDay is skipped by
// conflict detection, and one without a Location is placed after the
// geo-ordered part of an optimized route.
type Activity struct {
	ID                       string
	TripID                   string
	Day                      int
	Date                     time.Time
	TimeOfDay                string
	EstimatedDurationMinutes *int
	Location                 *Coordinates
	// Free-text address a geocoder can resolve into Location.
	Address  string
	Order    int
	Title    string
	Category string
}

// HasLocation reports whether the activity carries known coordinates.
func (a *Activity) HasLocation() bool {
	return a != nil && a.Location != nil
}

// Duration returns the estimated duration, or fallback when it is unknown.
func (a *Activity) Duration(fallback time.Duration) time.Duration {
	if a.EstimatedDurationMinutes == nil || *a.EstimatedDurationMinutes < 0 {
		return fallback
	}
	return time.Duration(*a.EstimatedDurationMinutes) * time.Minute
}

// Interval returns the half-open [start, end) window the activity occupies.
// ok is false when TimeOfDay is empty or cannot be parsed.
func (a *Activity) Interval(defaultDuration time.Duration) (start, end time.Time, ok bool) {
	offset, ok := ParseTimeOfDay(a.TimeOfDay)
	if !ok {
		return time.Time{}, time.Time{}, false
	}

	y, m, d := a.Date.Date()
	start = time.Date(y, m, d, 0, 0, 0, 0, a.Date.Location()).Add(offset)
	end = start.Add(a.Duration(defaultDuration))
	return start, end, true
}

var timeOfDayLayouts = []string{
	"15:04",
	"15:04:05",
	"3:04 PM",
	"3:04PM",
}

// ParseTimeOfDay parses a wall-clock value such as "14:30" or "2:30 PM" and
// returns the offset from midnight.
func ParseTimeOfDay(s string) (time.Duration, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return 0, false
	}

	for _, layout := range timeOfDayLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		return time.Duration(t.Hour())*time.Hour +
			time.Duration(t.Minute())*time.Minute +
			time.Duration(t.Second())*time.Second, true
	}

	return 0, false
}
