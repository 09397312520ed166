package services

import (
	"fmt"
	"itinerary-planner-service/internal/domain"
	"slices"
	"time"
)

// DefaultActivityDuration is assumed for activities without an estimate.
const DefaultActivityDuration = 60 * time.Minute

type scheduled struct {
	activity *domain.Activity
	start    time.Time
	end      time.Time
	index    int
}

// schedule computes intervals for every activity with a parsable time of day
// and sorts them by start, then by position in the input.
func schedule(activities []*domain.Activity, defaultDuration time.Duration) []scheduled {
	if defaultDuration <= 0 {
		defaultDuration = DefaultActivityDuration
	}

	out := make([]scheduled, 0, len(activities))
	for i, a := range activities {
		if a == nil {
			continue
		}
		start, end, ok := a.Interval(defaultDuration)
		if !ok {
			continue
		}
		out = append(out, scheduled{activity: a, start: start, end: end, index: i})
	}

	slices.SortFunc(out, func(a, b scheduled) int {
		if c := a.start.Compare(b.start); c != 0 {
			return c
		}
		return a.index - b.index
	})
	return out
}

// DetectConflicts reports every pair of activities whose half-open time
// intervals overlap. Activities without a parsable time of day are ignored.
// Activities touching at a boundary do not conflict.
//
// Each pair is reported once, ordered by the start time of its first
// activity and then by input position. defaultDuration replaces unknown
// durations; a non-positive value selects DefaultActivityDuration.
func DetectConflicts(activities []*domain.Activity, defaultDuration time.Duration) []domain.Conflict {
	items := schedule(activities, defaultDuration)
	conflicts := []domain.Conflict{}

	for i, a := range items {
		for _, b := range items[i+1:] {
			// Sorted by start: nothing further can overlap a.
			if !b.start.Before(a.end) {
				break
			}
			if !a.start.Before(b.end) {
				continue
			}

			from := laterOf(a.start, b.start)
			to := earlierOf(a.end, b.end)
			conflicts = append(conflicts, domain.Conflict{
				A:     a.activity,
				B:     b.activity,
				Kind:  domain.ConflictOverlap,
				Start: from,
				End:   to,
				Message: fmt.Sprintf(
					"%q and %q overlap in time (%s-%s)",
					a.activity.Title, b.activity.Title, from.Format("15:04"), to.Format("15:04"),
				),
			})
		}
	}

	return conflicts
}

// DetectTightGaps warns about non-overlapping activities where the later one
// starts less than minGap after the earlier one ends. A non-positive minGap
// disables the check.
func DetectTightGaps(activities []*domain.Activity, minGap, defaultDuration time.Duration) []domain.Conflict {
	warnings := []domain.Conflict{}
	if minGap <= 0 {
		return warnings
	}

	items := schedule(activities, defaultDuration)
	for i, a := range items {
		for _, b := range items[i+1:] {
			gap := b.start.Sub(a.end)
			if gap < 0 {
				continue
			}
			if gap >= minGap {
				break
			}

			warnings = append(warnings, domain.Conflict{
				A:     a.activity,
				B:     b.activity,
				Kind:  domain.ConflictTooClose,
				Start: a.end,
				End:   b.start,
				Message: fmt.Sprintf(
					"%q and %q are too close together (only %d min apart)",
					a.activity.Title, b.activity.Title, int(gap.Minutes()),
				),
			})
		}
	}

	return warnings
}

func laterOf(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func earlierOf(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
