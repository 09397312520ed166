package services

import (
	"itinerary-planner-service/internal/domain"
	"slices"
	"time"
)

// BucketByDay groups activities by the day number derived from their date
// relative to start. Activities whose date cannot be placed relative to start
// land on day 1; none are dropped. Bucket contents keep input order.
func BucketByDay(start time.Time, activities []*domain.Activity) map[int][]*domain.Activity {
	buckets := make(map[int][]*domain.Activity)
	for _, a := range activities {
		if a == nil {
			continue
		}
		day := domain.DayNumberFor(start, a.Date)
		buckets[day] = append(buckets[day], a)
	}
	return buckets
}

// SortByOrder returns a copy of activities sorted by ascending Order.
// Equal Order values keep their relative input order.
func SortByOrder(activities []*domain.Activity) []*domain.Activity {
	out := slices.Clone(activities)
	slices.SortStableFunc(out, func(a, b *domain.Activity) int {
		return a.Order - b.Order
	})
	return out
}

// DayActivities returns the activities of one day of the trip sorted by
// Order. Days outside [1, DayCount] yield nil: such activities stay on the
// trip but are not shown.
func DayActivities(trip *domain.Trip, day int) []*domain.Activity {
	if trip == nil || !trip.ContainsDay(day) {
		return nil
	}

	buckets := BucketByDay(trip.StartDate, trip.Activities)
	return SortByOrder(buckets[day])
}
