package services

import (
	"itinerary-planner-service/internal/domain"
	"testing"
	"time"
)

func TestBucketByDay(t *testing.T) {
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	activities := []*domain.Activity{
		{ID: "a", Date: start.Add(9 * time.Hour)},
		{ID: "b", Date: start.AddDate(0, 0, 1)},
		{ID: "c", Date: start.AddDate(0, 0, -4)},
		{ID: "d", Date: time.Time{}},
		{ID: "e", Date: start.AddDate(0, 0, 1).Add(20 * time.Hour)},
	}

	buckets := BucketByDay(start, activities)

	if got := ids(buckets[1]); !equalIDs(got, []string{"a", "c", "d"}) {
		t.Fatalf("day 1 = %v, want [a c d]", got)
	}
	if got := ids(buckets[2]); !equalIDs(got, []string{"b", "e"}) {
		t.Fatalf("day 2 = %v, want [b e]", got)
	}
	if len(buckets) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(buckets))
	}

	again := BucketByDay(start, activities)
	for day, acts := range buckets {
		if !equalIDs(ids(again[day]), ids(acts)) {
			t.Fatalf("bucketing not deterministic for day %d", day)
		}
	}
}

func TestBucketByDayEmpty(t *testing.T) {
	if got := BucketByDay(testDay, nil); len(got) != 0 {
		t.Fatalf("expected empty map, got %v", got)
	}
}

func TestDayActivitiesSortsAndHidesOutOfRange(t *testing.T) {
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	trip := &domain.Trip{
		StartDate: start,
		EndDate:   start.AddDate(0, 0, 1),
		Activities: []*domain.Activity{
			{ID: "late", Date: start, Order: 5},
			{ID: "first", Date: start, Order: 0},
			{ID: "tie", Date: start, Order: 5},
			{ID: "outside", Date: start.AddDate(0, 0, 7), Order: 0},
		},
	}

	if got := ids(DayActivities(trip, 1)); !equalIDs(got, []string{"first", "late", "tie"}) {
		t.Fatalf("day 1 = %v, want [first late tie]", got)
	}
	if got := DayActivities(trip, 8); got != nil {
		t.Fatalf("out-of-range day should be hidden, got %v", ids(got))
	}
	if len(trip.Activities) != 4 {
		t.Fatalf("activities must not be removed from the trip")
	}
}
