package services

import (
	"itinerary-planner-service/internal/domain"
	"math"
	"sort"
	"testing"
)

func TestOptimizeRouteNearestNeighbor(t *testing.T) {
	p1 := &domain.Activity{ID: "P1", Location: at(0, 0)}
	p2 := &domain.Activity{ID: "P2", Location: at(0, 10)}
	p3 := &domain.Activity{ID: "P3", Location: at(0, 1)}

	route, ok := OptimizeRoute([]*domain.Activity{p1, p2, p3})
	if !ok {
		t.Fatal("expected optimization to apply")
	}
	if got := ids(route); !equalIDs(got, []string{"P1", "P3", "P2"}) {
		t.Fatalf("route = %v, want [P1 P3 P2]", got)
	}
}

func TestOptimizeRouteAppendsUnlocatedInOriginalOrder(t *testing.T) {
	activities := []*domain.Activity{
		{ID: "x"},
		{ID: "far", Location: at(48.8606, 2.3376)},
		{ID: "y"},
		{ID: "near", Location: at(48.8584, 2.2945)},
		{ID: "start", Location: at(48.8530, 2.3499)},
		{ID: "z"},
	}
	// Seed is the first located activity in input order: "far".
	route, ok := OptimizeRoute(activities)
	if !ok {
		t.Fatal("expected optimization to apply")
	}
	if got := ids(route); !equalIDs(got, []string{"far", "start", "near", "x", "y", "z"}) {
		t.Fatalf("route = %v", got)
	}
}

func TestOptimizeRouteNotApplicable(t *testing.T) {
	tests := []struct {
		name       string
		activities []*domain.Activity
	}{
		{"empty", nil},
		{"no locations", []*domain.Activity{{ID: "a"}, {ID: "b"}}},
		{"one location", []*domain.Activity{{ID: "a"}, {ID: "b", Location: at(1, 1)}, {ID: "c"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			route, ok := OptimizeRoute(tt.activities)
			if ok {
				t.Fatal("expected not applicable")
			}
			if !equalIDs(ids(route), ids(tt.activities)) {
				t.Fatalf("route = %v, want input order %v", ids(route), ids(tt.activities))
			}
		})
	}
}

func TestOptimizeRouteTieBreakAndIdempotence(t *testing.T) {
	// east and west are equidistant from origin; east is listed first.
	activities := []*domain.Activity{
		{ID: "origin", Location: at(0, 0)},
		{ID: "unlocated"},
		{ID: "east", Location: at(0, 1)},
		{ID: "west", Location: at(0, -1)},
		{ID: "north", Location: at(3, 0)},
	}

	first, ok := OptimizeRoute(activities)
	if !ok {
		t.Fatal("expected optimization to apply")
	}
	if got := ids(first); !equalIDs(got, []string{"origin", "east", "west", "north", "unlocated"}) {
		t.Fatalf("route = %v", got)
	}

	second, _ := OptimizeRoute(first)
	if !equalIDs(ids(second), ids(first)) {
		t.Fatalf("second pass = %v, want %v", ids(second), ids(first))
	}
}

func TestOptimizeRouteIsPermutation(t *testing.T) {
	activities := []*domain.Activity{
		{ID: "a", Location: at(35.6812, 139.7671)},
		{ID: "b"},
		{ID: "c", Location: at(35.7101, 139.8107)},
		{ID: "d", Location: at(35.6586, 139.7454)},
		{ID: "e"},
		{ID: "f", Location: at(35.6762, 139.6503)},
		{ID: "g", Location: at(35.6586, 139.7454)},
	}

	route, _ := OptimizeRoute(activities)

	got := ids(route)
	want := ids(activities)
	sort.Strings(got)
	sort.Strings(want)
	if !equalIDs(got, want) {
		t.Fatalf("route ids = %v, want %v", got, want)
	}
}

func TestOptimizeRouteDoesNotMutateInput(t *testing.T) {
	activities := []*domain.Activity{
		{ID: "a", Location: at(0, 0), Order: 7},
		{ID: "b", Location: at(0, 10), Order: 8},
		{ID: "c", Location: at(0, 1), Order: 9},
	}

	OptimizeRoute(activities)

	if got := ids(activities); !equalIDs(got, []string{"a", "b", "c"}) {
		t.Fatalf("input reordered: %v", got)
	}
	for i, a := range activities {
		if a.Order != 7+i {
			t.Fatalf("activity %s order changed to %d", a.ID, a.Order)
		}
	}
}

func TestOptimizeRouteHandlesNaNCoordinates(t *testing.T) {
	activities := []*domain.Activity{
		{ID: "a", Location: at(0, 0)},
		{ID: "bad", Location: at(math.NaN(), math.NaN())},
		{ID: "b", Location: at(0, 1)},
	}

	route, ok := OptimizeRoute(activities)
	if !ok || len(route) != 3 {
		t.Fatalf("route = %v, ok = %v", ids(route), ok)
	}
	if got := ids(route); !equalIDs(got, []string{"a", "b", "bad"}) {
		t.Fatalf("route = %v, want [a b bad]", got)
	}
}

func TestHaversineMeters(t *testing.T) {
	// One degree of longitude on the equator.
	got := haversineMeters(domain.Coordinates{Lat: 0, Lon: 0}, domain.Coordinates{Lat: 0, Lon: 1})
	want := EarthRadiusMeters * math.Pi / 180
	if math.Abs(got-want) > 1 {
		t.Fatalf("distance = %f, want %f", got, want)
	}
}
