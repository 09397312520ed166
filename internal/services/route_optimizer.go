package services

import (
	"itinerary-planner-service/internal/domain"
	"math"
)

// OptimizeRoute reorders a day's activities with a greedy nearest-neighbor
// tour over great-circle distance.
//
// The tour starts at the first located activity in input order and always
// extends to the closest unvisited located activity; equal distances go to
// the candidate listed first. Activities without a location follow the tour
// in their original relative order. The algorithm is O(n^2) and does not
// attempt global optimization.
//
// When fewer than two activities have a location the input is returned
// as-is with ok == false. The input slice and its activities are not
// modified; callers assign Order from the returned sequence.
func OptimizeRoute(activities []*domain.Activity) (_ []*domain.Activity, ok bool) {
	withLocation := make([]*domain.Activity, 0, len(activities))
	withoutLocation := make([]*domain.Activity, 0)
	for _, a := range activities {
		if a.HasLocation() {
			withLocation = append(withLocation, a)
		} else {
			withoutLocation = append(withoutLocation, a)
		}
	}

	if len(withLocation) < 2 {
		return activities, false
	}

	visited := make([]bool, len(withLocation))
	tour := make([]*domain.Activity, 0, len(activities))

	current := 0
	visited[current] = true
	tour = append(tour, withLocation[current])

	for len(tour) < len(withLocation) {
		from := *withLocation[current].Location

		best := -1
		bestDistance := math.Inf(1)
		for i, candidate := range withLocation {
			if visited[i] {
				continue
			}
			d := haversineMeters(from, *candidate.Location)
			// Strict comparison keeps the earliest candidate on ties.
			if d < bestDistance {
				bestDistance = d
				best = i
			}
		}

		// Unusable coordinates (NaN) never win a comparison.
		if best == -1 {
			for i := range withLocation {
				if !visited[i] {
					best = i
					break
				}
			}
		}

		visited[best] = true
		tour = append(tour, withLocation[best])
		current = best
	}

	return append(tour, withoutLocation...), true
}
