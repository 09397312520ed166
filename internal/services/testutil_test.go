package services

import (
	"itinerary-planner-service/internal/domain"
	"time"
)

var testDay = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

func minutes(n int) *int { return &n }

func at(lat, lon float64) *domain.Coordinates {
	return &domain.Coordinates{Lat: lat, Lon: lon}
}

func scheduledActivity(id, tod string, duration *int) *domain.Activity {
	return &domain.Activity{
		ID:                       id,
		Title:                    id,
		Date:                     testDay,
		TimeOfDay:                tod,
		EstimatedDurationMinutes: duration,
	}
}

func ids(activities []*domain.Activity) []string {
	out := make([]string, 0, len(activities))
	for _, a := range activities {
		out = append(out, a.ID)
	}
	return out
}

func equalIDs(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
