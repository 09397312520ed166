package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"itinerary-planner-service/internal/domain"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TripInserter is implemented by every store that can be seeded.
type TripInserter interface {
	InsertTrip(ctx context.Context, trip *domain.Trip) error
}

type TripSeed struct {
	TripID     string         `json:"trip_id"`
	Name       string         `json:"name"`
	StartDate  string         `json:"start_date"`
	EndDate    string         `json:"end_date"`
	Activities []ActivitySeed `json:"activities"`
}

type ActivitySeed struct {
	ActivityID      string   `json:"activity_id"`
	Date            string   `json:"date"`
	TimeOfDay       string   `json:"time_of_day"`
	DurationMinutes *int     `json:"duration_minutes"`
	Lat             *float64 `json:"lat"`
	Lon             *float64 `json:"lon"`
	Address         string   `json:"address"`
	Order           *int     `json:"order"`
	Title           string   `json:"title"`
	Category        string   `json:"category"`
}

// Populate a store with trips read from a JSON file.
func SeedFromJSON(ctx context.Context, store TripInserter, jsonPath string) (int, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return 0, fmt.Errorf("seed trips: read %q: %w", jsonPath, err)
	}

	var data []TripSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return 0, fmt.Errorf("seed trips: parse json: %w", err)
	}

	for i, item := range data {
		trip, err := item.toDomain()
		if err != nil {
			return 0, fmt.Errorf("seed trips: trip at index %d: %w", i+1, err)
		}

		if err := store.InsertTrip(ctx, trip); err != nil {
			return 0, fmt.Errorf("seed trips: insert trip_id=%q: %w", trip.ID, err)
		}
	}

	return len(data), nil
}

func (t TripSeed) toDomain() (*domain.Trip, error) {
	id := strings.TrimSpace(t.TripID)
	if id == "" {
		return nil, fmt.Errorf("trip_id cannot be empty")
	}

	start, err := parseTime(strings.TrimSpace(t.StartDate))
	if err != nil {
		return nil, fmt.Errorf("trip %q: invalid start_date %q", id, t.StartDate)
	}
	end, err := parseTime(strings.TrimSpace(t.EndDate))
	if err != nil {
		return nil, fmt.Errorf("trip %q: invalid end_date %q", id, t.EndDate)
	}

	trip := &domain.Trip{
		ID:         id,
		Name:       strings.TrimSpace(t.Name),
		StartDate:  start,
		EndDate:    end,
		Activities: make([]*domain.Activity, 0, len(t.Activities)),
	}

	perDay := map[int]int{}
	for j, s := range t.Activities {
		a, err := s.toDomain(trip)
		if err != nil {
			return nil, fmt.Errorf("trip %q: activity at index %d: %w", id, j+1, err)
		}

		// New activities go to the end of their day unless an order is given.
		if s.Order != nil {
			a.Order = *s.Order
		} else {
			a.Order = perDay[a.Day]
		}
		perDay[a.Day]++

		trip.Activities = append(trip.Activities, a)
	}

	return trip, nil
}

func (s ActivitySeed) toDomain(trip *domain.Trip) (*domain.Activity, error) {
	title := strings.TrimSpace(s.Title)
	if title == "" {
		return nil, fmt.Errorf("title cannot be empty")
	}

	id := strings.TrimSpace(s.ActivityID)
	if id == "" {
		id = uuid.NewString()
	}

	a := &domain.Activity{
		ID:                       id,
		TripID:                   trip.ID,
		TimeOfDay:                strings.TrimSpace(s.TimeOfDay),
		EstimatedDurationMinutes: s.DurationMinutes,
		Address:                  strings.TrimSpace(s.Address),
		Title:                    title,
		Category:                 strings.TrimSpace(s.Category),
	}

	if s.Date != "" {
		d, err := parseTime(strings.TrimSpace(s.Date))
		if err != nil {
			return nil, fmt.Errorf("invalid date %q", s.Date)
		}
		// Date-only values are anchored to the trip's zone.
		if !strings.Contains(s.Date, "T") {
			d = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, trip.StartDate.Location())
		}
		a.Date = d
	} else {
		a.Date = trip.StartDate
	}
	a.Day = trip.DayNumber(a.Date)

	if s.DurationMinutes != nil && *s.DurationMinutes < 0 {
		return nil, fmt.Errorf("duration_minutes must be non-negative, got %d", *s.DurationMinutes)
	}

	if (s.Lat == nil) != (s.Lon == nil) {
		return nil, fmt.Errorf("lat and lon must be given together")
	}
	if s.Lat != nil {
		c := domain.Coordinates{Lat: *s.Lat, Lon: *s.Lon}
		if !c.Valid() {
			return nil, fmt.Errorf("coordinates out of range: %v", c)
		}
		a.Location = &c
	}

	return a, nil
}
