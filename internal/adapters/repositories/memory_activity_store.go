package repositories

import (
	"context"
	"errors"
	"fmt"
	"itinerary-planner-service/internal/domain"
	"sync"
)

// In-memory implementation of the ActivityStore port.
// Trips are copied on the way in and out, so callers never share
// activities with the store.
type MemoryActivityStore struct {
	mu    sync.RWMutex
	trips map[string]*domain.Trip
}

func NewMemoryActivityStore() *MemoryActivityStore {
	return &MemoryActivityStore{trips: make(map[string]*domain.Trip)}
}

// InsertTrip stores or replaces a trip with its activities.
func (s *MemoryActivityStore) InsertTrip(ctx context.Context, trip *domain.Trip) error {
	if trip == nil || trip.ID == "" {
		return errors.New("insert trip: trip id must be non-empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.trips[trip.ID] = cloneTrip(trip)
	return nil
}

func (s *MemoryActivityStore) GetTrip(ctx context.Context, tripID string) (*domain.Trip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	trip, ok := s.trips[tripID]
	if !ok {
		return nil, fmt.Errorf("memory store: trip %q: %w", tripID, domain.ErrTripNotFound)
	}
	return cloneTrip(trip), nil
}

// SaveOrder validates every activity before writing any of them.
func (s *MemoryActivityStore) SaveOrder(ctx context.Context, tripID string, activities []*domain.Activity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	trip, ok := s.trips[tripID]
	if !ok {
		return fmt.Errorf("memory store: save order: trip %q: %w", tripID, domain.ErrTripNotFound)
	}

	byID := make(map[string]*domain.Activity, len(trip.Activities))
	for _, a := range trip.Activities {
		byID[a.ID] = a
	}

	for _, a := range activities {
		if _, ok := byID[a.ID]; !ok {
			return fmt.Errorf("memory store: save order: activity %q: %w", a.ID, domain.ErrUnknownActivity)
		}
	}

	for _, a := range activities {
		byID[a.ID].Order = a.Order
	}
	return nil
}

func cloneTrip(t *domain.Trip) *domain.Trip {
	out := *t
	out.Activities = make([]*domain.Activity, 0, len(t.Activities))
	for _, a := range t.Activities {
		out.Activities = append(out.Activities, cloneActivity(a))
	}
	return &out
}

func cloneActivity(a *domain.Activity) *domain.Activity {
	out := *a
	if a.EstimatedDurationMinutes != nil {
		d := *a.EstimatedDurationMinutes
		out.EstimatedDurationMinutes = &d
	}
	if a.Location != nil {
		c := *a.Location
		out.Location = &c
	}
	return &out
}
