package services

import (
	"context"
	"errors"
	"itinerary-planner-service/internal/domain"
	"testing"
)

type recordingStore struct {
	saved  [][]string
	orders []map[string]int
	err    error
}

func (s *recordingStore) GetTrip(ctx context.Context, tripID string) (*domain.Trip, error) {
	return nil, domain.ErrTripNotFound
}

func (s *recordingStore) SaveOrder(ctx context.Context, tripID string, activities []*domain.Activity) error {
	s.saved = append(s.saved, ids(activities))
	orders := make(map[string]int, len(activities))
	for _, a := range activities {
		orders[a.ID] = a.Order
	}
	s.orders = append(s.orders, orders)
	return s.err
}

func TestApplyOrder(t *testing.T) {
	seq := []*domain.Activity{
		{ID: "c", Order: 12},
		{ID: "a", Order: 3},
		{ID: "b", Order: 3},
	}
	store := &recordingStore{}

	if err := ApplyOrder(context.Background(), store, "trip-1", seq); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i, a := range seq {
		if a.Order != i {
			t.Fatalf("seq[%d].Order = %d, want %d", i, a.Order, i)
		}
	}
	if got := ids(seq); !equalIDs(got, []string{"c", "a", "b"}) {
		t.Fatalf("seq reordered: %v", got)
	}

	if len(store.saved) != 1 {
		t.Fatalf("expected one save, got %d", len(store.saved))
	}
	if store.orders[0]["b"] != 2 {
		t.Fatalf("store saw order %d for b, want 2", store.orders[0]["b"])
	}
}

func TestApplyOrderPersistFailureKeepsMemoryState(t *testing.T) {
	seq := []*domain.Activity{{ID: "a", Order: 9}, {ID: "b", Order: 4}}
	storeErr := errors.New("disk full")
	store := &recordingStore{err: storeErr}

	err := ApplyOrder(context.Background(), store, "trip-1", seq)
	if err == nil {
		t.Fatal("expected error")
	}

	var pe *PersistOrderError
	if !errors.As(err, &pe) {
		t.Fatalf("error %v is not a PersistOrderError", err)
	}
	if pe.TripID != "trip-1" || !errors.Is(err, storeErr) {
		t.Fatalf("error does not carry trip id and cause: %v", err)
	}

	if seq[0].Order != 0 || seq[1].Order != 1 {
		t.Fatalf("in-memory order rolled back: %d, %d", seq[0].Order, seq[1].Order)
	}
}

func TestApplyOrderEmpty(t *testing.T) {
	store := &recordingStore{}
	if err := ApplyOrder(context.Background(), store, "trip-1", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.saved) != 0 {
		t.Fatalf("empty sequence should not reach the store")
	}
}
