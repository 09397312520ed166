package services

import (
	"context"
	"errors"
	"fmt"
	"itinerary-planner-service/internal/domain"
	"itinerary-planner-service/internal/platform/obs"
	"itinerary-planner-service/internal/ports"
)

// PersistOrderError reports that new order values were applied in memory but
// the store did not accept them. The caller decides whether to retry.
type PersistOrderError struct {
	TripID string
	Err    error
}

func (e *PersistOrderError) Error() string {
	return fmt.Sprintf("apply order: persist trip %q: %v", e.TripID, e.Err)
}

func (e *PersistOrderError) Unwrap() error { return e.Err }

// ApplyOrder sets each activity's Order to its index in seq and persists the
// new values through store in one call. seq itself is never reordered.
//
// A persistence failure is returned as *PersistOrderError; the in-memory
// Order values stay applied.
func ApplyOrder(
	ctx context.Context,
	store ports.ActivityStore,
	tripID string,
	seq []*domain.Activity,
) (err error) {
	defer obs.Time(ctx, "services.ApplyOrder")(&err)

	for i, a := range seq {
		a.Order = i
	}

	if len(seq) == 0 {
		return nil
	}

	if store == nil {
		return &PersistOrderError{TripID: tripID, Err: errors.New("activity store is nil")}
	}

	if err := store.SaveOrder(ctx, tripID, seq); err != nil {
		return &PersistOrderError{TripID: tripID, Err: err}
	}

	return nil
}
