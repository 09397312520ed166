package ports

import (
	"context"
	"itinerary-planner-service/internal/domain"
)

// Port: a boundary for reading trips and persisting activity order.
type ActivityStore interface {
	// Retrieve a trip with all of its activities.
	// Returns domain.ErrTripNotFound when the trip does not exist.
	GetTrip(ctx context.Context, tripID string) (*domain.Trip, error)

	// Persist the Order field of every given activity as one atomic unit:
	// readers observe either all of the new values or none of them.
	SaveOrder(ctx context.Context, tripID string, activities []*domain.Activity) error
}
