package ports

import (
	"context"
	"itinerary-planner-service/internal/domain"
)

// Contract for resolving free-text addresses into coordinates.
type Geocoder interface {
	// Return coordinates for every address that could be resolved.
	// Unresolvable addresses are absent from the result, not an error.
	Geocode(ctx context.Context, addresses []string) (map[string]domain.Coordinates, error)
}
