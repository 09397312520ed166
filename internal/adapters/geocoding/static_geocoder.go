package geocoding

import (
	"context"
	"itinerary-planner-service/internal/domain"
)

// StaticGeocoder answers from a fixed address table. Lookups use the same
// whitespace normalization as ORSGeocoder.
type StaticGeocoder struct {
	m map[string]domain.Coordinates
}

func NewStaticGeocoder(entries map[string]domain.Coordinates) *StaticGeocoder {
	m := make(map[string]domain.Coordinates, len(entries))
	for addr, c := range entries {
		m[normalize(addr)] = c
	}
	return &StaticGeocoder{m: m}
}

func (g *StaticGeocoder) Geocode(_ context.Context, addresses []string) (map[string]domain.Coordinates, error) {
	out := make(map[string]domain.Coordinates)
	for _, a := range addresses {
		norm := normalize(a)
		if c, ok := g.m[norm]; ok {
			out[norm] = c
		}
	}
	return out, nil
}
