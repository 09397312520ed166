package services

import (
	"context"
	"fmt"
	"itinerary-planner-service/internal/domain"
	"itinerary-planner-service/internal/ports"
	"strings"
)

// ResolveLocations fills in Location for activities that have an address but
// no coordinates. It returns how many activities were resolved. Addresses the
// geocoder cannot resolve are left without a location.
func ResolveLocations(
	ctx context.Context,
	geocoder ports.Geocoder,
	activities []*domain.Activity,
) (int, error) {
	if geocoder == nil {
		return 0, nil
	}

	pending := make([]*domain.Activity, 0)
	addresses := make([]string, 0)
	seen := map[string]struct{}{}
	for _, a := range activities {
		if a == nil || a.HasLocation() {
			continue
		}
		addr := normalizeAddress(a.Address)
		if addr == "" {
			continue
		}
		pending = append(pending, a)
		if _, ok := seen[addr]; ok {
			continue
		}
		seen[addr] = struct{}{}
		addresses = append(addresses, addr)
	}

	if len(addresses) == 0 {
		return 0, nil
	}

	coords, err := geocoder.Geocode(ctx, addresses)
	if err != nil {
		return 0, fmt.Errorf("resolve locations: geocode %d addresses: %w", len(addresses), err)
	}

	resolved := 0
	for _, a := range pending {
		c, ok := coords[normalizeAddress(a.Address)]
		if !ok || !c.Valid() {
			continue
		}
		a.Location = &domain.Coordinates{Lat: c.Lat, Lon: c.Lon}
		resolved++
	}

	return resolved, nil
}

// normalizeAddress collapses whitespace so equal addresses share one lookup.
func normalizeAddress(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
