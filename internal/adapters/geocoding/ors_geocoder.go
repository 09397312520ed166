package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"itinerary-planner-service/internal/domain"
	"itinerary-planner-service/internal/platform/obs"
	"log"
	"net/http"
	"strings"
	"time"
)

// Cache stores address -> coordinate lookups between requests.
type Cache interface {
	GetMany(ctx context.Context, addresses []string) (map[string]domain.Coordinates, error)
	PutMany(ctx context.Context, results map[string]domain.Coordinates) error
}

// ORSGeocoder implements ports.Geocoder using the OpenRouteService
// /geocode/search endpoint, with an optional persistent cache in front.
//
// Addresses with no result are left out of the returned map; only transport
// and decoding failures are errors. Safe for concurrent use.
type ORSGeocoder struct {
	session     *http.Client
	apiKey      string
	baseURL     string
	country     string
	cache       Cache
	maxAttempts int
	retryDelay  time.Duration
}

// NewORSGeocoder builds a geocoder. country, if set, restricts results to
// that ISO country code. cache may be nil.
func NewORSGeocoder(apiKey, country string, cache Cache) (*ORSGeocoder, error) {
	if apiKey == "" {
		return nil, errors.New("ORS api key is empty")
	}

	return &ORSGeocoder{
		session:     &http.Client{Timeout: 10 * time.Second},
		apiKey:      apiKey,
		baseURL:     "https://api.openrouteservice.org",
		country:     country,
		cache:       cache,
		maxAttempts: 4,
		retryDelay:  200 * time.Millisecond,
	}, nil
}

type geocodeResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// normalize ensures consistent cache keys by collapsing whitespace.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func (g *ORSGeocoder) Geocode(
	ctx context.Context,
	addresses []string,
) (_ map[string]domain.Coordinates, err error) {
	defer obs.Time(ctx, "ors.Geocode")(&err)

	seen := make(map[string]struct{}, len(addresses))
	needed := make([]string, 0, len(addresses))
	for _, a := range addresses {
		norm := normalize(a)
		if norm == "" {
			continue
		}
		if _, ok := seen[norm]; ok {
			continue
		}
		seen[norm] = struct{}{}
		needed = append(needed, norm)
	}

	out := make(map[string]domain.Coordinates, len(needed))
	if len(needed) == 0 {
		return out, nil
	}

	// Resolve via cache before calling ORS.
	if g.cache != nil {
		hits, err := g.cache.GetMany(ctx, needed)
		if err != nil {
			log.Printf("req_id=%s geocode cache read failed: %v", obs.RequestID(ctx), err)
		}
		for k, v := range hits {
			out[k] = v
		}
	}

	fresh := make(map[string]domain.Coordinates)
	for _, addr := range needed {
		if _, ok := out[addr]; ok {
			continue
		}

		c, found, err := g.geocodeOne(ctx, addr)
		if err != nil {
			return nil, fmt.Errorf("geocode %q: %w", addr, err)
		}
		if !found {
			continue
		}
		fresh[addr] = c
		out[addr] = c
	}

	if g.cache != nil && len(fresh) > 0 {
		if err := g.cache.PutMany(ctx, fresh); err != nil {
			log.Printf("req_id=%s geocode cache write failed: %v", obs.RequestID(ctx), err)
		}
	}

	return out, nil
}

func (g *ORSGeocoder) geocodeOne(ctx context.Context, addr string) (domain.Coordinates, bool, error) {
	endpoint := g.baseURL + "/geocode/search"

	resp, err := g.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := g.newRequest(ctx, http.MethodGet, endpoint)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("text", addr)
		q.Set("size", "1")
		if g.country != "" {
			q.Set("boundary.country", g.country)
		}
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("decode geocode response: %w", err)
	}

	if len(decoded.Features) == 0 {
		return domain.Coordinates{}, false, nil
	}

	// GeoJSON order is [lon, lat].
	coords := decoded.Features[0].Geometry.Coordinates
	if len(coords) != 2 {
		return domain.Coordinates{}, false, fmt.Errorf("invalid coordinate format for %q", addr)
	}

	c := domain.Coordinates{Lon: coords[0], Lat: coords[1]}
	if !c.Valid() {
		return domain.Coordinates{}, false, nil
	}
	return c, true, nil
}
