package distance

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"grocery-route-service/internal/domain"
	"grocery-route-service/internal/platform/obs"
	"grocery-route-service/internal/ports"
)

type geocodeResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// ORSGeocoder resolves postal addresses to coordinates via the
// OpenRouteService /geocode/search endpoint, with a persistent read-through
// cache keyed by the normalized address.
type ORSGeocoder struct {
	client       *orsClient
	geocodeCache ports.GeocodeCache
}

func NewORSGeocoder(apiKey string, geocodeCache ports.GeocodeCache) (*ORSGeocoder, error) {
	client, err := newORSClient(apiKey)
	if err != nil {
		return nil, err
	}

	return &ORSGeocoder{
		client:       client,
		geocodeCache: geocodeCache,
	}, nil
}

// normalize ensures consistent cache keys by collapsing whitespace.
func normalizeAddress(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func (g *ORSGeocoder) Geocode(ctx context.Context, address string) (_ domain.Coordinates, err error) {
	defer obs.Time(ctx, "ors.Geocode")(&err)

	norm := normalizeAddress(address)
	if norm == "" {
		return domain.Coordinates{}, fmt.Errorf("geocode: address must be non-empty")
	}

	// Check the persistent cache before calling ORS.
	if g.geocodeCache != nil {
		hits, err := g.geocodeCache.GetMany(ctx, []string{norm})
		if err != nil {
			return domain.Coordinates{}, fmt.Errorf("geocode %q: cache: %w", norm, err)
		}
		if c, ok := hits[norm]; ok {
			return c, nil
		}
	}

	coords, err := g.fetch(ctx, norm)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: %w", norm, err)
	}

	if g.geocodeCache != nil {
		if err := g.geocodeCache.PutMany(ctx, map[string]domain.Coordinates{norm: coords}); err != nil {
			log.Printf("geocode cache write failed: %v", err)
		}
	}

	return coords, nil
}

func (g *ORSGeocoder) fetch(ctx context.Context, norm string) (domain.Coordinates, error) {
	endpoint := g.client.baseURL + "/geocode/search"

	resp, err := g.client.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := g.client.newRequest(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("text", norm)
		q.Set("boundary.country", "US")
		q.Set("size", "1")
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Coordinates{}, fmt.Errorf("decode geocode response: %w", err)
	}

	if len(decoded.Features) == 0 {
		return domain.Coordinates{}, fmt.Errorf("no geocode results")
	}

	coords := decoded.Features[0].Geometry.Coordinates
	if len(coords) != 2 {
		return domain.Coordinates{}, fmt.Errorf("invalid coordinate format")
	}

	return domain.Coordinates{Lon: coords[0], Lat: coords[1]}, nil
}
