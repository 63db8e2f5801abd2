package distance

import (
	"context"
	"fmt"
	"log"

	"grocery-route-service/internal/domain"
	"grocery-route-service/internal/platform/obs"
	"grocery-route-service/internal/ports"
)

// ORSDistanceProvider serves road distances in miles via the OpenRouteService
// matrix endpoint.
//
// It coordinates:
//   - Persistent distance caching keyed by rounded coordinates
//   - External API calls with retry/backoff
//
// The provider is safe for concurrent use.
type ORSDistanceProvider struct {
	client        *orsClient
	profile       string
	distanceCache ports.DistanceCache
}

func NewORSDistanceProvider(apiKey string, distanceCache ports.DistanceCache) (*ORSDistanceProvider, error) {
	client, err := newORSClient(apiKey)
	if err != nil {
		return nil, err
	}

	return &ORSDistanceProvider{
		client:        client,
		profile:       "driving-car",
		distanceCache: distanceCache,
	}, nil
}

// Delegate to the batched path to reuse caching and matrix logic.
func (o *ORSDistanceProvider) Distance(
	ctx context.Context,
	from, to domain.Coordinates,
) (float64, error) {
	miles, err := o.Distances(ctx, from, []domain.Coordinates{to})
	if err != nil {
		return 0, err
	}
	return miles[0], nil
}

// Distances computes road distances in miles from one origin to many
// destinations, in destination order.
func (o *ORSDistanceProvider) Distances(
	ctx context.Context,
	from domain.Coordinates,
	to []domain.Coordinates,
) (_ []float64, err error) {
	defer obs.Time(ctx, "ors.Distances")(&err)

	if !from.Valid() {
		return nil, fmt.Errorf("ors distances: origin is unresolved")
	}
	for i, t := range to {
		if !t.Valid() {
			return nil, fmt.Errorf("ors distances: destination %d is unresolved", i)
		}
	}
	if len(to) == 0 {
		return []float64{}, nil
	}

	origin := coordKey(from)
	destKeys := make([]string, len(to))
	for i, t := range to {
		destKeys[i] = coordKey(t)
	}

	hits := make(map[string]float64)
	// Check the persistent distance cache before issuing external API calls.
	if o.distanceCache != nil {
		hits, err = o.distanceCache.GetMany(ctx, origin, destKeys)
		if err != nil {
			return nil, fmt.Errorf("ors distances: distance cache: %w", err)
		}
	}

	missIdx := make([]int, 0, len(to))
	seen := make(map[string]struct{}, len(to))
	for i, k := range destKeys {
		if _, ok := hits[k]; ok {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		missIdx = append(missIdx, i)
	}

	if len(missIdx) > 0 {
		missCoords := make([]domain.Coordinates, len(missIdx))
		missKeys := make([]string, len(missIdx))
		for n, i := range missIdx {
			missCoords[n] = to[i]
			missKeys[n] = destKeys[i]
		}

		fetched, err := o.fetchMatrixRow(ctx, from, missCoords)
		if err != nil {
			return nil, fmt.Errorf("ors distances: fetch matrix row: %w", err)
		}

		fresh := make(map[string]float64, len(missKeys))
		for n, k := range missKeys {
			hits[k] = fetched[n]
			fresh[k] = fetched[n]
		}

		if o.distanceCache != nil {
			if err := o.distanceCache.PutMany(ctx, origin, fresh); err != nil {
				log.Printf("distance cache write failed: %v", err)
			}
		}
	}

	out := make([]float64, len(to))
	for i, k := range destKeys {
		d, ok := hits[k]
		if !ok {
			return nil, fmt.Errorf("ors distances: missing result for destination %d", i)
		}
		out[i] = d
	}

	return out, nil
}
