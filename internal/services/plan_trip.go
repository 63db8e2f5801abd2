package services

import (
	"context"
	"fmt"
	"log"
	"slices"
	"strings"

	"grocery-route-service/internal/domain"
	"grocery-route-service/internal/platform/obs"
	"grocery-route-service/internal/ports"
)

// DefaultMaxStores bounds how many candidate stores enter the exponential
// search when the request does not say otherwise.
const DefaultMaxStores = 10

type PlanTripRequest struct {
	// Start is used directly when provided; otherwise Address is geocoded.
	// Nil means no start coordinates were given. A pointer keeps absence
	// distinct from an explicit (0,0), which is a valid location.
	Start   *domain.Coordinates
	Address string

	// Items the user needs, by identifier.
	Items []string

	// MaxDistanceMiles is the total travel budget for the trip.
	MaxDistanceMiles float64

	// MaxStores caps the candidate set fed to the search. Zero means
	// DefaultMaxStores.
	MaxStores int
}

// TripPlan is the orchestration result: where the trip starts and the ranked
// candidate routes, plus search diagnostics.
type TripPlan struct {
	Start         domain.Coordinates
	Routes        []domain.Route
	Truncated     bool
	SkippedStores int
}

// PlanShoppingTrip resolves the start location, gathers candidate stores,
// precomputes their pairwise distances, and runs the route search. All I/O
// happens here, before the search; the search itself stays pure.
func PlanShoppingTrip(
	ctx context.Context,
	req PlanTripRequest,
	stores ports.StoreRepository,
	geocoder ports.Geocoder,
	provider ports.DistanceProvider,
	opts TripSearchOptions,
) (_ TripPlan, err error) {
	defer obs.Time(ctx, "services.PlanShoppingTrip")(&err)

	if req.MaxDistanceMiles <= 0 {
		return TripPlan{}, fmt.Errorf("plan trip: max distance must be positive, got %v: %w",
			req.MaxDistanceMiles, ErrInvalidArgument)
	}

	needed := domain.NewItemSet(req.Items...)
	if needed.Len() == 0 {
		return TripPlan{}, fmt.Errorf("plan trip: at least one item is required: %w", ErrInvalidArgument)
	}

	var start domain.Coordinates
	if req.Start != nil {
		start = *req.Start
	} else {
		address := strings.TrimSpace(req.Address)
		if address == "" {
			return TripPlan{}, fmt.Errorf("plan trip: either start coordinates or an address is required: %w",
				ErrInvalidArgument)
		}
		if geocoder == nil {
			return TripPlan{}, fmt.Errorf("plan trip: no geocoder configured to resolve %q: %w",
				address, ErrInvalidArgument)
		}
		start, err = geocoder.Geocode(ctx, address)
		if err != nil {
			return TripPlan{}, fmt.Errorf("plan trip: geocode %q: %w", address, err)
		}
	}
	if !start.Valid() {
		return TripPlan{}, fmt.Errorf("plan trip: start location did not resolve to valid coordinates: %w",
			ErrInvalidArgument)
	}

	nearby, err := stores.StoresNear(ctx, start, req.MaxDistanceMiles)
	if err != nil {
		return TripPlan{}, fmt.Errorf("plan trip: stores near start: %w", err)
	}

	// The catalog may over-return; drop unresolved stores with a warning and
	// re-validate distances ourselves.
	skipped := 0
	candidates := make([]*domain.Store, 0, len(nearby))
	startDist := make(map[string]float64, len(nearby))
	for _, s := range nearby {
		if s == nil {
			continue
		}
		if !s.Location.Valid() {
			log.Printf("op=plan_trip warn=unresolved_store_location store_id=%s", s.StoreID)
			skipped++
			continue
		}
		d, derr := provider.Distance(ctx, start, s.Location)
		if derr != nil {
			return TripPlan{}, fmt.Errorf("plan trip: distance start -> store %s: %w", s.StoreID, derr)
		}
		if d > req.MaxDistanceMiles {
			continue
		}
		candidates = append(candidates, s)
		startDist[s.StoreID] = d
	}

	// Closest stores first, then cap the candidate set: the search is
	// exponential in store count.
	slices.SortFunc(candidates, func(a, b *domain.Store) int {
		da, db := startDist[a.StoreID], startDist[b.StoreID]
		if da < db {
			return -1
		}
		if da > db {
			return 1
		}
		return strings.Compare(a.StoreID, b.StoreID)
	})
	maxStores := req.MaxStores
	if maxStores <= 0 {
		maxStores = DefaultMaxStores
	}
	if len(candidates) > maxStores {
		candidates = candidates[:maxStores]
	}

	points := make([]domain.Coordinates, 0, 1+len(candidates))
	points = append(points, start)
	for _, s := range candidates {
		points = append(points, s.Location)
	}

	matrix, err := BuildDistanceMatrix(ctx, provider, points)
	if err != nil {
		return TripPlan{}, fmt.Errorf("plan trip: %w", err)
	}
	opts.Distance = matrix.Func()

	res, err := FindRoutesWithOptions(start, needed, candidates, req.MaxDistanceMiles, opts)
	if err != nil {
		return TripPlan{}, fmt.Errorf("plan trip: %w", err)
	}

	return TripPlan{
		Start:         start,
		Routes:        res.Routes,
		Truncated:     res.Truncated,
		SkippedStores: skipped + res.SkippedStores,
	}, nil
}
