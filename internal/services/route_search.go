package services

import (
	"errors"
	"fmt"
	"slices"
	"sort"

	"grocery-route-service/internal/domain"
	"grocery-route-service/internal/geo"
)

// ErrInvalidArgument marks request errors the caller should surface as bad
// input (HTTP 400) rather than as an internal failure.
var ErrInvalidArgument = errors.New("invalid argument")

// DistanceFunc is the distance oracle the search consults. It must be
// symmetric and non-negative; the search treats it as opaque.
type DistanceFunc func(a, b domain.Coordinates) float64

// TripSearchOptions tunes a route search. The zero value means: default
// weights, great-circle distances, no expansion limit.
type TripSearchOptions struct {
	// Weights for the stop scoring blend. Zero value falls back to
	// DefaultScoreWeights.
	Weights ScoreWeights

	// Distance oracle. Nil falls back to great-circle miles.
	Distance DistanceFunc

	// MaxExpansions caps how many stores the search may consider across all
	// branches, as a safety valve against pathological inputs. Zero or
	// negative means unlimited. When the cap is hit the search stops
	// expanding and returns the completed routes found so far, with
	// Truncated set.
	MaxExpansions int
}

// TripSearchResult carries the ranked routes plus search diagnostics.
type TripSearchResult struct {
	// Routes sorted ascending by total score (best first).
	Routes []domain.Route

	// Truncated reports that the expansion cap stopped the search early;
	// Routes still holds every route completed up to that point.
	Truncated bool

	// SkippedStores counts candidate stores dropped for having an
	// unresolved location.
	SkippedStores int
}

// FindRoutes explores orderings of candidate stores that collectively cover
// the needed items within the distance budget, and returns them ranked best
// to worst. It is a convenience wrapper over FindRoutesWithOptions with
// default options.
func FindRoutes(
	start domain.Coordinates,
	needed domain.ItemSet,
	stores []*domain.Store,
	maxTotalDistance float64,
) ([]domain.Route, error) {
	res, err := FindRoutesWithOptions(start, needed, stores, maxTotalDistance, TripSearchOptions{})
	if err != nil {
		return nil, err
	}
	return res.Routes, nil
}

// FindRoutesWithOptions is the full search entry point: a depth-first
// backtracking exploration of simple paths through the candidate stores,
// rooted at start.
//
// Every returned route visits each store at most once, covers all needed
// items, and stays within maxTotalDistance. A store contributing no needed
// item is never visited. The search is pure: it never mutates its inputs,
// and sibling branches share no state since extending a route copies it.
func FindRoutesWithOptions(
	start domain.Coordinates,
	needed domain.ItemSet,
	stores []*domain.Store,
	maxTotalDistance float64,
	opts TripSearchOptions,
) (TripSearchResult, error) {
	if maxTotalDistance < 0 {
		return TripSearchResult{}, fmt.Errorf("find routes: maxTotalDistance must be non-negative, got %v: %w",
			maxTotalDistance, ErrInvalidArgument)
	}
	if !start.Valid() {
		return TripSearchResult{}, fmt.Errorf("find routes: start location is unresolved: %w", ErrInvalidArgument)
	}

	weights := opts.Weights
	if weights == (ScoreWeights{}) {
		weights = DefaultScoreWeights()
	}
	if err := weights.Validate(); err != nil {
		return TripSearchResult{}, fmt.Errorf("find routes: %w: %w", err, ErrInvalidArgument)
	}

	dist := opts.Distance
	if dist == nil {
		dist = geo.Distance
	}

	// Nothing needed: a zero-stop route is the complete, best answer.
	if needed.Len() == 0 {
		return TripSearchResult{Routes: []domain.Route{{}}}, nil
	}

	// Keep only stores with a resolved location within direct reach of the
	// start. One bad store must not deny a plan built from the rest.
	skipped := 0
	candidates := make([]*domain.Store, 0, len(stores))
	for _, s := range stores {
		if s == nil || !s.Location.Valid() {
			skipped++
			continue
		}
		if dist(start, s.Location) > maxTotalDistance {
			continue
		}
		candidates = append(candidates, s)
	}
	slices.SortFunc(candidates, func(a, b *domain.Store) int {
		if a.StoreID < b.StoreID {
			return -1
		}
		if a.StoreID > b.StoreID {
			return 1
		}
		return 0
	})

	search := &routeSearch{
		start:      start,
		candidates: candidates,
		maxDist:    maxTotalDistance,
		weights:    weights,
		dist:       dist,
		limit:      opts.MaxExpansions,
	}
	search.explore(domain.Route{}, needed)

	sortRoutes(search.found)

	return TripSearchResult{
		Routes:        search.found,
		Truncated:     search.truncated,
		SkippedStores: skipped,
	}, nil
}

type routeSearch struct {
	start      domain.Coordinates
	candidates []*domain.Store
	maxDist    float64
	weights    ScoreWeights
	dist       DistanceFunc

	// limit caps total expansions; <= 0 means unlimited.
	limit      int
	expansions int
	truncated  bool

	found []domain.Route
}

// explore extends route with every viable unvisited store and recurses.
// Each branch receives its own route value and needed set; nothing here is
// shared between siblings.
func (rs *routeSearch) explore(route domain.Route, needed domain.ItemSet) {
	if needed.Len() == 0 {
		rs.found = append(rs.found, route)
		return
	}

	from := route.EndLocation(rs.start)

	for _, s := range rs.candidates {
		if rs.truncated {
			return
		}
		if route.Contains(s.StoreID) {
			continue
		}
		if !rs.spend() {
			return
		}

		covered := s.Items.Intersect(needed)
		if covered.Len() == 0 {
			// A store contributing no needed item never improves the route.
			continue
		}

		leg := rs.dist(from, s.Location)
		if route.TotalDistance+leg > rs.maxDist {
			continue
		}

		score := StopScore(s.Items, needed, leg, rs.maxDist, rs.weights)
		next := route.Extend(domain.RouteStop{
			Store:            s,
			DistanceFromPrev: leg,
			Score:            score,
		})
		rs.explore(next, needed.Without(covered))
	}
}

// spend consumes one unit of the expansion budget. It reports false, and
// marks the search truncated, once the budget is exhausted.
func (rs *routeSearch) spend() bool {
	if rs.limit <= 0 {
		return true
	}
	if rs.expansions >= rs.limit {
		rs.truncated = true
		return false
	}
	rs.expansions++
	return true
}

// sortRoutes orders routes ascending by total score, breaking ties by the
// lexicographic store-identifier sequence so results are reproducible.
func sortRoutes(routes []domain.Route) {
	sort.SliceStable(routes, func(i, j int) bool {
		if routes[i].TotalScore != routes[j].TotalScore {
			return routes[i].TotalScore < routes[j].TotalScore
		}
		return slices.Compare(routes[i].StoreIDs(), routes[j].StoreIDs()) < 0
	})
}
