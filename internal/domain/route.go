package domain

import "slices"

// Represents a single stop within a shopping route.
// A RouteStop records the store visited, the distance traveled from the
// previous stop (or from the start, for the first stop), and the marginal
// score this stop contributed. Stops are never mutated once appended.
type RouteStop struct {
	Store            *Store
	DistanceFromPrev float64
	Score            float64
}

// Represents an ordered sequence of store visits from a start point.
// A Route is the output of the route search and carries running totals that
// are always the sum of the per-stop values. Routes have value semantics:
// Extend returns a new Route and never shares its stop slice, so sibling
// branches of the search cannot observe each other's stops.
type Route struct {
	Stops         []RouteStop
	TotalDistance float64
	TotalScore    float64
}

// Extend returns a new Route with the stop appended and the running totals
// updated. The stop slice is copied; the receiver is left untouched.
func (r Route) Extend(stop RouteStop) Route {
	stops := make([]RouteStop, len(r.Stops), len(r.Stops)+1)
	copy(stops, r.Stops)
	stops = append(stops, stop)

	return Route{
		Stops:         stops,
		TotalDistance: r.TotalDistance + stop.DistanceFromPrev,
		TotalScore:    r.TotalScore + stop.Score,
	}
}

// Contains reports whether the route already visits the given store.
func (r Route) Contains(storeID string) bool {
	for _, s := range r.Stops {
		if s.Store != nil && s.Store.StoreID == storeID {
			return true
		}
	}
	return false
}

// StoreIDs returns the visited store identifiers in visit order.
func (r Route) StoreIDs() []string {
	ids := make([]string, 0, len(r.Stops))
	for _, s := range r.Stops {
		if s.Store != nil {
			ids = append(ids, s.Store.StoreID)
		}
	}
	return ids
}

// SameStores reports whether two routes visit the same stores in the same
// order. Route identity is by store sequence, not memory identity.
func (r Route) SameStores(other Route) bool {
	return slices.Equal(r.StoreIDs(), other.StoreIDs())
}

// EndLocation returns the location of the last stop, or start for an empty
// route.
func (r Route) EndLocation(start Coordinates) Coordinates {
	if len(r.Stops) == 0 {
		return start
	}
	last := r.Stops[len(r.Stops)-1]
	if last.Store == nil {
		return start
	}
	return last.Store.Location
}
