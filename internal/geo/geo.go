// Package geo provides the great-circle distance metric and bounding-box
// helpers used by the planner and the store catalog. Distances are in miles
// throughout the service.
package geo

import (
	"github.com/paulmach/orb"
	orbgeo "github.com/paulmach/orb/geo"

	"grocery-route-service/internal/domain"
)

const metersPerMile = 1609.344

// MetersToMiles converts a distance in meters to statute miles.
func MetersToMiles(meters float64) float64 { return meters / metersPerMile }

// MilesToMeters converts a distance in statute miles to meters.
func MilesToMeters(miles float64) float64 { return miles * metersPerMile }

// Distance returns the great-circle distance in miles between two points.
// It is symmetric and non-negative.
func Distance(a, b domain.Coordinates) float64 {
	return MetersToMiles(orbgeo.DistanceHaversine(point(a), point(b)))
}

// BoundAround returns the lon/lat box covering radiusMiles around center.
// Callers use it for coarse candidate retrieval; results still need exact
// distance checks.
func BoundAround(center domain.Coordinates, radiusMiles float64) (minLon, minLat, maxLon, maxLat float64) {
	b := orbgeo.NewBoundAroundPoint(point(center), MilesToMeters(radiusMiles))
	return b.Min.Lon(), b.Min.Lat(), b.Max.Lon(), b.Max.Lat()
}

func point(c domain.Coordinates) orb.Point {
	return orb.Point{c.Lon, c.Lat}
}
