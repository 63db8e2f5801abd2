package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"grocery-route-service/internal/domain"
)

func testStore(id string, lon float64, items ...string) *domain.Store {
	return &domain.Store{
		StoreID:  id,
		Name:     "Store " + id,
		Location: domain.Coordinates{Lon: lon, Lat: 0},
		Items:    domain.NewItemSet(items...),
	}
}

// tableDistance builds a symmetric distance oracle from explicit pairs keyed
// by the points' Lon component. Unlisted pairs are effectively unreachable.
func tableDistance(pairs map[[2]float64]float64) DistanceFunc {
	return func(a, b domain.Coordinates) float64 {
		if d, ok := pairs[[2]float64{a.Lon, b.Lon}]; ok {
			return d
		}
		if d, ok := pairs[[2]float64{b.Lon, a.Lon}]; ok {
			return d
		}
		return 1000
	}
}

// The reference scenario: start at P0 needing milk and eggs. Store a is 2
// miles out stocking milk, b is 3 miles past a stocking eggs, c is 1 mile
// out stocking both. The one-stop full-coverage route must win.
func TestFindRoutesConcreteScenario(t *testing.T) {
	start := domain.Coordinates{Lon: 0, Lat: 0}
	stores := []*domain.Store{
		testStore("a", 1, "milk"),
		testStore("b", 2, "eggs"),
		testStore("c", 3, "milk", "eggs"),
	}
	dist := tableDistance(map[[2]float64]float64{
		{0, 1}: 2, // start -> a
		{0, 2}: 9, // start -> b
		{0, 3}: 1, // start -> c
		{1, 2}: 3, // a -> b
	})

	res, err := FindRoutesWithOptions(start, domain.NewItemSet("milk", "eggs"), stores, 10,
		TripSearchOptions{Distance: dist})
	require.NoError(t, err)
	require.False(t, res.Truncated)

	require.Len(t, res.Routes, 2)
	require.Equal(t, []string{"c"}, res.Routes[0].StoreIDs())
	require.Equal(t, []string{"a", "b"}, res.Routes[1].StoreIDs())

	require.InDelta(t, 1.0, res.Routes[0].TotalDistance, 1e-12)
	require.InDelta(t, 5.0, res.Routes[1].TotalDistance, 1e-12)

	// c covers everything, so its score is purely the distance term.
	require.InDelta(t, (1.0/10.0)/3.0, res.Routes[0].TotalScore, 1e-12)
	require.Less(t, res.Routes[0].TotalScore, res.Routes[1].TotalScore)
}

func TestFindRoutesInvariants(t *testing.T) {
	start := domain.Coordinates{Lon: 0, Lat: 0}
	needed := domain.NewItemSet("milk", "eggs", "bread")
	stores := []*domain.Store{
		testStore("s1", 1, "milk", "bread"),
		testStore("s2", 2, "eggs"),
		testStore("s3", 3, "milk", "eggs", "bread"),
		testStore("s4", 4, "eggs", "bread"),
	}
	dist := tableDistance(map[[2]float64]float64{
		{0, 1}: 2, {0, 2}: 3, {0, 3}: 6, {0, 4}: 4,
		{1, 2}: 2, {1, 3}: 5, {1, 4}: 3,
		{2, 3}: 4, {2, 4}: 2,
		{3, 4}: 3,
	})

	const budget = 12.0
	res, err := FindRoutesWithOptions(start, needed, stores, budget, TripSearchOptions{Distance: dist})
	require.NoError(t, err)
	require.NotEmpty(t, res.Routes)

	for _, r := range res.Routes {
		// Simple-path property: no store appears twice.
		seen := map[string]bool{}
		for _, id := range r.StoreIDs() {
			require.False(t, seen[id], "route %v visits %s twice", r.StoreIDs(), id)
			seen[id] = true
		}

		// Coverage property: the union of stop inventories covers the need.
		union := domain.NewItemSet()
		for _, stop := range r.Stops {
			union = union.Union(stop.Store.Items)
		}
		require.Empty(t, needed.Without(union).Items(), "route %v leaves items unmet", r.StoreIDs())

		// Budget property.
		require.LessOrEqual(t, r.TotalDistance, budget)

		// Running totals match the per-stop values.
		var distSum, scoreSum float64
		for _, stop := range r.Stops {
			distSum += stop.DistanceFromPrev
			scoreSum += stop.Score
		}
		require.InDelta(t, distSum, r.TotalDistance, 1e-12)
		require.InDelta(t, scoreSum, r.TotalScore, 1e-12)
	}

	// Ordering property: ascending by total score.
	for i := 1; i < len(res.Routes); i++ {
		require.LessOrEqual(t, res.Routes[i-1].TotalScore, res.Routes[i].TotalScore)
	}
}

func TestFindRoutesTrivialNeed(t *testing.T) {
	start := domain.Coordinates{Lon: 0, Lat: 0}
	stores := []*domain.Store{testStore("a", 1, "milk")}

	routes, err := FindRoutes(start, domain.NewItemSet(), stores, 10)
	require.NoError(t, err)
	require.Len(t, routes, 1)
	require.Empty(t, routes[0].Stops)
	require.Equal(t, 0.0, routes[0].TotalScore)
	require.Equal(t, 0.0, routes[0].TotalDistance)
}

func TestFindRoutesNoStores(t *testing.T) {
	start := domain.Coordinates{Lon: 0, Lat: 0}

	routes, err := FindRoutes(start, domain.NewItemSet("milk"), nil, 10)
	require.NoError(t, err)
	require.Empty(t, routes)
}

func TestFindRoutesNoRouteWithinBudget(t *testing.T) {
	start := domain.Coordinates{Lon: 0, Lat: 0}
	stores := []*domain.Store{testStore("a", 1, "milk")}
	dist := tableDistance(map[[2]float64]float64{{0, 1}: 50})

	// An empty result is the valid "no route found" signal, not an error.
	res, err := FindRoutesWithOptions(start, domain.NewItemSet("milk"), stores, 10,
		TripSearchOptions{Distance: dist})
	require.NoError(t, err)
	require.Empty(t, res.Routes)
}

func TestFindRoutesNoCoveragePruning(t *testing.T) {
	start := domain.Coordinates{Lon: 0, Lat: 0}
	stores := []*domain.Store{
		testStore("closest", 1, "coffee", "tea"), // nothing we need
		testStore("far", 2, "milk"),
	}
	dist := tableDistance(map[[2]float64]float64{
		{0, 1}: 1,
		{0, 2}: 8,
		{1, 2}: 1,
	})

	res, err := FindRoutesWithOptions(start, domain.NewItemSet("milk"), stores, 10,
		TripSearchOptions{Distance: dist})
	require.NoError(t, err)
	require.NotEmpty(t, res.Routes)

	// The geographically closest store contributes nothing and must never
	// appear as a stop.
	for _, r := range res.Routes {
		require.NotContains(t, r.StoreIDs(), "closest")
	}
}

func TestFindRoutesInvalidArguments(t *testing.T) {
	start := domain.Coordinates{Lon: 0, Lat: 0}
	stores := []*domain.Store{testStore("a", 1, "milk")}

	_, err := FindRoutes(start, domain.NewItemSet("milk"), stores, -1)
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = FindRoutes(domain.Unresolved(), domain.NewItemSet("milk"), stores, 10)
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = FindRoutesWithOptions(start, domain.NewItemSet("milk"), stores, 10,
		TripSearchOptions{Weights: ScoreWeights{Items: -1, Distance: 1}})
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestFindRoutesSkipsUnresolvedStores(t *testing.T) {
	start := domain.Coordinates{Lon: 0, Lat: 0}
	broken := testStore("broken", 0, "milk")
	broken.Location = domain.Unresolved()
	stores := []*domain.Store{
		broken,
		testStore("ok", 1, "milk"),
	}
	dist := tableDistance(map[[2]float64]float64{{0, 1}: 2})

	res, err := FindRoutesWithOptions(start, domain.NewItemSet("milk"), stores, 10,
		TripSearchOptions{Distance: dist})
	require.NoError(t, err)
	require.Equal(t, 1, res.SkippedStores)
	require.Len(t, res.Routes, 1)
	require.Equal(t, []string{"ok"}, res.Routes[0].StoreIDs())
}

func TestFindRoutesDeterministicTieBreak(t *testing.T) {
	start := domain.Coordinates{Lon: 0, Lat: 0}
	stores := []*domain.Store{
		testStore("s2", 2, "milk"),
		testStore("s1", 1, "milk"),
	}
	dist := tableDistance(map[[2]float64]float64{
		{0, 1}: 3,
		{0, 2}: 3,
	})

	// Identical scores: ties break by store-id sequence, and repeated runs
	// agree.
	for i := 0; i < 3; i++ {
		res, err := FindRoutesWithOptions(start, domain.NewItemSet("milk"), stores, 10,
			TripSearchOptions{Distance: dist})
		require.NoError(t, err)
		require.Len(t, res.Routes, 2)
		require.Equal(t, []string{"s1"}, res.Routes[0].StoreIDs())
		require.Equal(t, []string{"s2"}, res.Routes[1].StoreIDs())
		require.Equal(t, res.Routes[0].TotalScore, res.Routes[1].TotalScore)
	}
}

func TestFindRoutesWeightReversal(t *testing.T) {
	start := domain.Coordinates{Lon: 0, Lat: 0}
	stores := []*domain.Store{
		testStore("x", 1, "milk", "eggs"), // one far stop with everything
		testStore("y", 2, "milk"),         // two short hops
		testStore("z", 3, "eggs"),
	}
	dist := tableDistance(map[[2]float64]float64{
		{0, 1}: 9,
		{0, 2}: 1,
		{0, 3}: 2,
		{2, 3}: 1,
	})
	needed := domain.NewItemSet("milk", "eggs")

	// Coverage-heavy default weights favor the single full-coverage stop.
	res, err := FindRoutesWithOptions(start, needed, stores, 10,
		TripSearchOptions{Distance: dist})
	require.NoError(t, err)
	require.NotEmpty(t, res.Routes)
	require.Equal(t, []string{"x"}, res.Routes[0].StoreIDs())

	// Cranking the distance weight up biases the ranking toward the shorter
	// two-hop trip.
	res, err = FindRoutesWithOptions(start, needed, stores, 10,
		TripSearchOptions{Distance: dist, Weights: ScoreWeights{Items: 1, Distance: 9}})
	require.NoError(t, err)
	require.NotEmpty(t, res.Routes)
	require.Equal(t, []string{"y", "z"}, res.Routes[0].StoreIDs())
}

func TestFindRoutesTruncation(t *testing.T) {
	start := domain.Coordinates{Lon: 0, Lat: 0}
	stores := []*domain.Store{
		testStore("s1", 1, "milk", "eggs"),
		testStore("s2", 2, "milk", "eggs"),
		testStore("s3", 3, "milk", "eggs"),
		testStore("s4", 4, "milk", "eggs"),
	}
	dist := tableDistance(map[[2]float64]float64{
		{0, 1}: 1, {0, 2}: 1, {0, 3}: 1, {0, 4}: 1,
	})
	needed := domain.NewItemSet("milk", "eggs")

	full, err := FindRoutesWithOptions(start, needed, stores, 10,
		TripSearchOptions{Distance: dist})
	require.NoError(t, err)
	require.False(t, full.Truncated)
	require.Len(t, full.Routes, 4)

	capped, err := FindRoutesWithOptions(start, needed, stores, 10,
		TripSearchOptions{Distance: dist, MaxExpansions: 2})
	require.NoError(t, err)
	require.True(t, capped.Truncated)
	require.Less(t, len(capped.Routes), len(full.Routes))

	// Whatever was completed before the cutoff still honors the invariants.
	for _, r := range capped.Routes {
		require.LessOrEqual(t, r.TotalDistance, 10.0)
	}
}
