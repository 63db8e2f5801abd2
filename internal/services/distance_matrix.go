package services

import (
	"context"
	"fmt"
	"sync"

	"grocery-route-service/internal/domain"
	"grocery-route-service/internal/geo"
	"grocery-route-service/internal/ports"
)

type matrixRowResult struct {
	origin int
	miles  []float64
	err    error
}

// DistanceMatrix holds precomputed pairwise distances in miles. The planner
// fetches all geography once, up front, so the search itself never does I/O.
type DistanceMatrix struct {
	miles map[string]float64
}

func pairKey(a, b domain.Coordinates) string {
	// Rounding keeps keys stable across float formatting noise.
	return fmt.Sprintf("%.6f,%.6f|%.6f,%.6f", a.Lon, a.Lat, b.Lon, b.Lat)
}

// BuildDistanceMatrix fetches the distance between every ordered pair of
// points from the provider, one row per origin, using batched lookups when
// supported and a bounded number of concurrent requests.
func BuildDistanceMatrix(
	ctx context.Context,
	provider ports.DistanceProvider,
	points []domain.Coordinates,
) (*DistanceMatrix, error) {
	m := &DistanceMatrix{miles: make(map[string]float64, len(points)*len(points))}
	if len(points) < 2 {
		return m, nil
	}

	mp, hasMatrix := provider.(ports.DistanceMatrixProvider)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sem := make(chan struct{}, 5)
	resultsCh := make(chan matrixRowResult, len(points))
	var wg sync.WaitGroup

	for i := range points {
		targets := make([]domain.Coordinates, 0, len(points)-1)
		for j := range points {
			if j != i {
				targets = append(targets, points[j])
			}
		}

		wg.Add(1)
		go func(origin int, targets []domain.Coordinates) {
			sem <- struct{}{}
			defer wg.Done()
			defer func() { <-sem }()

			var miles []float64
			if hasMatrix {
				var e error
				miles, e = mp.Distances(ctx, points[origin], targets)
				if e != nil {
					resultsCh <- matrixRowResult{origin: origin, err: fmt.Errorf("build distance matrix: row %d: %w", origin, e)}
					cancel()
					return
				}
				if len(miles) != len(targets) {
					resultsCh <- matrixRowResult{origin: origin, err: fmt.Errorf(
						"build distance matrix: row %d: got %d distances for %d targets", origin, len(miles), len(targets))}
					cancel()
					return
				}
			} else {
				miles = make([]float64, len(targets))
				for t, target := range targets {
					d, e := provider.Distance(ctx, points[origin], target)
					if e != nil {
						resultsCh <- matrixRowResult{origin: origin, err: fmt.Errorf("build distance matrix: row %d: %w", origin, e)}
						cancel()
						return
					}
					miles[t] = d
				}
			}

			resultsCh <- matrixRowResult{origin: origin, miles: miles}
		}(i, targets)
	}

	wg.Wait()
	close(resultsCh)

	var rowErr error
	for res := range resultsCh {
		if res.err != nil {
			if rowErr == nil {
				rowErr = res.err
			}
			continue
		}

		t := 0
		for j := range points {
			if j == res.origin {
				continue
			}
			m.miles[pairKey(points[res.origin], points[j])] = res.miles[t]
			t++
		}
	}
	if rowErr != nil {
		return nil, rowErr
	}

	return m, nil
}

// Func adapts the matrix into the search's distance oracle. Pairs missing
// from the matrix fall back to the great-circle distance, so the search never
// blocks on I/O mid-branch.
func (m *DistanceMatrix) Func() DistanceFunc {
	return func(a, b domain.Coordinates) float64 {
		if d, ok := m.miles[pairKey(a, b)]; ok {
			return d
		}
		return geo.Distance(a, b)
	}
}

// Len reports how many ordered pairs the matrix holds.
func (m *DistanceMatrix) Len() int { return len(m.miles) }
