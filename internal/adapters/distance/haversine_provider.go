package distance

import (
	"context"

	"grocery-route-service/internal/domain"
	"grocery-route-service/internal/geo"
)

// HaversineProvider serves great-circle distances computed locally. It is the
// default provider: no API key, no network, no cache needed.
type HaversineProvider struct{}

func NewHaversineProvider() *HaversineProvider { return &HaversineProvider{} }

func (p *HaversineProvider) Distance(ctx context.Context, from, to domain.Coordinates) (float64, error) {
	return geo.Distance(from, to), nil
}

func (p *HaversineProvider) Distances(ctx context.Context, from domain.Coordinates, to []domain.Coordinates) ([]float64, error) {
	out := make([]float64, len(to))
	for i, t := range to {
		out[i] = geo.Distance(from, t)
	}
	return out, nil
}
