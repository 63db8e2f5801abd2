package distance

import (
	"context"
	"fmt"
	"sync/atomic"

	"grocery-route-service/internal/domain"
)

type MockPair struct {
	From, To domain.Coordinates
	Miles    float64
}

// MockProvider serves fixture distances for tests. Pairs are stored in both
// directions. Safe for concurrent lookups (the matrix builder fans out).
type MockProvider struct {
	m     map[string]float64
	calls atomic.Int64
}

func NewMockProvider(pairs []MockPair) *MockProvider {
	m := make(map[string]float64, 2*len(pairs))
	for _, p := range pairs {
		m[coordPairKey(p.From, p.To)] = p.Miles
		m[coordPairKey(p.To, p.From)] = p.Miles
	}
	return &MockProvider{m: m}
}

func (p *MockProvider) Distance(ctx context.Context, from, to domain.Coordinates) (float64, error) {
	p.calls.Add(1)
	d, ok := p.m[coordPairKey(from, to)]
	if !ok {
		return 0, fmt.Errorf("missing pair (%v,%v) -> (%v,%v)", from.Lon, from.Lat, to.Lon, to.Lat)
	}
	return d, nil
}

// CallCount reports how many lookups the provider served.
func (p *MockProvider) CallCount() int { return int(p.calls.Load()) }
