package distance

import (
	"fmt"
	"savings-route-service/internal/domain"
)

// MockPair is an explicit travel cost between two node IDs.
type MockPair struct {
	From, To int
	Cost     float64
}

// MockDistanceProvider serves costs from a fixed table. A pair registered in
// one direction also answers the reverse lookup unless that direction has
// its own entry.
type MockDistanceProvider struct {
	m map[[2]int]float64
}

func NewMockDistanceProvider(pairs []MockPair) *MockDistanceProvider {
	m := make(map[[2]int]float64, len(pairs))
	for _, p := range pairs {
		m[[2]int{p.From, p.To}] = p.Cost
	}
	return &MockDistanceProvider{m: m}
}

func (p *MockDistanceProvider) GetDistance(from, to *domain.Node) (float64, error) {
	if from.ID == to.ID {
		return 0, nil
	}
	if c, ok := p.m[[2]int{from.ID, to.ID}]; ok {
		return c, nil
	}
	if c, ok := p.m[[2]int{to.ID, from.ID}]; ok {
		return c, nil
	}
	return 0, fmt.Errorf("missing pair %d -> %d", from.ID, to.ID)
}
