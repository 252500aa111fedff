package distance

import (
	"context"
	"fmt"
	"savings-route-service/internal/domain"
)

// EuclideanDistanceProvider computes straight-line planar distances.
// It is stateless and safe for concurrent use.
type EuclideanDistanceProvider struct{}

func NewEuclideanDistanceProvider() *EuclideanDistanceProvider {
	return &EuclideanDistanceProvider{}
}

func (p *EuclideanDistanceProvider) GetDistance(from, to *domain.Node) (float64, error) {
	if !from.IsFinite() || !to.IsFinite() {
		return 0, fmt.Errorf("euclidean distance %d -> %d: non-finite coordinates", from.ID, to.ID)
	}
	return from.DistanceTo(to.Coordinates), nil
}

// Build the symmetric matrix computing each unordered pair once.
func (p *EuclideanDistanceProvider) GetMatrix(ctx context.Context, nodes []*domain.Node) (domain.CostMatrix, error) {
	for _, n := range nodes {
		if !n.IsFinite() {
			return nil, fmt.Errorf("euclidean matrix: node %d has non-finite coordinates", n.ID)
		}
	}

	m := make(domain.CostMatrix, len(nodes))
	for i := range nodes {
		m[i] = make([]float64, len(nodes))
	}
	for i := range nodes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for j := i + 1; j < len(nodes); j++ {
			d := nodes[i].DistanceTo(nodes[j].Coordinates)
			m[i][j] = d
			m[j][i] = d
		}
	}
	return m, nil
}
