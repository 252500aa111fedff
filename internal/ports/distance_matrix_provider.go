package ports

import (
	"context"
	"savings-route-service/internal/domain"
)

// Optional extension of DistanceProvider that builds the full matrix at once.
type DistanceMatrixProvider interface {
	DistanceProvider
	// Return the N×N cost matrix for the nodes, indexed by node ID.
	GetMatrix(ctx context.Context, nodes []*domain.Node) (domain.CostMatrix, error)
}
