package ports

import "savings-route-service/internal/domain"

// Contract for the travel cost between two nodes.
type DistanceProvider interface {
	// Return the cost of travelling from one node to another.
	GetDistance(from, to *domain.Node) (float64, error)
}
