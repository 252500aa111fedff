package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"savings-route-service/internal/domain"
	"savings-route-service/internal/ports"
)

// BuildDistanceMatrix computes the N×N cost matrix for the nodes, indexed by
// node ID. Providers that can build the whole matrix at once are preferred;
// otherwise the matrix is filled pair by pair. The diagonal is always zero
// and every entry must be finite and non-negative.
func BuildDistanceMatrix(
	ctx context.Context,
	nodes []*domain.Node,
	provider ports.DistanceProvider,
) (domain.CostMatrix, error) {
	if provider == nil {
		return nil, errors.New("build distance matrix: provider must be non-nil")
	}
	for i, n := range nodes {
		if n.ID != i {
			return nil, fmt.Errorf("build distance matrix: node at index %d has id %d", i, n.ID)
		}
	}

	if mp, ok := provider.(ports.DistanceMatrixProvider); ok {
		m, err := mp.GetMatrix(ctx, nodes)
		if err != nil {
			return nil, fmt.Errorf("build distance matrix: get matrix: %w", err)
		}
		if err := checkMatrix(m, len(nodes)); err != nil {
			return nil, fmt.Errorf("build distance matrix: %w", err)
		}
		return m, nil
	}

	m := make(domain.CostMatrix, len(nodes))
	for i := range nodes {
		m[i] = make([]float64, len(nodes))
	}
	for i, a := range nodes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for j, b := range nodes {
			if i == j {
				continue
			}
			d, err := provider.GetDistance(a, b)
			if err != nil {
				return nil, fmt.Errorf("build distance matrix: get distance %d -> %d: %w", a.ID, b.ID, err)
			}
			m[i][j] = d
		}
	}
	if err := checkMatrix(m, len(nodes)); err != nil {
		return nil, fmt.Errorf("build distance matrix: %w", err)
	}
	return m, nil
}

func checkMatrix(m domain.CostMatrix, n int) error {
	if len(m) != n {
		return fmt.Errorf("matrix has %d rows, want %d", len(m), n)
	}
	for i, row := range m {
		if len(row) != n {
			return fmt.Errorf("matrix row %d has %d columns, want %d", i, len(row), n)
		}
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
				return fmt.Errorf("matrix entry (%d,%d) = %v is not a finite non-negative cost", i, j, v)
			}
			if i == j && v != 0 {
				return fmt.Errorf("matrix diagonal (%d,%d) = %v, want 0", i, j, v)
			}
		}
	}
	return nil
}
