package services

import (
	"context"
	"math"
	"savings-route-service/internal/adapters/distance"
	"savings-route-service/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDistanceMatrixEuclidean(t *testing.T) {
	in := &domain.Instance{Points: []domain.Point{pt(0, 0, 0), pt(3, 4, 1), pt(6, 8, 1)}}
	nodes := in.NewNodes()

	m, err := BuildDistanceMatrix(context.Background(), nodes, distance.NewEuclideanDistanceProvider())
	require.NoError(t, err)

	require.Equal(t, 3, m.Size())
	for i := range nodes {
		assert.Zero(t, m[i][i])
		for j := range nodes {
			assert.Equal(t, m[i][j], m[j][i])
		}
	}
	assert.InDelta(t, 5.0, m[0][1], 1e-12)
	assert.InDelta(t, 10.0, m[0][2], 1e-12)
}

func TestBuildDistanceMatrixPairwiseProvider(t *testing.T) {
	nodes := (&domain.Instance{Points: make([]domain.Point, 3)}).NewNodes()
	p := distance.NewMockDistanceProvider([]distance.MockPair{
		{From: 0, To: 1, Cost: 2},
		{From: 0, To: 2, Cost: 3},
		{From: 1, To: 2, Cost: 7},
		{From: 2, To: 1, Cost: 9},
	})

	m, err := BuildDistanceMatrix(context.Background(), nodes, p)
	require.NoError(t, err)
	assert.Equal(t, domain.CostMatrix{
		{0, 2, 3},
		{2, 0, 7},
		{3, 9, 0},
	}, m)
}

func TestBuildDistanceMatrixErrors(t *testing.T) {
	t.Run("missing pair", func(t *testing.T) {
		nodes := (&domain.Instance{Points: make([]domain.Point, 3)}).NewNodes()
		p := distance.NewMockDistanceProvider([]distance.MockPair{{From: 0, To: 1, Cost: 1}})
		_, err := BuildDistanceMatrix(context.Background(), nodes, p)
		assert.Error(t, err)
	})

	t.Run("negative cost", func(t *testing.T) {
		nodes := (&domain.Instance{Points: make([]domain.Point, 2)}).NewNodes()
		p := distance.NewMockDistanceProvider([]distance.MockPair{{From: 0, To: 1, Cost: -1}})
		_, err := BuildDistanceMatrix(context.Background(), nodes, p)
		assert.ErrorContains(t, err, "not a finite non-negative cost")
	})

	t.Run("non-finite coordinates", func(t *testing.T) {
		in := &domain.Instance{Points: []domain.Point{pt(0, 0, 0), pt(math.Inf(1), 0, 1)}}
		_, err := BuildDistanceMatrix(context.Background(), in.NewNodes(), distance.NewEuclideanDistanceProvider())
		assert.Error(t, err)
	})

	t.Run("nil provider", func(t *testing.T) {
		_, err := BuildDistanceMatrix(context.Background(), nil, nil)
		assert.Error(t, err)
	})

	t.Run("canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		nodes := (&domain.Instance{Points: make([]domain.Point, 2)}).NewNodes()
		_, err := BuildDistanceMatrix(ctx, nodes, distance.NewEuclideanDistanceProvider())
		assert.ErrorIs(t, err, context.Canceled)
	})
}
