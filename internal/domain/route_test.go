package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// line builds nodes on the x axis at the given positions with unit demand
// and returns them together with their Euclidean cost matrix.
func line(xs ...float64) ([]*Node, CostMatrix) {
	nodes := make([]*Node, len(xs))
	for i, x := range xs {
		nodes[i] = &Node{ID: i, Coordinates: Coordinates{X: x}, Demand: 1}
	}
	m := make(CostMatrix, len(xs))
	for i := range nodes {
		m[i] = make([]float64, len(xs))
		for j := range nodes {
			m[i][j] = nodes[i].DistanceTo(nodes[j].Coordinates)
		}
	}
	return nodes, m
}

func TestNewRouteBuildsPathAndAggregates(t *testing.T) {
	nodes, m := line(0, 1, 3, 10)
	r := NewRoute(1, nodes[0], nodes[3], []*Node{nodes[1], nodes[2]}, m)

	require.NoError(t, r.Validate())
	assert.Equal(t, []int{0, 1, 2, 3}, r.NodeIDs())
	assert.InDelta(t, 10.0, r.Cost, 1e-9)
	assert.InDelta(t, 2.0, r.Demand, 1e-9)
	assert.Equal(t, 2, r.Len())
	assert.Same(t, nodes[1], r.Head())
	assert.Same(t, nodes[2], r.Tail())
}

func TestRouteClaimAssignsSides(t *testing.T) {
	nodes, m := line(0, 1, 2, 3, 10)

	t.Run("single node touches both anchors", func(t *testing.T) {
		r := NewRoute(1, nodes[0], nodes[4], []*Node{nodes[1]}, m)
		require.NoError(t, r.Claim())
		assert.Equal(t, RoleExterior, nodes[1].Role)
		assert.Equal(t, SideBoth, nodes[1].Sides)
		assert.Same(t, r, nodes[1].Route)
	})

	t.Run("middle node becomes interior", func(t *testing.T) {
		r := NewRoute(2, nodes[0], nodes[4], []*Node{nodes[1], nodes[2], nodes[3]}, m)
		require.NoError(t, r.Claim())
		assert.Equal(t, SideStart, nodes[1].Sides)
		assert.Equal(t, RoleInterior, nodes[2].Role)
		assert.Equal(t, SideFinish, nodes[3].Sides)
	})

	t.Run("interior node cannot become exterior again", func(t *testing.T) {
		r := NewRoute(3, nodes[0], nodes[4], []*Node{nodes[2]}, m)
		err := r.Claim()
		assert.True(t, errors.Is(err, ErrRouteInvariant))
	})
}

func TestRouteExtend(t *testing.T) {
	nodes, m := line(0, 2, 4, 6, 10)

	r := NewRoute(1, nodes[0], nodes[4], []*Node{nodes[2]}, m)
	require.NoError(t, r.ExtendFinish(nodes[2], nodes[3], m))
	require.NoError(t, r.ExtendStart(nodes[2], nodes[1], m))
	require.NoError(t, r.Validate())

	assert.Equal(t, []int{0, 1, 2, 3, 4}, r.NodeIDs())
	assert.InDelta(t, 10.0, r.Cost, 1e-9)
	assert.InDelta(t, 3.0, r.Demand, 1e-9)
}

func TestRouteExtendDetectsMissingAnchorEdge(t *testing.T) {
	nodes, m := line(0, 2, 4, 6, 10)
	r := NewRoute(1, nodes[0], nodes[4], []*Node{nodes[1], nodes[2]}, m)
	before := r.NodeIDs()

	err := r.ExtendFinish(nodes[1], nodes[3], m)
	assert.True(t, errors.Is(err, ErrRouteInvariant))

	err = r.ExtendStart(nodes[2], nodes[3], m)
	assert.True(t, errors.Is(err, ErrRouteInvariant))

	assert.Equal(t, before, r.NodeIDs())
}

func TestRouteReverseKeepsAnchors(t *testing.T) {
	nodes, m := line(0, 1, 5, 10)
	r := NewRoute(1, nodes[0], nodes[3], []*Node{nodes[2], nodes[1]}, m)
	require.InDelta(t, 5+4+9, r.Cost, 1e-9)

	r.Reverse(m)

	require.NoError(t, r.Validate())
	assert.Equal(t, []int{0, 1, 2, 3}, r.NodeIDs())
	assert.InDelta(t, 10.0, r.Cost, 1e-9)
	assert.InDelta(t, 2.0, r.Demand, 1e-9)
}

func TestRouteValidateRejectsRepeatedNode(t *testing.T) {
	nodes, m := line(0, 1, 2)
	r := NewRoute(1, nodes[0], nodes[0], []*Node{nodes[1], nodes[2], nodes[1]}, m)

	assert.True(t, errors.Is(r.Validate(), ErrRouteInvariant))
}
