package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolutionAggregates(t *testing.T) {
	nodes, m := line(0, 1, 2, 4)
	a := NewRoute(1, nodes[0], nodes[0], []*Node{nodes[1]}, m)
	b := NewRoute(2, nodes[0], nodes[0], []*Node{nodes[2], nodes[3]}, m)

	s := NewSolution("sol-1")
	s.Add(a)
	s.Add(b)
	assert.InDelta(t, 2+8, s.Cost, 1e-9)
	assert.InDelta(t, 3.0, s.Demand, 1e-9)
	assert.InDelta(t, 8.0, s.MaxRouteCost(), 1e-9)

	require.NoError(t, s.Remove(a))
	assert.Len(t, s.Routes, 1)
	assert.InDelta(t, 8.0, s.Cost, 1e-9)
	assert.InDelta(t, 2.0, s.Demand, 1e-9)

	err := s.Remove(a)
	assert.True(t, errors.Is(err, ErrRouteNotFound))
}

func TestSolutionValidateDetectsSharedNode(t *testing.T) {
	nodes, m := line(0, 1, 2)
	a := NewRoute(1, nodes[0], nodes[0], []*Node{nodes[1]}, m)
	b := NewRoute(2, nodes[0], nodes[0], []*Node{nodes[1], nodes[2]}, m)
	require.NoError(t, a.Claim())

	s := NewSolution("sol-1")
	s.Add(a)
	require.NoError(t, s.Validate(nodes))

	s.Add(b)
	assert.True(t, errors.Is(s.Validate(nodes), ErrRouteInvariant))
}

func TestInstanceValidate(t *testing.T) {
	pts := []Point{{}, {Coordinates: Coordinates{X: 1}, Demand: 1}, {Coordinates: Coordinates{X: 2}}}

	tests := []struct {
		name string
		in   Instance
		ok   bool
	}{
		{"cvrp ok", Instance{Name: "a", Variant: VariantCVRP, Points: pts, Capacity: 10}, true},
		{"cvrp without capacity", Instance{Name: "a", Variant: VariantCVRP, Points: pts}, false},
		{"top ok", Instance{Name: "b", Variant: VariantTOP, Points: pts, FleetSize: 1, MaxCost: 5}, true},
		{"top without fleet", Instance{Name: "b", Variant: VariantTOP, Points: pts, MaxCost: 5}, false},
		{"pjs too small", Instance{Name: "c", Variant: VariantPJS, Points: pts[:2], FleetSize: 1, MaxCost: 5}, false},
		{"unknown variant", Instance{Name: "d", Variant: "tsp", Points: pts}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestInstanceAnchorsAndCustomers(t *testing.T) {
	pts := make([]Point, 5)

	cvrp := Instance{Variant: VariantCVRP, Points: pts}
	s, f := cvrp.Anchors()
	assert.Equal(t, 0, s)
	assert.Equal(t, 0, f)
	assert.Equal(t, []int{1, 2, 3, 4}, cvrp.Customers())

	top := Instance{Variant: VariantTOP, Points: pts}
	s, f = top.Anchors()
	assert.Equal(t, 0, s)
	assert.Equal(t, 4, f)
	assert.Equal(t, []int{1, 2, 3}, top.Customers())
}
