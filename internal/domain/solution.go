package domain

import (
	"fmt"
	"slices"
)

// Solution is the set of active routes of a single construction run,
// together with aggregate cost and demand across them.
type Solution struct {
	ID     string
	Routes []*Route
	Cost   float64
	Demand float64
}

func NewSolution(id string) *Solution {
	return &Solution{ID: id}
}

// Register a route and fold it into the aggregates.
func (s *Solution) Add(r *Route) {
	s.Routes = append(s.Routes, r)
	s.Cost += r.Cost
	s.Demand += r.Demand
}

// Drop a route and subtract it from the aggregates.
func (s *Solution) Remove(r *Route) error {
	i := slices.Index(s.Routes, r)
	if i < 0 {
		return fmt.Errorf("remove route %d: %w", r.ID, ErrRouteNotFound)
	}
	s.Routes = slices.Delete(s.Routes, i, i+1)
	s.Cost -= r.Cost
	s.Demand -= r.Demand
	return nil
}

// Apply an in-place change of a registered route's aggregates.
func (s *Solution) Adjust(deltaCost, deltaDemand float64) {
	s.Cost += deltaCost
	s.Demand += deltaDemand
}

// Largest single-route cost, zero for an empty solution.
func (s *Solution) MaxRouteCost() float64 {
	maxCost := 0.0
	for _, r := range s.Routes {
		if r.Cost > maxCost {
			maxCost = r.Cost
		}
	}
	return maxCost
}

// Check the structural invariants of the solution against the full node set:
// every route is a valid path, every node appears in at most one route, the
// node's route reference agrees with the route holding it, and nodes outside
// every route do not reference an active one.
func (s *Solution) Validate(nodes []*Node) error {
	owner := make(map[*Node]*Route, len(nodes))
	for _, r := range s.Routes {
		if err := r.Validate(); err != nil {
			return err
		}
		for _, n := range r.Interior() {
			if prev, ok := owner[n]; ok {
				return fmt.Errorf("node %d in routes %d and %d: %w", n.ID, prev.ID, r.ID, ErrRouteInvariant)
			}
			owner[n] = r
			if n.Route != r {
				return fmt.Errorf("node %d does not reference route %d: %w", n.ID, r.ID, ErrRouteInvariant)
			}
		}
	}

	for _, n := range nodes {
		if _, ok := owner[n]; ok {
			continue
		}
		if n.Route != nil && slices.Contains(s.Routes, n.Route) {
			return fmt.Errorf("node %d references route %d without being on it: %w", n.ID, n.Route.ID, ErrRouteInvariant)
		}
	}
	return nil
}
