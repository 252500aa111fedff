package services

import (
	"cmp"
	"savings-route-service/internal/domain"
	"slices"
)

// SelectFleet keeps the fleetSize routes with the highest demand (reward)
// and drops the rest from the solution, adjusting its aggregates. Routes
// with equal demand keep their construction order. A fleetSize of zero or
// less means no fleet cap and leaves the solution untouched.
//
// The dropped routes are returned in ranked order.
func SelectFleet(sol *domain.Solution, fleetSize int) []*domain.Route {
	if fleetSize <= 0 {
		return nil
	}

	slices.SortStableFunc(sol.Routes, func(a, b *domain.Route) int {
		return cmp.Compare(b.Demand, a.Demand)
	})
	if len(sol.Routes) <= fleetSize {
		return nil
	}

	dropped := slices.Clone(sol.Routes[fleetSize:])
	sol.Routes = slices.Clip(sol.Routes[:fleetSize])
	for _, r := range dropped {
		sol.Adjust(-r.Cost, -r.Demand)
	}
	return dropped
}
