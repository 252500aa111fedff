package services

import (
	"fmt"
	"savings-route-service/internal/domain"
)

// FeasibilityPolicy decides whether a (trial) route may exist at all.
type FeasibilityPolicy interface {
	Feasible(cost, demand float64) bool
	String() string
}

// Sum of demands on a route must not exceed the vehicle capacity.
type CapacityPolicy struct{ Capacity float64 }

func (p CapacityPolicy) Feasible(_, demand float64) bool { return demand <= p.Capacity }
func (p CapacityPolicy) String() string                  { return fmt.Sprintf("capacity<=%g", p.Capacity) }

// Sum of edge costs on a route must not exceed the route budget.
type BudgetPolicy struct{ MaxCost float64 }

func (p BudgetPolicy) Feasible(cost, _ float64) bool { return cost <= p.MaxCost }
func (p BudgetPolicy) String() string                { return fmt.Sprintf("cost<=%g", p.MaxCost) }

// MergeAcceptance is the variant-specific test a feasible merged route must
// additionally pass before it replaces the two routes it was built from.
type MergeAcceptance interface {
	Accept(merged, left, right *domain.Route) bool
}

// Accept a merge only when the merged route costs no more than the two
// routes it replaces. Under a non-metric cost matrix this rejects merges
// that capacity alone would allow.
type NoRegression struct{}

func (NoRegression) Accept(merged, left, right *domain.Route) bool {
	return merged.Cost <= left.Cost+right.Cost
}

// Accept any merge whose cost stays within the route budget.
type WithinBudget struct{ MaxCost float64 }

func (a WithinBudget) Accept(merged, _, _ *domain.Route) bool {
	return merged.Cost <= a.MaxCost
}
