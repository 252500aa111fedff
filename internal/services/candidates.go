package services

import (
	"cmp"
	"errors"
	"fmt"
	"savings-route-service/internal/domain"
	"slices"
)

// ErrInvalidAlpha is returned when the efficiency weight is outside [0, 1].
var ErrInvalidAlpha = errors.New("alpha must be within [0, 1]")

// ScoringMode selects how candidate node pairs are scored.
type ScoringMode int

const (
	// One candidate per unordered pair {i, j}:
	// d(depot,i) + d(depot,j) - d(i,j).
	SymmetricSavings ScoringMode = iota
	// Both (i, j) and (j, i), each other's inverse:
	// α·[d(start,i) + d(j,finish) - d(i,j)] + (1-α)·[r(i) + r(j)].
	DirectionalEfficiency
	// Both directions, scored by the exact saving of joining a route that
	// ends at i to a route that starts at j:
	// α·[d(i,finish) + d(start,j) - d(i,j)] + (1-α)·[r(i) + r(j)].
	MergeEfficiency
)

func (s ScoringMode) String() string {
	switch s {
	case SymmetricSavings:
		return "symmetric-savings"
	case DirectionalEfficiency:
		return "directional-efficiency"
	case MergeEfficiency:
		return "merge-efficiency"
	default:
		return "unknown"
	}
}

// BuildCandidates scores every pair of customer nodes and returns the
// candidates sorted by score, best first.
//
// Pairs are enumerated i < j in customer order; directional modes emit
// (i, j) immediately followed by (j, i). The sort is stable, so ties keep
// enumeration order and the merge sequence is reproducible.
func BuildCandidates(
	customers []*domain.Node,
	start, finish *domain.Node,
	m domain.CostMatrix,
	mode ScoringMode,
	alpha float64,
) ([]*domain.Edge, error) {
	if alpha < 0 || alpha > 1 {
		return nil, fmt.Errorf("build candidates: alpha=%v: %w", alpha, ErrInvalidAlpha)
	}

	n := len(customers)
	size := n * (n - 1) / 2
	if mode != SymmetricSavings {
		size *= 2
	}
	out := make([]*domain.Edge, 0, size)

	for a := 0; a < n; a++ {
		i := customers[a]
		for b := a + 1; b < n; b++ {
			j := customers[b]
			cost := m.Cost(i, j)

			switch mode {
			case SymmetricSavings:
				s := m.Cost(start, i) + m.Cost(start, j) - cost
				out = append(out, &domain.Edge{From: i, To: j, Cost: cost, Savings: s, Efficiency: s})

			case DirectionalEfficiency, MergeEfficiency:
				ij := &domain.Edge{From: i, To: j, Cost: cost}
				ji := &domain.Edge{From: j, To: i, Cost: m.Cost(j, i)}
				ij.Inverse, ji.Inverse = ji, ij

				reward := i.Demand + j.Demand
				for _, e := range []*domain.Edge{ij, ji} {
					if mode == DirectionalEfficiency {
						e.Savings = m.Cost(start, e.From) + m.Cost(e.To, finish) - e.Cost
					} else {
						e.Savings = m.Cost(e.From, finish) + m.Cost(start, e.To) - e.Cost
					}
					e.Efficiency = alpha*e.Savings + (1-alpha)*reward
				}
				out = append(out, ij, ji)

			default:
				return nil, fmt.Errorf("build candidates: scoring mode %d not supported", mode)
			}
		}
	}

	slices.SortStableFunc(out, func(x, y *domain.Edge) int {
		return cmp.Compare(y.Efficiency, x.Efficiency)
	})
	return out, nil
}

// CandidateList is the ordered queue of candidates consumed by the merge
// engine. Popping the best candidate and erasing an arbitrary one are both
// O(1); erased slots are skipped lazily.
type CandidateList struct {
	items   []*domain.Edge
	removed []bool
	pos     map[*domain.Edge]int
	head    int
	live    int
}

func NewCandidateList(sorted []*domain.Edge) *CandidateList {
	pos := make(map[*domain.Edge]int, len(sorted))
	for i, e := range sorted {
		pos[e] = i
	}
	return &CandidateList{
		items:   sorted,
		removed: make([]bool, len(sorted)),
		pos:     pos,
		live:    len(sorted),
	}
}

// Number of candidates not yet consumed.
func (l *CandidateList) Len() int { return l.live }

// Remove and return the best remaining candidate.
func (l *CandidateList) PopFront() (*domain.Edge, bool) {
	for l.head < len(l.items) {
		i := l.head
		l.head++
		if l.removed[i] {
			continue
		}
		l.removed[i] = true
		l.live--
		return l.items[i], true
	}
	return nil, false
}

// Erase a candidate wherever it sits. Reports false if it was already
// consumed or never part of the list.
func (l *CandidateList) Remove(e *domain.Edge) bool {
	i, ok := l.pos[e]
	if !ok || l.removed[i] {
		return false
	}
	l.removed[i] = true
	l.live--
	return true
}
