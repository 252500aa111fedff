package domain

import (
	"fmt"
	"strings"
)

// Variant selects the problem form and, with it, the scoring mode,
// feasibility policy and merge acceptance of a solve.
type Variant string

const (
	// Capacitated VRP: single depot, symmetric savings, demand <= capacity.
	VariantCVRP Variant = "cvrp"
	// Team orienteering: start/finish anchors, directional efficiency,
	// per-route cost budget, bounded fleet.
	VariantTOP Variant = "top"
	// Team orienteering seeded with one trivial route per node and strictly
	// oriented end-to-start merges.
	VariantPJS Variant = "pjs"
)

func ParseVariant(s string) (Variant, error) {
	switch v := Variant(strings.ToLower(strings.TrimSpace(s))); v {
	case VariantCVRP, VariantTOP, VariantPJS:
		return v, nil
	default:
		return "", fmt.Errorf("parse variant %q: %w", s, ErrUnknownVariant)
	}
}

// Report whether the variant routes between distinct start and finish anchors.
func (v Variant) HasDistinctAnchors() bool { return v == VariantTOP || v == VariantPJS }

// Point is an immutable input node: location plus demand (CVRP) or reward (TOP).
type Point struct {
	Coordinates
	Demand float64
}

// Instance is a loaded routing problem.
//
// Points[0] is the depot (CVRP) or start anchor; for distinct-anchor
// variants the last point is the finish anchor. Capacity applies to CVRP,
// FleetSize and MaxCost to TOP and PJS.
type Instance struct {
	Name      string
	Variant   Variant
	Points    []Point
	Capacity  float64
	FleetSize int
	MaxCost   float64
}

// Indices of the start and finish anchors.
func (in *Instance) Anchors() (start, finish int) {
	if in.Variant.HasDistinctAnchors() {
		return 0, len(in.Points) - 1
	}
	return 0, 0
}

// Indices of every non-anchor node in input order.
func (in *Instance) Customers() []int {
	start, finish := in.Anchors()
	out := make([]int, 0, len(in.Points))
	for i := range in.Points {
		if i == start || i == finish {
			continue
		}
		out = append(out, i)
	}
	return out
}

// Fresh, unassigned nodes for one solve. Every call returns new nodes so a
// single instance can be solved repeatedly.
func (in *Instance) NewNodes() []*Node {
	nodes := make([]*Node, len(in.Points))
	for i, p := range in.Points {
		nodes[i] = &Node{ID: i, Coordinates: p.Coordinates, Demand: p.Demand}
	}
	return nodes
}

func (in *Instance) Validate() error {
	if in == nil {
		return fmt.Errorf("validate instance: nil: %w", ErrInvalidInstance)
	}
	if _, err := ParseVariant(string(in.Variant)); err != nil {
		return fmt.Errorf("validate instance %q: %w", in.Name, err)
	}

	minPoints := 2
	if in.Variant.HasDistinctAnchors() {
		minPoints = 3
	}
	if len(in.Points) < minPoints {
		return fmt.Errorf("validate instance %q: need at least %d nodes, got %d: %w", in.Name, minPoints, len(in.Points), ErrInvalidInstance)
	}

	for i, p := range in.Points {
		if !p.IsFinite() {
			return fmt.Errorf("validate instance %q: node %d has non-finite coordinates: %w", in.Name, i, ErrInvalidInstance)
		}
	}

	switch in.Variant {
	case VariantCVRP:
		if in.Capacity <= 0 {
			return fmt.Errorf("validate instance %q: capacity must be positive: %w", in.Name, ErrInvalidInstance)
		}
	case VariantTOP, VariantPJS:
		if in.FleetSize < 1 {
			return fmt.Errorf("validate instance %q: fleet size must be at least 1: %w", in.Name, ErrInvalidInstance)
		}
		if in.MaxCost <= 0 {
			return fmt.Errorf("validate instance %q: route max cost must be positive: %w", in.Name, ErrInvalidInstance)
		}
	}
	return nil
}
