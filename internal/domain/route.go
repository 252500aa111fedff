package domain

import "fmt"

// Route is a simple path that leaves the Start anchor, visits each of its
// nodes exactly once, and ends at the Finish anchor.
//
// In the capacity variant Start and Finish are the same depot node.
// Cost and Demand are running aggregates kept in sync with Edges.
type Route struct {
	ID     int
	Start  *Node
	Finish *Node
	Edges  []Edge
	Cost   float64
	Demand float64
}

// Build a route through the given nodes between the two anchors.
// It does not touch the nodes' route bookkeeping; call Claim for that.
func NewRoute(id int, start, finish *Node, path []*Node, m CostMatrix) *Route {
	r := &Route{ID: id, Start: start, Finish: finish}
	r.rebuild(path, m)
	return r
}

func (r *Route) rebuild(path []*Node, m CostMatrix) {
	r.Edges = make([]Edge, 0, len(path)+1)
	r.Cost = 0
	r.Demand = 0

	prev := r.Start
	for _, n := range path {
		r.appendEdge(prev, n, m)
		r.Demand += n.Demand
		prev = n
	}
	r.appendEdge(prev, r.Finish, m)
}

func (r *Route) appendEdge(from, to *Node, m CostMatrix) {
	c := m.Cost(from, to)
	r.Edges = append(r.Edges, Edge{From: from, To: to, Cost: c})
	r.Cost += c
}

// Nodes visited between the anchors, in travel order.
func (r *Route) Interior() []*Node {
	if len(r.Edges) < 2 {
		return nil
	}
	out := make([]*Node, 0, len(r.Edges)-1)
	for _, e := range r.Edges[1:] {
		out = append(out, e.From)
	}
	return out
}

// Full node ID path including both anchors.
func (r *Route) NodeIDs() []int {
	ids := make([]int, 0, len(r.Edges)+1)
	ids = append(ids, r.Start.ID)
	for _, e := range r.Edges {
		ids = append(ids, e.To.ID)
	}
	return ids
}

// Number of non-anchor nodes on the route.
func (r *Route) Len() int { return len(r.Edges) - 1 }

// First and last non-anchor nodes.
func (r *Route) Head() *Node { return r.Edges[0].To }
func (r *Route) Tail() *Node { return r.Edges[len(r.Edges)-1].From }

// Reverse the travel order of the route's nodes while keeping both anchors
// in place. Costs are recomputed since the anchor legs change.
func (r *Route) Reverse(m CostMatrix) {
	path := r.Interior()
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	r.rebuild(path, m)
}

// Splice n in between the Finish anchor and tail, which must currently be
// the last node before Finish.
func (r *Route) ExtendFinish(tail, n *Node, m CostMatrix) error {
	last := len(r.Edges) - 1
	if last < 0 || !r.Edges[last].Connects(tail, r.Finish) {
		return fmt.Errorf("extend route %d at finish: edge %d->%d: %w", r.ID, tail.ID, r.Finish.ID, ErrRouteInvariant)
	}

	r.Cost -= r.Edges[last].Cost
	r.Edges = r.Edges[:last]
	r.appendEdge(tail, n, m)
	r.appendEdge(n, r.Finish, m)
	r.Demand += n.Demand
	return nil
}

// Splice n in between the Start anchor and head, which must currently be
// the first node after Start.
func (r *Route) ExtendStart(head, n *Node, m CostMatrix) error {
	if len(r.Edges) == 0 || !r.Edges[0].Connects(r.Start, head) {
		return fmt.Errorf("extend route %d at start: edge %d->%d: %w", r.ID, r.Start.ID, head.ID, ErrRouteInvariant)
	}

	first := r.Edges[0]
	second := Edge{From: n, To: head, Cost: m.Cost(n, head)}
	lead := Edge{From: r.Start, To: n, Cost: m.Cost(r.Start, n)}

	edges := make([]Edge, 0, len(r.Edges)+1)
	edges = append(edges, lead, second)
	edges = append(edges, r.Edges[1:]...)
	r.Edges = edges

	r.Cost += lead.Cost + second.Cost - first.Cost
	r.Demand += n.Demand
	return nil
}

// Point every node on the route at it and record which anchors each one
// touches. Nodes that lost their last anchor edge become interior.
func (r *Route) Claim() error {
	path := r.Interior()
	for i, n := range path {
		side := SideNone
		if i == 0 {
			side |= SideStart
		}
		if i == len(path)-1 {
			side |= SideFinish
		}
		if err := n.place(r, side); err != nil {
			return fmt.Errorf("claim route %d: node %d is interior: %w", r.ID, n.ID, err)
		}
	}
	return nil
}

// Check that the edges form a single simple path between the anchors and
// that the aggregates match the edges.
func (r *Route) Validate() error {
	if len(r.Edges) < 2 {
		return fmt.Errorf("route %d: %d edges: %w", r.ID, len(r.Edges), ErrRouteInvariant)
	}
	if r.Edges[0].From != r.Start {
		return fmt.Errorf("route %d: does not leave start anchor: %w", r.ID, ErrRouteInvariant)
	}
	if r.Edges[len(r.Edges)-1].To != r.Finish {
		return fmt.Errorf("route %d: does not reach finish anchor: %w", r.ID, ErrRouteInvariant)
	}

	seen := make(map[*Node]struct{}, len(r.Edges))
	cost, demand := 0.0, 0.0
	for i, e := range r.Edges {
		cost += e.Cost
		if i > 0 {
			if r.Edges[i-1].To != e.From {
				return fmt.Errorf("route %d: broken at edge #%d: %w", r.ID, i, ErrRouteInvariant)
			}
			if e.From == r.Start || e.From == r.Finish {
				return fmt.Errorf("route %d: anchor revisited at edge #%d: %w", r.ID, i, ErrRouteInvariant)
			}
			if _, dup := seen[e.From]; dup {
				return fmt.Errorf("route %d: node %d repeated: %w", r.ID, e.From.ID, ErrRouteInvariant)
			}
			seen[e.From] = struct{}{}
			demand += e.From.Demand
		}
	}

	const tol = 1e-6
	if d := cost - r.Cost; d > tol || d < -tol {
		return fmt.Errorf("route %d: cost %.6f, edges sum to %.6f: %w", r.ID, r.Cost, cost, ErrRouteInvariant)
	}
	if d := demand - r.Demand; d > tol || d < -tol {
		return fmt.Errorf("route %d: demand %.6f, nodes sum to %.6f: %w", r.ID, r.Demand, demand, ErrRouteInvariant)
	}
	return nil
}
