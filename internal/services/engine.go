package services

import (
	"fmt"
	"savings-route-service/internal/domain"
)

// Outcome reports what the merge engine did with one candidate.
type Outcome int

const (
	OutcomeDiscarded Outcome = iota
	OutcomeCreated
	OutcomeExtended
	OutcomeMerged
)

func (o Outcome) String() string {
	switch o {
	case OutcomeDiscarded:
		return "discarded"
	case OutcomeCreated:
		return "created"
	case OutcomeExtended:
		return "extended"
	case OutcomeMerged:
		return "merged"
	default:
		return "unknown"
	}
}

// EngineConfig parametrizes the merge engine for one problem variant.
type EngineConfig struct {
	Policy     FeasibilityPolicy
	Acceptance MergeAcceptance

	// Give every customer its own start->n->finish route before consuming
	// candidates (when that trivial route is feasible).
	SeedSingletons bool

	// Merges must join the finish end of i's route to the start end of j's
	// route as they stand; routes are never reversed to make them fit.
	StrictOrientation bool
}

// EngineStats counts candidate outcomes over one run.
type EngineStats struct {
	Candidates int
	Created    int
	Extended   int
	Merged     int
	Discarded  int
	Seeded     int
}

// MergeEngine is the greedy route construction state machine.
//
// It consumes a sorted candidate list one candidate at a time and grows,
// creates or merges routes in the solution. Every rejected candidate leaves
// the solution, the routes and the nodes untouched. A MergeEngine is not
// safe for concurrent use.
type MergeEngine struct {
	cfg       EngineConfig
	m         domain.CostMatrix
	start     *domain.Node
	finish    *domain.Node
	customers []*domain.Node
	sol       *domain.Solution
	list      *CandidateList
	lastID    int
	stats     EngineStats
}

func NewMergeEngine(
	cfg EngineConfig,
	m domain.CostMatrix,
	start, finish *domain.Node,
	customers []*domain.Node,
	sol *domain.Solution,
) *MergeEngine {
	return &MergeEngine{
		cfg:       cfg,
		m:         m,
		start:     start,
		finish:    finish,
		customers: customers,
		sol:       sol,
	}
}

// Run consumes the whole candidate list, then places every customer that is
// still unassigned on its own route if that route is feasible.
func (e *MergeEngine) Run(list *CandidateList) error {
	e.list = list
	defer func() { e.list = nil }()

	if e.cfg.SeedSingletons {
		if err := e.seedSingletons(); err != nil {
			return fmt.Errorf("merge engine: seed routes: %w", err)
		}
	}

	for {
		c, ok := list.PopFront()
		if !ok {
			break
		}
		if _, err := e.Apply(c); err != nil {
			return fmt.Errorf("merge engine: candidate %d->%d: %w", c.From.ID, c.To.ID, err)
		}
	}

	if err := e.seedSingletons(); err != nil {
		return fmt.Errorf("merge engine: close open nodes: %w", err)
	}
	return nil
}

// Apply processes a single candidate (i, j) with the first matching rule.
// A non-nil error means the route bookkeeping is broken.
func (e *MergeEngine) Apply(c *domain.Edge) (Outcome, error) {
	e.stats.Candidates++
	i, j := c.From, c.To

	var (
		out Outcome
		err error
	)
	switch {
	case i.IsUnassigned() && j.IsUnassigned():
		out, err = e.create(i, j)
	case i.IsExterior() && j.IsUnassigned():
		out, err = e.extend(i, j)
	case j.IsExterior() && i.IsUnassigned():
		out, err = e.extend(j, i)
	case i.IsExterior() && j.IsExterior() && i.Route != j.Route:
		out, err = e.merge(c)
	default:
		out = OutcomeDiscarded
	}
	if err != nil {
		return OutcomeDiscarded, err
	}

	switch out {
	case OutcomeCreated:
		e.stats.Created++
	case OutcomeExtended:
		e.stats.Extended++
	case OutcomeMerged:
		e.stats.Merged++
	default:
		e.stats.Discarded++
	}
	return out, nil
}

// Rule 1: open a new route start -> i -> j -> finish.
func (e *MergeEngine) create(i, j *domain.Node) (Outcome, error) {
	cost := e.m.Cost(e.start, i) + e.m.Cost(i, j) + e.m.Cost(j, e.finish)
	if !e.cfg.Policy.Feasible(cost, i.Demand+j.Demand) {
		return OutcomeDiscarded, nil
	}

	r := domain.NewRoute(e.nextID(), e.start, e.finish, []*domain.Node{i, j}, e.m)
	if err := r.Claim(); err != nil {
		return OutcomeDiscarded, err
	}
	e.sol.Add(r)
	return OutcomeCreated, nil
}

// Rules 2 and 3: attach the unassigned node n next to the exterior node x,
// on whichever anchor side x currently occupies (finish side first).
func (e *MergeEngine) extend(x, n *domain.Node) (Outcome, error) {
	r := x.Route
	if r == nil {
		return OutcomeDiscarded, fmt.Errorf("exterior node %d has no route: %w", x.ID, domain.ErrRouteInvariant)
	}

	var cost float64
	atFinish := x.Sides.Has(domain.SideFinish)
	switch {
	case atFinish:
		cost = r.Cost - e.m.Cost(x, e.finish) + e.m.Cost(x, n) + e.m.Cost(n, e.finish)
	case x.Sides.Has(domain.SideStart):
		cost = r.Cost - e.m.Cost(e.start, x) + e.m.Cost(n, x) + e.m.Cost(e.start, n)
	default:
		return OutcomeDiscarded, fmt.Errorf("exterior node %d touches no anchor: %w", x.ID, domain.ErrRouteInvariant)
	}
	if !e.cfg.Policy.Feasible(cost, r.Demand+n.Demand) {
		return OutcomeDiscarded, nil
	}

	oldCost, oldDemand := r.Cost, r.Demand
	var err error
	if atFinish {
		err = r.ExtendFinish(x, n, e.m)
	} else {
		err = r.ExtendStart(x, n, e.m)
	}
	if err != nil {
		return OutcomeDiscarded, err
	}
	if err := r.Claim(); err != nil {
		return OutcomeDiscarded, err
	}
	e.sol.Adjust(r.Cost-oldCost, r.Demand-oldDemand)
	return OutcomeExtended, nil
}

// Rule 4: join the route ending at i to the route starting at j through
// the edge i -> j.
func (e *MergeEngine) merge(c *domain.Edge) (Outcome, error) {
	i, j := c.From, c.To
	left, right := i.Route, j.Route

	head, ok, err := e.orient(left, i, domain.SideFinish)
	if err != nil || !ok {
		return OutcomeDiscarded, err
	}
	tail, ok, err := e.orient(right, j, domain.SideStart)
	if err != nil || !ok {
		return OutcomeDiscarded, err
	}

	path := make([]*domain.Node, 0, len(head)+len(tail))
	path = append(path, head...)
	path = append(path, tail...)
	trial := domain.NewRoute(0, e.start, e.finish, path, e.m)

	if !e.cfg.Policy.Feasible(trial.Cost, trial.Demand) || !e.cfg.Acceptance.Accept(trial, left, right) {
		return OutcomeDiscarded, nil
	}

	trial.ID = e.nextID()
	if err := e.sol.Remove(left); err != nil {
		return OutcomeDiscarded, err
	}
	if err := e.sol.Remove(right); err != nil {
		return OutcomeDiscarded, err
	}
	if err := trial.Claim(); err != nil {
		return OutcomeDiscarded, err
	}
	e.sol.Add(trial)

	if c.Inverse != nil && e.list != nil {
		e.list.Remove(c.Inverse)
	}
	return OutcomeMerged, nil
}

// orient returns the nodes of r in an order that puts n on the wanted side:
// last for SideFinish, first for SideStart. The route itself is never
// modified. ok is false when n sits on the other side and reversal is not
// allowed.
func (e *MergeEngine) orient(r *domain.Route, n *domain.Node, want domain.Side) (_ []*domain.Node, ok bool, _ error) {
	path := r.Interior()
	if len(path) == 0 {
		return nil, false, fmt.Errorf("route %d is empty: %w", r.ID, domain.ErrRouteInvariant)
	}

	switch {
	case n.Sides.Has(want):
	case e.cfg.StrictOrientation:
		return nil, false, nil
	case n.Sides != domain.SideNone:
		for a, b := 0, len(path)-1; a < b; a, b = a+1, b-1 {
			path[a], path[b] = path[b], path[a]
		}
	default:
		return nil, false, fmt.Errorf("exterior node %d touches no anchor: %w", n.ID, domain.ErrRouteInvariant)
	}

	end := path[len(path)-1]
	if want == domain.SideStart {
		end = path[0]
	}
	if end != n {
		return nil, false, fmt.Errorf("node %d is not at the %s end of route %d: %w", n.ID, want, r.ID, domain.ErrRouteInvariant)
	}
	return path, true, nil
}

// Place every unassigned customer on its own route when that is feasible.
func (e *MergeEngine) seedSingletons() error {
	for _, n := range e.customers {
		if !n.IsUnassigned() {
			continue
		}
		cost := e.m.Cost(e.start, n) + e.m.Cost(n, e.finish)
		if !e.cfg.Policy.Feasible(cost, n.Demand) {
			continue
		}

		r := domain.NewRoute(e.nextID(), e.start, e.finish, []*domain.Node{n}, e.m)
		if err := r.Claim(); err != nil {
			return err
		}
		e.sol.Add(r)
		e.stats.Seeded++
	}
	return nil
}

// Customers no route could take, in input order.
func (e *MergeEngine) Unassigned() []int {
	var out []int
	for _, n := range e.customers {
		if n.IsUnassigned() {
			out = append(out, n.ID)
		}
	}
	return out
}

func (e *MergeEngine) Stats() EngineStats { return e.stats }

func (e *MergeEngine) nextID() int {
	e.lastID++
	return e.lastID
}
