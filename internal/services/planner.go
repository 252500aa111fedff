package services

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"log"
	"math"
	"savings-route-service/internal/domain"
	"savings-route-service/internal/platform/metrics"
	"savings-route-service/internal/platform/obs"
	"savings-route-service/internal/ports"
	"time"

	"github.com/cespare/xxhash/v2"
)

// DefaultAlpha weighs efficiency entirely on distance savings.
const DefaultAlpha = 1.0

// SolveOptions are the per-run parameters of a solve.
type SolveOptions struct {
	Alpha float64
	// Skip the result cache lookup (the fresh result is still stored).
	Refresh bool
}

// Construction is the raw outcome of one engine run after fleet selection.
type Construction struct {
	Solution *domain.Solution
	Nodes    []*domain.Node
	Dropped  []*domain.Route
	Unserved []int
	Stats    EngineStats
	Elapsed  time.Duration
}

// Engine settings and scoring mode for a variant.
func variantSetup(in *domain.Instance) (EngineConfig, ScoringMode, int, error) {
	switch in.Variant {
	case domain.VariantCVRP:
		return EngineConfig{
			Policy:     CapacityPolicy{Capacity: in.Capacity},
			Acceptance: NoRegression{},
		}, SymmetricSavings, 0, nil
	case domain.VariantTOP:
		return EngineConfig{
			Policy:     BudgetPolicy{MaxCost: in.MaxCost},
			Acceptance: WithinBudget{MaxCost: in.MaxCost},
		}, DirectionalEfficiency, in.FleetSize, nil
	case domain.VariantPJS:
		return EngineConfig{
			Policy:            BudgetPolicy{MaxCost: in.MaxCost},
			Acceptance:        WithinBudget{MaxCost: in.MaxCost},
			SeedSingletons:    true,
			StrictOrientation: true,
		}, MergeEfficiency, in.FleetSize, nil
	default:
		return EngineConfig{}, 0, 0, fmt.Errorf("variant %q: %w", in.Variant, domain.ErrUnknownVariant)
	}
}

// Construct runs the full construction pipeline for one instance: distance
// matrix, candidate list, merge engine and fleet selection.
func Construct(
	ctx context.Context,
	in *domain.Instance,
	alpha float64,
	provider ports.DistanceProvider,
	solutionID string,
) (*Construction, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("construct: %w", err)
	}
	cfg, mode, fleet, err := variantSetup(in)
	if err != nil {
		return nil, fmt.Errorf("construct: %w", err)
	}

	began := time.Now()

	nodes := in.NewNodes()
	m, err := BuildDistanceMatrix(ctx, nodes, provider)
	if err != nil {
		return nil, fmt.Errorf("construct %q: %w", in.Name, err)
	}

	s, f := in.Anchors()
	customers := make([]*domain.Node, 0, len(nodes))
	for _, i := range in.Customers() {
		customers = append(customers, nodes[i])
	}

	cands, err := BuildCandidates(customers, nodes[s], nodes[f], m, mode, alpha)
	if err != nil {
		return nil, fmt.Errorf("construct %q: %w", in.Name, err)
	}

	sol := domain.NewSolution(solutionID)
	eng := NewMergeEngine(cfg, m, nodes[s], nodes[f], customers, sol)
	if err := eng.Run(NewCandidateList(cands)); err != nil {
		return nil, fmt.Errorf("construct %q: %w", in.Name, err)
	}

	dropped := SelectFleet(sol, fleet)

	kept := make(map[int]bool, len(customers))
	for _, r := range sol.Routes {
		for _, id := range r.NodeIDs() {
			kept[id] = true
		}
	}
	var unserved []int
	for _, n := range customers {
		if !kept[n.ID] {
			unserved = append(unserved, n.ID)
		}
	}

	return &Construction{
		Solution: sol,
		Nodes:    nodes,
		Dropped:  dropped,
		Unserved: unserved,
		Stats:    eng.Stats(),
		Elapsed:  time.Since(began),
	}, nil
}

// Planner orchestrates construction runs. It owns the solution identifier
// generator and, when configured, a result cache and a run store.
type Planner struct {
	provider ports.DistanceProvider
	ids      ports.IDGenerator
	cache    ports.ResultCache
	runs     ports.RunStore
	now      func() time.Time
}

type PlannerOption func(*Planner)

func WithResultCache(c ports.ResultCache) PlannerOption {
	return func(p *Planner) { p.cache = c }
}

func WithRunStore(s ports.RunStore) PlannerOption {
	return func(p *Planner) { p.runs = s }
}

func WithClock(now func() time.Time) PlannerOption {
	return func(p *Planner) { p.now = now }
}

func NewPlanner(provider ports.DistanceProvider, ids ports.IDGenerator, opts ...PlannerOption) *Planner {
	p := &Planner{provider: provider, ids: ids, now: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Solve builds routes for the instance. A cached result for the same
// instance and parameters is returned as-is.
func (p *Planner) Solve(ctx context.Context, in *domain.Instance, opts SolveOptions) (_ *domain.Result, err error) {
	defer obs.Time(ctx, "planner.Solve")(&err)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("solve: %w", err)
	}
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("solve: %w", err)
	}
	if opts.Alpha < 0 || opts.Alpha > 1 || math.IsNaN(opts.Alpha) {
		return nil, fmt.Errorf("solve %q: alpha=%v: %w", in.Name, opts.Alpha, ErrInvalidAlpha)
	}
	if p.ids == nil {
		return nil, errors.New("solve: id generator must be non-nil")
	}

	variant := string(in.Variant)
	key := Fingerprint(in, opts.Alpha)

	if p.cache != nil && !opts.Refresh {
		res, ok, err := p.cache.Get(ctx, key)
		switch {
		case err != nil:
			// Cache read failures must not fail the solve.
			metrics.CacheLookups.WithLabelValues("error").Inc()
			log.Printf("req_id=%s result cache read failed: key=%s err=%v", obs.RequestID(ctx), key, err)
		case ok:
			metrics.CacheLookups.WithLabelValues("hit").Inc()
			metrics.SolveRuns.WithLabelValues(variant, "cached").Inc()
			return res, nil
		default:
			metrics.CacheLookups.WithLabelValues("miss").Inc()
		}
	}

	c, err := Construct(ctx, in, opts.Alpha, p.provider, p.ids.NewID())
	if err != nil {
		metrics.SolveRuns.WithLabelValues(variant, "error").Inc()
		return nil, fmt.Errorf("solve: %w", err)
	}

	res := p.result(in, opts.Alpha, c)

	metrics.SolveRuns.WithLabelValues(variant, "ok").Inc()
	metrics.SolveDuration.WithLabelValues(variant).Observe(c.Elapsed.Seconds())
	metrics.SolveRoutes.WithLabelValues(variant).Observe(float64(len(res.Routes)))
	metrics.CandidateOutcomes.WithLabelValues(variant, OutcomeCreated.String()).Add(float64(c.Stats.Created))
	metrics.CandidateOutcomes.WithLabelValues(variant, OutcomeExtended.String()).Add(float64(c.Stats.Extended))
	metrics.CandidateOutcomes.WithLabelValues(variant, OutcomeMerged.String()).Add(float64(c.Stats.Merged))
	metrics.CandidateOutcomes.WithLabelValues(variant, OutcomeDiscarded.String()).Add(float64(c.Stats.Discarded))

	if p.cache != nil {
		if err := p.cache.Put(ctx, key, res); err != nil {
			log.Printf("req_id=%s result cache write failed: key=%s err=%v", obs.RequestID(ctx), key, err)
		}
	}
	if p.runs != nil {
		if err := p.runs.SaveRun(ctx, res); err != nil {
			return res, fmt.Errorf("solve %q: save run: %w", in.Name, err)
		}
	}

	return res, nil
}

// Sweep solves the instance once per alpha, in order. Cancellation is
// checked between runs.
func (p *Planner) Sweep(ctx context.Context, in *domain.Instance, alphas []float64) ([]*domain.Result, error) {
	out := make([]*domain.Result, 0, len(alphas))
	for _, a := range alphas {
		if err := ctx.Err(); err != nil {
			return out, fmt.Errorf("sweep %q: %w", in.Name, err)
		}
		res, err := p.Solve(ctx, in, SolveOptions{Alpha: a})
		if err != nil {
			return out, fmt.Errorf("sweep %q: alpha=%v: %w", in.Name, a, err)
		}
		out = append(out, res)
	}
	return out, nil
}

func (p *Planner) result(in *domain.Instance, alpha float64, c *Construction) *domain.Result {
	sol := c.Solution
	return &domain.Result{
		SolutionID:   sol.ID,
		Instance:     in.Name,
		Variant:      in.Variant,
		Alpha:        alpha,
		NumNodes:     len(in.Points),
		Capacity:     in.Capacity,
		FleetSize:    in.FleetSize,
		MaxCost:      in.MaxCost,
		Routes:       domain.Summarize(sol),
		TotalCost:    sol.Cost,
		TotalDemand:  sol.Demand,
		MaxRouteCost: sol.MaxRouteCost(),
		Unserved:     c.Unserved,
		Elapsed:      c.Elapsed,
		CreatedAt:    p.now().UTC(),
	}
}

// Fingerprint identifies an instance together with the solve parameters.
// Two instances with the same name but different nodes get different keys.
func Fingerprint(in *domain.Instance, alpha float64) string {
	d := xxhash.New()
	var buf [8]byte
	putF := func(v float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		_, _ = d.Write(buf[:])
	}

	_, _ = d.WriteString(string(in.Variant))
	putF(in.Capacity)
	putF(float64(in.FleetSize))
	putF(in.MaxCost)
	putF(alpha)
	for _, pt := range in.Points {
		putF(pt.X)
		putF(pt.Y)
		putF(pt.Demand)
	}
	return fmt.Sprintf("%s:%s:%016x", in.Name, in.Variant, d.Sum64())
}
