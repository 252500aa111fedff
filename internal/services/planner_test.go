package services

import (
	"context"
	"errors"
	"savings-route-service/internal/adapters/distance"
	"savings-route-service/internal/adapters/idgen"
	"savings-route-service/internal/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memCache struct {
	m       map[string]*domain.Result
	gets    int
	failGet error
}

func (c *memCache) Get(_ context.Context, key string) (*domain.Result, bool, error) {
	c.gets++
	if c.failGet != nil {
		return nil, false, c.failGet
	}
	r, ok := c.m[key]
	return r, ok, nil
}

func (c *memCache) Put(_ context.Context, key string, res *domain.Result) error {
	c.m[key] = res
	return nil
}

type memRuns struct {
	saved []*domain.Result
	err   error
}

func (s *memRuns) SaveRun(_ context.Context, res *domain.Result) error {
	if s.err != nil {
		return s.err
	}
	s.saved = append(s.saved, res)
	return nil
}

func (s *memRuns) ListRuns(_ context.Context, instance string, limit int) ([]*domain.Result, error) {
	return s.saved, nil
}

func cvrpInstance() *domain.Instance {
	return &domain.Instance{
		Name:     "cvrp-4",
		Variant:  domain.VariantCVRP,
		Points:   []domain.Point{pt(0, 0, 0), pt(0, 1, 5), pt(0, 2, 5), pt(0, -10, 5)},
		Capacity: 10,
	}
}

func TestPlannerSolveBuildsResult(t *testing.T) {
	now := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	runs := &memRuns{}
	p := NewPlanner(
		distance.NewEuclideanDistanceProvider(),
		idgen.NewSequenceGenerator("sol"),
		WithRunStore(runs),
		WithClock(func() time.Time { return now }),
	)

	res, err := p.Solve(context.Background(), cvrpInstance(), SolveOptions{Alpha: DefaultAlpha})
	require.NoError(t, err)

	assert.Equal(t, "sol-1", res.SolutionID)
	assert.Equal(t, "cvrp-4", res.Instance)
	assert.Equal(t, domain.VariantCVRP, res.Variant)
	assert.Equal(t, 4, res.NumNodes)
	assert.Equal(t, now, res.CreatedAt)
	require.Len(t, res.Routes, 2)
	assert.Equal(t, []int{0, 1, 2, 0}, res.Routes[0].NodeIDs)
	assert.InDelta(t, 24.0, res.TotalCost, 1e-9)
	assert.InDelta(t, 15.0, res.TotalDemand, 1e-9)
	assert.InDelta(t, 20.0, res.MaxRouteCost, 1e-9)
	assert.Empty(t, res.Unserved)

	require.Len(t, runs.saved, 1)
	assert.Same(t, res, runs.saved[0])

	// Identifiers come from the injected generator, one per run.
	res2, err := p.Solve(context.Background(), cvrpInstance(), SolveOptions{Alpha: DefaultAlpha})
	require.NoError(t, err)
	assert.Equal(t, "sol-2", res2.SolutionID)
}

func TestPlannerSolveUsesCache(t *testing.T) {
	cache := &memCache{m: map[string]*domain.Result{}}
	p := NewPlanner(distance.NewEuclideanDistanceProvider(), idgen.NewSequenceGenerator("sol"), WithResultCache(cache))
	in := cvrpInstance()

	first, err := p.Solve(context.Background(), in, SolveOptions{Alpha: 1})
	require.NoError(t, err)
	require.Len(t, cache.m, 1)

	second, err := p.Solve(context.Background(), in, SolveOptions{Alpha: 1})
	require.NoError(t, err)
	assert.Same(t, first, second)

	third, err := p.Solve(context.Background(), in, SolveOptions{Alpha: 1, Refresh: true})
	require.NoError(t, err)
	assert.Equal(t, "sol-2", third.SolutionID)
	assert.Equal(t, 2, cache.gets)
}

func TestPlannerSolveSurvivesCacheReadFailure(t *testing.T) {
	cache := &memCache{m: map[string]*domain.Result{}, failGet: errors.New("boom")}
	p := NewPlanner(distance.NewEuclideanDistanceProvider(), idgen.NewSequenceGenerator("sol"), WithResultCache(cache))

	res, err := p.Solve(context.Background(), cvrpInstance(), SolveOptions{Alpha: 1})
	require.NoError(t, err)
	assert.Len(t, res.Routes, 2)
}

func TestPlannerSolveErrors(t *testing.T) {
	p := NewPlanner(distance.NewEuclideanDistanceProvider(), idgen.NewSequenceGenerator("sol"))

	t.Run("invalid alpha", func(t *testing.T) {
		_, err := p.Solve(context.Background(), cvrpInstance(), SolveOptions{Alpha: 2})
		assert.ErrorIs(t, err, ErrInvalidAlpha)
	})

	t.Run("invalid instance", func(t *testing.T) {
		in := cvrpInstance()
		in.Capacity = 0
		_, err := p.Solve(context.Background(), in, SolveOptions{Alpha: 1})
		assert.ErrorIs(t, err, domain.ErrInvalidInstance)
	})

	t.Run("canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := p.Solve(ctx, cvrpInstance(), SolveOptions{Alpha: 1})
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("run store failure", func(t *testing.T) {
		p := NewPlanner(distance.NewEuclideanDistanceProvider(), idgen.NewSequenceGenerator("sol"), WithRunStore(&memRuns{err: errors.New("disk full")}))
		res, err := p.Solve(context.Background(), cvrpInstance(), SolveOptions{Alpha: 1})
		assert.ErrorContains(t, err, "save run")
		assert.NotNil(t, res)
	})
}

func TestPlannerSweep(t *testing.T) {
	in := &domain.Instance{
		Name:      "top-5",
		Variant:   domain.VariantTOP,
		Points:    []domain.Point{pt(0, 0, 0), pt(3, 0, 5), pt(6, 0, 5), pt(5, 20, 10), pt(10, 0, 0)},
		FleetSize: 2,
		MaxCost:   15,
	}
	p := NewPlanner(distance.NewEuclideanDistanceProvider(), idgen.NewSequenceGenerator("sol"))

	results, err := p.Sweep(context.Background(), in, []float64{0, 0.5, 1})
	require.NoError(t, err)
	require.Len(t, results, 3)
	for i, res := range results {
		assert.Equal(t, []float64{0, 0.5, 1}[i], res.Alpha)
		assert.Equal(t, []int{3}, res.Unserved)
		assert.LessOrEqual(t, res.MaxRouteCost, in.MaxCost)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	results, err = p.Sweep(ctx, in, []float64{1})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, results)
}

func TestFingerprint(t *testing.T) {
	a := cvrpInstance()
	b := cvrpInstance()
	assert.Equal(t, Fingerprint(a, 1), Fingerprint(b, 1))
	assert.NotEqual(t, Fingerprint(a, 1), Fingerprint(a, 0.5))

	b.Points[1].Demand = 6
	assert.NotEqual(t, Fingerprint(a, 1), Fingerprint(b, 1))
	assert.Contains(t, Fingerprint(a, 1), "cvrp-4:cvrp:")
}
