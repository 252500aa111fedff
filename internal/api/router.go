package api

import (
	"context"
	"net/http"
	"savings-route-service/internal/api/handlers"
	"savings-route-service/internal/platform/metrics"
	"savings-route-service/internal/ports"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps are the ports the HTTP API is wired against.
type Deps struct {
	Instances ports.InstanceRepository
	Runs      ports.RunStore
	Solver    handlers.Solver
	Checks    map[string]func(ctx context.Context) error

	// Per-client budget for POST /solve. Zero disables limiting.
	SolveRatePerSecond float64
	SolveBurst         int
	MaxInlineNodes     int
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(d Deps) http.Handler {
	mux := http.NewServeMux()

	healthHandler := &handlers.HealthHandler{Checks: d.Checks}
	instanceHandler := &handlers.InstanceHandler{Repo: d.Instances}
	runHandler := &handlers.RunHandler{Runs: d.Runs}
	solveHandler := &handlers.SolveHandler{
		Repo:     d.Instances,
		Solver:   d.Solver,
		MaxNodes: d.MaxInlineNodes,
	}

	var solve http.Handler = http.HandlerFunc(solveHandler.Solve)
	if d.SolveRatePerSecond > 0 {
		burst := d.SolveBurst
		if burst < 1 {
			burst = 1
		}
		solve = newClientLimiter(d.SolveRatePerSecond, burst).rateLimit(solve)
	}

	metrics.RegisterDefault()

	mux.HandleFunc("/health", healthHandler.Health)
	mux.HandleFunc("/instances", instanceHandler.List)
	mux.HandleFunc("/runs", runHandler.List)
	mux.Handle("/solve", solve)
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	return loggingMiddleware(mux)
}
