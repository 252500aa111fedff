package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry for the service.
	Registry = prometheus.NewRegistry()

	// HTTPRequests counts requests by method, path, and status.
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)
	// HTTPDuration records request durations in seconds.
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"method", "path", "status"},
	)

	// SolveRuns counts construction runs by variant and status (ok, error, cached).
	SolveRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "solve_runs_total", Help: "Construction runs by variant and status."},
		[]string{"variant", "status"},
	)
	// SolveDuration tracks construction time in seconds.
	SolveDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "solve_duration_seconds", Help: "Construction time in seconds.", Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10}},
		[]string{"variant"},
	)
	// SolveRoutes tracks the number of routes retained per run.
	SolveRoutes = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "solve_routes", Help: "Routes retained per construction run.", Buckets: []float64{1, 2, 4, 8, 16, 32, 64}},
		[]string{"variant"},
	)
	// CandidateOutcomes counts merge engine decisions per candidate.
	CandidateOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "solve_candidates_total", Help: "Savings candidates by variant and outcome."},
		[]string{"variant", "outcome"},
	)
	// CacheLookups counts result cache lookups by result (hit, miss, error).
	CacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "result_cache_lookups_total", Help: "Result cache lookups by result."},
		[]string{"result"},
	)
	// OpDuration records timed operations in seconds.
	OpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "op_duration_seconds", Help: "Timed operation duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"op", "status"},
	)
)

// RegisterDefault registers collectors to the service registry.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(HTTPDuration)
		Registry.MustRegister(SolveRuns)
		Registry.MustRegister(SolveDuration)
		Registry.MustRegister(SolveRoutes)
		Registry.MustRegister(CandidateOutcomes)
		Registry.MustRegister(CacheLookups)
		Registry.MustRegister(OpDuration)
		// Go/process collectors on our registry
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}

var regOnce sync.Once
