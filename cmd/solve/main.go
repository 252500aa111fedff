// Command solve runs the savings construction heuristics over instance
// files and prints one CSV benchmark line per run.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"savings-route-service/internal/adapters/distance"
	"savings-route-service/internal/adapters/idgen"
	"savings-route-service/internal/adapters/instances"
	"savings-route-service/internal/adapters/repositories"
	"savings-route-service/internal/config"
	"savings-route-service/internal/domain"
	"savings-route-service/internal/platform/db"
	"savings-route-service/internal/platform/sysinfo"
	"savings-route-service/internal/report"
	"savings-route-service/internal/services"
	"strconv"
	"strings"
	"syscall"
)

// alphaFlags collects a comma separated list of efficiency weights, and
// may be repeated.
type alphaFlags []float64

func (a *alphaFlags) String() string {
	parts := make([]string, len(*a))
	for i, v := range *a {
		parts[i] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strings.Join(parts, ",")
}

func (a *alphaFlags) Set(s string) error {
	for _, p := range strings.Split(s, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return fmt.Errorf("alpha %q: %w", p, err)
		}
		if v < 0 || v > 1 {
			return fmt.Errorf("alpha %v outside [0, 1]", v)
		}
		*a = append(*a, v)
	}
	return nil
}

type options struct {
	experiment string
	file       string
	variant    string
	capacity   float64
	alphas     alphaFlags
	routes     bool
	dbURL      string
}

func main() {
	config.Load()

	var o options
	flag.StringVar(&o.experiment, "experiment", "", "YAML experiment file (overrides -file)")
	flag.StringVar(&o.file, "file", "", "instance file")
	flag.StringVar(&o.variant, "variant", "cvrp", "problem variant: cvrp, top or pjs")
	flag.Float64Var(&o.capacity, "capacity", 0, "vehicle capacity (cvrp)")
	flag.Var(&o.alphas, "alpha", "efficiency weight(s) in [0, 1], comma separated (top, pjs)")
	flag.BoolVar(&o.routes, "routes", false, "print each route after its benchmark line")
	flag.StringVar(&o.dbURL, "db", config.Get("DATABASE_URL", ""), "record runs in this database")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, o); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, o options) error {
	exp, err := experiment(o)
	if err != nil {
		return err
	}

	var plannerOpts []services.PlannerOption
	if o.dbURL != "" {
		conn, dialect, err := db.OpenURL(o.dbURL)
		if err != nil {
			return err
		}
		defer conn.Close()
		if err := repositories.InitSchema(conn); err != nil {
			return err
		}
		plannerOpts = append(plannerOpts, services.WithRunStore(repositories.NewSQLRunStore(conn, dialect)))
	}
	planner := services.NewPlanner(distance.NewEuclideanDistanceProvider(), idgen.NewUUIDGenerator(), plannerOpts...)

	fmt.Printf("# %s\n", sysinfo.Collect())

	out := report.NewCSVWriter(os.Stdout)
	var last domain.Variant
	for _, e := range exp.Instances {
		in, err := instances.LoadFile(e.File, e.Variant, e.Capacity)
		if err != nil {
			return err
		}
		if e.Name != "" {
			in.Name = e.Name
		}

		if in.Variant.HasDistinctAnchors() != last.HasDistinctAnchors() || last == "" {
			if err := out.Header(in.Variant); err != nil {
				return err
			}
			last = in.Variant
		}

		alphas := exp.Alphas
		if !in.Variant.HasDistinctAnchors() {
			alphas = []float64{services.DefaultAlpha}
		}
		results, err := planner.Sweep(ctx, in, alphas)
		if err != nil {
			return err
		}
		for _, res := range results {
			if err := out.Result(res); err != nil {
				return err
			}
			if o.routes {
				if err := report.Routes(os.Stdout, res); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// experiment returns the runs to perform, read from the experiment file or
// assembled from the single-instance flags.
func experiment(o options) (*config.Experiment, error) {
	if o.experiment != "" {
		return config.LoadExperiment(o.experiment)
	}
	if o.file == "" {
		return nil, fmt.Errorf("either -experiment or -file is required")
	}

	v, err := domain.ParseVariant(o.variant)
	if err != nil {
		return nil, err
	}
	alphas := []float64(o.alphas)
	if len(alphas) == 0 {
		alphas = []float64{services.DefaultAlpha}
	}
	return &config.Experiment{
		Alphas:    alphas,
		Instances: []config.InstanceEntry{{File: o.file, Variant: v, Capacity: o.capacity}},
	}, nil
}
