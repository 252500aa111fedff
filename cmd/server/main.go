package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"savings-route-service/internal/adapters/cache"
	"savings-route-service/internal/adapters/distance"
	"savings-route-service/internal/adapters/idgen"
	"savings-route-service/internal/adapters/repositories"
	"savings-route-service/internal/api"
	"savings-route-service/internal/config"
	"savings-route-service/internal/platform/db"
	"savings-route-service/internal/ports"
	"savings-route-service/internal/services"
	"syscall"
	"time"
)

// main is the application composition root.
// It wires concrete adapters (SQL store, result cache) behind ports and starts the HTTP server.
func main() {
	config.Load()

	dbURL := config.Get("DATABASE_URL", config.Get("DB_PATH", "data/app.db"))
	manifest := config.Get("SEED_MANIFEST", "")
	redisURL := config.Get("REDIS_URL", "")
	cacheTTL := config.GetDuration("CACHE_TTL", 24*time.Hour)
	port := config.Get("PORT", "8080")

	conn, dialect, err := db.OpenURL(dbURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	// Initialize schema and optionally import instances on startup for local runs.
	if err := initAndSeed(conn, dialect, manifest); err != nil {
		log.Fatal(err)
	}

	checks := map[string]func(ctx context.Context) error{"db": conn.PingContext}

	var resultCache ports.ResultCache = cache.NewSQLResultCache(conn, dialect)
	if redisURL != "" {
		rc, err := cache.NewRedisResultCache(redisURL, cacheTTL)
		if err != nil {
			log.Fatal(err)
		}
		defer rc.Close()
		resultCache = rc
		checks["redis"] = rc.Ping
	}

	runs := repositories.NewSQLRunStore(conn, dialect)
	planner := services.NewPlanner(
		distance.NewEuclideanDistanceProvider(),
		idgen.NewUUIDGenerator(),
		services.WithResultCache(resultCache),
		services.WithRunStore(runs),
	)

	router := api.NewRouter(api.Deps{
		Instances:          repositories.NewSQLInstanceRepository(conn, dialect),
		Runs:               runs,
		Solver:             planner,
		Checks:             checks,
		SolveRatePerSecond: config.GetFloat("SOLVE_RATE_PER_SECOND", 2),
		SolveBurst:         config.GetInt("SOLVE_BURST", 5),
		MaxInlineNodes:     config.GetInt("MAX_INLINE_NODES", 2000),
	})

	// Large instances can take a while to construct; the write timeout covers that.
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("Server listening addr=:%s db=%s", port, dialect)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}

func initAndSeed(conn *sql.DB, dialect db.Dialect, manifestPath string) error {
	if err := repositories.InitSchema(conn); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}
	if manifestPath == "" {
		return nil
	}

	m, err := config.LoadManifest(manifestPath)
	if err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}
	repo := repositories.NewSQLInstanceRepository(conn, dialect)
	if _, err := repositories.SeedFromManifest(context.Background(), repo, m); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}
