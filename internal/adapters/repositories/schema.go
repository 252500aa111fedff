package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"savings-route-service/internal/platform/db"
)

// Initialize the database schema. The statements are portable between
// SQLite and PostgreSQL.
func InitSchema(conn *sql.DB) error {
	if conn == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := conn.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createInstancesQuery := `
	CREATE TABLE IF NOT EXISTS instances (
		name TEXT PRIMARY KEY,
		variant TEXT NOT NULL,
		capacity DOUBLE PRECISION NOT NULL DEFAULT 0,
		fleet_size INTEGER NOT NULL DEFAULT 0,
		max_cost DOUBLE PRECISION NOT NULL DEFAULT 0
	);
	`

	createNodesQuery := `
	CREATE TABLE IF NOT EXISTS instance_nodes (
		instance_name TEXT NOT NULL REFERENCES instances(name) ON DELETE CASCADE,
		node_id INTEGER NOT NULL,
		x DOUBLE PRECISION NOT NULL,
		y DOUBLE PRECISION NOT NULL,
		demand DOUBLE PRECISION NOT NULL,
		PRIMARY KEY (instance_name, node_id)
	);
	`

	createRunsQuery := `
	CREATE TABLE IF NOT EXISTS solve_runs (
		solution_id TEXT PRIMARY KEY,
		instance_name TEXT NOT NULL,
		variant TEXT NOT NULL,
		alpha DOUBLE PRECISION NOT NULL,
		num_routes INTEGER NOT NULL,
		total_cost DOUBLE PRECISION NOT NULL,
		total_demand DOUBLE PRECISION NOT NULL,
		max_route_cost DOUBLE PRECISION NOT NULL,
		elapsed_ns BIGINT NOT NULL,
		created_at TEXT NOT NULL,
		payload TEXT NOT NULL
	);
	`

	createRunsIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_solve_runs_instance_created
	ON solve_runs(instance_name, created_at);
	`

	createResultCacheQuery := `
	CREATE TABLE IF NOT EXISTS result_cache (
		cache_key TEXT PRIMARY KEY,
		payload TEXT NOT NULL,
		created_at TEXT NOT NULL
	);
	`

	statements := []string{
		createInstancesQuery,
		createNodesQuery,
		createRunsQuery,
		createRunsIndexQuery,
		createResultCacheQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Fixed-width UTC timestamps sort correctly as text on both dialects.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// store carries the connection and the placeholder dialect shared by the
// SQL adapters.
type store struct {
	DB      *sql.DB
	Dialect db.Dialect
}

func (s store) q(query string) string { return db.Rebind(s.Dialect, query) }
