package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"savings-route-service/internal/domain"
	"savings-route-service/internal/platform/db"
	"savings-route-service/internal/platform/obs"
)

// SQL-backed implementation of the RunStore port. Aggregates are stored in
// columns for querying; the full result is kept as a JSON payload.
type SQLRunStore struct{ store }

func NewSQLRunStore(conn *sql.DB, dialect db.Dialect) *SQLRunStore {
	return &SQLRunStore{store{DB: conn, Dialect: dialect}}
}

func (s *SQLRunStore) SaveRun(ctx context.Context, res *domain.Result) (err error) {
	defer obs.Time(ctx, "runs.Save")(&err)

	if s.DB == nil {
		return errors.New("sql run store: DB is nil")
	}
	if res == nil || res.SolutionID == "" {
		return errors.New("save run: result must have a solution id")
	}

	payload, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("save run %s: encode payload: %w", res.SolutionID, err)
	}

	_, err = s.DB.ExecContext(ctx, s.q(`
	INSERT INTO solve_runs (
		solution_id,
		instance_name,
		variant,
		alpha,
		num_routes,
		total_cost,
		total_demand,
		max_route_cost,
		elapsed_ns,
		created_at,
		payload
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`),
		res.SolutionID,
		res.Instance,
		string(res.Variant),
		res.Alpha,
		len(res.Routes),
		res.TotalCost,
		res.TotalDemand,
		res.MaxRouteCost,
		res.Elapsed.Nanoseconds(),
		res.CreatedAt.UTC().Format(timeLayout),
		string(payload),
	)
	if err != nil {
		return fmt.Errorf("save run %s: insert solve_runs: %w", res.SolutionID, err)
	}
	return nil
}

// Return the runs recorded for an instance, newest first. A limit of zero
// or less returns every run.
func (s *SQLRunStore) ListRuns(ctx context.Context, instance string, limit int) (_ []*domain.Result, err error) {
	defer obs.Time(ctx, "runs.List")(&err)

	if s.DB == nil {
		return nil, errors.New("sql run store: DB is nil")
	}

	query := `
	SELECT payload
	FROM solve_runs
	WHERE instance_name = ?
	ORDER BY created_at DESC, solution_id DESC
	`
	args := []any{instance}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.DB.QueryContext(ctx, s.q(query), args...)
	if err != nil {
		return nil, fmt.Errorf("list runs %q: query solve_runs table: %w", instance, err)
	}
	defer rows.Close()

	out := make([]*domain.Result, 0, 16)
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("list runs %q: scan row: %w", instance, err)
		}
		var res domain.Result
		if err := json.Unmarshal([]byte(payload), &res); err != nil {
			return nil, fmt.Errorf("list runs %q: decode payload: %w", instance, err)
		}
		out = append(out, &res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs %q: row iteration: %w", instance, err)
	}

	return out, nil
}
