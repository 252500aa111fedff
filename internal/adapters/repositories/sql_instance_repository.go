package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"savings-route-service/internal/domain"
	"savings-route-service/internal/platform/db"
	"savings-route-service/internal/platform/obs"
	"savings-route-service/internal/ports"
)

// SQL-backed implementation of the InstanceRepository port.
type SQLInstanceRepository struct{ store }

func NewSQLInstanceRepository(conn *sql.DB, dialect db.Dialect) *SQLInstanceRepository {
	return &SQLInstanceRepository{store{DB: conn, Dialect: dialect}}
}

// Return summaries of all stored instances ordered by name.
func (s *SQLInstanceRepository) ListInstances(ctx context.Context) (_ []ports.InstanceSummary, err error) {
	defer obs.Time(ctx, "instances.List")(&err)

	if s.DB == nil {
		return nil, errors.New("sql instance repository: DB is nil")
	}

	query := `
	SELECT
		i.name,
		i.variant,
		i.capacity,
		i.fleet_size,
		i.max_cost,
		COUNT(n.node_id)
	FROM instances i
	LEFT JOIN instance_nodes n ON n.instance_name = i.name
	GROUP BY i.name, i.variant, i.capacity, i.fleet_size, i.max_cost
	ORDER BY i.name;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list instances: query instances table: %w", err)
	}
	defer rows.Close()

	out := make([]ports.InstanceSummary, 0, 16)
	for rows.Next() {
		var (
			sum     ports.InstanceSummary
			variant string
		)
		if err := rows.Scan(&sum.Name, &variant, &sum.Capacity, &sum.FleetSize, &sum.MaxCost, &sum.NumNodes); err != nil {
			return nil, fmt.Errorf("list instances: scan row: %w", err)
		}
		sum.Variant = domain.Variant(variant)
		out = append(out, sum)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list instances: row iteration: %w", err)
	}

	return out, nil
}

// Retrieve one instance with its nodes in node ID order.
func (s *SQLInstanceRepository) GetInstance(ctx context.Context, name string) (_ *domain.Instance, err error) {
	defer obs.Time(ctx, "instances.Get")(&err)

	if s.DB == nil {
		return nil, errors.New("sql instance repository: DB is nil")
	}

	in := &domain.Instance{Name: name}
	var variant string
	err = s.DB.QueryRowContext(ctx, s.q(`
	SELECT variant, capacity, fleet_size, max_cost
	FROM instances
	WHERE name = ?;
	`), name).Scan(&variant, &in.Capacity, &in.FleetSize, &in.MaxCost)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get instance %q: %w", name, ports.ErrInstanceNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get instance %q: query instances table: %w", name, err)
	}
	in.Variant = domain.Variant(variant)

	rows, err := s.DB.QueryContext(ctx, s.q(`
	SELECT node_id, x, y, demand
	FROM instance_nodes
	WHERE instance_name = ?
	ORDER BY node_id;
	`), name)
	if err != nil {
		return nil, fmt.Errorf("get instance %q: query instance_nodes table: %w", name, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id int
			p  domain.Point
		)
		if err := rows.Scan(&id, &p.X, &p.Y, &p.Demand); err != nil {
			return nil, fmt.Errorf("get instance %q: scan node: %w", name, err)
		}
		if id != len(in.Points) {
			return nil, fmt.Errorf("get instance %q: node ids not contiguous at %d", name, id)
		}
		in.Points = append(in.Points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get instance %q: row iteration: %w", name, err)
	}

	return in, nil
}

// Insert or replace an instance together with all of its nodes.
func (s *SQLInstanceRepository) SaveInstance(ctx context.Context, in *domain.Instance) (err error) {
	defer obs.Time(ctx, "instances.Save")(&err)

	if s.DB == nil {
		return errors.New("sql instance repository: DB is nil")
	}
	if err := in.Validate(); err != nil {
		return fmt.Errorf("save instance: %w", err)
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save instance %q: begin tx: %w", in.Name, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, s.q(`
	INSERT INTO instances (name, variant, capacity, fleet_size, max_cost)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT (name) DO UPDATE
	SET variant = excluded.variant,
		capacity = excluded.capacity,
		fleet_size = excluded.fleet_size,
		max_cost = excluded.max_cost;
	`), in.Name, string(in.Variant), in.Capacity, in.FleetSize, in.MaxCost); err != nil {
		return fmt.Errorf("save instance %q: upsert instance: %w", in.Name, err)
	}

	if _, err := tx.ExecContext(ctx, s.q(`DELETE FROM instance_nodes WHERE instance_name = ?;`), in.Name); err != nil {
		return fmt.Errorf("save instance %q: clear nodes: %w", in.Name, err)
	}

	stmt, err := tx.PrepareContext(ctx, s.q(`
	INSERT INTO instance_nodes (instance_name, node_id, x, y, demand)
	VALUES (?, ?, ?, ?, ?);
	`))
	if err != nil {
		return fmt.Errorf("save instance %q: prepare insert: %w", in.Name, err)
	}
	defer stmt.Close()

	for i, p := range in.Points {
		if _, err := stmt.ExecContext(ctx, in.Name, i, p.X, p.Y, p.Demand); err != nil {
			return fmt.Errorf("save instance %q: insert node_id=%d: %w", in.Name, i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save instance %q: commit tx: %w", in.Name, err)
	}

	return nil
}
