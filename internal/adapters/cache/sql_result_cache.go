package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"savings-route-service/internal/domain"
	"savings-route-service/internal/platform/db"
	"savings-route-service/internal/platform/obs"
	"strings"
	"time"
)

// SQLResultCache is a SQL-backed cache of construction results keyed by
// instance/parameter fingerprint. It works on SQLite and PostgreSQL.
type SQLResultCache struct {
	DB      *sql.DB
	Dialect db.Dialect
}

func NewSQLResultCache(conn *sql.DB, dialect db.Dialect) *SQLResultCache {
	return &SQLResultCache{DB: conn, Dialect: dialect}
}

// Fetch a cached result. A missing key is reported with ok == false.
func (s *SQLResultCache) Get(ctx context.Context, key string) (_ *domain.Result, ok bool, err error) {
	defer obs.Time(ctx, "result.cache.Get")(&err)

	if s.DB == nil {
		return nil, false, errors.New("result cache: db is nil")
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return nil, false, errors.New("get result cache: key must not be empty")
	}

	var payload string
	err = s.DB.QueryRowContext(ctx, db.Rebind(s.Dialect, `
	SELECT payload
	FROM result_cache
	WHERE cache_key = ?;
	`), key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get result cache: query result_cache table: %w", err)
	}

	var res domain.Result
	if err := json.Unmarshal([]byte(payload), &res); err != nil {
		return nil, false, fmt.Errorf("get result cache key=%q: decode payload: %w", key, err)
	}
	return &res, true, nil
}

// Store a result, replacing any previous entry for the key.
func (s *SQLResultCache) Put(ctx context.Context, key string, res *domain.Result) error {
	if s.DB == nil {
		return errors.New("result cache: db is nil")
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("insert result cache: key must not be empty")
	}
	if res == nil {
		return errors.New("insert result cache: result must be non-nil")
	}

	payload, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("insert result cache key=%q: encode payload: %w", key, err)
	}

	_, err = s.DB.ExecContext(ctx, db.Rebind(s.Dialect, `
	INSERT INTO result_cache (cache_key, payload, created_at)
	VALUES (?, ?, ?)
	ON CONFLICT (cache_key) DO UPDATE
	SET payload = excluded.payload,
		created_at = excluded.created_at;
	`), key, string(payload), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("insert result cache key=%q: %w", key, err)
	}

	return nil
}
