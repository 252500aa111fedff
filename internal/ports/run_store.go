package ports

import (
	"context"
	"savings-route-service/internal/domain"
)

// Port: persistence of completed construction runs.
type RunStore interface {
	SaveRun(ctx context.Context, res *domain.Result) error
	// Return the runs recorded for an instance, newest first.
	ListRuns(ctx context.Context, instance string, limit int) ([]*domain.Result, error)
}
