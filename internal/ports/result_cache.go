package ports

import (
	"context"
	"savings-route-service/internal/domain"
)

// Cache of construction results keyed by an instance/parameter fingerprint.
// Get reports a miss with ok == false and a nil error.
type ResultCache interface {
	Get(ctx context.Context, key string) (_ *domain.Result, ok bool, err error)
	Put(ctx context.Context, key string, res *domain.Result) error
}
