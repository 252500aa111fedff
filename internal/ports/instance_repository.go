package ports

import (
	"context"
	"errors"
	"savings-route-service/internal/domain"
)

// ErrInstanceNotFound is returned when a named instance does not exist.
var ErrInstanceNotFound = errors.New("instance not found")

// InstanceSummary describes a stored instance without its node list.
type InstanceSummary struct {
	Name      string
	Variant   domain.Variant
	NumNodes  int
	Capacity  float64
	FleetSize int
	MaxCost   float64
}

// Port: a boundary for storing and retrieving routing instances.
type InstanceRepository interface {
	// Retrieve summaries of all stored instances ordered by name.
	ListInstances(ctx context.Context) ([]InstanceSummary, error)
	// Retrieve one instance with its nodes.
	GetInstance(ctx context.Context, name string) (*domain.Instance, error)
	// Insert or replace an instance and its nodes.
	SaveInstance(ctx context.Context, in *domain.Instance) error
}
