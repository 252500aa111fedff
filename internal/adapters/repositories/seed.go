package repositories

import (
	"context"
	"fmt"
	"log"
	"savings-route-service/internal/adapters/instances"
	"savings-route-service/internal/config"
	"savings-route-service/internal/ports"
)

// Populate the repository with the instance files listed in a manifest.
// Returns the number of instances stored.
func SeedFromManifest(ctx context.Context, repo ports.InstanceRepository, m *config.Manifest) (int, error) {
	if m == nil {
		return 0, fmt.Errorf("seed instances: manifest is nil")
	}

	for i, e := range m.Instances {
		in, err := instances.LoadFile(e.File, e.Variant, e.Capacity)
		if err != nil {
			return i, fmt.Errorf("seed instances: entry %d: %w", i+1, err)
		}
		if e.Name != "" {
			in.Name = e.Name
		}
		if err := repo.SaveInstance(ctx, in); err != nil {
			return i, fmt.Errorf("seed instances: entry %d: %w", i+1, err)
		}
		log.Printf("seeded instance name=%s variant=%s nodes=%d", in.Name, in.Variant, len(in.Points))
	}

	return len(m.Instances), nil
}
