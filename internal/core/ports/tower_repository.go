package ports

import (
	"context"

	"dropoff/internal/core/domain/model/kernel"
	"dropoff/internal/core/domain/model/tower"
)

// TowerRepository persists tower aggregates. Rack occupancy is loaded with the
// tower but is only ever written through RackLedger.
type TowerRepository interface {
	// Add stores a new tower together with its empty racks.
	Add(ctx context.Context, aggregate *tower.Tower) error

	Get(ctx context.Context, name string) (*tower.Tower, error)

	// FindByCoordinates resolves the tower standing at the given position,
	// matching within kernel.CoordinatesTolerance.
	FindByCoordinates(ctx context.Context, location kernel.Coordinates) (*tower.Tower, error)
}
