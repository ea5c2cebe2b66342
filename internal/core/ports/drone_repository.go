package ports

import (
	"context"

	"dropoff/internal/core/domain/model/drone"
)

// DroneRepository persists drone aggregates.
type DroneRepository interface {
	Add(ctx context.Context, aggregate *drone.Drone) error
	Update(ctx context.Context, aggregate *drone.Drone) error
	Get(ctx context.Context, id string) (*drone.Drone, error)

	// GetCarrying returns every drone with at least one gripper holding packageID.
	GetCarrying(ctx context.Context, packageID string) ([]*drone.Drone, error)
}
