package queries

import (
	"errors"
	"strings"

	"dropoff/internal/core/domain/model/kernel"
	"dropoff/internal/pkg/errs"
	"dropoff/internal/pkg/guard"
)

var ErrGetDroneDestinationQueryIsNotConstructed = errors.New(
	"GetDroneDestinationQuery must be created via NewGetDroneDestinationQuery constructor",
)

// GetDroneDestinationQuery resolves where a drone is flying: the destination
// of a parcel assigned to it and the towers standing there.
type GetDroneDestinationQuery struct {
	droneID string
	guard   guard.ConstructorGuard
}

func NewGetDroneDestinationQuery(droneID string) (GetDroneDestinationQuery, error) {
	droneID = strings.TrimSpace(droneID)
	if droneID == "" {
		return GetDroneDestinationQuery{}, errs.NewValueIsRequiredError("drone_id")
	}
	return GetDroneDestinationQuery{droneID: droneID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetDroneDestinationQuery) DroneID() string {
	return q.droneID
}

func (q GetDroneDestinationQuery) Validate() error {
	return q.guard.Validate(ErrGetDroneDestinationQueryIsNotConstructed)
}

// GetDroneDestinationQueryResponse has a nil Destination and no towers when
// the assigned parcel carries no coordinates yet.
type GetDroneDestinationQueryResponse struct {
	DroneID     string
	PackageID   string
	Destination *kernel.Coordinates
	Towers      []GetTowerRacksQueryResponse
}
