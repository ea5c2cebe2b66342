package queries

import (
	"errors"
	"strings"

	"dropoff/internal/core/domain/model/drone"
	"dropoff/internal/core/domain/model/kernel"
	"dropoff/internal/pkg/errs"
	"dropoff/internal/pkg/guard"
)

var (
	ErrGetDroneQueryIsNotConstructed = errors.New(
		"GetDroneQuery must be created via NewGetDroneQuery constructor",
	)
	ErrListDeliveryDronesQueryIsNotConstructed = errors.New(
		"ListDeliveryDronesQuery must be created via NewListDeliveryDronesQuery constructor",
	)
)

type GetDroneQuery struct {
	droneID string
	guard   guard.ConstructorGuard
}

func NewGetDroneQuery(droneID string) (GetDroneQuery, error) {
	droneID = strings.TrimSpace(droneID)
	if droneID == "" {
		return GetDroneQuery{}, errs.NewValueIsRequiredError("drone_id")
	}
	return GetDroneQuery{droneID: droneID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetDroneQuery) DroneID() string {
	return q.droneID
}

func (q GetDroneQuery) Validate() error {
	return q.guard.Validate(ErrGetDroneQueryIsNotConstructed)
}

// ListDeliveryDronesQuery lists the drones some parcel is assigned to.
type ListDeliveryDronesQuery struct {
	guard guard.ConstructorGuard
}

func NewListDeliveryDronesQuery() ListDeliveryDronesQuery {
	return ListDeliveryDronesQuery{guard: guard.NewConstructorGuard()}
}

func (q ListDeliveryDronesQuery) Validate() error {
	return q.guard.Validate(ErrListDeliveryDronesQueryIsNotConstructed)
}

// DroneQueryResponse is one fleet row. Grippers holds the package id in each
// gripper, nil when empty.
type DroneQueryResponse struct {
	ID          string
	Source      *kernel.Coordinates
	Destination *kernel.Coordinates
	Grippers    [drone.GripperCount]*string
}
