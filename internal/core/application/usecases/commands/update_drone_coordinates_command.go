package commands

import (
	"errors"
	"strings"

	"dropoff/internal/core/domain/model/kernel"
	"dropoff/internal/pkg/errs"
	"dropoff/internal/pkg/guard"
)

var (
	ErrUpdateDroneCoordinatesCommandIsNotConstructed = errors.New(
		"UpdateDroneCoordinatesCommand must be created via NewUpdateDroneCoordinatesCommand constructor",
	)
	ErrNoCoordinatesGiven = errors.New("source or destination coordinates are required")
)

// CoordinatesInput is an optional latitude/longitude pair as received from a client.
type CoordinatesInput struct {
	Latitude  *float64
	Longitude *float64
}

func (in CoordinatesInput) isEmpty() bool {
	return in.Latitude == nil && in.Longitude == nil
}

// UpdateDroneCoordinatesCommand sets where a drone flies from and to. Either
// pair may be omitted, but not both.
type UpdateDroneCoordinatesCommand struct { //nolint:recvcheck //using for validation
	droneID     string
	source      *kernel.Coordinates
	destination *kernel.Coordinates

	guard guard.ConstructorGuard
}

func NewUpdateDroneCoordinatesCommand(
	droneID string,
	source, destination CoordinatesInput,
) (UpdateDroneCoordinatesCommand, error) {
	cmd := UpdateDroneCoordinatesCommand{
		guard: guard.NewConstructorGuard(),
	}

	if source.isEmpty() && destination.isEmpty() {
		return UpdateDroneCoordinatesCommand{}, ErrNoCoordinatesGiven
	}

	var err error
	droneID = strings.TrimSpace(droneID)
	if droneID == "" {
		err = errs.NewValueIsRequiredError("drone_id")
	}
	cmd.droneID = droneID

	var srcErr, dstErr error
	cmd.source, srcErr = toCoordinates("source", source)
	cmd.destination, dstErr = toCoordinates("destination", destination)

	if err = errors.Join(err, srcErr, dstErr); err != nil {
		return UpdateDroneCoordinatesCommand{}, err
	}
	return cmd, nil
}

func (c UpdateDroneCoordinatesCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDroneCoordinatesCommandIsNotConstructed)
}

func (c UpdateDroneCoordinatesCommand) DroneID() string {
	return c.droneID
}

// Source is nil when the source is left unchanged.
func (c UpdateDroneCoordinatesCommand) Source() *kernel.Coordinates {
	return c.source
}

// Destination is nil when the destination is left unchanged.
func (c UpdateDroneCoordinatesCommand) Destination() *kernel.Coordinates {
	return c.destination
}

func toCoordinates(name string, in CoordinatesInput) (*kernel.Coordinates, error) {
	if in.isEmpty() {
		return nil, nil
	}
	if in.Latitude == nil {
		return nil, errs.NewValueIsRequiredError(name + "_lat")
	}
	if in.Longitude == nil {
		return nil, errs.NewValueIsRequiredError(name + "_lng")
	}
	c, err := kernel.NewCoordinates(*in.Latitude, *in.Longitude)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
