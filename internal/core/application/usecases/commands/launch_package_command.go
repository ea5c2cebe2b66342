package commands

import (
	"errors"
	"strings"

	"dropoff/internal/core/domain/model/kernel"
	"dropoff/internal/pkg/errs"
	"dropoff/internal/pkg/guard"
)

var ErrLaunchPackageCommandIsNotConstructed = errors.New(
	"LaunchPackageCommand must be created via NewLaunchPackageCommand constructor",
)

// LaunchPackageCommand asks for a package to be dropped into a tower rack.
//
// Example:
//
//	lat, lng := 1.0, 2.0
//	cmd, err := NewLaunchPackageCommand("P1", "T1", "rack_01", &lat, &lng)
//	if err != nil {
//	    return err // 400: a required field is missing or malformed
//	}
//	result, err := handler.Handle(ctx, cmd)
type LaunchPackageCommand struct { //nolint:recvcheck //using for validation
	packageID string
	rack      kernel.RackSlot
	location  kernel.Coordinates

	guard guard.ConstructorGuard
}

// NewLaunchPackageCommand validates every field and reports all problems at once.
// Coordinates are pointers so that a missing value can be told apart from zero.
func NewLaunchPackageCommand(
	packageID, towerName, rackColumn string,
	latitude, longitude *float64,
) (LaunchPackageCommand, error) {
	cmd := LaunchPackageCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setPackageID(packageID),
		cmd.setRack(towerName, rackColumn),
		cmd.setLocation(latitude, longitude),
	); err != nil {
		return LaunchPackageCommand{}, err
	}

	return cmd, nil
}

func (c LaunchPackageCommand) Validate() error {
	return c.guard.Validate(ErrLaunchPackageCommandIsNotConstructed)
}

func (c LaunchPackageCommand) PackageID() string {
	return c.packageID
}

// Rack is the slot requested by the caller, in the named tower.
func (c LaunchPackageCommand) Rack() kernel.RackSlot {
	return c.rack
}

// Location is where the target tower stands; it selects the control endpoint.
func (c LaunchPackageCommand) Location() kernel.Coordinates {
	return c.location
}

func (c *LaunchPackageCommand) setPackageID(packageID string) error {
	packageID = strings.TrimSpace(packageID)
	if packageID == "" {
		return errs.NewValueIsRequiredError("package_id")
	}
	c.packageID = packageID
	return nil
}

func (c *LaunchPackageCommand) setRack(towerName, rackColumn string) error {
	if strings.TrimSpace(towerName) == "" {
		return errs.NewValueIsRequiredError("ddt_name")
	}
	rack, err := kernel.NewRackSlotFromColumn(towerName, rackColumn)
	if err != nil {
		return err
	}
	c.rack = rack
	return nil
}

func (c *LaunchPackageCommand) setLocation(latitude, longitude *float64) error {
	if latitude == nil || longitude == nil {
		var missing []error
		if latitude == nil {
			missing = append(missing, errs.NewValueIsRequiredError("latitude"))
		}
		if longitude == nil {
			missing = append(missing, errs.NewValueIsRequiredError("longitude"))
		}
		return errors.Join(missing...)
	}
	location, err := kernel.NewCoordinates(*latitude, *longitude)
	if err != nil {
		return err
	}
	c.location = location
	return nil
}
