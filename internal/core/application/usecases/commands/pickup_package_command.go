package commands

import (
	"errors"
	"strings"

	"dropoff/internal/core/domain/model/kernel"
	"dropoff/internal/pkg/errs"
	"dropoff/internal/pkg/guard"
)

var ErrPickupPackageCommandIsNotConstructed = errors.New(
	"PickupPackageCommand must be created via NewPickupPackageCommand constructor",
)

// PickupPackageCommand confirms that the customer collected the package from a rack.
type PickupPackageCommand struct { //nolint:recvcheck //using for validation
	packageID string
	rack      kernel.RackSlot

	guard guard.ConstructorGuard
}

func NewPickupPackageCommand(packageID, towerName, rackColumn string) (PickupPackageCommand, error) {
	cmd := PickupPackageCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setPackageID(packageID),
		cmd.setRack(towerName, rackColumn),
	); err != nil {
		return PickupPackageCommand{}, err
	}

	return cmd, nil
}

func (c PickupPackageCommand) Validate() error {
	return c.guard.Validate(ErrPickupPackageCommandIsNotConstructed)
}

func (c PickupPackageCommand) PackageID() string {
	return c.packageID
}

func (c PickupPackageCommand) Rack() kernel.RackSlot {
	return c.rack
}

func (c *PickupPackageCommand) setPackageID(packageID string) error {
	packageID = strings.TrimSpace(packageID)
	if packageID == "" {
		return errs.NewValueIsRequiredError("package_id")
	}
	c.packageID = packageID
	return nil
}

func (c *PickupPackageCommand) setRack(towerName, rackColumn string) error {
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
