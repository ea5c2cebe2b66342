package commands

import (
	"errors"
	"strings"

	"dropoff/internal/core/domain/model/kernel"
	"dropoff/internal/pkg/errs"
	"dropoff/internal/pkg/guard"
)

var ErrCompleteDeliveryCommandIsNotConstructed = errors.New(
	"CompleteDeliveryCommand must be created via NewCompleteDeliveryCommand constructor",
)

// CompleteDeliveryCommand finalises a package the tower reported as Delivered.
// The monitor passes its delivery cycle; reconciliation passes nil and only
// finishes parcels that are already recorded as Delivered.
type CompleteDeliveryCommand struct { //nolint:recvcheck //using for validation
	packageID string
	cycle     *kernel.CycleID

	guard guard.ConstructorGuard
}

func NewCompleteDeliveryCommand(packageID string, cycle *kernel.CycleID) (CompleteDeliveryCommand, error) {
	cmd := CompleteDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setPackageID(packageID),
		cmd.setCycle(cycle),
	); err != nil {
		return CompleteDeliveryCommand{}, err
	}

	return cmd, nil
}

func (c CompleteDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCompleteDeliveryCommandIsNotConstructed)
}

func (c CompleteDeliveryCommand) PackageID() string {
	return c.packageID
}

// Cycle is nil for reconciliation runs.
func (c CompleteDeliveryCommand) Cycle() *kernel.CycleID {
	if c.cycle == nil {
		return nil
	}
	cycle := *c.cycle
	return &cycle
}

func (c *CompleteDeliveryCommand) setPackageID(packageID string) error {
	packageID = strings.TrimSpace(packageID)
	if packageID == "" {
		return errs.NewValueIsRequiredError("package_id")
	}
	c.packageID = packageID
	return nil
}

func (c *CompleteDeliveryCommand) setCycle(cycle *kernel.CycleID) error {
	if cycle == nil {
		return nil
	}
	if err := cycle.Validate(); err != nil {
		return err
	}
	v := *cycle
	c.cycle = &v
	return nil
}
