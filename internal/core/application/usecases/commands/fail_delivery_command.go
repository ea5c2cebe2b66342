package commands

import (
	"errors"
	"strings"

	"dropoff/internal/core/domain/model/kernel"
	"dropoff/internal/pkg/errs"
	"dropoff/internal/pkg/guard"
)

var ErrFailDeliveryCommandIsNotConstructed = errors.New(
	"FailDeliveryCommand must be created via NewFailDeliveryCommand constructor",
)

// FailDeliveryCommand marks a monitored package as Failed.
type FailDeliveryCommand struct { //nolint:recvcheck //using for validation
	packageID string
	cycle     kernel.CycleID

	guard guard.ConstructorGuard
}

func NewFailDeliveryCommand(packageID string, cycle kernel.CycleID) (FailDeliveryCommand, error) {
	cmd := FailDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	packageID = strings.TrimSpace(packageID)
	if packageID == "" {
		return FailDeliveryCommand{}, errs.NewValueIsRequiredError("package_id")
	}
	if err := cycle.Validate(); err != nil {
		return FailDeliveryCommand{}, err
	}

	cmd.packageID = packageID
	cmd.cycle = cycle
	return cmd, nil
}

func (c FailDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrFailDeliveryCommandIsNotConstructed)
}

func (c FailDeliveryCommand) PackageID() string {
	return c.packageID
}

func (c FailDeliveryCommand) Cycle() kernel.CycleID {
	return c.cycle
}
