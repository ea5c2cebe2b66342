package commands

import (
	"errors"
	"strings"

	"dropoff/internal/core/domain/model/kernel"
	"dropoff/internal/pkg/errs"
	"dropoff/internal/pkg/guard"
)

var ErrMarkUnreachableCommandIsNotConstructed = errors.New(
	"MarkUnreachableCommand must be created via NewMarkUnreachableCommand constructor",
)

// MarkUnreachableCommand gives up on a package whose tower stopped answering before the delivery deadline.
type MarkUnreachableCommand struct { //nolint:recvcheck //using for validation
	packageID string
	cycle     kernel.CycleID

	guard guard.ConstructorGuard
}

func NewMarkUnreachableCommand(packageID string, cycle kernel.CycleID) (MarkUnreachableCommand, error) {
	cmd := MarkUnreachableCommand{
		guard: guard.NewConstructorGuard(),
	}

	packageID = strings.TrimSpace(packageID)
	if packageID == "" {
		return MarkUnreachableCommand{}, errs.NewValueIsRequiredError("package_id")
	}
	if err := cycle.Validate(); err != nil {
		return MarkUnreachableCommand{}, err
	}

	cmd.packageID = packageID
	cmd.cycle = cycle
	return cmd, nil
}

func (c MarkUnreachableCommand) Validate() error {
	return c.guard.Validate(ErrMarkUnreachableCommandIsNotConstructed)
}

func (c MarkUnreachableCommand) PackageID() string {
	return c.packageID
}

func (c MarkUnreachableCommand) Cycle() kernel.CycleID {
	return c.cycle
}
