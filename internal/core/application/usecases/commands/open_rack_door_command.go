package commands

import (
	"errors"

	"dropoff/internal/core/domain/model/customer"
	"dropoff/internal/pkg/guard"
)

var ErrOpenRackDoorCommandIsNotConstructed = errors.New(
	"OpenRackDoorCommand must be created via NewOpenRackDoorCommand constructor",
)

// OpenRackDoorCommand carries the pickup code a customer typed at the tower.
type OpenRackDoorCommand struct { //nolint:recvcheck //using for validation
	code customer.PickupCode

	guard guard.ConstructorGuard
}

func NewOpenRackDoorCommand(code string) (OpenRackDoorCommand, error) {
	parsed, err := customer.ParsePickupCode(code)
	if err != nil {
		return OpenRackDoorCommand{}, err
	}
	return OpenRackDoorCommand{code: parsed, guard: guard.NewConstructorGuard()}, nil
}

func (c OpenRackDoorCommand) Validate() error {
	return c.guard.Validate(ErrOpenRackDoorCommandIsNotConstructed)
}

func (c OpenRackDoorCommand) Code() customer.PickupCode {
	return c.code
}
