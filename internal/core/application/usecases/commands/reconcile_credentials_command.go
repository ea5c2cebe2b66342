package commands

import (
	"errors"

	"dropoff/internal/pkg/errs"
	"dropoff/internal/pkg/guard"
)

// DefaultReconcileBatch bounds the parcels finished by one reconciliation run.
const DefaultReconcileBatch = 50

var ErrReconcileCredentialsCommandIsNotConstructed = errors.New(
	"ReconcileCredentialsCommand must be created via NewReconcileCredentialsCommand constructor",
)

// ReconcileCredentialsCommand finishes delivered parcels that are still
// waiting for their pickup credential, oldest first.
//
// Example:
//
//	cmd, _ := NewReconcileCredentialsCommand(DefaultReconcileBatch)
//	result, err := handler.Handle(ctx, cmd)
type ReconcileCredentialsCommand struct { //nolint:recvcheck //using for validation
	limit int

	guard guard.ConstructorGuard
}

func NewReconcileCredentialsCommand(limit int) (ReconcileCredentialsCommand, error) {
	if limit < 1 {
		return ReconcileCredentialsCommand{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, "unbounded")
	}
	return ReconcileCredentialsCommand{limit: limit, guard: guard.NewConstructorGuard()}, nil
}

func (c ReconcileCredentialsCommand) Validate() error {
	return c.guard.Validate(ErrReconcileCredentialsCommandIsNotConstructed)
}

func (c ReconcileCredentialsCommand) Limit() int {
	return c.limit
}
