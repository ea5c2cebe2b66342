// Package ports defines the contracts between the dropoff domain and the
// infrastructure around it: persistence, the tower controllers and analytics.
package ports

import (
	"context"

	"dropoff/internal/core/domain/model/kernel"
)

// RackLedger is the only writer of rack occupancy. Every operation is atomic
// with respect to the other operations on the same slot.
type RackLedger interface {
	// Reserve places packageID in an empty slot. It returns false, without
	// changing anything, when the slot is already occupied.
	Reserve(ctx context.Context, slot kernel.RackSlot, packageID string) (bool, error)

	// Release empties the slot whatever it holds. Releasing an empty slot succeeds.
	Release(ctx context.Context, slot kernel.RackSlot) error

	// ReleaseHeldBy empties the slot only when packageID occupies it and
	// reports whether it did.
	ReleaseHeldBy(ctx context.Context, slot kernel.RackSlot, packageID string) (bool, error)

	// Affirm re-writes packageID into the slot. It tolerates the slot already
	// holding packageID and fails with tower.ErrRackIsOccupied if another
	// package holds it.
	Affirm(ctx context.Context, slot kernel.RackSlot, packageID string) error

	// AvailableSlots lists the empty slots of a tower in ascending index order.
	AvailableSlots(ctx context.Context, tower string) ([]kernel.RackSlot, error)
}
