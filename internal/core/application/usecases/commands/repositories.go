// Package commands contains the operations that change delivery state.
// Every handler validates its command, takes the package lock where the
// package's tracking state is involved, and persists through a unit of work.
package commands

import (
	"context"

	"dropoff/internal/core/application/monitor"
	"dropoff/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	TowerRepoFactory interface {
		TowerRepository() ports.TowerRepository
	}

	ParcelRepoFactory interface {
		ParcelRepository() ports.ParcelRepository
	}

	CustomerRepoFactory interface {
		CustomerRepository() ports.CustomerRepository
	}

	DroneRepoFactory interface {
		DroneRepository() ports.DroneRepository
	}

	// RackLedgerFactory exposes the rack ledger bound to the current transaction.
	RackLedgerFactory interface {
		RackLedger() ports.RackLedger
	}

	// DroneUoW is used by commands that only touch drones.
	DroneUoW interface {
		TxManager
		DroneRepoFactory
	}

	DroneUoWFactory interface {
		Create() DroneUoW
	}

	// UoW spans every aggregate of a delivery. Launch, completion, failure,
	// reset and pickup all change the parcel, the rack ledger and usually a
	// customer or drone in the same transaction.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   reserved, err := uow.RackLedger().Reserve(ctx, slot, packageID)
	//   // ... update the parcel
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		TowerRepoFactory
		ParcelRepoFactory
		CustomerRepoFactory
		DroneRepoFactory
		RackLedgerFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)

// DeliveryMonitor is the part of monitor.Supervisor the commands drive.
type DeliveryMonitor interface {
	Start(task monitor.Task)
	Stop(packageID string)
}
