// Package postgres provides the GORM-based unit of work used by every
// command handler.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() {
//	    _ = uow.Rollback(ctx)
//	}()
//
//	reserved, err := uow.RackLedger().Reserve(ctx, slot, packageID)
//	if err != nil || !reserved {
//	    return err
//	}
//	if err = uow.ParcelRepository().Update(ctx, p); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Repositories obtained before Begin run on the plain connection; obtain them
// after Begin to take part in the transaction. Each UnitOfWork instance is
// meant for a single goroutine.
package postgres

import (
	"context"

	"dropoff/internal/adapters/out/postgres/customerrepo"
	"dropoff/internal/adapters/out/postgres/dronerepo"
	"dropoff/internal/adapters/out/postgres/parcelrepo"
	"dropoff/internal/adapters/out/postgres/rackledger"
	"dropoff/internal/adapters/out/postgres/towerrepo"
	"dropoff/internal/core/application/usecases/commands"
	"dropoff/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate is an aggregate written during the unit of work.
type trackedAggregate struct {
	ID        string
	Aggregate any
}

// GormUnitOfWorkFactory hands out a fresh unit of work per business operation.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

func (f *GormUnitOfWorkFactory) Create() commands.UoW {
	return newGormUnitOfWork(f.db)
}

// GormDroneUnitOfWorkFactory serves the commands that only touch drones.
type GormDroneUnitOfWorkFactory struct {
	db *gorm.DB
}

func NewGormDroneUnitOfWorkFactory(db *gorm.DB) *GormDroneUnitOfWorkFactory {
	return &GormDroneUnitOfWorkFactory{db: db}
}

func (f *GormDroneUnitOfWorkFactory) Create() commands.DroneUoW {
	return newGormUnitOfWork(f.db)
}

// GormUnitOfWork coordinates one database transaction across the tower,
// parcel, customer and drone repositories and the rack ledger.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

func newGormUnitOfWork(db *gorm.DB) *GormUnitOfWork {
	return &GormUnitOfWork{
		db:                db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// Begin starts the transaction. Calling it again while a transaction is open
// is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	uow.tx = tx

	return nil
}

// Commit returns gorm.ErrInvalidTransaction when no transaction is open.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback returns gorm.ErrInvalidTransaction when no transaction is open,
// which makes the deferred Rollback after a Commit harmless.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

func (uow *GormUnitOfWork) TowerRepository() ports.TowerRepository {
	return towerrepo.NewGormTowerRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) ParcelRepository() ports.ParcelRepository {
	return parcelrepo.NewGormParcelRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) CustomerRepository() ports.CustomerRepository {
	return customerrepo.NewGormCustomerRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) DroneRepository() ports.DroneRepository {
	return dronerepo.NewGormDroneRepository(uow.conn(), uow)
}

// RackLedger returns the ledger bound to the open transaction, so its row
// locks are held until Commit or Rollback.
func (uow *GormUnitOfWork) RackLedger() ports.RackLedger {
	return rackledger.NewGormRackLedger(uow.conn())
}

// TrackAggregate is called by the repositories after each successful write.
func (uow *GormUnitOfWork) TrackAggregate(id string, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

// TrackedIDs lists the ids of the aggregates written so far, in write order.
func (uow *GormUnitOfWork) TrackedIDs() []string {
	ids := make([]string, 0, len(uow.trackedAggregates))
	for _, t := range uow.trackedAggregates {
		ids = append(ids, t.ID)
	}
	return ids
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
