// Package rackledger is the single writer of rack occupancy. Every operation
// locks the rack row it touches, so two transactions working on the same rack
// are serialised by postgres.
package rackledger

import (
	"context"
	"errors"
	"fmt"

	"dropoff/internal/adapters/out/postgres/towerrepo"
	"dropoff/internal/core/domain/model/kernel"
	"dropoff/internal/core/domain/model/tower"
	"dropoff/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRackLedger implements ports.RackLedger. Bind it to the unit of work's
// transaction; outside a transaction each call still runs atomically but the
// row lock is released as soon as the statement finishes.
type GormRackLedger struct {
	db *gorm.DB
}

func NewGormRackLedger(db *gorm.DB) *GormRackLedger {
	return &GormRackLedger{db: db}
}

func (l *GormRackLedger) Reserve(ctx context.Context, slot kernel.RackSlot, packageID string) (bool, error) {
	if err := slot.Validate(); err != nil {
		return false, err
	}

	rack, err := l.lock(ctx, slot)
	if err != nil {
		return false, err
	}

	if err = rack.Occupy(packageID); err != nil {
		if errors.Is(err, tower.ErrRackIsOccupied) {
			return false, nil
		}
		return false, err
	}

	// The NULL guard keeps Reserve exclusive even without an enclosing transaction.
	result := l.rows(ctx, slot).
		Where("package_id IS NULL OR package_id = ?", packageID).
		Update("package_id", packageID)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (l *GormRackLedger) Release(ctx context.Context, slot kernel.RackSlot) error {
	if err := slot.Validate(); err != nil {
		return err
	}

	result := l.rows(ctx, slot).Update("package_id", nil)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("rack", slot.String())
	}
	return nil
}

func (l *GormRackLedger) ReleaseHeldBy(ctx context.Context, slot kernel.RackSlot, packageID string) (bool, error) {
	if err := slot.Validate(); err != nil {
		return false, err
	}

	result := l.rows(ctx, slot).
		Where("package_id = ?", packageID).
		Update("package_id", nil)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (l *GormRackLedger) Affirm(ctx context.Context, slot kernel.RackSlot, packageID string) error {
	if err := slot.Validate(); err != nil {
		return err
	}

	rack, err := l.lock(ctx, slot)
	if err != nil {
		return err
	}

	if err = rack.Occupy(packageID); err != nil {
		return fmt.Errorf("affirm %s: %w", slot, err)
	}

	return l.rows(ctx, slot).Update("package_id", packageID).Error
}

func (l *GormRackLedger) AvailableSlots(ctx context.Context, towerName string) ([]kernel.RackSlot, error) {
	var indexes []int
	if err := l.db.WithContext(ctx).
		Model(&towerrepo.RackDTO{}).
		Where("tower_name = ? AND package_id IS NULL", towerName).
		Order("rack_index").
		Pluck("rack_index", &indexes).Error; err != nil {
		return nil, err
	}

	slots := make([]kernel.RackSlot, 0, len(indexes))
	for _, i := range indexes {
		slot, err := kernel.NewRackSlot(towerName, i)
		if err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}
	return slots, nil
}

// lock reads the rack row with SELECT ... FOR UPDATE.
func (l *GormRackLedger) lock(ctx context.Context, slot kernel.RackSlot) (*tower.Rack, error) {
	var dto towerrepo.RackDTO
	err := l.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("tower_name = ? AND rack_index = ?", slot.Tower(), slot.Index()).
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("rack", slot.String())
		}
		return nil, err
	}

	return tower.RestoreRack(dto.RackIndex, dto.PackageID)
}

func (l *GormRackLedger) rows(ctx context.Context, slot kernel.RackSlot) *gorm.DB {
	return l.db.WithContext(ctx).
		Model(&towerrepo.RackDTO{}).
		Where("tower_name = ? AND rack_index = ?", slot.Tower(), slot.Index())
}
