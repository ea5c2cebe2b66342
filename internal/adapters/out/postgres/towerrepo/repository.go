package towerrepo

import (
	"context"
	"errors"

	"dropoff/internal/adapters/out/postgres/pgerr"
	"dropoff/internal/core/domain/model/kernel"
	"dropoff/internal/core/domain/model/tower"
	"dropoff/internal/pkg/errs"

	"gorm.io/gorm"
)

type aggregateTracker interface {
	TrackAggregate(id string, aggregate any)
}

// GormTowerRepository implements ports.TowerRepository using GORM.
type GormTowerRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormTowerRepository(db *gorm.DB, tracker aggregateTracker) *GormTowerRepository {
	return &GormTowerRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add stores the tower and one row per rack.
func (r *GormTowerRepository) Add(ctx context.Context, aggregate *tower.Tower) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Translate(err, "tower", aggregate.Name())
	}

	r.tracker.TrackAggregate(aggregate.Name(), aggregate)
	return nil
}

func (r *GormTowerRepository) Get(ctx context.Context, name string) (*tower.Tower, error) {
	var dto TowerDTO
	err := r.withRacks(ctx).First(&dto, "name = ?", name).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("tower", name)
		}
		return nil, err
	}

	return toDomain(dto)
}

// FindByCoordinates picks the alphabetically first tower when several stand
// at the same position.
func (r *GormTowerRepository) FindByCoordinates(ctx context.Context, location kernel.Coordinates) (*tower.Tower, error) {
	if err := location.Validate(); err != nil {
		return nil, err
	}

	var dto TowerDTO
	err := r.withRacks(ctx).
		Where("abs(latitude - ?) < ?", location.Latitude(), kernel.CoordinatesTolerance).
		Where("abs(longitude - ?) < ?", location.Longitude(), kernel.CoordinatesTolerance).
		Order("name").
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("tower at", location.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormTowerRepository) withRacks(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Racks", func(db *gorm.DB) *gorm.DB {
		return db.Order("rack_index")
	})
}
