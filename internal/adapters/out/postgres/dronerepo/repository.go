package dronerepo

import (
	"context"
	"errors"

	"dropoff/internal/adapters/out/postgres/pgerr"
	"dropoff/internal/core/domain/model/drone"
	"dropoff/internal/pkg/errs"

	"gorm.io/gorm"
)

type aggregateTracker interface {
	TrackAggregate(id string, aggregate any)
}

// GormDroneRepository implements ports.DroneRepository using GORM.
type GormDroneRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormDroneRepository(db *gorm.DB, tracker aggregateTracker) *GormDroneRepository {
	return &GormDroneRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormDroneRepository) Add(ctx context.Context, aggregate *drone.Drone) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Translate(err, "drone", aggregate.ID())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormDroneRepository) Update(ctx context.Context, aggregate *drone.Drone) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&dto).Select("*").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("drone", aggregate.ID())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormDroneRepository) Get(ctx context.Context, id string) (*drone.Drone, error) {
	var dto DroneDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("drone", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormDroneRepository) GetCarrying(ctx context.Context, packageID string) ([]*drone.Drone, error) {
	var dtos []DroneDTO
	if err := r.db.WithContext(ctx).
		Where("gripper_1 = ? OR gripper_2 = ? OR gripper_3 = ?", packageID, packageID, packageID).
		Order("id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	drones := make([]*drone.Drone, 0, len(dtos))
	for _, dto := range dtos {
		d, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		drones = append(drones, d)
	}

	return drones, nil
}
