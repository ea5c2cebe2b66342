package customerrepo

import (
	"context"
	"errors"

	"dropoff/internal/adapters/out/postgres/pgerr"
	"dropoff/internal/core/domain/model/customer"
	"dropoff/internal/pkg/errs"

	"gorm.io/gorm"
)

type aggregateTracker interface {
	TrackAggregate(id string, aggregate any)
}

// GormCustomerRepository implements ports.CustomerRepository using GORM.
type GormCustomerRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormCustomerRepository(db *gorm.DB, tracker aggregateTracker) *GormCustomerRepository {
	return &GormCustomerRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormCustomerRepository) Add(ctx context.Context, aggregate *customer.Customer) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Translate(err, "customer", aggregate.ID())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update fails with pgerr.ErrDuplicate when the new pickup code is already
// held by another customer.
func (r *GormCustomerRepository) Update(ctx context.Context, aggregate *customer.Customer) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&dto).Select("*").Updates(&dto)
	if result.Error != nil {
		return pgerr.Translate(result.Error, "customer", aggregate.ID())
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("customer", aggregate.ID())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormCustomerRepository) GetByPackage(ctx context.Context, packageID string) (*customer.Customer, error) {
	return r.first(ctx, "customer for package", packageID, "package_id = ?", packageID)
}

func (r *GormCustomerRepository) GetByCode(ctx context.Context, code customer.PickupCode) (*customer.Customer, error) {
	if err := code.Validate(); err != nil {
		return nil, err
	}
	return r.first(ctx, "pickup code", code.String(), "otp = ?", code.Int())
}

func (r *GormCustomerRepository) first(ctx context.Context, what string, id any, query string, args ...any) (*customer.Customer, error) {
	var dto CustomerDTO
	if err := r.db.WithContext(ctx).Where(query, args...).First(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError(what, id)
		}
		return nil, err
	}

	return toDomain(dto)
}
