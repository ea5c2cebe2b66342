package ports

import (
	"context"

	"dropoff/internal/core/domain/model/parcel"
)

// ParcelRepository persists parcel aggregates.
type ParcelRepository interface {
	Add(ctx context.Context, aggregate *parcel.Parcel) error
	Update(ctx context.Context, aggregate *parcel.Parcel) error
	Get(ctx context.Context, id string) (*parcel.Parcel, error)

	// GetAwaitingCredential returns Delivered parcels whose credential has not
	// been issued yet, oldest update first, at most limit of them.
	GetAwaitingCredential(ctx context.Context, limit int) ([]*parcel.Parcel, error)
}
