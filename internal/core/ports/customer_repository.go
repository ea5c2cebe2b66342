package ports

import (
	"context"

	"dropoff/internal/core/domain/model/customer"
)

// CustomerRepository persists customers and their pickup credentials.
type CustomerRepository interface {
	Add(ctx context.Context, aggregate *customer.Customer) error
	Update(ctx context.Context, aggregate *customer.Customer) error

	// GetByPackage finds the recipient of a package.
	GetByPackage(ctx context.Context, packageID string) (*customer.Customer, error)

	// GetByCode finds the customer holding a currently valid pickup code.
	GetByCode(ctx context.Context, code customer.PickupCode) (*customer.Customer, error)
}
