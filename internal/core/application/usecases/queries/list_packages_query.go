package queries

import (
	"errors"
	"strings"
	"time"

	"dropoff/internal/core/domain/model/kernel"
	"dropoff/internal/core/domain/model/parcel"
	"dropoff/internal/pkg/guard"
)

var ErrListPackagesQueryIsNotConstructed = errors.New(
	"ListPackagesQuery must be created via NewListPackagesQuery constructor",
)

// ListPackagesQuery lists persisted parcels, optionally only those in one
// phase.
type ListPackagesQuery struct {
	phase *parcel.Phase
	guard guard.ConstructorGuard
}

// NewListPackagesQuery treats a nil or blank status as "no filter".
func NewListPackagesQuery(status *string) (ListPackagesQuery, error) {
	q := ListPackagesQuery{guard: guard.NewConstructorGuard()}
	if status == nil || strings.TrimSpace(*status) == "" {
		return q, nil
	}

	phase, err := parcel.ParsePhase(strings.TrimSpace(*status))
	if err != nil {
		return ListPackagesQuery{}, err
	}
	q.phase = &phase
	return q, nil
}

func (q ListPackagesQuery) Phase() *parcel.Phase {
	if q.phase == nil {
		return nil
	}
	v := *q.phase
	return &v
}

func (q ListPackagesQuery) Validate() error {
	return q.guard.Validate(ErrListPackagesQueryIsNotConstructed)
}

type ListPackagesQueryResponse struct {
	PackageID        string
	Status           string
	DroneID          *string
	Tower            *string
	Rack             *string
	Destination      *kernel.Coordinates
	CredentialIssued bool
	UpdatedAt        time.Time
}
