package queries

import (
	"errors"

	"dropoff/internal/core/domain/model/kernel"
	"dropoff/internal/pkg/errs"
	"dropoff/internal/pkg/guard"
)

var ErrGetControlKeyQueryIsNotConstructed = errors.New(
	"GetControlKeyQuery must be created via NewGetControlKeyQuery constructor",
)

// GetControlKeyQuery resolves the controller endpoint of the tower standing
// at a position.
type GetControlKeyQuery struct {
	location kernel.Coordinates
	guard    guard.ConstructorGuard
}

func NewGetControlKeyQuery(latitude, longitude *float64) (GetControlKeyQuery, error) {
	if latitude == nil || longitude == nil {
		return GetControlKeyQuery{}, errs.NewValueIsRequiredError("latitude and longitude")
	}
	location, err := kernel.NewCoordinates(*latitude, *longitude)
	if err != nil {
		return GetControlKeyQuery{}, err
	}
	return GetControlKeyQuery{location: location, guard: guard.NewConstructorGuard()}, nil
}

func (q GetControlKeyQuery) Location() kernel.Coordinates {
	return q.location
}

func (q GetControlKeyQuery) Validate() error {
	return q.guard.Validate(ErrGetControlKeyQueryIsNotConstructed)
}

type GetControlKeyQueryResponse struct {
	TowerName  string
	ControlKey string
	Location   kernel.Coordinates
}
