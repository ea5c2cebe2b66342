package queries

import (
	"errors"

	"dropoff/internal/core/domain/model/kernel"
	"dropoff/internal/pkg/errs"
	"dropoff/internal/pkg/guard"
)

var ErrGetTowerRacksQueryIsNotConstructed = errors.New(
	"GetTowerRacksQuery must be created via NewGetTowerRacksQuery constructor",
)

// GetTowerRacksQuery lists towers together with their empty racks. When a
// position is given only the tower standing there is returned.
type GetTowerRacksQuery struct {
	location *kernel.Coordinates
	guard    guard.ConstructorGuard
}

// NewGetTowerRacksQuery accepts either both coordinates or neither.
func NewGetTowerRacksQuery(latitude, longitude *float64) (GetTowerRacksQuery, error) {
	q := GetTowerRacksQuery{guard: guard.NewConstructorGuard()}
	switch {
	case latitude == nil && longitude == nil:
		return q, nil
	case latitude == nil:
		return GetTowerRacksQuery{}, errs.NewValueIsRequiredError("lat")
	case longitude == nil:
		return GetTowerRacksQuery{}, errs.NewValueIsRequiredError("lng")
	}

	location, err := kernel.NewCoordinates(*latitude, *longitude)
	if err != nil {
		return GetTowerRacksQuery{}, err
	}
	q.location = &location
	return q, nil
}

func (q GetTowerRacksQuery) Location() *kernel.Coordinates {
	if q.location == nil {
		return nil
	}
	v := *q.location
	return &v
}

func (q GetTowerRacksQuery) Validate() error {
	return q.guard.Validate(ErrGetTowerRacksQueryIsNotConstructed)
}

// AvailableRack describes one empty rack, e.g. {2, "Rack 02", "rack_02"}.
type AvailableRack struct {
	Number int
	Name   string
	Column string
}

type GetTowerRacksQueryResponse struct {
	Name           string
	Location       kernel.Coordinates
	TotalRacks     int
	AvailableRacks []AvailableRack
}

func (r GetTowerRacksQueryResponse) AvailableCount() int {
	return len(r.AvailableRacks)
}
