package kernel

import (
	"errors"
	"fmt"
	"math"

	"dropoff/internal/pkg/errs"
	"dropoff/internal/pkg/guard"
)

const (
	LatitudeMin  = -90.0
	LatitudeMax  = 90.0
	LongitudeMin = -180.0
	LongitudeMax = 180.0

	// CoordinatesTolerance is the largest per-axis difference at which two
	// coordinates are considered the same point (roughly 10cm).
	CoordinatesTolerance = 1e-6
)

var ErrCoordinatesIsNotConstructed = errs.NewValueIsRequiredError("coordinates must be created via NewCoordinates")

// Coordinates is a WGS84 latitude/longitude pair.
type Coordinates struct {
	latitude  float64
	longitude float64
	guard     guard.ConstructorGuard
}

// NewCoordinates validates both axes and returns every violation at once.
func NewCoordinates(latitude, longitude float64) (Coordinates, error) {
	c := Coordinates{guard: guard.NewConstructorGuard()}
	if err := errors.Join(c.setLatitude(latitude), c.setLongitude(longitude)); err != nil {
		return Coordinates{}, err
	}
	return c, nil
}

func (c Coordinates) Latitude() float64 {
	return c.latitude
}

func (c Coordinates) Longitude() float64 {
	return c.longitude
}

func (c Coordinates) Validate() error {
	return c.guard.Validate(ErrCoordinatesIsNotConstructed)
}

// IsEqual compares both axes within CoordinatesTolerance.
func (c Coordinates) IsEqual(other Coordinates) bool {
	return math.Abs(c.latitude-other.latitude) < CoordinatesTolerance &&
		math.Abs(c.longitude-other.longitude) < CoordinatesTolerance
}

func (c Coordinates) String() string {
	return fmt.Sprintf("(%.6f, %.6f)", c.latitude, c.longitude)
}

func (c *Coordinates) setLatitude(v float64) error {
	if math.IsNaN(v) || v < LatitudeMin || v > LatitudeMax {
		return errs.NewValueIsOutOfRangeError("latitude", v, LatitudeMin, LatitudeMax)
	}
	c.latitude = v
	return nil
}

func (c *Coordinates) setLongitude(v float64) error {
	if math.IsNaN(v) || v < LongitudeMin || v > LongitudeMax {
		return errs.NewValueIsOutOfRangeError("longitude", v, LongitudeMin, LongitudeMax)
	}
	c.longitude = v
	return nil
}
