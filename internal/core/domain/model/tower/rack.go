package tower

import (
	"errors"
	"fmt"
	"strings"

	"dropoff/internal/pkg/errs"
	"dropoff/internal/pkg/guard"
)

var (
	// ErrRackIsOccupied is returned when a rack already holds another package.
	ErrRackIsOccupied = errors.New("rack is occupied by another package")

	ErrRackIsNotConstructed = errors.New("Rack must be created via NewRack or RestoreRack constructor")
)

// Rack is a single lockable compartment of a tower.
type Rack struct {
	index    int
	occupant *string
	guard    guard.ConstructorGuard
}

// NewRack creates an empty rack.
func NewRack(index int) (*Rack, error) {
	return RestoreRack(index, nil)
}

// RestoreRack rebuilds a rack from persisted state.
func RestoreRack(index int, occupant *string) (*Rack, error) {
	r := &Rack{guard: guard.NewConstructorGuard()}
	if err := errors.Join(r.setIndex(index), r.setOccupant(occupant)); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Rack) Index() int {
	return r.index
}

// Occupant returns a copy of the occupying package id, or nil when empty.
func (r *Rack) Occupant() *string {
	if r.occupant == nil {
		return nil
	}
	v := *r.occupant
	return &v
}

func (r *Rack) IsAvailable() bool {
	return r.occupant == nil
}

func (r *Rack) IsHeldBy(packageID string) bool {
	return r.occupant != nil && *r.occupant == packageID
}

// Occupy places packageID in the rack. Re-occupying by the same package is
// accepted; any other occupant yields ErrRackIsOccupied.
func (r *Rack) Occupy(packageID string) error {
	packageID = strings.TrimSpace(packageID)
	if packageID == "" {
		return errs.NewValueIsRequiredError("package_id")
	}
	if r.IsHeldBy(packageID) {
		return nil
	}
	if !r.IsAvailable() {
		return fmt.Errorf("%w: rack_%02d holds %s", ErrRackIsOccupied, r.index, *r.occupant)
	}
	r.occupant = &packageID
	return nil
}

// Release empties the rack regardless of its occupant.
func (r *Rack) Release() {
	r.occupant = nil
}

// ReleaseIfHeldBy empties the rack only when packageID occupies it and
// reports whether it did.
func (r *Rack) ReleaseIfHeldBy(packageID string) bool {
	if !r.IsHeldBy(packageID) {
		return false
	}
	r.occupant = nil
	return true
}

func (r *Rack) Validate() error {
	if r == nil {
		return ErrRackIsNotConstructed
	}
	return r.guard.Validate(ErrRackIsNotConstructed)
}

func (r *Rack) setIndex(index int) error {
	if index < 1 {
		return errs.NewValueIsOutOfRangeError("rack index", index, 1, MaxRacks)
	}
	r.index = index
	return nil
}

func (r *Rack) setOccupant(occupant *string) error {
	if occupant == nil {
		r.occupant = nil
		return nil
	}
	v := strings.TrimSpace(*occupant)
	if v == "" {
		return errs.NewValueIsInvalidError("rack occupant")
	}
	r.occupant = &v
	return nil
}
