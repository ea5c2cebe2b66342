package tower

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"dropoff/internal/core/domain/model/kernel"
	"dropoff/internal/pkg/errs"
	"dropoff/internal/pkg/guard"
)

// MaxRacks bounds the rack count of one tower.
const MaxRacks = 99

var ErrTowerIsNotConstructed = errors.New("Tower must be created via NewTower or RestoreTower constructor")

// Tower is the aggregate root for a drone delivery tower.
//
// Example:
//
//	loc, _ := kernel.NewCoordinates(12.9716, 77.5946)
//	t, err := tower.NewTower("SFDDT", loc, "ddt-01.example.net", 6)
//	if err != nil {
//	    return err
//	}
//	rack, _ := t.Rack(2)
//	_ = rack.Occupy("PKG001")
type Tower struct {
	name     string
	location kernel.Coordinates
	endpoint ControlEndpoint
	racks    []*Rack
	guard    guard.ConstructorGuard
}

// NewTower creates a tower with totalRacks empty racks.
func NewTower(name string, location kernel.Coordinates, endpoint string, totalRacks int) (*Tower, error) {
	if totalRacks < 1 || totalRacks > MaxRacks {
		return nil, errs.NewValueIsOutOfRangeError("total_racks", totalRacks, 1, MaxRacks)
	}
	racks := make([]*Rack, 0, totalRacks)
	for i := 1; i <= totalRacks; i++ {
		r, err := NewRack(i)
		if err != nil {
			return nil, err
		}
		racks = append(racks, r)
	}
	return RestoreTower(name, location, endpoint, racks)
}

// RestoreTower rebuilds a tower from persisted state. Racks must be numbered
// contiguously from 1; their order in the slice does not matter.
func RestoreTower(name string, location kernel.Coordinates, endpoint string, racks []*Rack) (*Tower, error) {
	t := &Tower{guard: guard.NewConstructorGuard()}
	if err := errors.Join(
		t.setName(name),
		t.setLocation(location),
		t.setEndpoint(endpoint),
		t.setRacks(racks),
	); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Tower) Name() string {
	return t.name
}

func (t *Tower) Location() kernel.Coordinates {
	return t.location
}

func (t *Tower) Endpoint() ControlEndpoint {
	return t.endpoint
}

func (t *Tower) TotalRacks() int {
	return len(t.racks)
}

// Racks returns the racks ordered by index. The slice is a copy; the racks are not.
func (t *Tower) Racks() []*Rack {
	out := make([]*Rack, len(t.racks))
	copy(out, t.racks)
	return out
}

// Rack returns the rack at the 1-based index.
func (t *Tower) Rack(index int) (*Rack, error) {
	if index < 1 || index > len(t.racks) {
		return nil, errs.NewValueIsOutOfRangeError("rack_column", kernel.RackColumn(index), kernel.RackColumn(1), kernel.RackColumn(len(t.racks)))
	}
	return t.racks[index-1], nil
}

// Slot builds the kernel reference for one of this tower's racks.
func (t *Tower) Slot(index int) (kernel.RackSlot, error) {
	if _, err := t.Rack(index); err != nil {
		return kernel.RackSlot{}, err
	}
	return kernel.NewRackSlot(t.name, index)
}

// AvailableSlots lists empty racks in ascending index order.
func (t *Tower) AvailableSlots() []kernel.RackSlot {
	slots := make([]kernel.RackSlot, 0, len(t.racks))
	for _, r := range t.racks {
		if !r.IsAvailable() {
			continue
		}
		slot, err := kernel.NewRackSlot(t.name, r.Index())
		if err != nil {
			continue
		}
		slots = append(slots, slot)
	}
	return slots
}

func (t *Tower) Validate() error {
	if t == nil {
		return ErrTowerIsNotConstructed
	}
	if err := t.guard.Validate(ErrTowerIsNotConstructed); err != nil {
		return err
	}
	return errors.Join(
		t.validateName(t.name),
		t.location.Validate(),
		t.endpoint.Validate(),
		t.validateRacks(t.racks),
	)
}

func (t *Tower) setName(name string) error {
	name = strings.TrimSpace(name)
	if err := t.validateName(name); err != nil {
		return err
	}
	t.name = name
	return nil
}

func (t *Tower) validateName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("ddt_name")
	}
	return nil
}

func (t *Tower) setLocation(location kernel.Coordinates) error {
	if err := location.Validate(); err != nil {
		return err
	}
	t.location = location
	return nil
}

func (t *Tower) setEndpoint(raw string) error {
	endpoint, err := NewControlEndpoint(raw)
	if err != nil {
		return err
	}
	t.endpoint = endpoint
	return nil
}

func (t *Tower) setRacks(racks []*Rack) error {
	sorted := make([]*Rack, len(racks))
	copy(sorted, racks)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i] == nil || sorted[j] == nil {
			return sorted[j] == nil && sorted[i] != nil
		}
		return sorted[i].Index() < sorted[j].Index()
	})
	if err := t.validateRacks(sorted); err != nil {
		return err
	}
	t.racks = sorted
	return nil
}

func (t *Tower) validateRacks(racks []*Rack) error {
	if len(racks) < 1 || len(racks) > MaxRacks {
		return errs.NewValueIsOutOfRangeError("total_racks", len(racks), 1, MaxRacks)
	}
	for i, r := range racks {
		if err := r.Validate(); err != nil {
			return err
		}
		if r.Index() != i+1 {
			return errs.NewValueIsInvalidErrorWithCause("racks", fmt.Errorf("expected rack %d, got %d", i+1, r.Index()))
		}
	}
	return nil
}
