package kernel

import (
	"fmt"
	"strconv"
	"strings"

	"dropoff/internal/pkg/errs"
	"dropoff/internal/pkg/guard"
)

const rackColumnPrefix = "rack_"

var ErrRackSlotIsNotConstructed = errs.NewValueIsRequiredError("rack slot must be created via NewRackSlot or NewRackSlotFromColumn")

// RackSlot references one lockable compartment of a tower. The index is
// 1-based; the upper bound depends on the tower and is enforced by the
// tower aggregate, not here.
type RackSlot struct {
	tower string
	index int
	guard guard.ConstructorGuard
}

func NewRackSlot(tower string, index int) (RackSlot, error) {
	tower = strings.TrimSpace(tower)
	if tower == "" {
		return RackSlot{}, errs.NewValueIsRequiredError("ddt_name")
	}
	if index < 1 {
		return RackSlot{}, errs.NewValueIsOutOfRangeError("rack index", index, 1, "tower capacity")
	}
	return RackSlot{tower: tower, index: index, guard: guard.NewConstructorGuard()}, nil
}

// NewRackSlotFromColumn accepts the wire form used by tower controllers, e.g. "rack_03".
func NewRackSlotFromColumn(tower, column string) (RackSlot, error) {
	index, err := ParseRackColumn(column)
	if err != nil {
		return RackSlot{}, err
	}
	return NewRackSlot(tower, index)
}

// ParseRackColumn extracts the slot index from a "rack_NN" column name.
func ParseRackColumn(column string) (int, error) {
	column = strings.ToLower(strings.TrimSpace(column))
	if column == "" {
		return 0, errs.NewValueIsRequiredError("rack_column")
	}
	digits, ok := strings.CutPrefix(column, rackColumnPrefix)
	if !ok {
		return 0, errs.NewValueIsInvalidErrorWithCause("rack_column", fmt.Errorf("%q has no %q prefix", column, rackColumnPrefix))
	}
	index, err := strconv.Atoi(digits)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause("rack_column", err)
	}
	if index < 1 {
		return 0, errs.NewValueIsOutOfRangeError("rack_column", index, 1, "tower capacity")
	}
	return index, nil
}

// RackColumn formats an index the way tower controllers expect it.
func RackColumn(index int) string {
	return fmt.Sprintf("%s%02d", rackColumnPrefix, index)
}

func (s RackSlot) Tower() string {
	return s.tower
}

func (s RackSlot) Index() int {
	return s.index
}

func (s RackSlot) Column() string {
	return RackColumn(s.index)
}

// DisplayName is the label shown to customers, e.g. "Rack 03".
func (s RackSlot) DisplayName() string {
	return fmt.Sprintf("Rack %02d", s.index)
}

func (s RackSlot) IsEqual(other RackSlot) bool {
	return s.tower == other.tower && s.index == other.index
}

func (s RackSlot) Validate() error {
	return s.guard.Validate(ErrRackSlotIsNotConstructed)
}

func (s RackSlot) String() string {
	return s.tower + "/" + s.Column()
}
