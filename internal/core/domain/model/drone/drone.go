package drone

import (
	"errors"
	"strings"

	"dropoff/internal/core/domain/model/kernel"
	"dropoff/internal/pkg/errs"
	"dropoff/internal/pkg/guard"
)

// GripperCount is the number of carrying slots on every drone.
const GripperCount = 3

var (
	ErrGripperIsOccupied     = errors.New("gripper already holds a package")
	ErrDroneIsNotConstructed = errors.New("Drone must be created via NewDrone or RestoreDrone constructor")
)

// Drone is the aggregate root for a delivery drone.
type Drone struct {
	id          string
	source      *kernel.Coordinates
	destination *kernel.Coordinates
	grippers    [GripperCount]*string
	guard       guard.ConstructorGuard
}

// NewDrone creates an idle drone with empty grippers and no flight plan.
func NewDrone(id string) (*Drone, error) {
	return RestoreDrone(id, nil, nil, [GripperCount]*string{})
}

// RestoreDrone rebuilds a drone from persisted state.
func RestoreDrone(
	id string,
	source, destination *kernel.Coordinates,
	grippers [GripperCount]*string,
) (*Drone, error) {
	d := &Drone{guard: guard.NewConstructorGuard()}
	if err := errors.Join(
		d.setID(id),
		d.SetSource(source),
		d.SetDestination(destination),
		d.setGrippers(grippers),
	); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Drone) ID() string {
	return d.id
}

func (d *Drone) Source() *kernel.Coordinates {
	return copyCoordinates(d.source)
}

func (d *Drone) Destination() *kernel.Coordinates {
	return copyCoordinates(d.destination)
}

// Grippers returns a copy of the gripper contents; nil means empty.
func (d *Drone) Grippers() [GripperCount]*string {
	var out [GripperCount]*string
	for i, g := range d.grippers {
		if g != nil {
			v := *g
			out[i] = &v
		}
	}
	return out
}

// SetSource updates the origin of the current flight. Nil clears it.
func (d *Drone) SetSource(c *kernel.Coordinates) error {
	if c != nil {
		if err := c.Validate(); err != nil {
			return err
		}
	}
	d.source = copyCoordinates(c)
	return nil
}

// SetDestination updates the target of the current flight. Nil clears it.
func (d *Drone) SetDestination(c *kernel.Coordinates) error {
	if c != nil {
		if err := c.Validate(); err != nil {
			return err
		}
	}
	d.destination = copyCoordinates(c)
	return nil
}

// Load puts packageID into the 1-based gripper slot.
func (d *Drone) Load(gripper int, packageID string) error {
	if gripper < 1 || gripper > GripperCount {
		return errs.NewValueIsOutOfRangeError("gripper", gripper, 1, GripperCount)
	}
	packageID = strings.TrimSpace(packageID)
	if packageID == "" {
		return errs.NewValueIsRequiredError("package_id")
	}
	if d.grippers[gripper-1] != nil {
		return ErrGripperIsOccupied
	}
	d.grippers[gripper-1] = &packageID
	return nil
}

// IsCarrying reports whether any gripper holds packageID.
func (d *Drone) IsCarrying(packageID string) bool {
	for _, g := range d.grippers {
		if g != nil && *g == packageID {
			return true
		}
	}
	return false
}

// ReleasePackage empties every gripper that holds packageID and returns how
// many were cleared. No gripper position is assumed in advance.
func (d *Drone) ReleasePackage(packageID string) int {
	released := 0
	for i, g := range d.grippers {
		if g != nil && *g == packageID {
			d.grippers[i] = nil
			released++
		}
	}
	return released
}

func (d *Drone) Validate() error {
	if d == nil {
		return ErrDroneIsNotConstructed
	}
	if err := d.guard.Validate(ErrDroneIsNotConstructed); err != nil {
		return err
	}
	if d.id == "" {
		return errs.NewValueIsRequiredError("drone_id")
	}
	return nil
}

func (d *Drone) setID(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return errs.NewValueIsRequiredError("drone_id")
	}
	d.id = id
	return nil
}

func (d *Drone) setGrippers(grippers [GripperCount]*string) error {
	for i, g := range grippers {
		if g == nil || strings.TrimSpace(*g) == "" {
			d.grippers[i] = nil
			continue
		}
		v := strings.TrimSpace(*g)
		d.grippers[i] = &v
	}
	return nil
}

func copyCoordinates(c *kernel.Coordinates) *kernel.Coordinates {
	if c == nil {
		return nil
	}
	v := *c
	return &v
}
