package parcel

import (
	"errors"
	"fmt"
	"strings"

	"dropoff/internal/core/domain/model/kernel"
	"dropoff/internal/pkg/errs"
	"dropoff/internal/pkg/guard"
)

var (
	ErrPhaseTransitionIsNotAllowed = errors.New("phase transition is not allowed")
	ErrCredentialAlreadyIssued     = errors.New("credential already issued for this delivery")
	ErrParcelIsNotConstructed      = errors.New("Parcel must be created via NewParcel or RestoreParcel constructor")
)

// Parcel is the aggregate root for one package.
type Parcel struct {
	id               string
	phase            Phase
	droneID          *string
	rack             *kernel.RackSlot
	destination      *kernel.Coordinates
	credentialIssued bool
	guard            guard.ConstructorGuard
}

// NewParcel registers a package that is ready to be launched.
func NewParcel(id string, droneID *string, destination *kernel.Coordinates) (*Parcel, error) {
	return RestoreParcel(id, Ready, droneID, nil, destination, false)
}

// RestoreParcel rebuilds a parcel from persisted state.
func RestoreParcel(
	id string,
	phase Phase,
	droneID *string,
	rack *kernel.RackSlot,
	destination *kernel.Coordinates,
	credentialIssued bool,
) (*Parcel, error) {
	p := &Parcel{guard: guard.NewConstructorGuard()}
	if err := errors.Join(
		p.setID(id),
		p.setPhase(phase),
		p.setDroneID(droneID),
		p.setRack(rack),
		p.setDestination(destination),
	); err != nil {
		return nil, err
	}
	p.credentialIssued = credentialIssued
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Parcel) ID() string {
	return p.id
}

func (p *Parcel) Phase() Phase {
	return p.phase
}

func (p *Parcel) DroneID() *string {
	if p.droneID == nil {
		return nil
	}
	v := *p.droneID
	return &v
}

// Rack returns the reserved or confirmed rack, or nil.
func (p *Parcel) Rack() *kernel.RackSlot {
	if p.rack == nil {
		return nil
	}
	v := *p.rack
	return &v
}

func (p *Parcel) Destination() *kernel.Coordinates {
	if p.destination == nil {
		return nil
	}
	v := *p.destination
	return &v
}

func (p *Parcel) CredentialIssued() bool {
	return p.credentialIssued
}

// AssignDrone records which drone carries the parcel.
func (p *Parcel) AssignDrone(droneID string) error {
	return p.setDroneID(&droneID)
}

// StartDelivery moves the parcel into Processing against the reserved rack.
// A fresh delivery cycle starts with no credential.
func (p *Parcel) StartDelivery(rack kernel.RackSlot, destination kernel.Coordinates) error {
	if err := errors.Join(rack.Validate(), destination.Validate()); err != nil {
		return err
	}
	next, err := p.phase.Start()
	if err != nil {
		return err
	}
	p.phase = next
	p.rack = &rack
	p.destination = &destination
	p.credentialIssued = false
	return nil
}

// AbortDelivery undoes StartDelivery when the tower refused the launch.
func (p *Parcel) AbortDelivery() error {
	next, err := p.phase.Abort()
	if err != nil {
		return err
	}
	p.phase = next
	p.rack = nil
	return nil
}

// MarkDelivered records the tower's confirmation. The rack stays assigned.
func (p *Parcel) MarkDelivered() error {
	next, err := p.phase.Deliver()
	if err != nil {
		return err
	}
	p.phase = next
	return nil
}

// MarkFailed records a failed drop-off; the rack is given up.
func (p *Parcel) MarkFailed() error {
	next, err := p.phase.Fail()
	if err != nil {
		return err
	}
	p.phase = next
	p.rack = nil
	return nil
}

// MarkUnreachable records that the tower stopped answering. The rack stays
// reserved until an operator resolves the package.
func (p *Parcel) MarkUnreachable() error {
	next, err := p.phase.GiveUp()
	if err != nil {
		return err
	}
	p.phase = next
	return nil
}

// ConfirmCredential flags the credential as issued. It succeeds once per
// delivery cycle.
func (p *Parcel) ConfirmCredential() error {
	if p.phase != Delivered {
		return errs.NewValueIsInvalidErrorWithCause("phase", fmt.Errorf("credential requires Delivered, parcel is %s", p.phase))
	}
	if p.credentialIssued {
		return ErrCredentialAlreadyIssued
	}
	p.credentialIssued = true
	return nil
}

// Reset returns the parcel to Ready and forgets its delivery cycle. The rack
// stays referenced because the ledger still holds it: a relaunch hands it
// back, and so does a pickup.
func (p *Parcel) Reset() {
	p.phase = Ready
	p.credentialIssued = false
}

// PickUp closes the lifecycle once the customer has the package.
func (p *Parcel) PickUp() error {
	next, err := p.phase.PickUp()
	if err != nil {
		return err
	}
	p.phase = next
	p.rack = nil
	return nil
}

func (p *Parcel) Validate() error {
	if p == nil {
		return ErrParcelIsNotConstructed
	}
	if err := p.guard.Validate(ErrParcelIsNotConstructed); err != nil {
		return err
	}
	if p.id == "" {
		return errs.NewValueIsRequiredError("package_id")
	}
	if err := p.phase.Validate(); err != nil {
		return err
	}
	if p.phase == Processing && p.rack == nil {
		return errs.NewValueIsRequiredError("rack of a parcel in Processing")
	}
	if p.credentialIssued && p.phase != Delivered && p.phase != PickedUp {
		return errs.NewValueIsInvalidError("credential issued outside of a delivery")
	}
	return nil
}

func (p *Parcel) setID(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return errs.NewValueIsRequiredError("package_id")
	}
	p.id = id
	return nil
}

func (p *Parcel) setPhase(phase Phase) error {
	if err := phase.Validate(); err != nil {
		return err
	}
	p.phase = phase
	return nil
}

func (p *Parcel) setDroneID(droneID *string) error {
	if droneID == nil {
		p.droneID = nil
		return nil
	}
	v := strings.TrimSpace(*droneID)
	if v == "" {
		return errs.NewValueIsRequiredError("drone_id")
	}
	p.droneID = &v
	return nil
}

func (p *Parcel) setRack(rack *kernel.RackSlot) error {
	if rack == nil {
		p.rack = nil
		return nil
	}
	if err := rack.Validate(); err != nil {
		return err
	}
	v := *rack
	p.rack = &v
	return nil
}

func (p *Parcel) setDestination(destination *kernel.Coordinates) error {
	if destination == nil {
		p.destination = nil
		return nil
	}
	if err := destination.Validate(); err != nil {
		return err
	}
	v := *destination
	p.destination = &v
	return nil
}
