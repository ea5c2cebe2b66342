package kernel

import (
	"fmt"

	"dropoff/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrCycleIDIsNotConstructed is returned when validating a zero-value CycleID.
var ErrCycleIDIsNotConstructed = errs.NewValueIsRequiredError("cycle ID must be created via NewCycleID or ParseCycleID")

// CycleID identifies one delivery attempt of a package: the span between a
// successful launch and the next reset or pickup. A monitor carries the cycle
// it was started for, so late results of an abandoned cycle can be recognised
// and dropped.
type CycleID struct {
	id uuid.UUID
}

// NewCycleID returns a random (version 4) cycle identifier.
func NewCycleID() CycleID {
	return CycleID{id: uuid.New()}
}

// ParseCycleID parses the canonical textual form of a cycle identifier.
func ParseCycleID(s string) (CycleID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return CycleID{}, errs.NewValueIsInvalidErrorWithCause("cycle ID", fmt.Errorf("parse %q: %w", s, err))
	}
	c := CycleID{id: id}
	if err = c.Validate(); err != nil {
		return CycleID{}, err
	}
	return c, nil
}

func (c CycleID) String() string {
	return c.id.String()
}

func (c CycleID) IsEqual(other CycleID) bool {
	return c.id == other.id
}

// Validate rejects the nil UUID.
func (c CycleID) Validate() error {
	if c.id == uuid.Nil {
		return ErrCycleIDIsNotConstructed
	}
	return nil
}
