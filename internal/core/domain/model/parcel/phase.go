package parcel

import (
	"fmt"

	"dropoff/internal/pkg/errs"
)

// Phase is the lifecycle state of a parcel.
type Phase int

const (
	// Unknown catches uninitialised values.
	Unknown Phase = iota
	Ready
	Processing
	Delivered
	Failed
	Unreachable
	PickedUp
)

func getPhaseStrings() map[Phase]string {
	return map[Phase]string{
		Unknown:     "Unknown",
		Ready:       "Ready",
		Processing:  "Processing",
		Delivered:   "Delivered",
		Failed:      "Failed",
		Unreachable: "Unreachable",
		PickedUp:    "PickedUp",
	}
}

// ParsePhase converts the persisted name back into a Phase.
func ParsePhase(s string) (Phase, error) {
	for p, name := range getPhaseStrings() {
		if p != Unknown && name == s {
			return p, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("phase", fmt.Errorf("%q is not a valid phase", s))
}

func (p Phase) String() string {
	if s, ok := getPhaseStrings()[p]; ok {
		return s
	}
	return "Unknown"
}

func (p Phase) Validate() error {
	if _, ok := getPhaseStrings()[p]; !ok || p == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("phase", fmt.Errorf("%d is not a valid phase", p))
	}
	return nil
}

// IsTerminal reports whether monitoring has finished for this phase.
func (p Phase) IsTerminal() bool {
	return p == Delivered || p == Failed || p == Unreachable || p == PickedUp
}

// Start transitions to Processing. A parcel may be (re)launched from Ready,
// Failed or Unreachable.
func (p Phase) Start() (Phase, error) {
	if p != Ready && p != Failed && p != Unreachable {
		return Unknown, transitionError(p, Processing)
	}
	return Processing, nil
}

// Abort reverts an unconfirmed launch.
func (p Phase) Abort() (Phase, error) {
	if p != Processing {
		return Unknown, transitionError(p, Ready)
	}
	return Ready, nil
}

func (p Phase) Deliver() (Phase, error) {
	if p != Processing {
		return Unknown, transitionError(p, Delivered)
	}
	return Delivered, nil
}

func (p Phase) Fail() (Phase, error) {
	if p != Processing {
		return Unknown, transitionError(p, Failed)
	}
	return Failed, nil
}

func (p Phase) GiveUp() (Phase, error) {
	if p != Processing {
		return Unknown, transitionError(p, Unreachable)
	}
	return Unreachable, nil
}

// PickUp is allowed from every valid phase except Processing: a package that
// is still in flight cannot be in the customer's hands.
func (p Phase) PickUp() (Phase, error) {
	if err := p.Validate(); err != nil {
		return Unknown, err
	}
	if p == Processing {
		return Unknown, transitionError(p, PickedUp)
	}
	return PickedUp, nil
}

func transitionError(from, to Phase) error {
	return errs.NewValueIsInvalidErrorWithCause(
		"phase",
		fmt.Errorf("%w: %s -> %s", ErrPhaseTransitionIsNotAllowed, from, to),
	)
}
