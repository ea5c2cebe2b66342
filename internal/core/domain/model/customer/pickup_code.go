package customer

import (
	"strconv"

	"dropoff/internal/pkg/errs"
)

const (
	PickupCodeMin = 100000
	PickupCodeMax = 999999
)

// PickupCode is the six digit one-time code a customer presents at the tower.
type PickupCode int

func NewPickupCode(v int) (PickupCode, error) {
	c := PickupCode(v)
	if err := c.Validate(); err != nil {
		return 0, err
	}
	return c, nil
}

// ParsePickupCode accepts the textual form typed by a customer.
func ParsePickupCode(s string) (PickupCode, error) {
	if s == "" {
		return 0, errs.NewValueIsRequiredError("otp")
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause("otp", err)
	}
	return NewPickupCode(v)
}

func (c PickupCode) Int() int {
	return int(c)
}

func (c PickupCode) String() string {
	return strconv.Itoa(int(c))
}

func (c PickupCode) Validate() error {
	if c < PickupCodeMin || c > PickupCodeMax {
		return errs.NewValueIsOutOfRangeError("otp", int(c), PickupCodeMin, PickupCodeMax)
	}
	return nil
}
