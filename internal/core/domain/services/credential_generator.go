package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"

	"dropoff/internal/core/domain/model/customer"
	"dropoff/internal/core/domain/model/kernel"
)

var ErrCustomerIsRequired = errors.New("customer is required to issue a credential")

// CredentialGenerator draws pickup codes uniformly from
// [customer.PickupCodeMin, customer.PickupCodeMax]. Codes are compared per
// package, so collisions between pending packages are tolerated.
//
// Example:
//
//	gen := services.NewCredentialGenerator()
//	code, err := gen.Issue(cust, slot)
//	if err != nil {
//	    return err
//	}
//	// persist cust through the unit of work
type CredentialGenerator struct {
	random io.Reader
}

// NewCredentialGenerator uses the operating system CSPRNG.
func NewCredentialGenerator() CredentialGenerator {
	return NewCredentialGeneratorWithSource(rand.Reader)
}

// NewCredentialGeneratorWithSource lets tests supply a deterministic source.
func NewCredentialGeneratorWithSource(random io.Reader) CredentialGenerator {
	return CredentialGenerator{random: random}
}

// Generate returns a fresh code without assigning it.
func (g CredentialGenerator) Generate() (customer.PickupCode, error) {
	span := big.NewInt(customer.PickupCodeMax - customer.PickupCodeMin + 1)
	n, err := rand.Int(g.random, span)
	if err != nil {
		return 0, fmt.Errorf("draw pickup code: %w", err)
	}
	return customer.NewPickupCode(int(n.Int64()) + customer.PickupCodeMin)
}

// Issue generates a code and stores it on the customer together with the
// rack it opens. Any earlier code is overwritten. Persisting the customer is
// left to the caller's unit of work.
func (g CredentialGenerator) Issue(c *customer.Customer, rack kernel.RackSlot) (customer.PickupCode, error) {
	if c == nil {
		return 0, ErrCustomerIsRequired
	}
	code, err := g.Generate()
	if err != nil {
		return 0, err
	}
	if err = c.AssignCredential(code, rack); err != nil {
		return 0, err
	}
	return code, nil
}
