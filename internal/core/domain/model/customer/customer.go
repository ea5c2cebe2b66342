package customer

import (
	"errors"
	"net/mail"
	"strings"

	"dropoff/internal/core/domain/model/kernel"
	"dropoff/internal/pkg/errs"
	"dropoff/internal/pkg/guard"
)

var ErrCustomerIsNotConstructed = errors.New("Customer must be created via NewCustomer or RestoreCustomer constructor")

// Customer is the recipient of exactly one package. It carries the pickup
// credential once the package has been delivered into a rack.
type Customer struct {
	id          string
	name        string
	contact     string
	packageID   string
	itemDetails string
	code        *PickupCode
	rack        *kernel.RackSlot
	guard       guard.ConstructorGuard
}

func NewCustomer(id, name, contact, packageID, itemDetails string) (*Customer, error) {
	return RestoreCustomer(id, name, contact, packageID, itemDetails, nil, nil)
}

func RestoreCustomer(
	id, name, contact, packageID, itemDetails string,
	code *PickupCode,
	rack *kernel.RackSlot,
) (*Customer, error) {
	c := &Customer{guard: guard.NewConstructorGuard(), itemDetails: strings.TrimSpace(itemDetails)}
	if err := errors.Join(
		c.setID(id),
		c.setName(name),
		c.setContact(contact),
		c.setPackageID(packageID),
		c.setCredential(code, rack),
	); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Customer) ID() string {
	return c.id
}

func (c *Customer) Name() string {
	return c.name
}

// Contact is the address the credential is delivered to.
func (c *Customer) Contact() string {
	return c.contact
}

func (c *Customer) PackageID() string {
	return c.packageID
}

func (c *Customer) ItemDetails() string {
	return c.itemDetails
}

func (c *Customer) Code() *PickupCode {
	if c.code == nil {
		return nil
	}
	v := *c.code
	return &v
}

// Rack is the confirmed rack holding the customer's package.
func (c *Customer) Rack() *kernel.RackSlot {
	if c.rack == nil {
		return nil
	}
	v := *c.rack
	return &v
}

// HasCredential reports whether a code is currently valid for pickup.
func (c *Customer) HasCredential() bool {
	return c.code != nil
}

// AssignCredential stores a freshly generated code and the rack it opens,
// overwriting any earlier credential.
func (c *Customer) AssignCredential(code PickupCode, rack kernel.RackSlot) error {
	return c.setCredential(&code, &rack)
}

// RevokeCredential invalidates the code once the package has been collected.
func (c *Customer) RevokeCredential() {
	c.code = nil
	c.rack = nil
}

func (c *Customer) Validate() error {
	if c == nil {
		return ErrCustomerIsNotConstructed
	}
	if err := c.guard.Validate(ErrCustomerIsNotConstructed); err != nil {
		return err
	}
	if c.id == "" || c.packageID == "" || c.contact == "" {
		return errs.NewValueIsRequiredError("customer identity")
	}
	return nil
}

func (c *Customer) setID(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return errs.NewValueIsRequiredError("customer_id")
	}
	c.id = id
	return nil
}

func (c *Customer) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("customer_name")
	}
	c.name = name
	return nil
}

func (c *Customer) setContact(contact string) error {
	contact = strings.TrimSpace(contact)
	if contact == "" {
		return errs.NewValueIsRequiredError("mail_id")
	}
	if _, err := mail.ParseAddress(contact); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("mail_id", err)
	}
	c.contact = contact
	return nil
}

func (c *Customer) setPackageID(packageID string) error {
	packageID = strings.TrimSpace(packageID)
	if packageID == "" {
		return errs.NewValueIsRequiredError("package_id")
	}
	c.packageID = packageID
	return nil
}

func (c *Customer) setCredential(code *PickupCode, rack *kernel.RackSlot) error {
	if code != nil {
		if err := code.Validate(); err != nil {
			return err
		}
	}
	if rack != nil {
		if err := rack.Validate(); err != nil {
			return err
		}
	}
	c.code = nil
	if code != nil {
		v := *code
		c.code = &v
	}
	c.rack = nil
	if rack != nil {
		v := *rack
		c.rack = &v
	}
	return nil
}
