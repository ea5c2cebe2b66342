package commands

import (
	"errors"
	"strings"

	"dropoff/internal/core/domain/model/tower"
	"dropoff/internal/pkg/errs"
	"dropoff/internal/pkg/guard"
)

var ErrResetPackageCommandIsNotConstructed = errors.New(
	"ResetPackageCommand must be created via NewResetPackageCommand constructor",
)

// ResetPackageCommand abandons a package's current delivery cycle. The
// optional control key overrides the endpoint remembered from the launch.
type ResetPackageCommand struct { //nolint:recvcheck //using for validation
	packageID  string
	controlKey *tower.ControlEndpoint

	guard guard.ConstructorGuard
}

func NewResetPackageCommand(packageID, controlKey string) (ResetPackageCommand, error) {
	cmd := ResetPackageCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setPackageID(packageID),
		cmd.setControlKey(controlKey),
	); err != nil {
		return ResetPackageCommand{}, err
	}

	return cmd, nil
}

func (c ResetPackageCommand) Validate() error {
	return c.guard.Validate(ErrResetPackageCommandIsNotConstructed)
}

func (c ResetPackageCommand) PackageID() string {
	return c.packageID
}

// ControlKey returns nil when the caller did not name an endpoint.
func (c ResetPackageCommand) ControlKey() *tower.ControlEndpoint {
	if c.controlKey == nil {
		return nil
	}
	key := *c.controlKey
	return &key
}

func (c *ResetPackageCommand) setPackageID(packageID string) error {
	packageID = strings.TrimSpace(packageID)
	if packageID == "" {
		return errs.NewValueIsRequiredError("package_id")
	}
	c.packageID = packageID
	return nil
}

func (c *ResetPackageCommand) setControlKey(controlKey string) error {
	if strings.TrimSpace(controlKey) == "" {
		return nil
	}
	endpoint, err := tower.NewControlEndpoint(controlKey)
	if err != nil {
		return err
	}
	c.controlKey = &endpoint
	return nil
}
