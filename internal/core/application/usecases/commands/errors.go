package commands

import (
	"errors"
	"fmt"

	"dropoff/internal/core/application/monitor"
	"dropoff/internal/core/domain/model/tower"
)

var (
	// ErrRackIsOccupied is returned when the requested rack already holds
	// another package. It also matches tower.ErrRackIsOccupied.
	ErrRackIsOccupied = fmt.Errorf("requested rack is not available: %w", tower.ErrRackIsOccupied)

	// ErrControlEndpointNotFound means no tower stands at the given coordinates.
	ErrControlEndpointNotFound = errors.New("no tower control endpoint at the given coordinates")

	// ErrTowerMismatch means the tower at the coordinates is not the named one.
	ErrTowerMismatch = errors.New("ddt_name does not match the tower at the given coordinates")

	// ErrDeliveryInProgress rejects a launch while the package is still in flight.
	ErrDeliveryInProgress = errors.New("package delivery is already in progress")

	// ErrRemoteLaunchFailed wraps a launch the tower controller did not accept.
	// The local reservation has been rolled back when it is returned.
	ErrRemoteLaunchFailed = errors.New("tower controller did not accept the launch")

	// ErrCustomerNotFound leaves a delivered package without a credential until
	// the customer record shows up and reconciliation retries.
	ErrCustomerNotFound = errors.New("no customer is registered for the package")

	// ErrStaleDeliveryCycle is reported to the monitor when the package was
	// reset, picked up or relaunched while the task was running.
	ErrStaleDeliveryCycle = monitor.ErrStaleCycle
)
