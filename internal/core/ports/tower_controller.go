package ports

import (
	"context"
	"errors"

	"dropoff/internal/core/domain/model/tower"
)

// ErrRemoteTransport marks network level failures (timeouts, refused
// connections, DNS). Callers treat them as "try again later", never as a
// delivery outcome.
var ErrRemoteTransport = errors.New("tower controller unreachable")

// RemoteStatus is a single snapshot of a tower's delivery state.
type RemoteStatus int

const (
	// RemoteUnknown means the snapshot carried no usable information.
	RemoteUnknown RemoteStatus = iota
	RemoteProcessing
	RemoteDelivered
	RemoteFailed
)

func (s RemoteStatus) String() string {
	switch s {
	case RemoteProcessing:
		return "Processing"
	case RemoteDelivered:
		return "Delivered"
	case RemoteFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// IsTerminal reports whether monitoring can stop.
func (s RemoteStatus) IsTerminal() bool {
	return s == RemoteDelivered || s == RemoteFailed
}

// LaunchRequest is the drop-off order sent to a tower.
type LaunchRequest struct {
	PackageID  string
	TowerName  string
	RackColumn string
}

// TowerController talks to the physical controller of one tower.
type TowerController interface {
	// Launch dispatches the drop-off. Only an accepted (HTTP 200) launch returns nil.
	Launch(ctx context.Context, endpoint tower.ControlEndpoint, request LaunchRequest) error

	// PollStatus takes one status snapshot. Non-200 answers and malformed
	// bodies yield RemoteUnknown with a nil error; network failures wrap
	// ErrRemoteTransport.
	PollStatus(ctx context.Context, endpoint tower.ControlEndpoint) (RemoteStatus, error)

	// Reset asks the tower to abandon its current package. Best effort:
	// failures are logged by the implementation and never returned.
	Reset(ctx context.Context, endpoint tower.ControlEndpoint)

	// OpenDoor unlocks one rack door for a customer.
	OpenDoor(ctx context.Context, endpoint tower.ControlEndpoint, rackColumn string) error
}
