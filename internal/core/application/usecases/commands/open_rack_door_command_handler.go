package commands

import (
	"context"
	"errors"
	"log/slog"

	"dropoff/internal/core/domain/model/kernel"
	"dropoff/internal/core/domain/model/tower"
	"dropoff/internal/core/ports"
	"dropoff/internal/pkg/errs"
)

// ErrPickupCodeIsInvalid means no customer holds the code.
var ErrPickupCodeIsInvalid = errors.New("pickup code is invalid")

type OpenRackDoorResult struct {
	PackageID  string
	Rack       *kernel.RackSlot
	DoorOpened bool
}

// OpenRackDoorCommandHandler checks a pickup code and unlocks the rack it was
// issued for. A valid code whose door cannot be opened is still a success,
// reported with DoorOpened false so the customer can ask for help.
type OpenRackDoorCommandHandler struct {
	uowFactory UoWFactory
	controller ports.TowerController
	logger     *slog.Logger
}

func NewOpenRackDoorCommandHandler(
	uowFactory UoWFactory,
	controller ports.TowerController,
	logger *slog.Logger,
) OpenRackDoorCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return OpenRackDoorCommandHandler{
		uowFactory: uowFactory,
		controller: controller,
		logger:     logger.With("component", "open-rack-door"),
	}
}

func (h OpenRackDoorCommandHandler) Handle(ctx context.Context, cmd OpenRackDoorCommand) (OpenRackDoorResult, error) {
	if err := cmd.Validate(); err != nil {
		return OpenRackDoorResult{}, err
	}

	result, endpoint, err := h.resolve(ctx, cmd)
	if err != nil || endpoint == nil {
		return result, err
	}

	if err = h.controller.OpenDoor(ctx, *endpoint, result.Rack.Column()); err != nil {
		h.logger.Warn("door did not open", "package_id", result.PackageID, "rack", result.Rack.String(), "error", err)
		return result, nil
	}

	result.DoorOpened = true
	h.logger.Info("door opened", "package_id", result.PackageID, "rack", result.Rack.String())
	return result, nil
}

func (h OpenRackDoorCommandHandler) resolve(
	ctx context.Context,
	cmd OpenRackDoorCommand,
) (OpenRackDoorResult, *tower.ControlEndpoint, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return OpenRackDoorResult{}, nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	customerRepo := uow.CustomerRepository()
	towerRepo := uow.TowerRepository()

	c, err := customerRepo.GetByCode(ctx, cmd.Code())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return OpenRackDoorResult{}, nil, ErrPickupCodeIsInvalid
	}
	if err != nil {
		return OpenRackDoorResult{}, nil, err
	}

	result := OpenRackDoorResult{PackageID: c.PackageID(), Rack: c.Rack()}
	if result.Rack == nil {
		h.logger.Warn("valid code without a rack", "package_id", result.PackageID)
		return result, nil, nil
	}

	t, err := towerRepo.Get(ctx, result.Rack.Tower())
	if err != nil {
		return OpenRackDoorResult{}, nil, err
	}
	endpoint := t.Endpoint()

	return result, &endpoint, nil
}
