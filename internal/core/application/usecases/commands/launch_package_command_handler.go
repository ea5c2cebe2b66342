package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"dropoff/internal/core/application/monitor"
	"dropoff/internal/core/application/tracking"
	"dropoff/internal/core/domain/model/kernel"
	"dropoff/internal/core/domain/model/parcel"
	"dropoff/internal/core/domain/model/tower"
	"dropoff/internal/core/ports"
	"dropoff/internal/metrics"
	"dropoff/internal/pkg/errs"
)

// LaunchResult is returned to the caller once the tower accepted the drop-off.
type LaunchResult struct {
	PackageID    string
	ControlKey   tower.ControlEndpoint
	SelectedRack kernel.RackSlot
}

// LaunchPackageCommandHandler reserves a rack, dispatches the drop-off to the
// tower and starts the delivery monitor. The reservation and the remote call
// form a two-step saga: when the tower rejects the launch the reservation is
// released again and the parcel goes back to Ready.
//
// Example:
//
//	result, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, ErrRackIsOccupied):
//	    // 409
//	case errors.Is(err, ErrRemoteLaunchFailed):
//	    // 502, nothing is left reserved
//	}
type LaunchPackageCommandHandler struct {
	uowFactory UoWFactory
	controller ports.TowerController
	monitor    DeliveryMonitor
	store      *tracking.Store
	observers
}

func NewLaunchPackageCommandHandler(
	uowFactory UoWFactory,
	controller ports.TowerController,
	deliveryMonitor DeliveryMonitor,
	store *tracking.Store,
	analytics ports.DeliveryAnalytics,
	sink metrics.Sink,
	logger *slog.Logger,
) LaunchPackageCommandHandler {
	return LaunchPackageCommandHandler{
		uowFactory: uowFactory,
		controller: controller,
		monitor:    deliveryMonitor,
		store:      store,
		observers:  newObservers(analytics, sink, logger, "launch-package"),
	}
}

func (h LaunchPackageCommandHandler) Handle(ctx context.Context, cmd LaunchPackageCommand) (LaunchResult, error) {
	started := time.Now()
	result, err := h.launch(ctx, cmd)
	h.metrics.LaunchCompleted(launchOutcome(err), time.Since(started))
	return result, err
}

func (h LaunchPackageCommandHandler) launch(ctx context.Context, cmd LaunchPackageCommand) (LaunchResult, error) {
	if err := cmd.Validate(); err != nil {
		return LaunchResult{}, err
	}

	packageID, rack := cmd.PackageID(), cmd.Rack()
	unlock := h.store.Lock(packageID)
	defer unlock()

	endpoint, err := h.reserve(ctx, cmd)
	if err != nil {
		return LaunchResult{}, err
	}
	h.store.SetPendingRack(packageID, rack)

	request := ports.LaunchRequest{
		PackageID:  packageID,
		TowerName:  rack.Tower(),
		RackColumn: rack.Column(),
	}
	if err = h.controller.Launch(ctx, endpoint, request); err != nil {
		compensationErr := h.compensate(ctx, packageID, rack)
		h.store.Clear(packageID)
		h.logger.Warn("launch rejected, reservation rolled back",
			"package_id", packageID, "rack", rack.String(), "error", err, "compensation_error", compensationErr)
		return LaunchResult{}, errors.Join(fmt.Errorf("%w: %w", ErrRemoteLaunchFailed, err), compensationErr)
	}

	cycle := h.store.Begin(packageID, rack, endpoint)
	h.monitor.Start(monitor.Task{PackageID: packageID, Cycle: cycle, Endpoint: endpoint})
	h.record(ctx, rack.Tower(), ports.OutcomeLaunched)
	h.logger.Info("package launched", "package_id", packageID, "rack", rack.String(), "cycle", cycle.String())

	return LaunchResult{PackageID: packageID, ControlKey: endpoint, SelectedRack: rack}, nil
}

// reserve resolves the tower and, in one transaction, reserves the rack and
// moves the parcel to Processing.
func (h LaunchPackageCommandHandler) reserve(ctx context.Context, cmd LaunchPackageCommand) (tower.ControlEndpoint, error) {
	packageID, rack := cmd.PackageID(), cmd.Rack()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return tower.ControlEndpoint{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	towerRepo := uow.TowerRepository()
	parcelRepo := uow.ParcelRepository()
	ledger := uow.RackLedger()

	t, err := towerRepo.FindByCoordinates(ctx, cmd.Location())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return tower.ControlEndpoint{}, fmt.Errorf("%w: %w", ErrControlEndpointNotFound, err)
	}
	if err != nil {
		return tower.ControlEndpoint{}, err
	}
	if t.Name() != rack.Tower() {
		return tower.ControlEndpoint{}, fmt.Errorf("%w: %s stands at %s", ErrTowerMismatch, t.Name(), cmd.Location())
	}
	if _, err = t.Rack(rack.Index()); err != nil {
		return tower.ControlEndpoint{}, err
	}

	p, err := parcelRepo.Get(ctx, packageID)
	if err != nil {
		return tower.ControlEndpoint{}, err
	}
	if p.Phase() == parcel.Processing {
		return tower.ControlEndpoint{}, ErrDeliveryInProgress
	}

	if err = h.reserveRack(ctx, ledger, p, rack); err != nil {
		return tower.ControlEndpoint{}, err
	}

	if err = p.StartDelivery(rack, cmd.Location()); err != nil {
		return tower.ControlEndpoint{}, err
	}
	if err = parcelRepo.Update(ctx, p); err != nil {
		return tower.ControlEndpoint{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return tower.ControlEndpoint{}, err
	}

	return t.Endpoint(), nil
}

// reserveRack takes the requested slot. A parcel relaunched after Unreachable
// or a reset still holds its previous rack, which is handed back first.
func (h LaunchPackageCommandHandler) reserveRack(
	ctx context.Context,
	ledger ports.RackLedger,
	p *parcel.Parcel,
	rack kernel.RackSlot,
) error {
	if held := p.Rack(); held != nil && !held.IsEqual(rack) {
		if _, err := ledger.ReleaseHeldBy(ctx, *held, p.ID()); err != nil {
			return err
		}
	}
	if _, err := ledger.ReleaseHeldBy(ctx, rack, p.ID()); err != nil {
		return err
	}

	reserved, err := ledger.Reserve(ctx, rack, p.ID())
	if err != nil {
		return err
	}
	if !reserved {
		return ErrRackIsOccupied
	}
	return nil
}

func (h LaunchPackageCommandHandler) compensate(ctx context.Context, packageID string, rack kernel.RackSlot) error {
	ctx, cancel := detached(ctx)
	defer cancel()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		h.metrics.CompensationFailed("begin")
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ledger := uow.RackLedger()
	parcelRepo := uow.ParcelRepository()

	if _, err := ledger.ReleaseHeldBy(ctx, rack, packageID); err != nil {
		h.metrics.CompensationFailed("release_rack")
		return fmt.Errorf("release %s: %w", rack, err)
	}

	p, err := parcelRepo.Get(ctx, packageID)
	if err != nil {
		h.metrics.CompensationFailed("revert_parcel")
		return err
	}
	if err = p.AbortDelivery(); err != nil {
		h.metrics.CompensationFailed("revert_parcel")
		return err
	}
	if err = parcelRepo.Update(ctx, p); err != nil {
		h.metrics.CompensationFailed("revert_parcel")
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		h.metrics.CompensationFailed("commit")
		return err
	}
	return nil
}

func launchOutcome(err error) string {
	switch {
	case err == nil:
		return metrics.LaunchAccepted
	case errors.Is(err, ErrRackIsOccupied), errors.Is(err, tower.ErrRackIsOccupied):
		return metrics.LaunchRackOccupied
	case errors.Is(err, ErrControlEndpointNotFound):
		return metrics.LaunchNoEndpoint
	case errors.Is(err, ErrRemoteLaunchFailed):
		return metrics.LaunchRemoteFailed
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrObjectNotFound),
		errors.Is(err, ErrTowerMismatch),
		errors.Is(err, ErrDeliveryInProgress),
		errors.Is(err, ErrLaunchPackageCommandIsNotConstructed):
		return metrics.LaunchInvalid
	default:
		return metrics.LaunchInternalError
	}
}
