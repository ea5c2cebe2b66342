package commands

import (
	"context"
	"errors"
	"log/slog"

	"dropoff/internal/core/application/tracking"
	"dropoff/internal/core/ports"
	"dropoff/internal/metrics"
	"dropoff/internal/pkg/errs"
)

// PickupPackageCommandHandler is the normal way a rack returns to the pool.
// It releases the rack only when the package is the one occupying it; any
// other combination is a successful no-op, so repeated pickups are harmless.
//
// On release the parcel becomes PickedUp, the customer's code stops working,
// the monitor is stopped and tracking is cleared.
type PickupPackageCommandHandler struct {
	uowFactory UoWFactory
	monitor    DeliveryMonitor
	store      *tracking.Store
	observers
}

func NewPickupPackageCommandHandler(
	uowFactory UoWFactory,
	deliveryMonitor DeliveryMonitor,
	store *tracking.Store,
	analytics ports.DeliveryAnalytics,
	sink metrics.Sink,
	logger *slog.Logger,
) PickupPackageCommandHandler {
	return PickupPackageCommandHandler{
		uowFactory: uowFactory,
		monitor:    deliveryMonitor,
		store:      store,
		observers:  newObservers(analytics, sink, logger, "pickup-package"),
	}
}

// Handle reports whether the rack was released.
func (h PickupPackageCommandHandler) Handle(ctx context.Context, cmd PickupPackageCommand) (bool, error) {
	if err := cmd.Validate(); err != nil {
		return false, err
	}

	packageID, rack := cmd.PackageID(), cmd.Rack()
	unlock := h.store.Lock(packageID)
	defer unlock()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ledger := uow.RackLedger()
	parcelRepo := uow.ParcelRepository()
	customerRepo := uow.CustomerRepository()

	released, err := ledger.ReleaseHeldBy(ctx, rack, packageID)
	if err != nil {
		return false, err
	}
	if !released {
		h.metrics.PickupCompleted(false)
		h.logger.Info("pickup of a rack the package does not hold, nothing to do",
			"package_id", packageID, "rack", rack.String())
		return false, nil
	}

	p, err := parcelRepo.Get(ctx, packageID)
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		h.logger.Warn("released rack of an unknown package", "package_id", packageID)
	case err != nil:
		return false, err
	default:
		if err = p.PickUp(); err != nil {
			return false, err
		}
		if err = parcelRepo.Update(ctx, p); err != nil {
			return false, err
		}
	}

	c, err := customerRepo.GetByPackage(ctx, packageID)
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
	case err != nil:
		return false, err
	default:
		c.RevokeCredential()
		if err = customerRepo.Update(ctx, c); err != nil {
			return false, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}

	h.monitor.Stop(packageID)
	h.store.Clear(packageID)
	h.metrics.PickupCompleted(true)
	h.record(ctx, rack.Tower(), ports.OutcomePickedUp)
	h.logger.Info("package picked up", "package_id", packageID, "rack", rack.String())
	return true, nil
}
