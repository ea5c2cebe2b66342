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

// ResetPackageCommandHandler asks the tower to drop the package (best effort),
// stops its monitor and forgets all tracking, whatever the tower answered.
// The parcel goes back to Ready. The ledger slot is left as it is: only a
// pickup returns a rack to the pool.
type ResetPackageCommandHandler struct {
	uowFactory UoWFactory
	controller ports.TowerController
	monitor    DeliveryMonitor
	store      *tracking.Store
	observers
}

func NewResetPackageCommandHandler(
	uowFactory UoWFactory,
	controller ports.TowerController,
	deliveryMonitor DeliveryMonitor,
	store *tracking.Store,
	logger *slog.Logger,
) ResetPackageCommandHandler {
	return ResetPackageCommandHandler{
		uowFactory: uowFactory,
		controller: controller,
		monitor:    deliveryMonitor,
		store:      store,
		observers:  newObservers(nil, metrics.NewNoopSink(), logger, "reset-package"),
	}
}

func (h ResetPackageCommandHandler) Handle(ctx context.Context, cmd ResetPackageCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	packageID := cmd.PackageID()
	unlock := h.store.Lock(packageID)
	defer unlock()

	endpoint := cmd.ControlKey()
	if endpoint == nil {
		if entry, ok := h.store.Snapshot(packageID); ok {
			endpoint = entry.Endpoint
		}
	}
	if endpoint != nil {
		h.controller.Reset(ctx, *endpoint)
	} else {
		h.logger.Info("no control endpoint known, skipping remote reset", "package_id", packageID)
	}

	h.monitor.Stop(packageID)
	h.store.Clear(packageID)

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	parcelRepo := uow.ParcelRepository()

	p, err := parcelRepo.Get(ctx, packageID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		h.logger.Info("reset of unknown package", "package_id", packageID)
		return nil
	}
	if err != nil {
		return err
	}

	p.Reset()
	if err = parcelRepo.Update(ctx, p); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.logger.Info("package reset", "package_id", packageID)
	return nil
}
