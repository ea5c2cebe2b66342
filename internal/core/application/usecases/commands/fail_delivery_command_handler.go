package commands

import (
	"context"
	"log/slog"

	"dropoff/internal/core/application/tracking"
	"dropoff/internal/core/domain/model/kernel"
	"dropoff/internal/core/domain/services"
	"dropoff/internal/core/ports"
	"dropoff/internal/metrics"
)

// FailDeliveryCommandHandler gives the reserved rack back, empties the drone
// grippers holding the package and records the Failed phase. No credential is
// issued.
type FailDeliveryCommandHandler struct {
	uowFactory UoWFactory
	releaser   services.GripperReleaser
	store      *tracking.Store
	observers
}

func NewFailDeliveryCommandHandler(
	uowFactory UoWFactory,
	store *tracking.Store,
	analytics ports.DeliveryAnalytics,
	sink metrics.Sink,
	logger *slog.Logger,
) FailDeliveryCommandHandler {
	return FailDeliveryCommandHandler{
		uowFactory: uowFactory,
		releaser:   services.NewGripperReleaser(),
		store:      store,
		observers:  newObservers(analytics, sink, logger, "fail-delivery"),
	}
}

func (h FailDeliveryCommandHandler) Handle(ctx context.Context, cmd FailDeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	packageID, cycle := cmd.PackageID(), cmd.Cycle()
	unlock := h.store.Lock(packageID)
	defer unlock()

	if !h.store.IsCurrent(packageID, cycle) {
		return ErrStaleDeliveryCycle
	}

	rack, err := h.fail(ctx, packageID)
	if err != nil {
		return err
	}

	h.store.SetStatus(packageID, cycle, tracking.StatusFailed)
	h.store.DropRack(packageID, cycle)
	if rack != nil {
		h.record(ctx, rack.Tower(), ports.OutcomeFailed)
	}
	h.logger.Info("delivery failed, rack released", "package_id", packageID)
	return nil
}

func (h FailDeliveryCommandHandler) fail(ctx context.Context, packageID string) (*kernel.RackSlot, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	parcelRepo := uow.ParcelRepository()
	droneRepo := uow.DroneRepository()
	ledger := uow.RackLedger()

	p, err := parcelRepo.Get(ctx, packageID)
	if err != nil {
		return nil, err
	}

	rack := p.Rack()
	if rack != nil {
		if err = ledger.Release(ctx, *rack); err != nil {
			return nil, err
		}
	}

	carrying, err := droneRepo.GetCarrying(ctx, packageID)
	if err != nil {
		return nil, err
	}
	for _, d := range h.releaser.Release(carrying, packageID) {
		if err = droneRepo.Update(ctx, d); err != nil {
			return nil, err
		}
	}

	if err = p.MarkFailed(); err != nil {
		return nil, err
	}
	if err = parcelRepo.Update(ctx, p); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return rack, nil
}
