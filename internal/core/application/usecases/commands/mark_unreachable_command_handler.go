package commands

import (
	"context"
	"log/slog"

	"dropoff/internal/core/application/tracking"
	"dropoff/internal/core/ports"
	"dropoff/internal/metrics"
)

// MarkUnreachableCommandHandler moves a package whose tower never reported a
// terminal status into Unreachable. The rack stays reserved for an operator
// to resolve, either by a relaunch or by a pickup.
type MarkUnreachableCommandHandler struct {
	uowFactory UoWFactory
	store      *tracking.Store
	observers
}

func NewMarkUnreachableCommandHandler(
	uowFactory UoWFactory,
	store *tracking.Store,
	analytics ports.DeliveryAnalytics,
	sink metrics.Sink,
	logger *slog.Logger,
) MarkUnreachableCommandHandler {
	return MarkUnreachableCommandHandler{
		uowFactory: uowFactory,
		store:      store,
		observers:  newObservers(analytics, sink, logger, "mark-unreachable"),
	}
}

func (h MarkUnreachableCommandHandler) Handle(ctx context.Context, cmd MarkUnreachableCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	packageID, cycle := cmd.PackageID(), cmd.Cycle()
	unlock := h.store.Lock(packageID)
	defer unlock()

	if !h.store.IsCurrent(packageID, cycle) {
		return ErrStaleDeliveryCycle
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	parcelRepo := uow.ParcelRepository()

	p, err := parcelRepo.Get(ctx, packageID)
	if err != nil {
		return err
	}
	if err = p.MarkUnreachable(); err != nil {
		return err
	}
	if err = parcelRepo.Update(ctx, p); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.store.SetStatus(packageID, cycle, tracking.StatusUnreachable)
	if rack := p.Rack(); rack != nil {
		h.record(ctx, rack.Tower(), ports.OutcomeUnreachable)
	}
	h.logger.Warn("package marked unreachable, operator follow-up required", "package_id", packageID)
	return nil
}
