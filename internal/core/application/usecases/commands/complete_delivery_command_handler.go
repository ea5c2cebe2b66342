package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"dropoff/internal/core/application/tracking"
	"dropoff/internal/core/domain/model/parcel"
	"dropoff/internal/core/domain/services"
	"dropoff/internal/core/ports"
	"dropoff/internal/metrics"
	"dropoff/internal/pkg/errs"
)

// CompleteDeliveryCommandHandler runs the Delivered cleanup:
//
//  1. record the Delivered phase (own transaction, so it survives a later failure)
//  2. look up the customer of the package
//  3. issue the pickup credential and confirm the rack on the customer
//  4. re-affirm the rack occupancy in the ledger
//  5. clear every drone gripper holding the package
//  6. flag the credential as issued, once per delivery cycle
//
// Steps 2 to 6 share one transaction. When the customer is missing the parcel
// stays Delivered without a credential and ErrCustomerNotFound is returned;
// the reconciliation job retries it later.
type CompleteDeliveryCommandHandler struct {
	uowFactory UoWFactory
	generator  services.CredentialGenerator
	releaser   services.GripperReleaser
	store      *tracking.Store
	observers
}

func NewCompleteDeliveryCommandHandler(
	uowFactory UoWFactory,
	generator services.CredentialGenerator,
	store *tracking.Store,
	analytics ports.DeliveryAnalytics,
	sink metrics.Sink,
	logger *slog.Logger,
) CompleteDeliveryCommandHandler {
	return CompleteDeliveryCommandHandler{
		uowFactory: uowFactory,
		generator:  generator,
		releaser:   services.NewGripperReleaser(),
		store:      store,
		observers:  newObservers(analytics, sink, logger, "complete-delivery"),
	}
}

func (h CompleteDeliveryCommandHandler) Handle(ctx context.Context, cmd CompleteDeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	packageID, cycle := cmd.PackageID(), cmd.Cycle()
	unlock := h.store.Lock(packageID)
	defer unlock()

	if cycle != nil && !h.store.IsCurrent(packageID, *cycle) {
		return ErrStaleDeliveryCycle
	}

	p, transitioned, err := h.markDelivered(ctx, packageID, cycle != nil)
	if err != nil {
		return err
	}
	if cycle != nil {
		h.store.SetStatus(packageID, *cycle, tracking.StatusDelivered)
	}
	if transitioned {
		h.record(ctx, p.Rack().Tower(), ports.OutcomeDelivered)
	}

	if p.CredentialIssued() {
		h.logger.Info("credential already issued", "package_id", packageID)
		h.syncTracking(cmd, p, true)
		return nil
	}

	if err = h.issueCredential(ctx, p); err != nil {
		if errors.Is(err, ErrCustomerNotFound) {
			h.metrics.CredentialIssueFailed("customer_not_found")
			h.logger.Warn("delivered package has no customer, credential postponed", "package_id", packageID)
		} else {
			h.metrics.CredentialIssueFailed("persistence")
		}
		h.syncTracking(cmd, p, false)
		return err
	}

	h.metrics.CredentialIssued()
	h.syncTracking(cmd, p, true)
	h.logger.Info("credential issued", "package_id", packageID, "rack", p.Rack().String())
	return nil
}

// markDelivered reports whether this call moved the parcel into Delivered.
// Without a monitoring cycle only an already delivered parcel is accepted.
func (h CompleteDeliveryCommandHandler) markDelivered(
	ctx context.Context,
	packageID string,
	monitored bool,
) (*parcel.Parcel, bool, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	parcelRepo := uow.ParcelRepository()

	p, err := parcelRepo.Get(ctx, packageID)
	if err != nil {
		return nil, false, err
	}

	switch {
	case p.Phase() == parcel.Delivered:
		if p.Rack() == nil {
			return nil, false, errs.NewValueIsRequiredError("rack")
		}
		return p, false, nil
	case !monitored:
		return nil, false, fmt.Errorf("%w: parcel is %s", ErrStaleDeliveryCycle, p.Phase())
	}

	if err = p.MarkDelivered(); err != nil {
		return nil, false, err
	}
	if err = parcelRepo.Update(ctx, p); err != nil {
		return nil, false, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, false, err
	}

	return p, true, nil
}

func (h CompleteDeliveryCommandHandler) issueCredential(ctx context.Context, p *parcel.Parcel) error {
	rack := *p.Rack()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	customerRepo := uow.CustomerRepository()
	droneRepo := uow.DroneRepository()
	parcelRepo := uow.ParcelRepository()
	ledger := uow.RackLedger()

	c, err := customerRepo.GetByPackage(ctx, p.ID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrCustomerNotFound
	}
	if err != nil {
		return err
	}

	if _, err = h.generator.Issue(c, rack); err != nil {
		return err
	}
	if err = customerRepo.Update(ctx, c); err != nil {
		return err
	}

	if err = ledger.Affirm(ctx, rack, p.ID()); err != nil {
		return err
	}

	carrying, err := droneRepo.GetCarrying(ctx, p.ID())
	if err != nil {
		return err
	}
	for _, d := range h.releaser.Release(carrying, p.ID()) {
		if err = droneRepo.Update(ctx, d); err != nil {
			return err
		}
	}

	if err = p.ConfirmCredential(); err != nil {
		return err
	}
	if err = parcelRepo.Update(ctx, p); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h CompleteDeliveryCommandHandler) syncTracking(cmd CompleteDeliveryCommand, p *parcel.Parcel, credentialReady bool) {
	if cycle := cmd.Cycle(); cycle != nil {
		if credentialReady {
			h.store.MarkCredentialReady(cmd.PackageID(), *cycle)
		}
		return
	}
	h.store.Restore(cmd.PackageID(), tracking.StatusDelivered, p.Rack(), credentialReady)
}
