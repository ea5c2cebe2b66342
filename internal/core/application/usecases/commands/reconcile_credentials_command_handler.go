package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"dropoff/internal/metrics"
)

// DeliveryCompleter is the part of CompleteDeliveryCommandHandler the
// reconciliation drives.
type DeliveryCompleter interface {
	Handle(ctx context.Context, cmd CompleteDeliveryCommand) error
}

type ReconcileCredentialsResult struct {
	Scanned int
	Issued  int
	// Pending counts parcels whose customer record is still missing.
	Pending int
}

// ReconcileCredentialsCommandHandler re-runs the Delivered cleanup without a
// delivery cycle for every parcel that is Delivered but has no credential.
// A parcel that left Delivered in the meantime is skipped. Failures of single
// parcels do not stop the run; they are joined into the returned error.
type ReconcileCredentialsCommandHandler struct {
	uowFactory UoWFactory
	completer  DeliveryCompleter
	observers
}

func NewReconcileCredentialsCommandHandler(
	uowFactory UoWFactory,
	completer DeliveryCompleter,
	sink metrics.Sink,
	logger *slog.Logger,
) ReconcileCredentialsCommandHandler {
	return ReconcileCredentialsCommandHandler{
		uowFactory: uowFactory,
		completer:  completer,
		observers:  newObservers(nil, sink, logger, "reconcile-credentials"),
	}
}

func (h ReconcileCredentialsCommandHandler) Handle(
	ctx context.Context,
	cmd ReconcileCredentialsCommand,
) (ReconcileCredentialsResult, error) {
	if err := cmd.Validate(); err != nil {
		return ReconcileCredentialsResult{}, err
	}

	uow := h.uowFactory.Create()
	parcels, err := uow.ParcelRepository().GetAwaitingCredential(ctx, cmd.Limit())
	if err != nil {
		return ReconcileCredentialsResult{}, err
	}

	result := ReconcileCredentialsResult{Scanned: len(parcels)}
	var failures []error

	for _, p := range parcels {
		if ctx.Err() != nil {
			failures = append(failures, ctx.Err())
			break
		}

		complete, err := NewCompleteDeliveryCommand(p.ID(), nil)
		if err != nil {
			failures = append(failures, err)
			continue
		}

		err = h.completer.Handle(ctx, complete)
		switch {
		case err == nil:
			result.Issued++
		case errors.Is(err, ErrStaleDeliveryCycle):
			h.logger.Debug("parcel left Delivered, skipped", "package_id", p.ID())
		case errors.Is(err, ErrCustomerNotFound):
			result.Pending++
		default:
			failures = append(failures, fmt.Errorf("package %s: %w", p.ID(), err))
		}
	}

	if result.Issued > 0 {
		h.metrics.ReconciledDeliveries(result.Issued)
	}

	return result, errors.Join(failures...)
}
