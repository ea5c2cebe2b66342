package commands

import (
	"context"

	"dropoff/internal/core/domain/model/kernel"
)

// DeliveryOutcomes routes the terminal outcomes observed by the delivery
// monitor to the matching command handlers. It satisfies monitor.OutcomeHandler.
type DeliveryOutcomes struct {
	complete    CompleteDeliveryCommandHandler
	fail        FailDeliveryCommandHandler
	unreachable MarkUnreachableCommandHandler
}

func NewDeliveryOutcomes(
	complete CompleteDeliveryCommandHandler,
	fail FailDeliveryCommandHandler,
	unreachable MarkUnreachableCommandHandler,
) DeliveryOutcomes {
	return DeliveryOutcomes{complete: complete, fail: fail, unreachable: unreachable}
}

func (o DeliveryOutcomes) Delivered(ctx context.Context, packageID string, cycle kernel.CycleID) error {
	cmd, err := NewCompleteDeliveryCommand(packageID, &cycle)
	if err != nil {
		return err
	}
	return o.complete.Handle(ctx, cmd)
}

func (o DeliveryOutcomes) Failed(ctx context.Context, packageID string, cycle kernel.CycleID) error {
	cmd, err := NewFailDeliveryCommand(packageID, cycle)
	if err != nil {
		return err
	}
	return o.fail.Handle(ctx, cmd)
}

func (o DeliveryOutcomes) Unreachable(ctx context.Context, packageID string, cycle kernel.CycleID) error {
	cmd, err := NewMarkUnreachableCommand(packageID, cycle)
	if err != nil {
		return err
	}
	return o.unreachable.Handle(ctx, cmd)
}
