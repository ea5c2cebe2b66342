package commands

import (
	"context"
	"errors"
)

// UpdateDroneCoordinatesCommandHandler stores a drone's flight endpoints.
type UpdateDroneCoordinatesCommandHandler struct {
	uowFactory DroneUoWFactory
}

func NewUpdateDroneCoordinatesCommandHandler(uowFactory DroneUoWFactory) UpdateDroneCoordinatesCommandHandler {
	return UpdateDroneCoordinatesCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h UpdateDroneCoordinatesCommandHandler) Handle(ctx context.Context, cmd UpdateDroneCoordinatesCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	droneRepo := uow.DroneRepository()

	d, err := droneRepo.Get(ctx, cmd.DroneID())
	if err != nil {
		return err
	}

	var srcErr, dstErr error
	if src := cmd.Source(); src != nil {
		srcErr = d.SetSource(src)
	}
	if dst := cmd.Destination(); dst != nil {
		dstErr = d.SetDestination(dst)
	}
	if err = errors.Join(srcErr, dstErr); err != nil {
		return err
	}

	if err = droneRepo.Update(ctx, d); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
