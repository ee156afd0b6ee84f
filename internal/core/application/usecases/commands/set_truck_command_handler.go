package commands

import (
	"context"

	"station/internal/core/domain/model/fleet"
	"station/internal/core/domain/model/kernel"
	"station/internal/core/ports"
)

// SetTruckGPSCommandHandler enables or disables the tracking unit of a truck.
// Disabling clears the unit and its last location together.
type SetTruckGPSCommandHandler struct {
	uowFactory TruckUoWFactory
	notifier   ports.Notifier
}

func NewSetTruckGPSCommandHandler(uowFactory TruckUoWFactory, notifier ports.Notifier) SetTruckGPSCommandHandler {
	return SetTruckGPSCommandHandler{uowFactory: uowFactory, notifier: notifier}
}

func (h *SetTruckGPSCommandHandler) Handle(ctx context.Context, cmd SetTruckGPSCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	truck, err := changeTruck(ctx, h.uowFactory, cmd.TruckID(), func(t *fleet.Truck) error {
		if !cmd.Enabled() {
			t.DisableGPS()
			return nil
		}
		return t.EnableGPS(cmd.GPSID())
	})
	if err != nil {
		notifyFailure(ctx, h.notifier, ports.EventTruckChanged, nil, err)
		return err
	}

	message := "GPS disabled on " + truck.PlateNumber()
	if truck.GPS() != nil {
		message = "GPS " + truck.GPS().ID() + " enabled on " + truck.PlateNumber()
	}
	notifyFleet(ctx, h.notifier, ports.EventTruckChanged, truck.Status().String(), message)
	return nil
}

// SetTruckStatusCommandHandler applies manual status changes to trucks without a driver.
type SetTruckStatusCommandHandler struct {
	uowFactory TruckUoWFactory
	notifier   ports.Notifier
}

func NewSetTruckStatusCommandHandler(uowFactory TruckUoWFactory, notifier ports.Notifier) SetTruckStatusCommandHandler {
	return SetTruckStatusCommandHandler{uowFactory: uowFactory, notifier: notifier}
}

func (h *SetTruckStatusCommandHandler) Handle(ctx context.Context, cmd SetTruckStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	truck, err := changeTruck(ctx, h.uowFactory, cmd.TruckID(), func(t *fleet.Truck) error {
		return t.SetStatus(cmd.Status())
	})
	if err != nil {
		notifyFailure(ctx, h.notifier, ports.EventTruckChanged, nil, err)
		return err
	}

	notifyFleet(ctx, h.notifier, ports.EventTruckChanged, truck.Status().String(),
		"Truck "+truck.PlateNumber()+" is now "+truck.Status().String())
	return nil
}

// changeTruck loads a truck with its row locked, applies change and saves it.
func changeTruck(
	ctx context.Context,
	uowFactory TruckUoWFactory,
	truckID kernel.UUID,
	change func(*fleet.Truck) error,
) (*fleet.Truck, error) {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.TruckRepository()
	truck, err := repo.Get(ctx, truckID)
	if err != nil {
		return nil, err
	}

	if err = change(truck); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, truck); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return truck, nil
}
