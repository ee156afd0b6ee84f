package commands

import (
	"context"

	"station/internal/core/domain/model/fleet"
	"station/internal/core/ports"
)

// CreateTruckCommandHandler registers trucks. A duplicate plate number is reported by
// the repository as a validation error.
type CreateTruckCommandHandler struct {
	uowFactory TruckUoWFactory
	notifier   ports.Notifier
}

func NewCreateTruckCommandHandler(uowFactory TruckUoWFactory, notifier ports.Notifier) CreateTruckCommandHandler {
	return CreateTruckCommandHandler{uowFactory: uowFactory, notifier: notifier}
}

// Handle processes the truck registration command.
func (h *CreateTruckCommandHandler) Handle(ctx context.Context, cmd CreateTruckCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	truck, err := fleet.NewTruck(cmd.TruckID(), cmd.PlateNumber(), cmd.Model(), cmd.Capacity(), cmd.FuelCapacity())
	if err == nil {
		err = h.add(ctx, truck)
	}
	if err != nil {
		notifyFailure(ctx, h.notifier, ports.EventTruckChanged, nil, err)
		return err
	}

	notifyFleet(ctx, h.notifier, ports.EventTruckChanged, truck.Status().String(),
		"Truck "+truck.PlateNumber()+" registered")
	return nil
}

func (h *CreateTruckCommandHandler) add(ctx context.Context, truck *fleet.Truck) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.TruckRepository().Add(ctx, truck); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
