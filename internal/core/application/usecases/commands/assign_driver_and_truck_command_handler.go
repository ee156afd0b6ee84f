package commands

import (
	"context"
	"time"

	"station/internal/core/domain/model/order"
	"station/internal/core/domain/services"
	"station/internal/core/ports"
)

// AssignDriverAndTruckCommandHandler binds a driver and a truck to an active order.
// Order, driver and truck are written in one transaction; a failed guard writes nothing.
//
// Example:
//
//	handler := NewAssignDriverAndTruckCommandHandler(uowFactory, coordinator, notifier)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return err // e.g. driver already on duty with another truck
//	}
type AssignDriverAndTruckCommandHandler struct {
	uowFactory  UoWFactory
	coordinator services.DeliveryCoordinator
	notifier    ports.Notifier
}

func NewAssignDriverAndTruckCommandHandler(
	uowFactory UoWFactory,
	coordinator services.DeliveryCoordinator,
	notifier ports.Notifier,
) AssignDriverAndTruckCommandHandler {
	return AssignDriverAndTruckCommandHandler{
		uowFactory:  uowFactory,
		coordinator: coordinator,
		notifier:    notifier,
	}
}

// Handle processes the assignment command.
func (h *AssignDriverAndTruckCommandHandler) Handle(ctx context.Context, cmd AssignDriverAndTruckCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	assigned, err := h.assign(ctx, cmd)
	if err != nil {
		notifyFailure(ctx, h.notifier, ports.EventOrderAssigned, ptr(cmd.OrderID()), err)
		return err
	}

	notifyOrder(ctx, h.notifier, ports.EventOrderAssigned, assigned,
		"Driver and truck assigned to "+assigned.PONumber())
	return nil
}

func (h *AssignDriverAndTruckCommandHandler) assign(
	ctx context.Context,
	cmd AssignDriverAndTruckCommand,
) (*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}
	driver, err := uow.DriverRepository().Get(ctx, cmd.DriverID())
	if err != nil {
		return nil, err
	}
	truck, err := uow.TruckRepository().Get(ctx, cmd.TruckID())
	if err != nil {
		return nil, err
	}

	if err = h.coordinator.Assign(o, driver, truck, time.Now().UTC()); err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return nil, err
	}
	if err = (fleetPair{driver: driver, truck: truck}).save(ctx, uow); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
