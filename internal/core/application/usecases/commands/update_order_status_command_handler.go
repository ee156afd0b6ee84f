package commands

import (
	"context"
	"time"

	"station/internal/core/domain/model/order"
	"station/internal/core/domain/services"
	"station/internal/core/ports"
)

// UpdateOrderStatusCommandHandler applies an explicit status change with the same fleet
// side effects as the dedicated transitions: pending -> active records the payment,
// active -> in-transit departs, and closing an in-transit order releases driver and
// truck without volume reconciliation.
type UpdateOrderStatusCommandHandler struct {
	uowFactory  UoWFactory
	coordinator services.DeliveryCoordinator
	waker       TransitWaker
	notifier    ports.Notifier
}

func NewUpdateOrderStatusCommandHandler(
	uowFactory UoWFactory,
	coordinator services.DeliveryCoordinator,
	waker TransitWaker,
	notifier ports.Notifier,
) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory:  uowFactory,
		coordinator: coordinator,
		waker:       waker,
		notifier:    notifier,
	}
}

// Handle processes the status change command.
func (h *UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	updated, err := h.update(ctx, cmd)
	if err != nil {
		notifyFailure(ctx, h.notifier, ports.EventOrderStatusChanged, ptr(cmd.OrderID()), err)
		return err
	}

	if updated.Status() == order.InTransit && h.waker != nil {
		h.waker.Wake()
	}

	notifyOrder(ctx, h.notifier, ports.EventOrderStatusChanged, updated,
		updated.PONumber()+" is now "+updated.Status().String())
	return nil
}

func (h *UpdateOrderStatusCommandHandler) update(ctx context.Context, cmd UpdateOrderStatusCommand) (*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if _, err = o.Status().TransitionTo(cmd.Status()); err != nil {
		return nil, err
	}

	var pair fleetPair
	if o.HoldsFleet() {
		if pair, err = loadFleet(ctx, uow, o); err != nil {
			return nil, err
		}
	}

	if err = h.coordinator.ChangeStatus(o, pair.driver, pair.truck, cmd.Status(), time.Now().UTC()); err != nil {
		return nil, err
	}
	if cmd.Notes() != nil {
		o.AttachNotes(*cmd.Notes())
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}
	if err = pair.save(ctx, uow); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
