package commands

import (
	"context"
	"time"

	"station/internal/core/domain/model/order"
	"station/internal/core/domain/services"
	"station/internal/core/ports"
)

// CompleteDeliveryCommandHandler reconciles the delivered volume of an in-transit order.
//
// A shortage of 3 % or more flags the order, anything else completes it. Either way the
// driver and the truck are released and the driver's last trip is recorded.
//
// Example:
//
//	cmd, _ := NewCompleteDeliveryCommand(orderID, "32,000")
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return err
//	}
//	// quantity "33,000": the order is now flagged
type CompleteDeliveryCommandHandler struct {
	uowFactory  UoWFactory
	coordinator services.DeliveryCoordinator
	notifier    ports.Notifier
}

func NewCompleteDeliveryCommandHandler(
	uowFactory UoWFactory,
	coordinator services.DeliveryCoordinator,
	notifier ports.Notifier,
) CompleteDeliveryCommandHandler {
	return CompleteDeliveryCommandHandler{
		uowFactory:  uowFactory,
		coordinator: coordinator,
		notifier:    notifier,
	}
}

// Handle processes the completion command and returns the reconciliation outcome.
func (h *CompleteDeliveryCommandHandler) Handle(
	ctx context.Context,
	cmd CompleteDeliveryCommand,
) (order.Reconciliation, error) {
	if err := cmd.Validate(); err != nil {
		return order.Reconciliation{}, err
	}

	completed, r, err := h.complete(ctx, cmd)
	if err != nil {
		notifyFailure(ctx, h.notifier, ports.EventOrderCompleted, ptr(cmd.OrderID()), err)
		return order.Reconciliation{}, err
	}

	notifyOrder(ctx, h.notifier, ports.EventOrderCompleted, completed, r.Note)
	return r, nil
}

func (h *CompleteDeliveryCommandHandler) complete(
	ctx context.Context,
	cmd CompleteDeliveryCommand,
) (*order.Order, order.Reconciliation, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, order.Reconciliation{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, order.Reconciliation{}, err
	}

	if _, err = o.Status().Settle(false); err != nil {
		return nil, order.Reconciliation{}, err
	}

	pair, err := loadFleet(ctx, uow, o)
	if err != nil {
		return nil, order.Reconciliation{}, err
	}

	r, err := h.coordinator.Complete(o, pair.driver, pair.truck, cmd.VolumeDelivered(), time.Now().UTC())
	if err != nil {
		return nil, order.Reconciliation{}, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, order.Reconciliation{}, err
	}
	if err = pair.save(ctx, uow); err != nil {
		return nil, order.Reconciliation{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, order.Reconciliation{}, err
	}

	return o, r, nil
}
