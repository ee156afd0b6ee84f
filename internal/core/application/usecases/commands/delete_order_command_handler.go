package commands

import (
	"context"

	"station/internal/core/domain/model/order"
	"station/internal/core/domain/services"
	"station/internal/core/ports"
)

// DeleteOrderCommandHandler removes an order with its location updates and journey log.
//
// When the order still holds its driver and truck (active or in transit) the pair is
// released in the same transaction, without recording a trip. The deletion notification
// ends every subscription that follows the order.
type DeleteOrderCommandHandler struct {
	uowFactory  UoWFactory
	coordinator services.DeliveryCoordinator
	notifier    ports.Notifier
}

func NewDeleteOrderCommandHandler(
	uowFactory UoWFactory,
	coordinator services.DeliveryCoordinator,
	notifier ports.Notifier,
) DeleteOrderCommandHandler {
	return DeleteOrderCommandHandler{
		uowFactory:  uowFactory,
		coordinator: coordinator,
		notifier:    notifier,
	}
}

// Handle processes the deletion command.
func (h *DeleteOrderCommandHandler) Handle(ctx context.Context, cmd DeleteOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	deleted, err := h.delete(ctx, cmd)
	if err != nil {
		notifyFailure(ctx, h.notifier, ports.EventOrderDeleted, ptr(cmd.OrderID()), err)
		return err
	}

	notifyOrder(ctx, h.notifier, ports.EventOrderDeleted, deleted, "Order "+deleted.PONumber()+" deleted")
	return nil
}

func (h *DeleteOrderCommandHandler) delete(ctx context.Context, cmd DeleteOrderCommand) (*order.Order, error) {
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

	if o.HoldsFleet() {
		pair, loadErr := loadFleet(ctx, uow, o)
		if loadErr != nil {
			return nil, loadErr
		}
		if h.coordinator.Release(o, pair.driver, pair.truck) {
			if err = pair.save(ctx, uow); err != nil {
				return nil, err
			}
		}
	}

	if err = orderRepo.Delete(ctx, o.ID()); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
