package commands

import (
	"context"
	"time"

	"station/internal/core/domain/model/order"
	"station/internal/core/domain/services"
	"station/internal/core/ports"
)

// StartDeliveryCommandHandler dispatches an assigned active order.
// The route defaults to the configured depot and customer site, the truck goes in
// transit and the transit simulation is woken up once the departure is committed.
type StartDeliveryCommandHandler struct {
	uowFactory  UoWFactory
	coordinator services.DeliveryCoordinator
	waker       TransitWaker
	notifier    ports.Notifier
}

// NewStartDeliveryCommandHandler creates the handler. waker and notifier may be nil.
func NewStartDeliveryCommandHandler(
	uowFactory UoWFactory,
	coordinator services.DeliveryCoordinator,
	waker TransitWaker,
	notifier ports.Notifier,
) StartDeliveryCommandHandler {
	return StartDeliveryCommandHandler{
		uowFactory:  uowFactory,
		coordinator: coordinator,
		waker:       waker,
		notifier:    notifier,
	}
}

// Handle processes the departure command.
func (h *StartDeliveryCommandHandler) Handle(ctx context.Context, cmd StartDeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	departed, err := h.start(ctx, cmd)
	if err != nil {
		notifyFailure(ctx, h.notifier, ports.EventOrderDeparted, ptr(cmd.OrderID()), err)
		return err
	}

	if h.waker != nil {
		h.waker.Wake()
	}

	notifyOrder(ctx, h.notifier, ports.EventOrderDeparted, departed, departed.PONumber()+" departed from depot")
	return nil
}

func (h *StartDeliveryCommandHandler) start(ctx context.Context, cmd StartDeliveryCommand) (*order.Order, error) {
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

	if _, err = o.Status().Depart(); err != nil {
		return nil, err
	}
	if !o.IsAssigned() {
		return nil, order.ErrOrderNotAssigned
	}

	pair, err := loadFleet(ctx, uow, o)
	if err != nil {
		return nil, err
	}

	if err = h.coordinator.Depart(o, pair.driver, pair.truck, time.Now().UTC()); err != nil {
		return nil, err
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
