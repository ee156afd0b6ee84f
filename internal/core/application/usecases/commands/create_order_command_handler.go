package commands

import (
	"context"
	"time"

	"station/internal/core/domain/model/order"
	"station/internal/core/ports"
)

// CreateOrderCommandHandler handles the business logic for order creation.
// Creates pending orders with their computed total and optional planned route.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, notifier)
//	cmd, _ := NewCreateOrderCommand(kernel.NewUUID(), "", terms, nil, nil)
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
//	// Order is now pending and waits for payment
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
// Requires an OrderUoWFactory for transactional persistence; notifier may be nil.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, notifier ports.Notifier) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the order creation command.
// A duplicate PO number is reported by the repository as a validation error.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	created, err := h.create(ctx, cmd)
	if err != nil {
		notifyFailure(ctx, h.notifier, ports.EventOrderCreated, ptr(cmd.OrderID()), err)
		return err
	}

	notifyOrder(ctx, h.notifier, ports.EventOrderCreated, created, "Order "+created.PONumber()+" created")
	return nil
}

func (h *CreateOrderCommandHandler) create(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	o, err := order.NewOrder(cmd.OrderID(), cmd.PONumber(), cmd.Terms(), time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if cmd.Origin() != nil || cmd.Destination() != nil {
		if err = o.PlanRoute(cmd.Origin(), cmd.Destination()); err != nil {
			return nil, err
		}
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
