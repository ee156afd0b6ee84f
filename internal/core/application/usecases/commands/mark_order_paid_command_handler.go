package commands

import (
	"context"
	"time"

	"station/internal/core/domain/model/order"
	"station/internal/core/ports"
)

// MarkOrderPaidCommandHandler moves a pending order to active once its payment is verified.
// Calling it twice for the same order fails the second time because the order is no
// longer pending.
type MarkOrderPaidCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
}

func NewMarkOrderPaidCommandHandler(uowFactory OrderUoWFactory, notifier ports.Notifier) MarkOrderPaidCommandHandler {
	return MarkOrderPaidCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the payment command.
func (h *MarkOrderPaidCommandHandler) Handle(ctx context.Context, cmd MarkOrderPaidCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	paid, err := h.markPaid(ctx, cmd)
	if err != nil {
		notifyFailure(ctx, h.notifier, ports.EventOrderPaid, ptr(cmd.OrderID()), err)
		return err
	}

	notifyOrder(ctx, h.notifier, ports.EventOrderPaid, paid, "Payment verified for "+paid.PONumber())
	return nil
}

func (h *MarkOrderPaidCommandHandler) markPaid(ctx context.Context, cmd MarkOrderPaidCommand) (*order.Order, error) {
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

	if err = o.MarkPaid(cmd.PaymentReference(), time.Now().UTC()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
