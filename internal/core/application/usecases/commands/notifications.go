package commands

import (
	"context"
	"time"

	"station/internal/core/domain/model/kernel"
	"station/internal/core/domain/model/order"
	"station/internal/core/ports"
)

// notifyOrder reports the successful outcome of a lifecycle operation on o.
// Delivery is best effort: the operation is already committed.
func notifyOrder(ctx context.Context, notifier ports.Notifier, event string, o *order.Order, message string) {
	if notifier == nil || o == nil {
		return
	}

	id := o.ID()
	_ = notifier.Notify(ctx, ports.Notification{
		Kind:     ports.NotificationSuccess,
		Event:    event,
		OrderID:  &id,
		PONumber: o.PONumber(),
		Status:   o.Status().String(),
		Message:  message,
		At:       time.Now().UTC(),
	})
}

// notifyFailure reports a failed operation with its human readable cause.
// orderID is nil for fleet operations.
func notifyFailure(ctx context.Context, notifier ports.Notifier, event string, orderID *kernel.UUID, err error) {
	if notifier == nil || err == nil {
		return
	}

	_ = notifier.Notify(ctx, ports.Notification{
		Kind:    ports.NotificationError,
		Event:   event,
		OrderID: orderID,
		Message: err.Error(),
		At:      time.Now().UTC(),
	})
}

// notifyFleet reports a successful driver or truck registry change.
func notifyFleet(ctx context.Context, notifier ports.Notifier, event, status, message string) {
	if notifier == nil {
		return
	}

	_ = notifier.Notify(ctx, ports.Notification{
		Kind:    ports.NotificationSuccess,
		Event:   event,
		Status:  status,
		Message: message,
		At:      time.Now().UTC(),
	})
}

func ptr[T any](v T) *T {
	return &v
}
