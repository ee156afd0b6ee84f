package ports

import (
	"context"
	"time"

	"station/internal/core/domain/model/kernel"
)

// NotificationKind tells a user-facing sink how to render a notification.
type NotificationKind string

const (
	NotificationSuccess NotificationKind = "success"
	NotificationError   NotificationKind = "error"
)

// Notification describes the outcome of a lifecycle operation.
// OrderID is nil for fleet operations.
type Notification struct {
	Kind     NotificationKind `json:"kind"`
	Event    string           `json:"event"`
	OrderID  *kernel.UUID     `json:"orderId,omitempty"`
	PONumber string           `json:"poNumber,omitempty"`
	Status   string           `json:"status,omitempty"`
	Message  string           `json:"message"`
	At       time.Time        `json:"at"`
}

// Notifier delivers notifications to users and other systems.
// Implementations must not block the caller for long; delivery failures are
// reported through the returned error and never roll back the operation.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// Events carried by notifications.
const (
	EventOrderCreated       = "order.created"
	EventOrderPaid          = "order.paid"
	EventOrderAssigned      = "order.assigned"
	EventOrderDeparted      = "order.departed"
	EventOrderCompleted     = "order.completed"
	EventOrderStatusChanged = "order.status_changed"
	EventOrderDeleted       = "order.deleted"
	EventDriverChanged      = "driver.changed"
	EventTruckChanged       = "truck.changed"
)
