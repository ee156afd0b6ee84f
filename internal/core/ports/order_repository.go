// Package ports defines the contracts between the station core and its infrastructure:
// repositories and unit of work for persistence, and the outbound notification,
// telemetry and journey event collaborators.
package ports

import (
	"context"

	"station/internal/core/domain/model/kernel"
	"station/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates and their
// append-only history.
type OrderRepository interface {
	// Add persists a new order together with the history it recorded.
	// A duplicate PO number is reported as a validation error.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists the scalar fields of an existing order and appends the
	// location updates and journey entries recorded since it was loaded.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by its identifier and locks its row until the
	// surrounding transaction ends. Malformed stored points load as absent.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// Delete removes an order together with its history.
	Delete(ctx context.Context, id kernel.UUID) error

	// ListIDsByStatus returns the identifiers of all orders in status, oldest first.
	ListIDsByStatus(ctx context.Context, status order.Status) ([]kernel.UUID, error)

	// AppendLocationUpdate stores one position sample for an order.
	AppendLocationUpdate(ctx context.Context, orderID kernel.UUID, update order.LocationUpdate) error

	// AppendJourneyInfo stores one journey log entry for an order.
	AppendJourneyInfo(ctx context.Context, orderID kernel.UUID, entry order.JourneyInfo) error
}
