package ports

import (
	"context"

	"station/internal/core/domain/model/fleet"
	"station/internal/core/domain/model/kernel"
)

// DriverRepository defines the persistence contract for driver aggregates.
type DriverRepository interface {
	Add(ctx context.Context, driver *fleet.Driver) error
	Update(ctx context.Context, driver *fleet.Driver) error
	// Get retrieves a driver and locks its row until the surrounding transaction ends.
	Get(ctx context.Context, id kernel.UUID) (*fleet.Driver, error)
}

// TruckRepository defines the persistence contract for truck aggregates.
// Plate numbers are unique; a duplicate is reported as a validation error.
type TruckRepository interface {
	Add(ctx context.Context, truck *fleet.Truck) error
	Update(ctx context.Context, truck *fleet.Truck) error
	// Get retrieves a truck and locks its row until the surrounding transaction ends.
	Get(ctx context.Context, id kernel.UUID) (*fleet.Truck, error)
}
