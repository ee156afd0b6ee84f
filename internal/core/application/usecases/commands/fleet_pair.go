package commands

import (
	"context"

	"station/internal/core/domain/model/fleet"
	"station/internal/core/domain/model/order"
)

// fleetPair is the driver and truck bound to an order, locked for the current
// transaction. Both are nil for an order without assignment.
type fleetPair struct {
	driver *fleet.Driver
	truck  *fleet.Truck
}

// loadFleet loads the pair bound to o. Callers lock the order row first; driver and
// truck rows follow in that order.
func loadFleet(ctx context.Context, uow UoW, o *order.Order) (fleetPair, error) {
	if !o.IsAssigned() {
		return fleetPair{}, nil
	}

	driver, err := uow.DriverRepository().Get(ctx, *o.DriverID())
	if err != nil {
		return fleetPair{}, err
	}

	truck, err := uow.TruckRepository().Get(ctx, *o.TruckID())
	if err != nil {
		return fleetPair{}, err
	}

	return fleetPair{driver: driver, truck: truck}, nil
}

// save persists whichever side of the pair is loaded.
func (p fleetPair) save(ctx context.Context, uow UoW) error {
	if p.driver != nil {
		if err := uow.DriverRepository().Update(ctx, p.driver); err != nil {
			return err
		}
	}
	if p.truck != nil {
		if err := uow.TruckRepository().Update(ctx, p.truck); err != nil {
			return err
		}
	}
	return nil
}
