package services

import (
	"errors"
	"fmt"
	"time"

	"station/internal/core/domain/model/fleet"
	"station/internal/core/domain/model/kernel"
	"station/internal/core/domain/model/order"
	"station/internal/pkg/errs"
)

// ErrFleetBindingMismatch is returned when the driver or truck handed to the coordinator
// is not the pair bound to the order.
var ErrFleetBindingMismatch = errors.New("driver and truck are not bound to the order")

// DeliveryCoordinator is a domain service that applies an order transition together with
// its side effects on the assigned driver and truck.
//
// It is the only code that changes driver and truck status as part of an order
// transition. All guards are checked before anything is mutated, so a failed call leaves
// the three aggregates untouched. Callers persist order, driver and truck in one
// transaction.
//
// Side effects per transition:
//   - Assign: driver -> on-duty with truck; truck -> in-use with driver; order keeps Active
//   - Depart: truck -> in-transit; driver stays on-duty
//   - Complete/Close: driver -> available with last trip; truck -> available; both unbound
//   - Release (order deleted): driver and truck unbound without recording a trip
//
// Example usage:
//
//	coordinator, _ := services.NewDeliveryCoordinator(depot, customer)
//	if err := coordinator.Assign(o, driver, truck, now); err != nil {
//	    return err
//	}
//	// persist o, driver and truck
type DeliveryCoordinator struct {
	depot    kernel.Coordinate
	customer kernel.Coordinate
}

// NewDeliveryCoordinator creates a coordinator using depot and customer as the default
// origin and destination of deliveries without a stored route.
func NewDeliveryCoordinator(depot, customer kernel.Coordinate) (DeliveryCoordinator, error) {
	if err := errors.Join(
		wrapParam("depot", depot.Validate()),
		wrapParam("customer", customer.Validate()),
	); err != nil {
		return DeliveryCoordinator{}, err
	}
	return DeliveryCoordinator{depot: depot, customer: customer}, nil
}

func (c DeliveryCoordinator) Depot() kernel.Coordinate {
	return c.depot
}

func (c DeliveryCoordinator) Customer() kernel.Coordinate {
	return c.customer
}

// Assign binds driver and truck to an active order.
//
// Guards:
//   - order is active and not yet assigned
//   - driver is approved or available and not bound to a truck
//   - truck is available and not bound to a driver
func (c DeliveryCoordinator) Assign(o *order.Order, d *fleet.Driver, t *fleet.Truck, at time.Time) error {
	if err := validateAggregates(o, d, t); err != nil {
		return err
	}
	if err := o.Status().ValidateAssign(); err != nil {
		return err
	}
	if o.DriverID() != nil || o.TruckID() != nil {
		return order.ErrOrderAlreadyAssigned
	}
	if err := errors.Join(d.ValidateAssignable(), t.ValidateAssignable()); err != nil {
		return err
	}

	if err := o.Assign(d.ID(), t.ID(), at); err != nil {
		return err
	}
	if err := d.GoOnDuty(t.ID()); err != nil {
		return err
	}
	return t.AssignDriver(d.ID())
}

// Depart starts the delivery of an assigned active order.
func (c DeliveryCoordinator) Depart(o *order.Order, d *fleet.Driver, t *fleet.Truck, at time.Time) error {
	if err := validateAggregates(o, d, t); err != nil {
		return err
	}
	if _, err := o.Status().Depart(); err != nil {
		return err
	}
	if err := checkBinding(o, d, t); err != nil {
		return err
	}
	if err := t.ValidateDeparture(); err != nil {
		return err
	}

	if err := o.Depart(c.depot, c.customer, at); err != nil {
		return err
	}
	return t.Depart()
}

// Complete reconciles the delivered volume and releases driver and truck.
func (c DeliveryCoordinator) Complete(
	o *order.Order,
	d *fleet.Driver,
	t *fleet.Truck,
	volumeDelivered string,
	at time.Time,
) (order.Reconciliation, error) {
	if err := validateAggregates(o, d, t); err != nil {
		return order.Reconciliation{}, err
	}
	if err := checkBinding(o, d, t); err != nil {
		return order.Reconciliation{}, err
	}

	r, err := o.Complete(volumeDelivered, at)
	if err != nil {
		return order.Reconciliation{}, err
	}

	d.EndTrip(at)
	t.Release()
	return r, nil
}

// ChangeStatus moves the order along one legal edge of the lifecycle graph and applies
// the side effects of the matching dedicated transition. Closing an in-transit order
// with Completed or Flagged releases the fleet without volume reconciliation.
//
// d and t may be nil when the order has no assignment; edges that need the fleet then fail.
func (c DeliveryCoordinator) ChangeStatus(
	o *order.Order,
	d *fleet.Driver,
	t *fleet.Truck,
	target order.Status,
	at time.Time,
) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if _, err := o.Status().TransitionTo(target); err != nil {
		return err
	}

	switch target {
	case order.Active:
		return o.MarkPaid("", at)
	case order.InTransit:
		if !o.IsAssigned() {
			return order.ErrOrderNotAssigned
		}
		return c.Depart(o, d, t, at)
	case order.Completed, order.Flagged:
		if err := validateAggregates(o, d, t); err != nil {
			return err
		}
		if err := checkBinding(o, d, t); err != nil {
			return err
		}
		if err := o.Close(target, at); err != nil {
			return err
		}
		d.EndTrip(at)
		t.Release()
		return nil
	case order.Unknown, order.Pending:
	}

	return errs.NewValueIsInvalidErrorWithCause(
		"status is invalid", fmt.Errorf("%s cannot be set explicitly", target))
}

// Release frees the driver and truck held by an order that is being removed.
// Parties that are no longer bound to the order are left untouched. It reports
// whether anything changed.
func (c DeliveryCoordinator) Release(o *order.Order, d *fleet.Driver, t *fleet.Truck) bool {
	if o == nil || !o.HoldsFleet() {
		return false
	}

	released := false
	if d != nil && kernel.EqualPtr(o.DriverID(), ptr(d.ID())) && kernel.EqualPtr(d.AssignedTruckID(), o.TruckID()) {
		d.Release()
		released = true
	}
	if t != nil && kernel.EqualPtr(o.TruckID(), ptr(t.ID())) && kernel.EqualPtr(t.AssignedDriverID(), o.DriverID()) {
		t.Release()
		released = true
	}
	return released
}

func validateAggregates(o *order.Order, d *fleet.Driver, t *fleet.Truck) error {
	return errors.Join(o.Validate(), d.Validate(), t.Validate())
}

// checkBinding verifies that order, driver and truck reference each other.
func checkBinding(o *order.Order, d *fleet.Driver, t *fleet.Truck) error {
	driverID, truckID := d.ID(), t.ID()
	if !o.IsAssigned() ||
		!kernel.EqualPtr(o.DriverID(), &driverID) ||
		!kernel.EqualPtr(o.TruckID(), &truckID) ||
		!kernel.EqualPtr(d.AssignedTruckID(), &truckID) ||
		!kernel.EqualPtr(t.AssignedDriverID(), &driverID) {
		return errs.NewValueIsInvalidErrorWithCause("order", ErrFleetBindingMismatch)
	}
	return nil
}

func wrapParam(paramName string, err error) error {
	if err == nil {
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause(paramName, err)
}

func ptr[T any](v T) *T {
	return &v
}
