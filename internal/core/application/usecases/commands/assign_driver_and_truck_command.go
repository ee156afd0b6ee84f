package commands

import (
	"errors"

	"station/internal/core/domain/model/kernel"
	"station/internal/pkg/errs"
	"station/internal/pkg/guard"
)

var ErrAssignDriverAndTruckCommandIsNotConstructed = errors.New(
	"AssignDriverAndTruckCommand must be created via NewAssignDriverAndTruckCommand constructor",
)

// AssignDriverAndTruckCommand represents the dispatch of one driver and one truck to an
// active order.
//
// Example:
//
//	cmd, err := NewAssignDriverAndTruckCommand(orderID, driverID, truckID)
//	if err != nil {
//	    return err // 400: missing driverId or truckId
//	}
//	err = handler.Handle(ctx, cmd)
type AssignDriverAndTruckCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	driverID kernel.UUID
	truckID  kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignDriverAndTruckCommand validates that all three identifiers are present.
func NewAssignDriverAndTruckCommand(orderID, driverID, truckID kernel.UUID) (AssignDriverAndTruckCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		requiredID("driverId", driverID),
		requiredID("truckId", truckID),
	); err != nil {
		return AssignDriverAndTruckCommand{}, err
	}

	return AssignDriverAndTruckCommand{
		orderID:  orderID,
		driverID: driverID,
		truckID:  truckID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c AssignDriverAndTruckCommand) Validate() error {
	return c.guard.Validate(ErrAssignDriverAndTruckCommandIsNotConstructed)
}

func (c AssignDriverAndTruckCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c AssignDriverAndTruckCommand) DriverID() kernel.UUID {
	return c.driverID
}

func (c AssignDriverAndTruckCommand) TruckID() kernel.UUID {
	return c.truckID
}

func requiredID(paramName string, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(paramName, err)
	}
	return nil
}
