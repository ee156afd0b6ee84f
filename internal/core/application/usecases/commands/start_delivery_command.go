package commands

import (
	"errors"

	"station/internal/core/domain/model/kernel"
	"station/internal/pkg/guard"
)

var ErrStartDeliveryCommandIsNotConstructed = errors.New(
	"StartDeliveryCommand must be created via NewStartDeliveryCommand constructor",
)

// StartDeliveryCommand represents the departure of an assigned order from the depot.
type StartDeliveryCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewStartDeliveryCommand(orderID kernel.UUID) (StartDeliveryCommand, error) {
	if err := orderID.Validate(); err != nil {
		return StartDeliveryCommand{}, err
	}

	return StartDeliveryCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c StartDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrStartDeliveryCommandIsNotConstructed)
}

func (c StartDeliveryCommand) OrderID() kernel.UUID {
	return c.orderID
}
