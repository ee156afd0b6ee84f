package commands

import (
	"errors"

	"station/internal/core/domain/model/kernel"
	"station/internal/core/domain/model/order"
	"station/internal/pkg/guard"
)

var ErrUpdateOrderStatusCommandIsNotConstructed = errors.New(
	"UpdateOrderStatusCommand must be created via NewUpdateOrderStatusCommand constructor",
)

// UpdateOrderStatusCommand represents an administrative status change along one edge of
// the lifecycle graph. Notes, when given, replace the order notes.
type UpdateOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	status  order.Status
	notes   *string

	guard guard.ConstructorGuard
}

// NewUpdateOrderStatusCommand parses status ("active", "in-transit", ...). Unknown
// statuses are rejected here; whether the edge is legal is decided by the handler.
func NewUpdateOrderStatusCommand(orderID kernel.UUID, status string, notes *string) (UpdateOrderStatusCommand, error) {
	parsed, statusErr := order.ParseStatus(status)

	if err := errors.Join(orderID.Validate(), statusErr); err != nil {
		return UpdateOrderStatusCommand{}, err
	}

	return UpdateOrderStatusCommand{
		orderID: orderID,
		status:  parsed,
		notes:   notes,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
}

func (c UpdateOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c UpdateOrderStatusCommand) Status() order.Status {
	return c.status
}

// Notes returns nil when the notes must stay unchanged.
func (c UpdateOrderStatusCommand) Notes() *string {
	return c.notes
}
