package commands

import (
	"errors"
	"strings"

	"station/internal/core/domain/model/kernel"
	"station/internal/pkg/guard"
)

var ErrMarkOrderPaidCommandIsNotConstructed = errors.New(
	"MarkOrderPaidCommand must be created via NewMarkOrderPaidCommand constructor",
)

// MarkOrderPaidCommand represents a verified payment for a pending order.
type MarkOrderPaidCommand struct { //nolint:recvcheck //using for validation
	orderID          kernel.UUID
	paymentReference string

	guard guard.ConstructorGuard
}

// NewMarkOrderPaidCommand creates a payment command. The payment reference is optional.
func NewMarkOrderPaidCommand(orderID kernel.UUID, paymentReference string) (MarkOrderPaidCommand, error) {
	if err := orderID.Validate(); err != nil {
		return MarkOrderPaidCommand{}, err
	}

	return MarkOrderPaidCommand{
		orderID:          orderID,
		paymentReference: strings.TrimSpace(paymentReference),
		guard:            guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkOrderPaidCommand) Validate() error {
	return c.guard.Validate(ErrMarkOrderPaidCommandIsNotConstructed)
}

func (c MarkOrderPaidCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c MarkOrderPaidCommand) PaymentReference() string {
	return c.paymentReference
}
