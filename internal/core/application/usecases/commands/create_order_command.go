package commands

import (
	"errors"
	"strings"
	"time"

	"station/internal/core/domain/model/kernel"
	"station/internal/core/domain/model/order"
	"station/internal/pkg/errs"
	"station/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrProductTypeIsRequired = errs.NewValueIsRequiredError("productType")
)

// CreateOrderCommand represents a purchase order arriving from the external creation flow.
// Encapsulates the commercial terms and an optional planned route.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(orderID, "", order.Terms{
//	    ProductType:   "AGO",
//	    Quantity:      "33,000",
//	    PricePerLitre: "1,150.00",
//	}, nil, nil)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory, notifier)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
//	fmt.Printf("Order %s created and awaiting payment", cmd.PONumber())
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	poNumber    string
	terms       order.Terms
	origin      *kernel.Coordinate
	destination *kernel.Coordinate

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new pending order.
// An empty poNumber is replaced by a generated PO-YYYYMMDD-XXXXXX number.
// Validates the order ID, the product type and that the quantity is a positive volume;
// prices are checked when the order is built.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	poNumber string,
	terms order.Terms,
	origin, destination *kernel.Coordinate,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		origin:      origin,
		destination: destination,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOrderID(orderID),
		orderCommand.setTerms(terms),
	); err != nil {
		return CreateOrderCommand{}, err
	}
	orderCommand.setPONumber(poNumber)

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// PONumber returns the supplied or generated purchase order number.
func (c CreateOrderCommand) PONumber() string {
	return c.poNumber
}

func (c CreateOrderCommand) Terms() order.Terms {
	return c.terms
}

// Origin returns the planned loading point, or nil to use the depot.
func (c CreateOrderCommand) Origin() *kernel.Coordinate {
	return c.origin
}

// Destination returns the planned delivery point, or nil to use the customer site.
func (c CreateOrderCommand) Destination() *kernel.Coordinate {
	return c.destination
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setPONumber(poNumber string) {
	poNumber = strings.TrimSpace(poNumber)
	if poNumber == "" {
		poNumber = order.GeneratePONumber(time.Now())
	}

	c.poNumber = poNumber
}

func (c *CreateOrderCommand) setTerms(terms order.Terms) error {
	var productErr error
	if strings.TrimSpace(terms.ProductType) == "" {
		productErr = ErrProductTypeIsRequired
	}

	quantity, quantityErr := order.ParseVolume(terms.Quantity)
	if quantityErr == nil && quantity <= 0 {
		quantityErr = errs.NewValueIsOutOfRangeError("quantity", quantity, "0 (exclusive)", "unbounded")
	}

	if err := errors.Join(productErr, quantityErr); err != nil {
		return err
	}

	c.terms = terms
	return nil
}
