package queries

import (
	"context"

	"station/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrdersQueryHandler reads order snapshots straight from the database, bypassing
// the aggregates. The progress of each order is derived from its route and current
// location.
type GetOrdersQueryHandler struct {
	reader orderReader
}

func NewGetOrdersQueryHandler(db *gorm.DB) GetOrdersQueryHandler {
	return GetOrdersQueryHandler{reader: orderReader{db: db}}
}

// Handle returns all orders, newest first. An empty database yields an empty slice.
func (h GetOrdersQueryHandler) Handle(ctx context.Context, query GetOrdersQuery) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return h.reader.read(ctx, nil)
}

// GetOrderQueryHandler reads a single order snapshot.
type GetOrderQueryHandler struct {
	reader orderReader
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{reader: orderReader{db: db}}
}

// Handle returns the order or an ObjectNotFoundError.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderResponse{}, err
	}

	id := query.OrderID()
	orders, err := h.reader.read(ctx, &id)
	if err != nil {
		return OrderResponse{}, err
	}

	if len(orders) == 0 {
		return OrderResponse{}, errs.NewObjectNotFoundError("order", id.String())
	}

	return orders[0], nil
}
