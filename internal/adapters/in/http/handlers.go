package http

import (
	"context"

	"station/internal/core/application/usecases/commands"
	"station/internal/core/application/usecases/queries"
	"station/internal/core/domain/model/order"
)

// CommandHandler runs a state changing use case.
type CommandHandler[C any] interface {
	Handle(ctx context.Context, cmd C) error
}

// ResultHandler runs a use case that returns a result, queries included.
type ResultHandler[C, R any] interface {
	Handle(ctx context.Context, cmd C) (R, error)
}

// Handlers groups the use cases exposed over HTTP.
type Handlers struct {
	// Order lifecycle
	CreateOrder       CommandHandler[commands.CreateOrderCommand]
	MarkOrderPaid     CommandHandler[commands.MarkOrderPaidCommand]
	AssignDriverTruck CommandHandler[commands.AssignDriverAndTruckCommand]
	StartDelivery     CommandHandler[commands.StartDeliveryCommand]
	CompleteDelivery  ResultHandler[commands.CompleteDeliveryCommand, order.Reconciliation]
	UpdateOrderStatus CommandHandler[commands.UpdateOrderStatusCommand]
	DeleteOrder       CommandHandler[commands.DeleteOrderCommand]

	// Fleet registry
	CreateDriver          CommandHandler[commands.CreateDriverCommand]
	ApproveDriver         CommandHandler[commands.ApproveDriverCommand]
	SetDriverAvailability CommandHandler[commands.SetDriverAvailabilityCommand]
	CreateTruck           CommandHandler[commands.CreateTruckCommand]
	SetTruckGPS           CommandHandler[commands.SetTruckGPSCommand]
	SetTruckStatus        CommandHandler[commands.SetTruckStatusCommand]

	// Read side
	GetOrders  ResultHandler[queries.GetOrdersQuery, []queries.OrderResponse]
	GetOrder   ResultHandler[queries.GetOrderQuery, queries.OrderResponse]
	GetDrivers ResultHandler[queries.GetDriversQuery, []queries.GetDriversQueryResponse]
	GetTrucks  ResultHandler[queries.GetTrucksQuery, []queries.GetTrucksQueryResponse]
}
