package postgres_test

import (
	"context"
	"log/slog"
	"sync/atomic"

	"station/internal/adapters/out/journey"
	"station/internal/core/application/usecases/commands"
	"station/internal/core/application/usecases/queries"
	"station/internal/core/domain/model/fleet"
	"station/internal/core/domain/model/kernel"
	"station/internal/core/domain/model/order"
	"station/internal/core/domain/services"
	"station/internal/pkg/errs"
)

type uowFactory struct {
	suite *UnitOfWorkIntegrationTestSuite
}

func (f uowFactory) Create() commands.UoW {
	return f.suite.factory.Create()
}

type orderUoWFactory struct {
	suite *UnitOfWorkIntegrationTestSuite
}

func (f orderUoWFactory) Create() commands.OrderUoW {
	return f.suite.factory.Create()
}

type driverUoWFactory struct {
	suite *UnitOfWorkIntegrationTestSuite
}

func (f driverUoWFactory) Create() commands.DriverUoW {
	return f.suite.factory.Create()
}

type truckUoWFactory struct {
	suite *UnitOfWorkIntegrationTestSuite
}

func (f truckUoWFactory) Create() commands.TruckUoW {
	return f.suite.factory.Create()
}

type countingWaker struct {
	wakes atomic.Int32
}

func (w *countingWaker) Wake() {
	w.wakes.Add(1)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestLifecycle_EndToEnd() {
	ctx := context.Background()
	logger := slog.New(slog.DiscardHandler)

	coordinator, err := services.NewDeliveryCoordinator(depot, customer)
	suite.Require().NoError(err)
	quiet, err := journey.NewRandomCatalog(0, 1, journey.DefaultCatalog())
	suite.Require().NoError(err)
	simulator, err := services.NewTransitSimulator(quiet, services.DefaultStepFraction, services.DefaultArrivalEpsilon)
	suite.Require().NoError(err)
	waker := &countingWaker{}

	full := uowFactory{suite: suite}
	createOrder := commands.NewCreateOrderCommandHandler(orderUoWFactory{suite: suite}, nil)
	markPaid := commands.NewMarkOrderPaidCommandHandler(orderUoWFactory{suite: suite}, nil)
	createDriver := commands.NewCreateDriverCommandHandler(driverUoWFactory{suite: suite}, nil)
	approveDriver := commands.NewApproveDriverCommandHandler(driverUoWFactory{suite: suite}, nil)
	createTruck := commands.NewCreateTruckCommandHandler(truckUoWFactory{suite: suite}, nil)
	assign := commands.NewAssignDriverAndTruckCommandHandler(full, coordinator, nil)
	start := commands.NewStartDeliveryCommandHandler(full, coordinator, waker, nil)
	advance := commands.NewAdvanceTransitCommandHandler(full, simulator, nil, logger)
	complete := commands.NewCompleteDeliveryCommandHandler(full, coordinator, nil)
	deleteOrder := commands.NewDeleteOrderCommandHandler(full, coordinator, nil)
	getOrder := queries.NewGetOrderQueryHandler(suite.db)
	getOrders := queries.NewGetOrdersQueryHandler(suite.db)

	// Order placed and paid.
	createCmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), "", order.Terms{
		ProductType:   "AGO",
		Quantity:      "33,000",
		PricePerLitre: "1,150.00",
	}, nil, nil)
	suite.Require().NoError(err)
	suite.Require().NoError(createOrder.Handle(ctx, createCmd))
	orderID := createCmd.OrderID()

	paidCmd, err := commands.NewMarkOrderPaidCommand(orderID, "TRX-1")
	suite.Require().NoError(err)
	suite.Require().NoError(markPaid.Handle(ctx, paidCmd))
	suite.Equal(order.Active.String(), suite.snapshot(ctx, getOrder, orderID).Status)

	// Fleet registered.
	driverCmd, err := commands.NewCreateDriverCommand(kernel.NewUUID(), "Musa Ibrahim", "LAG-9", "", "")
	suite.Require().NoError(err)
	suite.Require().NoError(createDriver.Handle(ctx, driverCmd))
	approveCmd, err := commands.NewApproveDriverCommand(driverCmd.DriverID())
	suite.Require().NoError(err)
	suite.Require().NoError(approveDriver.Handle(ctx, approveCmd))
	truckCmd, err := commands.NewCreateTruckCommand(kernel.NewUUID(), "LND-310-AA", "Scania", 33000, 400)
	suite.Require().NoError(err)
	suite.Require().NoError(createTruck.Handle(ctx, truckCmd))

	// Assignment keeps the order active.
	assignCmd, err := commands.NewAssignDriverAndTruckCommand(orderID, driverCmd.DriverID(), truckCmd.TruckID())
	suite.Require().NoError(err)
	suite.Require().NoError(assign.Handle(ctx, assignCmd))
	suite.Equal(order.Active.String(), suite.snapshot(ctx, getOrder, orderID).Status)
	suite.Equal(fleet.DriverOnDuty, suite.driver(ctx, driverCmd.DriverID()).Status())
	suite.Equal(fleet.TruckInUse, suite.truck(ctx, truckCmd.TruckID()).Status())

	// Departure.
	startCmd, err := commands.NewStartDeliveryCommand(orderID)
	suite.Require().NoError(err)
	suite.Require().NoError(start.Handle(ctx, startCmd))
	suite.Equal(int32(1), waker.wakes.Load())
	departed := suite.snapshot(ctx, getOrder, orderID)
	suite.Equal(order.InTransit.String(), departed.Status)
	suite.Require().NotNil(departed.CurrentLocation)
	suite.True(departed.CurrentLocation.IsEqual(depot))
	suite.Equal(fleet.TruckInTransit, suite.truck(ctx, truckCmd.TruckID()).Status())

	// Ticks move the order toward the customer.
	previous := departed.ProgressPercent
	for range 10 {
		result, tickErr := advance.Handle(ctx, commands.NewAdvanceTransitCommand())
		suite.Require().NoError(tickErr)
		suite.Equal(1, result.InTransit)
		suite.Equal(1, result.Moved)

		progress := suite.snapshot(ctx, getOrder, orderID).ProgressPercent
		suite.Greater(progress, previous)
		previous = progress
	}
	suite.Len(suite.snapshot(ctx, getOrder, orderID).LocationUpdates, 10)

	// Completion with the full volume releases the fleet.
	completeCmd, err := commands.NewCompleteDeliveryCommand(orderID, "33,000")
	suite.Require().NoError(err)
	r, err := complete.Handle(ctx, completeCmd)
	suite.Require().NoError(err)
	suite.False(r.Flagged)
	suite.Equal(order.Completed.String(), suite.snapshot(ctx, getOrder, orderID).Status)
	suite.Equal(fleet.DriverAvailable, suite.driver(ctx, driverCmd.DriverID()).Status())
	suite.Equal(fleet.TruckAvailable, suite.truck(ctx, truckCmd.TruckID()).Status())

	result, err := advance.Handle(ctx, commands.NewAdvanceTransitCommand())
	suite.Require().NoError(err)
	suite.Zero(result.InTransit)

	// Deletion removes the order from the listing.
	deleteCmd, err := commands.NewDeleteOrderCommand(orderID)
	suite.Require().NoError(err)
	suite.Require().NoError(deleteOrder.Handle(ctx, deleteCmd))

	orders, err := getOrders.Handle(ctx, queries.NewGetOrdersQuery())
	suite.Require().NoError(err)
	suite.Empty(orders)

	query, err := queries.NewGetOrderQuery(orderID)
	suite.Require().NoError(err)
	_, err = getOrder.Handle(ctx, query)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) snapshot(
	ctx context.Context,
	handler queries.GetOrderQueryHandler,
	id kernel.UUID,
) queries.OrderResponse {
	query, err := queries.NewGetOrderQuery(id)
	suite.Require().NoError(err)
	o, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)
	return o
}

func (suite *UnitOfWorkIntegrationTestSuite) driver(ctx context.Context, id kernel.UUID) *fleet.Driver {
	d, err := suite.factory.Create().DriverRepository().Get(ctx, id)
	suite.Require().NoError(err)
	return d
}

func (suite *UnitOfWorkIntegrationTestSuite) truck(ctx context.Context, id kernel.UUID) *fleet.Truck {
	t, err := suite.factory.Create().TruckRepository().Get(ctx, id)
	suite.Require().NoError(err)
	return t
}
