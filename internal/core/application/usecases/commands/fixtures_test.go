package commands_test

import (
	"testing"
	"time"

	"station/internal/core/domain/model/fleet"
	"station/internal/core/domain/model/kernel"
	"station/internal/core/domain/model/order"
	"station/internal/core/domain/services"

	"github.com/stretchr/testify/require"
)

var (
	now      = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	depot    = mustCoordinate(3.3792, 6.5244)
	customer = mustCoordinate(3.4219, 6.4281)
)

func mustCoordinate(lng, lat float64) kernel.Coordinate {
	c, err := kernel.NewCoordinate(lng, lat)
	if err != nil {
		panic(err)
	}
	return c
}

func validTerms() order.Terms {
	return order.Terms{ProductType: "AGO", Quantity: "33,000", PricePerLitre: "1150"}
}

func newCoordinator(t *testing.T) services.DeliveryCoordinator {
	t.Helper()
	c, err := services.NewDeliveryCoordinator(depot, customer)
	require.NoError(t, err)
	return c
}

func newPendingOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), "PO-20250314-ABCDEF", validTerms(), now)
	require.NoError(t, err)
	return o
}

func newActiveOrder(t *testing.T) *order.Order {
	t.Helper()
	o := newPendingOrder(t)
	require.NoError(t, o.MarkPaid("TRX-1", now))
	return o
}

func newApprovedDriver(t *testing.T) *fleet.Driver {
	t.Helper()
	d, err := fleet.NewDriver(kernel.NewUUID(), "Chinedu Eze", "LAG-88213", "", "")
	require.NoError(t, err)
	require.NoError(t, d.Approve())
	return d
}

func newTruck(t *testing.T) *fleet.Truck {
	t.Helper()
	tr, err := fleet.NewTruck(kernel.NewUUID(), "KJA-452-XE", "MAN TGS", 33000, 400)
	require.NoError(t, err)
	return tr
}

type delivery struct {
	order  *order.Order
	driver *fleet.Driver
	truck  *fleet.Truck
}

func newAssignedDelivery(t *testing.T) delivery {
	t.Helper()
	d := delivery{order: newActiveOrder(t), driver: newApprovedDriver(t), truck: newTruck(t)}
	require.NoError(t, newCoordinator(t).Assign(d.order, d.driver, d.truck, now))
	return d
}

func newInTransitDelivery(t *testing.T) delivery {
	t.Helper()
	d := newAssignedDelivery(t)
	require.NoError(t, newCoordinator(t).Depart(d.order, d.driver, d.truck, now))
	return d
}

// newUoW returns a unit of work whose repository accessors always hand out the given
// repositories.
func newUoW(orders *MockOrderRepository, drivers *MockDriverRepository, trucks *MockTruckRepository) *MockUoW {
	uow := new(MockUoW)
	uow.On("OrderRepository").Return(orders).Maybe()
	uow.On("DriverRepository").Return(drivers).Maybe()
	uow.On("TruckRepository").Return(trucks).Maybe()
	return uow
}
