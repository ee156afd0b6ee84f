package services_test

import (
	"testing"
	"time"

	"station/internal/core/domain/model/fleet"
	"station/internal/core/domain/model/kernel"
	"station/internal/core/domain/model/order"
	"station/internal/core/domain/services"
	"station/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
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

type fixture struct {
	coordinator services.DeliveryCoordinator
	order       *order.Order
	driver      *fleet.Driver
	truck       *fleet.Truck
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	coordinator, err := services.NewDeliveryCoordinator(depot, customer)
	require.NoError(t, err)

	o, err := order.NewOrder(kernel.NewUUID(), "PO-20250314-AAAAAA", order.Terms{
		ProductType:   "AGO",
		Quantity:      "33,000",
		PricePerLitre: "1200",
	}, now)
	require.NoError(t, err)
	require.NoError(t, o.MarkPaid("", now))

	d, err := fleet.NewDriver(kernel.NewUUID(), "Adaeze Okafor", "LAG-1", "", "")
	require.NoError(t, err)
	require.NoError(t, d.Approve())

	tr, err := fleet.NewTruck(kernel.NewUUID(), "KJA-452-XE", "MAN", 33000, 400)
	require.NoError(t, err)

	return fixture{coordinator: coordinator, order: o, driver: d, truck: tr}
}

func (f fixture) assign(t *testing.T) fixture {
	t.Helper()
	require.NoError(t, f.coordinator.Assign(f.order, f.driver, f.truck, now))
	return f
}

func (f fixture) depart(t *testing.T) fixture {
	t.Helper()
	require.NoError(t, f.coordinator.Depart(f.order, f.driver, f.truck, now))
	return f
}

func TestNewDeliveryCoordinator(t *testing.T) {
	_, err := services.NewDeliveryCoordinator(kernel.Coordinate{}, customer)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "depot")
}

func TestDeliveryCoordinator_Assign(t *testing.T) {
	t.Run("should pair driver and truck", func(t *testing.T) {
		f := newFixture(t).assign(t)

		assert.Equal(t, order.Active, f.order.Status())
		assert.Equal(t, fleet.DriverOnDuty, f.driver.Status())
		assert.True(t, f.driver.AssignedTruckID().IsEqual(f.truck.ID()))
		assert.Equal(t, fleet.TruckInUse, f.truck.Status())
		assert.True(t, f.truck.AssignedDriverID().IsEqual(f.driver.ID()))
		assert.True(t, f.order.DriverID().IsEqual(f.driver.ID()))
		assert.True(t, f.order.TruckID().IsEqual(f.truck.ID()))
	})

	t.Run("should reject driver already bound to another truck and change nothing", func(t *testing.T) {
		f := newFixture(t)
		otherTruck := kernel.NewUUID()
		require.NoError(t, f.driver.GoOnDuty(otherTruck))

		err := f.coordinator.Assign(f.order, f.driver, f.truck, now)

		require.ErrorIs(t, err, fleet.ErrDriverNotAssignable)
		assert.Nil(t, f.order.DriverID())
		assert.Nil(t, f.order.TruckID())
		assert.True(t, f.driver.AssignedTruckID().IsEqual(otherTruck))
		assert.Equal(t, fleet.TruckAvailable, f.truck.Status())
		assert.Nil(t, f.truck.AssignedDriverID())
		assert.Len(t, f.order.NewJourney(), 1)
	})

	t.Run("should reject truck in maintenance and change nothing", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.truck.SetStatus(fleet.TruckMaintenance))

		err := f.coordinator.Assign(f.order, f.driver, f.truck, now)

		require.ErrorIs(t, err, fleet.ErrTruckNotAssignable)
		assert.Equal(t, fleet.DriverApproved, f.driver.Status())
		assert.Nil(t, f.order.DriverID())
	})

	t.Run("should reject second assignment", func(t *testing.T) {
		f := newFixture(t).assign(t)
		otherDriver, err := fleet.NewDriver(kernel.NewUUID(), "B", "L2", "", "")
		require.NoError(t, err)
		require.NoError(t, otherDriver.Approve())
		otherTruck, err := fleet.NewTruck(kernel.NewUUID(), "P2", "M", 1, 1)
		require.NoError(t, err)

		err = f.coordinator.Assign(f.order, otherDriver, otherTruck, now)

		require.ErrorIs(t, err, order.ErrOrderAlreadyAssigned)
		assert.Equal(t, fleet.DriverApproved, otherDriver.Status())
		assert.Equal(t, fleet.TruckAvailable, otherTruck.Status())
	})

	t.Run("should reject missing aggregates", func(t *testing.T) {
		f := newFixture(t)

		err := f.coordinator.Assign(f.order, nil, f.truck, now)

		require.ErrorIs(t, err, fleet.ErrDriverIsNotConstructed)
	})
}

func TestDeliveryCoordinator_Depart(t *testing.T) {
	t.Run("should put truck in transit and keep driver on duty", func(t *testing.T) {
		f := newFixture(t).assign(t).depart(t)

		assert.Equal(t, order.InTransit, f.order.Status())
		assert.Equal(t, fleet.TruckInTransit, f.truck.Status())
		assert.Equal(t, fleet.DriverOnDuty, f.driver.Status())
		assert.True(t, f.order.Origin().IsEqual(depot))
		assert.True(t, f.order.Destination().IsEqual(customer))
	})

	t.Run("should reject foreign truck", func(t *testing.T) {
		f := newFixture(t).assign(t)
		foreign, err := fleet.NewTruck(kernel.NewUUID(), "P9", "M", 1, 1)
		require.NoError(t, err)

		err = f.coordinator.Depart(f.order, f.driver, foreign, now)

		require.ErrorIs(t, err, services.ErrFleetBindingMismatch)
		assert.Equal(t, order.Active, f.order.Status())
	})
}

func TestDeliveryCoordinator_Complete(t *testing.T) {
	t.Run("should release fleet after reconciliation", func(t *testing.T) {
		f := newFixture(t).assign(t).depart(t)

		r, err := f.coordinator.Complete(f.order, f.driver, f.truck, "33,000", now)

		require.NoError(t, err)
		assert.False(t, r.Flagged)
		assert.Equal(t, order.Completed, f.order.Status())
		assert.Equal(t, fleet.DriverAvailable, f.driver.Status())
		assert.Nil(t, f.driver.AssignedTruckID())
		require.NotNil(t, f.driver.LastTrip())
		assert.Equal(t, fleet.TruckAvailable, f.truck.Status())
		assert.Nil(t, f.truck.AssignedDriverID())
	})

	t.Run("should flag shortage", func(t *testing.T) {
		f := newFixture(t).assign(t).depart(t)

		r, err := f.coordinator.Complete(f.order, f.driver, f.truck, "32,000", now)

		require.NoError(t, err)
		assert.True(t, r.Flagged)
		assert.Equal(t, order.Flagged, f.order.Status())
	})

	t.Run("should keep fleet bound on unparsable volume", func(t *testing.T) {
		f := newFixture(t).assign(t).depart(t)

		_, err := f.coordinator.Complete(f.order, f.driver, f.truck, "n/a", now)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, fleet.DriverOnDuty, f.driver.Status())
		assert.Equal(t, fleet.TruckInTransit, f.truck.Status())
	})
}

func TestDeliveryCoordinator_ChangeStatus(t *testing.T) {
	t.Run("pending to active marks paid", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), "PO-1", order.Terms{
			ProductType: "PMS", Quantity: "1000", PricePerLitre: "600",
		}, now)
		require.NoError(t, err)
		coordinator, err := services.NewDeliveryCoordinator(depot, customer)
		require.NoError(t, err)

		require.NoError(t, coordinator.ChangeStatus(o, nil, nil, order.Active, now))

		assert.Equal(t, order.Active, o.Status())
		assert.NotNil(t, o.PaymentDate())
	})

	t.Run("active to in-transit departs", func(t *testing.T) {
		f := newFixture(t).assign(t)

		require.NoError(t, f.coordinator.ChangeStatus(f.order, f.driver, f.truck, order.InTransit, now))

		assert.Equal(t, fleet.TruckInTransit, f.truck.Status())
	})

	t.Run("in-transit to flagged releases fleet without reconciliation", func(t *testing.T) {
		f := newFixture(t).assign(t).depart(t)

		require.NoError(t, f.coordinator.ChangeStatus(f.order, f.driver, f.truck, order.Flagged, now))

		assert.Equal(t, order.Flagged, f.order.Status())
		assert.Nil(t, f.order.VolumeAtDelivery())
		assert.Equal(t, fleet.DriverAvailable, f.driver.Status())
		assert.Equal(t, fleet.TruckAvailable, f.truck.Status())
	})

	t.Run("illegal edge fails", func(t *testing.T) {
		f := newFixture(t)

		err := f.coordinator.ChangeStatus(f.order, f.driver, f.truck, order.Completed, now)

		require.Error(t, err)
		assert.Equal(t, order.Active, f.order.Status())
	})

	t.Run("active to in-transit without assignment fails", func(t *testing.T) {
		f := newFixture(t)

		err := f.coordinator.ChangeStatus(f.order, nil, nil, order.InTransit, now)

		require.ErrorIs(t, err, order.ErrOrderNotAssigned)
		assert.Equal(t, order.Active, f.order.Status())
	})
}

func TestDeliveryCoordinator_Release(t *testing.T) {
	t.Run("should release pair held by active order", func(t *testing.T) {
		f := newFixture(t).assign(t).depart(t)

		released := f.coordinator.Release(f.order, f.driver, f.truck)

		assert.True(t, released)
		assert.Equal(t, fleet.DriverAvailable, f.driver.Status())
		assert.Nil(t, f.driver.LastTrip())
		assert.Equal(t, fleet.TruckAvailable, f.truck.Status())
	})

	t.Run("should not touch fleet of finished order", func(t *testing.T) {
		f := newFixture(t).assign(t).depart(t)
		_, err := f.coordinator.Complete(f.order, f.driver, f.truck, "33000", now)
		require.NoError(t, err)
		require.NoError(t, f.driver.GoOnDuty(kernel.NewUUID()))

		released := f.coordinator.Release(f.order, f.driver, f.truck)

		assert.False(t, released)
		assert.Equal(t, fleet.DriverOnDuty, f.driver.Status())
	})
}
