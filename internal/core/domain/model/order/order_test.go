package order_test

import (
	"regexp"
	"testing"
	"time"

	"station/internal/core/domain/model/kernel"
	"station/internal/core/domain/model/order"
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

func validTerms() order.Terms {
	return order.Terms{
		ProductType:   "PMS",
		Quantity:      "33,000",
		PricePerLitre: "617.35",
		PaymentType:   "transfer",
	}
}

func newPendingOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), "PO-20250314-AB12CD", validTerms(), now)
	require.NoError(t, err)
	return o
}

func newActiveOrder(t *testing.T) *order.Order {
	t.Helper()
	o := newPendingOrder(t)
	require.NoError(t, o.MarkPaid("TRX-1", now))
	return o
}

func newInTransitOrder(t *testing.T) *order.Order {
	t.Helper()
	o := newActiveOrder(t)
	require.NoError(t, o.Assign(kernel.NewUUID(), kernel.NewUUID(), now))
	require.NoError(t, o.Depart(depot, customer, now))
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("should create pending order with computed total", func(t *testing.T) {
		id := kernel.NewUUID()

		o, err := order.NewOrder(id, "PO-20250314-AB12CD", validTerms(), now)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.True(t, o.ID().IsEqual(id))
		assert.Equal(t, "PO-20250314-AB12CD", o.PONumber())
		assert.Equal(t, order.Pending, o.Status())
		assert.Equal(t, "20372550.00", o.Terms().TotalAmount)
		assert.Nil(t, o.DriverID())
		assert.Nil(t, o.TruckID())
		assert.Nil(t, o.Origin())
		assert.Nil(t, o.CurrentLocation())
		assert.Equal(t, now, o.CreatedAt())
		assert.Empty(t, o.NewJourney())
	})

	t.Run("should keep supplied total", func(t *testing.T) {
		terms := validTerms()
		terms.TotalAmount = "20,000,000"

		o, err := order.NewOrder(kernel.NewUUID(), "PO-1", terms, now)

		require.NoError(t, err)
		assert.Equal(t, "20,000,000", o.Terms().TotalAmount)
	})

	t.Run("should fail with zero quantity", func(t *testing.T) {
		terms := validTerms()
		terms.Quantity = "0"

		o, err := order.NewOrder(kernel.NewUUID(), "PO-1", terms, now)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "is not greater than 0")
	})

	t.Run("should join all validation errors", func(t *testing.T) {
		o, err := order.NewOrder(kernel.UUID{}, " ", order.Terms{Quantity: "x", PricePerLitre: "y"}, time.Time{})

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "UUID must be created")
		assert.Contains(t, err.Error(), "poNumber")
		assert.Contains(t, err.Error(), "productType")
		assert.Contains(t, err.Error(), "volume")
		assert.Contains(t, err.Error(), "pricePerLitre")
		assert.Contains(t, err.Error(), "createdAt")
	})
}

func TestGeneratePONumber(t *testing.T) {
	po := order.GeneratePONumber(now)

	assert.Regexp(t, regexp.MustCompile(`^PO-20250314-[A-Z0-9]{6}$`), po)
}

func TestOrder_Validate(t *testing.T) {
	var zero order.Order
	var nilOrder *order.Order

	require.ErrorIs(t, zero.Validate(), order.ErrOrderIsNotConstructed)
	require.ErrorIs(t, nilOrder.Validate(), order.ErrOrderIsNotConstructed)
}

func TestOrder_MarkPaid(t *testing.T) {
	t.Run("should activate pending order", func(t *testing.T) {
		o := newPendingOrder(t)

		err := o.MarkPaid("TRX-99", now)

		require.NoError(t, err)
		assert.Equal(t, order.Active, o.Status())
		assert.Equal(t, "TRX-99", o.PaymentReference())
		assert.Equal(t, o.Terms().TotalAmount, o.PaymentAmount())
		require.NotNil(t, o.PaymentDate())
		assert.Equal(t, now, *o.PaymentDate())
		require.Len(t, o.NewJourney(), 1)
		assert.Equal(t, order.JourneyPayment, o.NewJourney()[0].Kind())
	})

	t.Run("should reject second payment", func(t *testing.T) {
		o := newActiveOrder(t)

		err := o.MarkPaid("TRX-2", now)

		require.Error(t, err)
		assert.Equal(t, order.Active, o.Status())
		assert.Equal(t, "TRX-1", o.PaymentReference())
	})
}

func TestOrder_Assign(t *testing.T) {
	t.Run("should bind driver and truck keeping status", func(t *testing.T) {
		o := newActiveOrder(t)
		driverID, truckID := kernel.NewUUID(), kernel.NewUUID()

		err := o.Assign(driverID, truckID, now)

		require.NoError(t, err)
		assert.Equal(t, order.Active, o.Status())
		assert.True(t, o.DriverID().IsEqual(driverID))
		assert.True(t, o.TruckID().IsEqual(truckID))
		assert.True(t, o.HoldsFleet())
		journey := o.NewJourney()
		assert.Equal(t, order.JourneyAssignment, journey[len(journey)-1].Kind())
	})

	t.Run("should require both identifiers", func(t *testing.T) {
		o := newActiveOrder(t)

		err := o.Assign(kernel.UUID{}, kernel.UUID{}, now)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "driverId")
		assert.Contains(t, err.Error(), "truckId")
		assert.Nil(t, o.DriverID())
	})

	t.Run("should reject pending order", func(t *testing.T) {
		o := newPendingOrder(t)

		err := o.Assign(kernel.NewUUID(), kernel.NewUUID(), now)

		require.Error(t, err)
		assert.Nil(t, o.DriverID())
	})

	t.Run("should reject second assignment", func(t *testing.T) {
		o := newActiveOrder(t)
		first := kernel.NewUUID()
		require.NoError(t, o.Assign(first, kernel.NewUUID(), now))

		err := o.Assign(kernel.NewUUID(), kernel.NewUUID(), now)

		require.ErrorIs(t, err, order.ErrOrderAlreadyAssigned)
		assert.True(t, o.DriverID().IsEqual(first))
	})
}

func TestOrder_Depart(t *testing.T) {
	t.Run("should default route and start at origin", func(t *testing.T) {
		o := newActiveOrder(t)
		require.NoError(t, o.Assign(kernel.NewUUID(), kernel.NewUUID(), now))

		err := o.Depart(depot, customer, now)

		require.NoError(t, err)
		assert.Equal(t, order.InTransit, o.Status())
		require.NotNil(t, o.Origin())
		require.NotNil(t, o.Destination())
		require.NotNil(t, o.CurrentLocation())
		assert.True(t, o.Origin().IsEqual(depot))
		assert.True(t, o.Destination().IsEqual(customer))
		assert.True(t, o.CurrentLocation().IsEqual(depot))
		journey := o.NewJourney()
		last := journey[len(journey)-1]
		assert.Equal(t, order.JourneyInfoKind, last.Kind())
		assert.Equal(t, "Departed from depot", last.Message())
	})

	t.Run("should keep existing route", func(t *testing.T) {
		origin := mustCoordinate(3.30, 6.50)
		destination := mustCoordinate(3.50, 6.40)
		o, err := order.RestoreOrder(order.State{
			ID:          kernel.NewUUID(),
			PONumber:    "PO-1",
			Terms:       validTerms(),
			Origin:      &origin,
			Destination: &destination,
			DriverID:    ptr(kernel.NewUUID()),
			TruckID:     ptr(kernel.NewUUID()),
			Status:      order.Active,
			CreatedAt:   now,
		})
		require.NoError(t, err)

		require.NoError(t, o.Depart(depot, customer, now))

		assert.True(t, o.Origin().IsEqual(origin))
		assert.True(t, o.Destination().IsEqual(destination))
		assert.True(t, o.CurrentLocation().IsEqual(origin))
	})

	t.Run("should require assignment", func(t *testing.T) {
		o := newActiveOrder(t)

		err := o.Depart(depot, customer, now)

		require.ErrorIs(t, err, order.ErrOrderNotAssigned)
		assert.Equal(t, order.Active, o.Status())
	})
}

func TestOrder_PlanRoute(t *testing.T) {
	t.Run("should keep destination when only origin is given", func(t *testing.T) {
		o := newPendingOrder(t)
		destination := mustCoordinate(3.50, 6.40)
		require.NoError(t, o.PlanRoute(nil, &destination))

		require.NoError(t, o.PlanRoute(&depot, nil))

		assert.True(t, o.Origin().IsEqual(depot))
		assert.True(t, o.Destination().IsEqual(destination))
	})

	t.Run("should reject unconstructed coordinate", func(t *testing.T) {
		o := newPendingOrder(t)

		err := o.PlanRoute(&kernel.Coordinate{}, nil)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Nil(t, o.Origin())
	})

	t.Run("should reject order in transit", func(t *testing.T) {
		o := newInTransitOrder(t)

		err := o.PlanRoute(&depot, &customer)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestOrder_Complete(t *testing.T) {
	t.Run("should flag shortage of three percent", func(t *testing.T) {
		o := newInTransitOrder(t)

		r, err := o.Complete("32,000", now)

		require.NoError(t, err)
		assert.True(t, r.Flagged)
		assert.Equal(t, order.Flagged, o.Status())
		require.NotNil(t, o.VolumeAtLoading())
		require.NotNil(t, o.VolumeAtDelivery())
		assert.InDelta(t, 33000, *o.VolumeAtLoading(), 1e-9)
		assert.InDelta(t, 32000, *o.VolumeAtDelivery(), 1e-9)
		assert.Contains(t, o.Notes(), "3.03%")
		require.NotNil(t, o.DeliveryDate())
		journey := o.NewJourney()
		assert.Equal(t, order.JourneyFlagged, journey[len(journey)-1].Kind())
	})

	t.Run("should complete small shortage", func(t *testing.T) {
		o := newInTransitOrder(t)

		_, err := o.Complete("32,700", now)

		require.NoError(t, err)
		assert.Equal(t, order.Completed, o.Status())
		assert.False(t, o.HoldsFleet())
	})

	t.Run("should leave order unchanged on unparsable volume", func(t *testing.T) {
		o := newInTransitOrder(t)
		before := len(o.NewJourney())

		_, err := o.Complete("a lot", now)

		require.Error(t, err)
		assert.Equal(t, order.InTransit, o.Status())
		assert.Nil(t, o.VolumeAtDelivery())
		assert.Len(t, o.NewJourney(), before)
	})

	t.Run("should reject order not in transit", func(t *testing.T) {
		o := newActiveOrder(t)

		_, err := o.Complete("33,000", now)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "not a valid status to complete delivery")
	})
}

func TestOrder_Close(t *testing.T) {
	t.Run("should close without reconciliation", func(t *testing.T) {
		o := newInTransitOrder(t)

		err := o.Close(order.Completed, now)

		require.NoError(t, err)
		assert.Equal(t, order.Completed, o.Status())
		assert.Nil(t, o.VolumeAtDelivery())
		require.NotNil(t, o.DeliveryDate())
	})

	t.Run("should reject illegal edge", func(t *testing.T) {
		o := newActiveOrder(t)

		err := o.Close(order.Flagged, now)

		require.Error(t, err)
		assert.Equal(t, order.Active, o.Status())
	})
}

func TestOrder_RecordPosition(t *testing.T) {
	t.Run("should move in-transit order and record update", func(t *testing.T) {
		o := newInTransitOrder(t)
		next := mustCoordinate(3.38, 6.52)

		err := o.RecordPosition(next, now.Add(5*time.Second))

		require.NoError(t, err)
		assert.True(t, o.CurrentLocation().IsEqual(next))
		updates := o.NewLocationUpdates()
		require.Len(t, updates, 1)
		assert.True(t, updates[0].Point().IsEqual(next))
		assert.Equal(t, now.Add(5*time.Second), updates[0].At())
	})

	t.Run("should reject order not in transit", func(t *testing.T) {
		o := newActiveOrder(t)

		err := o.RecordPosition(depot, now)

		require.Error(t, err)
		assert.Empty(t, o.NewLocationUpdates())
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("should reject in-transit order without assignment", func(t *testing.T) {
		_, err := order.RestoreOrder(order.State{
			ID:        kernel.NewUUID(),
			PONumber:  "PO-1",
			Terms:     validTerms(),
			Status:    order.InTransit,
			CreatedAt: now,
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "requires driver and truck")
	})

	t.Run("should reject half assignment", func(t *testing.T) {
		_, err := order.RestoreOrder(order.State{
			ID:        kernel.NewUUID(),
			PONumber:  "PO-1",
			Terms:     validTerms(),
			DriverID:  ptr(kernel.NewUUID()),
			Status:    order.Active,
			CreatedAt: now,
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "assigned together")
	})

	t.Run("should reject unknown status", func(t *testing.T) {
		_, err := order.RestoreOrder(order.State{
			ID:        kernel.NewUUID(),
			PONumber:  "PO-1",
			Terms:     validTerms(),
			CreatedAt: now,
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "status is invalid")
	})
}

func ptr[T any](v T) *T {
	return &v
}
