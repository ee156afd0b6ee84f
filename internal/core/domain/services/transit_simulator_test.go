package services_test

import (
	"testing"
	"time"

	"station/internal/core/domain/model/kernel"
	"station/internal/core/domain/model/order"
	"station/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedEvents struct {
	kinds []order.JourneyKind
	calls int
}

func (s *scriptedEvents) Next() (order.JourneyKind, string, bool) {
	defer func() { s.calls++ }()
	if s.calls >= len(s.kinds) || s.kinds[s.calls] == "" {
		return "", "", false
	}
	return s.kinds[s.calls], "event " + string(s.kinds[s.calls]), true
}

func newSimulator(t *testing.T, events *scriptedEvents) *services.TransitSimulator {
	t.Helper()
	sim, err := services.NewTransitSimulator(events, services.DefaultStepFraction, services.DefaultArrivalEpsilon)
	require.NoError(t, err)
	return sim
}

func inTransitOrder(t *testing.T, current *kernel.Coordinate) *order.Order {
	t.Helper()
	origin, destination := depot, customer
	o, err := order.RestoreOrder(order.State{
		ID:              kernel.NewUUID(),
		PONumber:        "PO-1",
		Terms:           order.Terms{ProductType: "PMS", Quantity: "33000", PricePerLitre: "600"},
		Origin:          &origin,
		Destination:     &destination,
		CurrentLocation: current,
		DriverID:        ptr(kernel.NewUUID()),
		TruckID:         ptr(kernel.NewUUID()),
		Status:          order.InTransit,
		CreatedAt:       now,
	})
	require.NoError(t, err)
	return o
}

func ptr[T any](v T) *T {
	return &v
}

func TestNewTransitSimulator(t *testing.T) {
	_, err := services.NewTransitSimulator(nil, 0, 0)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "journey event source")
	assert.Contains(t, err.Error(), "stepFraction")
	assert.Contains(t, err.Error(), "arrivalEpsilon")
}

func TestTransitSimulator_Advance(t *testing.T) {
	t.Run("should move five percent of remaining vector", func(t *testing.T) {
		o := inTransitOrder(t, ptr(depot))
		sim := newSimulator(t, &scriptedEvents{})

		outcome, err := sim.Advance(o, now)

		require.NoError(t, err)
		assert.Equal(t, services.TransitMoved, outcome.Step)
		expectedLng := depot.Lng() + (customer.Lng()-depot.Lng())*0.05
		expectedLat := depot.Lat() + (customer.Lat()-depot.Lat())*0.05
		assert.InDelta(t, expectedLng, o.CurrentLocation().Lng(), 1e-12)
		assert.InDelta(t, expectedLat, o.CurrentLocation().Lat(), 1e-12)
		require.Len(t, o.NewLocationUpdates(), 1)
		assert.Equal(t, now, o.NewLocationUpdates()[0].At())
		assert.Nil(t, outcome.Event)
		assert.Empty(t, o.NewJourney())
	})

	t.Run("should not mutate arrived order", func(t *testing.T) {
		near := mustCoordinate(customer.Lng()-0.0005, customer.Lat()+0.0009)
		o := inTransitOrder(t, &near)
		events := &scriptedEvents{kinds: []order.JourneyKind{order.JourneyTraffic}}
		sim := newSimulator(t, events)

		outcome, err := sim.Advance(o, now)

		require.NoError(t, err)
		assert.Equal(t, services.TransitArrived, outcome.Step)
		assert.True(t, o.CurrentLocation().IsEqual(near))
		assert.Empty(t, o.NewLocationUpdates())
		assert.Empty(t, o.NewJourney())
		assert.Zero(t, events.calls)
	})

	t.Run("should skip order without current location", func(t *testing.T) {
		o := inTransitOrder(t, nil)
		sim := newSimulator(t, &scriptedEvents{})

		outcome, err := sim.Advance(o, now)

		require.NoError(t, err)
		assert.Equal(t, services.TransitSkipped, outcome.Step)
		assert.Empty(t, o.NewLocationUpdates())
	})

	t.Run("should skip order that left transit", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), "PO-2", order.Terms{
			ProductType: "PMS", Quantity: "1", PricePerLitre: "1",
		}, now)
		require.NoError(t, err)
		sim := newSimulator(t, &scriptedEvents{})

		outcome, err := sim.Advance(o, now)

		require.NoError(t, err)
		assert.Equal(t, services.TransitSkipped, outcome.Step)
	})

	t.Run("should append journey event from source", func(t *testing.T) {
		o := inTransitOrder(t, ptr(depot))
		sim := newSimulator(t, &scriptedEvents{kinds: []order.JourneyKind{order.JourneyWeather}})

		outcome, err := sim.Advance(o, now)

		require.NoError(t, err)
		require.NotNil(t, outcome.Event)
		assert.Equal(t, order.JourneyWeather, outcome.Event.Kind())
		require.Len(t, o.NewJourney(), 1)
		assert.Equal(t, "event weather", o.NewJourney()[0].Message())
	})

	t.Run("should converge monotonically within bounded ticks", func(t *testing.T) {
		o := inTransitOrder(t, ptr(depot))
		sim := newSimulator(t, &scriptedEvents{})
		previous := 0.0
		at := now

		ticks := 0
		for ; ticks < 500; ticks++ {
			at = at.Add(5 * time.Second)
			outcome, err := sim.Advance(o, at)
			require.NoError(t, err)
			if outcome.Step == services.TransitArrived {
				break
			}

			progress := kernel.ProgressAlongRoute(o.Origin(), o.Destination(), o.CurrentLocation())
			assert.GreaterOrEqual(t, progress, previous)
			previous = progress
		}

		assert.Less(t, ticks, 500)
		assert.True(t, sim.HasArrived(*o.CurrentLocation(), customer))
		assert.Len(t, o.NewLocationUpdates(), ticks)
	})
}
