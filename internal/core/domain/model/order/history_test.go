package order_test

import (
	"testing"
	"time"

	"station/internal/core/domain/model/kernel"
	"station/internal/core/domain/model/order"
	"station/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJourneyInfo(t *testing.T) {
	t.Run("should create entry", func(t *testing.T) {
		j, err := order.NewJourneyInfo(order.JourneyTraffic, "Heavy traffic on Third Mainland Bridge", now)

		require.NoError(t, err)
		require.NoError(t, j.ID().Validate())
		assert.Equal(t, order.JourneyTraffic, j.Kind())
		assert.Equal(t, now, j.At())
	})

	t.Run("should reject empty kind and zero time", func(t *testing.T) {
		_, err := order.NewJourneyInfo("", "msg", time.Time{})

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "journey kind")
		assert.Contains(t, err.Error(), "journey timestamp")
	})

	t.Run("kind for status uses persisted status name", func(t *testing.T) {
		assert.Equal(t, order.JourneyFlagged, order.JourneyKindForStatus(order.Flagged))
		assert.Equal(t, order.JourneyInTransit, order.JourneyKindForStatus(order.InTransit))
	})
}

func TestNewLocationUpdate(t *testing.T) {
	t.Run("should create sample", func(t *testing.T) {
		u, err := order.NewLocationUpdate(depot, now)

		require.NoError(t, err)
		assert.True(t, u.Point().IsEqual(depot))
	})

	t.Run("should reject zero point", func(t *testing.T) {
		_, err := order.NewLocationUpdate(kernel.Coordinate{}, now)

		require.ErrorIs(t, err, kernel.ErrCoordinateIsNotConstructed)
	})
}
