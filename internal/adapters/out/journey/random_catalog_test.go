package journey_test

import (
	"testing"

	"station/internal/adapters/out/journey"
	"station/internal/core/domain/model/order"
	"station/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRandomCatalog_Invalid(t *testing.T) {
	_, err := journey.NewRandomCatalog(1.5, 1, journey.DefaultCatalog())
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	_, err = journey.NewRandomCatalog(0.5, 1, nil)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = journey.NewRandomCatalog(0.5, 1, []journey.Template{{Kind: "road work", Message: "x"}})
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestRandomCatalog_Next_NeverWithZeroProbability(t *testing.T) {
	c, err := journey.NewRandomCatalog(0, 7, journey.DefaultCatalog())
	require.NoError(t, err)

	for range 1000 {
		_, _, ok := c.Next()
		require.False(t, ok)
	}
}

func TestRandomCatalog_Next_AlwaysWithFullProbability(t *testing.T) {
	templates := []journey.Template{{Kind: order.JourneyWeather, Message: "Rain"}}
	c, err := journey.NewRandomCatalog(1, 7, templates)
	require.NoError(t, err)

	for range 100 {
		kind, message, ok := c.Next()
		require.True(t, ok)
		assert.Equal(t, order.JourneyWeather, kind)
		assert.Equal(t, "Rain", message)
	}
}

func TestRandomCatalog_Next_RateNearProbability(t *testing.T) {
	c, err := journey.NewRandomCatalog(journey.DefaultProbability, 42, journey.DefaultCatalog())
	require.NoError(t, err)

	hits := 0
	const draws = 10000
	for range draws {
		if _, _, ok := c.Next(); ok {
			hits++
		}
	}

	assert.InDelta(t, journey.DefaultProbability, float64(hits)/draws, 0.02)
}

func TestRandomCatalog_SameSeedSameSequence(t *testing.T) {
	a, err := journey.NewRandomCatalog(0.5, 99, journey.DefaultCatalog())
	require.NoError(t, err)
	b, err := journey.NewRandomCatalog(0.5, 99, journey.DefaultCatalog())
	require.NoError(t, err)

	for range 50 {
		ka, ma, oka := a.Next()
		kb, mb, okb := b.Next()
		require.Equal(t, oka, okb)
		require.Equal(t, ka, kb)
		require.Equal(t, ma, mb)
	}
}
