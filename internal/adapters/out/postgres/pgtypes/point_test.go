package pgtypes_test

import (
	"errors"
	"fmt"
	"testing"

	"station/internal/adapters/out/postgres/pgtypes"
	"station/internal/core/domain/model/kernel"
	"station/internal/pkg/errs"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestPoint_Value(t *testing.T) {
	c, err := kernel.NewCoordinate(3.3792, 6.5244)
	require.NoError(t, err)

	v, err := pgtypes.NewPoint(&c).Value()
	require.NoError(t, err)
	assert.Equal(t, kernel.FormatCoordinate(c), v)

	v, err = pgtypes.NewPoint(nil).Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestPoint_Scan(t *testing.T) {
	tests := []struct {
		name  string
		src   any
		valid bool
	}{
		{name: "bytes from lib/pq", src: []byte("(3.3792,6.5244)"), valid: true},
		{name: "string from pgx", src: "(3.3792,6.5244)", valid: true},
		{name: "null", src: nil, valid: false},
		{name: "not finite", src: "(NaN,6.5244)", valid: false},
		{name: "garbage", src: "not a point", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p pgtypes.Point
			require.NoError(t, p.Scan(tt.src))

			assert.Equal(t, tt.valid, p.Valid)
			if tt.valid {
				assert.InDelta(t, 3.3792, p.Ptr().Lng(), 1e-9)
				assert.InDelta(t, 6.5244, p.Ptr().Lat(), 1e-9)
			} else {
				assert.Nil(t, p.Ptr())
			}
		})
	}
}

func TestPoint_ScanKeepsOutOfRangeValues(t *testing.T) {
	var p pgtypes.Point
	require.NoError(t, p.Scan("(500,500)"))

	require.True(t, p.Valid)
	assert.InDelta(t, 500.0, p.Ptr().Lng(), 1e-9)
	assert.InDelta(t, 500.0, p.Ptr().Lat(), 1e-9)
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, pgtypes.IsUniqueViolation(gorm.ErrDuplicatedKey))
	assert.True(t, pgtypes.IsUniqueViolation(fmt.Errorf("insert: %w", &pq.Error{Code: pgtypes.UniqueViolation})))
	assert.False(t, pgtypes.IsUniqueViolation(&pq.Error{Code: "23503"}))
	assert.False(t, pgtypes.IsUniqueViolation(errors.New("boom")))
}

func TestNotFoundOr(t *testing.T) {
	id := kernel.NewUUID()

	err := pgtypes.NotFoundOr("order.get", "order", id, gorm.ErrRecordNotFound)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	assert.Contains(t, err.Error(), id.String())

	cause := errors.New("connection reset")
	err = pgtypes.NotFoundOr("order.get", "order", id, cause)
	var persistence *errs.PersistenceError
	require.ErrorAs(t, err, &persistence)
	require.ErrorIs(t, err, cause)
}
