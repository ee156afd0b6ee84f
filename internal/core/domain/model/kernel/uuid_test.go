package kernel_test

import (
	"encoding/json"
	"testing"

	"station/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUUID(t *testing.T) {
	t.Run("should create a valid random UUID", func(t *testing.T) {
		id := kernel.NewUUID()

		require.NoError(t, id.Validate())
		assert.Regexp(t, `^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[0-9a-f]{4}-[0-9a-f]{12}$`, id.String())
	})

	t.Run("should create unique UUIDs", func(t *testing.T) {
		id1 := kernel.NewUUID()
		id2 := kernel.NewUUID()

		assert.False(t, id1.IsEqual(id2))
	})
}

func TestUUIDFromString(t *testing.T) {
	validUUID := "550e8400-e29b-41d4-a716-446655440000"

	t.Run("should parse canonical and alternative forms", func(t *testing.T) {
		for _, input := range []string{
			validUUID,
			"{550e8400-e29b-41d4-a716-446655440000}",
			"urn:uuid:550e8400-e29b-41d4-a716-446655440000",
			"550e8400e29b41d4a716446655440000",
		} {
			id, err := kernel.UUIDFromString(input)

			require.NoError(t, err, input)
			assert.Equal(t, validUUID, id.String())
		}
	})

	t.Run("should reject malformed input", func(t *testing.T) {
		for _, input := range []string{"", "not-a-uuid", "550e8400-e29b-41d4-a716", "truck-7"} {
			_, err := kernel.UUIDFromString(input)

			require.Error(t, err, input)
			assert.Contains(t, err.Error(), "invalid UUID format")
		}
	})

	t.Run("should reject the nil UUID", func(t *testing.T) {
		id, err := kernel.UUIDFromString("00000000-0000-0000-0000-000000000000")

		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
		require.Error(t, id.Validate())
	})
}

func TestUUIDFromBytes(t *testing.T) {
	t.Run("should create UUID from valid bytes", func(t *testing.T) {
		raw := uuid.MustParse("550e8400-e29b-41d4-a716-446655440000")

		id, err := kernel.UUIDFromBytes(raw[:])

		require.NoError(t, err)
		assert.Equal(t, raw, id.Bytes())
	})

	t.Run("should return error for invalid byte length", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes([]byte{0x55, 0x0e, 0x84})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid UUID format")
	})

	t.Run("should return error for nil bytes", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes(make([]byte, 16))

		assert.Equal(t, kernel.ErrUUIDIsNotConstructed, err)
	})
}

func TestUUID_Validate(t *testing.T) {
	var id kernel.UUID

	assert.Equal(t, kernel.ErrUUIDIsNotConstructed, id.Validate())
	assert.NoError(t, kernel.NewUUID().Validate())
}

func TestUUID_Bytes_ReturnsCopy(t *testing.T) {
	original := kernel.NewUUID()
	originalString := original.String()

	raw := original.Bytes()
	for i := range raw {
		raw[i] = 0xFF
	}

	assert.Equal(t, originalString, original.String())
}

func TestEqualPtr(t *testing.T) {
	a := kernel.NewUUID()
	b := kernel.NewUUID()
	aCopy := a

	assert.True(t, kernel.EqualPtr(nil, nil))
	assert.True(t, kernel.EqualPtr(&a, &aCopy))
	assert.False(t, kernel.EqualPtr(&a, &b))
	assert.False(t, kernel.EqualPtr(&a, nil))
	assert.False(t, kernel.EqualPtr(nil, &b))
}

func TestUUID_Text(t *testing.T) {
	t.Run("should round trip through JSON", func(t *testing.T) {
		id := kernel.NewUUID()

		data, err := json.Marshal(map[string]kernel.UUID{"orderId": id})
		require.NoError(t, err)
		assert.JSONEq(t, `{"orderId":"`+id.String()+`"}`, string(data))

		var decoded map[string]kernel.UUID
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.True(t, decoded["orderId"].IsEqual(id))
	})

	t.Run("should reject nil UUID", func(t *testing.T) {
		var id kernel.UUID

		err := id.UnmarshalText([]byte("00000000-0000-0000-0000-000000000000"))

		require.Error(t, err)
	})
}
